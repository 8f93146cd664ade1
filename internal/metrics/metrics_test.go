package metrics

import (
	"math/rand/v2"
	"testing"
)

type fixedSource []float64

func (f *fixedSource) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestGenerate_ValuesInRangeForAllMetrics(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 500; round++ {
		ms := Generate(src)
		if len(ms) != 5 {
			t.Fatalf("expected 5 metrics, got %d", len(ms))
		}
		for i, m := range ms {
			if m.Value < MinValue || m.Value >= MaxValue {
				t.Fatalf("round %d metric %s out of range: %v", round, m.ID, m.Value)
			}
			if m.ID != definitions[i].ID || m.Label != definitions[i].Label {
				t.Fatalf("metric %d has unexpected identity %+v", i, m)
			}
		}
	}
}

func TestGenerate_Bounds(t *testing.T) {
	src := &fixedSource{0, 0.5, 0.999999, 1, -0.1}
	ms := Generate(src)
	if ms[0].Value != 20 {
		t.Fatalf("draw 0 should map to 20, got %v", ms[0].Value)
	}
	if ms[1].Value != 60 {
		t.Fatalf("draw 0.5 should map to 60, got %v", ms[1].Value)
	}
	if ms[2].Value >= 100 {
		t.Fatalf("draw just below 1 must stay under 100, got %v", ms[2].Value)
	}
	if ms[3].Value != MinValue || ms[4].Value != MinValue {
		t.Fatalf("out-of-contract draws should fall back to MinValue, got %v and %v", ms[3].Value, ms[4].Value)
	}
}

func TestGenerate_DefaultSource(t *testing.T) {
	for _, m := range Generate(nil) {
		if m.Value < MinValue || m.Value >= MaxValue {
			t.Fatalf("metric %s out of range: %v", m.ID, m.Value)
		}
	}
}

func TestDefinitions_ReturnsCopy(t *testing.T) {
	d := Definitions()
	d[0].Label = "mutated"
	if Definitions()[0].Label != "Engagement Rate" {
		t.Fatalf("Definitions must not expose the package slice")
	}
}

func TestClampAndFormat(t *testing.T) {
	if Clamp(-5) != 0 || Clamp(150) != 100 || Clamp(42.5) != 42.5 {
		t.Fatalf("unexpected clamp results")
	}
	if FormatPercent(42.04) != "42.0%" {
		t.Fatalf("unexpected format: %s", FormatPercent(42.04))
	}
}
