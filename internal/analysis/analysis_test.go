// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtpilot/gtpilot/internal/model"
	"github.com/gtpilot/gtpilot/internal/state"
	"github.com/gtpilot/gtpilot/internal/testutil"
)

var sample = []model.Metric{
	{ID: "engagement", Label: "Engagement Rate", Value: 42.04},
	{ID: "reach", Label: "Reach", Value: 99.95},
}

func staticKey(k string) func() string { return func() string { return k } }

func TestFormatMetrics(t *testing.T) {
	assert.Equal(t, "- Engagement Rate: 42.0%\n- Reach: 100.0%", FormatMetrics(sample))
	assert.Equal(t, "", FormatMetrics(nil))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sample)
	assert.Contains(t, p, `high-tech brand called "GT Pilot"`)
	assert.Contains(t, p, `"Analysis:" and "Recommendations:"`)
	assert.Contains(t, p, "Current Performance Metrics:\n- Engagement Rate: 42.0%\n- Reach: 100.0%")
}

func TestBridge_MissingCredentialSkipsGenerator(t *testing.T) {
	gen := &testutil.FakeGenerator{Text: "never"}
	b := &Bridge{Gen: gen, Model: DefaultModel, Credential: staticKey("  ")}
	assert.Equal(t, MsgMissingCredential, b.Analyze(context.Background(), sample))
	assert.Equal(t, 0, gen.CallCount())

	b.Credential = nil
	assert.Equal(t, MsgMissingCredential, b.Analyze(context.Background(), sample))
}

func TestBridge_Success(t *testing.T) {
	gen := &testutil.FakeGenerator{Text: "Analysis: fine\nRecommendations: more"}
	b := &Bridge{Gen: gen, Model: DefaultModel, Credential: staticKey("k")}
	got := b.Analyze(context.Background(), sample)
	assert.Equal(t, "Analysis: fine\nRecommendations: more", got)
	require.Len(t, gen.Prompts, 1)
	assert.Equal(t, BuildPrompt(sample), gen.Prompts[0])
	assert.Equal(t, "gemini-2.5-pro", gen.Model)
}

func TestBridge_ErrorMessages(t *testing.T) {
	gen := &testutil.FakeGenerator{Err: errors.New("quota exceeded")}
	b := &Bridge{Gen: gen, Model: DefaultModel, Credential: staticKey("k")}
	assert.Equal(t, "Error during analysis: quota exceeded", b.Analyze(context.Background(), sample))

	gen.Err = errors.New("")
	assert.Equal(t, MsgUnknownError, b.Analyze(context.Background(), sample))
}

func TestNewBridge_UsesStateCredential(t *testing.T) {
	state.Credential.Clear()
	defer state.Credential.Clear()

	gen := &testutil.FakeGenerator{Text: "ok"}
	b := NewBridge(gen, "")
	assert.Equal(t, DefaultModel, b.Model)
	assert.Equal(t, MsgMissingCredential, b.Analyze(context.Background(), sample))

	state.Credential.SetString("secret")
	assert.Equal(t, "ok", b.Analyze(context.Background(), sample))
}

func TestGeminiClient_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "sek ret", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req geminiRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Analysis: "},{"text":"done"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL+"/", 0, staticKey("sek ret"))
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
	got, err := c.GenerateContent(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Analysis: done", got)
}

func TestGeminiClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL, time.Second, staticKey("k"))
	_, err := c.GenerateContent(context.Background(), DefaultModel, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API returned 403")
	assert.True(t, strings.HasSuffix(err.Error(), "..."), "body should be truncated")
	assert.Less(t, len(err.Error()), 300)
}

func TestGeminiClient_ErrorObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL, time.Second, staticKey("k"))
	_, err := c.GenerateContent(context.Background(), DefaultModel, "p")
	require.Error(t, err)
	assert.Equal(t, "Gemini error 400: API key not valid", err.Error())
}

func TestGeminiClient_EmptyAndMalformed(t *testing.T) {
	for _, body := range []string{`{"candidates":[]}`, `{"candidates":[{"content":{"parts":[]}}]}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c := NewGeminiClient(srv.URL, time.Second, staticKey("k"))
		_, err := c.GenerateContent(context.Background(), DefaultModel, "p")
		assert.ErrorIs(t, err, ErrEmptyResponse)
		srv.Close()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()
	c := NewGeminiClient(srv.URL, time.Second, staticKey("k"))
	_, err := c.GenerateContent(context.Background(), DefaultModel, "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Gemini response")
}

func TestGeminiClient_TransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewGeminiClient(url, time.Second, staticKey("very-secret"))
	_, err := c.GenerateContent(context.Background(), DefaultModel, "p")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "very-secret")
}

func TestGeminiClient_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewGeminiClient(srv.URL, 5*time.Second, staticKey("k"))
	_, err := c.GenerateContent(ctx, DefaultModel, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBridgeWithGeminiClient_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	key := staticKey("k")
	b := &Bridge{Gen: NewGeminiClient(srv.URL, time.Second, key), Model: DefaultModel, Credential: key}
	assert.Equal(t, "Error during analysis: Gemini API returned 500: boom", b.Analyze(context.Background(), sample))
}
