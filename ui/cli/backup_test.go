// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gtpilot/gtpilot/internal/db"
)

func TestBackupRestore_RoundTrip(t *testing.T) {
	e := newCLIEnv(t)
	original := e.mustRun("key", "show", "--reveal")

	out := e.mustRun("backup", "snap.json")
	file := filepath.Join(e.dir, "snap.json.zst")
	if !strings.Contains(out, "snap.json.zst") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := readCompressedBackup(file)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if data.Version != BackupVersion || len(data.Items) != 2 {
		t.Fatalf("unexpected snapshot: version=%d items=%d", data.Version, len(data.Items))
	}

	e.mustRun("key", "regenerate", "--yes")
	if e.mustRun("key", "show", "--reveal") == original {
		t.Fatalf("regenerate did not change the key")
	}

	e.mustRun("restore", file)
	if got := e.mustRun("key", "show", "--reveal"); got != original {
		t.Fatalf("restore did not bring back the key: %q != %q", got, original)
	}
}

func TestBackup_DefaultName(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("key", "show")
	e.mustRun("backup")
	name := "gtpilot-backup-" + time.Now().Format("2006-01-02") + ".json.zst"
	if _, err := os.Stat(filepath.Join(e.dir, name)); err != nil {
		t.Fatalf("expected %s: %v", name, err)
	}
}

func TestRestore_FullRemovesExtraItems(t *testing.T) {
	e := newCLIEnv(t)
	file := filepath.Join(e.dir, "only-range.json.zst")
	snap := &BackupData{
		Version: BackupVersion,
		Items:   []db.Item{{Key: db.KeyTimeRange, Value: "Last 7 Days"}},
	}
	if err := writeCompressedBackup(file, snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	e.mustRun("key", "show")
	e.mustRun("restore", "--full", file)

	if out := e.mustRun("audit"); !strings.Contains(out, "No events logged.") {
		t.Fatalf("audit log survived a full restore:\n%s", out)
	}
}

func TestRestore_RejectsNewerVersion(t *testing.T) {
	e := newCLIEnv(t)
	file := filepath.Join(e.dir, "future.json.zst")
	if err := writeCompressedBackup(file, &BackupData{Version: BackupVersion + 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := e.run("restore", file); err == nil {
		t.Fatalf("expected version error")
	}
}

func TestReadCompressedBackup_NotZstd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.json")
	if err := os.WriteFile(file, []byte(`{"version":1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readCompressedBackup(file); err == nil {
		t.Fatalf("expected decode error for uncompressed input")
	}
}
