// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/i18n"
)

// BackupVersion is the snapshot schema version.
const BackupVersion = 1

// BackupData is the on-disk snapshot of the key/value store.
type BackupData struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Items     []db.Item `json:"items"`
}

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: i18n.T("cli.backup_short"),
		Long: `Dumps every stored item (API key, audit log, settings) into a single
Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if it's not already present.
If no output file is specified, a default filename 'gtpilot-backup-YYYY-MM-DD.json.zst' is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			var outputFile string
			if len(args) == 0 {
				outputFile = fmt.Sprintf("gtpilot-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			} else {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}

			items, err := a.store.Items(cmd.Context())
			if err != nil {
				return fmt.Errorf("could not read store: %w", err)
			}
			data := &BackupData{Version: BackupVersion, CreatedAt: time.Now().UTC(), Items: items}
			if err := writeCompressedBackup(outputFile, data); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup_written", outputFile, len(items)))
			return nil
		}),
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: i18n.T("cli.restore_short"),
		Long: `Writes every item of a backup back into the store. Existing items with the
same key are replaced. With --full, items missing from the backup are removed first.`,
		Args: cobra.ExactArgs(1),
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := readCompressedBackup(args[0])
			if err != nil {
				return err
			}
			if data.Version > BackupVersion {
				return fmt.Errorf("backup version %d is newer than supported version %d", data.Version, BackupVersion)
			}

			if full {
				keep := make(map[string]bool, len(data.Items))
				for _, it := range data.Items {
					keep[it.Key] = true
				}
				existing, err := a.store.Items(ctx)
				if err != nil {
					return fmt.Errorf("could not read store: %w", err)
				}
				for _, it := range existing {
					if keep[it.Key] {
						continue
					}
					if err := a.store.RemoveItem(ctx, it.Key); err != nil {
						return fmt.Errorf("could not remove %s: %w", it.Key, err)
					}
				}
			}

			for _, it := range data.Items {
				if err := a.store.SetItem(ctx, it.Key, it.Value); err != nil {
					return fmt.Errorf("could not restore %s: %w", it.Key, err)
				}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restored", len(data.Items), args[0]))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&full, "full", false, i18n.T("cli.flag_full"))
	return cmd
}

// readCompressedBackup handles reading and decoding a zstd-compressed JSON backup file.
func readCompressedBackup(filename string) (*BackupData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdReader, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var backupData BackupData
	if err := json.NewDecoder(zstdReader).Decode(&backupData); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}

	return &backupData, nil
}

// writeCompressedBackup streams the JSON encoding of data into a
// zstd-compressed file.
func writeCompressedBackup(filename string, data *BackupData) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = zstdWriter.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	// Close flushes the final frame; its error matters.
	if err := zstdWriter.Close(); err != nil {
		return fmt.Errorf("could not finish zstd stream: %w", err)
	}
	return file.Close()
}
