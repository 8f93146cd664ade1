// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the source tree. It fails
// when a key passed to i18n.T is missing from the primary locale or when a
// secondary locale lacks a key of the primary one. Keys nobody uses are
// reported as warnings.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// usedKeyRe matches i18n.T("some.key") calls.
var usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)

// report is the outcome of one lint run.
type report struct {
	Undefined map[string][]string // key -> files using it
	Missing   map[string][]string // locale file -> keys
	Orphaned  []string
}

func (r report) failed() bool {
	return len(r.Undefined) > 0 || len(r.Missing) > 0
}

func main() {
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(2)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Undefined: map[string][]string{}, Missing: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scanning sources: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("loading %s: %w", primaryLocale, err)
	}

	for key, files := range used {
		if _, ok := primary[key]; !ok {
			r.Undefined[key] = files
		}
	}
	for key := range primary {
		// language.name is read through the bundle, not through T.
		if _, ok := used[key]; !ok && key != "language.name" {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("loading %s: %w", file, err)
		}
		var missing []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			r.Missing[filepath.Base(file)] = missing
		}
	}
	return r, nil
}

// findUsedKeys maps every key passed to i18n.T in non-test Go files under
// root to the files using it. Directories starting with "_" or "." and the
// tools directory are skipped.
func findUsedKeys(root string) (map[string][]string, error) {
	keys := make(map[string][]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = append(keys[m[1]], path)
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale returns the dotted keys of a nested yaml locale file.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", raw, keys)
	return keys, nil
}

func flattenYAML(prefix string, node map[string]any, out map[string]struct{}) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenYAML(key, child, out)
			continue
		}
		out[key] = struct{}{}
	}
}

func printReport(w io.Writer, r report) {
	if len(r.Undefined) > 0 {
		_, _ = fmt.Fprintf(w, "Keys used but not defined in %s:\n", primaryLocale)
		for _, key := range sortedKeys(r.Undefined) {
			_, _ = fmt.Fprintf(w, "  - %s (%s)\n", key, r.Undefined[key][0])
		}
	}
	for _, file := range sortedKeys(r.Missing) {
		_, _ = fmt.Fprintf(w, "Missing in %s:\n", file)
		for _, key := range r.Missing[file] {
			_, _ = fmt.Fprintf(w, "  - %s\n", key)
		}
	}
	if len(r.Orphaned) > 0 {
		_, _ = fmt.Fprintln(w, "Unused keys:")
		for _, key := range r.Orphaned {
			_, _ = fmt.Fprintf(w, "  - %s\n", key)
		}
	}
	if !r.failed() {
		_, _ = fmt.Fprintln(w, "All translation files are consistent.")
	}
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
