// Package testutil provides shared helpers for tests.
package testutil

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinmanjk/msos/pkg/model"
)

// TempDir creates a temporary directory cleaned up when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "msos-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// TempFile creates a file with the given content in a fresh temp directory
// and returns its path.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(TempDir(t), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// ReadFile reads a file and returns its contents.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// FileExists reports whether path exists.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

// ReadReportFile decodes a serialized report document, transparently
// unwrapping gzip for .gz files. Section bodies decode as generic JSON
// values.
func ReadReportFile(t *testing.T, path string) *model.ReportDocument {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open report %s: %v", path, err)
	}
	defer f.Close()

	var doc model.ReportDocument
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			t.Fatalf("failed to open gzip reader: %v", err)
		}
		defer gz.Close()
		err = json.NewDecoder(gz).Decode(&doc)
		if err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		return &doc
	}

	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	return &doc
}
