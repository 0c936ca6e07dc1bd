package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_Write(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "reports"))

	path, err := sink.Write("RELIANCE", "# Analysis\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "RELIANCE_analysis.md" {
		t.Errorf("unexpected report filename %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(data) != "# Analysis\n" {
		t.Errorf("unexpected content %q", data)
	}

	// Same symbol overwrites deterministically.
	again, err := sink.Write("RELIANCE", "updated")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != path {
		t.Errorf("expected deterministic path, got %q and %q", path, again)
	}
}
