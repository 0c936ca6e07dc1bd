package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink persists a generated report keyed by ticker symbol and returns the
// location it was stored at.
type Sink interface {
	Write(symbol, content string) (string, error)
}

// FileSink writes reports as markdown files into a fixed directory.
type FileSink struct {
	Dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Write stores the report as {SYMBOL}_analysis.md, going through a
// temporary file so a failed write never leaves a partial report behind.
func (s *FileSink) Write(symbol, content string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s_analysis.md", symbol))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize report: %w", err)
	}
	return path, nil
}
