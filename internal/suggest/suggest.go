package suggest

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// List holds the known ticker symbols used for input validation and
// autocomplete. Built once at startup from a static CSV file.
type List struct {
	symbols []string
	index   map[string]struct{}
}

// Load reads symbols from a CSV file with a Symbol column (any position,
// case-insensitive header match). Symbols are upper-cased, de-duplicated
// and sorted.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suggestions: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read suggestions: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("suggestions file %s is empty", path)
	}

	col := -1
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), "Symbol") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("suggestions file %s has no Symbol column", path)
	}

	index := map[string]struct{}{}
	for _, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(row[col]))
		if sym == "" {
			continue
		}
		index[sym] = struct{}{}
	}

	symbols := make([]string, 0, len(index))
	for sym := range index {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	return &List{symbols: symbols, index: index}, nil
}

// Symbols returns the sorted unique symbols.
func (l *List) Symbols() []string { return l.symbols }

// Valid reports whether symbol is in the list (case-insensitive).
func (l *List) Valid(symbol string) bool {
	_, ok := l.index[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}
