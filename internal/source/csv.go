package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mbracher/winescan/internal/menu"
)

// CSVSource handles spreadsheet-exported wine lists (e.g. name, vintage,
// glass, bottle columns). Each record is joined into one menu row; a
// digit-free first record is assumed to be column headers and skipped.
type CSVSource struct{}

func (s *CSVSource) Extract(ctx context.Context, r io.Reader) ([]menu.Fragment, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var lines []string
	for i, record := range records {
		line := strings.TrimSpace(strings.Join(record, " "))
		if line == "" {
			continue
		}
		if i == 0 && !containsDigit(line) {
			continue
		}
		lines = append(lines, line)
	}
	return menu.LineFragments(lines), nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
