package menu

import "strings"

// Normalize collapses internal whitespace on the free-text fields of each
// wine. It runs after enrichment, on the final records.
func Normalize(wines []*Wine) []*Wine {
	for _, w := range wines {
		normalizeField(w.Name)
		normalizeField(w.Producer)
		normalizeField(w.Region)
		normalizeField(w.Grape)
	}
	return wines
}

func normalizeField(s *string) {
	if s == nil {
		return
	}
	*s = strings.Join(strings.Fields(*s), " ")
}
