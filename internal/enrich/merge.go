package enrich

import (
	"strings"

	"github.com/mbracher/winescan/internal/menu"
)

// Enrichment holds the optional metadata the enrichment collaborator can
// supply for one wine name. Any field may be null.
type Enrichment struct {
	Producer    *string `json:"producer"`
	Region      *string `json:"region"`
	Grape       *string `json:"grape"`
	Vintage     *int    `json:"vintage"`
	Description *string `json:"description"`
}

// IsZero reports whether the enrichment carries no data at all.
func (e Enrichment) IsZero() bool {
	return e.Producer == nil && e.Region == nil && e.Grape == nil &&
		e.Vintage == nil && e.Description == nil
}

// MergeMissing copies enrichment values onto the wine, but only into
// fields the parse left missing. This is the exclusive-write contract:
// a field the parser filled is never overwritten.
func MergeMissing(w *menu.Wine, e Enrichment) {
	mergeField(&w.Producer, e.Producer)
	mergeField(&w.Region, e.Region)
	mergeField(&w.Grape, e.Grape)
	mergeField(&w.Description, e.Description)
	if w.Vintage == nil && e.Vintage != nil && *e.Vintage >= 1900 && *e.Vintage <= 2100 {
		v := *e.Vintage
		w.Vintage = &v
	}
}

func mergeField(dst **string, src *string) {
	if !isMissing(*dst) || src == nil {
		return
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		return
	}
	*dst = &v
}

// isMissing treats nil, blank, and explicit placeholder strings as absent.
func isMissing(s *string) bool {
	if s == nil {
		return true
	}
	switch strings.TrimSpace(*s) {
	case "", "-", "n/a", "na":
		return true
	}
	return false
}
