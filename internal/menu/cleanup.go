package menu

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// OCR output on menu photos carries decorative noise: markup-ish tags from
// some engines, dotted/dashed leader lines between a name and its price,
// and stray separator glyphs. CleanRow removes it without touching the
// tokens the classifier needs.

var (
	tagRe       = regexp.MustCompile(`<[^<>]+>`)
	sepRunRe    = regexp.MustCompile(`[-–—_=~]{3,}`)
	leaderRe    = regexp.MustCompile(`(?:[.·•\-–—_]{2,}|…+)[ \t]*([$€£]?\d)`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
	trailingSep = "-–—.·•_|… \t"
)

// CleanRow normalizes one assembled row of OCR text.
func CleanRow(s string) string {
	s = norm.NFKC.String(s)
	s = tagRe.ReplaceAllString(s, " ")
	s = sepRunRe.ReplaceAllString(s, " ")
	s = leaderRe.ReplaceAllString(s, " $1")
	s = strings.TrimRight(s, trailingSep)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
