package menu

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Prices can be 12, 12.5, 12,5, $12, €12.5, etc.
var priceRe = regexp.MustCompile(`([$€£])?\s*(\d{1,4}(?:[.,]\d{1,2})?)`)

var vintageRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// Explicit missing-value markers.
var naRe = regexp.MustCompile(`(?i)\b(?:n/a|n\.a\.|na|none|nil|-)\b`)

// Column-label tokens that often appear to the right of group headers.
// These must not turn a line into a wine row.
var headerTokenRe = regexp.MustCompile(`(?i)\b(?:glass|bottle|btg|btl|ml|cl|oz|\d{2,4}\s?(?:ml|cl|oz))\b`)

const (
	minPlausiblePrice = 1.0
	maxPlausiblePrice = 500.0
)

// Line is one classified row of menu text, ready for the state machine.
// Prices holds up to two trailing price columns in reading order; a nil
// entry is an explicit "unavailable" marker.
type Line struct {
	Text             string
	Currency         string
	Prices           []*float64
	HeaderLike       bool
	PureContinuation bool
}

// PriceBearing reports whether the row carries trailing price columns.
func (l Line) PriceBearing() bool { return len(l.Prices) > 0 }

// ClassifyLine classifies one cleaned row of menu text.
func ClassifyLine(row string) Line {
	currency, prices := extractPriceTokens(row)
	return Line{
		Text:             row,
		Currency:         currency,
		Prices:           prices,
		HeaderLike:       looksLikeHeaderLabel(row),
		PureContinuation: len(prices) > 0 && isPurePriceLine(row),
	}
}

type priceToken struct {
	start, end int
	currency   string
	value      *float64
}

// extractPriceTokens extracts up to two price columns from a row.
//
// Columns are only returned when the row *ends* with 1-2 price or NA
// tokens. This keeps group headers with right-side labels like "glass",
// "bottle" or "175ml" from being misclassified as wine rows.
func extractPriceTokens(row string) (string, []*float64) {
	containsHeaderTokens := headerTokenRe.MatchString(row)
	vintageSpans := vintageRe.FindAllStringIndex(row, -1)

	insideVintage := func(idx int) bool {
		for _, span := range vintageSpans {
			if span[0] <= idx && idx < span[1] {
				return true
			}
		}
		return false
	}

	var tokens []priceToken
	for _, span := range naRe.FindAllStringIndex(row, -1) {
		tokens = append(tokens, priceToken{start: span[0], end: span[1]})
	}
	for _, m := range priceRe.FindAllStringSubmatchIndex(row, -1) {
		if insideVintage(m[0]) {
			continue
		}
		tok := priceToken{start: m[0], end: m[1]}
		if m[2] >= 0 {
			tok.currency = row[m[2]:m[3]]
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(row[m[4]:m[5]], ",", "."), 64); err == nil {
			val := v
			tok.value = &val
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return "", nil
	}
	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].start < tokens[j].start })

	cols := tokens
	if len(cols) > 2 {
		cols = cols[len(cols)-2:]
	}

	// Anything but trailing separator punctuation after the last token
	// means this is not a price-column layout.
	rest := row[cols[len(cols)-1].end:]
	if strings.Trim(rest, " \t.:|/") != "" {
		return "", nil
	}

	currency := ""
	values := make([]*float64, 0, len(cols))
	for _, tok := range cols {
		if tok.currency != "" && currency == "" {
			currency = tok.currency
		}
		values = append(values, tok.value)
	}

	// Header tokens without a currency symbol get the strict treatment:
	// any implausible number (e.g. 175 from "175ml") rejects the row.
	if containsHeaderTokens && currency == "" {
		for _, v := range values {
			if v != nil && !plausiblePrice(*v) {
				return "", nil
			}
		}
	}

	// Without a currency anchor, reject when every numeric is implausible.
	if currency == "" {
		numeric := 0
		implausible := 0
		for _, v := range values {
			if v != nil {
				numeric++
				if !plausiblePrice(*v) {
					implausible++
				}
			}
		}
		if numeric > 0 && numeric == implausible {
			return "", nil
		}
	}

	return currency, values
}

func plausiblePrice(v float64) bool {
	return v >= minPlausiblePrice && v <= maxPlausiblePrice
}

// isPurePriceLine reports whether nothing but price/NA/vintage tokens and
// separator punctuation makes up the row.
func isPurePriceLine(row string) bool {
	stripped := naRe.ReplaceAllString(row, " ")
	stripped = priceRe.ReplaceAllString(stripped, " ")
	stripped = vintageRe.ReplaceAllString(stripped, " ")
	return strings.Trim(stripped, " \t|:.-") == ""
}

// looksLikeHeaderLabel reports whether the row is a group-header or
// column-label signal rather than a wine name. Column labels are judged on
// what remains once the label tokens are gone: "Glass Bottle 175ml" is a
// header, "Riesling 175ml" still carries a name and is not.
func looksLikeHeaderLabel(row string) bool {
	rest := headerTokenRe.ReplaceAllString(row, " ")
	var letters []rune
	for _, r := range rest {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return headerTokenRe.MatchString(row)
	}
	// Short all-caps labels (RED WINE, WHITE) are headers, not names.
	compact := string(letters)
	return len(letters) <= 18 && compact == strings.ToUpper(compact)
}

// extractVintage returns the first vintage year in the row, if any.
func extractVintage(row string) (*int, string) {
	m := vintageRe.FindStringSubmatch(row)
	if m == nil {
		return nil, ""
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, ""
	}
	return &year, m[1]
}

// stripNameTokens removes the vintage text and the last one or two
// price/NA tokens from a self-contained wine line, leaving the name.
func stripNameTokens(row, vintageText string) string {
	name := row
	if vintageText != "" {
		name = strings.ReplaceAll(name, vintageText, " ")
	}

	var spans [][]int
	spans = append(spans, naRe.FindAllStringIndex(name, -1)...)
	spans = append(spans, priceRe.FindAllStringIndex(name, -1)...)
	if len(spans) > 0 {
		sort.SliceStable(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
		last := spans
		if len(last) > 2 {
			last = last[len(last)-2:]
		}
		for i := len(last) - 1; i >= 0; i-- {
			name = strings.TrimSpace(name[:last[i][0]] + " " + name[last[i][1]:])
		}
	}

	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, "-–— ")
}
