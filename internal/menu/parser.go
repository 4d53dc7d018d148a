package menu

import (
	"strconv"
	"strings"
)

// Menu layouts the parser handles:
//   - group headers, possibly repeated;
//   - single-line entries: name + 1-2 trailing price columns;
//   - multi-line entries: a name line with no prices, followed by one or
//     two lines that are nothing but prices (e.g. "n/a" then "64").
//
// A no-price line under an active group is a wine name (pending entry)
// unless it looks like a header/footer label.

// stateMachine carries the parse state for one document: the active group
// header and the pending multi-line entry with its price-slot fill count.
type stateMachine struct {
	group       *string
	pending     *Wine
	slotsFilled int // 0 = none, 1 = glass slot consumed, 2 = bottle consumed
	wines       []*Wine
}

// ParseText parses raw OCR text (newline-separated rows) into wine records.
func ParseText(raw string) []*Wine {
	return ParseLines(strings.Split(raw, "\n"))
}

// ParseLines parses ordered menu rows into wine records. It never fails:
// garbled rows degrade into messy names, not errors.
func ParseLines(rows []string) []*Wine {
	sm := &stateMachine{}
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		sm.consume(ClassifyLine(row))
	}
	sm.finish()

	for i, w := range sm.wines {
		w.ID = strconv.Itoa(i + 1)
	}
	if sm.wines == nil {
		return []*Wine{}
	}
	return sm.wines
}

func (sm *stateMachine) consume(line Line) {
	switch {
	case line.PureContinuation && sm.pending == nil:
		// Orphaned price column from a misaligned layout. Dropping it
		// beats fabricating a wine from a price alone.
		return
	case line.PureContinuation:
		sm.fillPriceSlots(line)
	case !line.PriceBearing():
		sm.consumeTextLine(line)
	default:
		sm.emitSingleLineWine(line)
	}
}

// fillPriceSlots assigns continuation-line price columns in order: glass
// first, then bottle. The pending entry flushes once both slots are filled.
func (sm *stateMachine) fillPriceSlots(line Line) {
	w := sm.pending

	numericInLine := false
	for _, v := range line.Prices {
		if v != nil {
			numericInLine = true
		}
	}
	onlyOneColumn := len(line.Prices) == 1

	for _, v := range line.Prices {
		switch sm.slotsFilled {
		case 0:
			w.Price.Glass = v
			sm.slotsFilled = 1
		case 1:
			w.Price.Bottle = v
			sm.slotsFilled = 2
		default:
		}
	}

	// Glass slot already consumed by an explicit N/A and a single numeric
	// column arrives now: that value is the bottle price. A glass-NA plus
	// lone bottle price is a common menu pattern.
	if numericInLine && onlyOneColumn && sm.slotsFilled == 1 && w.Price.Glass == nil {
		w.Price.Bottle = line.Prices[0]
		sm.slotsFilled = 2
	}

	if line.Currency != "" && w.Price.Currency == nil {
		w.Price.Currency = strPtr(line.Currency)
	}

	if sm.slotsFilled >= 2 {
		sm.flushPending()
	}
}

// consumeTextLine handles rows with no price tokens: the first one ever
// seen becomes the first group header; header-ish labels are ignored;
// anything else is a wine name starting (or replacing) the pending entry.
func (sm *stateMachine) consumeTextLine(line Line) {
	if sm.group == nil {
		sm.group = strPtr(strings.TrimRight(line.Text, ":"))
		return
	}
	if line.HeaderLike {
		return
	}
	if sm.pending != nil {
		// Two consecutive name lines never merge: the first goes out
		// as-is, incomplete.
		sm.flushPending()
	}
	sm.pending = &Wine{
		RawText: line.Text,
		Group:   sm.group,
		Section: sm.group,
		Name:    strPtr(line.Text),
	}
	sm.slotsFilled = 0
}

// emitSingleLineWine handles a self-contained row carrying both descriptive
// text and trailing prices. A pending multi-line entry is left untouched;
// this row does not disturb it.
func (sm *stateMachine) emitSingleLineWine(line Line) {
	vintage, vintageText := extractVintage(line.Text)
	name := stripNameTokens(line.Text, vintageText)

	w := &Wine{
		RawText: line.Text,
		Group:   sm.group,
		Section: sm.group,
		Vintage: vintage,
	}
	if name != "" {
		w.Name = strPtr(name)
	}
	if line.Currency != "" {
		w.Price.Currency = strPtr(line.Currency)
	}
	if len(line.Prices) >= 1 {
		w.Price.Glass = line.Prices[0]
	}
	if len(line.Prices) >= 2 {
		w.Price.Bottle = line.Prices[1]
	}
	sm.wines = append(sm.wines, w)
}

func (sm *stateMachine) flushPending() {
	if sm.pending != nil {
		sm.wines = append(sm.wines, sm.pending)
		sm.pending = nil
		sm.slotsFilled = 0
	}
}

// finish flushes any remaining pending entry regardless of fill state.
func (sm *stateMachine) finish() {
	sm.flushPending()
}
