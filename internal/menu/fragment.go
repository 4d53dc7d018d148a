package menu

import "math"

// Box is an axis-aligned bounding box in image pixel space.
// Y grows downward: Y1 is the top edge, Y2 the bottom edge.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// NewBox normalizes coordinates so X1 <= X2 and Y1 <= Y2.
func NewBox(x1, y1, x2, y2 float64) Box {
	return Box{
		X1: math.Min(x1, x2),
		Y1: math.Min(y1, y2),
		X2: math.Max(x1, x2),
		Y2: math.Max(y1, y2),
	}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// MidY returns the vertical midpoint of the box.
func (b Box) MidY() float64 { return (b.Y1 + b.Y2) / 2 }

// VerticalOverlap returns the ratio of the y-range intersection to the
// smaller of the two heights. 0 means no overlap, 1 means the shorter box
// lies entirely within the taller one's y-range.
func (b Box) VerticalOverlap(o Box) float64 {
	inter := math.Min(b.Y2, o.Y2) - math.Max(b.Y1, o.Y1)
	if inter <= 0 {
		return 0
	}
	minH := math.Min(b.Height(), o.Height())
	if minH <= 0 {
		return 0
	}
	return inter / minH
}

// Union returns the smallest box covering both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		X1: math.Min(b.X1, o.X1),
		Y1: math.Min(b.Y1, o.Y1),
		X2: math.Max(b.X2, o.X2),
		Y2: math.Max(b.Y2, o.Y2),
	}
}

// Fragment is one OCR-detected text span. Box is nil when the engine (or
// document format) supplied no usable geometry for the span.
type Fragment struct {
	Text string
	Box  *Box
}

// NewFragment builds a fragment from text and raw bbox coordinates as
// produced by an OCR engine. Anything that is not four finite numbers is
// treated as "no geometry", never as an error.
func NewFragment(text string, coords []float64) Fragment {
	f := Fragment{Text: text}
	if len(coords) != 4 {
		return f
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return f
		}
	}
	box := NewBox(coords[0], coords[1], coords[2], coords[3])
	if box.Width() <= 0 || box.Height() <= 0 {
		return f
	}
	f.Box = &box
	return f
}

// LineFragments wraps plain text lines as geometry-less fragments, for
// sources that produce already-ordered lines instead of positioned spans.
func LineFragments(lines []string) []Fragment {
	frags := make([]Fragment, 0, len(lines))
	for _, ln := range lines {
		frags = append(frags, Fragment{Text: ln})
	}
	return frags
}
