package source

import (
	"context"
	"fmt"
	"io"
	"os"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/mbracher/winescan/internal/menu"
)

// PDFSource extracts positioned text runs from PDF wine lists. The runs
// keep their page coordinates (flipped to top-down), so they go through
// the same row clustering as OCR output.
type PDFSource struct{}

// defaultPageHeight is US Letter in points, used when a page carries no
// MediaBox of its own.
const defaultPageHeight = 792.0

func (s *PDFSource) Extract(ctx context.Context, r io.Reader) ([]menu.Fragment, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "winescan-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var fragments []menu.Fragment
	yOffset := 0.0
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageHeight := mediaBoxHeight(page)
		fragments = append(fragments, pageFragments(page, pageHeight, yOffset)...)
		// Stack pages vertically so later pages cluster below earlier ones.
		yOffset += pageHeight
	}
	return fragments, nil
}

// pageFragments merges the page's raw text items into word-level runs.
// Content-stream text is often emitted per character; consecutive items on
// the same baseline with near-zero horizontal gaps belong to one run.
func pageFragments(page pdflib.Page, pageHeight, yOffset float64) []menu.Fragment {
	content := page.Content()

	var fragments []menu.Fragment
	var runText string
	var runX1, runX2, runY, runSize float64

	flush := func() {
		if runText == "" {
			return
		}
		// PDF y grows upward; the clusterer expects top-down coordinates.
		yTop := pageHeight - runY - runSize + yOffset
		fragments = append(fragments, menu.NewFragment(runText, []float64{
			runX1, yTop, runX2, yTop + runSize,
		}))
		runText = ""
	}

	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		joinGap := t.FontSize * 0.3
		if runText != "" && t.Y == runY && t.X-runX2 < joinGap && t.X >= runX1 {
			runText += t.S
			runX2 = t.X + t.W
			continue
		}
		flush()
		runText = t.S
		runX1, runX2 = t.X, t.X+t.W
		runY, runSize = t.Y, t.FontSize
		if runSize <= 0 {
			runSize = 10
		}
		if runX2 <= runX1 {
			runX2 = runX1 + runSize*0.5
		}
	}
	flush()
	return fragments
}

func mediaBoxHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Kind() != pdflib.Array || box.Len() < 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}
