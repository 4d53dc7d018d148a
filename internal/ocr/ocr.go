// Package ocr wraps the Tesseract OCR engine via gosseract. Tesseract must
// be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/mbracher/winescan/internal/menu"
)

// Engine turns a menu photo into positioned text fragments. One
// implementation exists per OCR engine; the parsing core only ever sees
// normalized fragments.
type Engine interface {
	Recognize(ctx context.Context, image []byte) ([]menu.Fragment, error)
}

// Config holds Tesseract settings.
type Config struct {
	// Language is the recognition language, "+"-separated for multiple
	// (e.g. "eng+fra"). Empty means the Tesseract default.
	Language string

	// MaxImageDim downscales larger photos before recognition.
	// 0 disables scaling.
	MaxImageDim int

	// PageSegMode overrides Tesseract's page segmentation mode.
	// Nil keeps the Tesseract default.
	PageSegMode *gosseract.PageSegMode
}

// Tesseract is the gosseract-backed Engine. It is constructed once at
// startup and shared; each call uses its own gosseract client, which is
// not safe for concurrent use.
type Tesseract struct {
	cfg Config
}

// NewTesseract creates the Tesseract engine.
func NewTesseract(cfg Config) *Tesseract {
	return &Tesseract{cfg: cfg}
}

// Recognize runs OCR on image data (JPEG or PNG) and returns word-level
// fragments with pixel bounding boxes. When Tesseract yields no word boxes
// it falls back to plain recognized lines without geometry.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) ([]menu.Fragment, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	prepared, err := PrepareImage(image, t.cfg.MaxImageDim)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.cfg.Language != "" {
		if err := client.SetLanguage(strings.Split(t.cfg.Language, "+")...); err != nil {
			return nil, fmt.Errorf("set language: %w", err)
		}
	}
	if t.cfg.PageSegMode != nil {
		if err := client.SetPageSegMode(*t.cfg.PageSegMode); err != nil {
			return nil, fmt.Errorf("set page seg mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(prepared); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err == nil && len(boxes) > 0 {
		frags := make([]menu.Fragment, 0, len(boxes))
		for _, b := range boxes {
			word := strings.TrimSpace(b.Word)
			if word == "" {
				continue
			}
			frags = append(frags, menu.NewFragment(word, []float64{
				float64(b.Box.Min.X), float64(b.Box.Min.Y),
				float64(b.Box.Max.X), float64(b.Box.Max.Y),
			}))
		}
		if len(frags) > 0 {
			return frags, nil
		}
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	return menu.LineFragments(lines), nil
}
