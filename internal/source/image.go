package source

import (
	"context"
	"fmt"
	"io"

	"github.com/mbracher/winescan/internal/menu"
	"github.com/mbracher/winescan/internal/ocr"
)

// ImageSource recognizes photographed menus through the OCR engine.
type ImageSource struct {
	Engine ocr.Engine
}

func (s *ImageSource) Extract(ctx context.Context, r io.Reader) ([]menu.Fragment, error) {
	if s.Engine == nil {
		return nil, fmt.Errorf("no OCR engine configured")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return s.Engine.Recognize(ctx, data)
}
