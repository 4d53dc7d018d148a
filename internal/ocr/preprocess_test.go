package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPrepareImage_WithinBoundsPassesThrough(t *testing.T) {
	data := pngBytes(t, 100, 40)
	out, err := PrepareImage(data, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("in-bounds image must pass through unchanged")
	}
}

func TestPrepareImage_ScalingDisabled(t *testing.T) {
	data := []byte("not even an image")
	out, err := PrepareImage(data, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("maxDim 0 must bypass decoding")
	}
}

func TestPrepareImage_DownscalesWideImage(t *testing.T) {
	out, err := PrepareImage(pngBytes(t, 100, 40), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode scaled image: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 20 {
		t.Errorf("expected 50x20, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPrepareImage_DownscalesTallImage(t *testing.T) {
	out, err := PrepareImage(pngBytes(t, 40, 100), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode scaled image: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 50 {
		t.Errorf("expected 20x50, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPrepareImage_GarbageInput(t *testing.T) {
	if _, err := PrepareImage([]byte("garbage"), 100); err == nil {
		t.Error("expected decode error")
	}
}
