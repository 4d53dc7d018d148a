package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mbracher/winescan/internal/menu"
)

type fakeEngine struct {
	frags []menu.Fragment
	err   error
}

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) ([]menu.Fragment, error) {
	return f.frags, f.err
}

func TestForUpload_Dispatch(t *testing.T) {
	engine := &fakeEngine{}
	cases := []struct {
		filename    string
		contentType string
		wantType    string
	}{
		{"menu.jpg", "", "*source.ImageSource"},
		{"menu.PNG", "", "*source.ImageSource"},
		{"upload.bin", "image/jpeg", "*source.ImageSource"},
		{"menu.pdf", "application/pdf", "*source.PDFSource"},
		{"menu.docx", "", "*source.DOCXSource"},
		{"menu.html", "", "*source.HTMLSource"},
		{"menu.md", "", "*source.MarkdownSource"},
		{"menu.txt", "text/plain", "*source.TextSource"},
		{"menu.csv", "", "*source.CSVSource"},
	}
	for _, tc := range cases {
		src, err := ForUpload(tc.filename, tc.contentType, engine)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.filename, err)
			continue
		}
		var got string
		switch src.(type) {
		case *ImageSource:
			got = "*source.ImageSource"
		case *PDFSource:
			got = "*source.PDFSource"
		case *DOCXSource:
			got = "*source.DOCXSource"
		case *HTMLSource:
			got = "*source.HTMLSource"
		case *MarkdownSource:
			got = "*source.MarkdownSource"
		case *TextSource:
			got = "*source.TextSource"
		case *CSVSource:
			got = "*source.CSVSource"
		}
		if got != tc.wantType {
			t.Errorf("%s: expected %s, got %s", tc.filename, tc.wantType, got)
		}
	}
}

func TestForUpload_Unsupported(t *testing.T) {
	if _, err := ForUpload("menu.xlsx", "", nil); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupported(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
		want        bool
	}{
		{"menu.jpg", "", true},
		{"menu.TXT", "", true},
		{"blob", "image/png", true},
		{"menu.xlsx", "", false},
		{"menu", "", false},
	}
	for _, tc := range cases {
		if got := IsSupported(tc.filename, tc.contentType); got != tc.want {
			t.Errorf("IsSupported(%q, %q) = %v, want %v", tc.filename, tc.contentType, got, tc.want)
		}
	}
}

func TestImageSource_DelegatesToEngine(t *testing.T) {
	engine := &fakeEngine{frags: menu.LineFragments([]string{"Chablis 12 45"})}
	frags, err := (&ImageSource{Engine: engine}).Extract(context.Background(), strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 || frags[0].Text != "Chablis 12 45" {
		t.Fatalf("got %v", frags)
	}
}

func TestImageSource_EngineErrorPropagates(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract not installed")}
	if _, err := (&ImageSource{Engine: engine}).Extract(context.Background(), strings.NewReader("x")); err == nil {
		t.Error("expected engine error")
	}
}

func TestImageSource_NilEngine(t *testing.T) {
	if _, err := (&ImageSource{}).Extract(context.Background(), strings.NewReader("x")); err == nil {
		t.Error("expected error with no engine configured")
	}
}
