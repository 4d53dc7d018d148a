package source

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/mbracher/winescan/internal/menu"
)

// MarkdownSource extracts lines from markdown wine lists using goldmark.
// Headings become group-header lines; other blocks contribute their text
// line by line.
type MarkdownSource struct{}

func (s *MarkdownSource) Extract(ctx context.Context, r io.Reader) ([]menu.Fragment, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if t := string(h.Text(src)); t != "" {
				lines = append(lines, t)
			}
			continue
		}
		if t := blockText(n, src); t != "" {
			lines = append(lines, splitLines(t)...)
		}
	}
	return menu.LineFragments(lines), nil
}

// blockText collects the raw source lines of a block node; container nodes
// (lists, quotes) concatenate their children's lines.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			buf.Write(lines.At(i).Value(src))
			buf.WriteByte('\n')
		}
		return strings.TrimSpace(buf.String())
	}
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}

func splitLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
