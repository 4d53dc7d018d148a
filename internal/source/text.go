package source

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/mbracher/winescan/internal/menu"
)

// TextSource handles plain-text wine lists: one menu row per line.
type TextSource struct{}

func (s *TextSource) Extract(ctx context.Context, r io.Reader) ([]menu.Fragment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return menu.LineFragments(lines), nil
}
