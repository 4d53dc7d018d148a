package source

import (
	"context"
	"strings"
	"testing"
)

func TestMarkdownSource_HeadingsAndBlocks(t *testing.T) {
	input := `# RED WINES

- Barolo 85
- Chianti 8 28

Pinot Noir 14 52
`
	frags, err := (&MarkdownSource{}).Extract(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"RED WINES", "Barolo 85", "Chianti 8 28", "Pinot Noir 14 52"}
	if len(frags) != len(want) {
		t.Fatalf("expected %d fragments, got %d: %v", len(want), len(frags), frags)
	}
	for i, w := range want {
		if frags[i].Text != w {
			t.Errorf("fragment %d: expected %q, got %q", i, w, frags[i].Text)
		}
	}
}

func TestMarkdownSource_NoDuplicatedText(t *testing.T) {
	// Paragraph text must appear exactly once, not once per inline node.
	frags, err := (&MarkdownSource{}).Extract(context.Background(), strings.NewReader("Chablis **Grand Cru** 45\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d: %v", len(frags), frags)
	}
	if frags[0].Text != "Chablis **Grand Cru** 45" {
		t.Errorf("got %q", frags[0].Text)
	}
}
