package menu

import "testing"

func TestCleanRow(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"leader dots before price", "Chablis ..... 45", "Chablis 45"},
		{"leader dots touching currency", "Barolo.....$85", "Barolo $85"},
		{"ellipsis leader", "Côtes du Rhône … 38", "Côtes du Rhône 38"},
		{"markup tags", "<b>Barolo</b> 85", "Barolo 85"},
		{"separator run", "RED WINE ------", "RED WINE"},
		{"trailing pipe", "Prosecco |", "Prosecco"},
		{"whitespace collapse", "  Pinot   Grigio  ", "Pinot Grigio"},
		{"fullwidth digits", "Riesling ４５", "Riesling 45"},
		{"empty", "", ""},
		{"pure separators", "·····", ""},
	}

	for _, tc := range cases {
		got := CleanRow(tc.in)
		if got != tc.want {
			t.Errorf("%s: CleanRow(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
		if again := CleanRow(got); again != got {
			t.Errorf("%s: not idempotent: %q -> %q", tc.name, got, again)
		}
	}
}
