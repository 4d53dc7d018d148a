package menu

import "testing"

func TestClassifyLine_TrailingPrices(t *testing.T) {
	l := ClassifyLine("Chablis Grand Cru 12 45")
	if !l.PriceBearing() {
		t.Fatal("expected price-bearing line")
	}
	if len(l.Prices) != 2 {
		t.Fatalf("expected 2 price columns, got %d", len(l.Prices))
	}
	if l.Prices[0] == nil || *l.Prices[0] != 12 {
		t.Errorf("expected first column 12, got %v", l.Prices[0])
	}
	if l.Prices[1] == nil || *l.Prices[1] != 45 {
		t.Errorf("expected second column 45, got %v", l.Prices[1])
	}
	if l.PureContinuation {
		t.Error("line with a name must not be a pure continuation")
	}
	if l.HeaderLike {
		t.Error("wine line misread as header")
	}
}

func TestClassifyLine_VintageNeverAPrice(t *testing.T) {
	l := ClassifyLine("Pinot Noir 2019 14 55")
	if len(l.Prices) != 2 {
		t.Fatalf("expected 2 price columns, got %d", len(l.Prices))
	}
	if *l.Prices[0] != 14 || *l.Prices[1] != 55 {
		t.Errorf("expected prices 14 and 55, got %v and %v", *l.Prices[0], *l.Prices[1])
	}

	vintage, text := extractVintage("Pinot Noir 2019 14 55")
	if vintage == nil || *vintage != 2019 || text != "2019" {
		t.Errorf("expected vintage 2019, got %v (%q)", vintage, text)
	}
}

func TestClassifyLine_EmbeddedNumbersNotPrices(t *testing.T) {
	// Numbers followed by more prose are not trailing price columns.
	l := ClassifyLine("Aged 24 months in oak barrels")
	if l.PriceBearing() {
		t.Fatalf("expected no prices, got %v", l.Prices)
	}
}

func TestClassifyLine_DecimalAndCommaPrices(t *testing.T) {
	l := ClassifyLine("Grüner Veltliner 9.5 32,50")
	if len(l.Prices) != 2 {
		t.Fatalf("expected 2 price columns, got %d", len(l.Prices))
	}
	if *l.Prices[0] != 9.5 {
		t.Errorf("expected 9.5, got %v", *l.Prices[0])
	}
	if *l.Prices[1] != 32.5 {
		t.Errorf("expected 32.5, got %v", *l.Prices[1])
	}
}

func TestClassifyLine_CurrencyDetection(t *testing.T) {
	l := ClassifyLine("Barolo Riserva $85")
	if l.Currency != "$" {
		t.Errorf("expected currency $, got %q", l.Currency)
	}
	if len(l.Prices) != 1 || *l.Prices[0] != 85 {
		t.Errorf("expected single price 85, got %v", l.Prices)
	}
}

func TestClassifyLine_NAMarker(t *testing.T) {
	l := ClassifyLine("n/a 64")
	if len(l.Prices) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(l.Prices))
	}
	if l.Prices[0] != nil {
		t.Errorf("expected nil for n/a column, got %v", *l.Prices[0])
	}
	if l.Prices[1] == nil || *l.Prices[1] != 64 {
		t.Errorf("expected 64 in second column, got %v", l.Prices[1])
	}
	if !l.PureContinuation {
		t.Error("price-only line must be a pure continuation")
	}
}

func TestClassifyLine_PureContinuationVariants(t *testing.T) {
	for _, row := range []string{"64", "$12.5", "12 | 48", "n/a", "14 52"} {
		l := ClassifyLine(row)
		if !l.PureContinuation {
			t.Errorf("%q: expected pure continuation", row)
		}
	}
	for _, row := range []string{"Chablis 45", "Fleurie n/a 40"} {
		l := ClassifyLine(row)
		if l.PureContinuation {
			t.Errorf("%q: must not be a pure continuation", row)
		}
	}
}

func TestClassifyLine_NameOnlyLinesStayNonPrice(t *testing.T) {
	// Reclassifying a clean name line never conjures prices.
	for _, row := range []string{"Pinot Noir", "Domaine de la Côte", "Riesling 175ml"} {
		if ClassifyLine(row).PriceBearing() {
			t.Errorf("%q: unexpected prices", row)
		}
	}
}

func TestClassifyLine_HeaderLabelRow(t *testing.T) {
	l := ClassifyLine("Glass Bottle 175ml")
	if l.PriceBearing() {
		t.Fatalf("label row misread as prices: %v", l.Prices)
	}
	if !l.HeaderLike {
		t.Error("expected header-like")
	}
}

func TestClassifyLine_SizeTokenBesideName(t *testing.T) {
	// A serving size next to a real name is neither a price nor a header.
	l := ClassifyLine("Riesling 175ml")
	if l.PriceBearing() {
		t.Fatalf("175 misread as a price: %v", l.Prices)
	}
	if l.HeaderLike {
		t.Error("named line misread as header")
	}
}

func TestClassifyLine_AllCapsHeader(t *testing.T) {
	for _, row := range []string{"RED WINE", "WHITE", "BY THE GLASS", "SPARKLING WINES"} {
		if !ClassifyLine(row).HeaderLike {
			t.Errorf("%q: expected header-like", row)
		}
	}
	for _, row := range []string{"Pinot Noir", "CHATEAUNEUF DU PAPE GRENACHE BLEND"} {
		if ClassifyLine(row).HeaderLike {
			t.Errorf("%q: must not be header-like", row)
		}
	}
}

func TestClassifyLine_ImplausibleWithoutCurrency(t *testing.T) {
	if l := ClassifyLine("Bin 1024"); l.PriceBearing() {
		t.Errorf("1024 without currency accepted as price: %v", l.Prices)
	}
	// Header-token context is stricter: any implausible value rejects.
	if l := ClassifyLine("glass 600 bottle 175"); l.PriceBearing() {
		t.Errorf("implausible header-context value accepted: %v", l.Prices)
	}
	// A currency symbol vouches for the value.
	if l := ClassifyLine("Grand Cru €1200"); !l.PriceBearing() {
		t.Error("currency-anchored price rejected")
	}
}

func TestStripNameTokens(t *testing.T) {
	cases := []struct {
		row, vintage, want string
	}{
		{"Chablis 2019 12 45", "2019", "Chablis"},
		{"Barolo Riserva $85", "", "Barolo Riserva"},
		{"Fleurie n/a 40", "", "Fleurie"},
		{"Meursault 48", "", "Meursault"},
	}
	for _, tc := range cases {
		if got := stripNameTokens(tc.row, tc.vintage); got != tc.want {
			t.Errorf("stripNameTokens(%q, %q) = %q, want %q", tc.row, tc.vintage, got, tc.want)
		}
	}
}

func TestExtractVintage_NoMatch(t *testing.T) {
	if v, text := extractVintage("Riesling Kabinett 48"); v != nil || text != "" {
		t.Errorf("expected no vintage, got %v (%q)", v, text)
	}
	// 4-digit numbers outside 19xx/20xx are not vintages.
	if v, _ := extractVintage("Bin 1024 Reserve"); v != nil {
		t.Errorf("expected no vintage, got %v", *v)
	}
}
