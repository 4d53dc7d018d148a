package menu

// Price holds the per-serving price columns of a wine entry. Nil means the
// menu did not state the value (or stated it as unavailable).
type Price struct {
	Currency *string  `json:"currency"`
	Bottle   *float64 `json:"bottle"`
	Glass    *float64 `json:"glass"`
}

// Wine is one structured wine record parsed from a menu. IDs are assigned
// in emission order after a full parse, starting at "1".
type Wine struct {
	ID      string `json:"id"`
	RawText string `json:"rawText"`

	// Group is the explicit group header the entry appeared under
	// (e.g. "RED WINE", "Sparkling").
	Group *string `json:"wineGroup"`

	// Section mirrors Group; older clients still read this field.
	Section *string `json:"section"`

	Name     *string `json:"name"`
	Producer *string `json:"producer"`
	Region   *string `json:"region"`
	Vintage  *int    `json:"vintage"`
	Grape    *string `json:"grape"`

	// Description is only ever set by enrichment.
	Description *string `json:"description"`

	Price Price `json:"price"`
}

func strPtr(s string) *string { return &s }
