package models

// Property types recognised by the search URL scheme.
const (
	PropertyTypeApartment = "departamento"
	PropertyTypeHouse     = "casa"
)

// ValidPropertyType reports whether t is one of the recognised listing
// categories.
func ValidPropertyType(t string) bool {
	return t == PropertyTypeApartment || t == PropertyTypeHouse
}

// Property is one qualifying listing card from the results grid.
// Field names stay in Spanish to match the source site, as the column
// names of the CSV sink do. Optional fields are nil when the card does
// not carry them, never defaulted to zero.
type Property struct {
	URL         string  `json:"url"`
	Dormitorios *int    `json:"dormitorios,omitempty"`
	Banos       *int    `json:"banos,omitempty"`
	Superficie  *string `json:"superficie,omitempty"`
	Ubicacion   *string `json:"ubicacion,omitempty"`
}

// PageStats counts card outcomes for a single results page.
type PageStats struct {
	Examined         int `json:"examined"`
	SkippedProjects  int `json:"skipped_projects"`
	SkippedMultiUnit int `json:"skipped_multi_unit"`
	Accepted         int `json:"accepted"`
}

// Termination reasons reported in RunResult.
const (
	TerminationBudgetExhausted = "budget-exhausted"
	TerminationNoFurtherPage   = "no-further-page"
	TerminationCanceled        = "canceled"
	TerminationSessionFailure  = "session-failure"
)

// RunResult is the full output of one scrape run. Properties keep
// insertion order: page order first, DOM order within a page.
type RunResult struct {
	Properties        []Property  `json:"properties"`
	PagesProcessed    int         `json:"pages_processed"`
	TerminationReason string      `json:"termination_reason"`
	Pages             []PageStats `json:"pages,omitempty"`
}

// URLs returns the record URLs in result order, for the URL-only sink.
func (r *RunResult) URLs() []string {
	urls := make([]string, 0, len(r.Properties))
	for _, p := range r.Properties {
		urls = append(urls, p.URL)
	}
	return urls
}
