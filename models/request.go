package models

import "fmt"

// ScrapeRequest describes one scrape run: a comuna, a listing category
// and a page budget. It is the payload for POST /api/v1/scrape and the
// argument of Scraper.Scrape.
type ScrapeRequest struct {
	// Comuna is the target district, e.g. "las-condes" or "Las Condes".
	// Normalised before URL building. Required.
	Comuna string `json:"comuna"`

	// PropertyType is the listing category: "departamento" or "casa".
	// Default: "departamento".
	PropertyType string `json:"property_type,omitempty"`

	// MaxPages is the page budget for the run. Default: 3.
	MaxPages int `json:"max_pages,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	if r.PropertyType == "" {
		r.PropertyType = PropertyTypeApartment
	}
	if r.MaxPages == 0 {
		r.MaxPages = 3
	}
}

// Validate rejects malformed requests before any browser page is
// acquired. It returns a *ScrapeError with ErrCodeInvalidInput.
func (r *ScrapeRequest) Validate() error {
	if r.Comuna == "" {
		return NewScrapeError(ErrCodeInvalidInput, "comuna must not be empty", nil)
	}
	if !ValidPropertyType(r.PropertyType) {
		return NewScrapeError(ErrCodeInvalidInput,
			fmt.Sprintf("property_type must be %q or %q, got %q",
				PropertyTypeApartment, PropertyTypeHouse, r.PropertyType), nil)
	}
	if r.MaxPages < 1 {
		return NewScrapeError(ErrCodeInvalidInput,
			fmt.Sprintf("max_pages must be at least 1, got %d", r.MaxPages), nil)
	}
	return nil
}
