package scraper

import (
	"fmt"
	"strings"
)

// Selector candidate lists for the Portal Inmobiliario results markup
// (MercadoLibre "andes"/"poly" design system). Each list is tried in
// order; the first candidate that clears its acceptance condition wins.
// Centralising them makes future markup drift a one-file fix.

// candidate is one locator strategy: a CSS selector, optionally
// narrowed to elements whose text matches a regular expression
// (resolved with rod's ElementR).
type candidate struct {
	Selector string
	Text     string
}

// cardCandidates locate the listing card containers on a results page.
var cardCandidates = []string{
	"article",
	`li[class*="ui-search-layout__item"]`,
	`div[class*="ui-search-result"]`,
	".poly-card",
}

// Per-card selectors, applied to one card's markup.
const (
	listingLinkSelector   = `a[href*="/MLC-"]`
	attributeItemSelector = ".poly-attributes_list__item"
	locationSelector      = ".poly-component__location"
)

// nextControlCandidates locate the "next page" control.
var nextControlCandidates = []candidate{
	{Selector: ".andes-pagination__button--next a"},
	{Selector: "li.andes-pagination__button--next a"},
	{Selector: `a.andes-pagination__link[aria-label*="iguiente"]`},
	{Selector: "a", Text: "Siguiente"},
	{Selector: "button", Text: "Siguiente"},
	{Selector: `a[title*="iguiente"]`},
	{Selector: `a[aria-label*="iguiente"]`},
	{Selector: `.ui-search-pagination a[aria-label*="Siguiente"]`},
}

// paginationContainerCandidates locate the pagination bar, used only to
// bring it into view before the next-control lookup.
var paginationContainerCandidates = []candidate{
	{Selector: ".andes-pagination"},
	{Selector: `nav[aria-label*="pagination"]`},
	{Selector: `nav[aria-label*="Paginación"]`},
}

// popupCloserCandidates close interstitials (cookie notices, promo
// modals, ad banners). Every candidate is attempted once per dismiss
// pass, since several distinct interstitials can be up at the same time.
var popupCloserCandidates = []candidate{
	{Selector: "button", Text: "Entendido"},
	{Selector: "button", Text: "Aceptar"},
	{Selector: "button", Text: "Acepto"},
	{Selector: `button[aria-label="Cerrar"]`},
	{Selector: `button[aria-label="Close"]`},
	{Selector: `[class*="close-button"]`},
	{Selector: `[class*="modal"] button`, Text: "×"},
	{Selector: ".ad-banner button"},
	{Selector: `[class*="banner"] button[class*="close"]`},
}

// Marker strings excluding aggregate and multi-unit cards.
const (
	projectPillClass = "poly-pill__pill"
	projectPillText  = "PROYECTO"
	multiUnitClass   = "poly-component__available-units"
	multiUnitPhrase  = "unidades disponibles"
)

// URL scheme of the search surface.
const (
	baseOrigin        = "https://www.portalinmobiliario.com"
	searchURLTemplate = baseOrigin + "/venta/%s/%s-metropolitana"
)

// NormalizeComuna converts a comuna name to its URL-friendly form:
// "Las Condes" -> "las-condes".
func NormalizeComuna(comuna string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(comuna)), " ", "-")
}

// BuildSearchURL builds the search URL for a comuna and listing category.
func BuildSearchURL(comuna, propertyType string) string {
	return fmt.Sprintf(searchURLTemplate, propertyType, NormalizeComuna(comuna))
}
