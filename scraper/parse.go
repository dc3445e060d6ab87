package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jtlavin/portalinmo/models"
)

var (
	integerRe = regexp.MustCompile(`\d+`)
	areaRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*m`)
)

// dedupIndex tracks URLs already emitted during one run. It only ever
// grows, and is owned by the orchestrator: one index per comuna run.
type dedupIndex map[string]struct{}

func (d dedupIndex) seen(url string) bool {
	_, ok := d[url]
	return ok
}

func (d dedupIndex) add(url string) {
	d[url] = struct{}{}
}

// parseCard turns one card's markup into a Property. It returns nil for
// excluded cards (project / multi-unit), cards without a new listing
// URL, and unparseable markup, bumping the matching stats counter. A
// nil return never aborts the page; the caller moves to the next card.
func parseCard(markup string, seen dedupIndex, stats *models.PageStats) *models.Property {
	stats.Examined++

	if isProjectCard(markup) {
		stats.SkippedProjects++
		return nil
	}
	if isMultiUnitCard(markup) {
		stats.SkippedMultiUnit++
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	// A card without an extractable unique URL is unusable regardless
	// of its other fields. The index is updated before emission, so a
	// duplicate element can never produce a second record.
	url := extractListingURL(doc, seen)
	if url == "" {
		return nil
	}

	prop := &models.Property{URL: url}
	doc.Find(attributeItemSelector).Each(func(_ int, item *goquery.Selection) {
		applyAttribute(prop, item.Text())
	})
	if loc := strings.TrimSpace(doc.Find(locationSelector).First().Text()); loc != "" {
		prop.Ubicacion = &loc
	}

	stats.Accepted++
	return prop
}

// extractListingURL returns the first listing-link URL on the card that
// is not already in the index, inserting it on acceptance.
func extractListingURL(doc *goquery.Document, seen dedupIndex) string {
	var accepted string
	doc.Find(listingLinkSelector).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		full := resolveListingURL(href)
		if seen.seen(full) {
			return true
		}
		seen.add(full)
		accepted = full
		return false
	})
	return accepted
}

// resolveListingURL resolves an href against the site origin. Absolute
// URLs pass through unchanged.
func resolveListingURL(href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return baseOrigin + href
	default:
		return baseOrigin + "/" + href
	}
}

// applyAttribute classifies one attribute-list entry by keyword and
// fills the matching field. Entries with no recognised keyword, or with
// no numeric run to extract, leave the record untouched.
func applyAttribute(prop *models.Property, text string) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "dormitorio"):
		if n, ok := firstInteger(text); ok {
			prop.Dormitorios = &n
		}
	case strings.Contains(lower, "baño"):
		if n, ok := firstInteger(text); ok {
			prop.Banos = &n
		}
	case strings.Contains(text, "m²") || strings.Contains(lower, "m2"):
		if m := areaRe.FindStringSubmatch(text); m != nil {
			area := m[1] + " m²"
			prop.Superficie = &area
		}
	}
}

func firstInteger(text string) (int, bool) {
	m := integerRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
