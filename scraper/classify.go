package scraper

import "strings"

// isProjectCard reports whether the card markup carries the PROYECTO
// pill, an aggregated multi-property development rather than one
// concrete unit. Both the pill class and the label must be present.
func isProjectCard(markup string) bool {
	return strings.Contains(markup, projectPillClass) &&
		strings.Contains(strings.ToUpper(markup), projectPillText)
}

// isMultiUnitCard reports whether the card offers several
// interchangeable units ("N unidades disponibles"). Either the marker
// class or the phrase is enough.
func isMultiUnitCard(markup string) bool {
	return strings.Contains(markup, multiUnitClass) ||
		strings.Contains(strings.ToLower(markup), multiUnitPhrase)
}
