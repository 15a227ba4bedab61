// Package extract pulls candidate tags out of product copy by scanning for
// known vocabulary terms.
package extract

import "strings"

// Scan vocabularies. Deliberately simple keyword lists, not the variation
// registry: matches contribute the exact term, and list order fixes the
// candidate order for reproducible merges. "brown", "shirt" and "tie" are
// scanned even though the registry has no concept for them.
var (
	colorTerms    = []string{"navy", "black", "charcoal", "grey", "white", "burgundy", "brown"}
	occasionTerms = []string{"wedding", "prom", "business", "formal", "casual"}
	fitTerms      = []string{"slim", "regular", "modern", "classic", "fitted"}
	garmentTerms  = []string{"suit", "tuxedo", "blazer", "vest", "shirt", "tie"}
)

// Extractor derives candidate tags from product name and description.
type Extractor struct {
	vocabularies [][]string
}

// New creates a text feature extractor over the fixed vocabularies.
func New() *Extractor {
	return &Extractor{
		vocabularies: [][]string{colorTerms, occasionTerms, fitTerms, garmentTerms},
	}
}

// Extract returns every vocabulary term contained in the lowercased
// name+description, in vocabulary order. Empty fields are fine; no
// tokenization or stemming, plain substring containment.
func (e *Extractor) Extract(name, description string) []string {
	text := strings.ToLower(name + " " + description)

	var tags []string
	for _, vocab := range e.vocabularies {
		for _, term := range vocab {
			if strings.Contains(text, term) {
				tags = append(tags, term)
			}
		}
	}
	return tags
}
