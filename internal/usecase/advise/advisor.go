// Package advise lints a tag set for human review. It is read-only and
// independent of the merge resolver: the input may be any externally
// assembled list, including ones that never went through deduplication.
package advise

import (
	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	"github.com/atelier-cloud/tagsmith/internal/domain/tag"
	"github.com/atelier-cloud/tagsmith/internal/domain/tagging"
)

// Advisory strings for essential category gaps and count thresholds.
const (
	missingColorAdvice    = "color tag (navy, black, charcoal, etc.)"
	missingOccasionAdvice = "occasion tag (wedding, business, formal, etc.)"
	tooFewTagsAdvice      = "Add more descriptive tags for better SEO"
	tooManyTagsAdvice     = "Consider removing less relevant tags to avoid SEO penalties"

	minHealthyTagCount = 5
	maxHealthyTagCount = 15
)

// Advisor reviews tag sets against the variation registry.
type Advisor struct {
	reg *registry.Registry
}

// New creates a suggestion advisor.
func New(reg *registry.Registry) *Advisor {
	return &Advisor{reg: reg}
}

// Review flags missing essential categories, normalized duplicates, and
// tag-count problems. Redundant entries are reported once per extra
// occurrence, in normalized form.
func (a *Advisor) Review(tags []string) tagging.Suggestions {
	s := tagging.Suggestions{
		Missing:      []string{},
		Redundant:    []string{},
		Improvements: []string{},
	}

	if !a.hasFamily(tags, registry.FamilyColor) {
		s.Missing = append(s.Missing, missingColorAdvice)
	}
	if !a.hasOccasion(tags) {
		s.Missing = append(s.Missing, missingOccasionAdvice)
	}

	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		norm := tag.Normalize(t)
		if seen[norm] {
			s.Redundant = append(s.Redundant, norm)
		}
		seen[norm] = true
	}

	if len(tags) < minHealthyTagCount {
		s.Improvements = append(s.Improvements, tooFewTagsAdvice)
	}
	if len(tags) > maxHealthyTagCount {
		s.Improvements = append(s.Improvements, tooManyTagsAdvice)
	}

	return s
}

func (a *Advisor) hasFamily(tags []string, f registry.Family) bool {
	for _, t := range tags {
		if fam, ok := a.reg.TagFamily(t); ok && fam == f {
			return true
		}
	}
	return false
}

// hasOccasion checks exact membership against the occasion concept names,
// stricter than the scorer's substring containment: the lint only accepts
// the canonical occasion words themselves.
func (a *Advisor) hasOccasion(tags []string) bool {
	occasions := a.reg.ConceptNames(registry.FamilyOccasion)
	for _, t := range tags {
		norm := tag.Normalize(t)
		for _, occ := range occasions {
			if norm == occ {
				return true
			}
		}
	}
	return false
}
