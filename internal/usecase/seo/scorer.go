// Package seo scores a merged tag set for search-engine quality.
package seo

import (
	"strings"

	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	"github.com/atelier-cloud/tagsmith/internal/domain/tag"
)

// Scoring weights and caps. The sub-scores are independent heuristics;
// only the final sum is clamped to [0,100].
const (
	keywordPoints = 10
	keywordCap    = 40

	colorPoints = 8
	colorCap    = 24

	occasionPoints = 6
	occasionCap    = 18

	sweetSpotBonus  = 10
	decentSpotBonus = 5

	bloatThreshold  = 20
	bloatPerTag     = 2
	diversityPoints = 2
	diversityCap    = 8

	maxScore = 100
)

// Scorer computes the 0-100 SEO quality score of a tag set.
type Scorer struct {
	reg      *registry.Registry
	keywords []string
}

// New creates a scorer using the curated marketing keyword list.
func New(reg *registry.Registry) *Scorer {
	return &Scorer{reg: reg, keywords: marketingKeywords}
}

// WithKeywords overrides the marketing keyword list.
func (s *Scorer) WithKeywords(keywords []string) *Scorer {
	if len(keywords) > 0 {
		s.keywords = keywords
	}
	return s
}

// Score computes the weighted score of the final merged tag list:
// keyword relevance, color and occasion coverage, a tag-count sweet spot,
// a bloat penalty past 20 tags, and family diversity. Clamped to [0,100].
func (s *Scorer) Score(tags []string) int {
	score := 0

	score += capped(s.countKeywordTags(tags)*keywordPoints, keywordCap)
	score += capped(s.countFamilyTags(tags, registry.FamilyColor)*colorPoints, colorCap)
	score += capped(s.countOccasionTags(tags)*occasionPoints, occasionCap)

	switch n := len(tags); {
	case n >= 5 && n <= 15:
		score += sweetSpotBonus
	case n >= 3 && n <= 20:
		score += decentSpotBonus
	}

	if len(tags) > bloatThreshold {
		score -= (len(tags) - bloatThreshold) * bloatPerTag
	}

	score += capped(s.countFamilies(tags)*diversityPoints, diversityCap)

	return clamp(score, 0, maxScore)
}

// countKeywordTags counts tags containing any marketing keyword.
func (s *Scorer) countKeywordTags(tags []string) int {
	n := 0
	for _, t := range tags {
		lower := strings.ToLower(t)
		for _, kw := range s.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				n++
				break
			}
		}
	}
	return n
}

// countFamilyTags counts tags whose registry concept belongs to family f.
func (s *Scorer) countFamilyTags(tags []string, f registry.Family) int {
	n := 0
	for _, t := range tags {
		if fam, ok := s.reg.TagFamily(t); ok && fam == f {
			n++
		}
	}
	return n
}

// countOccasionTags counts tags containing any occasion concept name.
func (s *Scorer) countOccasionTags(tags []string) int {
	occasions := s.reg.ConceptNames(registry.FamilyOccasion)
	n := 0
	for _, t := range tags {
		norm := tag.Normalize(t)
		for _, occ := range occasions {
			if strings.Contains(norm, occ) {
				n++
				break
			}
		}
	}
	return n
}

// countFamilies counts distinct concept families represented in the tags.
func (s *Scorer) countFamilies(tags []string) int {
	seen := make(map[registry.Family]bool)
	for _, t := range tags {
		if fam, ok := s.reg.TagFamily(t); ok {
			seen[fam] = true
		}
	}
	return len(seen)
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
