package tagging

import domtag "github.com/atelier-cloud/tagsmith/internal/domain/tagging"

// TextExtractor derives candidate tags from product copy.
type TextExtractor interface {
	Extract(name, description string) []string
}

// MergeResolver applies the deduplication policy to candidate tags.
type MergeResolver interface {
	Merge(existing, candidates []string) domtag.MergeOutcome
}

// Scorer rates a merged tag set.
type Scorer interface {
	Score(tags []string) int
}
