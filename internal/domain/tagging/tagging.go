// Package tagging defines the boundary types of the auto-tagging engine:
// the per-product request, the per-product result, and the classifier
// contract the pipeline consumes.
package tagging

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidRequest signals a malformed tagging request (caller bug).
var ErrInvalidRequest = errors.New("invalid tagging request")

// Classifier turns a product image reference into candidate labels.
// Implementations must never fail: any transport or shape problem degrades
// to an empty label list at the adapter boundary, so the pipeline carries
// no failure branches for classification.
type Classifier interface {
	Classify(ctx context.Context, imageRef string) []string
}

// Request identifies one product to auto-tag (immutable value object).
type Request struct {
	productID    string
	imageRef     string
	existingTags []string
	name         string
	description  string
}

// NewRequest validates and creates a Request. A product ID is required;
// everything else may be empty (a product without an image simply gets no
// classifier candidates).
func NewRequest(productID, imageRef string, existingTags []string, name, description string) (Request, error) {
	if productID == "" {
		return Request{}, fmt.Errorf("product ID is required: %w", ErrInvalidRequest)
	}
	return Request{
		productID:    productID,
		imageRef:     imageRef,
		existingTags: cloneStrings(existingTags),
		name:         name,
		description:  description,
	}, nil
}

// ProductID returns the product identifier.
func (r *Request) ProductID() string { return r.productID }

// ImageRef returns the product image reference (URL), possibly empty.
func (r *Request) ImageRef() string { return r.imageRef }

// ExistingTags returns the human-curated tags, in their original order.
func (r *Request) ExistingTags() []string { return cloneStrings(r.existingTags) }

// Name returns the product name, possibly empty.
func (r *Request) Name() string { return r.name }

// Description returns the product description, possibly empty.
func (r *Request) Description() string { return r.description }

// Result is the outcome of one auto-tagging run. Existing tags are
// authoritative: they are never removed, rewritten, or reordered. Every
// candidate lands in exactly one of added or skipped; conflicts are the
// subset of skips caused by same-concept wording.
type Result struct {
	originalTags  []string
	suggestedTags []string
	addedTags     []string
	skippedTags   []string
	conflictTags  []string
	seoScore      int
}

// NewResult assembles a Result. Slices are cloned; nil stays nil.
func NewResult(original, suggested, added, skipped, conflicts []string, seoScore int) Result {
	return Result{
		originalTags:  cloneStrings(original),
		suggestedTags: cloneStrings(suggested),
		addedTags:     cloneStrings(added),
		skippedTags:   cloneStrings(skipped),
		conflictTags:  cloneStrings(conflicts),
		seoScore:      seoScore,
	}
}

// OriginalTags returns the tag set supplied by the caller.
func (r *Result) OriginalTags() []string { return cloneStrings(r.originalTags) }

// SuggestedTags returns all candidates produced this run, pre-merge.
func (r *Result) SuggestedTags() []string { return cloneStrings(r.suggestedTags) }

// AddedTags returns the candidates accepted into the merged set.
func (r *Result) AddedTags() []string { return cloneStrings(r.addedTags) }

// SkippedTags returns the candidates rejected as duplicates or conflicts.
func (r *Result) SkippedTags() []string { return cloneStrings(r.skippedTags) }

// ConflictTags returns the candidates rejected for same-concept wording.
func (r *Result) ConflictTags() []string { return cloneStrings(r.conflictTags) }

// SEOScore returns the 0-100 quality score of the merged tag set.
func (r *Result) SEOScore() int { return r.seoScore }

// MergedTags returns originals followed by additions, the set the caller
// would persist.
func (r *Result) MergedTags() []string {
	out := make([]string, 0, len(r.originalTags)+len(r.addedTags))
	out = append(out, r.originalTags...)
	out = append(out, r.addedTags...)
	return out
}

// MergeOutcome is the classification of one merge pass. Conflicts are a
// subset of skips: every conflicting candidate also appears in Skipped.
type MergeOutcome struct {
	Merged    []string
	Added     []string
	Skipped   []string
	Conflicts []string
}

// MetaTags is the search-engine meta triple derived from a tag set.
type MetaTags struct {
	Title       string
	Description string
	Keywords    string
}

// Suggestions is the advisory output of a read-only tag set review.
type Suggestions struct {
	Missing      []string
	Redundant    []string
	Improvements []string
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
