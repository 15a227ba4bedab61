// Package dedup merges candidate tags into an existing tag set, resolving
// exact duplicates and same-concept wording conflicts.
package dedup

import (
	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	"github.com/atelier-cloud/tagsmith/internal/domain/tag"
	"github.com/atelier-cloud/tagsmith/internal/domain/tagging"
)

// Resolver applies the merge policy against a variation registry.
type Resolver struct {
	reg *registry.Registry
}

// New creates a merge resolver.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Merge processes candidates left to right against the existing tags.
// Existing tags are authoritative and pass through untouched. A candidate
// whose normalized form is already present is skipped; a candidate whose
// concept is already represented under different wording is a conflict
// (and skipped); anything else is added, and its normalized form joins the
// running seen set so later same-call duplicates resolve against it.
// Input order is the tie-break: the first candidate of a concept wins.
func (r *Resolver) Merge(existing, candidates []string) tagging.MergeOutcome {
	out := tagging.MergeOutcome{
		Merged:    make([]string, 0, len(existing)+len(candidates)),
		Added:     []string{},
		Skipped:   []string{},
		Conflicts: []string{},
	}
	out.Merged = append(out.Merged, existing...)

	seen := tag.NormalizeAll(existing)

	for _, cand := range candidates {
		norm := tag.Normalize(cand)

		if contains(seen, norm) {
			out.Skipped = append(out.Skipped, cand)
			continue
		}

		if r.conflictsWithSeen(norm, seen) {
			out.Conflicts = append(out.Conflicts, cand)
			out.Skipped = append(out.Skipped, cand)
			continue
		}

		out.Added = append(out.Added, cand)
		out.Merged = append(out.Merged, cand)
		seen = append(seen, norm)
	}

	return out
}

// conflictsWithSeen reports whether norm shares a registry concept with any
// already-seen normalized tag.
func (r *Resolver) conflictsWithSeen(norm string, seen []string) bool {
	concept, ok := r.reg.ConceptOf(norm)
	if !ok {
		return false
	}
	for _, s := range seen {
		if c, ok := r.reg.ConceptOf(s); ok && c == concept {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
