// Package registry holds the curated table of tag concepts and their
// interchangeable surface-form variants.
package registry

import (
	"fmt"

	"github.com/atelier-cloud/tagsmith/internal/domain/tag"
)

// Family is a semantic grouping of concepts.
type Family string

// Concept families, in presentation priority order.
const (
	FamilyColor    Family = "color"
	FamilyOccasion Family = "occasion"
	FamilyFit      Family = "fit"
	FamilyGarment  Family = "garment"
	FamilyFabric   Family = "fabric"
	FamilyPattern  Family = "pattern"
	FamilySeason   Family = "season"
)

// Families returns all concept families in their fixed order.
func Families() []Family {
	return []Family{
		FamilyColor, FamilyOccasion, FamilyFit, FamilyGarment,
		FamilyFabric, FamilyPattern, FamilySeason,
	}
}

// Entry defines one concept for registry construction.
type Entry struct {
	Concept  string
	Family   Family
	Variants []string
}

type concept struct {
	name     string
	family   Family
	variants []string // normalized
}

// Registry is an immutable concept lookup with a precomputed reverse index
// from normalized variant to concept. Safe for concurrent use.
type Registry struct {
	concepts  []concept
	byVariant map[string]int
	byName    map[string]int
}

// New builds a Registry from entries. Entry order is preserved and pins
// tie-breaking everywhere the registry is iterated. When two concepts claim
// the same normalized variant, the first registration wins; the curated
// table is kept collision-free, so this is not validated further.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		concepts:  make([]concept, 0, len(entries)),
		byVariant: make(map[string]int),
		byName:    make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if e.Concept == "" {
			return nil, fmt.Errorf("registry entry with empty concept name")
		}
		if len(e.Variants) == 0 {
			return nil, fmt.Errorf("concept %q has no variants", e.Concept)
		}
		if _, dup := r.byName[e.Concept]; dup {
			return nil, fmt.Errorf("duplicate concept %q", e.Concept)
		}

		idx := len(r.concepts)
		c := concept{name: e.Concept, family: e.Family, variants: tag.NormalizeAll(e.Variants)}
		r.concepts = append(r.concepts, c)
		r.byName[e.Concept] = idx
		for _, v := range c.variants {
			if _, taken := r.byVariant[v]; !taken {
				r.byVariant[v] = idx
			}
		}
	}

	return r, nil
}

// MustNew builds a Registry or panics. For static tables.
func MustNew(entries []Entry) *Registry {
	r, err := New(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns a registry built from the curated menswear table.
func Default() *Registry {
	return MustNew(defaultTable)
}

// ConceptOf returns the concept a tag belongs to, if any. The tag is
// normalized before lookup.
func (r *Registry) ConceptOf(t string) (string, bool) {
	idx, ok := r.byVariant[tag.Normalize(t)]
	if !ok {
		return "", false
	}
	return r.concepts[idx].name, true
}

// FamilyOf returns the family of a concept.
func (r *Registry) FamilyOf(conceptName string) (Family, bool) {
	idx, ok := r.byName[conceptName]
	if !ok {
		return "", false
	}
	return r.concepts[idx].family, true
}

// TagFamily returns the family of the concept a tag belongs to, if any.
func (r *Registry) TagFamily(t string) (Family, bool) {
	c, ok := r.ConceptOf(t)
	if !ok {
		return "", false
	}
	return r.FamilyOf(c)
}

// VariantsOf returns the normalized variants of a concept, in table order.
func (r *Registry) VariantsOf(conceptName string) []string {
	idx, ok := r.byName[conceptName]
	if !ok {
		return nil
	}
	out := make([]string, len(r.concepts[idx].variants))
	copy(out, r.concepts[idx].variants)
	return out
}

// ConceptNames returns concept names of one family, in table order.
func (r *Registry) ConceptNames(f Family) []string {
	var out []string
	for _, c := range r.concepts {
		if c.family == f {
			out = append(out, c.name)
		}
	}
	return out
}

// Len returns the number of concepts.
func (r *Registry) Len() int { return len(r.concepts) }
