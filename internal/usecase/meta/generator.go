// Package meta assembles search-engine meta tags from a product tag set.
package meta

import (
	"strings"

	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
	"github.com/atelier-cloud/tagsmith/internal/domain/tagging"
)

// DefaultBrand is the storefront brand used in titles and keywords when no
// override is configured.
const DefaultBrand = "Atelier Menswear"

const descriptionTagLimit = 5

// Generator builds the meta title/description/keywords triple.
type Generator struct {
	reg   *registry.Registry
	brand string
}

// New creates a meta-tag generator.
func New(reg *registry.Registry) *Generator {
	return &Generator{reg: reg, brand: DefaultBrand}
}

// WithBrand overrides the brand phrase.
func (g *Generator) WithBrand(brand string) *Generator {
	if brand != "" {
		g.brand = brand
	}
	return g
}

// Build derives meta tags deterministically: the first color-family tag,
// first garment-family tag, and first occasion-family tag make the title;
// the first five tags fill the description template; all tags plus the
// brand and two fixed category phrases become the keyword string. No
// ranking beyond first-match-in-input-order.
func (g *Generator) Build(tags []string, productName string) tagging.MetaTags {
	title := g.buildTitle(tags)
	if title == "" {
		title = g.brand
		if productName != "" {
			title = titleCase(productName) + " | " + g.brand
		}
	}

	return tagging.MetaTags{
		Title:       title,
		Description: g.buildDescription(tags),
		Keywords:    g.buildKeywords(tags),
	}
}

func (g *Generator) buildTitle(tags []string) string {
	color := g.firstOfFamily(tags, registry.FamilyColor)
	garment := g.firstOfFamily(tags, registry.FamilyGarment)
	occasion := g.firstOfFamily(tags, registry.FamilyOccasion)

	var parts []string
	if color != "" {
		parts = append(parts, color)
	}
	if garment != "" {
		parts = append(parts, garment)
	}
	if occasion != "" {
		parts = append(parts, "for "+occasion)
	}
	if len(parts) == 0 {
		return ""
	}

	return titleCase(strings.Join(parts, " ")) + " | " + g.brand
}

func (g *Generator) buildDescription(tags []string) string {
	highlight := tags
	if len(highlight) > descriptionTagLimit {
		highlight = highlight[:descriptionTagLimit]
	}
	return "Shop premium " + strings.Join(highlight, ", ") + " at " + g.brand +
		". Expert tailoring, luxury fabrics, perfect fit guaranteed. Free shipping on orders over $500."
}

func (g *Generator) buildKeywords(tags []string) string {
	parts := make([]string, 0, len(tags)+3)
	parts = append(parts, tags...)
	parts = append(parts, g.brand, "men's formal wear", "custom tailoring")
	return strings.Join(parts, ", ")
}

// firstOfFamily returns the first tag whose registry concept belongs to f.
func (g *Generator) firstOfFamily(tags []string, f registry.Family) string {
	for _, t := range tags {
		if fam, ok := g.reg.TagFamily(t); ok && fam == f {
			return t
		}
	}
	return ""
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
