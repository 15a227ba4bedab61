package meta

import (
	"strings"
	"testing"

	"github.com/atelier-cloud/tagsmith/internal/domain/registry"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	return New(registry.Default())
}

func TestBuild_TitleFromFamilies(t *testing.T) {
	g := newGenerator(t)

	m := g.Build([]string{"wool", "navy", "wedding", "suit", "slim"}, "Navy Suit")

	// First color, first garment, first occasion — regardless of the
	// other families in between.
	want := "Navy Suit For Wedding | " + DefaultBrand
	if m.Title != want {
		t.Errorf("Title = %q, want %q", m.Title, want)
	}
}

func TestBuild_TitleVariantWording(t *testing.T) {
	g := newGenerator(t)

	m := g.Build([]string{"midnight blue", "tux"}, "")
	want := "Midnight Blue Tux | " + DefaultBrand
	if m.Title != want {
		t.Errorf("Title = %q, want %q", m.Title, want)
	}
}

func TestBuild_TitleFallsBackToProductName(t *testing.T) {
	g := newGenerator(t)

	m := g.Build([]string{"bestseller"}, "gift card")
	if m.Title != "Gift Card | "+DefaultBrand {
		t.Errorf("Title = %q", m.Title)
	}

	m = g.Build(nil, "")
	if m.Title != DefaultBrand {
		t.Errorf("Title = %q", m.Title)
	}
}

func TestBuild_DescriptionFirstFiveTags(t *testing.T) {
	g := newGenerator(t)

	tags := []string{"navy", "wedding", "slim", "wool", "suit", "striped", "summer"}
	m := g.Build(tags, "x")

	if !strings.Contains(m.Description, "navy, wedding, slim, wool, suit") {
		t.Errorf("Description = %q", m.Description)
	}
	if strings.Contains(m.Description, "striped") {
		t.Errorf("Description includes tag past the first five: %q", m.Description)
	}
}

func TestBuild_Keywords(t *testing.T) {
	g := newGenerator(t)

	m := g.Build([]string{"navy", "suit"}, "x")
	want := "navy, suit, " + DefaultBrand + ", men's formal wear, custom tailoring"
	if m.Keywords != want {
		t.Errorf("Keywords = %q, want %q", m.Keywords, want)
	}
}

func TestWithBrand(t *testing.T) {
	g := New(registry.Default()).WithBrand("Kalamazoo Formal")

	m := g.Build([]string{"navy", "suit"}, "x")
	if !strings.HasSuffix(m.Title, "| Kalamazoo Formal") {
		t.Errorf("Title = %q", m.Title)
	}
	if !strings.Contains(m.Keywords, "Kalamazoo Formal") {
		t.Errorf("Keywords = %q", m.Keywords)
	}
}
