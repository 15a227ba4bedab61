package seo

// marketingKeywords are the high-value search terms a tag earns relevance
// points for containing. Curated by the marketing team, not learned.
var marketingKeywords = []string{
	// High-value commerce terms
	"men's", "mens", "formal wear", "business attire", "wedding attire",
	"designer", "luxury", "premium", "custom", "tailored", "fitted",
	"professional", "elegant", "sophisticated", "classic", "modern",
	"sale", "discount", "best", "top", "quality", "brand",

	// Core occasions
	"wedding", "prom", "business",

	// Location-based
	"michigan", "kalamazoo", "portage", "detroit", "grand rapids",

	// Occasion phrases
	"job interview", "wedding guest", "groomsmen", "best man",
	"prom night", "graduation", "business meeting", "formal event",
}
