package registry

// defaultTable is the curated menswear vocabulary. Within a concept all
// variants are mutually interchangeable; order of entries pins iteration
// order for deterministic merges, so append rather than reorder.
var defaultTable = []Entry{
	// Colors
	{Concept: "navy", Family: FamilyColor, Variants: []string{
		"navy", "navy blue", "dark blue", "midnight", "midnight blue", "deep blue",
	}},
	{Concept: "charcoal", Family: FamilyColor, Variants: []string{
		"charcoal", "dark grey", "charcoal grey", "charcoal gray", "dark gray",
	}},
	{Concept: "black", Family: FamilyColor, Variants: []string{
		"black", "jet black", "ebony", "midnight black",
	}},
	{Concept: "white", Family: FamilyColor, Variants: []string{
		"white", "ivory", "cream", "off-white", "pearl",
	}},
	{Concept: "grey", Family: FamilyColor, Variants: []string{
		"grey", "gray", "silver", "slate",
	}},
	{Concept: "burgundy", Family: FamilyColor, Variants: []string{
		"burgundy", "wine", "maroon", "deep red", "claret",
	}},

	// Occasions
	{Concept: "wedding", Family: FamilyOccasion, Variants: []string{
		"wedding", "weddings", "bridal", "groom", "groomsmen", "matrimony",
	}},
	{Concept: "prom", Family: FamilyOccasion, Variants: []string{
		"prom", "formal dance", "graduation", "school formal",
	}},
	{Concept: "business", Family: FamilyOccasion, Variants: []string{
		"business", "professional", "corporate", "office", "work",
	}},
	{Concept: "casual", Family: FamilyOccasion, Variants: []string{
		"casual", "everyday", "relaxed", "informal",
	}},
	{Concept: "formal", Family: FamilyOccasion, Variants: []string{
		"formal", "black tie", "evening", "gala", "ceremonial",
	}},

	// Fits & styles
	{Concept: "slim", Family: FamilyFit, Variants: []string{
		"slim", "slim fit", "fitted", "tailored", "narrow", "close-fitting",
	}},
	{Concept: "regular", Family: FamilyFit, Variants: []string{
		"regular", "classic fit", "standard", "traditional",
	}},
	{Concept: "modern", Family: FamilyFit, Variants: []string{
		"modern", "contemporary", "updated", "current",
	}},
	{Concept: "vintage", Family: FamilyFit, Variants: []string{
		"vintage", "retro", "classic", "timeless",
	}},

	// Garment types
	{Concept: "suit", Family: FamilyGarment, Variants: []string{
		"suit", "two-piece", "ensemble",
	}},
	{Concept: "tuxedo", Family: FamilyGarment, Variants: []string{
		"tuxedo", "tux", "dinner jacket", "formal wear",
	}},
	{Concept: "blazer", Family: FamilyGarment, Variants: []string{
		"blazer", "sport coat", "jacket",
	}},
	{Concept: "vest", Family: FamilyGarment, Variants: []string{
		"vest", "waistcoat", "gilet",
	}},

	// Fabrics
	{Concept: "wool", Family: FamilyFabric, Variants: []string{
		"wool", "woolen", "worsted",
	}},
	{Concept: "cotton", Family: FamilyFabric, Variants: []string{
		"cotton", "cotton blend",
	}},
	{Concept: "linen", Family: FamilyFabric, Variants: []string{
		"linen", "flax",
	}},
	{Concept: "silk", Family: FamilyFabric, Variants: []string{
		"silk", "silken",
	}},
	{Concept: "polyester", Family: FamilyFabric, Variants: []string{
		"polyester", "poly",
	}},

	// Patterns
	{Concept: "striped", Family: FamilyPattern, Variants: []string{
		"striped", "pinstripe", "stripe", "lined",
	}},
	{Concept: "checkered", Family: FamilyPattern, Variants: []string{
		"checkered", "checked", "plaid", "gingham",
	}},
	{Concept: "solid", Family: FamilyPattern, Variants: []string{
		"solid", "plain", "solid color", "solid colour",
	}},

	// Seasons
	{Concept: "summer", Family: FamilySeason, Variants: []string{
		"summer", "warm weather", "lightweight",
	}},
	{Concept: "winter", Family: FamilySeason, Variants: []string{
		"winter", "cold weather", "heavy",
	}},
	{Concept: "spring", Family: FamilySeason, Variants: []string{
		"spring", "transitional", "mild weather",
	}},
	{Concept: "fall", Family: FamilySeason, Variants: []string{
		"fall", "autumn", "cool weather",
	}},
}
