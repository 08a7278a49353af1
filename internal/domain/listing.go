package domain

// PriceTier identifies one of the three curated price brackets
type PriceTier string

const (
	TierAffordable PriceTier = "affordable"
	TierMidRange   PriceTier = "mid_range"
	TierPremium    PriceTier = "premium"
)

// Bracket bounds in the shopping source's currency. Affordable is [0, 75),
// Mid-Range is [75, 250), Premium is [250, inf). Fixed at compile time.
const (
	MidRangeMin      = 75.0
	PremiumMin       = 250.0
	MidRangeMidpoint = 162.5
)

// TierFor returns the bracket a non-negative price falls into.
// The brackets are contiguous and non-overlapping, so every price
// maps to exactly one tier.
func TierFor(price float64) PriceTier {
	switch {
	case price < MidRangeMin:
		return TierAffordable
	case price < PremiumMin:
		return TierMidRange
	default:
		return TierPremium
	}
}

// Listing represents a single shopping result from the product search source
type Listing struct {
	Position    int     `json:"position"`
	Title       string  `json:"title"`
	Price       string  `json:"price"`
	ParsedPrice float64 `json:"parsedPrice"`
	Link        string  `json:"link,omitempty"`
	Source      string  `json:"source,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Snippet     string  `json:"snippet,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Reviews     int     `json:"reviews,omitempty"`

	// VisualScore is the AI-judged similarity to the reference image,
	// normalized to 0-1. Zero when no reference image was supplied or
	// the judge call failed.
	VisualScore float64 `json:"visualScore,omitempty"`

	// FinalScore is the weighted combination of visual similarity and
	// popularity computed by the ranking engine.
	FinalScore float64 `json:"finalScore,omitempty"`

	// Tier is assigned during curation; empty until then.
	Tier PriceTier `json:"priceTier,omitempty"`
}

// Usable reports whether the listing carries enough data to be curated.
// A listing needs both a parseable non-zero price and a thumbnail.
func (l Listing) Usable() bool {
	return l.ParsedPrice > 0 && l.Thumbnail != ""
}

// SearchRequest represents a text-only product search request
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}
