package domain

// ImageLabel is the oracle's classification of an uploaded photo
type ImageLabel string

const (
	LabelOutfit     ImageLabel = "outfit"
	LabelSingleItem ImageLabel = "single_item"
	LabelNotFashion ImageLabel = "not_fashion"
)

// ImagePayload carries an uploaded image in the form the oracle consumes
type ImagePayload struct {
	Base64 string // raw base64, no data-URL prefix
	MIME   string // e.g. "image/jpeg"
}

// ClothingItem is one fashion item the oracle extracted from a photo.
// Query is the oracle's suggested shopping-search phrase; Significance
// (1-10) reflects how prominent the item is in the photo.
type ClothingItem struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Query        string `json:"query"`
	Category     string `json:"category,omitempty"`
	Significance int    `json:"significance"`
}

// ItemRecommendation pairs one extracted item with its curated picks,
// at most one listing per price tier, ordered by ascending price.
type ItemRecommendation struct {
	Item  ClothingItem `json:"item"`
	Picks []Listing    `json:"picks"`
}

// AnalysisResult is the full outcome of analyzing one uploaded photo
type AnalysisResult struct {
	Label           ImageLabel           `json:"label"`
	Recommendations []ItemRecommendation `json:"recommendations"`
}
