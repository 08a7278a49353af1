package serpapi

import "github.com/stylelens/backend/internal/domain"

// mapToListings converts raw shopping results to domain listings.
// Missing price/thumbnail/reviews are tolerated here; the curator
// decides which listings are usable. ParsedPrice is populated from
// the provider's extracted price when it supplies one; the pipeline
// parses the display string for the rest.
func mapToListings(results []shoppingResult) []domain.Listing {
	listings := make([]domain.Listing, 0, len(results))
	for _, r := range results {
		listings = append(listings, domain.Listing{
			Position:    r.Position,
			Title:       r.Title,
			Price:       r.Price,
			ParsedPrice: r.ExtractedPrice,
			Link:        r.Link,
			Source:      r.Source,
			Thumbnail:   r.Thumbnail,
			Snippet:     r.Snippet,
			Rating:      r.Rating,
			Reviews:     r.Reviews,
		})
	}
	return listings
}
