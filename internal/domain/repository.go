package domain

import (
	"context"
	"time"
)

// ShoppingClient defines the interface for the upstream shopping search source
type ShoppingClient interface {
	SearchProducts(ctx context.Context, query string) ([]Listing, error)
}

// VisionOracle defines the interface for the multimodal AI model.
// It is constructed once and injected; implementations must be safe for
// concurrent use since similarity scoring fans out per candidate.
type VisionOracle interface {
	ClassifyImage(ctx context.Context, img ImagePayload) (ImageLabel, error)
	ExtractItems(ctx context.Context, img ImagePayload) ([]ClothingItem, error)

	// ScoreSimilarity returns a similarity judgment in [0, 1] between the
	// reference image and the candidate's text. Callers treat an error as
	// a score of 0 for that candidate only.
	ScoreSimilarity(ctx context.Context, img ImagePayload, itemText string) (float64, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
