package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL           time.Duration
	VisualWeight       float64
	PopularityWeight   float64
	MinSignificance    int
	MaxItems           int
	EnableDebugLogging bool
}

// SearchService curates shopping recommendations, with and without a
// reference image. All state is request-scoped; the service itself only
// holds injected capabilities and tuning.
type SearchService struct {
	shopping           domain.ShoppingClient
	oracle             domain.VisionOracle
	cache              domain.CacheRepository
	ranker             *Ranker
	cacheTTL           time.Duration
	minSignificance    int
	maxItems           int
	enableDebugLogging bool
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	shopping domain.ShoppingClient,
	oracle domain.VisionOracle,
	cache domain.CacheRepository,
	config SearchServiceConfig,
) *SearchService {
	ranker := NewRanker(RankerConfig{
		VisualWeight:       config.VisualWeight,
		PopularityWeight:   config.PopularityWeight,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	minSignificance := config.MinSignificance
	if minSignificance <= 0 {
		minSignificance = 5
	}
	maxItems := config.MaxItems
	if maxItems <= 0 {
		maxItems = 4
	}

	return &SearchService{
		shopping:           shopping,
		oracle:             oracle,
		cache:              cache,
		ranker:             ranker,
		cacheTTL:           cacheTTL,
		minSignificance:    minSignificance,
		maxItems:           maxItems,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// SearchProducts curates a recommendation trio for a plain text query.
// Without a reference image there is no visual signal, so ranking is
// popularity-only. An empty candidate pool is not an error.
func (s *SearchService) SearchProducts(ctx context.Context, query string) ([]domain.Listing, error) {
	query = CleanQuery(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	listings, err := s.fetchListings(ctx, query)
	if err != nil {
		return nil, err
	}

	pool := preparePool(listings)
	if len(pool) == 0 {
		return []domain.Listing{}, nil
	}

	ranked := s.ranker.Rank(pool, false)
	return CurateTiers(ranked), nil
}

// AnalyzeImage classifies an uploaded photo, extracts the fashion items in
// it, and curates a recommendation trio per significant item using
// AI-judged visual similarity.
func (s *SearchService) AnalyzeImage(ctx context.Context, img domain.ImagePayload) (*domain.AnalysisResult, error) {
	label, err := s.oracle.ClassifyImage(ctx, img)
	if err != nil {
		return nil, err
	}
	if label == domain.LabelNotFashion {
		return nil, domain.ErrNotFashion
	}

	items, err := s.oracle.ExtractItems(ctx, img)
	if err != nil {
		return nil, err
	}

	selected := s.selectItems(items)
	result := &domain.AnalysisResult{
		Label:           label,
		Recommendations: make([]domain.ItemRecommendation, 0, len(selected)),
	}

	for _, item := range selected {
		picks, err := s.curateForItem(ctx, img, item)
		if err != nil {
			// One item's search failing should not sink the items that
			// already succeeded; the item is reported with no picks.
			log.Printf("[CURATE] search failed for item %q: %v", item.Name, err)
			picks = []domain.Listing{}
		}
		result.Recommendations = append(result.Recommendations, domain.ItemRecommendation{
			Item:  item,
			Picks: picks,
		})
	}

	return result, nil
}

// selectItems keeps the most significant extracted items, bounding the
// shopping and scoring fan-out per request.
func (s *SearchService) selectItems(items []domain.ClothingItem) []domain.ClothingItem {
	kept := make([]domain.ClothingItem, 0, len(items))
	for _, item := range items {
		if item.Significance >= s.minSignificance {
			kept = append(kept, item)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Significance > kept[j].Significance
	})

	if len(kept) > s.maxItems {
		kept = kept[:s.maxItems]
	}
	return kept
}

// curateForItem runs the full pipeline for one extracted item:
// search, filter, visual scoring fan-out, rank, curate.
func (s *SearchService) curateForItem(ctx context.Context, img domain.ImagePayload, item domain.ClothingItem) ([]domain.Listing, error) {
	query := CleanQuery(item.Query)
	if query == "" {
		query = CleanQuery(item.Name)
	}
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	listings, err := s.fetchListings(ctx, query)
	if err != nil {
		return nil, err
	}

	pool := preparePool(listings)
	if len(pool) == 0 {
		return []domain.Listing{}, nil
	}

	s.ranker.ScoreVisual(ctx, s.oracle, img, pool)
	ranked := s.ranker.Rank(pool, true)
	return CurateTiers(ranked), nil
}

// fetchListings returns shopping results for the query, consulting the
// cache first. Cached listings are copied out so the per-request pipeline
// never mutates the cached pool.
func (s *SearchService) fetchListings(ctx context.Context, query string) ([]domain.Listing, error) {
	cacheKey := fmt.Sprintf("search:%s", normalizeForCacheKey(query))

	if value, err := s.cache.Get(ctx, cacheKey); err == nil {
		if cached, ok := value.([]domain.Listing); ok {
			if s.enableDebugLogging {
				log.Printf("[CURATE] cache hit for %q (%d listings)", query, len(cached))
			}
			return cloneListings(cached), nil
		}
	}

	listings, err := s.shopping.SearchProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchAPIFailure, err)
	}

	if err := s.cache.Set(ctx, cacheKey, cloneListings(listings), s.cacheTTL); err != nil && s.enableDebugLogging {
		log.Printf("[CURATE] cache store failed for %q: %v", query, err)
	}

	return listings, nil
}

// preparePool normalizes prices and drops listings that cannot be curated.
// Only listings with both a usable price and a thumbnail enter the pool.
func preparePool(listings []domain.Listing) []domain.Listing {
	pool := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.ParsedPrice <= 0 {
			l.ParsedPrice = ParsePrice(l.Price)
		}
		if l.Usable() {
			pool = append(pool, l)
		}
	}
	return pool
}

func cloneListings(listings []domain.Listing) []domain.Listing {
	cloned := make([]domain.Listing, len(listings))
	copy(cloned, listings)
	return cloned
}
