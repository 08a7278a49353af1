package usecase

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/stylelens/backend/internal/domain"
)

// Default ranking weights for the AI-judge pipeline
const (
	defaultVisualWeight     = 0.8
	defaultPopularityWeight = 0.2
)

// RankerConfig holds configuration for the ranking engine
type RankerConfig struct {
	VisualWeight       float64
	PopularityWeight   float64
	EnableDebugLogging bool
}

// Ranker combines AI-judged visual similarity and popularity into one
// final score per listing and orders the pool by it.
type Ranker struct {
	visualWeight       float64
	popularityWeight   float64
	enableDebugLogging bool
}

// NewRanker creates a ranker with the given configuration
func NewRanker(config RankerConfig) *Ranker {
	visual := config.VisualWeight
	popularity := config.PopularityWeight
	if visual <= 0 && popularity <= 0 {
		visual = defaultVisualWeight
		popularity = defaultPopularityWeight
	}

	return &Ranker{
		visualWeight:       visual,
		popularityWeight:   popularity,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ScoreVisual populates VisualScore for every listing by fanning out one
// oracle call per listing. Calls are independent and latency-dominated, so
// they run concurrently and are joined as a batch. A failed or malformed
// judgment defaults that listing's score to 0; it never aborts the batch.
func (r *Ranker) ScoreVisual(
	ctx context.Context,
	oracle domain.VisionOracle,
	img domain.ImagePayload,
	listings []domain.Listing,
) {
	var wg sync.WaitGroup
	for i := range listings {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			text := listings[idx].Title
			if listings[idx].Snippet != "" {
				text += ". " + listings[idx].Snippet
			}

			score, err := oracle.ScoreSimilarity(ctx, img, text)
			if err != nil {
				if r.enableDebugLogging {
					log.Printf("[RANK] similarity scoring failed for %q: %v", listings[idx].Title, err)
				}
				score = 0
			}
			listings[idx].VisualScore = score
		}(i)
	}
	wg.Wait()
}

// Rank computes FinalScore for every listing and stable-sorts the pool
// descending by it. When withVisual is false (no reference image), the
// visual signal contributes nothing and ranking degenerates to
// popularity alone.
//
// Popularity is reviews normalized against the pool maximum, floored at 1
// so a pool of zero-review listings divides safely.
func (r *Ranker) Rank(listings []domain.Listing, withVisual bool) []domain.Listing {
	maxReviews := 1
	for _, l := range listings {
		if l.Reviews > maxReviews {
			maxReviews = l.Reviews
		}
	}

	for i := range listings {
		popularity := float64(listings[i].Reviews) / float64(maxReviews)
		if withVisual {
			listings[i].FinalScore = listings[i].VisualScore*r.visualWeight + popularity*r.popularityWeight
		} else {
			listings[i].FinalScore = popularity
		}

		if r.enableDebugLogging {
			log.Printf("[RANK] %q visual=%.2f popularity=%.2f final=%.3f",
				listings[i].Title, listings[i].VisualScore, popularity, listings[i].FinalScore)
		}
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].FinalScore > listings[j].FinalScore
	})

	return listings
}
