package usecase

import (
	"math"
	"sort"

	"github.com/stylelens/backend/internal/domain"
)

// CurateTiers selects at most one listing per price tier from a ranked pool
// and returns the picks tagged with their tier, ordered by ascending price.
//
// Selection runs in two passes. The primary pass partitions the pool into
// the three price brackets and takes the best-ranked listing from each
// non-empty bucket; the Mid-Range and Premium buckets only admit listings
// whose title names a recognized brand for that tier, so an all-generic
// bucket counts as empty. The fallback pass then fills any still-empty tier
// from the leftovers of the whole pool, in a fixed order: Premium takes the
// highest-priced leftover, Affordable the lowest-priced, Mid-Range the one
// closest to the bracket midpoint. Each fallback consumes from the shrinking
// leftover pool before the next runs, so a tier stays empty only when the
// pool is exhausted first.
//
// A listing's source position is the dedup key: no position appears twice
// in the result.
func CurateTiers(ranked []domain.Listing) []domain.Listing {
	var affordable, midRange, premium []domain.Listing
	for _, l := range ranked {
		switch domain.TierFor(l.ParsedPrice) {
		case domain.TierAffordable:
			affordable = append(affordable, l)
		case domain.TierMidRange:
			midRange = append(midRange, l)
		case domain.TierPremium:
			premium = append(premium, l)
		}
	}

	used := make(map[int]bool)
	var picks []domain.Listing

	take := func(l domain.Listing, tier domain.PriceTier) {
		used[l.Position] = true
		l.Tier = tier
		picks = append(picks, l)
	}

	if l, ok := pickFromBucket(affordable, used, nil); ok {
		take(l, domain.TierAffordable)
	}
	if l, ok := pickFromBucket(midRange, used, HasMidRangeBrand); ok {
		take(l, domain.TierMidRange)
	}
	if l, ok := pickFromBucket(premium, used, HasPremiumBrand); ok {
		take(l, domain.TierPremium)
	}

	// Fallback pass, fixed order: Premium, Affordable, Mid-Range.
	if !hasTier(picks, domain.TierPremium) {
		if l, ok := pickLeftover(ranked, used, func(a, b domain.Listing) bool {
			return a.ParsedPrice > b.ParsedPrice
		}); ok {
			take(l, domain.TierPremium)
		}
	}
	if !hasTier(picks, domain.TierAffordable) {
		if l, ok := pickLeftover(ranked, used, func(a, b domain.Listing) bool {
			return a.ParsedPrice < b.ParsedPrice
		}); ok {
			take(l, domain.TierAffordable)
		}
	}
	if !hasTier(picks, domain.TierMidRange) {
		if l, ok := pickLeftover(ranked, used, func(a, b domain.Listing) bool {
			return math.Abs(a.ParsedPrice-domain.MidRangeMidpoint) < math.Abs(b.ParsedPrice-domain.MidRangeMidpoint)
		}); ok {
			take(l, domain.TierMidRange)
		}
	}

	// Final order is by ascending price, independent of selection order.
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].ParsedPrice < picks[j].ParsedPrice
	})

	return picks
}

// pickFromBucket returns the first unused listing in the bucket's ranked
// order. When a brand gate is given, only listings passing it qualify;
// a bucket whose listings all fail the gate yields nothing and is filled
// by the fallback pass instead, where its listings remain eligible as
// leftovers.
func pickFromBucket(bucket []domain.Listing, used map[int]bool, brandGate func(string) bool) (domain.Listing, bool) {
	for _, l := range bucket {
		if used[l.Position] {
			continue
		}
		if brandGate != nil && !brandGate(l.Title) {
			continue
		}
		return l, true
	}
	return domain.Listing{}, false
}

// pickLeftover returns the unused listing that wins under the given strict
// ordering. Ties keep the earlier (better-ranked) listing.
func pickLeftover(pool []domain.Listing, used map[int]bool, better func(a, b domain.Listing) bool) (domain.Listing, bool) {
	var best domain.Listing
	found := false
	for _, l := range pool {
		if used[l.Position] {
			continue
		}
		if !found || better(l, best) {
			best = l
			found = true
		}
	}
	return best, found
}

func hasTier(picks []domain.Listing, tier domain.PriceTier) bool {
	for _, p := range picks {
		if p.Tier == tier {
			return true
		}
	}
	return false
}
