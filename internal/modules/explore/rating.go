package explore

import (
	"math"

	"reviewtrust/internal/domain"
)

// RatingStats is the per-business review aggregate: sum of ratings and number
// of reviews.
type RatingStats struct {
	Total int
	Count int
}

// Average is the raw mean, 0 when there are no reviews. Used for ordering so
// ties are decided on exact values, not display rounding.
func (s RatingStats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Count)
}

// Rounded is the user-facing rating: half-up to one decimal place.
func (s RatingStats) Rounded() float64 {
	return math.Round(s.Average()*10) / 10
}

// AccumulateRatingStats folds (reviewee, rating) pairs into a map keyed by
// business id. One linear pass: O(reviews), regardless of how many businesses
// the caller later looks up.
func AccumulateRatingStats(pairs []domain.ReviewRating) map[int64]RatingStats {
	stats := make(map[int64]RatingStats)
	for _, p := range pairs {
		entry := stats[p.RevieweeID]
		entry.Total += p.Rating
		entry.Count++
		stats[p.RevieweeID] = entry
	}
	return stats
}
