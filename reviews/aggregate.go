// Package reviews computes rating summaries and validates review submissions.
package reviews

import (
	"sort"

	"github.com/shopspring/decimal"

	"storefront/models"
)

// EmptyDistribution returns a histogram with every rating bucket at zero.
func EmptyDistribution() map[int]int {
	dist := make(map[int]int, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		dist[r] = 0
	}
	return dist
}

// Aggregate summarises reviews into an average, a count and a 1-5 histogram.
// Reviews with a rating outside 1-5 are skipped.
func Aggregate(reviews []models.Review) models.ReviewStats {
	stats := models.ReviewStats{RatingDistribution: EmptyDistribution()}

	sum := 0
	for _, r := range reviews {
		if r.Rating < models.MinRating || r.Rating > models.MaxRating {
			continue
		}
		stats.RatingDistribution[r.Rating]++
		stats.TotalReviews++
		sum += r.Rating
	}
	if stats.TotalReviews == 0 {
		return stats
	}

	avg := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(stats.TotalReviews))).
		Round(1)
	stats.AverageRating = avg.InexactFloat64()
	return stats
}

// FilterByRating keeps the reviews with exactly the given rating. Zero keeps all.
func FilterByRating(reviews []models.Review, rating int) []models.Review {
	if rating == 0 {
		return reviews
	}
	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Rating == rating {
			out = append(out, r)
		}
	}
	return out
}

// SortNewestFirst orders reviews by creation time, latest first.
func SortNewestFirst(reviews []models.Review) []models.Review {
	out := make([]models.Review, len(reviews))
	copy(out, reviews)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
