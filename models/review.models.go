package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a stored product review
type Review struct {
	ReviewID     string    `json:"reviewID"`
	ProductID    string    `json:"productID"`
	CustomerID   string    `json:"customerID"`
	CustomerName string    `json:"customerName,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewReview is the payload for creating a review
type NewReview struct {
	ProductID  string `json:"productID"`
	CustomerID string `json:"customerID"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ReviewStats summarises the reviews of one product.
// RatingDistribution always holds the keys 1 through 5.
type ReviewStats struct {
	AverageRating      float64     `json:"averageRating"`
	TotalReviews       int         `json:"totalReviews"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}
