package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/models"
	"storefront/reviews"
)

// ReviewController serves product reviews and rating summaries
type ReviewController struct {
	Reviews *reviews.Service
	Logger  *zap.Logger
}

func NewReviewController(svc *reviews.Service, logger *zap.Logger) *ReviewController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewController{Reviews: svc, Logger: logger}
}

// GetProductReviews lists reviews newest first. ?rating=N keeps one star level.
func (rc *ReviewController) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	rating := 0
	if v := r.URL.Query().Get("rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > models.MaxRating {
			writeError(w, r, http.StatusBadRequest, "Invalid rating filter")
			return
		}
		rating = n
	}

	list, err := rc.Reviews.List(r.Context(), productID, rating)
	if err != nil {
		rc.Logger.Error("failed to list reviews", zap.String("product_id", productID), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "Failed to load reviews")
		return
	}
	if list == nil {
		list = []models.Review{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetReviewStats returns the rating summary of a product
func (rc *ReviewController) GetReviewStats(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	stats, err := rc.Reviews.Stats(r.Context(), productID)
	if err != nil {
		rc.Logger.Error("failed to load review stats", zap.String("product_id", productID), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "Failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CreateReview posts a review as the signed-in customer
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productID"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	created, err := rc.Reviews.Submit(r.Context(), middleware.SessionFrom(r.Context()), body.ProductID, body.Rating, body.Comment)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, created)
	case errors.Is(err, reviews.ErrNotAuthenticated):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, reviews.ErrInvalidRating), errors.Is(err, reviews.ErrEmptyComment), errors.Is(err, reviews.ErrMissingID):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusBadGateway, "Failed to submit review. Please try again.")
	}
}
