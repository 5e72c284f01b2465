package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront/models"
)

// ErrNotAuthenticated is returned when a review is submitted without a signed-in customer.
var ErrNotAuthenticated = errors.New("sign in to leave a review")

// Source is where reviews are read from and written to.
type Source interface {
	ProductReviews(ctx context.Context, productID string) ([]models.Review, error)
	CreateReview(ctx context.Context, review models.NewReview) (models.Review, error)
}

// Session exposes the signed-in customer, if any.
type Session interface {
	CurrentUser() (models.User, bool)
}

// Service serves review lists and summaries for the product page.
type Service struct {
	source Source
	logger *zap.Logger
}

func NewService(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// List returns the reviews of a product, newest first, optionally filtered by rating.
func (s *Service) List(ctx context.Context, productID string, rating int) ([]models.Review, error) {
	all, err := s.source.ProductReviews(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews for %s: %w", productID, err)
	}
	return SortNewestFirst(FilterByRating(all, rating)), nil
}

// Stats fetches the reviews of a product and aggregates them.
func (s *Service) Stats(ctx context.Context, productID string) (models.ReviewStats, error) {
	all, err := s.source.ProductReviews(ctx, productID)
	if err != nil {
		return models.ReviewStats{}, fmt.Errorf("fetch reviews for %s: %w", productID, err)
	}
	return Aggregate(all), nil
}

// Submit creates a review on behalf of the signed-in customer.
func (s *Service) Submit(ctx context.Context, session Session, productID string, rating int, comment string) (models.Review, error) {
	user, ok := session.CurrentUser()
	if !ok {
		return models.Review{}, ErrNotAuthenticated
	}

	review := models.NewReview{
		ProductID:  productID,
		CustomerID: user.ID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := ValidateNew(review); err != nil {
		return models.Review{}, err
	}

	created, err := s.source.CreateReview(ctx, review)
	if err != nil {
		s.logger.Warn("create review failed", zap.String("product_id", productID), zap.Error(err))
		return models.Review{}, fmt.Errorf("create review: %w", err)
	}
	s.logger.Info("review created",
		zap.String("product_id", productID),
		zap.String("review_id", created.ReviewID),
		zap.Int("rating", rating))
	return created, nil
}
