package clients

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"storefront/models"
)

type ReviewClient struct{ c *Client }

func NewReviewClient(c *Client) *ReviewClient { return &ReviewClient{c: c} }

// ProductReviews fetches and checks every review of a product.
func (rc *ReviewClient) ProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var list []models.Review
	if err := rc.c.doJSON(ctx, http.MethodGet, "/reviews/product/"+url.PathEscape(productID), nil, &list); err != nil {
		return nil, err
	}
	for i, r := range list {
		if err := rc.check(r); err != nil {
			return nil, err
		}
		if r.ProductID != "" && r.ProductID != productID {
			return nil, malformed(rc.c.Name, "review %d belongs to product %q", i, r.ProductID)
		}
	}
	return list, nil
}

func (rc *ReviewClient) CreateReview(ctx context.Context, review models.NewReview) (models.Review, error) {
	var created models.Review
	if err := rc.c.doJSON(ctx, http.MethodPost, "/reviews/create", review, &created); err != nil {
		return models.Review{}, err
	}
	if created.ReviewID == "" {
		return models.Review{}, malformed(rc.c.Name, "review has no reviewID")
	}
	if err := rc.check(created); err != nil {
		return models.Review{}, err
	}
	return created, nil
}

func (rc *ReviewClient) check(r models.Review) error {
	if r.Rating < models.MinRating || r.Rating > models.MaxRating {
		return malformed(rc.c.Name, "review %q has rating %d", r.ReviewID, r.Rating)
	}
	if strings.TrimSpace(r.Comment) == "" {
		return malformed(rc.c.Name, "review %q has an empty comment", r.ReviewID)
	}
	return nil
}
