package reviews

import (
	"errors"
	"fmt"
	"strings"

	"storefront/models"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyComment  = errors.New("comment must not be empty")
	ErrMissingID     = errors.New("product and customer are required")
)

// ValidateNew checks a review before it is sent.
func ValidateNew(r models.NewReview) error {
	if strings.TrimSpace(r.ProductID) == "" || strings.TrimSpace(r.CustomerID) == "" {
		return ErrMissingID
	}
	if r.Rating < models.MinRating || r.Rating > models.MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, r.Rating)
	}
	if strings.TrimSpace(r.Comment) == "" {
		return ErrEmptyComment
	}
	return nil
}
