package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
	"storefront/reviews"
)

type reviewDoc struct {
	ID           string    `bson:"_id"`
	ProductID    string    `bson:"product_id"`
	CustomerID   string    `bson:"customer_id"`
	CustomerName string    `bson:"customer_name,omitempty"`
	Rating       int       `bson:"rating"`
	Comment      string    `bson:"comment"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d reviewDoc) review() models.Review {
	return models.Review{
		ReviewID:     d.ID,
		ProductID:    d.ProductID,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		Rating:       d.Rating,
		Comment:      d.Comment,
		CreatedAt:    d.CreatedAt,
	}
}

// ReviewStore stores reviews in the "reviews" collection
type ReviewStore struct {
	Collection *mongo.Collection
	Accounts   *AccountStore
	now        func() time.Time
}

func NewReviewStore(db *mongo.Database, accounts *AccountStore) *ReviewStore {
	return &ReviewStore{Collection: db.Collection("reviews"), Accounts: accounts, now: time.Now}
}

func (s *ReviewStore) ProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.Collection.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reviewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	out := make([]models.Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.review())
	}
	return out, nil
}

// CreateReview validates and stores a review, filling in the customer's name when known.
func (s *ReviewStore) CreateReview(ctx context.Context, review models.NewReview) (models.Review, error) {
	if err := reviews.ValidateNew(review); err != nil {
		return models.Review{}, err
	}

	doc := reviewDoc{
		ID:         uuid.NewString(),
		ProductID:  review.ProductID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  s.now().UTC(),
	}
	if s.Accounts != nil {
		if acct, err := s.Accounts.FindByID(ctx, review.CustomerID); err == nil {
			doc.CustomerName = acct.Name
		}
	}

	if _, err := s.Collection.InsertOne(ctx, doc); err != nil {
		return models.Review{}, fmt.Errorf("insert review: %w", err)
	}
	return doc.review(), nil
}
