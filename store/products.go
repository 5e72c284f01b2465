package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

type productDoc struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Image       string               `bson:"image_url"`
	Category    string               `bson:"category,omitempty"`
	Sizes       []string             `bson:"sizes,omitempty"`
	Colors      []string             `bson:"colors,omitempty"`
}

func (d productDoc) product() (models.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: %w", d.ID, err)
	}
	return models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Image:       d.Image,
		Category:    d.Category,
		Sizes:       d.Sizes,
		Colors:      d.Colors,
	}, nil
}

// ProductStore reads the catalog from the "products" collection
type ProductStore struct {
	Collection *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{Collection: db.Collection("products")}
}

func (s *ProductStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	out := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.product()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProductStore) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var doc productDoc
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product: %w", err)
	}
	return doc.product()
}

// CreateProduct adds a catalog entry and returns it with its new id.
func (s *ProductStore) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if strings.TrimSpace(p.Name) == "" || p.Price.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: name is required and price must not be negative", ErrInvalidProduct)
	}
	price, err := toDecimal128(p.Price)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = uuid.NewString()
	doc := productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Image:       p.Image,
		Category:    p.Category,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
	}
	if _, err := s.Collection.InsertOne(ctx, doc); err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}
