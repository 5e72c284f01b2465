// Package store keeps orders, reviews and accounts in MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/models"
)

var ErrInvalidOrder = errors.New("invalid order")

type orderDoc struct {
	ID            string               `bson:"_id"`
	ProductID     string               `bson:"product_id"`
	CustomerID    string               `bson:"customer_id"`
	Quantity      int                  `bson:"quantity"`
	Total         primitive.Decimal128 `bson:"total"`
	PaymentMethod string               `bson:"payment_method"`
	PaymentStatus string               `bson:"payment_status"`
	CreatedAt     time.Time            `bson:"created_at"`
}

func (d orderDoc) record() (models.OrderRecord, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
	}
	return models.OrderRecord{
		OrderID:       d.ID,
		ProductID:     d.ProductID,
		CustomerID:    d.CustomerID,
		Quantity:      d.Quantity,
		Total:         total,
		PaymentMethod: models.PaymentMethod(d.PaymentMethod),
		PaymentStatus: models.PaymentStatus(d.PaymentStatus),
	}, nil
}

// OrderStore stores orders in the "orders" collection
type OrderStore struct {
	Collection *mongo.Collection
	now        func() time.Time
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{Collection: db.Collection("orders"), now: time.Now}
}

// CreateOrder validates and stores the order. Cash orders start as
// PENDING_PICKUP, every other method as PENDING.
func (s *OrderStore) CreateOrder(ctx context.Context, order models.Order) (models.OrderRecord, error) {
	switch {
	case strings.TrimSpace(order.ProductID) == "" || strings.TrimSpace(order.CustomerID) == "":
		return models.OrderRecord{}, fmt.Errorf("%w: product and customer are required", ErrInvalidOrder)
	case order.Quantity <= 0:
		return models.OrderRecord{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	case order.Total.IsNegative():
		return models.OrderRecord{}, fmt.Errorf("%w: total must not be negative", ErrInvalidOrder)
	case !order.PaymentMethod.Valid():
		return models.OrderRecord{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, order.PaymentMethod)
	}

	total, err := toDecimal128(order.Total)
	if err != nil {
		return models.OrderRecord{}, err
	}

	doc := orderDoc{
		ID:            uuid.NewString(),
		ProductID:     order.ProductID,
		CustomerID:    order.CustomerID,
		Quantity:      order.Quantity,
		Total:         total,
		PaymentMethod: string(order.PaymentMethod),
		PaymentStatus: string(models.InitialPaymentStatus(order.PaymentMethod)),
		CreatedAt:     s.now().UTC(),
	}
	if _, err := s.Collection.InsertOne(ctx, doc); err != nil {
		return models.OrderRecord{}, fmt.Errorf("insert order: %w", err)
	}
	return doc.record()
}

// CustomerOrders lists a customer's orders, newest first.
func (s *OrderStore) CustomerOrders(ctx context.Context, customerID string) ([]models.OrderRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.Collection.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.OrderRecord
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		rec, err := doc.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode amount %s: %w", v, err)
	}
	return d, nil
}
