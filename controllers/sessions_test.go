package controllers

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/checkout"
	"storefront/models"
)

type OrderSubmitterMock struct {
	CreateOrderFunc func(ctx context.Context, order models.Order) (models.OrderRecord, error)
}

func (m *OrderSubmitterMock) CreateOrder(ctx context.Context, order models.Order) (models.OrderRecord, error) {
	return m.CreateOrderFunc(ctx, order)
}

type MailerMock struct {
	mu sync.Mutex
	to []string
}

func (m *MailerMock) SendOrderConfirmationEmail(to string, user models.User, record models.OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	return nil
}

func TestCheckoutUsesLatestUserDetails(t *testing.T) {
	orders := &OrderSubmitterMock{
		CreateOrderFunc: func(ctx context.Context, order models.Order) (models.OrderRecord, error) {
			return models.OrderRecord{OrderID: "o-1", ProductID: order.ProductID, Quantity: order.Quantity, PaymentMethod: order.PaymentMethod}, nil
		},
	}
	mailer := &MailerMock{}
	sessions := NewSessions(orders, mailer, nil)

	first := models.User{ID: "c-1", Name: "Thandi", Email: "old@example.ac.za"}
	sessions.Checkout(first)
	sessions.Cart("c-1").AddItem(models.LineItemInput{ProductID: "hoodie", UnitPrice: decimal.NewFromInt(100), Quantity: 1})

	latest := first
	latest.Email = "new@example.ac.za"
	wf := sessions.Checkout(latest)

	_, err := wf.Submit(context.Background(), checkout.Form{
		FirstName: "Thandi", LastName: "Mokoena", Email: "new@example.ac.za", Phone: "0211234567",
		Address: "1 Main Rd", City: "Cape Town", Province: "Western Cape", PostalCode: "7700",
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	wf.Wait()

	assert.Equal(t, []string{"new@example.ac.za"}, mailer.to)
}
