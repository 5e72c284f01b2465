package clients

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"storefront/models"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

// orderRequest is the wire form of models.Order with the total as a JSON number.
type orderRequest struct {
	ProductID     string      `json:"productID"`
	CustomerID    string      `json:"customerID"`
	Quantity      int         `json:"quantity"`
	Total         json.Number `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
}

type orderResponse struct {
	OrderID       string          `json:"orderID"`
	ProductID     string          `json:"productID"`
	CustomerID    string          `json:"customerID"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
}

func (r orderResponse) record() models.OrderRecord {
	method, err := models.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		method = models.PaymentMethod(r.PaymentMethod)
	}
	return models.OrderRecord{
		OrderID:       r.OrderID,
		ProductID:     r.ProductID,
		CustomerID:    r.CustomerID,
		Quantity:      r.Quantity,
		Total:         r.Total,
		PaymentMethod: method,
		PaymentStatus: models.PaymentStatus(r.PaymentStatus),
	}
}

// CreateOrder posts the order and checks that the stored record matches it.
func (oc *OrderClient) CreateOrder(ctx context.Context, order models.Order) (models.OrderRecord, error) {
	req := orderRequest{
		ProductID:     order.ProductID,
		CustomerID:    order.CustomerID,
		Quantity:      order.Quantity,
		Total:         json.Number(order.Total.StringFixed(2)),
		PaymentMethod: string(order.PaymentMethod),
	}

	var resp orderResponse
	if err := oc.c.doJSON(ctx, http.MethodPost, "/orders/create", req, &resp); err != nil {
		return models.OrderRecord{}, err
	}

	switch {
	case resp.OrderID == "":
		return models.OrderRecord{}, malformed(oc.c.Name, "order has no orderID")
	case resp.ProductID != "" && resp.ProductID != order.ProductID:
		return models.OrderRecord{}, malformed(oc.c.Name, "order for product %q, sent %q", resp.ProductID, order.ProductID)
	case resp.Quantity != 0 && resp.Quantity != order.Quantity:
		return models.OrderRecord{}, malformed(oc.c.Name, "order quantity %d, sent %d", resp.Quantity, order.Quantity)
	}

	rec := resp.record()
	if rec.ProductID == "" {
		rec.ProductID = order.ProductID
	}
	if rec.CustomerID == "" {
		rec.CustomerID = order.CustomerID
	}
	if rec.Quantity == 0 {
		rec.Quantity = order.Quantity
	}
	if rec.PaymentMethod == "" {
		rec.PaymentMethod = order.PaymentMethod
	}
	if rec.PaymentStatus == "" {
		rec.PaymentStatus = models.InitialPaymentStatus(order.PaymentMethod)
	}
	if rec.Total.IsZero() {
		rec.Total = order.Total
	}
	return rec, nil
}

// CustomerOrders lists the orders placed by customerID.
func (oc *OrderClient) CustomerOrders(ctx context.Context, customerID string) ([]models.OrderRecord, error) {
	var all []orderResponse
	if err := oc.c.doJSON(ctx, http.MethodGet, "/orders/all", nil, &all); err != nil {
		return nil, err
	}
	out := make([]models.OrderRecord, 0, len(all))
	for _, r := range all {
		if r.CustomerID != customerID {
			continue
		}
		out = append(out, r.record())
	}
	return out, nil
}
