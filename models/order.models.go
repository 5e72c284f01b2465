package models

import "github.com/shopspring/decimal"

// Order is the submission payload sent to the order service.
// It never carries card or bank details.
type Order struct {
	ProductID     string          `json:"productID"`
	CustomerID    string          `json:"customerID"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// OrderRecord is what the order service returns for a stored order
type OrderRecord struct {
	OrderID       string          `json:"orderID"`
	ProductID     string          `json:"productID"`
	CustomerID    string          `json:"customerID"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
}
