package models

import "github.com/shopspring/decimal"

// Product is a catalog entry
type Product struct {
	ID          string          `json:"productID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"imageUrl"`
	Category    string          `json:"category,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
}
