package models

import "github.com/shopspring/decimal"

// LineItem is one cart entry. Entries are identified by product and variant.
type LineItem struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// Key returns the identity of the entry inside a cart.
func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}

// LineTotal is unit price times quantity
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineKey identifies a cart entry
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// LineItemInput is a candidate entry passed to the cart. A zero Quantity means one.
type LineItemInput struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity,omitempty"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// Key returns the identity the input merges on.
func (in LineItemInput) Key() LineKey {
	return LineKey{ProductID: in.ProductID, Size: in.Size, Color: in.Color}
}
