package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/cart"
	"storefront/middleware"
	"storefront/models"
	"storefront/pricing"
)

// ProductSource looks up catalog entries
type ProductSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
}

// CartController handles cart-related requests
type CartController struct {
	Sessions *Sessions
	Catalog  ProductSource
	Logger   *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(sessions *Sessions, catalog ProductSource, logger *zap.Logger) *CartController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartController{Sessions: sessions, Catalog: catalog, Logger: logger}
}

type cartView struct {
	Items     []models.LineItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Totals    pricing.Breakdown `json:"totals"`
	Message   string            `json:"message,omitempty"`
}

func viewOf(s *cart.Store, msg string) cartView {
	items := s.Items()
	return cartView{Items: items, ItemCount: s.ItemCount(), Totals: pricing.Calculate(items), Message: msg}
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(cc.Sessions.Cart(user.ID), ""))
}

// AddToCart adds a product to the user's cart. Name, price and image come
// from the catalog when one is configured.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in models.LineItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}
	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.ProductID == "" || in.Quantity < 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	if cc.Catalog != nil {
		product, err := cc.Catalog.GetProduct(r.Context(), in.ProductID)
		if err != nil {
			cc.Logger.Warn("product lookup failed", zap.String("product_id", in.ProductID), zap.Error(err))
			writeError(w, r, http.StatusNotFound, "Product not found")
			return
		}
		in.Name = product.Name
		in.UnitPrice = product.Price
		in.Image = product.Image
	}
	if in.UnitPrice.IsNegative() {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	store := cc.Sessions.Cart(user.ID)
	store.AddItem(in)
	cc.Sessions.StartNewCart(user.ID)

	msg := "Added to cart"
	if in.Name != "" {
		msg = in.Name + " added to cart"
	}
	writeJSON(w, http.StatusOK, viewOf(store, msg))
}

// UpdateQuantity sets the quantity of a product. Zero or less removes it.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity == nil {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	store := cc.Sessions.Cart(user.ID)
	store.UpdateQuantity(mux.Vars(r)["product_id"], *body.Quantity)
	writeJSON(w, http.StatusOK, viewOf(store, ""))
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := cc.Sessions.Cart(user.ID)
	store.RemoveItem(mux.Vars(r)["product_id"])
	writeJSON(w, http.StatusOK, viewOf(store, "Item removed from cart"))
}

// ClearCart empties the user's cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := cc.Sessions.Cart(user.ID)
	store.ClearCart()
	writeJSON(w, http.StatusOK, viewOf(store, "Cart cleared"))
}
