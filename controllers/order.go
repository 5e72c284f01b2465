// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"storefront/checkout"
	"storefront/middleware"
	"storefront/models"
)

// OrderHistory lists a customer's past orders
type OrderHistory interface {
	CustomerOrders(ctx context.Context, customerID string) ([]models.OrderRecord, error)
}

// OrderController handles checkout and order history requests
type OrderController struct {
	Sessions *Sessions
	History  OrderHistory
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(sessions *Sessions, history OrderHistory, timeout time.Duration, logger *zap.Logger) *OrderController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OrderController{Sessions: sessions, History: history, Timeout: timeout, Logger: logger}
}

// Quote returns the price breakdown of the user's cart
func (oc *OrderController) Quote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, oc.Sessions.Checkout(user).Quote())
}

// CreateOrder places the single item in the user's cart as an order
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, checkout.ErrMsgNotAuthenticated)
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), oc.Timeout)
	defer cancel()

	res, err := oc.Sessions.Checkout(user).Submit(ctx, form)
	if err != nil {
		writeError(w, r, statusFor(err), checkout.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// GetOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), oc.Timeout)
	defer cancel()

	orders, err := oc.History.CustomerOrders(ctx, user.ID)
	if err != nil {
		oc.Logger.Error("failed to retrieve orders", zap.String("customer_id", user.ID), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "Failed to retrieve orders")
		return
	}
	if orders == nil {
		orders = []models.OrderRecord{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func statusFor(err error) int {
	if errors.Is(err, checkout.ErrNotAuthenticated) {
		return http.StatusUnauthorized
	}
	var cmdErr *checkout.CommandError
	if !errors.As(err, &cmdErr) {
		return http.StatusInternalServerError
	}
	switch cmdErr.Code {
	case checkout.StatusInvalidArgument:
		return http.StatusBadRequest
	case checkout.StatusFailedPrecondition:
		return http.StatusConflict
	case checkout.StatusUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
