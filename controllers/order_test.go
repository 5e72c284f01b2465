package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/checkout"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not signed in", checkout.ErrNotAuthenticated, http.StatusUnauthorized},
		{"single item", checkout.ErrSingleItem, http.StatusConflict},
		{"wrapped single item", fmt.Errorf("submit: %w", checkout.ErrSingleItem), http.StatusConflict},
		{"payment method", checkout.ErrInvalidPaymentMethod, http.StatusBadRequest},
		{"upstream", &checkout.CommandError{Code: checkout.StatusUnavailable, Message: checkout.ErrMsgOrderFailed}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
