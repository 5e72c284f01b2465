package models

import (
	"fmt"
	"strings"
)

// PaymentMethod is how the customer intends to pay
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "Card"
	PaymentEFT  PaymentMethod = "EFT"
	PaymentCash PaymentMethod = "Cash"
)

// ParsePaymentMethod accepts the method name in any case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return PaymentCard, nil
	case "eft":
		return PaymentEFT, nil
	case "cash":
		return PaymentCash, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentEFT || m == PaymentCash
}

// PaymentStatus is the state the order service assigns to a new order
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPendingPickup PaymentStatus = "PENDING_PICKUP"
	PaymentCompleted     PaymentStatus = "COMPLETED"
	PaymentFailed        PaymentStatus = "FAILED"
)

// InitialPaymentStatus returns the status a new order starts in.
// Cash orders wait for collection, everything else waits for payment.
func InitialPaymentStatus(m PaymentMethod) PaymentStatus {
	if m == PaymentCash {
		return PaymentPendingPickup
	}
	return PaymentPending
}
