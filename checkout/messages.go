package checkout

import "storefront/models"

const (
	MsgCashConfirmed = "Order placed! Your item has been reserved for pickup. Please pay in cash when you collect it."
	MsgEFTConfirmed  = "Order placed! Our bank details have been sent to your email. Please use your order number as the payment reference."
	MsgCardConfirmed = "Order placed successfully!"
)

// ConfirmationMessage is the success text shown for a payment method.
func ConfirmationMessage(method models.PaymentMethod) string {
	switch method {
	case models.PaymentCash:
		return MsgCashConfirmed
	case models.PaymentEFT:
		return MsgEFTConfirmed
	default:
		return MsgCardConfirmed
	}
}
