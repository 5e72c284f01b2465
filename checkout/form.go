package checkout

import (
	"strings"

	"storefront/models"
)

// Form is everything the checkout page collects. Card and bank fields are
// checked for presence only and never leave this package.
type Form struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`

	PaymentMethod string `json:"paymentMethod"`

	CardNumber string `json:"cardNumber,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	CardName   string `json:"cardName,omitempty"`

	BankName      string `json:"bankName,omitempty"`
	AccountHolder string `json:"accountHolder,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

type field struct {
	label string
	value string
}

func (f Form) contactFields() []field {
	return []field{
		{"First name", f.FirstName},
		{"Last name", f.LastName},
		{"Email", f.Email},
		{"Phone", f.Phone},
		{"Address", f.Address},
		{"City", f.City},
		{"Province", f.Province},
		{"Postal code", f.PostalCode},
	}
}

func (f Form) paymentFields(method models.PaymentMethod) []field {
	switch method {
	case models.PaymentCard:
		return []field{
			{"Card number", f.CardNumber},
			{"Expiry date", f.ExpiryDate},
			{"CVV", f.CVV},
			{"Name on card", f.CardName},
		}
	case models.PaymentEFT:
		return []field{
			{"Bank name", f.BankName},
			{"Account holder", f.AccountHolder},
			{"Account number", f.AccountNumber},
		}
	}
	return nil
}

// Validate checks the fields required for the chosen payment method and
// returns that method.
func (f Form) Validate() (models.PaymentMethod, error) {
	method, err := models.ParsePaymentMethod(f.PaymentMethod)
	if err != nil {
		return "", &CommandError{Code: StatusInvalidArgument, Message: ErrMsgInvalidPayment, Err: err}
	}

	for _, fl := range append(f.contactFields(), f.paymentFields(method)...) {
		if strings.TrimSpace(fl.value) == "" {
			return "", missingField(fl.label)
		}
	}
	return method, nil
}
