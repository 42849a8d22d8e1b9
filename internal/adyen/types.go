package adyen

import (
	"encoding/json"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
)

// Amount is the processor's amount shape: ISO 4217 currency and a value in minor units.
type Amount = checkout.Amount

const PaymentMethodApplePay = "applepay"

// ApplePaySessionRequest is the body of POST /applePay/sessions.
type ApplePaySessionRequest struct {
	DisplayName        string `json:"displayName"`
	DomainName         string `json:"domainName"`
	MerchantIdentifier string `json:"merchantIdentifier"`
}

type PaymentMethod struct {
	Type string `json:"type"`
}

// PaymentRequest is the body of POST /payments for a device-authorized Apple Pay token.
type PaymentRequest struct {
	Amount          Amount        `json:"amount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ApplePayToken   string        `json:"applePayToken"`
	Reference       string        `json:"reference"`
	MerchantAccount string        `json:"merchantAccount"`
}

// Response is a processor reply kept as raw bytes so it can be relayed unchanged.
type Response struct {
	Status int
	Body   json.RawMessage
}
