package relay

import "github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"

const (
	FallbackDomain     = "example.com"
	DefaultDisplayName = "Demo Store"
	DefaultCurrency    = "EUR"
	DefaultValue       = 1000
	DefaultRefPrefix   = "ORDER"
	DefaultRefSalt     = "applepay-relay"
)

// Config is built once at startup and never mutated.
type Config struct {
	// MerchantAccount is the Adyen merchant account payments are booked to.
	MerchantAccount string
	// AppleMerchantID is the Apple Pay merchant identifier used for merchant sessions.
	AppleMerchantID string
	// DomainName, when set, overrides whatever domain the browser reports.
	DomainName      string
	DisplayName     string
	DefaultAmount   adyen.Amount
	ReferencePrefix string
	ReferenceSalt   string
}

func DefaultConfig() Config {
	return Config{
		DisplayName:     DefaultDisplayName,
		DefaultAmount:   adyen.Amount{Currency: DefaultCurrency, Value: DefaultValue},
		ReferencePrefix: DefaultRefPrefix,
		ReferenceSalt:   DefaultRefSalt,
	}
}
