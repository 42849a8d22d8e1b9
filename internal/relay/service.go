// Package relay carries Apple Pay merchant-validation and payment-authorization requests
// from the browser to the payment processor and hands the processor's answers back.
package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Processor is the subset of adyen.Client the relay depends on.
type Processor interface {
	Ready() error
	CreateApplePaySession(ctx context.Context, req adyen.ApplePaySessionRequest) (*adyen.Response, error)
	CreatePayment(ctx context.Context, req adyen.PaymentRequest) (*adyen.Response, error)
}

type SessionInput struct {
	Origin      string        `json:"origin"`
	DomainName  string        `json:"domainName"`
	DisplayName string        `json:"displayName"`
	Amount      *adyen.Amount `json:"amount"`
}

type PaymentInput struct {
	PaymentData json.RawMessage `json:"paymentData"`
	Amount      *adyen.Amount   `json:"amount"`
}

// Result is what goes back to the browser: a status and the processor's bytes, untouched.
type Result struct {
	Status int
	Body   json.RawMessage
}

type Service struct {
	cfg       Config
	processor Processor
	refs      *ReferenceGenerator
	logger    *zap.SugaredLogger
}

func NewService(cfg Config, processor Processor, logger *zap.SugaredLogger) (*Service, error) {
	refs, err := NewReferenceGenerator(cfg.ReferencePrefix, cfg.ReferenceSalt)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	cfg.DisplayName = lo.CoalesceOrEmpty(cfg.DisplayName, DefaultDisplayName)
	if cfg.DefaultAmount.Currency == "" {
		cfg.DefaultAmount = adyen.Amount{Currency: DefaultCurrency, Value: DefaultValue}
	}

	return &Service{
		cfg:       cfg,
		processor: processor,
		refs:      refs,
		logger:    logger.With("component", "relay"),
	}, nil
}

// CreateMerchantSession asks the processor for an Apple Pay merchant session.
func (s *Service) CreateMerchantSession(ctx context.Context, in SessionInput) (*Result, error) {
	if err := s.processor.Ready(); err != nil {
		return nil, &ConfigurationError{Setting: "ADYEN_API_KEY"}
	}
	if s.cfg.AppleMerchantID == "" {
		return nil, &ConfigurationError{Setting: "APPLE_MERCHANT_ID"}
	}

	req := adyen.ApplePaySessionRequest{
		MerchantIdentifier: s.cfg.AppleMerchantID,
		DomainName:         ResolveDomain(s.cfg.DomainName, in.DomainName, in.Origin),
		DisplayName:        lo.CoalesceOrEmpty(strings.TrimSpace(in.DisplayName), s.cfg.DisplayName),
	}

	resp, err := s.processor.CreateApplePaySession(ctx, req)
	if err != nil {
		s.logFailure("session", err)
		return nil, err
	}

	s.logger.Infow("merchant session created", "domain", req.DomainName, "status", resp.Status)
	return &Result{Status: resp.Status, Body: resp.Body}, nil
}

// CreatePayment submits the device token to the processor. Whatever resultCode comes back
// is relayed; deciding success is left to the browser.
func (s *Service) CreatePayment(ctx context.Context, in PaymentInput) (*Result, error) {
	if err := s.processor.Ready(); err != nil {
		return nil, &ConfigurationError{Setting: "ADYEN_API_KEY"}
	}
	if s.cfg.MerchantAccount == "" {
		return nil, &ConfigurationError{Setting: "ADYEN_MERCHANT_ACCOUNT"}
	}
	if missingPaymentData(in.PaymentData) {
		return nil, ErrPaymentDataRequired
	}

	token, err := EncodeToken(in.PaymentData)
	if err != nil {
		return nil, &ValidationError{Message: "paymentData must be valid JSON"}
	}

	amount := s.cfg.DefaultAmount
	if in.Amount != nil {
		amount = *in.Amount
	}

	req := adyen.PaymentRequest{
		Amount:          amount,
		PaymentMethod:   adyen.PaymentMethod{Type: adyen.PaymentMethodApplePay},
		ApplePayToken:   token,
		Reference:       s.refs.Next(),
		MerchantAccount: s.cfg.MerchantAccount,
	}

	resp, err := s.processor.CreatePayment(ctx, req)
	if err != nil {
		s.logFailure("payment", err, "reference", req.Reference)
		if aerr, ok := adyen.IsRejected(err); ok {
			if json.Valid(aerr.Body) {
				return &Result{Status: http.StatusOK, Body: aerr.Body}, nil
			}
			// not mirrored: a non-JSON body is of no use to the browser
			return nil, fmt.Errorf("payment %s: processor answered http=%d with a non-JSON body", req.Reference, aerr.Status)
		}
		return nil, fmt.Errorf("payment %s: %w", req.Reference, err)
	}

	s.logger.Infow("payment submitted", "reference", req.Reference, "status", resp.Status)
	return &Result{Status: http.StatusOK, Body: resp.Body}, nil
}

// EncodeToken compacts paymentData to its JSON text and base64-encodes it.
func EncodeToken(paymentData json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, paymentData); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func missingPaymentData(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

func (s *Service) logFailure(op string, err error, kv ...any) {
	fields := append([]any{"operation", op, "kind", Kind(err)}, kv...)
	if aerr, ok := adyen.IsRejected(err); ok {
		fields = append(fields, "status", aerr.Status, "body", string(aerr.Body))
	} else {
		fields = append(fields, "error", err.Error())
	}
	s.logger.Errorw("processor call failed", fields...)
}
