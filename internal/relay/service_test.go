package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeProcessor struct {
	mu sync.Mutex

	notReady bool

	sessionCalls int
	lastSession  adyen.ApplePaySessionRequest
	sessionResp  *adyen.Response
	sessionErr   error

	paymentCalls int
	payments     []adyen.PaymentRequest
	paymentResp  *adyen.Response
	paymentErr   error
}

func (f *fakeProcessor) Ready() error {
	if f.notReady {
		return adyen.ErrMissingAPIKey
	}
	return nil
}

func (f *fakeProcessor) CreateApplePaySession(ctx context.Context, req adyen.ApplePaySessionRequest) (*adyen.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	f.lastSession = req
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.sessionResp != nil {
		return f.sessionResp, nil
	}
	return &adyen.Response{Status: http.StatusOK, Body: json.RawMessage(`{"merchantSessionIdentifier":"SSH"}`)}, nil
}

func (f *fakeProcessor) CreatePayment(ctx context.Context, req adyen.PaymentRequest) (*adyen.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentCalls++
	f.payments = append(f.payments, req)
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	if f.paymentResp != nil {
		return f.paymentResp, nil
	}
	return &adyen.Response{Status: http.StatusOK, Body: json.RawMessage(`{"resultCode":"Authorised"}`)}, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MerchantAccount = "TestMerchantECOM"
	cfg.AppleMerchantID = "merchant.com.example.test"
	return cfg
}

func newTestService(t *testing.T, cfg Config, p Processor) *Service {
	t.Helper()
	s, err := NewService(cfg, p, zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func TestCreateMerchantSession_DomainOverrideWins(t *testing.T) {
	cfg := testConfig()
	cfg.DomainName = "pay.example.org"
	p := &fakeProcessor{}
	s := newTestService(t, cfg, p)

	inputs := []SessionInput{
		{},
		{Origin: "https://other.example.com"},
		{DomainName: "spoofed.example.com", Origin: "https://other.example.com:8443/path"},
	}
	for _, in := range inputs {
		_, err := s.CreateMerchantSession(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, "pay.example.org", p.lastSession.DomainName)
	}
}

func TestCreateMerchantSession_DomainFromOrigin(t *testing.T) {
	p := &fakeProcessor{}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreateMerchantSession(context.Background(), SessionInput{Origin: "https://shop.example.com:8443/checkout"})
	require.NoError(t, err)
	require.Equal(t, "shop.example.com", p.lastSession.DomainName)
	require.Equal(t, "merchant.com.example.test", p.lastSession.MerchantIdentifier)
	require.Equal(t, DefaultDisplayName, p.lastSession.DisplayName)
}

func TestCreateMerchantSession_RequestedDomainBeforeOrigin(t *testing.T) {
	p := &fakeProcessor{}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreateMerchantSession(context.Background(), SessionInput{
		DomainName:  "checkout.example.com",
		Origin:      "https://shop.example.com",
		DisplayName: "OneBill Store",
	})
	require.NoError(t, err)
	require.Equal(t, "checkout.example.com", p.lastSession.DomainName)
	require.Equal(t, "OneBill Store", p.lastSession.DisplayName)
}

func TestCreateMerchantSession_PassthroughBody(t *testing.T) {
	body := json.RawMessage(`{"epochTimestamp":1,"nonce":"abc","signature":"s"}`)
	p := &fakeProcessor{sessionResp: &adyen.Response{Status: http.StatusOK, Body: body}}
	s := newTestService(t, testConfig(), p)

	res, err := s.CreateMerchantSession(context.Background(), SessionInput{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Equal(t, string(body), string(res.Body))
}

func TestCreateMerchantSession_Rejected(t *testing.T) {
	p := &fakeProcessor{sessionErr: &adyen.Error{
		Kind:      adyen.KindRejected,
		Operation: adyen.OperationSession,
		Status:    http.StatusUnprocessableEntity,
		Body:      []byte(`{"status":422,"errorCode":"900"}`),
	}}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreateMerchantSession(context.Background(), SessionInput{})
	require.Error(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(err))
	require.Equal(t, `{"status":422,"errorCode":"900"}`, PublicMessage(err))
	require.Equal(t, "upstream_rejected", Kind(err))
}

func TestCreateMerchantSession_Unavailable(t *testing.T) {
	p := &fakeProcessor{sessionErr: &adyen.Error{
		Kind:      adyen.KindUnavailable,
		Operation: adyen.OperationSession,
		Err:       errors.New("dial tcp: connection refused"),
	}}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreateMerchantSession(context.Background(), SessionInput{})
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	require.Equal(t, "internal", PublicMessage(err))
	require.Equal(t, "upstream_unavailable", Kind(err))
}

func TestCreateMerchantSession_ConfigurationErrors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		p := &fakeProcessor{notReady: true}
		s := newTestService(t, testConfig(), p)

		_, err := s.CreateMerchantSession(context.Background(), SessionInput{})
		require.ErrorIs(t, err, ErrConfiguration)
		require.Equal(t, "ADYEN_API_KEY not configured", PublicMessage(err))
		require.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
		require.Zero(t, p.sessionCalls)
	})

	t.Run("missing apple merchant id", func(t *testing.T) {
		cfg := testConfig()
		cfg.AppleMerchantID = ""
		p := &fakeProcessor{}
		s := newTestService(t, cfg, p)

		_, err := s.CreateMerchantSession(context.Background(), SessionInput{})
		require.ErrorIs(t, err, ErrConfiguration)
		require.Equal(t, "APPLE_MERCHANT_ID not configured", PublicMessage(err))
		require.Zero(t, p.sessionCalls)
	})
}

func TestCreatePayment_MissingPaymentData(t *testing.T) {
	p := &fakeProcessor{}
	s := newTestService(t, testConfig(), p)

	for _, raw := range []string{"", "null", `""`, "false"} {
		_, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(raw)})
		require.ErrorIs(t, err, ErrValidation)
		require.Equal(t, http.StatusBadRequest, HTTPStatus(err))
		require.Equal(t, "paymentData required", PublicMessage(err))
	}
	require.Zero(t, p.paymentCalls)
}

func TestCreatePayment_MissingAPIKeyBeforeValidation(t *testing.T) {
	p := &fakeProcessor{notReady: true}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreatePayment(context.Background(), PaymentInput{})
	require.ErrorIs(t, err, ErrConfiguration)
	require.Equal(t, "ADYEN_API_KEY not configured", PublicMessage(err))
	require.Zero(t, p.paymentCalls)
}

func TestCreatePayment_MissingMerchantAccount(t *testing.T) {
	cfg := testConfig()
	cfg.MerchantAccount = ""
	p := &fakeProcessor{}
	s := newTestService(t, cfg, p)

	_, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(`{"version":"EC_v1"}`)})
	require.Equal(t, "ADYEN_MERCHANT_ACCOUNT not configured", PublicMessage(err))
	require.Zero(t, p.paymentCalls)
}

func TestCreatePayment_TokenRoundTrip(t *testing.T) {
	p := &fakeProcessor{}
	s := newTestService(t, testConfig(), p)

	paymentData := `{
		"version": "EC_v1",
		"data": "c2VjcmV0",
		"signature": "c2ln",
		"header": {"ephemeralPublicKey": "a2V5", "publicKeyHash": "aGFzaA==", "transactionId": "abc123"}
	}`

	res, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(paymentData)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, p.payments, 1)

	sent := p.payments[0]
	decoded, err := base64.StdEncoding.DecodeString(sent.ApplePayToken)
	require.NoError(t, err)
	require.JSONEq(t, paymentData, string(decoded))
	require.NotContains(t, string(decoded), "\n")

	require.Equal(t, adyen.PaymentMethodApplePay, sent.PaymentMethod.Type)
	require.Equal(t, "TestMerchantECOM", sent.MerchantAccount)
	require.Equal(t, adyen.Amount{Currency: "EUR", Value: 1000}, sent.Amount)
}

func TestCreatePayment_UsesCallerAmount(t *testing.T) {
	p := &fakeProcessor{}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreatePayment(context.Background(), PaymentInput{
		PaymentData: json.RawMessage(`{"data":"x"}`),
		Amount:      &adyen.Amount{Currency: "USD", Value: 2599},
	})
	require.NoError(t, err)
	require.Equal(t, adyen.Amount{Currency: "USD", Value: 2599}, p.payments[0].Amount)
}

func TestCreatePayment_ReferencesAreUnique(t *testing.T) {
	p := &fakeProcessor{}
	s := newTestService(t, testConfig(), p)

	in := PaymentInput{PaymentData: json.RawMessage(`{"data":"x"}`)}
	for i := 0; i < 2; i++ {
		_, err := s.CreatePayment(context.Background(), in)
		require.NoError(t, err)
	}

	require.Len(t, p.payments, 2)
	require.NotEqual(t, p.payments[0].Reference, p.payments[1].Reference)
	require.True(t, strings.HasPrefix(p.payments[0].Reference, "ORDER-"))
}

func TestCreatePayment_RelaysRefusedResultUnchanged(t *testing.T) {
	body := json.RawMessage(`{"resultCode":"Refused","refusalReason":"Not enough balance"}`)
	p := &fakeProcessor{paymentResp: &adyen.Response{Status: http.StatusOK, Body: body}}
	s := newTestService(t, testConfig(), p)

	res, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(`{"data":"x"}`)})
	require.NoError(t, err)
	require.Equal(t, string(body), string(res.Body))
}

func TestCreatePayment_RejectedJSONBodyIsRelayed(t *testing.T) {
	p := &fakeProcessor{paymentErr: &adyen.Error{
		Kind:   adyen.KindRejected,
		Status: http.StatusUnprocessableEntity,
		Body:   []byte(`{"status":422,"errorCode":"14_018","message":"Invalid token"}`),
	}}
	s := newTestService(t, testConfig(), p)

	res, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(`{"data":"x"}`)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Equal(t, `{"status":422,"errorCode":"14_018","message":"Invalid token"}`, string(res.Body))
}

func TestCreatePayment_RejectedNonJSONIsInternal(t *testing.T) {
	p := &fakeProcessor{paymentErr: &adyen.Error{
		Kind:   adyen.KindRejected,
		Status: http.StatusBadGateway,
		Body:   []byte("<html>bad gateway</html>"),
	}}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(`{"data":"x"}`)})
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	require.Equal(t, "internal", PublicMessage(err))
	require.Equal(t, "internal", Kind(err))
}

func TestCreatePayment_UnavailableIsInternal(t *testing.T) {
	p := &fakeProcessor{paymentErr: &adyen.Error{Kind: adyen.KindUnavailable, Err: context.DeadlineExceeded}}
	s := newTestService(t, testConfig(), p)

	_, err := s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(`{"data":"x"}`)})
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	require.Equal(t, "internal", PublicMessage(err))
}

func TestCreatePayment_NeverLogsToken(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := &fakeProcessor{paymentErr: &adyen.Error{Kind: adyen.KindUnavailable, Err: errors.New("reset")}}
	s, err := NewService(testConfig(), p, zap.New(core).Sugar())
	require.NoError(t, err)

	secret := `{"data":"TOP-SECRET-CRYPTOGRAM"}`
	_, _ = s.CreatePayment(context.Background(), PaymentInput{PaymentData: json.RawMessage(secret)})

	encoded := base64.StdEncoding.EncodeToString([]byte(secret))
	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			str, _ := v.(string)
			require.NotContains(t, str, "TOP-SECRET-CRYPTOGRAM")
			require.NotContains(t, str, encoded)
		}
	}
}
