package adyen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://checkout-test.adyen.com/v67"
	DefaultTimeout = 15 * time.Second
)

type Operation string

const (
	OperationSession Operation = "session"
	OperationPayment Operation = "payment"
)

func (o Operation) path() string {
	switch o {
	case OperationSession:
		return "/applePay/sessions"
	case OperationPayment:
		return "/payments"
	default:
		return ""
	}
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Adyen Checkout API. It makes exactly one attempt per call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "adyen"),
	}
}

// Ready returns ErrMissingAPIKey when the client has no credential to call with.
func (c *Client) Ready() error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c *Client) CreateApplePaySession(ctx context.Context, req ApplePaySessionRequest) (*Response, error) {
	return c.post(ctx, OperationSession, req)
}

func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*Response, error) {
	return c.post(ctx, OperationPayment, req)
}

func (c *Client) post(ctx context.Context, op Operation, payload any) (*Response, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("adyen %s encode: %w", op, err)
	}

	url := c.baseURL + op.path()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("adyen %s request: %w", op, err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warnw("adyen call failed", "operation", op, "duration", time.Since(start), "error", err.Error())
		return nil, &Error{Kind: KindUnavailable, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Operation: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debugw("adyen call", "operation", op, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindRejected, Operation: op, Status: resp.StatusCode, Body: raw}
	}

	if !json.Valid(raw) {
		c.logger.Warnw("adyen answered with a non-JSON body", "operation", op, "status", resp.StatusCode, "bytes", len(raw))
		return nil, &Error{Kind: KindUnavailable, Operation: op, Status: resp.StatusCode, Err: ErrMalformedBody}
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}
