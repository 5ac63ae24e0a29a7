package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"order-core/internal/pkg/config"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/sony/gobreaker/v2"
)

const (
	intentsPath = "/v1/payment_intents"
	refundsPath = "/v1/refunds"

	// Error bodies are only kept for logs.
	maxErrorBody = 4 << 10
)

type Settings struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
}

func SettingsFromConfig(cfg config.GatewayConfig) Settings {
	return Settings{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Timeout:     cfg.Timeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}
}

// Client talks to the payment gateway's REST API. Every call is bounded by
// Settings.Timeout and goes through a circuit breaker; rejections (4xx) do not
// count towards tripping it.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

func NewClient(s Settings, logger *slog.Logger) *Client {
	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	c := &Client{
		http:    &http.Client{Timeout: s.Timeout},
		baseURL: strings.TrimRight(s.BaseURL, "/"),
		apiKey:  s.APIKey,
		timeout: s.Timeout,
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errs.Is(err, errs.ErrGatewayRejected) || errs.Is(err, errCallerCanceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})
	return c
}

type createIntentBody struct {
	OrderID     string            `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type refundBody struct {
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Reason        string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateIntent(ctx context.Context, req shared.CreateIntentRequest) (shared.CreateIntentResult, error) {
	raw, err := c.call(ctx, intentsPath, req.IdempotencyKey, createIntentBody{
		OrderID:     req.OrderID.String(),
		OrderNumber: req.OrderNumber,
		Amount:      req.Amount.Minor(),
		Currency:    strings.ToLower(req.Currency.String()),
		Metadata:    map[string]string{"order_id": req.OrderID.String()},
	})
	if err != nil {
		return shared.CreateIntentResult{}, errs.Wrapf(err, "create intent for order %s", req.OrderID)
	}

	var resp intentResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.ID == "" {
		// The gateway may have created the intent; treat it like a lost response.
		return shared.CreateIntentResult{}, errs.Mark(
			errs.Newf("unreadable intent response for order %s", req.OrderID), errs.ErrGatewayUnavailable)
	}
	return shared.CreateIntentResult{GatewayReference: resp.ID, ClientSecret: resp.ClientSecret}, nil
}

func (c *Client) Refund(ctx context.Context, req shared.RefundRequest) error {
	_, err := c.call(ctx, refundsPath, req.IdempotencyKey, refundBody{
		PaymentIntent: req.GatewayReference,
		Amount:        req.Amount.Minor(),
		Currency:      strings.ToLower(req.Currency.String()),
		Reason:        req.Reason,
	})
	if err != nil {
		return errs.Wrapf(err, "refund %s for order %s", req.GatewayReference, req.OrderID)
	}
	return nil
}

// errCallerCanceled marks calls abandoned by the caller. They say nothing about gateway health.
var errCallerCanceled = errs.New("caller canceled gateway call")

func (c *Client) call(ctx context.Context, path, idempotencyKey string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "encode gateway request")
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		raw, err := c.post(ctx, path, idempotencyKey, payload)
		if err != nil && errs.Is(ctx.Err(), context.Canceled) {
			return nil, errs.Mark(err, errCallerCanceled)
		}
		return raw, err
	})
	if errs.Is(err, gobreaker.ErrOpenState) || errs.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errs.Mark(errs.Wrap(err, "gateway circuit open"), errs.ErrGatewayUnavailable)
	}
	return raw, err
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(err, "build gateway request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("gateway request failed",
			"path", path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error())
		return nil, errs.Mark(errs.Wrap(err, "gateway transport"), errs.ErrGatewayUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "read gateway response"), errs.ErrGatewayUnavailable)
		}
		c.logger.Debug("gateway request completed",
			"path", path,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
		return raw, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := errs.Newf("gateway returned %d: %s", resp.StatusCode, describe(raw))
	c.logger.Warn("gateway request unsuccessful",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if retryableStatus(resp.StatusCode) {
		return nil, errs.Mark(statusErr, errs.ErrGatewayUnavailable)
	}
	return nil, errs.Mark(statusErr, errs.ErrGatewayRejected)
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusRequestTimeout || code == http.StatusTooManyRequests
}

func describe(raw []byte) string {
	var e errorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Error.Message != "" {
		if e.Error.Type != "" {
			return fmt.Sprintf("%s (%s)", e.Error.Message, e.Error.Type)
		}
		return e.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

// State exposes the breaker state for health reporting.
func (c *Client) State() string {
	return c.breaker.State().String()
}
