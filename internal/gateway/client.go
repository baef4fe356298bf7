package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"driveschool-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service is the payment-gateway surface the use cases depend on.
type Service interface {
	// EnsureReady wakes the gateway host and polls its health endpoint
	// until it answers or the attempt budget runs out.
	EnsureReady(ctx context.Context) error

	// RequestRedirect POSTs the hand-off payload and returns the
	// redirect URL the end user must be sent to.
	RequestRedirect(ctx context.Context, payload *Payload) (string, error)

	// ProcessResult forwards raw gateway result parameters to the
	// gateway's webhook processor and returns its decision.
	ProcessResult(ctx context.Context, params ResultParams) (*ResultDecision, error)
}

// ResultParams carries the raw result parameters delivered by the
// browser return or the server callback, plus the identifiers the
// caller already knows (either may be absent).
type ResultParams struct {
	Raw     map[string]any
	UserID  string
	OrderID string
}

// ResultDecision is the gateway's verdict on a transaction. The
// gateway echoes back userId/orderId for callers that did not have
// them.
type ResultDecision struct {
	Status  string `json:"status"` // APPROVED or anything else
	UserID  string `json:"userId"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

func (d *ResultDecision) Approved() bool {
	return d.Status == "APPROVED"
}

type Client struct {
	httpClient *http.Client
	config     utils.GatewayConfig
	log        *zap.Logger
}

func NewClient(config utils.GatewayConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     config,
		log:        log.With(zap.String("client", "gateway")),
	}
}

type wakeResponse struct {
	Success bool `json:"success"`
}

// EnsureReady implements the two-phase readiness check: wake the
// remote compute host, then poll /health with a fixed per-attempt
// timeout until it answers 2xx. Wake failure and poll exhaustion are
// both availability errors but carry distinct messages, so callers can
// say "service down" vs "service starting".
func (c *Client) EnsureReady(ctx context.Context) error {
	if err := c.wake(ctx); err != nil {
		return err
	}

	attempts := c.config.HealthAttempts
	interval := time.Duration(c.config.HealthIntervalSeconds) * time.Second
	perAttempt := time.Duration(c.config.HealthTimeoutSeconds) * time.Second

	err := utils.Poll(ctx, attempts, interval, func(ctx context.Context) (bool, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, perAttempt)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.config.BaseURL+"/health", nil)
		if err != nil {
			return false, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return false, err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return false, fmt.Errorf("health returned %d", resp.StatusCode)
		}
		return true, nil
	})

	if err != nil {
		c.log.Warn("Gateway health poll exhausted", zap.Error(err), zap.Int("attempts", attempts))
		return utils.WrapE(utils.KindAvailability, err, "payment service is still starting")
	}

	return nil
}

func (c *Client) wake(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.WakeURL, nil)
	if err != nil {
		return utils.WrapE(utils.KindAvailability, err, "payment service could not be started")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Gateway wake request failed", zap.Error(err))
		return utils.WrapE(utils.KindAvailability, err, "payment service could not be started")
	}
	defer resp.Body.Close()

	var wake wakeResponse
	if err := json.NewDecoder(resp.Body).Decode(&wake); err != nil {
		return utils.WrapE(utils.KindAvailability, err, "payment service could not be started")
	}

	if !wake.Success {
		return utils.E(utils.KindAvailability, "payment service could not be started")
	}

	c.log.Info("Gateway host awake")
	return nil
}

const redirectMaxAttempts = 2

type redirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

func (c *Client) RequestRedirect(ctx context.Context, payload *Payload) (string, error) {
	body, err := json.Marshal(payload.toWire())
	if err != nil {
		return "", fmt.Errorf("marshal redirect payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= redirectMaxAttempts; attempt++ {
		url, err := c.postRedirect(ctx, body)
		if err == nil {
			c.log.Info("Gateway redirect obtained",
				zap.String("order_id", payload.OrderID),
				zap.Int("attempt", attempt),
			)
			return url, nil
		}

		lastErr = err
		c.log.Warn("Gateway redirect attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("order_id", payload.OrderID),
		)
	}

	return "", utils.WrapE(utils.KindGateway, lastErr, "payment redirect failed")
}

func (c *Client) postRedirect(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/payments/redirect", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("redirect returned %d: %s", resp.StatusCode, string(errBody))
	}

	var redirect redirectResponse
	if err := json.NewDecoder(resp.Body).Decode(&redirect); err != nil {
		return "", fmt.Errorf("decode redirect response: %w", err)
	}

	if redirect.RedirectURL == "" {
		return "", fmt.Errorf("redirect response missing redirectUrl")
	}

	return redirect.RedirectURL, nil
}

func (c *Client) ProcessResult(ctx context.Context, params ResultParams) (*ResultDecision, error) {
	// Raw parameters pass through untouched; only the known ids ride
	// alongside them.
	body := make(map[string]any, len(params.Raw)+2)
	for k, v := range params.Raw {
		body[k] = v
	}
	if params.UserID != "" {
		body["userId"] = params.UserID
	}
	if params.OrderID != "" {
		body["orderId"] = params.OrderID
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal result params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/frontend-webhook/process-payment", bytes.NewReader(encoded))
	if err != nil {
		return nil, utils.WrapE(utils.KindGateway, err, "payment result processing failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Gateway result processing failed", zap.Error(err))
		return nil, utils.WrapE(utils.KindGateway, err, "payment result processing failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, utils.E(utils.KindGateway, "payment result processing returned %d: %s", resp.StatusCode, string(errBody))
	}

	var decision ResultDecision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return nil, utils.WrapE(utils.KindGateway, err, "decode payment result response")
	}

	return &decision, nil
}
