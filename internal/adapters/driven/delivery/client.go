package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driven"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Deliverer = (*Client)(nil)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Client posts contracts to the configured endpoint.
type Client struct {
	settings domain.DeliverySettings
	client   *http.Client
	limiter  *RateLimiter
	log      *logger.Logger
	remove   func(string) error
}

// NewClient creates a delivery client from settings.
func NewClient(settings domain.DeliverySettings, log *logger.Logger) *Client {
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultDeliveryTimeout
	}
	return &Client{
		settings: settings,
		client:   &http.Client{Timeout: timeout},
		limiter:  NewRateLimiter(settings.RatePerMinute),
		log:      log,
		remove:   os.Remove,
	}
}

// Configured returns true if the endpoint and credentials are set.
func (c *Client) Configured() bool {
	return c.settings.IsConfigured()
}

// Deliver reads the file at path, sends it once and removes it on a 2xx.
func (c *Client) Deliver(ctx context.Context, path, locatee string) (*driven.DeliveryReceipt, error) {
	if !c.Configured() {
		return nil, &domain.DeliveryError{Err: domain.ErrNotConfigured}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.DeliveryError{Err: fmt.Errorf("read %s: %w", path, err)}
	}

	filename := filepath.Base(path)
	body, err := json.Marshal(buildPayload(
		c.settings.Target,
		c.settings.Recipient,
		filename,
		base64.StdEncoding.EncodeToString(data),
		c.settings.Caption(locatee),
	))
	if err != nil {
		return nil, &domain.DeliveryError{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.DeliveryError{Err: fmt.Errorf("rate limit: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.DeliveryError{Err: fmt.Errorf("create request: %w", err)}
	}
	c.authorize(req)

	c.log.Info("Sending %s to %s via %s", filename, c.settings.Recipient, c.settings.Target)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("Delivery request failed: %v", err)
		return nil, &domain.DeliveryError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	c.log.Info("Delivery response status: %d", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error("Delivery rejected with status %d", resp.StatusCode)
		return nil, &domain.DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	receipt := &driven.DeliveryReceipt{StatusCode: resp.StatusCode, Removed: true}
	if err := c.remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Warn("Could not remove delivered file %s: %v", path, err)
		receipt.Removed = false
	} else {
		c.log.Debug("Removed delivered file %s", path)
	}
	return receipt, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	switch c.settings.Target {
	case domain.DeliveryTargetGateway:
		req.Header.Set("apikey", c.settings.APIKey)
	case domain.DeliveryTargetWebhook:
		if c.settings.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.settings.Token)
		}
	}
}
