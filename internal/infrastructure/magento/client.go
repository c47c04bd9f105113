package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// maxResponseSize is the maximum allowed response size from the backend (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Client implements storefront.CommercePlatform against a Magento 2 REST
// backend. It holds no per-shopper state: carts and customers are addressed
// through the CartRef / token passed on each call. The only mutable state is
// the cached admin token.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	logger     *zap.Logger

	mu                   sync.Mutex
	adminToken           string
	adminTokenExp        time.Time
	displayCurrencyCache string
}

// NewClient creates a Magento client with the given configuration.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("magento"),
	}, nil
}

// ---------------------------------------------------------------------------
// Admin token
// ---------------------------------------------------------------------------

// adminAuth returns a bearer token for admin-scoped endpoints, fetching a new
// one when the cached token is missing or past its TTL.
func (c *Client) adminAuth(ctx context.Context) (string, error) {
	if c.cfg.IntegrationToken != "" {
		return c.cfg.IntegrationToken, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.adminToken != "" && time.Now().Before(c.adminTokenExp) {
		return c.adminToken, nil
	}

	var token string
	err := c.call(ctx, http.MethodPost, "/integration/admin/token", "", map[string]string{
		"username": c.cfg.AdminUsername,
		"password": c.cfg.AdminPassword,
	}, &token)
	if err != nil {
		return "", fmt.Errorf("admin token: %w", err)
	}

	c.adminToken = token
	c.adminTokenExp = time.Now().Add(c.cfg.AdminTokenTTL)
	c.logger.Debug("admin token refreshed", zap.Time("expires", c.adminTokenExp))
	return token, nil
}

// invalidateAdminToken drops the cached admin token after a 401.
func (c *Client) invalidateAdminToken() {
	c.mu.Lock()
	c.adminToken = ""
	c.adminTokenExp = time.Time{}
	c.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// doAdmin performs an admin-authenticated call, renewing the token and
// retrying once on 401. A second 401 surfaces as ErrUnauthorized.
func (c *Client) doAdmin(ctx context.Context, method, path string, body, out any) error {
	token, err := c.adminAuth(ctx)
	if err != nil {
		return err
	}
	err = c.call(ctx, method, path, token, body, out)
	if err == nil || !errors.Is(err, storefront.ErrUnauthorized) || c.cfg.IntegrationToken != "" {
		return err
	}

	c.invalidateAdminToken()
	token, err = c.adminAuth(ctx)
	if err != nil {
		return err
	}
	return c.call(ctx, method, path, token, body, out)
}

// doCustomer performs a call authenticated with the customer token.
func (c *Client) doCustomer(ctx context.Context, token, method, path string, body, out any) error {
	return c.call(ctx, method, path, token, body, out)
}

// doGuest performs an anonymous call (guest cart and registration endpoints).
func (c *Client) doGuest(ctx context.Context, method, path string, body, out any) error {
	return c.call(ctx, method, path, "", body, out)
}

// call performs a single REST request against the backend and decodes the
// response into out. Error responses are translated onto the storefront
// error taxonomy.
func (c *Client) call(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("magento: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.restPath(path), reader)
	if err != nil {
		return fmt.Errorf("magento: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", storefront.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", storefront.ErrBackendInvalidResponse, err)
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return translateError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", storefront.ErrBackendInvalidResponse, path, err)
	}
	return nil
}

// Ensure Client implements the platform port.
var _ storefront.CommercePlatform = (*Client)(nil)
