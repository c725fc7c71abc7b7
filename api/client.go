// Package api is a typed client for the inventory backend's REST interface.
// Every call decodes the JSON reply into an explicit response shape at the
// boundary; a 2xx body that fails to decode is reported as a malformed
// response, distinct from a request failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
)

const defaultListLimit = 100

// Client issues authenticated requests against the backend. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption modifies a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing
// and custom timeouts).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the backend at baseURL
// (e.g. "http://localhost:8000").
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Login exchanges credentials for a bearer token via POST /auth/login.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp TokenResponse
	if err := c.post(ctx, "", "/auth/login", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", apperrors.Wrapf(apperrors.ErrMalformedResponse, "login reply missing access_token")
	}
	return resp.AccessToken, nil
}

// Me resolves the current user and roles via GET /auth/me.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var user User
	if err := c.get(ctx, token, "/auth/me", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// DashboardSummary fetches the aggregate counts and stock value.
func (c *Client) DashboardSummary(ctx context.Context, token string) (DashboardSummary, error) {
	var summary DashboardSummary
	if err := c.get(ctx, token, "/dashboard/summary", nil, &summary); err != nil {
		return DashboardSummary{}, err
	}
	return summary, nil
}

// LowStockAlerts lists products at or under their reorder threshold.
func (c *Client) LowStockAlerts(ctx context.Context, token string) ([]LowStockAlert, error) {
	var alerts []LowStockAlert
	if err := c.get(ctx, token, "/dashboard/low-stock", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// DailySales fetches today's transaction rollup. The result is nil on days
// with no recorded sales.
func (c *Client) DailySales(ctx context.Context, token string) (*DailySalesSummary, error) {
	var summary *DailySalesSummary
	if err := c.get(ctx, token, "/dashboard/daily-sales", nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// ProductPerformance lists products with 30-day sold counts, best sellers
// first.
func (c *Client) ProductPerformance(ctx context.Context, token string) ([]ProductPerformance, error) {
	var products []ProductPerformance
	if err := c.get(ctx, token, "/dashboard/product-performance", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SubmitReceipt records received stock and returns the resulting movement.
func (c *Client) SubmitReceipt(ctx context.Context, token string, receipt ReceiptRequest) (Movement, error) {
	var movement Movement
	if err := c.post(ctx, token, "/inventory/receipt", nil, receipt, &movement); err != nil {
		return Movement{}, err
	}
	return movement, nil
}

// SubmitAdjustment records a manual stock adjustment and returns the
// resulting movement.
func (c *Client) SubmitAdjustment(ctx context.Context, token string, adjustment AdjustmentRequest) (Movement, error) {
	var movement Movement
	if err := c.post(ctx, token, "/inventory/adjust", nil, adjustment, &movement); err != nil {
		return Movement{}, err
	}
	return movement, nil
}

// Movements lists recent stock movements, newest first, optionally filtered
// by SKU server-side.
func (c *Client) Movements(ctx context.Context, token string, filter MovementFilter) ([]Movement, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if filter.ProductSKU != "" {
		query.Set("product_sku", filter.ProductSKU)
	}

	var movements []Movement
	if err := c.get(ctx, token, "/inventory/movements", query, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

// StockLevel fetches the current stock level for one SKU.
func (c *Client) StockLevel(ctx context.Context, token, sku string) (StockLevel, error) {
	var level StockLevel
	if err := c.get(ctx, token, "/inventory/stock/"+url.PathEscape(sku), nil, &level); err != nil {
		return StockLevel{}, err
	}
	return level, nil
}

// GenerateSuggestions triggers suggestion generation. The backend binds the
// parameters from the query string, not the body.
func (c *Client) GenerateSuggestions(ctx context.Context, token string, params GenerationParams) error {
	query := url.Values{}
	query.Set("lookback_days", strconv.Itoa(params.LookbackDays))
	query.Set("forecast_days", strconv.Itoa(params.ForecastDays))
	query.Set("safety_stock_factor", strconv.FormatFloat(params.SafetyStockFactor, 'f', -1, 64))
	return c.post(ctx, token, "/replenishment/generate", query, nil, nil)
}

// Suggestions lists replenishment suggestions, either the active set or all
// of them.
func (c *Client) Suggestions(ctx context.Context, token string, activeOnly bool, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := url.Values{}
	query.Set("active_only", strconv.FormatBool(activeOnly))
	query.Set("limit", strconv.Itoa(limit))

	var suggestions []Suggestion
	if err := c.get(ctx, token, "/replenishment/suggestions", query, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// SuggestionAction accepts or ignores one suggestion.
func (c *Client) SuggestionAction(ctx context.Context, token string, suggestionID int64, action string) error {
	body := suggestionActionRequest{SuggestionID: suggestionID, Action: action}
	return c.post(ctx, token, "/replenishment/actions", nil, body, nil)
}

// Internals ---------------------------------------------------------------

func (c *Client) get(ctx context.Context, token, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, token, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, token, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, token, path, query, body, out)
}

func (c *Client) do(ctx context.Context, method, token, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, "[Client] encode %s %s", method, path)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.Wrapf(err, "[Client] build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, "[Client] %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(payload)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(apperrors.ErrMalformedResponse, "[Client] decode %s %s: %v", method, path, err)
	}
	return nil
}
