// Package orderstore provides the REST client for the authoritative order
// store, and the wire DTOs shared with the event transport adapter.
package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var _ ports.OrderStore = (*Client)(nil)

const defaultTimeout = 10 * time.Second

// Client is the HTTP client for the order store's REST API. Every request
// carries a generated X-Request-Id so store-side logs can be correlated with
// station activity.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an order store client for the given base URL.
// Passing a nil httpClient installs one with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// GetOrders retrieves the full active order set.
func (c *Client) GetOrders(ctx context.Context) ([]*order.Order, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/orders", nil)
	if err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err = json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("decode orders response: %w", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := dto.ToDomain()
		if mapErr != nil {
			return nil, fmt.Errorf("map order %s: %w", dto.ID, mapErr)
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

// GetOrder retrieves one order by id.
func (c *Client) GetOrder(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/orders/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err = json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return dto.ToDomain()
}

// SubmitStatusChange submits a transition and returns the authoritative order
// state after the store applied it.
func (c *Client) SubmitStatusChange(
	ctx context.Context,
	id kernel.OrderID,
	change ports.StatusChange,
) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(NewStatusChangeDTO(change))
	if err != nil {
		return nil, fmt.Errorf("encode status change: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/orders/"+url.PathEscape(id.String())+"/status", payload)
	if err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err = json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode status change response: %w", err)
	}
	return dto.ToDomain()
}

// do executes one request and maps the store's error statuses: 404 becomes an
// object-not-found error, 409 and 422 become store rejections carrying the
// response body as the reason.
func (c *Client) do(ctx context.Context, method, requestURL string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order store request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order store response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.NewObjectNotFoundError("order", requestURL)
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", ports.ErrStoreRejected, rejectionReason(body))
	default:
		return nil, fmt.Errorf("order store returned status %d", resp.StatusCode)
	}
}

// rejectionReason extracts the store's human-readable reason from a rejection
// body, falling back to the raw body text.
func rejectionReason(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(body))
}
