package orderapi

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

	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/metrics"
	"github.com/and161185/bookdesk/internal/model"
)

const requestTimeout = 15 * time.Second

// Client talks to the remote order API. It holds no state besides the address.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

func NewClient(baseURL string, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		metrics: m,
	}
}

func (c *Client) ListOrders(ctx context.Context) ([]model.RawRecord, error) {
	return c.list(ctx, "orders.list", "/orders")
}

func (c *Client) ListPartialOrders(ctx context.Context) ([]model.RawRecord, error) {
	return c.list(ctx, "partial.list", "/partial-orders")
}

func (c *Client) ListBlockedUsers(ctx context.Context) ([]model.RawRecord, error) {
	return c.list(ctx, "blocked.list", "/admin/blocked-users")
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return c.patch(ctx, "orders.status", "/orders/"+url.PathEscape(id), map[string]any{"status": status})
}

func (c *Client) UpdateCallStatus(ctx context.Context, id string, status model.CallStatus) error {
	return c.patch(ctx, "orders.call_status", "/orders/"+url.PathEscape(id)+"/call-status",
		map[string]any{"phoneCallStatus": status})
}

func (c *Client) UpdateShippingMethod(ctx context.Context, id, method string, cost, total float64) error {
	return c.patch(ctx, "orders.shipping_method", "/orders/"+url.PathEscape(id)+"/shipping-method",
		map[string]any{"shippingMethod": method, "shippingCost": cost, "totalValue": total})
}

func (c *Client) UpdatePrice(ctx context.Context, id string, total float64) error {
	return c.patch(ctx, "orders.price", "/orders/"+url.PathEscape(id)+"/price", map[string]any{"totalValue": total})
}

func (c *Client) UpdateNote(ctx context.Context, id, note string) error {
	return c.patch(ctx, "orders.note", "/orders/"+url.PathEscape(id)+"/note", map[string]any{"note": note})
}

func (c *Client) MoveToAbandoned(ctx context.Context, id string) (model.APIResult, error) {
	return c.send(ctx, "orders.move_to_abandoned", http.MethodPost, "/orders/"+url.PathEscape(id)+"/move-to-abandoned", nil)
}

func (c *Client) CreateOrder(ctx context.Context, payload model.RawRecord) (model.APIResult, error) {
	return c.send(ctx, "orders.create", http.MethodPost, "/orders", payload)
}

func (c *Client) SavePartialOrder(ctx context.Context, payload model.RawRecord) error {
	res, err := c.send(ctx, "partial.save", http.MethodPost, "/save-partial-order", payload)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%w: %s", errs.ErrRejected, res.Message)
	}
	return nil
}

func (c *Client) DeletePartialOrder(ctx context.Context, id string) error {
	res, err := c.send(ctx, "partial.delete", http.MethodDelete, "/partial-orders/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%w: %s", errs.ErrRejected, res.Message)
	}
	return nil
}

func (c *Client) BlockUser(ctx context.Context, req model.BlockRequest) (model.APIResult, error) {
	return c.send(ctx, "blocked.create", http.MethodPost, "/admin/block-user", req)
}

func (c *Client) UnblockUser(ctx context.Context, identifier string) (model.APIResult, error) {
	return c.send(ctx, "blocked.delete", http.MethodDelete, "/admin/blocked-users/"+url.PathEscape(identifier), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, data, nil
}

func (c *Client) list(ctx context.Context, endpoint, path string) (list []model.RawRecord, err error) {
	defer func(started time.Time) { c.metrics.ObserveUpstream(endpoint, started, err) }(time.Now())

	resp, data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
	}
	return decodeRecords(data)
}

func (c *Client) patch(ctx context.Context, endpoint, path string, body any) (err error) {
	defer func(started time.Time) { c.metrics.ObserveUpstream(endpoint, started, err) }(time.Now())

	resp, data, err := c.do(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
	}

	var res model.APIResult
	if len(bytes.TrimSpace(data)) > 0 && json.Unmarshal(data, &res) == nil && !res.OK() {
		return fmt.Errorf("%w: %s", errs.ErrRejected, res.Message)
	}
	return nil
}

// send performs a create-like call. Business failures come back as a result
// with Success=false and a nil error; only transport, protocol and unexpected
// status failures are errors.
func (c *Client) send(ctx context.Context, endpoint, method, path string, body any) (res model.APIResult, err error) {
	defer func(started time.Time) { c.metrics.ObserveUpstream(endpoint, started, err) }(time.Now())

	resp, data, err := c.do(ctx, method, path, body)
	if err != nil {
		return model.APIResult{}, err
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if len(bytes.TrimSpace(data)) == 0 {
		if ok {
			return model.APIResult{}, nil
		}
		return failed(), fmt.Errorf("%w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.Unmarshal(data, &res); err != nil {
		return failed(), fmt.Errorf("%w: status %d: %v", errs.ErrNonJSONResponse, resp.StatusCode, err)
	}

	if ok || (res.Success != nil && !*res.Success) {
		return res, nil
	}

	res.Success = failed().Success
	return res, fmt.Errorf("%w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
}

func failed() model.APIResult {
	f := false
	return model.APIResult{Success: &f}
}

func decodeRecords(data []byte) ([]model.RawRecord, error) {
	var list []model.RawRecord
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNonJSONResponse, err)
	}
	for _, key := range []string{"orders", "partialOrders", "blockedUsers", "users", "data"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
	}
	return nil, fmt.Errorf("%w: no record list in response", errs.ErrNonJSONResponse)
}
