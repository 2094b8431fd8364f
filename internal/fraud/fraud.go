package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/and161185/bookdesk/internal/errs"
	"github.com/and161185/bookdesk/internal/metrics"
)

const (
	MinPhoneLength = 11

	RiskHigh = "HIGH RISK"
	RiskSafe = "SAFE"
)

type Report struct {
	Phone          string `json:"phone"`
	TotalParcels   int    `json:"total_parcels"`
	TotalCancel    int    `json:"total_cancel"`
	TotalDelivered int    `json:"total_delivered"`
	Risk           string `json:"risk"`
}

// Client checks a phone number's courier history. Results are never cached.
type Client struct {
	url     string
	key     string
	http    *http.Client
	metrics *metrics.Metrics
}

func NewClient(apiURL, apiKey string, m *metrics.Metrics) *Client {
	return &Client{
		url:     apiURL,
		key:     apiKey,
		http:    &http.Client{Timeout: 20 * time.Second},
		metrics: m,
	}
}

func (c *Client) Configured() bool {
	return c.url != "" && c.key != ""
}

func RiskLabel(cancelled, delivered int) string {
	if cancelled > delivered {
		return RiskHigh
	}
	return RiskSafe
}

func (c *Client) Check(ctx context.Context, phone string) (report Report, err error) {
	phone = strings.TrimSpace(phone)
	if utf8.RuneCountInString(phone) < MinPhoneLength {
		return Report{}, errs.ErrPhoneTooShort
	}
	if !c.Configured() {
		return Report{}, fmt.Errorf("fraud api: %w", errs.ErrNotConfigured)
	}

	defer func(started time.Time) { c.metrics.ObserveUpstream("fraud.check", started, err) }(time.Now())

	form := url.Values{"phone": {phone}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return Report{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Report{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("%w: %d", errs.ErrUnexpectedStatus, resp.StatusCode)
	}

	stats, err := decodeStats(data)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Phone:          phone,
		TotalParcels:   int(stats.TotalParcels),
		TotalCancel:    int(stats.TotalCancel),
		TotalDelivered: int(stats.TotalDelivered),
		Risk:           RiskLabel(int(stats.TotalCancel), int(stats.TotalDelivered)),
	}, nil
}

type stats struct {
	TotalParcels   count `json:"total_parcels"`
	TotalCancel    count `json:"total_cancel"`
	TotalDelivered count `json:"total_delivered"`
}

func decodeStats(data []byte) (stats, error) {
	var envelope struct {
		stats
		Data *stats `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return stats{}, fmt.Errorf("%w: %v", errs.ErrNonJSONResponse, err)
	}
	if envelope.Data != nil {
		return *envelope.Data, nil
	}
	return envelope.stats, nil
}

// count accepts both 3 and "3".
type count int

func (c *count) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("parse count %q: %w", b, err)
	}
	*c = count(n)
	return nil
}
