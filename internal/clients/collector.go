package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

var ErrCollectorStatus = errors.New("collector returned non-2xx status")

// Collector posts placed orders to the spreadsheet web-app endpoint.
type Collector struct {
	URL  *url.URL
	HTTP *http.Client
}

func NewCollector(rawURL string, httpClient *http.Client) (*Collector, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid collector url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid collector url %q: scheme must be http or https", rawURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Collector{URL: u, HTTP: httpClient}, nil
}

func (c *Collector) Send(ctx context.Context, o order.Order) error {
	body, err := json.Marshal(order.NewPayload(o))
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	cid := middleware.GetCorrelationID(ctx)
	if cid == "" {
		cid = uuid.NewString()
	}
	req.Header.Set(middleware.HeaderCorrelationID, cid)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("post order %s: %w", o.ID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrCollectorStatus, resp.StatusCode)
	}
	return nil
}
