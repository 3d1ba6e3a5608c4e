package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

func sampleOrder() order.Order {
	line := cart.Line{ProductID: "bread", Name: "Sourdough", UnitPrice: decimal.RequireFromString("8.50"), Quantity: 2, Limit: 3}
	return order.Order{
		ID:            "ORD-7K2QZ9",
		Customer:      order.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		PaymentMethod: order.PaymentCard,
		Lines:         []cart.Line{line},
		PickupDate:    time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC),
		Total:         decimal.RequireFromString("17"),
	}
}

func TestCollectorSend(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotCID    string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotCID = r.Header.Get(middleware.HeaderCorrelationID)
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte("<html>ignored</html>"))
	}))
	defer srv.Close()

	c, err := NewCollector(srv.URL, srv.Client())
	require.NoError(t, err)

	ctx := middleware.WithCorrelationID(context.Background(), "cid-42")
	require.NoError(t, c.Send(ctx, sampleOrder()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "cid-42", gotCID)
	assert.Equal(t, "ORD-7K2QZ9", gotBody["orderId"])
	assert.Equal(t, "Ada", gotBody["firstName"])
	assert.Equal(t, "", gotBody["phone"])
	assert.Equal(t, "Card", gotBody["paymentMethod"])
	assert.Equal(t, "17.00", gotBody["total"])
	assert.Contains(t, gotBody["orderDetails"], "- Sourdough x 2 - $17.00")
}

func TestCollectorSendMintsCorrelationID(t *testing.T) {
	var gotCID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCID = r.Header.Get(middleware.HeaderCorrelationID)
	}))
	defer srv.Close()

	c, err := NewCollector(srv.URL, srv.Client())
	require.NoError(t, err)
	require.NoError(t, c.Send(context.Background(), sampleOrder()))
	assert.Len(t, gotCID, 36)
}

func TestCollectorSendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewCollector(srv.URL, srv.Client())
	require.NoError(t, err)

	err = c.Send(context.Background(), sampleOrder())
	require.ErrorIs(t, err, ErrCollectorStatus)
	assert.Contains(t, err.Error(), "429")
}

func TestCollectorSendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewCollector(url, nil)
	require.NoError(t, err)

	err = c.Send(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCollectorStatus)
}

func TestNewCollectorRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"://nope", "ftp://example.com/x", ""} {
		_, err := NewCollector(raw, nil)
		assert.Error(t, err, raw)
	}
}
