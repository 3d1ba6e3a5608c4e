package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/limits"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	orders []order.Order
}

func (r *recordingDispatcher) Dispatch(_ context.Context, o order.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
}

type brokenStore struct{ limits.Store }

func (brokenStore) Get(context.Context) (limits.Counts, error) {
	return nil, errors.New("database is locked")
}

func (brokenStore) Reset(context.Context) error {
	return errors.New("database is locked")
}

var mondayNoon = time.Date(2026, time.October, 12, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Product{
		{ID: "bread", Name: "Sourdough", Price: decimal.RequireFromString("8.50"), WeeklyLimit: 2},
		{ID: "eggs", Name: "Eggs", Price: decimal.RequireFromString("6.10"), WeeklyLimit: 1},
	})
	require.NoError(t, err)
	return cat
}

func newServer(t *testing.T, store limits.Store, admin bool) (http.Handler, *recordingDispatcher) {
	t.Helper()
	d := &recordingDispatcher{}
	s := storefront.NewSession(testCatalog(t), store, d, storefront.WithClock(func() time.Time { return mondayNoon }))
	return NewRouter(NewHandler(s, nil), RouterConfig{AdminEnabled: admin}), d
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	h, _ := newServer(t, limits.NewMemoryStore(nil), false)

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"storefront"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderCorrelationID))
}

func TestAddItemAndCart(t *testing.T) {
	h, _ := newServer(t, limits.NewMemoryStore(nil), false)

	rec := do(t, h, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["empty"])

	rec = do(t, h, http.MethodPost, "/api/cart/items", `{"productId":"bread"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/cart/items", `{"productId":"bread"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "17.00", body["total"])
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(2), rows[0].(map[string]any)["quantity"])

	rec = do(t, h, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode(t, rec)
	assert.Equal(t, true, products["limitBanner"])
	first := products["products"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"enabled": false, "label": "At Order Limit"}, first["button"])
}

func TestAddItemErrors(t *testing.T) {
	tests := map[string]struct {
		body     string
		prepare  int
		wantCode int
		wantErr  string
	}{
		"malformed json":  {body: `{"productId":`, wantCode: http.StatusBadRequest, wantErr: "bad_request"},
		"missing product": {body: `{}`, wantCode: http.StatusBadRequest, wantErr: "bad_request"},
		"unknown product": {body: `{"productId":"caviar"}`, wantCode: http.StatusNotFound, wantErr: "unknown_product"},
		"limit reached":   {body: `{"productId":"eggs"}`, prepare: 1, wantCode: http.StatusConflict, wantErr: "limit_reached"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, _ := newServer(t, limits.NewMemoryStore(nil), false)
			for i := 0; i < tt.prepare; i++ {
				require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/cart/items", tt.body).Code)
			}

			rec := do(t, h, http.MethodPost, "/api/cart/items", tt.body)
			require.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decode(t, rec)["code"])
		})
	}
}

func TestLimitReachedMessage(t *testing.T) {
	h, _ := newServer(t, limits.NewMemoryStore(limits.Counts{"eggs": 1}), false)

	rec := do(t, h, http.MethodPost, "/api/cart/items", `{"productId":"eggs"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "This item has reached its order limit for the week.", decode(t, rec)["error"])
}

func TestCheckout(t *testing.T) {
	tests := map[string]struct {
		addFirst bool
		body     string
		wantCode int
		wantErr  string
	}{
		"missing name":    {addFirst: true, body: `{"firstName":"Ada","phone":"1"}`, wantCode: http.StatusUnprocessableEntity, wantErr: "missing_name"},
		"missing contact": {addFirst: true, body: `{"firstName":"Ada","lastName":"Lovelace"}`, wantCode: http.StatusUnprocessableEntity, wantErr: "missing_contact"},
		"empty cart":      {body: `{"firstName":"Ada","lastName":"Lovelace","phone":"1"}`, wantCode: http.StatusConflict, wantErr: "empty_cart"},
		"bad method":      {addFirst: true, body: `{"firstName":"Ada","lastName":"Lovelace","phone":"1","paymentMethod":"Bitcoin"}`, wantCode: http.StatusBadRequest, wantErr: "unknown_payment_method"},
		"malformed json":  {addFirst: true, body: `not json`, wantCode: http.StatusBadRequest, wantErr: "bad_request"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, d := newServer(t, limits.NewMemoryStore(nil), false)
			if tt.addFirst {
				require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/cart/items", `{"productId":"bread"}`).Code)
			}

			rec := do(t, h, http.MethodPost, "/api/checkout", tt.body)
			require.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decode(t, rec)["code"])
			assert.Empty(t, d.orders)
		})
	}
}

func TestCheckoutSuccess(t *testing.T) {
	h, d := newServer(t, limits.NewMemoryStore(nil), false)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/cart/items", `{"productId":"eggs"}`).Code)

	rec := do(t, h, http.MethodPost, "/api/checkout",
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","paymentMethod":"venmo"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Regexp(t, `^ORD-[0-9A-Z]{6}$`, body["orderId"])
	assert.Equal(t, "Friday, October 16, 2026", body["pickupDate"])
	assert.Equal(t, "6.10", body["total"])
	assert.Contains(t, body["summary"], "in the Venmo payment note.")

	require.Len(t, d.orders, 1)
	assert.Equal(t, order.PaymentVenmo, d.orders[0].PaymentMethod)

	rec = do(t, h, http.MethodGet, "/api/cart", "")
	assert.Equal(t, true, decode(t, rec)["empty"])
}

func TestPickupDateEndpoint(t *testing.T) {
	h, _ := newServer(t, limits.NewMemoryStore(nil), false)

	rec := do(t, h, http.MethodGet, "/api/pickup-date", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pickupDate":"Friday, October 16, 2026"}`, rec.Body.String())
}

func TestAdminResetRequiresFlag(t *testing.T) {
	store := limits.NewMemoryStore(limits.Counts{"eggs": 1})

	h, _ := newServer(t, store, false)
	rec := do(t, h, http.MethodPost, "/api/admin/limits/reset", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h, _ = newServer(t, store, true)
	rec = do(t, h, http.MethodPost, "/api/admin/limits/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	counts, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestStoreFailureIs500(t *testing.T) {
	h, _ := newServer(t, brokenStore{Store: limits.NewMemoryStore(nil)}, true)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/products", ""},
		{http.MethodPost, "/api/cart/items", `{"productId":"bread"}`},
		{http.MethodPost, "/api/admin/limits/reset", ""},
	} {
		rec := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		assert.Equal(t, "internal", decode(t, rec)["code"], tc.path)
	}
}
