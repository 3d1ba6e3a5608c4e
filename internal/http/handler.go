package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pickup"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
)

type Handler struct {
	session *storefront.Session
	logger  *zap.Logger
}

func NewHandler(session *storefront.Session, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{session: session, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Storefront(r.Context())
	if err != nil {
		h.internalError(w, r, "list products", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Cart())
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "productId is required")
		return
	}

	view, err := h.session.AddItem(r.Context(), req.ProductID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, cart.ErrLimitReached):
		writeError(w, r, http.StatusConflict, "limit_reached", cart.LimitReachedMessage)
	case errors.Is(err, catalog.ErrUnknownProduct):
		writeError(w, r, http.StatusNotFound, "unknown_product", "product not found")
	default:
		h.internalError(w, r, "add item", err)
	}
}

type checkoutRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	PaymentMethod string `json:"paymentMethod"`
}

type confirmationResponse struct {
	OrderID    string `json:"orderId"`
	Summary    string `json:"summary"`
	PickupDate string `json:"pickupDate"`
	Total      string `json:"total"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	in := checkout.CustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if req.PaymentMethod != "" {
		m, err := order.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unknown_payment_method", err.Error())
			return
		}
		in.PaymentMethod = m
	}

	conf, err := h.session.Checkout(r.Context(), in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, confirmationResponse{
			OrderID:    conf.OrderID,
			Summary:    conf.Summary,
			PickupDate: pickup.Format(conf.PickupDate),
			Total:      order.FormatMoney(conf.Total),
		})
	case errors.Is(err, checkout.ErrMissingName):
		writeError(w, r, http.StatusUnprocessableEntity, "missing_name", "Please enter your first and last name.")
	case errors.Is(err, checkout.ErrMissingContact):
		writeError(w, r, http.StatusUnprocessableEntity, "missing_contact", "Please enter a phone number or email address.")
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, r, http.StatusConflict, "empty_cart", storefront.EmptyCartMessage)
	default:
		h.internalError(w, r, "checkout", err)
	}
}

func (h *Handler) PickupDate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"pickupDate": pickup.Format(h.session.PickupDate()),
	})
}

func (h *Handler) ResetLimits(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ResetLimits(r.Context()); err != nil {
		h.internalError(w, r, "reset limits", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+" failed",
		zap.Error(err),
		zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
	)
	writeError(w, r, http.StatusInternalServerError, "internal", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, middleware.ErrorResponse{
		Error:         msg,
		Code:          code,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
}
