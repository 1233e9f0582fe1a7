package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/diewo77/pos-register/internal/cart"
	"github.com/diewo77/pos-register/internal/checkout"
	"github.com/diewo77/pos-register/internal/httpx"
	"github.com/diewo77/pos-register/internal/middleware"
	"github.com/diewo77/pos-register/internal/view"
)

// CheckoutHandler serves the checkout summary and the payment-gateway
// callback endpoints.
type CheckoutHandler struct {
	Cart     *cart.Store
	Checkout *checkout.Service
	Log      *slog.Logger
}

func NewCheckoutHandler(cartStore *cart.Store, svc *checkout.Service, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{Cart: cartStore, Checkout: svc, Log: log}
}

// Page renders the checkout summary; an empty cart bounces back to the
// register with a notice and never reaches the gateway.
func (h *CheckoutHandler) Page(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Cart.List()
	if err != nil {
		h.Log.Error("failed to load cart for checkout", "error", err)
		middleware.Flash(w, "Error loading checkout. Please try again.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if len(lines) == 0 {
		middleware.Flash(w, "Your cart is empty. Please add items before checkout.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	total := totalOf(lines)
	data := map[string]any{
		"Cart":        lines,
		"Total":       total,
		"FinalAmount": checkout.FinalAmount(total),
		"KeyID":       h.Checkout.GatewayKeyID(),
	}
	if msg := middleware.PopFlash(w, r); msg != "" {
		data["Flash"] = msg
	}
	if err := view.Render(w, r, "checkout.html", data); err != nil {
		h.Log.Error("failed to render checkout page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// CreateOrder opens a payment order at the gateway for the current cart.
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
		OrderNotes    string `json:"order_notes"`
	}
	if r.Body != nil {
		// Customer details are optional metadata; a bad body falls back to blanks.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	created, err := h.Checkout.CreateOrder(checkout.CustomerDetails{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
		Notes: req.OrderNotes,
	})
	switch {
	case errors.Is(err, checkout.ErrGatewayNotConfigured):
		httpx.JSONError(w, http.StatusServiceUnavailable, "Payment gateway not configured", "")
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		httpx.JSONError(w, http.StatusBadRequest, "Cart is empty", "")
		return
	case err != nil:
		h.Log.Error("failed to create gateway order", "error", err)
		httpx.JSONError(w, http.StatusBadGateway, err.Error(), "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"order_id": created.GatewayOrderID,
		"amount":   created.Amount,
		"currency": created.Currency,
		"key_id":   created.KeyID,
	})
}

// PaymentSuccess verifies the gateway callback and commits the order.
func (h *CheckoutHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"success":  false,
			"error":    "Invalid payment callback.",
			"redirect": "/checkout",
		})
		return
	}

	receipt, err := h.Checkout.VerifyAndCommit(req.OrderID, req.PaymentID, req.Signature)
	switch {
	case errors.Is(err, checkout.ErrGatewayNotConfigured):
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]any{
			"success":  false,
			"error":    "Payment gateway not configured.",
			"redirect": "/",
		})
		return
	case errors.Is(err, checkout.ErrSignatureMismatch):
		h.Log.Warn("payment signature verification failed",
			"gateway_order_id", req.OrderID, "gateway_payment_id", req.PaymentID)
		middleware.Flash(w, "Payment verification failed. Please contact support.")
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"success":  false,
			"error":    "Payment verification failed. Please contact support.",
			"redirect": "/checkout",
		})
		return
	case err != nil:
		h.Log.Error("failed to commit verified payment", "gateway_order_id", req.OrderID, "error", err)
		middleware.Flash(w, "Error processing payment. Please contact support.")
		httpx.JSON(w, http.StatusInternalServerError, map[string]any{
			"success":  false,
			"error":    "Error processing payment. Please contact support.",
			"redirect": "/checkout",
		})
		return
	}

	msg := fmt.Sprintf("Payment successful! Order #%s. Amount: ₹%d", receipt.OrderNumber, receipt.Amount)
	h.Log.Info("payment committed", "order_number", receipt.OrderNumber, "amount", receipt.Amount)
	middleware.Flash(w, msg)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("Payment successful! Order #%s", receipt.OrderNumber),
		"redirect": "/",
	})
}

// PaymentFailure records nothing and leaves the cart intact for a retry.
func (h *CheckoutHandler) PaymentFailure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Error struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	msg := h.Checkout.PaymentFailure(req.Error.Code, req.Error.Description)
	h.Log.Warn("payment failed at gateway", "code", req.Error.Code, "description", req.Error.Description)
	middleware.Flash(w, msg)

	description := req.Error.Description
	if description == "" {
		description = "Payment failed"
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":  false,
		"error":    description,
		"redirect": "/checkout",
	})
}
