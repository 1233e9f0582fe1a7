// Package checkout orchestrates the cart-to-order transition: totals, the
// remote payment order, callback signature verification, and the atomic
// "record order / clear cart" commit.
package checkout

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/pos-register/internal/cart"
	"github.com/diewo77/pos-register/internal/models"
	"github.com/diewo77/pos-register/internal/payment"
)

var (
	// ErrGatewayNotConfigured means payment credentials are absent; the rest
	// of the register still works.
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	// ErrEmptyCart rejects checkout actions on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSignatureMismatch means the gateway callback failed verification;
	// nothing was committed and the cart is untouched.
	ErrSignatureMismatch = errors.New("payment signature verification failed")
)

// Service drives a checkout attempt. Gateway may be nil when the register
// runs without payment credentials.
type Service struct {
	DB       *gorm.DB
	Cart     *cart.Store
	Gateway  payment.Gateway
	Currency string
}

func NewService(db *gorm.DB, cartStore *cart.Store, gw payment.Gateway, currency string) *Service {
	return &Service{DB: db, Cart: cartStore, Gateway: gw, Currency: currency}
}

// GatewayKeyID returns the public gateway key for the payment UI, or the
// empty string when the gateway is not configured.
func (s *Service) GatewayKeyID() string {
	if s.Gateway == nil {
		return ""
	}
	return s.Gateway.KeyID()
}

// FinalAmount applies the register's fixed 5% net uplift (tax and discount
// folded into one multiplier) to a subtotal, rounding down. It is recomputed
// from the live cart at order creation and again at verification; both calls
// agree exactly for an unchanged cart because nothing is cached.
func FinalAmount(subtotal int) int {
	return subtotal * 105 / 100
}

// OrderCreation is what the browser needs to open the payment UI.
type OrderCreation struct {
	GatewayOrderID string
	Amount         int64 // gateway minor unit (paise)
	Currency       string
	KeyID          string
}

// CustomerDetails is free-form metadata attached to the gateway order for
// audit; none of it is validated or persisted locally.
type CustomerDetails struct {
	Name  string
	Phone string
	Notes string
}

// CreateOrder computes the payable amount from the current cart and opens a
// matching order at the gateway. Gateway failures come back verbatim and are
// never retried.
func (s *Service) CreateOrder(details CustomerDetails) (OrderCreation, error) {
	if s.Gateway == nil {
		return OrderCreation{}, ErrGatewayNotConfigured
	}
	lines, err := s.Cart.List()
	if err != nil {
		return OrderCreation{}, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return OrderCreation{}, ErrEmptyCart
	}
	subtotal := 0
	for _, l := range lines {
		subtotal += l.Price * l.Qty
	}
	amount := int64(FinalAmount(subtotal)) * 100 // to paise

	name := details.Name
	if name == "" {
		name = "Customer"
	}
	gatewayOrderID, err := s.Gateway.CreateOrder(payment.OrderRequest{
		Amount:   amount,
		Currency: s.Currency,
		Receipt:  "order_" + GenerateOrderNumber(),
		Notes: map[string]interface{}{
			"customer_name":  name,
			"customer_phone": details.Phone,
			"order_notes":    details.Notes,
			"items":          len(lines),
		},
	})
	if err != nil {
		return OrderCreation{}, err
	}
	return OrderCreation{
		GatewayOrderID: gatewayOrderID,
		Amount:         amount,
		Currency:       s.Currency,
		KeyID:          s.Gateway.KeyID(),
	}, nil
}

// Receipt is the outcome of a committed payment.
type Receipt struct {
	OrderNumber string
	Amount      int // minor currency unit
}

// VerifyAndCommit checks the gateway's callback signature and, only on
// success, records the order and empties the cart in a single transaction.
// The total is recomputed from the cart as it stands now, not frozen at
// order-creation time, and the gateway's confirmed charge is not
// cross-checked against it.
func (s *Service) VerifyAndCommit(gatewayOrderID, gatewayPaymentID, signature string) (Receipt, error) {
	if s.Gateway == nil {
		return Receipt{}, ErrGatewayNotConfigured
	}
	if !s.Gateway.VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature) {
		return Receipt{}, ErrSignatureMismatch
	}

	var receipt Receipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		subtotal, err := cart.TotalTx(tx)
		if err != nil {
			return fmt.Errorf("cart total: %w", err)
		}
		receipt = Receipt{
			OrderNumber: GenerateOrderNumber(),
			Amount:      FinalAmount(subtotal),
		}
		if err := tx.Create(&models.Order{
			OrderNumber: receipt.OrderNumber,
			Total:       receipt.Amount,
			Status:      "completed",
		}).Error; err != nil {
			return fmt.Errorf("record order: %w", err)
		}
		return cart.ClearTx(tx)
	})
	if err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

// PaymentFailure handles the gateway's failure callback. It records nothing
// and leaves the cart intact so the customer can retry; the return value is
// only a user-facing message.
func (s *Service) PaymentFailure(code, description string) string {
	if description == "" {
		description = "Payment failed"
	}
	return fmt.Sprintf("Payment failed: %s", description)
}
