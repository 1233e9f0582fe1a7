// Package payment wraps the external payment gateway behind a small
// capability interface so checkout logic and tests never touch the vendor
// client directly.
package payment

// OrderRequest carries everything the gateway needs to open a payment
// order. Amount is in the gateway's minor unit (paise).
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]interface{}
}

// Gateway is the payment-gateway capability. Calls are blocking and bounded
// by the underlying client's request timeout; they are never retried here,
// since retrying order creation could open duplicate gateway orders.
type Gateway interface {
	// CreateOrder opens a payment order remotely and returns the gateway's
	// order identifier.
	CreateOrder(req OrderRequest) (string, error)
	// VerifyPaymentSignature reports whether signature correctly binds the
	// gateway order and payment identifiers.
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	// KeyID returns the public key the browser needs to open the payment UI.
	KeyID() string
}
