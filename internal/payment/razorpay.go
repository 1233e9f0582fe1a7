package payment

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Razorpay implements Gateway over the official Razorpay client.
type Razorpay struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpay builds the gateway from credentials. It returns nil when
// either credential is missing: the register keeps running, checkout calls
// fail with a configuration error instead.
func NewRazorpay(keyID, keySecret string) *Razorpay {
	if keyID == "" || keySecret == "" {
		return nil
	}
	return &Razorpay{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}
}

func (g *Razorpay) CreateOrder(req OrderRequest) (string, error) {
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    req.Notes,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order create: response missing order id")
	}
	return id, nil
}

// VerifyPaymentSignature checks the HMAC-SHA256 the gateway computed over
// "order_id|payment_id" with the key secret.
func (g *Razorpay) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}

func (g *Razorpay) KeyID() string { return g.keyID }
