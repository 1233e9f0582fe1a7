package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/pos-register/internal/cart"
	"github.com/diewo77/pos-register/internal/checkout"
	"github.com/diewo77/pos-register/internal/images"
	"github.com/diewo77/pos-register/internal/models"
	"github.com/diewo77/pos-register/internal/payment"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.CartLine{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.txt")
	if err := os.WriteFile(path, []byte("A1,Apple,50\nB2,Banana,10\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

// stubGateway verifies callbacks with the real HMAC algorithm.
type stubGateway struct {
	secret  string
	orderID string
}

func (g *stubGateway) CreateOrder(payment.OrderRequest) (string, error) { return g.orderID, nil }

func (g *stubGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(sign(g.secret, orderID, paymentID)), []byte(signature))
}

func (g *stubGateway) KeyID() string { return "rzp_test_key" }

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// newTestServer stands up the register's full route table, mirroring the
// wiring in cmd/server, over a per-test database and catalog. gw may be nil
// to exercise the unconfigured-gateway paths.
func newTestServer(t *testing.T, gw payment.Gateway) (*httptest.Server, *cart.Store, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	store := cart.NewStore(db)
	svc := checkout.NewService(db, store, gw, "INR")

	rh := NewRegisterHandler(store, writeTestCatalog(t), images.Placeholder{}, testLogger())
	ch := NewCheckoutHandler(store, svc, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", rh.Home)
	mux.HandleFunc("POST /{$}", rh.Scan)
	mux.HandleFunc("GET /shop", rh.Shop)
	mux.HandleFunc("GET /add-to-cart/{barcode}", rh.AddToCart)
	mux.HandleFunc("GET /product-image/{barcode}", rh.ProductImage)
	mux.HandleFunc("GET /update/{barcode}/{action}", rh.Update)
	mux.HandleFunc("GET /delete/{barcode}", rh.Delete)
	mux.HandleFunc("GET /checkout", ch.Page)
	mux.HandleFunc("POST /create-order", ch.CreateOrder)
	mux.HandleFunc("POST /payment-success", ch.PaymentSuccess)
	mux.HandleFunc("POST /payment-failure", ch.PaymentFailure)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store, db
}

// flashClient follows redirects and carries the flash cookie like a browser.
func flashClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// noRedirectClient stops at the first response so tests can assert on the
// redirect itself.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
