package main

import (
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/pos-register/internal/cart"
	"github.com/diewo77/pos-register/internal/checkout"
	"github.com/diewo77/pos-register/internal/config"
	"github.com/diewo77/pos-register/internal/handlers"
	"github.com/diewo77/pos-register/internal/images"
	"github.com/diewo77/pos-register/internal/payment"
)

// NewApp wires the stores, the payment gateway, and the route table. The
// cart store is the process-wide shared cart: one register, one cart.
func NewApp(dbConn *gorm.DB, cfg config.Config, log *slog.Logger) http.Handler {
	cartStore := cart.NewStore(dbConn)

	// payment.NewRazorpay returns nil without credentials; the checkout
	// service turns that into configuration errors on gateway-touching calls.
	var gw payment.Gateway
	if rz := payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret); rz != nil {
		gw = rz
	}
	checkoutSvc := checkout.NewService(dbConn, cartStore, gw, cfg.Currency)

	imgs := images.New(cfg.UnsplashAccessKey, cfg.ImageCacheDir, log)

	rh := handlers.NewRegisterHandler(cartStore, cfg.ProductFile, imgs, log)
	ch := handlers.NewCheckoutHandler(cartStore, checkoutSvc, log)

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
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return mux
}
