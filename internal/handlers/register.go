package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/pos-register/internal/cart"
	"github.com/diewo77/pos-register/internal/catalog"
	"github.com/diewo77/pos-register/internal/checkout"
	"github.com/diewo77/pos-register/internal/images"
	"github.com/diewo77/pos-register/internal/middleware"
	"github.com/diewo77/pos-register/internal/models"
	"github.com/diewo77/pos-register/internal/view"
)

// RegisterHandler serves the scan screen, the shop gallery, and the cart
// mutations behind them.
type RegisterHandler struct {
	Cart        *cart.Store
	ProductFile string
	Images      images.Provider
	Log         *slog.Logger
}

func NewRegisterHandler(cartStore *cart.Store, productFile string, imgs images.Provider, log *slog.Logger) *RegisterHandler {
	return &RegisterHandler{Cart: cartStore, ProductFile: productFile, Images: imgs, Log: log}
}

// Home renders the cart with a freshly generated order-number preview.
func (h *RegisterHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"OrderNumber": checkout.GenerateOrderNumber()}
	if msg := middleware.PopFlash(w, r); msg != "" {
		data["Flash"] = msg
	}

	lines, err := h.Cart.List()
	if err != nil {
		h.Log.Error("failed to load cart", "error", err)
		lines = nil
		data["Flash"] = "Error loading cart. Please refresh."
	}
	data["Cart"] = lines
	data["Total"] = totalOf(lines)

	if err := view.Render(w, r, "cart.html", data); err != nil {
		h.Log.Error("failed to render cart page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// Scan handles a barcode POST from the scan form or a hardware scanner.
// An empty barcode just refreshes the page (common when a scanner misfires).
func (h *RegisterHandler) Scan(w http.ResponseWriter, r *http.Request) {
	barcode := strings.TrimSpace(r.FormValue("barcode"))
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	if barcode == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	products := catalog.Load(h.ProductFile, h.Log)
	p, ok := products[barcode]
	if !ok {
		h.Log.Warn("unknown barcode scanned", "barcode", barcode)
		middleware.Flash(w, "Product not found: "+barcode)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.Cart.AddOrIncrement(barcode, p, qty); err != nil {
		h.Log.Error("failed to add item to cart", "barcode", barcode, "error", err)
		middleware.Flash(w, "Error adding item to cart. Please try again.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Shop renders the catalog as a browsable gallery.
func (h *RegisterHandler) Shop(w http.ResponseWriter, r *http.Request) {
	products := catalog.Load(h.ProductFile, h.Log)

	type shopProduct struct {
		Barcode string
		Name    string
		Price   int
	}
	list := make([]shopProduct, 0, len(products))
	for barcode, p := range products {
		list = append(list, shopProduct{Barcode: barcode, Name: p.Name, Price: p.Price})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Barcode < list[j].Barcode })

	now := time.Now()
	data := map[string]any{
		"Products":    list,
		"CurrentDate": now.Format("Mon, 02 Jan 2006"),
		"CurrentTime": now.Format("03:04 PM"),
	}
	if msg := middleware.PopFlash(w, r); msg != "" {
		data["Flash"] = msg
	}
	if err := view.Render(w, r, "shop.html", data); err != nil {
		h.Log.Error("failed to render shop page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// AddToCart adds one unit from the shop gallery (same path as scanning).
func (h *RegisterHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")
	products := catalog.Load(h.ProductFile, h.Log)
	p, ok := products[barcode]
	if !ok {
		middleware.Flash(w, "Product not found: "+barcode)
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	if err := h.Cart.AddOrIncrement(barcode, p, 1); err != nil {
		h.Log.Error("failed to add to cart", "barcode", barcode, "error", err)
		middleware.Flash(w, "Error adding to cart. Please try again.")
	} else {
		middleware.Flash(w, "Added "+p.Name+" to cart!")
	}
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

// Update handles the inc/dec quantity links on the cart page.
func (h *RegisterHandler) Update(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")
	action := r.PathValue("action")

	var err error
	switch action {
	case "inc":
		err = h.Cart.Increment(barcode)
	case "dec":
		err = h.Cart.Decrement(barcode)
	default:
		middleware.Flash(w, "Invalid action: "+action)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("failed to update quantity", "barcode", barcode, "action", action, "error", err)
		middleware.Flash(w, "Error updating cart. Please try again.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes a line from the cart entirely.
func (h *RegisterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")
	if err := h.Cart.Delete(barcode); err != nil {
		h.Log.Error("failed to delete cart line", "barcode", barcode, "error", err)
		middleware.Flash(w, "Error removing item from cart.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ProductImage serves a product picture or a generated placeholder.
func (h *RegisterHandler) ProductImage(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")
	products := catalog.Load(h.ProductFile, h.Log)
	name := "Product"
	if p, ok := products[barcode]; ok {
		name = p.Name
	}
	body, contentType := h.Images.Get(name, barcode)
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		h.Log.Warn("failed to write product image", "barcode", barcode, "error", err)
	}
}

// totalOf sums price*qty over cart lines.
func totalOf(lines []models.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Price * l.Qty
	}
	return total
}
