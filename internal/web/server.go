package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	adminapp "github.com/dwikikusuma/storefront/internal/admin/app"
	browseapp "github.com/dwikikusuma/storefront/internal/browse/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 12 << 20

// Handler serves the storefront screens and their actions for the single
// session owned by this process.
type Handler struct {
	catalog *catalogapp.Service
	cart    *cartapp.Service
	view    *browseapp.View
	editor  *adminapp.Editor
	log     *zap.Logger
}

type Deps struct {
	Catalog *catalogapp.Service
	Cart    *cartapp.Service
	View    *browseapp.View
	Editor  *adminapp.Editor
	Log     *zap.Logger
}

func NewHandler(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{catalog: d.Catalog, cart: d.Cart, view: d.View, editor: d.Editor, log: log}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.health)

	r.Get("/", h.home)
	r.Get("/cart", h.cartScreen)
	r.Get("/admin", h.adminScreen)

	r.Route("/api", func(r chi.Router) {
		r.Put("/filter", h.setFilter)
		r.Delete("/filter", h.resetFilter)
		r.Post("/promo/step", h.stepPromo)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/items", h.addToCart)
			r.Put("/items/{productID}", h.updateCartLine)
			r.Delete("/items/{productID}", h.removeFromCart)
			r.Delete("/", h.clearCart)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/categories", h.addCategory)
			r.Delete("/categories/{id}", h.deleteCategory)
			r.Post("/categories/{id}/restore", h.restoreCategory)
			r.Put("/products", h.upsertProduct)
			r.Get("/products/{id}/draft", h.productDraft)
			r.Delete("/products/{id}", h.deleteProduct)
			r.Post("/products/{id}/restore", h.restoreProduct)
			r.Get("/export", h.exportOverrides)
			r.Post("/import", h.importOverrides)
			r.Post("/images", h.uploadImage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
