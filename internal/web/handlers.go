package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminapp "github.com/dwikikusuma/storefront/internal/admin/app"
	"github.com/dwikikusuma/storefront/internal/admin/infra/imagefile"
	browseapp "github.com/dwikikusuma/storefront/internal/browse/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view.Home())
}

type cartView struct {
	Items         []cart.Item `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	SubtotalLabel string      `json:"subtotalLabel"`
	Count         int         `json:"count"`
}

func (h *Handler) cartScreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartState())
}

func (h *Handler) cartState() cartView {
	subtotal := h.cart.Subtotal()
	return cartView{
		Items:         h.cart.Items(),
		Subtotal:      subtotal,
		SubtotalLabel: browseapp.FormatPrice(subtotal),
		Count:         h.cart.Count(),
	}
}

type adminView struct {
	Categories []catalog.Category `json:"categories"`
	Products   []catalog.Product  `json:"products"`
	Overrides  catalog.Overrides  `json:"overrides"`
	Draft      adminapp.Draft     `json:"draft"`
}

func (h *Handler) adminScreen(w http.ResponseWriter, r *http.Request) {
	c := h.catalog.Catalog()
	writeJSON(w, http.StatusOK, adminView{
		Categories: c.Categories,
		Products:   c.Products,
		Overrides:  h.editor.Overrides(),
		Draft:      adminapp.NewDraft(""),
	})
}

type filterRequest struct {
	Search     *string `json:"search"`
	CategoryID *string `json:"categoryId"`
}

func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	f := h.view.Filter()
	if req.Search != nil {
		f.SetSearch(*req.Search)
	}
	if req.CategoryID != nil {
		f.SetCategoryID(*req.CategoryID)
	}
	writeJSON(w, http.StatusOK, f.Value())
}

func (h *Handler) resetFilter(w http.ResponseWriter, r *http.Request) {
	h.view.Filter().Reset()
	writeJSON(w, http.StatusOK, h.view.Filter().Value())
}

func (h *Handler) stepPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"index": h.view.StepPromo(req.Delta)})
}

type cartLineRequest struct {
	ProductID string   `json:"productId"`
	Qty       *float64 `json:"qty"`
	Delta     int      `json:"delta"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	qty := 1.0
	if req.Qty != nil {
		qty = *req.Qty
	}
	h.respondCart(w, r, h.cart.Add(writeCtx(r), req.ProductID, qty))
}

// updateCartLine sets the quantity, or steps it by one when delta is given.
func (h *Handler) updateCartLine(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "productID")

	var err error
	switch {
	case req.Delta > 0:
		err = h.cart.Increment(writeCtx(r), id)
	case req.Delta < 0:
		err = h.cart.Decrement(writeCtx(r), id)
	case req.Qty != nil:
		err = h.cart.SetQty(writeCtx(r), id, *req.Qty)
	default:
		err = fmt.Errorf("qty or delta required: %w", errBadRequest)
	}
	h.respondCart(w, r, err)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, r, h.cart.Remove(writeCtx(r), chi.URLParam(r, "productID")))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, r, h.cart.Clear(writeCtx(r)))
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, err error) {
	if err = h.degrade(r, err); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartState())
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, ok, err := h.editor.AddCategory(writeCtx(r), req.Name, req.ID)
	if err = h.degrade(r, err); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := map[string]any{"saved": ok}
	if ok {
		resp["category"] = c
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	h.respondOverrides(w, r, h.editor.DeleteCategory(writeCtx(r), chi.URLParam(r, "id")))
}

func (h *Handler) restoreCategory(w http.ResponseWriter, r *http.Request) {
	h.respondOverrides(w, r, h.editor.UndeleteCategory(writeCtx(r), chi.URLParam(r, "id")))
}

// upsertProduct saves the submitted form. An invalid form is reported as
// not saved and echoed back unchanged.
func (h *Handler) upsertProduct(w http.ResponseWriter, r *http.Request) {
	var d adminapp.Draft
	if err := decode(r, &d); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, ok, err := h.editor.UpsertProduct(writeCtx(r), d)
	if err = h.degrade(r, err); err != nil {
		h.writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"saved": false, "draft": d})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true, "product": p})
}

func (h *Handler) productDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.editor.EditProduct(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	h.respondOverrides(w, r, h.editor.DeleteProduct(writeCtx(r), chi.URLParam(r, "id")))
}

func (h *Handler) restoreProduct(w http.ResponseWriter, r *http.Request) {
	h.respondOverrides(w, r, h.editor.UndeleteProduct(writeCtx(r), chi.URLParam(r, "id")))
}

func (h *Handler) respondOverrides(w http.ResponseWriter, r *http.Request, err error) {
	if err = h.degrade(r, err); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.editor.Overrides())
}

func (h *Handler) exportOverrides(w http.ResponseWriter, r *http.Request) {
	text, err := h.editor.Export()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog-overrides.json"`)
	_, _ = io.WriteString(w, text)
}

func (h *Handler) importOverrides(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, fmt.Errorf("read body: %v: %w", err, errBadRequest))
		return
	}
	ok, err := h.editor.Import(writeCtx(r), string(body))
	if err = h.degrade(r, err); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": ok, "overrides": h.editor.Overrides()})
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %v", imagefile.ErrReadFailed, err))
		return
	}
	defer file.Close()

	url, err := imagefile.DataURL(file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"dataUrl": url})
}

// degrade swallows storage failures. The in-memory state already moved on,
// so the request succeeds and the write is retried by the next change.
func (h *Handler) degrade(r *http.Request, err error) error {
	if err == nil || errors.Is(err, cartapp.ErrInvalidInput) || errors.Is(err, errBadRequest) {
		return err
	}
	h.log.Warn("persist failed", zap.String("path", r.URL.Path), zap.Error(err))
	return nil
}

// writeCtx keeps a started change from being cut off between memory and
// storage when the client goes away.
func writeCtx(r *http.Request) context.Context { return context.WithoutCancel(r.Context()) }

func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode body: %v: %w", err, errBadRequest)
	}
	return nil
}
