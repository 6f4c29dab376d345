package httptransport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/NavyaPrasad1998/Tea-Shop-Platform/internal/cart"
)

type cartViewResponse struct {
	Open  bool        `json:"open"`
	Count int         `json:"count"`
	Items []cart.Item `json:"items"`
}

type cartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type cartUpdateRequest struct {
	Delta int `json:"delta"`
}

// handleCartView renders the cart: lines are re-joined against the catalog on
// every view so prices always reflect the current catalog state.
func (h *Handler) handleCartView(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	items, err := h.enricher.Enrich(r.Context(), runtime.Cart.Lines())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, cartViewResponse{
		Open:  runtime.CartOpen(),
		Count: runtime.Cart.Count(),
		Items: items,
	})
}

func (h *Handler) handleCartClose(w http.ResponseWriter, r *http.Request) {
	runtimeFrom(r.Context()).CloseCart()
	w.WriteHeader(http.StatusNoContent)
}

// handleCartAdd puts a product in the cart. The local mutation always
// applies; persistence is best effort.
func (h *Handler) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	var req cartAddRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "product_id is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "quantity must be positive"})
		return
	}

	h.sync.Add(r.Context(), runtime.Session.Shopper(), runtime.Cart, req.ProductID, req.Quantity)
	writeJSON(w, http.StatusOK, map[string]int{"count": runtime.Cart.Count()})
}

func (h *Handler) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	var req cartUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "delta must be non-zero"})
		return
	}

	h.sync.Update(r.Context(), runtime.Session.Shopper(), runtime.Cart, productID, req.Delta)
	writeJSON(w, http.StatusOK, map[string]int{"count": runtime.Cart.Count()})
}

func (h *Handler) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	runtime := runtimeFrom(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.sync.Remove(r.Context(), runtime.Session.Shopper(), runtime.Cart, productID)
	writeJSON(w, http.StatusOK, map[string]int{"count": runtime.Cart.Count()})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid product id"})
		return 0, false
	}
	return productID, true
}
