package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleBestSellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.BestSellers(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) handleAllBestSellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.AllBestSellers(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Collection(r.Context(), chi.URLParam(r, "label"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "no query provided"})
		return
	}

	products, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// handleProduct resolves a product page. Views by authenticated shoppers feed
// the recommendation engine, best effort.
func (h *Handler) handleProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if runtime := runtimeFrom(r.Context()); runtime != nil {
		if user, authed := runtime.Session.User(); authed {
			h.catalog.TrackView(r.Context(), productID, user.Email)
		}
	}

	writeJSON(w, http.StatusOK, product)
}
