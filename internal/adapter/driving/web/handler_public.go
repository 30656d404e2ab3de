package web

import (
	"net/http"

	vm "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/viewmodel"
)

// Home renders the storefront landing page, optionally filtered by ?category=<id>.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Home(r.Context(), r.URL.Query().Get("category"))

	opts := pageOpts{
		title:    "Home",
		template: "home",
		nav:      "home",
		data:     h.toHomeViewModel(page),
	}
	if err != nil {
		h.logger.Warn("load home page", "error", err)
		opts.errMsg = errorMessage(err)
	}
	h.render(w, r, opts)
}

// ProductDetail renders a single product with similar products.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.ProductDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Warn("load product", "id", r.PathValue("id"), "error", err)
		h.render(w, r, pageOpts{
			title:    "Product not found",
			template: "error",
			status:   http.StatusNotFound,
			errMsg:   errorMessage(err),
		})
		return
	}

	h.render(w, r, pageOpts{
		title:    detail.Product.Name,
		template: "product",
		data:     h.toProductDetailViewModel(detail),
	})
}

// Search renders search results for ?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := h.catalog.Search(r.Context(), query)

	data := vm.SearchViewModel{
		Query:    query,
		Searched: query != "" && err == nil,
		Results:  h.toProductCardViewModels(results),
	}
	opts := pageOpts{
		title:    "Search",
		template: "search",
		nav:      "search",
		query:    query,
		data:     data,
	}
	if err != nil {
		h.logger.Warn("search products", "query", query, "error", err)
		opts.errMsg = errorMessage(err)
	}
	h.render(w, r, opts)
}
