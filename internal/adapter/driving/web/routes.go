package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
// Every /admin route passes through RequireAdmin, and every POST is
// CSRF-checked.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	page := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireCSRF(fn))
	}
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, requireCSRF(h.RequireAdmin(fn)))
	}

	// Storefront.
	page("GET /{$}", h.Home)
	page("GET /product/{id}", h.ProductDetail)
	page("GET /search", h.Search)

	// Session.
	page("GET /login", h.LoginPage)
	page("POST /login", h.Login)
	page("POST /logout", h.Logout)

	// Admin panel.
	admin("GET /admin", h.Dashboard)
	admin("GET /admin/products", h.Products)
	admin("GET /admin/products/add", h.AddProductPage)
	admin("POST /admin/products/add", h.AddProduct)
	admin("GET /admin/products/edit/{id}", h.EditProductPage)
	admin("POST /admin/products/edit/{id}", h.EditProduct)
	admin("POST /admin/products/delete/{id}", h.DeleteProduct)
	admin("GET /admin/categories", h.Categories)
	admin("POST /admin/categories", h.CreateCategory)
	admin("POST /admin/categories/{id}", h.UpdateCategory)
	admin("POST /admin/categories/{id}/delete", h.DeleteCategory)

	// Anything else.
	mux.HandleFunc("/", h.NotFound)
}
