package web

import (
	"net/http"

	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/isavra-storefront/internal/application"
)

// RequireAdmin protects admin pages. While the session is still loading it
// answers 503 with a self-refreshing placeholder and never redirects; an
// anonymous visitor is sent to /login.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch application.Guard(h.session.State()) {
		case application.GuardLoading:
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			if err := templates.Loading().Render(r.Context(), w); err != nil {
				h.logger.Error("render loading page", "error", err)
			}
		case application.GuardRedirect:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
