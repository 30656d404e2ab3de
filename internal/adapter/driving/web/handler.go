// Package web implements the HTML GUI driving adapter: the public storefront
// and the admin panel.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// Handler is the web GUI driving adapter.
type Handler struct {
	session *application.SessionService
	catalog *application.CatalogService
	admin   *application.AdminService
	assets  assetResolver
	phone   string
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies. assetBaseURL
// prefixes the relative image paths returned by the backend; orderPhone is
// the WhatsApp number orders are sent to.
func NewHandler(
	session *application.SessionService,
	catalog *application.CatalogService,
	admin *application.AdminService,
	assetBaseURL string,
	orderPhone string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		session: session,
		catalog: catalog,
		admin:   admin,
		assets:  assetResolver{base: assetBaseURL},
		phone:   orderPhone,
		logger:  logger,
	}
}

// pageOpts describes one rendered page.
type pageOpts struct {
	title     string
	template  string
	nav       string
	adminArea bool
	status    int
	query     string
	notice    string
	errMsg    string
	data      any
}

// render writes the page inside the site layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, p pageOpts) {
	token := csrfToken(w, r)
	state := h.session.State()

	layout := vm.LayoutViewModel{
		Title:         p.title,
		CSRFToken:     token,
		Authenticated: state.Authenticated,
		AdminName:     state.Principal.DisplayName(),
		AdminArea:     p.adminArea,
		ActiveNav:     p.nav,
		SearchQuery:   p.query,
	}
	body := templates.Page(p.template, vm.PageViewModel{
		CSRFToken: token,
		Notice:    p.notice,
		Error:     p.errMsg,
		Data:      p.data,
	})

	status := p.status
	if status == 0 {
		status = http.StatusOK
	}
	h.writeComponent(w, r, status, templates.Layout(layout, body))
}

func (h *Handler) writeComponent(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

// renderError shows a backend failure without leaving the site chrome.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error, adminArea bool) {
	h.logger.Warn("page load failed", "path", r.URL.Path, "error", err)
	h.render(w, r, pageOpts{
		title:     "Error",
		template:  "error",
		adminArea: adminArea,
		status:    http.StatusBadGateway,
		errMsg:    errorMessage(err),
	})
}

// NotFound renders the not-found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageOpts{
		title:    "Not Found",
		template: "notfound",
		status:   http.StatusNotFound,
		data:     vm.NotFoundViewModel{Path: r.URL.Path},
	})
}

// errorMessage extracts the user-facing message from err.
func errorMessage(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
