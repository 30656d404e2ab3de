// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

const maxLoginBodyBytes = 1 << 16

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	session *application.SessionService
	catalog *application.CatalogService
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	session *application.SessionService,
	catalog *application.CatalogService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		session: session,
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/session", h.GetSession)
	mux.HandleFunc("POST /api/v1/session", h.Login)
	mux.HandleFunc("DELETE /api/v1/session", h.Logout)
	mux.HandleFunc("GET /api/v1/products", h.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.GetProduct)
}

// GetSession returns the current admin session state.
func (h *Handler) GetSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toSessionResponse(h.session.State()))
}

// Login authenticates with a JSON {username, password} body. Only
// application/json is accepted so plain cross-site form posts cannot log in.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return
	}

	var creds model.Credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.Login(r.Context(), creds); err != nil {
		writeError(w, http.StatusUnauthorized, errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(h.session.State()))
}

// Logout ends the admin session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	writeJSON(w, http.StatusOK, toSessionResponse(h.session.State()))
}

// ListProducts returns the catalog, optionally filtered by ?category= id and
// a ?q= term matched against name and description.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.catalog.ProductList(r.Context(), q.Get("category"), q.Get("q"))
	if err != nil {
		h.logger.Error("failed to list products", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusBadGateway, errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, ProductListResponse{
		Products:   toProductResponses(list.Products),
		Categories: toCategoryResponses(list.Categories),
	})
}

// GetProduct returns one product and up to four others from its category.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	detail, err := h.catalog.ProductDetail(r.Context(), id)
	if err != nil {
		h.logger.Warn("failed to get product", "id", id, "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusNotFound, errorMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, ProductDetailResponse{
		Product: toProductResponse(detail.Product),
		Similar: toProductResponses(detail.Similar),
	})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// errorMessage returns the user-facing message of a backend failure.
func errorMessage(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return model.UnknownErrorMessage
}
