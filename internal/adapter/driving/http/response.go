package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// envelope mirrors the backend's {success, data, error} response shape.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON wraps v in a success envelope and writes it with the given status
// code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	writeEnvelope(w, status, envelope{Success: true, Data: v})
}

// writeError writes a failure envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Error: message})
}

func writeEnvelope(w http.ResponseWriter, status int, body envelope) {
	data, err := json.Marshal(body)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// SessionResponse is the JSON representation of the admin session.
type SessionResponse struct {
	Ready         bool   `json:"ready"`
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
}

// CategoryResponse is the JSON representation of a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductResponse is the JSON representation of a product.
type ProductResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	Stock        int     `json:"stock"`
	InStock      bool    `json:"in_stock"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Featured     bool    `json:"featured"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// ProductListResponse is the JSON body of the product list endpoint.
type ProductListResponse struct {
	Products   []ProductResponse  `json:"products"`
	Categories []CategoryResponse `json:"categories"`
}

// ProductDetailResponse is a product with others from its category.
type ProductDetailResponse struct {
	Product ProductResponse   `json:"product"`
	Similar []ProductResponse `json:"similar"`
}

func toSessionResponse(state application.SessionState) SessionResponse {
	return SessionResponse{
		Ready:         state.Ready,
		Authenticated: state.Authenticated,
		UserID:        state.Principal.ID,
		Username:      state.Principal.Username,
	}
}

func toCategoryResponses(categories []model.Category) []CategoryResponse {
	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		})
	}
	return resp
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Stock:        p.Stock,
		InStock:      p.InStock(),
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Featured:     p.Featured,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

// toProductResponses never returns nil so the JSON is [] rather than null.
func toProductResponses(products []model.Product) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return resp
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
