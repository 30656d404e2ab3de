package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// productJSON is the backend's wire shape for a product.
type productJSON struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Price               number     `json:"price"`
	ImageURL            string     `json:"imageUrl"`
	Stock               number     `json:"stock"`
	CategoryID          int64      `json:"categoryId"`
	CategoryName        string     `json:"categoryName"`
	CategoryDescription string     `json:"categoryDescription"`
	Featured            model.Flag `json:"featured"`
	CreatedAt           string     `json:"createdAt"`
	UpdatedAt           string     `json:"updatedAt"`
}

// categoryJSON is the backend's wire shape for a category.
type categoryJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// number decodes from a JSON number or a numeric string; DECIMAL columns
// arrive as strings.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*n = number(f)
	return nil
}

// mapProduct converts the wire product to the domain model.
func mapProduct(p productJSON) model.Product {
	return model.Product{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Price:               float64(p.Price),
		ImageURL:            p.ImageURL,
		Stock:               int(p.Stock),
		CategoryID:          p.CategoryID,
		CategoryName:        p.CategoryName,
		CategoryDescription: p.CategoryDescription,
		Featured:            bool(p.Featured),
		CreatedAt:           parseTimestamp(p.CreatedAt),
		UpdatedAt:           parseTimestamp(p.UpdatedAt),
	}
}

func mapProducts(in []productJSON) []model.Product {
	out := make([]model.Product, 0, len(in))
	for _, p := range in {
		out = append(out, mapProduct(p))
	}
	return out
}

// mapCategory converts the wire category to the domain model.
func mapCategory(c categoryJSON) model.Category {
	return model.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   parseTimestamp(c.CreatedAt),
		UpdatedAt:   parseTimestamp(c.UpdatedAt),
	}
}

func mapCategories(in []categoryJSON) []model.Category {
	out := make([]model.Category, 0, len(in))
	for _, c := range in {
		out = append(out, mapCategory(c))
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp returns the zero time for empty or unrecognized values;
// timestamps are informational only.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
