package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Product is a catalog item as served by the backend.
type Product struct {
	ID                  int64
	Name                string
	Description         string
	Price               float64
	ImageURL            string
	Stock               int
	CategoryID          int64
	CategoryName        string
	CategoryDescription string
	Featured            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Flag is a boolean that also decodes from 0/1 and "0"/"1", which is how the
// backend's database layer serializes tinyint columns.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, berr := strconv.ParseBool(s)
		if berr != nil {
			return fmt.Errorf("invalid flag value %s", data)
		}
		*f = Flag(v)
		return nil
	}
	*f = n != 0
	return nil
}

// ProductForm is the admin form state for creating or editing a product.
// Field names in the tags match the multipart field names the backend expects.
type ProductForm struct {
	Name        string  `form:"name" validate:"required"`
	Description string  `form:"description" validate:"required"`
	Price       float64 `form:"price" validate:"gt=0"`
	Stock       int     `form:"stock" validate:"gte=0"`
	CategoryID  int64   `form:"categoryId" validate:"gt=0"`
	Featured    bool    `form:"featured"`

	// ExistingImageURL is set when editing a product that already has an image.
	ExistingImageURL string `form:"-"`
}

// FormFromProduct pre-fills a ProductForm for editing.
func FormFromProduct(p Product) ProductForm {
	return ProductForm{
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Stock:            p.Stock,
		CategoryID:       p.CategoryID,
		Featured:         p.Featured,
		ExistingImageURL: p.ImageURL,
	}
}

// ImageUpload is an image file ready to be sent with a product form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// HasErrors reports whether any field failed validation.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// Error implements error so validation failures can travel through error returns.
func (fe FieldErrors) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(fe))
}
