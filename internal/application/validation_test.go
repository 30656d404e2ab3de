package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.ProductForm)
		hasImage bool
		want     model.FieldErrors
	}{
		{name: "valid with new image", mutate: func(*model.ProductForm) {}, hasImage: true, want: model.FieldErrors{}},
		{
			name:   "valid with existing image",
			mutate: func(f *model.ProductForm) { f.ExistingImageURL = "/uploads/1.jpg" },
			want:   model.FieldErrors{},
		},
		{
			name:     "blank name",
			mutate:   func(f *model.ProductForm) { f.Name = "   " },
			hasImage: true,
			want:     model.FieldErrors{"name": "Product name is required"},
		},
		{
			name:     "blank description",
			mutate:   func(f *model.ProductForm) { f.Description = "" },
			hasImage: true,
			want:     model.FieldErrors{"description": "Product description is required"},
		},
		{
			name:   "missing image",
			mutate: func(*model.ProductForm) {},
			want:   model.FieldErrors{"image": "Product image is required"},
		},
		{
			name:     "missing category",
			mutate:   func(f *model.ProductForm) { f.CategoryID = 0 },
			hasImage: true,
			want:     model.FieldErrors{"categoryId": "Product category is required"},
		},
		{
			name:     "negative price",
			mutate:   func(f *model.ProductForm) { f.Price = -1 },
			hasImage: true,
			want:     model.FieldErrors{"price": "Product price must be greater than 0"},
		},
		{
			name:     "negative stock",
			mutate:   func(f *model.ProductForm) { f.Stock = -1 },
			hasImage: true,
			want:     model.FieldErrors{"stock": "Product stock cannot be negative"},
		},
		{
			name:     "zero stock is allowed",
			mutate:   func(f *model.ProductForm) { f.Stock = 0 },
			hasImage: true,
			want:     model.FieldErrors{},
		},
		{
			name: "everything wrong",
			mutate: func(f *model.ProductForm) {
				*f = model.ProductForm{Stock: -3}
			},
			want: model.FieldErrors{
				"name":        "Product name is required",
				"description": "Product description is required",
				"image":       "Product image is required",
				"categoryId":  "Product category is required",
				"price":       "Product price must be greater than 0",
				"stock":       "Product stock cannot be negative",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			assert.Equal(t, tt.want, application.ValidateProduct(form, tt.hasImage))
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.False(t, application.ValidateCategory(model.CategoryInput{Name: "Pashmina"}).HasErrors())
	assert.Equal(t,
		model.FieldErrors{"name": "Category name is required"},
		application.ValidateCategory(model.CategoryInput{Name: " "}),
	)
}
