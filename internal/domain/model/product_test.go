package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: `true`, want: true},
		{in: `false`, want: false},
		{in: `1`, want: true},
		{in: `0`, want: false},
		{in: `"1"`, want: true},
		{in: `"0"`, want: false},
		{in: `"true"`, want: true},
		{in: `null`, want: false},
		{in: `"yes"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f model.Flag
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(f))
		})
	}
}

func TestProduct_InStock(t *testing.T) {
	assert.True(t, model.Product{Stock: 1}.InStock())
	assert.False(t, model.Product{Stock: 0}.InStock())
	assert.False(t, model.Product{Stock: -2}.InStock())
}

func TestFormFromProduct(t *testing.T) {
	p := model.Product{
		ID: 5, Name: "Pashmina", Description: "Soft", Price: 150000,
		Stock: 3, CategoryID: 2, Featured: true, ImageURL: "/uploads/5.jpg",
	}

	form := model.FormFromProduct(p)

	assert.Equal(t, model.ProductForm{
		Name: "Pashmina", Description: "Soft", Price: 150000, Stock: 3,
		CategoryID: 2, Featured: true, ExistingImageURL: "/uploads/5.jpg",
	}, form)
}

func TestFieldErrors(t *testing.T) {
	var empty model.FieldErrors
	assert.False(t, empty.HasErrors())

	fe := model.FieldErrors{"name": "Product name is required"}
	assert.True(t, fe.HasErrors())
	assert.Contains(t, fe.Error(), "1 field")
}
