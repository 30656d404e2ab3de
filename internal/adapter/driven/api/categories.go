package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := fetch[[]categoryJSON](ctx, c, Request{
		Method: http.MethodGet,
		Path:   "/categories",
	}, "Failed to fetch categories")
	if err != nil {
		return nil, err
	}
	return mapCategories(categories), nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, input model.CategoryInput) (model.Category, error) {
	cat, err := fetch[categoryJSON](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/categories",
		JSON:   input,
	}, "Failed to create category")
	if err != nil {
		return model.Category{}, err
	}
	return mapCategory(cat), nil
}

// UpdateCategory replaces a category's name and description.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input model.CategoryInput) (model.Category, error) {
	cat, err := fetch[categoryJSON](ctx, c, Request{
		Method: http.MethodPut,
		Path:   "/categories/" + strconv.FormatInt(id, 10),
		JSON:   input,
	}, "Failed to update category")
	if err != nil {
		return model.Category{}, err
	}
	return mapCategory(cat), nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return exec(ctx, c, Request{
		Method: http.MethodDelete,
		Path:   "/categories/" + strconv.FormatInt(id, 10),
	})
}
