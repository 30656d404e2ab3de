package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	return c.listProducts(ctx, Request{Method: http.MethodGet, Path: "/products"}, "Failed to fetch products")
}

// FeaturedProducts fetches products flagged as featured.
func (c *Client) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return c.listProducts(ctx, Request{Method: http.MethodGet, Path: "/products/featured"}, "Failed to fetch featured products")
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, err := fetch[productJSON](ctx, c, Request{
		Method: http.MethodGet,
		Path:   "/products/" + url.PathEscape(id),
	}, "Failed to fetch product")
	if err != nil {
		return model.Product{}, err
	}
	return mapProduct(p), nil
}

// ProductsByCategory fetches the products of one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return c.listProducts(ctx, Request{
		Method: http.MethodGet,
		Path:   "/products/category/" + url.PathEscape(category),
	}, "Failed to fetch products by category")
}

// SearchProducts runs a free-text search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return c.listProducts(ctx, Request{
		Method: http.MethodGet,
		Path:   "/products/search",
		Query:  url.Values{"q": {query}},
	}, "Failed to search products")
}

// CreateProduct uploads a new product as multipart form data.
func (c *Client) CreateProduct(ctx context.Context, form model.ProductForm, image *model.ImageUpload) (model.Product, error) {
	p, err := fetch[productJSON](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/products",
		Form:   productMultipart(form, image),
	}, "Failed to create product")
	if err != nil {
		return model.Product{}, err
	}
	return mapProduct(p), nil
}

// UpdateProduct replaces a product. image may be nil to keep the current one.
func (c *Client) UpdateProduct(ctx context.Context, id string, form model.ProductForm, image *model.ImageUpload) (model.Product, error) {
	p, err := fetch[productJSON](ctx, c, Request{
		Method: http.MethodPut,
		Path:   "/products/" + url.PathEscape(id),
		Form:   productMultipart(form, image),
	}, "Failed to update product")
	if err != nil {
		return model.Product{}, err
	}
	return mapProduct(p), nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return exec(ctx, c, Request{
		Method: http.MethodDelete,
		Path:   "/products/" + url.PathEscape(id),
	})
}

func (c *Client) listProducts(ctx context.Context, req Request, fallback string) ([]model.Product, error) {
	products, err := fetch[[]productJSON](ctx, c, req, fallback)
	if err != nil {
		return nil, err
	}
	return mapProducts(products), nil
}

// productMultipart encodes the form with the field names the backend reads.
// featured travels as "1"/"0".
func productMultipart(form model.ProductForm, image *model.ImageUpload) *Multipart {
	featured := "0"
	if form.Featured {
		featured = "1"
	}

	m := NewMultipart().
		AddField("name", form.Name).
		AddField("description", form.Description).
		AddField("price", strconv.FormatFloat(form.Price, 'f', -1, 64)).
		AddField("stock", strconv.Itoa(form.Stock)).
		AddField("categoryId", strconv.FormatInt(form.CategoryID, 10)).
		AddField("featured", featured)

	if image != nil {
		m.AddFile("image", image.Filename, image.ContentType, image.Data)
	}
	return m
}
