package driven

import (
	"context"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// AuthAPI exchanges admin credentials for a principal and bearer token.
type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (model.Principal, string, error)
}

// TokenAuthorizer controls the bearer token attached to outgoing API calls.
// Only the session service calls these.
type TokenAuthorizer interface {
	SetToken(token string)
	ClearToken()
}

// ProductAPI is the driven port for the backend's product endpoints.
// Errors returned by implementations are *model.APIError.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	FeaturedProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	CreateProduct(ctx context.Context, form model.ProductForm, image *model.ImageUpload) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, form model.ProductForm, image *model.ImageUpload) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CategoryAPI is the driven port for the backend's category endpoints.
// Errors returned by implementations are *model.APIError.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, input model.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, input model.CategoryInput) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
