package application

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

// ProductEditor is the data behind the edit product page.
type ProductEditor struct {
	Product    model.Product
	Categories []model.Category
}

// AdminService implements the admin catalog mutations. Every mutation is
// validated first; a model.FieldErrors result means no request was sent.
type AdminService struct {
	products   driven.ProductAPI
	categories driven.CategoryAPI
	compressor driven.ImageCompressor
	logger     *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	products driven.ProductAPI,
	categories driven.CategoryAPI,
	compressor driven.ImageCompressor,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		products:   products,
		categories: categories,
		compressor: compressor,
		logger:     logger,
	}
}

// Categories lists categories for forms and the category manager.
func (s *AdminService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.categories.ListCategories(ctx)
}

// ProductEditor loads a product and the category options concurrently.
func (s *AdminService) ProductEditor(ctx context.Context, id string) (ProductEditor, error) {
	var editor ProductEditor

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		editor.Product, err = s.products.GetProduct(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		editor.Categories, err = s.categories.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return ProductEditor{}, err
	}

	return editor, nil
}

// CreateProduct validates the form, compresses the image and creates the product.
func (s *AdminService) CreateProduct(ctx context.Context, form model.ProductForm, image *model.ImageUpload) (model.Product, error) {
	form.ExistingImageURL = ""
	form, image, err := s.prepare(form, image)
	if err != nil {
		return model.Product{}, err
	}

	product, err := s.products.CreateProduct(ctx, form, image)
	if err != nil {
		return model.Product{}, err
	}
	s.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// UpdateProduct validates the form and replaces the product. A nil image
// keeps the product's current image.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, form model.ProductForm, image *model.ImageUpload) (model.Product, error) {
	form, image, err := s.prepare(form, image)
	if err != nil {
		return model.Product{}, err
	}

	product, err := s.products.UpdateProduct(ctx, id, form, image)
	if err != nil {
		return model.Product{}, err
	}
	s.logger.Info("product updated", "product_id", id)
	return product, nil
}

// DeleteProduct removes a product.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// CreateCategory validates and creates a category.
func (s *AdminService) CreateCategory(ctx context.Context, input model.CategoryInput) (model.Category, error) {
	input = trimCategory(input)
	if errs := ValidateCategory(input); errs.HasErrors() {
		return model.Category{}, errs
	}

	category, err := s.categories.CreateCategory(ctx, input)
	if err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// UpdateCategory validates and updates a category.
func (s *AdminService) UpdateCategory(ctx context.Context, id int64, input model.CategoryInput) (model.Category, error) {
	input = trimCategory(input)
	if errs := ValidateCategory(input); errs.HasErrors() {
		return model.Category{}, errs
	}

	category, err := s.categories.UpdateCategory(ctx, id, input)
	if err != nil {
		return model.Category{}, err
	}
	s.logger.Info("category updated", "category_id", id)
	return category, nil
}

// DeleteCategory removes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// prepare validates the form and compresses the image. Errors are model.FieldErrors.
func (s *AdminService) prepare(form model.ProductForm, image *model.ImageUpload) (model.ProductForm, *model.ImageUpload, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)

	if errs := ValidateProduct(form, image != nil); errs.HasErrors() {
		return form, nil, errs
	}
	if image == nil {
		return form, nil, nil
	}

	compressed, err := s.compressor.Compress(*image)
	if err != nil {
		s.logger.Warn("compress product image", "filename", image.Filename, "error", err)
		return form, nil, model.FieldErrors{"image": ImageProcessingMessage}
	}
	return form, &compressed, nil
}

func trimCategory(input model.CategoryInput) model.CategoryInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	return input
}
