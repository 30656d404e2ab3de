package application

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

// AllCategories is the category filter value that selects every product.
const AllCategories = "all"

const (
	similarProductsLimit = 4
	dashboardListLimit   = 5
	lowStockThreshold    = 5
)

// HomePage is the data behind the storefront landing page.
type HomePage struct {
	Categories     []model.Category
	Featured       []model.Product
	Products       []model.Product
	ActiveCategory string
}

// ProductDetail is a product together with others from its category.
type ProductDetail struct {
	Product model.Product
	Similar []model.Product
}

// DashboardStats are the headline counts on the admin dashboard.
type DashboardStats struct {
	TotalProducts int
	OutOfStock    int
	Featured      int
	Categories    int
}

// Dashboard is the data behind the admin dashboard.
type Dashboard struct {
	Stats    DashboardStats
	Recent   []model.Product
	LowStock []model.Product
}

// ProductList is the admin product table with its category filter options.
type ProductList struct {
	Products   []model.Product
	Categories []model.Category
}

// CatalogService assembles read-only catalog views from the backend API.
type CatalogService struct {
	products   driven.ProductAPI
	categories driven.CategoryAPI
	logger     *slog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products driven.ProductAPI, categories driven.CategoryAPI, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// Home loads categories, featured products and the product grid, in that
// order. An empty category or AllCategories lists every product. On error the
// page holds whatever loaded before the failure.
func (s *CatalogService) Home(ctx context.Context, category string) (HomePage, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCategories
	}
	page := HomePage{ActiveCategory: category}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return page, err
	}
	page.Categories = categories

	featured, err := s.products.FeaturedProducts(ctx)
	if err != nil {
		return page, err
	}
	page.Featured = featured

	var products []model.Product
	if category == AllCategories {
		products, err = s.products.ListProducts(ctx)
	} else {
		products, err = s.products.ProductsByCategory(ctx, category)
	}
	if err != nil {
		return page, err
	}
	page.Products = products

	return page, nil
}

// ProductDetail loads one product and up to four others from the same
// category. Failing to load the similar products is not an error.
func (s *CatalogService) ProductDetail(ctx context.Context, id string) (ProductDetail, error) {
	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return ProductDetail{}, err
	}

	detail := ProductDetail{Product: product}

	siblings, err := s.products.ProductsByCategory(ctx, strconv.FormatInt(product.CategoryID, 10))
	if err != nil {
		s.logger.Warn("load similar products", "product_id", product.ID, "error", err)
		return detail, nil
	}
	detail.Similar = similarProducts(siblings, product.ID)

	return detail, nil
}

// Search runs a product search. A blank query returns no results without
// calling the backend.
func (s *CatalogService) Search(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.products.SearchProducts(ctx, query)
}

// Dashboard fetches products and categories concurrently and derives the
// admin dashboard figures.
func (s *CatalogService) Dashboard(ctx context.Context) (Dashboard, error) {
	products, categories, err := s.productsAndCategories(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	stats := DashboardStats{
		TotalProducts: len(products),
		Categories:    len(categories),
	}
	for _, p := range products {
		if !p.InStock() {
			stats.OutOfStock++
		}
		if p.Featured {
			stats.Featured++
		}
	}

	return Dashboard{
		Stats:    stats,
		Recent:   products[:min(dashboardListLimit, len(products))],
		LowStock: lowStock(products),
	}, nil
}

// ProductList loads the admin product table filtered by category id and a
// case-insensitive search over name and description.
func (s *CatalogService) ProductList(ctx context.Context, categoryID, term string) (ProductList, error) {
	products, categories, err := s.productsAndCategories(ctx)
	if err != nil {
		return ProductList{}, err
	}
	return ProductList{
		Products:   FilterProducts(products, categoryID, term),
		Categories: categories,
	}, nil
}

func (s *CatalogService) productsAndCategories(ctx context.Context) ([]model.Product, []model.Category, error) {
	var (
		products   []model.Product
		categories []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return products, categories, nil
}

// FilterProducts keeps products matching categoryID (empty or AllCategories
// matches everything) whose name or description contains term.
func FilterProducts(products []model.Product, categoryID, term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	allCategories := categoryID == "" || categoryID == AllCategories

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !allCategories && strconv.FormatInt(p.CategoryID, 10) != categoryID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func similarProducts(siblings []model.Product, excludeID int64) []model.Product {
	out := make([]model.Product, 0, similarProductsLimit)
	for _, p := range siblings {
		if p.ID == excludeID {
			continue
		}
		out = append(out, p)
		if len(out) == similarProductsLimit {
			break
		}
	}
	return out
}

// lowStock returns in-stock products with at most lowStockThreshold units,
// lowest stock first.
func lowStock(products []model.Product) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.Stock > 0 && p.Stock <= lowStockThreshold {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Product) int {
		return cmp.Compare(a.Stock, b.Stock)
	})
	return out[:min(dashboardListLimit, len(out))]
}
