package web

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	vm "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// assetResolver turns backend image paths into absolute URLs.
type assetResolver struct {
	base string
}

// URL prefixes relative paths with the asset base. Absolute URLs pass through.
func (a assetResolver) URL(path string) string {
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "/"):
		return strings.TrimSuffix(a.base, "/") + path
	default:
		return strings.TrimSuffix(a.base, "/") + "/" + path
	}
}

// formatPrice renders an amount in rupiah with dot thousands separators,
// e.g. 150000 -> "Rp 150.000". Fractions are kept with a comma.
func formatPrice(price float64) string {
	whole := math.Trunc(price)
	frac := price - whole

	digits := strconv.FormatInt(int64(math.Abs(whole)), 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if price < 0 {
		sign = "-"
	}
	out := "Rp " + sign + b.String()
	if cents := math.Round(math.Abs(frac) * 100); cents > 0 {
		out += fmt.Sprintf(",%02d", int(cents))
	}
	return out
}

// toProductCardViewModel converts a domain Product to a ProductCardViewModel.
func (h *Handler) toProductCardViewModel(p model.Product) vm.ProductCardViewModel {
	id := strconv.FormatInt(p.ID, 10)
	return vm.ProductCardViewModel{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceLabel:   formatPrice(p.Price),
		ImageURL:     h.assets.URL(p.ImageURL),
		CategoryName: p.CategoryName,
		Stock:        p.Stock,
		InStock:      p.InStock(),
		Featured:     p.Featured,
		DetailPath:   "/product/" + id,
		OrderURL:     application.OrderLink(h.phone, application.CardOrderMessage(p)),
		EditPath:     "/admin/products/edit/" + id,
		DeletePath:   "/admin/products/delete/" + id,
	}
}

func (h *Handler) toProductCardViewModels(products []model.Product) []vm.ProductCardViewModel {
	vms := make([]vm.ProductCardViewModel, 0, len(products))
	for _, p := range products {
		vms = append(vms, h.toProductCardViewModel(p))
	}
	return vms
}

// toProductDetailViewModel builds the product page. The detail page uses its
// own order message.
func (h *Handler) toProductDetailViewModel(d application.ProductDetail) vm.ProductDetailViewModel {
	card := h.toProductCardViewModel(d.Product)
	card.OrderURL = application.OrderLink(h.phone, application.DetailOrderMessage(d.Product))

	return vm.ProductDetailViewModel{
		ProductCardViewModel: card,
		DescriptionHTML:      template.HTML(RenderDescription(d.Product.Description)), //nolint:gosec // sanitized by bluemonday
		Similar:              h.toProductCardViewModels(d.Similar),
	}
}

// toHomeViewModel converts the landing page data.
func (h *Handler) toHomeViewModel(page application.HomePage) vm.HomeViewModel {
	tabs := make([]vm.CategoryTabViewModel, 0, len(page.Categories)+1)
	tabs = append(tabs, vm.CategoryTabViewModel{
		Label:  "All",
		Href:   "/#products",
		Active: page.ActiveCategory == application.AllCategories,
	})

	activeName := page.ActiveCategory
	for _, c := range page.Categories {
		id := strconv.FormatInt(c.ID, 10)
		active := id == page.ActiveCategory
		if active {
			activeName = c.Name
		}
		tabs = append(tabs, vm.CategoryTabViewModel{
			Label:  c.Name,
			Href:   "/?category=" + id + "#products",
			Active: active,
		})
	}

	empty := "No products available."
	if page.ActiveCategory != application.AllCategories {
		empty = fmt.Sprintf("No products found in %q category.", activeName)
	}

	return vm.HomeViewModel{
		Tabs:         tabs,
		Featured:     h.toProductCardViewModels(page.Featured),
		Products:     h.toProductCardViewModels(page.Products),
		EmptyMessage: empty,
	}
}

func (h *Handler) toDashboardViewModel(d application.Dashboard) vm.DashboardViewModel {
	return vm.DashboardViewModel{
		Stats: []vm.StatViewModel{
			{Label: "Total Products", Value: d.Stats.TotalProducts},
			{Label: "Out of Stock", Value: d.Stats.OutOfStock},
			{Label: "Featured", Value: d.Stats.Featured},
			{Label: "Categories", Value: d.Stats.Categories},
		},
		Recent:   h.toProductCardViewModels(d.Recent),
		LowStock: h.toProductCardViewModels(d.LowStock),
	}
}

func toCategoryOptions(categories []model.Category, selected string) []vm.CategoryOptionViewModel {
	opts := make([]vm.CategoryOptionViewModel, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, vm.CategoryOptionViewModel{
			ID:       c.ID,
			Name:     c.Name,
			Selected: strconv.FormatInt(c.ID, 10) == selected,
		})
	}
	return opts
}

func toCategoryRows(categories []model.Category) []vm.CategoryRowViewModel {
	rows := make([]vm.CategoryRowViewModel, 0, len(categories))
	for _, c := range categories {
		id := strconv.FormatInt(c.ID, 10)
		rows = append(rows, vm.CategoryRowViewModel{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			UpdatePath:  "/admin/categories/" + id,
			DeletePath:  "/admin/categories/" + id + "/delete",
		})
	}
	return rows
}

// newProductFormViewModel pre-fills the form from a stored product.
func (h *Handler) newProductFormViewModel(form model.ProductForm, categories []model.Category) vm.ProductFormViewModel {
	category := ""
	if form.CategoryID > 0 {
		category = strconv.FormatInt(form.CategoryID, 10)
	}
	price, stock := "", ""
	if form.Price != 0 {
		price = strconv.FormatFloat(form.Price, 'f', -1, 64)
	}
	if form.Stock != 0 || form.Name != "" {
		stock = strconv.Itoa(form.Stock)
	}

	return vm.ProductFormViewModel{
		Name:                 form.Name,
		Description:          form.Description,
		Price:                price,
		Stock:                stock,
		Featured:             form.Featured,
		ExistingImageURL:     form.ExistingImageURL,
		ExistingImagePreview: h.assets.URL(form.ExistingImageURL),
		ImageRequired:        form.ExistingImageURL == "",
		Categories:           toCategoryOptions(categories, category),
		Errors:               map[string]string{},
	}
}
