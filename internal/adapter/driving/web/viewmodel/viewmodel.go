// Package viewmodel defines presentation-ready structs for the page templates.
// View models decouple template rendering from domain model types.
package viewmodel

import "html/template"

// LayoutViewModel holds the data shared by every page chrome.
type LayoutViewModel struct {
	Title         string
	CSRFToken     string
	Authenticated bool
	AdminName     string
	AdminArea     bool
	ActiveNav     string
	SearchQuery   string
}

// PageViewModel wraps page-specific data with the values every page body
// may need: the CSRF token for forms and one-off notices.
type PageViewModel struct {
	CSRFToken string
	Notice    string
	Error     string
	Data      any
}

// ProductCardViewModel holds presentation-ready data for a product card.
type ProductCardViewModel struct {
	ID           int64
	Name         string
	Description  string
	PriceLabel   string
	ImageURL     string
	CategoryName string
	Stock        int
	InStock      bool
	Featured     bool
	DetailPath   string
	OrderURL     string
	EditPath     string
	DeletePath   string
}

// ProductDetailViewModel holds presentation-ready data for the product page.
type ProductDetailViewModel struct {
	ProductCardViewModel

	DescriptionHTML template.HTML
	Similar         []ProductCardViewModel
}

// CategoryTabViewModel is one entry of the storefront category filter.
type CategoryTabViewModel struct {
	Label  string
	Href   string
	Active bool
}

// HomeViewModel holds the storefront landing page data.
type HomeViewModel struct {
	Tabs         []CategoryTabViewModel
	Featured     []ProductCardViewModel
	Products     []ProductCardViewModel
	EmptyMessage string
}

// SearchViewModel holds search results.
type SearchViewModel struct {
	Query    string
	Searched bool
	Results  []ProductCardViewModel
}

// LoginViewModel holds the login form state.
type LoginViewModel struct {
	Username string
}

// StatViewModel is one headline figure on the dashboard.
type StatViewModel struct {
	Label string
	Value int
}

// DashboardViewModel holds the admin dashboard data.
type DashboardViewModel struct {
	Stats    []StatViewModel
	Recent   []ProductCardViewModel
	LowStock []ProductCardViewModel
}

// CategoryOptionViewModel is a category choice in a select input.
type CategoryOptionViewModel struct {
	ID       int64
	Name     string
	Selected bool
}

// AdminProductsViewModel holds the admin product table.
type AdminProductsViewModel struct {
	Products    []ProductCardViewModel
	Categories  []CategoryOptionViewModel
	AllSelected bool
	Term        string
	Filtered    bool
}

// ProductFormViewModel holds the add/edit product form state. Numeric inputs
// are kept as submitted so a rejected form re-renders what the admin typed.
type ProductFormViewModel struct {
	Heading              string
	Action               string
	SubmitLabel          string
	Name                 string
	Description          string
	Price                string
	Stock                string
	Featured             bool
	ExistingImageURL     string
	ExistingImagePreview string
	ImageRequired        bool
	Categories           []CategoryOptionViewModel
	Errors               map[string]string
}

// CategoryRowViewModel is one row of the category manager.
type CategoryRowViewModel struct {
	ID          int64
	Name        string
	Description string
	UpdatePath  string
	DeletePath  string
}

// CategoriesViewModel holds the category manager page.
type CategoriesViewModel struct {
	Rows           []CategoryRowViewModel
	NewName        string
	NewDescription string
	Errors         map[string]string
}

// NotFoundViewModel holds the not-found page data.
type NotFoundViewModel struct {
	Path string
}
