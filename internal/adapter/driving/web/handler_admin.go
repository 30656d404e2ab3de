package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	vm "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/isavra-storefront/internal/application"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// Notices shown after a redirect, keyed by the ?notice= value.
var notices = map[string]string{
	"product-created":  "Product created successfully",
	"product-updated":  "Product updated successfully",
	"product-deleted":  "Product deleted successfully",
	"category-created": "Category created successfully",
	"category-updated": "Category updated successfully",
	"category-deleted": "Category deleted successfully",
}

func noticeFrom(r *http.Request) string {
	return notices[r.URL.Query().Get("notice")]
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

// Dashboard renders the admin dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.catalog.Dashboard(r.Context())
	if err != nil {
		h.renderError(w, r, err, true)
		return
	}

	h.render(w, r, pageOpts{
		title:     "Dashboard",
		template:  "dashboard",
		nav:       "dashboard",
		adminArea: true,
		notice:    noticeFrom(r),
		data:      h.toDashboardViewModel(dash),
	})
}

// Products renders the admin product table, filtered by ?category= and ?q=.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	term := r.URL.Query().Get("q")

	list, err := h.catalog.ProductList(r.Context(), category, term)
	if err != nil {
		h.renderError(w, r, err, true)
		return
	}

	h.render(w, r, pageOpts{
		title:     "Products",
		template:  "admin_products",
		nav:       "products",
		adminArea: true,
		notice:    noticeFrom(r),
		data: vm.AdminProductsViewModel{
			Products:    h.toProductCardViewModels(list.Products),
			Categories:  toCategoryOptions(list.Categories, category),
			AllSelected: category == "" || category == application.AllCategories,
			Term:        term,
			Filtered:    strings.TrimSpace(term) != "" || (category != "" && category != application.AllCategories),
		},
	})
}

// AddProductPage renders an empty product form.
func (h *Handler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.admin.Categories(r.Context())
	if err != nil {
		h.renderError(w, r, err, true)
		return
	}

	form := h.newProductFormViewModel(model.ProductForm{}, categories)
	h.renderProductForm(w, r, http.StatusOK, addProductForm(form), "")
}

// AddProduct handles the add product form submission.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	sub, err := parseProductForm(r)
	if err != nil {
		h.logger.Warn("parse product form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	_, err = h.admin.CreateProduct(r.Context(), sub.form, sub.image)
	if err == nil {
		redirectWithNotice(w, r, "/admin/products", "product-created")
		return
	}

	h.rejectProductForm(w, r, sub, err, addProductForm)
}

// EditProductPage renders the product form pre-filled from the backend.
func (h *Handler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	editor, err := h.admin.ProductEditor(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err, true)
		return
	}

	form := h.newProductFormViewModel(model.FormFromProduct(editor.Product), editor.Categories)
	h.renderProductForm(w, r, http.StatusOK, editProductForm(id)(form), "")
}

// EditProduct handles the edit product form submission.
func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sub, err := parseProductForm(r)
	if err != nil {
		h.logger.Warn("parse product form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	_, err = h.admin.UpdateProduct(r.Context(), id, sub.form, sub.image)
	if err == nil {
		redirectWithNotice(w, r, "/admin/products", "product-updated")
		return
	}

	h.rejectProductForm(w, r, sub, err, editProductForm(id))
}

// DeleteProduct removes a product and returns to the product table.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		h.renderError(w, r, err, true)
		return
	}
	redirectWithNotice(w, r, "/admin/products", "product-deleted")
}

// Categories renders the category manager.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.admin.Categories(r.Context())
	if err != nil {
		h.renderError(w, r, err, true)
		return
	}
	h.renderCategories(w, r, http.StatusOK, vm.CategoriesViewModel{
		Rows:   toCategoryRows(categories),
		Errors: map[string]string{},
	}, noticeFrom(r), "")
}

// CreateCategory handles the new category form.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	input := model.CategoryInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	_, err := h.admin.CreateCategory(r.Context(), input)
	if err == nil {
		redirectWithNotice(w, r, "/admin/categories", "category-created")
		return
	}

	h.rejectCategory(w, r, input, err)
}

// UpdateCategory handles an inline category edit.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	input := model.CategoryInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	if _, err := h.admin.UpdateCategory(r.Context(), id, input); err != nil {
		h.rejectCategory(w, r, model.CategoryInput{}, err)
		return
	}
	redirectWithNotice(w, r, "/admin/categories", "category-updated")
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	if err := h.admin.DeleteCategory(r.Context(), id); err != nil {
		h.rejectCategory(w, r, model.CategoryInput{}, err)
		return
	}
	redirectWithNotice(w, r, "/admin/categories", "category-deleted")
}

func addProductForm(form vm.ProductFormViewModel) vm.ProductFormViewModel {
	form.Heading = "Add New Product"
	form.Action = "/admin/products/add"
	form.SubmitLabel = "Create Product"
	return form
}

func editProductForm(id string) func(vm.ProductFormViewModel) vm.ProductFormViewModel {
	return func(form vm.ProductFormViewModel) vm.ProductFormViewModel {
		form.Heading = "Edit Product"
		form.Action = "/admin/products/edit/" + url.PathEscape(id)
		form.SubmitLabel = "Update Product"
		return form
	}
}

// rejectProductForm re-renders a submitted product form with field errors
// (422) or the backend's message (502).
func (h *Handler) rejectProductForm(
	w http.ResponseWriter,
	r *http.Request,
	sub productSubmission,
	err error,
	decorate func(vm.ProductFormViewModel) vm.ProductFormViewModel,
) {
	categories, catErr := h.admin.Categories(r.Context())
	if catErr != nil {
		h.logger.Warn("load categories for product form", "error", catErr)
	}

	form := h.newProductFormViewModel(sub.form, categories)
	form.Price, form.Stock = sub.rawPrice, sub.rawStock
	form.Categories = toCategoryOptions(categories, sub.rawCat)
	form = decorate(form)

	var fieldErrs model.FieldErrors
	if errors.As(err, &fieldErrs) {
		form.Errors = fieldErrs
		h.renderProductForm(w, r, http.StatusUnprocessableEntity, form, "")
		return
	}

	h.logger.Warn("save product", "error", err)
	h.renderProductForm(w, r, http.StatusBadGateway, form, errorMessage(err))
}

func (h *Handler) renderProductForm(w http.ResponseWriter, r *http.Request, status int, form vm.ProductFormViewModel, errMsg string) {
	nav := "products"
	if form.Action == "/admin/products/add" {
		nav = "add-product"
	}
	h.render(w, r, pageOpts{
		title:     form.Heading,
		template:  "product_form",
		nav:       nav,
		adminArea: true,
		status:    status,
		errMsg:    errMsg,
		data:      form,
	})
}

// rejectCategory re-renders the category manager after a failed mutation.
// input refills the new-category form when the create form was submitted.
func (h *Handler) rejectCategory(w http.ResponseWriter, r *http.Request, input model.CategoryInput, err error) {
	categories, listErr := h.admin.Categories(r.Context())
	if listErr != nil {
		h.logger.Warn("load categories", "error", listErr)
	}

	data := vm.CategoriesViewModel{
		Rows:           toCategoryRows(categories),
		NewName:        input.Name,
		NewDescription: input.Description,
		Errors:         map[string]string{},
	}

	var fieldErrs model.FieldErrors
	if errors.As(err, &fieldErrs) {
		data.Errors = fieldErrs
		h.renderCategories(w, r, http.StatusUnprocessableEntity, data, "", "")
		return
	}

	h.logger.Warn("save category", "error", err)
	h.renderCategories(w, r, http.StatusBadGateway, data, "", errorMessage(err))
}

func (h *Handler) renderCategories(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	data vm.CategoriesViewModel,
	notice, errMsg string,
) {
	h.render(w, r, pageOpts{
		title:     "Categories",
		template:  "categories",
		nav:       "categories",
		adminArea: true,
		status:    status,
		notice:    notice,
		errMsg:    errMsg,
		data:      data,
	})
}
