package application

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// Field error messages shown next to the admin form inputs.
const (
	msgNameRequired         = "Product name is required"
	msgDescriptionRequired  = "Product description is required"
	msgImageRequired        = "Product image is required"
	msgCategoryRequired     = "Product category is required"
	msgPriceInvalid         = "Product price must be greater than 0"
	msgStockNegative        = "Product stock cannot be negative"
	msgCategoryNameRequired = "Category name is required"

	// ImageProcessingMessage is reported on the image field when compression fails.
	ImageProcessingMessage = "Error processing image. Please try again."
)

var fieldMessages = map[string]string{
	"name":        msgNameRequired,
	"description": msgDescriptionRequired,
	"categoryId":  msgCategoryRequired,
	"price":       msgPriceInvalid,
	"stock":       msgStockNegative,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form/json names so errors line up with inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// ValidateProduct checks a product form. hasImage reports whether a new image
// was uploaded; an existing image on the form also satisfies the image rule.
// Text fields are judged after trimming whitespace.
func ValidateProduct(form model.ProductForm, hasImage bool) model.FieldErrors {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)

	errs := model.FieldErrors{}
	collect(validate.Struct(form), errs, fieldMessages)

	if !hasImage && form.ExistingImageURL == "" {
		errs["image"] = msgImageRequired
	}
	return errs
}

// ValidateCategory checks a category payload.
func ValidateCategory(input model.CategoryInput) model.FieldErrors {
	input.Name = strings.TrimSpace(input.Name)

	errs := model.FieldErrors{}
	collect(validate.Struct(input), errs, map[string]string{"name": msgCategoryNameRequired})
	return errs
}

func collect(err error, into model.FieldErrors, messages map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := into[field]; seen {
			continue
		}
		if msg, ok := messages[field]; ok {
			into[field] = msg
		} else {
			into[field] = field + " is invalid"
		}
	}
}
