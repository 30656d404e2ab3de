package web

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// maxMemoryBytes is how much of a multipart form is held in memory before
// spilling to temporary files.
const maxMemoryBytes = 8 << 20

// productSubmission is a parsed product form plus the raw numeric inputs
// for re-rendering.
type productSubmission struct {
	form     model.ProductForm
	image    *model.ImageUpload
	rawPrice string
	rawStock string
	rawCat   string
}

// parseProductForm reads the add/edit product form. Unparseable numbers are
// turned into values the validator rejects so they surface as field errors.
func parseProductForm(r *http.Request) (productSubmission, error) {
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return productSubmission{}, fmt.Errorf("parse product form: %w", err)
	}

	sub := productSubmission{
		rawPrice: strings.TrimSpace(r.FormValue("price")),
		rawStock: strings.TrimSpace(r.FormValue("stock")),
		rawCat:   strings.TrimSpace(r.FormValue("categoryId")),
	}

	sub.form = model.ProductForm{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		Featured:         isChecked(r.FormValue("featured")),
		ExistingImageURL: strings.TrimSpace(r.FormValue("existingImageUrl")),
	}

	if price, err := strconv.ParseFloat(sub.rawPrice, 64); err == nil && !math.IsInf(price, 0) && !math.IsNaN(price) {
		sub.form.Price = price
	}
	if sub.rawStock == "" {
		sub.form.Stock = 0
	} else if stock, err := strconv.Atoi(sub.rawStock); err == nil {
		sub.form.Stock = stock
	} else {
		sub.form.Stock = -1
	}
	if cat, err := strconv.ParseInt(sub.rawCat, 10, 64); err == nil {
		sub.form.CategoryID = cat
	}

	image, err := readImage(r)
	if err != nil {
		return productSubmission{}, err
	}
	sub.image = image

	return sub, nil
}

// readImage returns the uploaded image, or nil when no file was chosen.
func readImage(r *http.Request) (*model.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read image upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &model.ImageUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}

// parseID parses a numeric path segment.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}
