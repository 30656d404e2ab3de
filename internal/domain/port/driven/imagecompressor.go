package driven

import "github.com/ericfisherdev/isavra-storefront/internal/domain/model"

// ImageCompressor shrinks an uploaded image before it is sent to the backend.
type ImageCompressor interface {
	Compress(upload model.ImageUpload) (model.ImageUpload, error)
}
