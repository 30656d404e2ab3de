// Package imaging shrinks product photos before they are uploaded.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/port/driven"
)

const (
	// DefaultMaxDimension bounds the longest side of a compressed image in pixels.
	DefaultMaxDimension = 800
	// DefaultMaxBytes is the encoded size budget for a compressed image.
	DefaultMaxBytes = 1 << 20
	// DefaultMaxPixels bounds the decoded size of an upload. Decoding holds
	// four bytes per pixel in memory.
	DefaultMaxPixels = 40_000_000
)

// jpegQualities are tried in order until the encoded image fits the budget.
var jpegQualities = []int{90, 80, 70, 60, 50, 40, 30}

// ErrEmptyImage is returned when the upload carries no bytes.
var ErrEmptyImage = errors.New("image upload is empty")

// ErrImageTooLarge is returned when the upload declares more pixels than the
// compressor will decode.
var ErrImageTooLarge = errors.New("image dimensions too large")

var _ driven.ImageCompressor = (*Compressor)(nil)

// Compressor downsizes and re-encodes images.
type Compressor struct {
	maxDimension int
	maxBytes     int
	maxPixels    int
}

// NewCompressor returns a Compressor with the default bounds.
func NewCompressor() *Compressor {
	return NewCompressorWithLimits(DefaultMaxDimension, DefaultMaxBytes)
}

// NewCompressorWithLimits returns a Compressor with custom output bounds and
// the default decode limit.
func NewCompressorWithLimits(maxDimension, maxBytes int) *Compressor {
	return &Compressor{maxDimension: maxDimension, maxBytes: maxBytes, maxPixels: DefaultMaxPixels}
}

// Compress checks the declared dimensions, decodes upload, scales it so the longest side is at most the
// configured dimension, and re-encodes it within the byte budget. An image
// already within both bounds is returned unchanged.
func (c *Compressor) Compress(upload model.ImageUpload) (model.ImageUpload, error) {
	if len(upload.Data) == 0 {
		return model.ImageUpload{}, ErrEmptyImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(upload.Data))
	if err != nil {
		return model.ImageUpload{}, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > c.maxPixels/cfg.Height {
		return model.ImageUpload{}, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return model.ImageUpload{}, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	if longestSide(b) <= c.maxDimension && len(upload.Data) <= c.maxBytes {
		return upload, nil
	}

	img := c.downscale(src)

	if format == "png" {
		var buf bytes.Buffer
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return model.ImageUpload{}, fmt.Errorf("encode png: %w", err)
		}
		if buf.Len() <= c.maxBytes {
			return model.ImageUpload{
				Filename:    upload.Filename,
				ContentType: "image/png",
				Data:        buf.Bytes(),
			}, nil
		}
	}

	data, err := c.encodeJPEG(flatten(img))
	if err != nil {
		return model.ImageUpload{}, err
	}

	return model.ImageUpload{
		Filename:    withExtension(upload.Filename, ".jpg"),
		ContentType: "image/jpeg",
		Data:        data,
	}, nil
}

func (c *Compressor) downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := longestSide(b)
	if longest <= c.maxDimension {
		return src
	}

	scale := float64(c.maxDimension) / float64(longest)
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// encodeJPEG steps quality down until the output fits. If nothing fits, the
// smallest encoding is returned.
func (c *Compressor) encodeJPEG(img image.Image) ([]byte, error) {
	var last []byte
	for _, q := range jpegQualities {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		last = buf.Bytes()
		if len(last) <= c.maxBytes {
			break
		}
	}
	return last, nil
}

// flatten composites img onto white so transparent regions do not turn black
// when the alpha channel is dropped.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func longestSide(r image.Rectangle) int {
	return max(r.Dx(), r.Dy())
}

func withExtension(filename, ext string) string {
	if filename == "" {
		return "image" + ext
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + ext
}
