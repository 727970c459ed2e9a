// Package imaging normalizes uploaded clothing photos: it checks the format,
// downscales oversized images, re-encodes them as JPEG, and renders a
// thumbnail for the wardrobe grid.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	dimaging "github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxDimension is the maximum width or height for stored images.
const MaxDimension = 1024

// ThumbDimension is the bounding box for thumbnails.
const ThumbDimension = 300

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// thumbQuality is lower; thumbnails are only shown small.
const thumbQuality = 70

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProcessResult contains the processed image data.
type ProcessResult struct {
	Data  []byte
	Thumb []byte
	MIME  string
}

// Process reads image data, validates the format by sniffing bytes,
// downscales if larger than MaxDimension, and re-encodes as JPEG.
// It also renders a thumbnail no larger than ThumbDimension.
func Process(r io.Reader) (*ProcessResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	// Sniff actual MIME type from bytes (not trusting client headers).
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG, PNG and WebP accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	full, err := encodeJPEG(downscale(img, MaxDimension), JPEGQuality)
	if err != nil {
		return nil, err
	}

	thumb, err := encodeJPEG(Thumbnail(img), thumbQuality)
	if err != nil {
		return nil, err
	}

	return &ProcessResult{
		Data:  full,
		Thumb: thumb,
		MIME:  "image/jpeg",
	}, nil
}

// Thumbnail fits img into a ThumbDimension square, keeping the aspect ratio.
// Images already within bounds are returned as-is.
func Thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= ThumbDimension && b.Dy() <= ThumbDimension {
		return img
	}
	return dimaging.Fit(img, ThumbDimension, ThumbDimension, dimaging.Lanczos)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
