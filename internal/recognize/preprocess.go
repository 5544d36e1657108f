package recognize

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// maxEdge is the longest edge kept after downscaling. Covers shot on a
// phone are far larger than recognition needs.
const maxEdge = 1920

// LoadImage reads and decodes an image file, applying any EXIF rotation
// so the raster is upright before recognition.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes in-memory image bytes with EXIF orientation applied.
func DecodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Prepare downscales and enhances an image for text recognition:
// bounded size, boosted contrast, light sharpening.
func Prepare(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() > maxEdge || b.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}
	img = imaging.AdjustContrast(img, 20)
	return imaging.Sharpen(img, 0.5)
}

// EncodeJPEG serializes an image to JPEG bytes for the providers.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// PrepareFile is the full preprocessing pipeline for an image on disk.
func PrepareFile(path string) ([]byte, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(Prepare(img))
}

// PrepareBytes is the full preprocessing pipeline for uploaded image bytes.
func PrepareBytes(data []byte) ([]byte, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(Prepare(img))
}
