package form

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
	"inspection-report/internal/dataurl"
)

const (
	photoMaxEdge     = 1600
	photoJPEGQuality = 85

	stampMaxWidth  = 110
	stampMaxHeight = 90
)

var ErrUnsupportedImage = errors.New("unsupported image")

func decodeImage(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedImage)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if decoded, webpErr := webp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
}

// encodePhoto shrinks raw so its long edge is at most photoMaxEdge and
// returns it as a JPEG data URL.
func encodePhoto(raw []byte) (string, error) {
	img, err := decodeImage(raw)
	if err != nil {
		return "", err
	}
	img = resize.Thumbnail(photoMaxEdge, photoMaxEdge, img, resize.Lanczos3)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: photoJPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}
	return dataurl.Encode("image/jpeg", out.Bytes()), nil
}

// encodeStamp fits raw inside the seal box, keeping transparency, and
// returns it as a PNG data URL.
func encodeStamp(raw []byte) (string, error) {
	img, err := decodeImage(raw)
	if err != nil {
		return "", err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > stampMaxWidth || h > stampMaxHeight {
		scale := min(float64(stampMaxWidth)/float64(w), float64(stampMaxHeight)/float64(h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return "", fmt.Errorf("failed to encode stamp: %w", err)
	}
	return dataurl.Encode("image/png", out.Bytes()), nil
}
