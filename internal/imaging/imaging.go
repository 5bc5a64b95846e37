// Package imaging normalizes captured JPEG payloads before they are encrypted.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

const (
	photoQuality = 90
	thumbQuality = 70

	// DefaultThumbnailEdge bounds the longest edge of generated thumbnails.
	DefaultThumbnailEdge = 200
)

// Normalize applies the capture orientation so the stored bytes are upright.
// When no rotation is needed the input is returned unchanged.
func Normalize(data []byte, orientationDegrees int) ([]byte, error) {
	degrees := ((orientationDegrees % 360) + 360) % 360
	if degrees == 0 {
		return data, nil
	}
	if degrees%90 != 0 {
		return nil, fmt.Errorf("imaging: unsupported orientation %d", orientationDegrees)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	return encodeJPEG(rotate(img, degrees), photoQuality)
}

// Thumbnail re-encodes the image with the longest edge bounded by maxEdge at
// reduced compression quality.
func Thumbnail(data []byte, maxEdge int) ([]byte, error) {
	if maxEdge <= 0 {
		maxEdge = DefaultThumbnailEdge
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}

	if longest > maxEdge {
		scale := float64(maxEdge) / float64(longest)
		tw := int(float64(w) * scale)
		th := int(float64(h) * scale)
		if tw < 1 {
			tw = 1
		}
		if th < 1 {
			th = 1
		}
		dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	return encodeJPEG(img, thumbQuality)
}

// Dimensions reports the pixel width and height of a JPEG payload.
func Dimensions(data []byte) (int, int, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("imaging: decode config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// rotate remaps pixels clockwise by the given multiple of 90 degrees.
func rotate(src image.Image, degrees int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.NRGBA
	switch degrees {
	case 90:
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	case 180:
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(w-1-x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	case 270:
		dst = image.NewNRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	default:
		return src
	}
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}
