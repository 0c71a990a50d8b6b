package imagegen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
)

// minimalWebP is a 1x1 lossless WebP bitstream. The standard library has no
// WebP encoder, so the smallest valid file is embedded instead.
const minimalWebP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

// placeholderImage returns a minimal valid 1x1 image in the given container
// format. It backs the degenerate-response path: when the upstream omits
// image data the caller still gets one decodable file per requested image.
func placeholderImage(format string) ([]byte, error) {
	switch format {
	case "", "png":
		return encodePlaceholder(png.Encode)
	case "jpeg":
		return encodePlaceholder(func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, nil)
		})
	case "webp":
		return base64.StdEncoding.DecodeString(minimalWebP)
	default:
		return nil, fmt.Errorf("unsupported placeholder format %q", format)
	}
}

func encodePlaceholder(encode func(io.Writer, image.Image) error) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
