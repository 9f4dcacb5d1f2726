// Package imaging decodes screenshot assets into images.
package imaging

import (
	"bytes"
	"fmt"
	"image"

	// Screenshot formats published by sources.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Decode turns screenshot bytes into an image. The returned format is the
// registered name of the decoder that matched ("png", "jpeg", "gif").
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("screenshot payload is empty")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode screenshot: %w", err)
	}
	return img, format, nil
}
