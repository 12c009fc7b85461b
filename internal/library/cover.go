package library

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

// DefaultCoverSize bounds both sides of a cover thumbnail, in pixels.
const DefaultCoverSize = 100

// LoadCover decodes the image at path and scales it down to fit in a
// maxSize x maxSize box, keeping the aspect ratio. Images already small
// enough are returned unchanged.
func LoadCover(path string, maxSize uint) (image.Image, error) {
	if maxSize == 0 {
		maxSize = DefaultCoverSize
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode cover %s: %w", path, err)
	}

	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3), nil
}
