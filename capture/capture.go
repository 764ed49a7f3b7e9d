package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a one-shot capture of the primary screen, used as an
// alternate subject source ("annotate a screenshot").
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}
