package imageio

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Register additional decoders with image.Decode.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Result is the outcome of one asynchronous image load. Width/Height are
// the natural (decoded) pixel dimensions.
type Result struct {
	Path   string
	Image  image.Image
	Width  int
	Height int
	Err    error
}

// Loader decodes subject images off the UI thread. Each Load is a one-shot
// fire-and-forget operation; completions are drained on the UI tick via
// Poll, so all downstream mutation stays on the UI thread. No coordinate
// conversion may run until the Result for a subject has been consumed.
type Loader struct {
	logger  *slog.Logger
	results chan Result
}

// NewLoader returns a loader with a small completion buffer.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger, results: make(chan Result, 4)}
}

// Load decodes the image at path in a goroutine and queues the Result.
func (l *Loader) Load(path string) {
	if l == nil {
		return
	}
	go func() {
		img, err := decode(path)
		res := Result{Path: path, Err: err}
		if err == nil {
			b := img.Bounds()
			res.Image = img
			res.Width = b.Dx()
			res.Height = b.Dy()
		} else if l.logger != nil {
			l.logger.Error("image load failed", "path", path, "error", err)
		}
		l.results <- res
	}()
}

// Poll performs a non-blocking receive of the next completed load.
func (l *Loader) Poll() (Result, bool) {
	if l == nil {
		return Result{}, false
	}
	select {
	case res := <-l.results:
		return res, true
	default:
		return Result{}, false
	}
}

// decode opens an image with EXIF orientation applied. WebP files that the
// registered decoder rejects get a second chance through the dedicated
// codec.
func decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, fmt.Errorf("open %s: %w", path, ferr)
		}
		defer f.Close()
		if wimg, werr := webp.Decode(f); werr == nil {
			return wimg, nil
		}
	}
	return nil, fmt.Errorf("decode %s: %w", path, err)
}
