package codec

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
)

// ErrNoAnnotations reports an export request with zero boxes. It is a
// user-visible warning condition, not a failure: nothing is written.
var ErrNoAnnotations = errors.New("no annotations to export")

// BlobSink is the host-provided "save blob as file" capability. The codec
// layer never touches the filesystem directly.
type BlobSink interface {
	Save(name string, data []byte) error
}

// DirSink writes blobs into a directory, creating it on first use.
type DirSink struct {
	Dir string
}

func (s DirSink) Save(name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Exporter serializes annotation lists through a BlobSink.
type Exporter struct {
	logger *slog.Logger
	vocab  Vocabulary
	sink   BlobSink
}

func NewExporter(logger *slog.Logger, vocab Vocabulary, sink BlobSink) *Exporter {
	return &Exporter{logger: logger, vocab: vocab, sink: sink}
}

// ExportYOLO writes `<imageID>_annotations.txt` plus the companion
// `classes.txt` and returns the written names. Zero boxes returns
// ErrNoAnnotations without touching the sink.
func (e *Exporter) ExportYOLO(imageID string, boxes []annotation.Box) ([]string, error) {
	if len(boxes) == 0 {
		return nil, ErrNoAnnotations
	}
	labels := imageID + "_annotations.txt"
	if err := e.sink.Save(labels, EncodeYOLO(boxes, e.vocab)); err != nil {
		return nil, err
	}
	if err := e.sink.Save("classes.txt", e.vocab.ClassesFile()); err != nil {
		return nil, err
	}
	if e.logger != nil {
		e.logger.Info("yolo export written", "image", imageID, "boxes", len(boxes))
	}
	return []string{labels, "classes.txt"}, nil
}

// ExportJSON writes `<imageID>_annotations.json` and returns the written
// names. Zero boxes returns ErrNoAnnotations without touching the sink.
func (e *Exporter) ExportJSON(imageID string, width, height int, boxes []annotation.Box) ([]string, error) {
	if len(boxes) == 0 {
		return nil, ErrNoAnnotations
	}
	data, err := EncodeJSON(imageID, width, height, boxes)
	if err != nil {
		return nil, err
	}
	name := imageID + "_annotations.json"
	if err := e.sink.Save(name, data); err != nil {
		return nil, err
	}
	if e.logger != nil {
		e.logger.Info("json export written", "image", imageID, "boxes", len(boxes))
	}
	return []string{name}, nil
}
