package codec

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
)

// Document is the JSON interchange schema for one annotated image.
type Document struct {
	ImageID     string       `json:"image_id"`
	ImageWidth  int          `json:"image_width"`
	ImageHeight int          `json:"image_height"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is one box in the JSON schema, carrying both normalized and
// rounded pixel-space geometry.
type Annotation struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Status     string    `json:"status"`
	BBox       Rect      `json:"bbox"`
	BBoxPixels PixelRect `json:"bbox_pixels"`
}

// Rect is a normalized rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PixelRect is a rectangle in natural image pixels, rounded.
type PixelRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BuildDocument assembles the JSON document for an image. Pixel geometry is
// normalized geometry times the natural dimensions, rounded to the nearest
// pixel.
func BuildDocument(imageID string, width, height int, boxes []annotation.Box) Document {
	doc := Document{
		ImageID:     imageID,
		ImageWidth:  width,
		ImageHeight: height,
		Annotations: make([]Annotation, 0, len(boxes)),
	}
	for _, b := range boxes {
		doc.Annotations = append(doc.Annotations, Annotation{
			ID:         b.ID,
			Label:      b.Label,
			Confidence: b.Confidence,
			Status:     b.Status.String(),
			BBox:       Rect{X: b.X, Y: b.Y, Width: b.W, Height: b.H},
			BBoxPixels: PixelRect{
				X:      int(math.Round(b.X * float64(width))),
				Y:      int(math.Round(b.Y * float64(height))),
				Width:  int(math.Round(b.W * float64(width))),
				Height: int(math.Round(b.H * float64(height))),
			},
		})
	}
	return doc
}

// EncodeJSON marshals the document, indented for hand inspection.
func EncodeJSON(imageID string, width, height int, boxes []annotation.Box) ([]byte, error) {
	data, err := json.MarshalIndent(BuildDocument(imageID, width, height, boxes), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode annotations: %w", err)
	}
	return data, nil
}

// DecodeJSON parses a document back into boxes, for dataset import and the
// conversion CLI. Unknown status strings default to pending; geometry is
// taken from the normalized bbox (pixel geometry is derived output).
func DecodeJSON(data []byte) (Document, []annotation.Box, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, nil, fmt.Errorf("decode annotations: %w", err)
	}
	boxes := make([]annotation.Box, 0, len(doc.Annotations))
	for _, a := range doc.Annotations {
		status, _ := annotation.ParseStatus(a.Status)
		boxes = append(boxes, annotation.Box{
			ID:         a.ID,
			X:          a.BBox.X,
			Y:          a.BBox.Y,
			W:          a.BBox.Width,
			H:          a.BBox.Height,
			Confidence: a.Confidence,
			Label:      a.Label,
			Status:     status,
		})
	}
	return doc, boxes, nil
}
