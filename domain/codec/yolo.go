package codec

import (
	"bytes"
	"fmt"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
)

// EncodeYOLO renders boxes as YOLO label lines in list order:
// `<classIndex> <centerX> <centerY> <width> <height>`, all geometry
// normalized, six decimal places. Unknown labels encode with the
// vocabulary's fallback index.
func EncodeYOLO(boxes []annotation.Box, vocab Vocabulary) []byte {
	var buf bytes.Buffer
	for _, b := range boxes {
		idx, _ := vocab.ClassIndex(b.Label)
		cx := b.X + b.W/2
		cy := b.Y + b.H/2
		fmt.Fprintf(&buf, "%d %.6f %.6f %.6f %.6f\n", idx, cx, cy, b.W, b.H)
	}
	return buf.Bytes()
}
