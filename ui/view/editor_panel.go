package view

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Ryder-MHumble/evolabeler-go/domain/annotation"
	uiimages "github.com/Ryder-MHumble/evolabeler-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// EditorPanel encapsulates the selected-box form: label, confidence and
// status fields plus a cropped thumbnail. Edits are pushed back through
// the Apply callback; the panel never touches the store directly.
type EditorPanel interface {
	Build(startRow, col int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ShowBox(b *annotation.Box, subject image.Image)
	SetEditable(enabled bool)
}

// EditorCallbacks are invoked on user actions in the panel.
type EditorCallbacks struct {
	OnApply      func(label string, confidence float64, status annotation.Status)
	OnDelete     func()
	OnConfirmAll func()
}

var statusValues = []string{annotation.StatusPending.String(), annotation.StatusConfirmed.String()}

type editorPanel struct {
	logger    *slog.Logger
	callbacks EditorCallbacks

	labelField *TextWidget
	confField  *TextWidget
	statusSel  *TComboboxWidget
	thumbLbl   *LabelWidget
	idLbl      *LabelWidget
	applyBtn   *ButtonWidget
	deleteBtn  *ButtonWidget
	prevThumb  *Img
	thumbW     int
	thumbH     int
}

// NewEditorPanel creates the view; Build places the widgets.
func NewEditorPanel(logger *slog.Logger, cb EditorCallbacks) EditorPanel {
	return &editorPanel{logger: logger, callbacks: cb, thumbW: 160, thumbH: 120}
}

func (v *editorPanel) Build(startRow, col int) (row int) {
	row = startRow
	makeRow := func(label string) *TextWidget {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(col), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(col+1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		row++
		return w
	}

	v.idLbl = Label(Txt("No box selected"), Anchor("w"))
	Grid(v.idLbl, Row(row), Column(col), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	v.labelField = makeRow("Label")
	v.confField = makeRow("Confidence")

	statusLbl := Label(Txt("Status"), Anchor("w"))
	Grid(statusLbl, Row(row), Column(col), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.statusSel = TCombobox(Values(statusValues), Width(14))
	Grid(v.statusSel, Row(row), Column(col+1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.statusSel.Current(0)
	row++

	blank := image.NewRGBA(image.Rect(0, 0, v.thumbW, v.thumbH))
	v.prevThumb = NewPhoto(Data(uiimages.EncodePNG(blank)))
	v.thumbLbl = Label(Image(v.prevThumb), Borderwidth(1), Relief("sunken"))
	Grid(v.thumbLbl, Row(row), Column(col), Columnspan(2), Padx("0.4m"), Pady("0.3m"))
	row++

	v.applyBtn = Button(Txt("Apply"), Command(func() { v.apply() }))
	Grid(v.applyBtn, Row(row), Column(col), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	v.deleteBtn = Button(Txt("Delete"), Command(func() {
		if v.callbacks.OnDelete != nil {
			v.callbacks.OnDelete()
		}
	}))
	Grid(v.deleteBtn, Row(row), Column(col+1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	confirmBtn := Button(Txt("Confirm All"), Command(func() {
		if v.callbacks.OnConfirmAll != nil {
			v.callbacks.OnConfirmAll()
		}
	}))
	Grid(confirmBtn, Row(row), Column(col), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	v.SetEditable(false)
	return row
}

// ShowBox fills the form from a box and refreshes the thumbnail crop.
// A nil box clears and disables the panel.
func (v *editorPanel) ShowBox(b *annotation.Box, subject image.Image) {
	if v == nil || v.labelField == nil {
		return
	}
	if b == nil {
		v.idLbl.Configure(Txt("No box selected"))
		v.setText(v.labelField, "")
		v.setText(v.confField, "")
		v.setThumb(nil)
		v.SetEditable(false)
		return
	}
	short := b.ID
	if len(short) > 8 {
		short = short[:8]
	}
	v.idLbl.Configure(Txt("Box " + short))
	v.setText(v.labelField, b.Label)
	v.setText(v.confField, fmt.Sprintf("%.2f", b.Confidence))
	if b.Status == annotation.StatusConfirmed {
		v.statusSel.Current(1)
	} else {
		v.statusSel.Current(0)
	}
	if subject != nil {
		if crop, _, err := uiimages.CropBox(subject, *b); err == nil {
			v.setThumb(uiimages.ScaleToFit(crop, v.thumbW, v.thumbH))
		} else if v.logger != nil {
			v.logger.Warn("thumbnail crop failed", "id", b.ID, "error", err)
		}
	}
	v.SetEditable(true)
}

func (v *editorPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range []*TextWidget{v.labelField, v.confField} {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.statusSel != nil {
		v.statusSel.Configure(State(state))
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
	if v.deleteBtn != nil {
		v.deleteBtn.Configure(State(state))
	}
}

func (v *editorPanel) apply() {
	if v.callbacks.OnApply == nil {
		return
	}
	label := strings.TrimSpace(v.text(v.labelField))
	conf, ok := parseFloatField(v.text(v.confField))
	if !ok {
		if v.logger != nil {
			v.logger.Warn("confidence parse failed", "value", v.text(v.confField))
		}
		return
	}
	status := annotation.StatusPending
	if idxStr := v.statusSel.Current(nil); idxStr != "" {
		if idx, err := strconv.Atoi(idxStr); err == nil && idx >= 0 && idx < len(statusValues) {
			status, _ = annotation.ParseStatus(statusValues[idx])
		}
	}
	v.callbacks.OnApply(label, conf, status)
}

func (v *editorPanel) setThumb(img image.Image) {
	if v.thumbLbl == nil {
		return
	}
	if img == nil {
		img = image.NewRGBA(image.Rect(0, 0, v.thumbW, v.thumbH))
	}
	if v.prevThumb != nil {
		v.prevThumb.Delete()
	}
	v.prevThumb = NewPhoto(Data(uiimages.EncodePNG(img)))
	v.thumbLbl.Configure(Image(v.prevThumb))
}

func (v *editorPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.TrimSpace(strings.Join(parts, ""))
}

func (v *editorPanel) setText(w *TextWidget, s string) {
	if w == nil {
		return
	}
	w.Delete("1.0", END)
	w.Insert("1.0", s)
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
