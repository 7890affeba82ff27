package editor

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/yaml.v3"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

const (
	presetsPerRow = 2

	// callback data is capped at 64 bytes, "\fpreset|" takes 8 of them
	maxPresetData   = 56
	presetDataName  = "n:"
	presetDataStore = "c:"
)

// PresetButton is the inline button template for presets. Data carries the
// name inline ("n:<name>") or a callback storage id ("c:<id>") for long names.
var PresetButton = tele.InlineButton{Unique: "preset"}

// inlinePresetData returns the inline payload for name, ok is false when it
// does not fit.
func inlinePresetData(name string) (string, bool) {
	data := presetDataName + name
	return data, len(data) <= maxPresetData
}

// parsePresetData splits a preset payload into the name or the stored id.
func parsePresetData(data string) (name, storedID string, ok bool) {
	if v, found := strings.CutPrefix(data, presetDataName); found {
		return v, "", v != ""
	}
	if v, found := strings.CutPrefix(data, presetDataStore); found {
		return "", v, v != ""
	}
	return "", "", false
}

// presetMarkup lays out one button per preset. data returns the callback
// payload for a preset name.
func presetMarkup(presets []qrstyle.Preset, data func(name string) (string, error)) (*tele.ReplyMarkup, error) {
	markup := &tele.ReplyMarkup{}
	var row []tele.InlineButton
	for _, p := range presets {
		payload, err := data(p.Name)
		if err != nil {
			return nil, err
		}
		btn := PresetButton
		btn.Text = p.Name
		btn.Data = payload
		row = append(row, btn)
		if len(row) == presetsPerRow {
			markup.InlineKeyboard = append(markup.InlineKeyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		markup.InlineKeyboard = append(markup.InlineKeyboard, row)
	}
	return markup, nil
}

// parseSetArgs splits "<field> <value>". ok is false when no value was given.
func parseSetArgs(payload string) (field, value string, ok bool) {
	field, value, ok = strings.Cut(strings.TrimSpace(payload), " ")
	value = strings.TrimSpace(value)
	return strings.ToLower(field), value, ok && value != ""
}

func isField(field string) bool {
	for _, f := range qrstyle.FieldPaths() {
		if f == field {
			return true
		}
	}
	return false
}

func paintSummary(p qrstyle.Paint) string {
	if p.Gradient == nil {
		return p.Color
	}
	colors := make([]string, 0, len(p.Gradient.ColorStops))
	for _, s := range p.Gradient.ColorStops {
		colors = append(colors, s.Color)
	}
	return fmt.Sprintf("%s gradient %s", p.Gradient.Type, strings.Join(colors, " → "))
}

// summaryView feeds the "summary" text of the layout.
type summaryView struct {
	Data          string
	Type          qrstyle.DrawType
	Width, Height int
	Shape         qrstyle.Shape
	Margin        int
	Version       string
	Mode          qrstyle.Mode
	Level         qrstyle.ErrorCorrectionLevel
	Dots          qrstyle.DotShape
	DotsPaint     string
	CornersSquare qrstyle.CornerShape
	CornersDot    qrstyle.CornerShape
	Background    string
}

func summary(s qrstyle.FormState) summaryView {
	return summaryView{
		Data:          s.Data,
		Type:          s.Type,
		Width:         s.Width,
		Height:        s.Height,
		Shape:         s.Shape,
		Margin:        s.Margin,
		Version:       typeNumber(s.QrOptions.TypeNumber),
		Mode:          s.QrOptions.Mode,
		Level:         s.QrOptions.ErrorCorrectionLevel,
		Dots:          s.DotsOptions.Type,
		DotsPaint:     paintSummary(s.DotsOptions.Paint()),
		CornersSquare: s.CornersSquareOptions.Type,
		CornersDot:    s.CornersDotOptions.Type,
		Background:    paintSummary(s.BackgroundOptions.Paint()),
	}
}

func typeNumber(n int) string {
	if n == 0 {
		return "auto"
	}
	return fmt.Sprint(n)
}

// decodeForm overlays a JSON or YAML document onto state.
func decodeForm(raw []byte, state *qrstyle.FormState) error {
	var overlay qrstyle.PartialFormState
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return err
	}
	*state = state.Apply(overlay)
	return nil
}
