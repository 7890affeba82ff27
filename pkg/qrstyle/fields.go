package qrstyle

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type fieldSetter func(s *FormState, value string) error

func setInt(dst *int) fieldSetter {
	return func(_ *FormState, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrOutOfRange, value)
		}
		*dst = n
		return nil
	}
}

// setSize parses a pixel value bounded by [min, MaxSize].
func setSize(dst *int, min int) fieldSetter {
	return func(st *FormState, value string) error {
		var n int
		if err := setInt(&n)(st, value); err != nil {
			return err
		}
		if err := checkSize(n, min); err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setFloat(dst *float64) fieldSetter {
	return func(_ *FormState, value string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %q is not a number", ErrOutOfRange, value)
		}
		*dst = f
		return nil
	}
}

func setBool(dst *bool) fieldSetter {
	return func(_ *FormState, value string) error {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "on", "yes", "1":
			*dst = true
		case "false", "off", "no", "0":
			*dst = false
		default:
			return fmt.Errorf("%w: %q is not a boolean", ErrUnknownValue, value)
		}
		return nil
	}
}

func setColor(dst *string) fieldSetter {
	return func(_ *FormState, value string) error {
		value = strings.TrimSpace(value)
		if _, err := ParseColor(value); err != nil {
			return err
		}
		*dst = value
		return nil
	}
}

func setEnum[T ~string](dst *T, parse func(string) (T, error)) fieldSetter {
	return func(_ *FormState, value string) error {
		v, err := parse(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// setStops takes "color offset, color offset, ..." and keeps the given order.
func setStops(dst *[]GradientStop) fieldSetter {
	return func(_ *FormState, value string) error {
		var stops []GradientStop
		for _, part := range strings.Split(value, ",") {
			fields := strings.Fields(part)
			if len(fields) != 2 {
				return fmt.Errorf("%w: expected \"<color> <offset>\", got %q", ErrGradientStops, strings.TrimSpace(part))
			}
			if _, err := ParseColor(fields[0]); err != nil {
				return err
			}
			offset, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || math.IsNaN(offset) || offset < 0 || offset > 1 {
				return fmt.Errorf("%w: offset %q not in [0, 1]", ErrOutOfRange, fields[1])
			}
			stops = append(stops, NewGradientStop(offset, fields[0]))
		}
		*dst = stops
		return nil
	}
}

func gradientFields(prefix string, g *GradientForm, fields map[string]fieldSetter) {
	fields[prefix+".enabled"] = setBool(&g.Enabled)
	fields[prefix+".type"] = setEnum(&g.Type, ParseGradientType)
	fields[prefix+".rotation"] = setFloat(&g.Rotation)
	fields[prefix+".stops"] = setStops(&g.ColorStops)
}

func (s *FormState) fields() map[string]fieldSetter {
	f := map[string]fieldSetter{
		"width":  setSize(&s.Width, 1),
		"height": setSize(&s.Height, 1),
		"size": func(st *FormState, value string) error {
			if err := setSize(&st.Width, 1)(st, value); err != nil {
				return err
			}
			st.Height = st.Width
			return nil
		},
		"type":   setEnum(&s.Type, ParseDrawType),
		"shape":  setEnum(&s.Shape, ParseShape),
		"margin": setSize(&s.Margin, 0),
		"data": func(st *FormState, value string) error {
			if value == "" {
				return ErrEmptyData
			}
			st.Data = value
			return nil
		},
		"image": func(st *FormState, value string) error {
			st.Image = strings.TrimSpace(value)
			return nil
		},

		"qr.type-number": setInt(&s.QrOptions.TypeNumber),
		"qr.mode":        setEnum(&s.QrOptions.Mode, ParseMode),
		"qr.ecl":         setEnum(&s.QrOptions.ErrorCorrectionLevel, ParseErrorCorrectionLevel),

		"image.hide-background-dots": setBool(&s.ImageOptions.HideBackgroundDots),
		"image.size":                 setFloat(&s.ImageOptions.ImageSize),
		"image.margin":               setSize(&s.ImageOptions.Margin, 0),
		"image.cross-origin":         setEnum(&s.ImageOptions.CrossOrigin, ParseCrossOrigin),
		"image.save-as-blob":         setBool(&s.ImageOptions.SaveAsBlob),

		"dots.type":       setEnum(&s.DotsOptions.Type, ParseDotShape),
		"dots.color":      setColor(&s.DotsOptions.Color),
		"dots.round-size": setBool(&s.DotsOptions.RoundSize),

		"background.color": setColor(&s.BackgroundOptions.Color),

		"corners-square.type":  setEnum(&s.CornersSquareOptions.Type, ParseCornerShape),
		"corners-square.color": setColor(&s.CornersSquareOptions.Color),

		"corners-dot.type":  setEnum(&s.CornersDotOptions.Type, ParseCornerShape),
		"corners-dot.color": setColor(&s.CornersDotOptions.Color),
	}
	gradientFields("dots.gradient", &s.DotsOptions.Gradient, f)
	gradientFields("background.gradient", &s.BackgroundOptions.Gradient, f)
	gradientFields("corners-square.gradient", &s.CornersSquareOptions.Gradient, f)
	gradientFields("corners-dot.gradient", &s.CornersDotOptions.Gradient, f)
	return f
}

// SetField edits a single field addressed by a dotted path such as
// "dots.color" or "corners-square.gradient.rotation". On error s is
// left unchanged.
func (s *FormState) SetField(path, value string) error {
	next := s.Clone()
	setter, ok := next.fields()[strings.ToLower(strings.TrimSpace(path))]
	if !ok {
		return &FieldError{Field: path, Err: ErrUnknownField}
	}
	if err := setter(&next, value); err != nil {
		return &FieldError{Field: path, Err: err}
	}
	*s = next
	return nil
}

// FieldPaths lists every path SetField accepts, sorted.
func FieldPaths() []string {
	var s FormState
	paths := make([]string, 0, 48)
	for path := range s.fields() {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
