package errorz

import "errors"

var (
	ErrInvalidCallbackData = errors.New("invalid callback data")
	ErrInvalidState        = errors.New("invalid state")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthorized        = errors.New("unknown api key")

	ErrSessionNotFound   = errors.New("editor session not found")
	ErrPresetNotFound    = errors.New("preset not found")
	ErrPresetExists      = errors.New("preset with this name already exists")
	ErrInvalidPresetName = errors.New("invalid preset name")
	ErrPresetLimit       = errors.New("too many saved presets")
)
