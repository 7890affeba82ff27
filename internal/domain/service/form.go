package service

import (
	"context"
	"errors"
	"time"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

type FormStorage interface {
	Get(ctx context.Context, userID int64) (qrstyle.FormState, error)
	Set(ctx context.Context, userID int64, state qrstyle.FormState, expiration time.Duration) error
	Clear(ctx context.Context, userID int64) error
}

type formPresetService interface {
	Get(ctx context.Context, ownerID int64, name string) (qrstyle.Preset, error)
}

// FormService manages the form state each user is editing.
type FormService struct {
	storage  FormStorage
	presets  formPresetService
	defaults qrstyle.FormState
	ttl      time.Duration
}

func NewFormService(storage FormStorage, presets formPresetService, defaults qrstyle.FormState, ttl time.Duration) *FormService {
	return &FormService{
		storage:  storage,
		presets:  presets,
		defaults: defaults.Clone(),
		ttl:      ttl,
	}
}

func (s *FormService) Defaults() qrstyle.FormState {
	return s.defaults.Clone()
}

// Get returns the user's session or the defaults when there is none.
func (s *FormService) Get(ctx context.Context, userID int64) (qrstyle.FormState, error) {
	state, err := s.storage.Get(ctx, userID)
	if errors.Is(err, errorz.ErrSessionNotFound) {
		return s.Defaults(), nil
	}
	return state, err
}

func (s *FormService) Reset(ctx context.Context, userID int64) (qrstyle.FormState, error) {
	if err := s.storage.Clear(ctx, userID); err != nil {
		return qrstyle.FormState{}, err
	}
	return s.Defaults(), nil
}

// ApplyPreset overlays a preset onto the user's current form.
func (s *FormService) ApplyPreset(ctx context.Context, userID int64, name string) (qrstyle.FormState, error) {
	preset, err := s.presets.Get(ctx, userID, name)
	if err != nil {
		return qrstyle.FormState{}, err
	}
	state, err := s.Get(ctx, userID)
	if err != nil {
		return qrstyle.FormState{}, err
	}

	state = preset.Apply(state)
	return state, s.storage.Set(ctx, userID, state, s.ttl)
}

// SetField edits one field; on a parse error the stored form is unchanged.
func (s *FormService) SetField(ctx context.Context, userID int64, path, value string) (qrstyle.FormState, error) {
	state, err := s.Get(ctx, userID)
	if err != nil {
		return qrstyle.FormState{}, err
	}
	if err = state.SetField(path, value); err != nil {
		return qrstyle.FormState{}, err
	}
	return state, s.storage.Set(ctx, userID, state, s.ttl)
}

// Replace stores a complete form after validating it.
func (s *FormService) Replace(ctx context.Context, userID int64, state qrstyle.FormState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	return s.storage.Set(ctx, userID, state, s.ttl)
}
