package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/internal/domain/entity"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

const maxPresetNameLength = 64

type PresetStorage interface {
	Create(ctx context.Context, preset *entity.Preset) (*entity.Preset, error)
	GetByName(ctx context.Context, ownerID int64, name string) (*entity.Preset, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]entity.Preset, error)
	Update(ctx context.Context, preset *entity.Preset) (*entity.Preset, error)
	Delete(ctx context.Context, ownerID int64, name string) error
	Count(ctx context.Context, ownerID int64) (int64, error)
}

// PresetService serves the built-in gallery plus presets saved by users.
// A nil storage leaves only the built-ins available.
type PresetService struct {
	storage PresetStorage
	limit   int64
}

// NewPresetService creates the service. limit caps the presets one owner
// may store, 0 disables the cap.
func NewPresetService(storage PresetStorage, limit int) *PresetService {
	return &PresetService{
		storage: storage,
		limit:   int64(limit),
	}
}
// List returns the built-in presets followed by the ones ownerID saved.
func (s *PresetService) List(ctx context.Context, ownerID int64) ([]qrstyle.Preset, error) {
	presets := qrstyle.BuiltinPresets()
	if s.storage == nil {
		return presets, nil
	}

	stored, err := s.storage.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		p, err := stored[i].ToPreset()
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

func (s *PresetService) Get(ctx context.Context, ownerID int64, name string) (qrstyle.Preset, error) {
	if p, err := qrstyle.LookupPreset(name); err == nil {
		return p, nil
	}
	if s.storage == nil {
		return qrstyle.Preset{}, fmt.Errorf("%w: %q", errorz.ErrPresetNotFound, name)
	}

	stored, err := s.storage.GetByName(ctx, ownerID, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, errorz.ErrPresetNotFound) {
			return qrstyle.Preset{}, fmt.Errorf("%w: %q", errorz.ErrPresetNotFound, name)
		}
		return qrstyle.Preset{}, err
	}
	return stored.ToPreset()
}

// checkWrite validates a save of state under name and returns the trimmed name.
func (s *PresetService) checkWrite(name string, state qrstyle.FormState) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxPresetNameLength {
		return "", errorz.ErrInvalidPresetName
	}
	if _, err := qrstyle.LookupPreset(name); err == nil {
		return "", errorz.ErrPresetExists
	}
	if s.storage == nil {
		return "", errorz.ErrForbidden
	}
	if err := state.Validate(); err != nil {
		return "", err
	}
	return name, nil
}

// Save stores the complete state as a new named preset of ownerID. Names
// are unique per owner regardless of case.
func (s *PresetService) Save(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error) {
	name, err := s.checkWrite(name, state)
	if err != nil {
		return qrstyle.Preset{}, err
	}

	_, err = s.storage.GetByName(ctx, ownerID, name)
	switch {
	case err == nil:
		return qrstyle.Preset{}, errorz.ErrPresetExists
	case !errors.Is(err, errorz.ErrPresetNotFound):
		return qrstyle.Preset{}, err
	}
	return s.create(ctx, ownerID, name, description, state)
}

// Overwrite replaces the stored preset named name, or saves a new one.
func (s *PresetService) Overwrite(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error) {
	name, err := s.checkWrite(name, state)
	if err != nil {
		return qrstyle.Preset{}, err
	}

	row, err := s.storage.GetByName(ctx, ownerID, name)
	if errors.Is(err, errorz.ErrPresetNotFound) {
		return s.create(ctx, ownerID, name, description, state)
	}
	if err != nil {
		return qrstyle.Preset{}, err
	}

	row.Description = strings.TrimSpace(description)
	if err = row.SetConfig(state.Full()); err != nil {
		return qrstyle.Preset{}, err
	}
	if row, err = s.storage.Update(ctx, row); err != nil {
		return qrstyle.Preset{}, err
	}
	return row.ToPreset()
}

func (s *PresetService) create(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error) {
	if s.limit > 0 {
		count, err := s.storage.Count(ctx, ownerID)
		if err != nil {
			return qrstyle.Preset{}, err
		}
		if count >= s.limit {
			return qrstyle.Preset{}, fmt.Errorf("%w: the limit is %d", errorz.ErrPresetLimit, s.limit)
		}
	}

	row := &entity.Preset{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := row.SetConfig(state.Full()); err != nil {
		return qrstyle.Preset{}, err
	}

	row, err := s.storage.Create(ctx, row)
	if err != nil {
		return qrstyle.Preset{}, err
	}
	return row.ToPreset()
}

// Delete removes a saved preset. Built-ins cannot be deleted.
func (s *PresetService) Delete(ctx context.Context, ownerID int64, name string) error {
	if _, err := qrstyle.LookupPreset(name); err == nil {
		return errorz.ErrForbidden
	}
	if s.storage == nil {
		return fmt.Errorf("%w: %q", errorz.ErrPresetNotFound, name)
	}
	return s.storage.Delete(ctx, ownerID, strings.TrimSpace(name))
}
