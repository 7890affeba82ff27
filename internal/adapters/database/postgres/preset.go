package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/internal/domain/entity"
)

type PresetStorage struct {
	db *gorm.DB
}

func NewPresetStorage(db *gorm.DB) *PresetStorage {
	return &PresetStorage{
		db: db,
	}
}

func (s *PresetStorage) Create(ctx context.Context, preset *entity.Preset) (*entity.Preset, error) {
	err := s.db.WithContext(ctx).Create(preset).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errorz.ErrPresetExists
	}
	return preset, err
}

// GetByName looks a preset up by its owner and name, ignoring case.
func (s *PresetStorage) GetByName(ctx context.Context, ownerID int64, name string) (*entity.Preset, error) {
	var preset entity.Preset
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).
		First(&preset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrPresetNotFound
	}
	return &preset, err
}

func (s *PresetStorage) ListByOwner(ctx context.Context, ownerID int64) ([]entity.Preset, error) {
	var presets []entity.Preset
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name").Find(&presets).Error
	return presets, err
}

func (s *PresetStorage) Update(ctx context.Context, preset *entity.Preset) (*entity.Preset, error) {
	err := s.db.WithContext(ctx).Save(preset).Error
	return preset, err
}

func (s *PresetStorage) Delete(ctx context.Context, ownerID int64, name string) error {
	res := s.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(name) = LOWER(?)", ownerID, name).
		Delete(&entity.Preset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorz.ErrPresetNotFound
	}
	return nil
}

func (s *PresetStorage) Count(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Preset{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
