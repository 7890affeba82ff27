package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// Preset is a user-saved style. Config holds a JSON encoded qrstyle.PartialFormState.
// Names are unique per owner ignoring case.
type Preset struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerID     int64  `gorm:"not null;index:idx_presets_owner_lower_name,unique,priority:1"`
	Name        string `gorm:"not null;index:idx_presets_owner_lower_name,unique,expression:LOWER(name),priority:2"`
	Description string
	Config      string `gorm:"type:text;not null"`
}

func (p *Preset) SetConfig(partial qrstyle.PartialFormState) error {
	data, err := json.Marshal(partial)
	if err != nil {
		return err
	}
	p.Config = string(data)
	return nil
}

// ToPreset converts the stored row into a preset. The stored JSON is
// checked once here and decoded again on every Config call, so each
// caller gets a fresh value.
func (p *Preset) ToPreset() (qrstyle.Preset, error) {
	raw := []byte(p.Config)
	var probe qrstyle.PartialFormState
	if err := json.Unmarshal(raw, &probe); err != nil {
		return qrstyle.Preset{}, fmt.Errorf("preset %q has a corrupted config: %w", p.Name, err)
	}

	return qrstyle.Preset{
		Name:        p.Name,
		Description: p.Description,
		Config: func() qrstyle.PartialFormState {
			var partial qrstyle.PartialFormState
			_ = json.Unmarshal(raw, &partial)
			return partial
		},
	}, nil
}
