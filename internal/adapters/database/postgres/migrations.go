package postgres

import "github.com/Badsnus/qr-styler/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Preset{},
}
