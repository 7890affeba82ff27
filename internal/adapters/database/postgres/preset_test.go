package postgres

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/internal/domain/entity"
)

func TestPresetNameIndexIgnoresCase(t *testing.T) {
	s, err := schema.Parse(&entity.Preset{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx := s.LookIndex("idx_presets_owner_lower_name")
	require.NotNil(t, idx)
	assert.Equal(t, "UNIQUE", idx.Class)
	require.Len(t, idx.Fields, 2)
	assert.Equal(t, "owner_id", idx.Fields[0].DBName)
	assert.Equal(t, "LOWER(name)", idx.Fields[1].Expression)
}

// dryRun opens a connection-less postgres dialect and records every query.
func dryRun(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var statements []string
	capture := func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture", capture))
	return db, &statements
}

func TestPresetStorage_NameQueriesIgnoreCase(t *testing.T) {
	db, statements := dryRun(t)
	storage := NewPresetStorage(db)
	ctx := context.Background()

	_, err := storage.GetByName(ctx, 1, "Logo")
	require.NoError(t, err)
	_ = storage.Delete(ctx, 1, "Logo")

	require.Len(t, *statements, 2)
	for _, sql := range *statements {
		assert.Contains(t, sql, "owner_id = $1 AND LOWER(name) = LOWER($2)")
	}
}

// TestPresetStorage_Postgres runs against a real database when
// QRSTYLER_TEST_POSTGRES_DSN is set.
func TestPresetStorage_Postgres(t *testing.T) {
	dsn := os.Getenv("QRSTYLER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("QRSTYLER_TEST_POSTGRES_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&entity.Preset{}))
	require.NoError(t, db.AutoMigrate(Migrations...))

	ctx := context.Background()
	storage := NewPresetStorage(db)

	_, err = storage.Create(ctx, &entity.Preset{OwnerID: 1, Name: "Logo", Config: "{}"})
	require.NoError(t, err)
	_, err = storage.Create(ctx, &entity.Preset{OwnerID: 1, Name: "logo", Config: "{}"})
	assert.ErrorIs(t, err, errorz.ErrPresetExists)
	_, err = storage.Create(ctx, &entity.Preset{OwnerID: 2, Name: "logo", Config: "{}"})
	require.NoError(t, err)

	row, err := storage.GetByName(ctx, 1, "LOGO")
	require.NoError(t, err)
	assert.Equal(t, "Logo", row.Name)

	row.Description = "updated"
	_, err = storage.Update(ctx, row)
	require.NoError(t, err)

	count, err := storage.Count(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, storage.Delete(ctx, 1, "logo"))
	assert.ErrorIs(t, storage.Delete(ctx, 1, "logo"), errorz.ErrPresetNotFound)

	others, err := storage.ListByOwner(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, others, 1, "deleting owner 1's preset leaves owner 2's alone")
}
