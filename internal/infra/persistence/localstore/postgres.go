package localstore

import (
	"context"
	"log/slog"
	"time"

	"maison/config"
	"maison/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateModel is the single KV table backing the postgres provider.
type StateModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName sets the table name for GORM.
func (StateModel) TableName() string {
	return "storefront_states"
}

// postgresStore implements Store on a single GORM-managed KV table.
type postgresStore struct {
	db *gorm.DB
}

// NewPostgres creates a store backed by PostgreSQL. The states table is
// migrated on startup.
func NewPostgres(cfg *config.Config, logger *slog.Logger) (Store, error) {
	db, err := pgLib.New(cfg.Store.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// One-row upserts need no implicit per-statement transaction.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})

	if err := db.AutoMigrate(&StateModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate states table")
	}

	return &postgresStore{db: db}, nil
}

// Get retrieves the raw value for a key, ErrKeyNotFound when absent.
func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var state StateModel
	if err := s.db.WithContext(ctx).First(&state, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}

		return nil, errors.Wrapf(err, "failed to read key %s", key)
	}

	return state.Value, nil
}

// Set upserts the raw value for a key.
func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	state := StateModel{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&state).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

// Delete removes a key; absent keys are a no-op.
func (s *postgresStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&StateModel{}, "key = ?", key).Error; err != nil {
		return errors.Wrapf(err, "failed to delete key %s", key)
	}

	return nil
}

// Exists reports whether the key holds a value.
func (s *postgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&StateModel{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "failed to check key %s", key)
	}

	return count > 0, nil
}

// Close closes the underlying connection pool.
func (s *postgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return errors.WithStack(sqlDB.Close())
}
