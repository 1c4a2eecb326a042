package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/bbarboza/portfolio-backend/models"
)

// PostgresStore is the durable Store backend over a shared GORM instance.
// Counter maintenance runs as atomic column updates inside a transaction, so
// concurrent toggles cannot lose updates.
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgres(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetDB returns the underlying database connection for debugging purposes
func (s *PostgresStore) GetDB() *gorm.DB {
	return s.db
}

// UseReplica routes reads to a replica connection and keeps writes on the
// primary. The toggle transaction always runs on the primary.
func (s *PostgresStore) UseReplica(dialector gorm.Dialector) error {
	return s.db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{dialector},
	}))
}

// Migrate creates or updates the schema for every entity.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Achievement{},
		&models.Tool{},
		&models.Comment{},
		&models.Like{},
	)
}

// Seed inserts the bootstrap content. Idempotent: the admin user is looked up
// by email first, and sample content is only inserted alongside a new admin.
func (s *PostgresStore) Seed(ctx context.Context, cfg SeedConfig) error {
	cfg = cfg.withDefaults()

	existing, err := s.UserByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	seed, err := buildSeed(cfg)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seed.Admin).Error; err != nil {
			return err
		}
		if len(seed.Projects) > 0 {
			if err := tx.Create(&seed.Projects).Error; err != nil {
				return err
			}
		}
		if len(seed.Achievements) > 0 {
			if err := tx.Create(&seed.Achievements).Error; err != nil {
				return err
			}
		}
		if len(seed.Tools) > 0 {
			if err := tx.Create(&seed.Tools).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// firstOrNil converts gorm's record-not-found into the (nil, nil) contract.
func firstOrNil[T any](tx *gorm.DB, dest *T) (*T, error) {
	if err := tx.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}
