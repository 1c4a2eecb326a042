package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bbarboza/portfolio-backend/auth"
	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

func (s *PostgresStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	tx := s.db.WithContext(ctx).First(&user, "id = ?", id)
	return firstOrNil(tx, &user)
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	tx := s.db.WithContext(ctx).First(&user, "lower(email) = lower(?)", email)
	return firstOrNil(tx, &user)
}

func (s *PostgresStore) AdminUser(ctx context.Context) (*models.User, error) {
	var user models.User
	tx := s.db.WithContext(ctx).First(&user, "is_admin = true")
	return firstOrNil(tx, &user)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.New()
	user.Password = hashed
	user.IsAdmin = false
	if user.Skills == nil {
		user.Skills = models.StringSlice{}
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.NewAlreadyExists("user")
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		upd.Apply(&user)
		return tx.Save(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
