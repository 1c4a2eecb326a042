package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bbarboza/portfolio-backend/models"
)

func (s *PostgresStore) Achievements(ctx context.Context, filter AchievementFilter) ([]models.Achievement, error) {
	q := s.db.WithContext(ctx).Model(&models.Achievement{})
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var achievements []models.Achievement
	if err := q.Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (s *PostgresStore) Achievement(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	var achievement models.Achievement
	tx := s.db.WithContext(ctx).First(&achievement, "id = ?", id)
	return firstOrNil(tx, &achievement)
}

func (s *PostgresStore) CreateAchievement(ctx context.Context, achievement models.Achievement) (*models.Achievement, error) {
	achievement.ID = uuid.New()
	achievement.Likes = 0
	if err := s.db.WithContext(ctx).Create(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (s *PostgresStore) UpdateAchievement(ctx context.Context, id uuid.UUID, upd models.AchievementUpdate) (*models.Achievement, error) {
	var achievement models.Achievement
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&achievement, "id = ?", id).Error; err != nil {
			return err
		}
		upd.Apply(&achievement)
		return tx.Save(&achievement).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &achievement, nil
}

func (s *PostgresStore) DeleteAchievement(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Achievement{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted {
			return nil
		}
		return tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", id, models.TargetAchievement).Error
	})
	return deleted, err
}
