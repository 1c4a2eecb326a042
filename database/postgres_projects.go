package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bbarboza/portfolio-backend/models"
)

func (s *PostgresStore) Projects(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	q := s.db.WithContext(ctx).Model(&models.Project{})
	if filter.Published != nil {
		q = q.Where("is_published = ?", *filter.Published)
	}
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

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *PostgresStore) Project(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	tx := s.db.WithContext(ctx).First(&project, "id = ?", id)
	return firstOrNil(tx, &project)
}

func (s *PostgresStore) CreateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	project.ID = uuid.New()
	project.Likes = 0
	if project.Tags == nil {
		project.Tags = models.StringSlice{}
	}
	if project.Technologies == nil {
		project.Technologies = models.StringSlice{}
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, id uuid.UUID, upd models.ProjectUpdate) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}
		upd.Apply(&project)
		project.UpdatedAt = time.Now()
		return tx.Save(&project).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted {
			return nil
		}
		// Comments cascade via FK; likes use a generic target reference and
		// need explicit cleanup.
		return tx.Delete(&models.Like{}, "target_id = ? AND target_type = ?", id, models.TargetProject).Error
	})
	return deleted, err
}
