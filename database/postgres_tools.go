package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bbarboza/portfolio-backend/models"
)

func (s *PostgresStore) Tools(ctx context.Context, filter ToolFilter) ([]models.Tool, error) {
	q := s.db.WithContext(ctx).Model(&models.Tool{})
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	q = q.Order("display_order ASC").Order("name ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var tools []models.Tool
	if err := q.Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

func (s *PostgresStore) Tool(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	var tool models.Tool
	tx := s.db.WithContext(ctx).First(&tool, "id = ?", id)
	return firstOrNil(tx, &tool)
}

func (s *PostgresStore) CreateTool(ctx context.Context, tool models.Tool) (*models.Tool, error) {
	tool.ID = uuid.New()
	if err := s.db.WithContext(ctx).Create(&tool).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

func (s *PostgresStore) UpdateTool(ctx context.Context, id uuid.UUID, upd models.ToolUpdate) (*models.Tool, error) {
	var tool models.Tool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tool, "id = ?", id).Error; err != nil {
			return err
		}
		upd.Apply(&tool)
		return tx.Save(&tool).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

func (s *PostgresStore) DeleteTool(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Tool{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
