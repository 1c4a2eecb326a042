package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/bbarboza/portfolio-backend/models"
)

func (s *PostgresStore) Comments(ctx context.Context, projectID, achievementID *uuid.UUID) ([]models.CommentWithUser, error) {
	q := s.db.WithContext(ctx).Model(&models.Comment{}).Preload("User")
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	if achievementID != nil {
		q = q.Where("achievement_id = ?", *achievementID)
	}

	var comments []models.Comment
	if err := q.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}

	out := make([]models.CommentWithUser, 0, len(comments))
	for _, c := range comments {
		author := models.UnknownAuthor(c.UserID)
		if c.User != nil {
			author = models.CommentAuthor{ID: c.User.ID, Name: c.User.Name, Avatar: c.User.Avatar}
		}
		c.User = nil
		out = append(out, models.CommentWithUser{Comment: c, Author: author})
	}
	return out, nil
}

func (s *PostgresStore) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	comment.ID = uuid.New()
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
