package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/bbarboza/portfolio-backend/errs"
	"github.com/bbarboza/portfolio-backend/models"
)

// targetModel maps a target type to the GORM model carrying its counter.
func targetModel(targetType models.TargetType) (any, error) {
	switch targetType {
	case models.TargetProject:
		return &models.Project{}, nil
	case models.TargetAchievement:
		return &models.Achievement{}, nil
	default:
		return nil, errs.NewBadRequestError("unknown like target type")
	}
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key")
}

// ToggleLike runs the whole flip as one transaction. The target row is locked
// FOR UPDATE first, which both verifies existence and serializes concurrent
// toggles on the same target; the unique index on (user_id, target_id,
// target_type) backs the membership invariant, and a duplicate-key race on
// insert folds into the "already liked" branch.
func (s *PostgresStore) ToggleLike(ctx context.Context, userID uuid.UUID, ref models.TargetRef) (models.ToggleResult, error) {
	model, err := targetModel(ref.Type)
	if err != nil {
		return models.ToggleResult{}, err
	}

	var result models.ToggleResult
	err = s.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(func(tx *gorm.DB) error {
		var target struct{ Likes int }
		err := tx.Model(model).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("likes").
			Where("id = ?", ref.ID).
			Take(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound(string(ref.Type))
			}
			return err
		}

		var existing models.Like
		err = tx.Where("user_id = ? AND target_id = ? AND target_type = ?",
			userID, ref.ID, ref.Type).First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Delete(&models.Like{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			err = tx.Model(model).Where("id = ?", ref.ID).
				UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error
			if err != nil {
				return err
			}
			result.Liked = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{
				ID:         uuid.New(),
				UserID:     userID,
				TargetID:   ref.ID,
				TargetType: ref.Type,
			}
			if err := tx.Create(&like).Error; err != nil {
				if !isDuplicateKey(err) {
					return err
				}
				// A concurrent toggle inserted first: the row exists, so the
				// state is "liked" and the counter was already incremented.
			} else {
				err = tx.Model(model).Where("id = ?", ref.ID).
					UpdateColumn("likes", gorm.Expr("likes + 1")).Error
				if err != nil {
					return err
				}
			}
			result.Liked = true

		default:
			return err
		}

		// The returned count is always re-read from the stored counter.
		err = tx.Model(model).
			Select("likes").
			Where("id = ?", ref.ID).
			Take(&target).Error
		if err != nil {
			return err
		}
		result.Count = target.Likes
		return nil
	})
	if err != nil {
		return models.ToggleResult{}, err
	}
	return result, nil
}

func (s *PostgresStore) UserLikes(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	var likes []models.Like
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}
