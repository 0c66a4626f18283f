package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// DailyActionPlanRepositoryImpl implements DailyActionPlanRepository interface
type DailyActionPlanRepositoryImpl struct {
	*BaseRepository[models.DailyActionPlan, models.DailyActionPlanFilter]
}

// NewDailyActionPlanRepository creates a new daily action plan repository
func NewDailyActionPlanRepository(db *gorm.DB) DailyActionPlanRepository {
	return &DailyActionPlanRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DailyActionPlan, models.DailyActionPlanFilter](db),
	}
}

// ListActiveByUser retrieves the active plans owned by a user
func (r *DailyActionPlanRepositoryImpl) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*models.DailyActionPlan, error) {
	db := r.getDB(ctx)

	var plans []*models.DailyActionPlan
	err := db.Where("user_id = ?", userID).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans by user: %w", err)
	}

	return plans, nil
}

// CountActiveByUser returns the number of active plans owned by a user
func (r *DailyActionPlanRepositoryImpl) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.DailyActionPlan{}).
		Where("user_id = ?", userID).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active plans by user: %w", err)
	}

	return count, nil
}

// DeactivateAllByUser marks every plan owned by a user inactive
func (r *DailyActionPlanRepositoryImpl) DeactivateAllByUser(ctx context.Context, userID uuid.UUID) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.DailyActionPlan{}).
		Where("user_id = ?", userID).
		Where("is_active = ?", true).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate plans by user: %w", err)
	}

	return nil
}
