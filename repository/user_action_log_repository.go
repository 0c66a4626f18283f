package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// UserActionLogRepositoryImpl implements UserActionLogRepository interface
type UserActionLogRepositoryImpl struct {
	*BaseRepository[models.UserActionLog, models.UserActionLogFilter]
}

// NewUserActionLogRepository creates a new user action log repository
func NewUserActionLogRepository(db *gorm.DB) UserActionLogRepository {
	return &UserActionLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.UserActionLog, models.UserActionLogFilter](db),
	}
}

// ListByUser retrieves a user's log entries ordered newest first
func (r *UserActionLogRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.UserActionLog, error) {
	db := r.getDB(ctx)

	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var logs []*models.UserActionLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list action logs by user: %w", err)
	}

	return logs, nil
}

// CountByUser returns the number of log entries owned by a user
func (r *UserActionLogRepositoryImpl) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.UserActionLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count action logs by user: %w", err)
	}

	return count, nil
}

// ListByUserSince retrieves a user's log entries created at or after the given time
func (r *UserActionLogRepositoryImpl) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.UserActionLog, error) {
	db := r.getDB(ctx)

	var logs []*models.UserActionLog
	err := db.Where("user_id = ?", userID).
		Where("created_at >= ?", since).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs by user since %s: %w", since, err)
	}

	return logs, nil
}

// ListSince retrieves every log entry created at or after the given time
func (r *UserActionLogRepositoryImpl) ListSince(ctx context.Context, since time.Time) ([]*models.UserActionLog, error) {
	db := r.getDB(ctx)

	var logs []*models.UserActionLog
	err := db.Where("created_at >= ?", since).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs since %s: %w", since, err)
	}

	return logs, nil
}

// ListByCampaignSince retrieves a campaign's log entries created at or after the given time
func (r *UserActionLogRepositoryImpl) ListByCampaignSince(ctx context.Context, campaignID uuid.UUID, since time.Time) ([]*models.UserActionLog, error) {
	db := r.getDB(ctx)

	var logs []*models.UserActionLog
	err := db.Where("campaign_id = ?", campaignID).
		Where("created_at >= ?", since).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs by campaign since %s: %w", since, err)
	}

	return logs, nil
}

// ListByTargetSince retrieves a target's log entries created at or after the given time
func (r *UserActionLogRepositoryImpl) ListByTargetSince(ctx context.Context, targetID uuid.UUID, since time.Time) ([]*models.UserActionLog, error) {
	db := r.getDB(ctx)

	var logs []*models.UserActionLog
	err := db.Where("target_id = ?", targetID).
		Where("created_at >= ?", since).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs by target since %s: %w", since, err)
	}

	return logs, nil
}

// CountByUsersSince returns the number of log entries by any of the given users
// created at or after the given time
func (r *UserActionLogRepositoryImpl) CountByUsersSince(ctx context.Context, userIDs []uuid.UUID, since time.Time) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.UserActionLog{}).
		Where("user_id IN ?", userIDs).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count action logs by users since %s: %w", since, err)
	}

	return count, nil
}
