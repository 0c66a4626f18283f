package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// ReferralRepositoryImpl implements ReferralRepository interface
type ReferralRepositoryImpl struct {
	*BaseRepository[models.Referral, models.ReferralFilter]
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &ReferralRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Referral, models.ReferralFilter](db),
	}
}

// ByCode retrieves a referral by its invite code
func (r *ReferralRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Referral, error) {
	db := r.getDB(ctx)

	var referral models.Referral
	err := db.Where("code = ?", code).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find referral by code: %w", err)
	}

	return &referral, nil
}

// ByReferredUser retrieves the referral claimed by the given user, if any
func (r *ReferralRepositoryImpl) ByReferredUser(ctx context.Context, referredUserID uuid.UUID) (*models.Referral, error) {
	db := r.getDB(ctx)

	var referral models.Referral
	err := db.Where("referred_user_id = ?", referredUserID).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find referral by referred user: %w", err)
	}

	return &referral, nil
}

// ListByReferrer retrieves the referrals created by a user, newest first
func (r *ReferralRepositoryImpl) ListByReferrer(ctx context.Context, referrerUserID uuid.UUID, limit, offset int) ([]*models.Referral, error) {
	db := r.getDB(ctx)

	query := db.Where("referrer_user_id = ?", referrerUserID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var referrals []*models.Referral
	if err := query.Find(&referrals).Error; err != nil {
		return nil, fmt.Errorf("failed to list referrals by referrer: %w", err)
	}

	return referrals, nil
}

// CountByReferrer returns the number of referrals created by a user
func (r *ReferralRepositoryImpl) CountByReferrer(ctx context.Context, referrerUserID uuid.UUID) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Referral{}).
		Where("referrer_user_id = ?", referrerUserID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count referrals by referrer: %w", err)
	}

	return count, nil
}

// ClaimedUserIDsSince returns the IDs of users who claimed one of the
// referrer's codes at or after the given time
func (r *ReferralRepositoryImpl) ClaimedUserIDsSince(ctx context.Context, referrerUserID uuid.UUID, since time.Time) ([]uuid.UUID, error) {
	db := r.getDB(ctx)

	var ids []uuid.UUID
	err := db.Model(&models.Referral{}).
		Where("referrer_user_id = ?", referrerUserID).
		Where("referred_user_id IS NOT NULL").
		Where("created_at >= ?", since).
		Pluck("referred_user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list claimed referral user IDs since %s: %w", since, err)
	}

	return ids, nil
}

// Update persists changes to an existing referral
func (r *ReferralRepositoryImpl) Update(ctx context.Context, referral *models.Referral) error {
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

	err = db.Save(referral).Error
	if err != nil {
		return fmt.Errorf("failed to update referral: %w", err)
	}

	return nil
}
