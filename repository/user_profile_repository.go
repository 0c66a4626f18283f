package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// UserProfileRepositoryImpl implements UserProfileRepository interface
type UserProfileRepositoryImpl struct {
	*BaseRepository[models.UserProfile, models.UserProfileFilter]
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &UserProfileRepositoryImpl{
		BaseRepository: NewBaseRepository[models.UserProfile, models.UserProfileFilter](db),
	}
}

// ByUserID retrieves a profile by the owning user ID
func (r *UserProfileRepositoryImpl) ByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	db := r.getDB(ctx)

	var profile models.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by user ID: %w", err)
	}

	return &profile, nil
}

// ByUsername retrieves a profile by its public username
func (r *UserProfileRepositoryImpl) ByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	db := r.getDB(ctx)

	var profile models.UserProfile
	err := db.Where("username = ?", username).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by username: %w", err)
	}

	return &profile, nil
}

// Update persists changes to an existing profile
func (r *UserProfileRepositoryImpl) Update(ctx context.Context, profile *models.UserProfile) error {
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

	err = db.Save(profile).Error
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}
