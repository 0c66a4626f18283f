package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// UserPrivacySettingsRepositoryImpl implements UserPrivacySettingsRepository interface
type UserPrivacySettingsRepositoryImpl struct {
	*BaseRepository[models.UserPrivacySettings, models.UserPrivacySettingsFilter]
}

// NewUserPrivacySettingsRepository creates a new privacy settings repository
func NewUserPrivacySettingsRepository(db *gorm.DB) UserPrivacySettingsRepository {
	return &UserPrivacySettingsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.UserPrivacySettings, models.UserPrivacySettingsFilter](db),
	}
}

// ByUserID retrieves privacy settings by the owning user ID
func (r *UserPrivacySettingsRepositoryImpl) ByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPrivacySettings, error) {
	db := r.getDB(ctx)

	var settings models.UserPrivacySettings
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find privacy settings by user ID: %w", err)
	}

	return &settings, nil
}

// Update persists changes to existing privacy settings
func (r *UserPrivacySettingsRepositoryImpl) Update(ctx context.Context, settings *models.UserPrivacySettings) error {
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

	err = db.Save(settings).Error
	if err != nil {
		return fmt.Errorf("failed to update privacy settings: %w", err)
	}

	return nil
}
