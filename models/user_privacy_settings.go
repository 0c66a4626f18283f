package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// UserPrivacySettings holds the per-account privacy toggles, keyed by the
// account id. Defaults are conservative: everything off except badges and
// referral tracking.
type UserPrivacySettings struct {
	UserID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ShowOnLeaderboard     *bool     `gorm:"not null;default:false" json:"show_on_leaderboard"`
	ShowStreaks           *bool     `gorm:"not null;default:false" json:"show_streaks"`
	ShowBadges            *bool     `gorm:"not null;default:true" json:"show_badges"`
	AllowShareableCard    *bool     `gorm:"not null;default:false" json:"allow_shareable_card"`
	AllowReferralTracking *bool     `gorm:"not null;default:true" json:"allow_referral_tracking"`
	CreatedAt             time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Account *Account `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
}

// TableName returns the table name for the model
func (UserPrivacySettings) TableName() string {
	return "user_privacy_settings"
}

// BeforeCreate is called before creating a new record
func (s *UserPrivacySettings) BeforeCreate(tx *gorm.DB) error {
	if s.ShowOnLeaderboard == nil {
		s.ShowOnLeaderboard = utils.ToPtr(false)
	}
	if s.ShowStreaks == nil {
		s.ShowStreaks = utils.ToPtr(false)
	}
	if s.ShowBadges == nil {
		s.ShowBadges = utils.ToPtr(true)
	}
	if s.AllowShareableCard == nil {
		s.AllowShareableCard = utils.ToPtr(false)
	}
	if s.AllowReferralTracking == nil {
		s.AllowReferralTracking = utils.ToPtr(true)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// UserPrivacySettingsFilter represents filter criteria for privacy settings
type UserPrivacySettingsFilter struct {
	UserID *uuid.UUID `json:"user_id,omitempty"`
}
