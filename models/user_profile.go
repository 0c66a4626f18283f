package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// VisibilityMode controls how much of a user's activity is exposed to others
type VisibilityMode string

const (
	VisibilityModePrivate     VisibilityMode = "private"
	VisibilityModeCommunity   VisibilityMode = "community"
	VisibilityModePublicOptIn VisibilityMode = "public_opt_in"
)

// String returns the string representation of the visibility mode
func (v VisibilityMode) String() string {
	return string(v)
}

// Valid checks if the visibility mode is valid
func (v VisibilityMode) Valid() bool {
	switch v {
	case VisibilityModePrivate, VisibilityModeCommunity, VisibilityModePublicOptIn:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for VisibilityMode
func (v *VisibilityMode) Scan(value any) error {
	if value == nil {
		*v = ""
		return nil
	}

	switch val := value.(type) {
	case string:
		*v = VisibilityMode(val)
	case []byte:
		*v = VisibilityMode(string(val))
	default:
		return fmt.Errorf("cannot scan %T into VisibilityMode", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for VisibilityMode
func (v VisibilityMode) Value() (driver.Value, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid VisibilityMode: %s", v)
	}
	return string(v), nil
}

// UserProfile is the one-to-one public-facing profile of an account, keyed by
// the account id
type UserProfile struct {
	UserID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username       string         `gorm:"size:50;not null;uniqueIndex:uk_user_profiles_username" json:"username"`
	StateCode      *string        `gorm:"size:2" json:"state_code,omitempty"`
	DistrictCode   *string        `gorm:"size:10" json:"district_code,omitempty"`
	Timezone       string         `gorm:"size:100;not null" json:"timezone"`
	VisibilityMode VisibilityMode `gorm:"type:varchar(20);not null;default:'private'" json:"visibility_mode"`
	CreatedAt      time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Account *Account `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
}

// TableName returns the table name for the model
func (UserProfile) TableName() string {
	return "user_profiles"
}

// BeforeCreate is called before creating a new record
func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.Timezone == "" {
		p.Timezone = "America/Chicago"
	}
	if p.VisibilityMode == "" {
		p.VisibilityMode = VisibilityModePrivate
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// UserProfileFilter represents filter criteria for user profiles
type UserProfileFilter struct {
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	Username       *string         `json:"username,omitempty"`
	StateCode      *string         `json:"state_code,omitempty"`
	VisibilityMode *VisibilityMode `json:"visibility_mode,omitempty"`
}
