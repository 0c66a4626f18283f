package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// Account represents an authenticated user account. Credential handling and
// token issuance live outside this service; the row exists as the ownership
// anchor for profiles, plans, logs, and referrals.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_accounts_email" json:"email"`
	FullName     *string   `gorm:"size:255" json:"full_name,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     *bool     `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser  *bool     `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt    time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

// TableName returns the table name for the model
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate is called before creating a new record
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.IsActive == nil {
		a.IsActive = utils.ToPtr(true)
	}
	if a.IsSuperuser == nil {
		a.IsSuperuser = utils.ToPtr(false)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	return nil
}

// AccountFilter represents filter criteria for accounts
type AccountFilter struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Email    *string    `json:"email,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
