package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// ReferralChannel records how an invite code was handed out
type ReferralChannel string

const (
	ReferralChannelLink   ReferralChannel = "link"
	ReferralChannelQR     ReferralChannel = "qr"
	ReferralChannelSocial ReferralChannel = "social"
)

// String returns the string representation of the channel
func (c ReferralChannel) String() string {
	return string(c)
}

// Valid checks if the channel is valid
func (c ReferralChannel) Valid() bool {
	switch c {
	case ReferralChannelLink, ReferralChannelQR, ReferralChannelSocial:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ReferralChannel
func (c *ReferralChannel) Scan(value any) error {
	if value == nil {
		*c = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*c = ReferralChannel(v)
	case []byte:
		*c = ReferralChannel(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ReferralChannel", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ReferralChannel
func (c ReferralChannel) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid ReferralChannel: %s", c)
	}
	return string(c), nil
}

// Referral links a referrer to at most one referred user via a unique code.
// The unique index on referred_user_id enforces that each user can be the
// referred party of at most one referral, ever; the claim transition is never
// reversed.
type Referral struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ReferrerUserID uuid.UUID       `gorm:"type:uuid;not null;index:idx_referrals_referrer_user_id" json:"referrer_user_id"`
	ReferredUserID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:uk_referrals_referred_user_id" json:"referred_user_id,omitempty"`
	Code           string          `gorm:"size:64;not null;uniqueIndex:uk_referrals_code" json:"code"`
	Channel        ReferralChannel `gorm:"type:varchar(20);not null;default:'link'" json:"channel"`
	CreatedAt      time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_referrals_created_at" json:"created_at"`

	// Relations
	Referrer *Account `gorm:"foreignKey:ReferrerUserID;references:ID;constraint:OnDelete:CASCADE" json:"referrer,omitempty"`
	Referred *Account `gorm:"foreignKey:ReferredUserID;references:ID;constraint:OnDelete:SET NULL" json:"referred,omitempty"`
}

// TableName returns the table name for the model
func (Referral) TableName() string {
	return "referrals"
}

// BeforeCreate is called before creating a new record
func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Channel == "" {
		r.Channel = ReferralChannelLink
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	return nil
}

// IsClaimed reports whether the code has been claimed
func (r *Referral) IsClaimed() bool {
	return r.ReferredUserID != nil
}

// ReferralFilter represents filter criteria for referrals
type ReferralFilter struct {
	ID             *uuid.UUID       `json:"id,omitempty"`
	ReferrerUserID *uuid.UUID       `json:"referrer_user_id,omitempty"`
	ReferredUserID *uuid.UUID       `json:"referred_user_id,omitempty"`
	Code           *string          `json:"code,omitempty"`
	Channel        *ReferralChannel `json:"channel,omitempty"`
	CreatedAfter   *time.Time       `json:"created_after,omitempty"`
}
