package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// OfficeType represents the kind of office a representative target holds
type OfficeType string

const (
	OfficeTypeSenate      OfficeType = "senate"
	OfficeTypeHouse       OfficeType = "house"
	OfficeTypeGovernor    OfficeType = "governor"
	OfficeTypeInstitution OfficeType = "institution"
)

// String returns the string representation of the office type
func (o OfficeType) String() string {
	return string(o)
}

// Valid checks if the office type is valid
func (o OfficeType) Valid() bool {
	switch o {
	case OfficeTypeSenate, OfficeTypeHouse, OfficeTypeGovernor, OfficeTypeInstitution:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for OfficeType
func (o *OfficeType) Scan(value any) error {
	if value == nil {
		*o = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*o = OfficeType(v)
	case []byte:
		*o = OfficeType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into OfficeType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for OfficeType
func (o OfficeType) Value() (driver.Value, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid OfficeType: %s", o)
	}
	return string(o), nil
}

// RepresentativeTarget represents a representative or office a campaign addresses
type RepresentativeTarget struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_representative_targets_campaign_id" json:"campaign_id"`
	OfficeType   OfficeType `gorm:"type:varchar(20);not null" json:"office_type"`
	OfficeName   string     `gorm:"size:255;not null" json:"office_name"`
	StateCode    *string    `gorm:"size:2" json:"state_code,omitempty"`
	DistrictCode *string    `gorm:"size:10" json:"district_code,omitempty"`
	ContactPhone *string    `gorm:"size:30" json:"contact_phone,omitempty"`
	ContactEmail *string    `gorm:"size:255" json:"contact_email,omitempty"`
	IsActive     *bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_representative_targets_created_at" json:"created_at"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
}

// TableName returns the table name for the model
func (RepresentativeTarget) TableName() string {
	return "representative_targets"
}

// BeforeCreate is called before creating a new record
func (t *RepresentativeTarget) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.IsActive == nil {
		t.IsActive = utils.ToPtr(true)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = utils.UTCNow()
	}
	return nil
}

// RepresentativeTargetFilter represents filter criteria for representative targets
type RepresentativeTargetFilter struct {
	ID         *uuid.UUID  `json:"id,omitempty"`
	CampaignID *uuid.UUID  `json:"campaign_id,omitempty"`
	OfficeType *OfficeType `json:"office_type,omitempty"`
	StateCode  *string     `json:"state_code,omitempty"`
	IsActive   *bool       `json:"is_active,omitempty"`
}
