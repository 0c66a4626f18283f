package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// ActionType represents the kind of action a template or log describes
type ActionType string

const (
	ActionTypeCall    ActionType = "call"
	ActionTypeEmail   ActionType = "email"
	ActionTypeBoycott ActionType = "boycott"
	ActionTypeEvent   ActionType = "event"
)

// String returns the string representation of the action type
func (a ActionType) String() string {
	return string(a)
}

// Valid checks if the action type is valid
func (a ActionType) Valid() bool {
	switch a {
	case ActionTypeCall, ActionTypeEmail, ActionTypeBoycott, ActionTypeEvent:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ActionType
func (a *ActionType) Scan(value any) error {
	if value == nil {
		*a = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*a = ActionType(v)
	case []byte:
		*a = ActionType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ActionType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ActionType
func (a ActionType) Value() (driver.Value, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid ActionType: %s", a)
	}
	return string(a), nil
}

// ActionTemplate represents a reusable call script or email pattern tied to a
// campaign and optionally to one of its representative targets
type ActionTemplate struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_action_templates_campaign_id" json:"campaign_id"`
	TargetID         *uuid.UUID `gorm:"type:uuid;index:idx_action_templates_target_id" json:"target_id,omitempty"`
	ActionType       ActionType `gorm:"type:varchar(20);not null" json:"action_type"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	ScriptText       string     `gorm:"type:text;not null" json:"script_text"`
	EmailSubject     *string    `gorm:"size:255" json:"email_subject,omitempty"`
	EmailBody        *string    `gorm:"type:text" json:"email_body,omitempty"`
	EstimatedMinutes int        `gorm:"not null;default:3" json:"estimated_minutes"`
	CreatedAt        time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_action_templates_created_at" json:"created_at"`

	// Relations
	Campaign *Campaign             `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
	Target   *RepresentativeTarget `gorm:"foreignKey:TargetID;references:ID;constraint:OnDelete:SET NULL" json:"target,omitempty"`
}

// TableName returns the table name for the model
func (ActionTemplate) TableName() string {
	return "action_templates"
}

// BeforeCreate is called before creating a new record
func (t *ActionTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.EstimatedMinutes == 0 {
		t.EstimatedMinutes = 3
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = utils.UTCNow()
	}
	return nil
}

// ActionTemplateFilter represents filter criteria for action templates
type ActionTemplateFilter struct {
	ID         *uuid.UUID  `json:"id,omitempty"`
	CampaignID *uuid.UUID  `json:"campaign_id,omitempty"`
	TargetID   *uuid.UUID  `json:"target_id,omitempty"`
	ActionType *ActionType `json:"action_type,omitempty"`
}
