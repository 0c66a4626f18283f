package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// ActionLogStatus records whether a planned action was carried out
type ActionLogStatus string

const (
	ActionLogStatusCompleted ActionLogStatus = "completed"
	ActionLogStatusSkipped   ActionLogStatus = "skipped"
)

// String returns the string representation of the status
func (s ActionLogStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ActionLogStatus) Valid() bool {
	switch s {
	case ActionLogStatusCompleted, ActionLogStatusSkipped:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ActionLogStatus
func (s *ActionLogStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ActionLogStatus(v)
	case []byte:
		*s = ActionLogStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ActionLogStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ActionLogStatus
func (s ActionLogStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ActionLogStatus: %s", s)
	}
	return string(s), nil
}

// ActionOutcome records what happened when the action was attempted
type ActionOutcome string

const (
	ActionOutcomeAnswered  ActionOutcome = "answered"
	ActionOutcomeVoicemail ActionOutcome = "voicemail"
	ActionOutcomeSent      ActionOutcome = "sent"
	ActionOutcomeAttended  ActionOutcome = "attended"
	ActionOutcomeUnknown   ActionOutcome = "unknown"
)

// String returns the string representation of the outcome
func (o ActionOutcome) String() string {
	return string(o)
}

// Valid checks if the outcome is valid
func (o ActionOutcome) Valid() bool {
	switch o {
	case ActionOutcomeAnswered, ActionOutcomeVoicemail, ActionOutcomeSent,
		ActionOutcomeAttended, ActionOutcomeUnknown:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ActionOutcome
func (o *ActionOutcome) Scan(value any) error {
	if value == nil {
		*o = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*o = ActionOutcome(v)
	case []byte:
		*o = ActionOutcome(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ActionOutcome", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ActionOutcome
func (o ActionOutcome) Value() (driver.Value, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid ActionOutcome: %s", o)
	}
	return string(o), nil
}

// UserActionLog is an immutable record of one completed or skipped user
// action. Rows are append-only; the application never updates or deletes
// them.
type UserActionLog struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_action_logs_user_id" json:"user_id"`
	CampaignID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_action_logs_campaign_id" json:"campaign_id"`
	TargetID        *uuid.UUID      `gorm:"type:uuid;index:idx_user_action_logs_target_id" json:"target_id,omitempty"`
	TemplateID      *uuid.UUID      `gorm:"type:uuid;index:idx_user_action_logs_template_id" json:"template_id,omitempty"`
	ActionType      ActionType      `gorm:"type:varchar(20);not null" json:"action_type"`
	Status          ActionLogStatus `gorm:"type:varchar(20);not null" json:"status"`
	Outcome         ActionOutcome   `gorm:"type:varchar(20);not null;default:'unknown'" json:"outcome"`
	ConfidenceScore *int            `json:"confidence_score,omitempty"`
	CreatedAt       time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_user_action_logs_created_at" json:"created_at"`

	// Relations
	Account  *Account              `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
	Campaign *Campaign             `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
	Target   *RepresentativeTarget `gorm:"foreignKey:TargetID;references:ID;constraint:OnDelete:SET NULL" json:"target,omitempty"`
	Template *ActionTemplate       `gorm:"foreignKey:TemplateID;references:ID;constraint:OnDelete:SET NULL" json:"template,omitempty"`
}

// TableName returns the table name for the model
func (UserActionLog) TableName() string {
	return "user_action_logs"
}

// BeforeCreate is called before creating a new record
func (l *UserActionLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Outcome == "" {
		l.Outcome = ActionOutcomeUnknown
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = utils.UTCNow()
	}
	return nil
}

// UserActionLogFilter represents filter criteria for action logs
type UserActionLogFilter struct {
	ID            *uuid.UUID       `json:"id,omitempty"`
	UserID        *uuid.UUID       `json:"user_id,omitempty"`
	CampaignID    *uuid.UUID       `json:"campaign_id,omitempty"`
	TargetID      *uuid.UUID       `json:"target_id,omitempty"`
	TemplateID    *uuid.UUID       `json:"template_id,omitempty"`
	ActionType    *ActionType      `json:"action_type,omitempty"`
	Status        *ActionLogStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time       `json:"created_after,omitempty"`
	CreatedBefore *time.Time       `json:"created_before,omitempty"`
}
