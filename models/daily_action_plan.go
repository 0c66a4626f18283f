package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/megaphone-app/megaphone/utils"
	"gorm.io/gorm"
)

// WeekdayMaskLength is the required length of a plan's weekday mask. Index 0
// is Monday.
const WeekdayMaskLength = 7

// DailyActionPlan is a user's subscription to a campaign with a weekday
// schedule and a daily action quota
type DailyActionPlan struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index:idx_daily_action_plans_user_id" json:"user_id"`
	CampaignID          uuid.UUID `gorm:"type:uuid;not null;index:idx_daily_action_plans_campaign_id" json:"campaign_id"`
	TargetActionsPerDay int       `gorm:"not null;default:1" json:"target_actions_per_day"`
	ActiveWeekdaysMask  string    `gorm:"size:7;not null" json:"active_weekdays_mask"`
	IsActive            *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Account  *Account  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
}

// TableName returns the table name for the model
func (DailyActionPlan) TableName() string {
	return "daily_action_plans"
}

// BeforeCreate is called before creating a new record
func (p *DailyActionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.TargetActionsPerDay == 0 {
		p.TargetActionsPerDay = 1
	}
	if p.IsActive == nil {
		p.IsActive = utils.ToPtr(true)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// ActiveOn reports whether the plan schedules actions for the given weekday
// index (0 = Monday .. 6 = Sunday). A mask of the wrong length makes the plan
// ineligible rather than being an error.
func (p *DailyActionPlan) ActiveOn(weekday int) bool {
	if len(p.ActiveWeekdaysMask) != WeekdayMaskLength {
		return false
	}
	if weekday < 0 || weekday >= WeekdayMaskLength {
		return false
	}
	return p.ActiveWeekdaysMask[weekday] == '1'
}

// DailyActionPlanFilter represents filter criteria for daily action plans
type DailyActionPlanFilter struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	CampaignID *uuid.UUID `json:"campaign_id,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}
