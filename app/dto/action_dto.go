package dto

// TodayActionDTO represents one suggested action in the daily feed, one row
// per template surfaced by an active plan
type TodayActionDTO struct {
	CampaignID       string  `json:"campaign_id"`
	CampaignTitle    string  `json:"campaign_title"`
	TemplateID       string  `json:"template_id"`
	TargetID         *string `json:"target_id,omitempty"`
	ActionType       string  `json:"action_type"`
	Title            string  `json:"title"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

// TodayActionsResponse represents the daily action feed for a user
type TodayActionsResponse struct {
	Data  []TodayActionDTO `json:"data"`
	Count int              `json:"count"`
}

// LogActionRequest represents a request to record a completed or skipped action
type LogActionRequest struct {
	CampaignID      string  `json:"campaign_id" validate:"required,uuid4"`
	TargetID        *string `json:"target_id,omitempty" validate:"omitempty,uuid4"`
	TemplateID      *string `json:"template_id,omitempty" validate:"omitempty,uuid4"`
	ActionType      string  `json:"action_type" validate:"required,oneof=call email boycott event"`
	Status          string  `json:"status" validate:"required,oneof=completed skipped"`
	Outcome         *string `json:"outcome,omitempty" validate:"omitempty,oneof=answered voicemail sent attended unknown"`
	ConfidenceScore *int    `json:"confidence_score,omitempty" validate:"omitempty,min=1,max=5"`
}

// ActionLogDTO represents an action log entry in API responses
type ActionLogDTO struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	CampaignID      string  `json:"campaign_id"`
	TargetID        *string `json:"target_id,omitempty"`
	TemplateID      *string `json:"template_id,omitempty"`
	ActionType      string  `json:"action_type"`
	Status          string  `json:"status"`
	Outcome         string  `json:"outcome"`
	ConfidenceScore *int    `json:"confidence_score,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ListMyActionsRequest represents query parameters for listing a user's log entries
type ListMyActionsRequest struct {
	Skip  int `query:"skip" validate:"omitempty,min=0"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ListMyActionsResponse represents the paginated action log payload
type ListMyActionsResponse struct {
	Data  []ActionLogDTO `json:"data"`
	Count int64          `json:"count"`
}

// UserStatsDTO represents a user's own windowed action statistics
type UserStatsDTO struct {
	WindowDays       int     `json:"window_days"`
	TotalActions     int64   `json:"total_actions"`
	CompletedActions int64   `json:"completed_actions"`
	SkippedActions   int64   `json:"skipped_actions"`
	Calls            int64   `json:"calls"`
	Emails           int64   `json:"emails"`
	Boycotts         int64   `json:"boycotts"`
	Events           int64   `json:"events"`
	LastActionAt     *string `json:"last_action_at,omitempty"`
}
