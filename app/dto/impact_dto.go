package dto

// ImpactStatsDTO represents windowed aggregate impact statistics. Campaign
// fields are attached on the campaign and representative scopes only.
type ImpactStatsDTO struct {
	WindowDays         int     `json:"window_days"`
	TotalActions       int64   `json:"total_actions"`
	CompletedActions   int64   `json:"completed_actions"`
	SkippedActions     int64   `json:"skipped_actions"`
	Calls              int64   `json:"calls"`
	Emails             int64   `json:"emails"`
	Boycotts           int64   `json:"boycotts"`
	Events             int64   `json:"events"`
	UniqueParticipants int64   `json:"unique_participants"`
	ParticipantRange   string  `json:"participant_range"`
	LastActionAt       *string `json:"last_action_at,omitempty"`
	CampaignID         *string `json:"campaign_id,omitempty"`
	CampaignTitle      *string `json:"campaign_title,omitempty"`
}

// ShareCardResponse represents the shareable impact card for a user. Counts
// are always present; only the identity field and message are privacy-gated.
type ShareCardResponse struct {
	WindowDays       int     `json:"window_days"`
	Shareable        bool    `json:"shareable"`
	VisibilityMode   string  `json:"visibility_mode"`
	DisplayName      *string `json:"display_name,omitempty"`
	PeriodLabel      string  `json:"period_label"`
	TotalActions     int64   `json:"total_actions"`
	CompletedActions int64   `json:"completed_actions"`
	Calls            int64   `json:"calls"`
	Emails           int64   `json:"emails"`
	Message          string  `json:"message"`
}
