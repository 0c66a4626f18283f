package dto

// CompleteOnboardingRequest represents a request to finish onboarding: upsert
// the profile, ensure privacy settings exist, and replace the daily plans for
// the selected campaigns
type CompleteOnboardingRequest struct {
	Username            *string  `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	StateCode           *string  `json:"state_code,omitempty" validate:"omitempty,len=2"`
	DistrictCode        *string  `json:"district_code,omitempty" validate:"omitempty,max=10"`
	Timezone            *string  `json:"timezone,omitempty" validate:"omitempty,max=100"`
	VisibilityMode      *string  `json:"visibility_mode,omitempty" validate:"omitempty,oneof=private community public_opt_in"`
	CampaignIDs         []string `json:"campaign_ids" validate:"omitempty,dive,uuid4"`
	TargetActionsPerDay int      `json:"target_actions_per_day" validate:"omitempty,min=1,max=20"`
	ActiveWeekdaysMask  string   `json:"active_weekdays_mask" validate:"omitempty,weekday_mask"`
}

// UserProfileDTO represents a user profile in API responses
type UserProfileDTO struct {
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	StateCode      *string `json:"state_code,omitempty"`
	DistrictCode   *string `json:"district_code,omitempty"`
	Timezone       string  `json:"timezone"`
	VisibilityMode string  `json:"visibility_mode"`
	CreatedAt      string  `json:"created_at"`
}

// CompleteOnboardingResponse represents the payload returned after onboarding
type CompleteOnboardingResponse struct {
	Profile         UserProfileDTO     `json:"profile"`
	Privacy         PrivacySettingsDTO `json:"privacy"`
	DailyPlansCount int64              `json:"daily_plans_count"`
}

// DailyActionPlanDTO represents a daily action plan in API responses
type DailyActionPlanDTO struct {
	ID                  string `json:"id"`
	CampaignID          string `json:"campaign_id"`
	TargetActionsPerDay int    `json:"target_actions_per_day"`
	ActiveWeekdaysMask  string `json:"active_weekdays_mask"`
	IsActive            bool   `json:"is_active"`
}

// UpdateProfileRequest represents a request to change profile fields
type UpdateProfileRequest struct {
	Username       *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	StateCode      *string `json:"state_code,omitempty" validate:"omitempty,len=2"`
	DistrictCode   *string `json:"district_code,omitempty" validate:"omitempty,max=10"`
	Timezone       *string `json:"timezone,omitempty" validate:"omitempty,max=100"`
	VisibilityMode *string `json:"visibility_mode,omitempty" validate:"omitempty,oneof=private community public_opt_in"`
}

// PrivacySettingsDTO represents privacy settings in API responses
type PrivacySettingsDTO struct {
	UserID                string `json:"user_id"`
	ShowOnLeaderboard     bool   `json:"show_on_leaderboard"`
	ShowStreaks           bool   `json:"show_streaks"`
	ShowBadges            bool   `json:"show_badges"`
	AllowShareableCard    bool   `json:"allow_shareable_card"`
	AllowReferralTracking bool   `json:"allow_referral_tracking"`
}

// UpdatePrivacySettingsRequest represents a request to change privacy settings
type UpdatePrivacySettingsRequest struct {
	ShowOnLeaderboard     *bool `json:"show_on_leaderboard,omitempty"`
	ShowStreaks           *bool `json:"show_streaks,omitempty"`
	ShowBadges            *bool `json:"show_badges,omitempty"`
	AllowShareableCard    *bool `json:"allow_shareable_card,omitempty"`
	AllowReferralTracking *bool `json:"allow_referral_tracking,omitempty"`
}
