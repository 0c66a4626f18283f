package dto

// CampaignDTO represents a campaign in API responses
type CampaignDTO struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PolicyTopic string `json:"policy_topic"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// RepresentativeTargetDTO represents a representative target in API responses
type RepresentativeTargetDTO struct {
	ID           string  `json:"id"`
	CampaignID   string  `json:"campaign_id"`
	OfficeType   string  `json:"office_type"`
	OfficeName   string  `json:"office_name"`
	StateCode    *string `json:"state_code,omitempty"`
	DistrictCode *string `json:"district_code,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// ActionTemplateDTO represents an action template in API responses
type ActionTemplateDTO struct {
	ID               string  `json:"id"`
	CampaignID       string  `json:"campaign_id"`
	TargetID         *string `json:"target_id,omitempty"`
	ActionType       string  `json:"action_type"`
	Title            string  `json:"title"`
	ScriptText       string  `json:"script_text"`
	EmailSubject     *string `json:"email_subject,omitempty"`
	EmailBody        *string `json:"email_body,omitempty"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	CreatedAt        string  `json:"created_at"`
}

// ListCampaignsRequest represents query parameters for listing campaigns
type ListCampaignsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=draft active paused archived"`
	Skip   int    `query:"skip" validate:"omitempty,min=0"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ListCampaignsResponse represents the paginated campaign listing payload
type ListCampaignsResponse struct {
	Data  []CampaignDTO `json:"data"`
	Count int64         `json:"count"`
}

// CampaignTargetsResponse represents the targets attached to a campaign
type CampaignTargetsResponse struct {
	Data  []RepresentativeTargetDTO `json:"data"`
	Count int64                     `json:"count"`
}

// CampaignTemplatesResponse represents the templates attached to a campaign
type CampaignTemplatesResponse struct {
	Data  []ActionTemplateDTO `json:"data"`
	Count int64               `json:"count"`
}
