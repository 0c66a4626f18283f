package dto

// CreateReferralLinkRequest represents a request to mint a new invite code
type CreateReferralLinkRequest struct {
	Channel string `json:"channel" validate:"omitempty,oneof=link qr social"`
}

// ReferralDTO represents a referral with its constructed invite URL
type ReferralDTO struct {
	ID             string  `json:"id"`
	ReferrerUserID string  `json:"referrer_user_id"`
	ReferredUserID *string `json:"referred_user_id,omitempty"`
	Code           string  `json:"code"`
	Channel        string  `json:"channel"`
	InviteURL      string  `json:"invite_url"`
	CreatedAt      string  `json:"created_at"`
}

// ClaimReferralRequest represents a request to claim an invite code
type ClaimReferralRequest struct {
	Code string `json:"code" validate:"required,min=1,max=64"`
}

// ListReferralsRequest represents query parameters for listing referrals
type ListReferralsRequest struct {
	Skip  int `query:"skip" validate:"omitempty,min=0"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ListReferralsResponse represents the paginated referral listing payload
type ListReferralsResponse struct {
	Data  []ReferralDTO `json:"data"`
	Count int64         `json:"count"`
}

// ReferralAssistsResponse represents windowed recruiting impact for a user
type ReferralAssistsResponse struct {
	WindowDays      int   `json:"window_days"`
	RecruitedUsers  int64 `json:"recruited_users"`
	AssistedActions int64 `json:"assisted_actions"`
}
