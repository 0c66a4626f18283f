// Package businessflow contains the core business logic and use cases for civic action workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Window errors
	ErrInvalidWindowFormat = errors.New("window must be like 7d or 30d")
	ErrWindowOutOfRange    = errors.New("window days must be between 1 and 365")

	// Campaign-related errors
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignInactive = errors.New("campaign is not active")

	// Target and template errors
	ErrTargetNotFound           = errors.New("representative target not found")
	ErrTargetCampaignMismatch   = errors.New("target does not belong to campaign")
	ErrTemplateNotFound         = errors.New("action template not found")
	ErrTemplateCampaignMismatch = errors.New("action template does not belong to campaign")

	// Profile and onboarding errors
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTaken    = errors.New("username is already taken")

	// Referral errors
	ErrReferralTrackingDisabled     = errors.New("referral tracking is disabled")
	ErrReferralCodeNotFound         = errors.New("referral code not found")
	ErrSelfReferral                 = errors.New("cannot claim own referral code")
	ErrReferralAlreadyClaimedByUser = errors.New("user has already claimed a referral")
	ErrReferralCodeAlreadyClaimed   = errors.New("referral code was already claimed")

	ErrCacheNotAvailable = errors.New("cache not available")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvalidWindowFormat(err error) bool {
	return errors.Is(err, ErrInvalidWindowFormat)
}

func IsWindowOutOfRange(err error) bool {
	return errors.Is(err, ErrWindowOutOfRange)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignInactive(err error) bool {
	return errors.Is(err, ErrCampaignInactive)
}

func IsTargetNotFound(err error) bool {
	return errors.Is(err, ErrTargetNotFound)
}

func IsTargetCampaignMismatch(err error) bool {
	return errors.Is(err, ErrTargetCampaignMismatch)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

func IsTemplateCampaignMismatch(err error) bool {
	return errors.Is(err, ErrTemplateCampaignMismatch)
}

func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound)
}

func IsUsernameRequired(err error) bool {
	return errors.Is(err, ErrUsernameRequired)
}

func IsUsernameTaken(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

func IsReferralTrackingDisabled(err error) bool {
	return errors.Is(err, ErrReferralTrackingDisabled)
}

func IsReferralCodeNotFound(err error) bool {
	return errors.Is(err, ErrReferralCodeNotFound)
}

func IsSelfReferral(err error) bool {
	return errors.Is(err, ErrSelfReferral)
}

func IsReferralAlreadyClaimedByUser(err error) bool {
	return errors.Is(err, ErrReferralAlreadyClaimedByUser)
}

func IsReferralCodeAlreadyClaimed(err error) bool {
	return errors.Is(err, ErrReferralCodeAlreadyClaimed)
}
