package businessflow

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/models"
	"github.com/megaphone-app/megaphone/repository"
	"github.com/megaphone-app/megaphone/utils"
)

// DefaultWeekdaysMask schedules a plan on every day of the week
const DefaultWeekdaysMask = "1111111"

// OnboardingFlow handles onboarding completion and the profile and privacy surfaces
type OnboardingFlow interface {
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, req *dto.CompleteOnboardingRequest) (*dto.CompleteOnboardingResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileDTO, error)
	GetPrivacySettings(ctx context.Context, userID uuid.UUID) (*dto.PrivacySettingsDTO, error)
	UpdatePrivacySettings(ctx context.Context, userID uuid.UUID, req *dto.UpdatePrivacySettingsRequest) (*dto.PrivacySettingsDTO, error)
}

// OnboardingFlowImpl implements the onboarding business flow
type OnboardingFlowImpl struct {
	profileRepo  repository.UserProfileRepository
	privacyRepo  repository.UserPrivacySettingsRepository
	planRepo     repository.DailyActionPlanRepository
	campaignRepo repository.CampaignRepository
	db           *gorm.DB
}

// NewOnboardingFlow creates a new onboarding flow instance
func NewOnboardingFlow(
	profileRepo repository.UserProfileRepository,
	privacyRepo repository.UserPrivacySettingsRepository,
	planRepo repository.DailyActionPlanRepository,
	campaignRepo repository.CampaignRepository,
	db *gorm.DB,
) OnboardingFlow {
	return &OnboardingFlowImpl{
		profileRepo:  profileRepo,
		privacyRepo:  privacyRepo,
		planRepo:     planRepo,
		campaignRepo: campaignRepo,
		db:           db,
	}
}

// upsertProfile creates or updates the caller's profile. Username uniqueness
// is pre-checked here; the unique index is the authoritative guard.
func (f *OnboardingFlowImpl) upsertProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := f.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch profile", err)
	}

	if req.Username != nil {
		existing, err := f.profileRepo.ByUsername(ctx, *req.Username)
		if err != nil {
			return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to check username", err)
		}
		if existing != nil && existing.UserID != userID {
			return nil, NewBusinessError("USERNAME_TAKEN", "Username is already taken", ErrUsernameTaken)
		}
	}

	if profile == nil {
		if req.Username == nil {
			return nil, NewBusinessError("USERNAME_REQUIRED", "Username is required", ErrUsernameRequired)
		}

		profile = &models.UserProfile{
			UserID:       userID,
			Username:     *req.Username,
			StateCode:    req.StateCode,
			DistrictCode: req.DistrictCode,
		}
		if req.Timezone != nil {
			profile.Timezone = *req.Timezone
		}
		if req.VisibilityMode != nil {
			profile.VisibilityMode = models.VisibilityMode(*req.VisibilityMode)
		}

		if err := f.profileRepo.Save(ctx, profile); err != nil {
			return nil, NewBusinessError("PROFILE_SAVE_FAILED", "Failed to save profile", err)
		}
		return profile, nil
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.StateCode != nil {
		profile.StateCode = req.StateCode
	}
	if req.DistrictCode != nil {
		profile.DistrictCode = req.DistrictCode
	}
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
	}
	if req.VisibilityMode != nil {
		profile.VisibilityMode = models.VisibilityMode(*req.VisibilityMode)
	}

	if err := f.profileRepo.Update(ctx, profile); err != nil {
		return nil, NewBusinessError("PROFILE_SAVE_FAILED", "Failed to update profile", err)
	}
	return profile, nil
}

// ensurePrivacySettings creates the default privacy row when absent and
// applies any supplied changes
func (f *OnboardingFlowImpl) ensurePrivacySettings(ctx context.Context, userID uuid.UUID, req *dto.UpdatePrivacySettingsRequest) (*models.UserPrivacySettings, error) {
	settings, err := f.privacyRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PRIVACY_FETCH_FAILED", "Failed to fetch privacy settings", err)
	}

	created := false
	if settings == nil {
		settings = &models.UserPrivacySettings{UserID: userID}
		created = true
	}

	if req != nil {
		if req.ShowOnLeaderboard != nil {
			settings.ShowOnLeaderboard = req.ShowOnLeaderboard
		}
		if req.ShowStreaks != nil {
			settings.ShowStreaks = req.ShowStreaks
		}
		if req.ShowBadges != nil {
			settings.ShowBadges = req.ShowBadges
		}
		if req.AllowShareableCard != nil {
			settings.AllowShareableCard = req.AllowShareableCard
		}
		if req.AllowReferralTracking != nil {
			settings.AllowReferralTracking = req.AllowReferralTracking
		}
	}

	if created {
		if err := f.privacyRepo.Save(ctx, settings); err != nil {
			return nil, NewBusinessError("PRIVACY_SAVE_FAILED", "Failed to save privacy settings", err)
		}
	} else if req != nil {
		if err := f.privacyRepo.Update(ctx, settings); err != nil {
			return nil, NewBusinessError("PRIVACY_SAVE_FAILED", "Failed to update privacy settings", err)
		}
	}

	return settings, nil
}

// CompleteOnboarding upserts the profile, ensures privacy settings exist, and
// replaces the caller's daily plans with ones for the selected campaigns.
// Plan replacement is full replace semantics: every prior plan is deactivated
// first.
func (f *OnboardingFlowImpl) CompleteOnboarding(ctx context.Context, userID uuid.UUID, req *dto.CompleteOnboardingRequest) (*dto.CompleteOnboardingResponse, error) {
	var profile *models.UserProfile
	var privacy *models.UserPrivacySettings

	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		profile, err = f.upsertProfile(txCtx, userID, &dto.UpdateProfileRequest{
			Username:       req.Username,
			StateCode:      req.StateCode,
			DistrictCode:   req.DistrictCode,
			Timezone:       req.Timezone,
			VisibilityMode: req.VisibilityMode,
		})
		if err != nil {
			return err
		}

		privacy, err = f.ensurePrivacySettings(txCtx, userID, nil)
		if err != nil {
			return err
		}

		if len(req.CampaignIDs) == 0 {
			return nil
		}

		unique := make(map[uuid.UUID]struct{}, len(req.CampaignIDs))
		ids := make([]uuid.UUID, 0, len(req.CampaignIDs))
		for _, raw := range req.CampaignIDs {
			id, err := utils.ParseUUID(raw)
			if err != nil {
				return NewBusinessError("CAMPAIGN_NOT_FOUND", "One or more selected campaigns were not found", ErrCampaignNotFound)
			}
			if _, ok := unique[id]; !ok {
				unique[id] = struct{}{}
				ids = append(ids, id)
			}
		}

		campaigns, err := f.campaignRepo.ListActiveByIDs(txCtx, ids)
		if err != nil {
			return NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaigns", err)
		}
		if len(campaigns) != len(ids) {
			return NewBusinessError("CAMPAIGN_NOT_FOUND", "One or more selected campaigns were not found", ErrCampaignNotFound)
		}

		if err := f.planRepo.DeactivateAllByUser(txCtx, userID); err != nil {
			return NewBusinessError("PLAN_DEACTIVATE_FAILED", "Failed to deactivate prior plans", err)
		}

		target := req.TargetActionsPerDay
		if target < 1 {
			target = 1
		}
		mask := req.ActiveWeekdaysMask
		if mask == "" {
			mask = DefaultWeekdaysMask
		}

		plans := make([]*models.DailyActionPlan, 0, len(campaigns))
		for _, campaign := range campaigns {
			plans = append(plans, &models.DailyActionPlan{
				UserID:              userID,
				CampaignID:          campaign.ID,
				TargetActionsPerDay: target,
				ActiveWeekdaysMask:  mask,
				IsActive:            utils.ToPtr(true),
			})
		}
		if err := f.planRepo.SaveBatch(txCtx, plans); err != nil {
			return NewBusinessError("PLAN_SAVE_FAILED", "Failed to save daily action plans", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	count, err := f.planRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PLAN_COUNT_FAILED", "Failed to count daily action plans", err)
	}

	return &dto.CompleteOnboardingResponse{
		Profile:         ToUserProfileDTO(profile),
		Privacy:         ToPrivacySettingsDTO(privacy),
		DailyPlansCount: count,
	}, nil
}

// GetProfile returns the caller's profile
func (f *OnboardingFlowImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileDTO, error) {
	profile, err := f.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch profile", err)
	}
	if profile == nil {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Profile not found", ErrProfileNotFound)
	}

	out := ToUserProfileDTO(profile)
	return &out, nil
}

// UpdateProfile creates or updates the caller's profile
func (f *OnboardingFlowImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileDTO, error) {
	var profile *models.UserProfile
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		profile, err = f.upsertProfile(txCtx, userID, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := ToUserProfileDTO(profile)
	return &out, nil
}

// GetPrivacySettings returns the caller's privacy settings, creating the
// default row on first read
func (f *OnboardingFlowImpl) GetPrivacySettings(ctx context.Context, userID uuid.UUID) (*dto.PrivacySettingsDTO, error) {
	settings, err := f.ensurePrivacySettings(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	out := ToPrivacySettingsDTO(settings)
	return &out, nil
}

// UpdatePrivacySettings creates or updates the caller's privacy settings
func (f *OnboardingFlowImpl) UpdatePrivacySettings(ctx context.Context, userID uuid.UUID, req *dto.UpdatePrivacySettingsRequest) (*dto.PrivacySettingsDTO, error) {
	var settings *models.UserPrivacySettings
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		settings, err = f.ensurePrivacySettings(txCtx, userID, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := ToPrivacySettingsDTO(settings)
	return &out, nil
}
