package businessflow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/models"
	"github.com/megaphone-app/megaphone/utils"
)

type onboardingFlowFixture struct {
	flow         OnboardingFlow
	profileRepo  *fakeProfileRepo
	privacyRepo  *fakePrivacyRepo
	planRepo     *fakePlanRepo
	campaignRepo *fakeCampaignRepo
}

func newOnboardingFlowFixture() *onboardingFlowFixture {
	f := &onboardingFlowFixture{
		profileRepo:  newFakeProfileRepo(),
		privacyRepo:  newFakePrivacyRepo(),
		planRepo:     newFakePlanRepo(),
		campaignRepo: newFakeCampaignRepo(),
	}
	f.flow = NewOnboardingFlow(f.profileRepo, f.privacyRepo, f.planRepo, f.campaignRepo, nil)
	return f
}

func (f *onboardingFlowFixture) seedActiveCampaign(t *testing.T, slug string) *models.Campaign {
	t.Helper()
	campaign := &models.Campaign{
		Slug:        slug,
		Title:       "Fair Housing Now",
		Description: "Support tenant protections",
		PolicyTopic: "housing",
		Status:      models.CampaignStatusActive,
	}
	require.NoError(t, f.campaignRepo.Save(context.Background(), campaign))
	return campaign
}

func TestCompleteOnboarding(t *testing.T) {
	ctx := context.Background()

	t.Run("FullOnboarding", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		c1 := f.seedActiveCampaign(t, "fair-housing")
		c2 := f.seedActiveCampaign(t, "clean-water")

		resp, err := f.flow.CompleteOnboarding(ctx, userID, &dto.CompleteOnboardingRequest{
			Username:            utils.ToPtr("civic_sam"),
			StateCode:           utils.ToPtr("TX"),
			Timezone:            utils.ToPtr("America/Chicago"),
			VisibilityMode:      utils.ToPtr("community"),
			CampaignIDs:         []string{c1.ID.String(), c2.ID.String()},
			TargetActionsPerDay: 2,
			ActiveWeekdaysMask:  "1111100",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "civic_sam", resp.Profile.Username)
		assert.Equal(t, "community", resp.Profile.VisibilityMode)
		assert.Equal(t, int64(2), resp.DailyPlansCount)

		// Privacy row is created with defaults
		assert.False(t, resp.Privacy.ShowOnLeaderboard)
		assert.True(t, resp.Privacy.ShowBadges)
		assert.True(t, resp.Privacy.AllowReferralTracking)

		plans, err := f.planRepo.ListActiveByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		for _, plan := range plans {
			assert.Equal(t, 2, plan.TargetActionsPerDay)
			assert.Equal(t, "1111100", plan.ActiveWeekdaysMask)
		}
	})

	t.Run("UsernameRequiredForNewProfile", func(t *testing.T) {
		f := newOnboardingFlowFixture()

		_, err := f.flow.CompleteOnboarding(ctx, uuid.New(), &dto.CompleteOnboardingRequest{})
		require.Error(t, err)
		assert.True(t, IsUsernameRequired(err))
	})

	t.Run("UsernameTakenByAnotherUser", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		taken := uuid.New()
		require.NoError(t, f.profileRepo.Save(ctx, &models.UserProfile{UserID: taken, Username: "civic_sam"}))

		_, err := f.flow.CompleteOnboarding(ctx, uuid.New(), &dto.CompleteOnboardingRequest{
			Username: utils.ToPtr("civic_sam"),
		})
		require.Error(t, err)
		assert.True(t, IsUsernameTaken(err))
	})

	t.Run("ReusingOwnUsernameIsAllowed", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		require.NoError(t, f.profileRepo.Save(ctx, &models.UserProfile{UserID: userID, Username: "civic_sam"}))

		resp, err := f.flow.CompleteOnboarding(ctx, userID, &dto.CompleteOnboardingRequest{
			Username: utils.ToPtr("civic_sam"),
		})
		require.NoError(t, err)
		assert.Equal(t, "civic_sam", resp.Profile.Username)
	})

	t.Run("UnknownCampaignRejectsWholeRequest", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		c1 := f.seedActiveCampaign(t, "fair-housing")

		_, err := f.flow.CompleteOnboarding(ctx, uuid.New(), &dto.CompleteOnboardingRequest{
			Username:    utils.ToPtr("civic_sam"),
			CampaignIDs: []string{c1.ID.String(), uuid.New().String()},
		})
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})

	t.Run("InactiveCampaignRejected", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		paused := &models.Campaign{
			Slug: "paused", Title: "Paused", Description: "d", PolicyTopic: "t",
			Status: models.CampaignStatusPaused,
		}
		require.NoError(t, f.campaignRepo.Save(ctx, paused))

		_, err := f.flow.CompleteOnboarding(ctx, uuid.New(), &dto.CompleteOnboardingRequest{
			Username:    utils.ToPtr("civic_sam"),
			CampaignIDs: []string{paused.ID.String()},
		})
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})

	t.Run("ReplacesPriorPlans", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		old := f.seedActiveCampaign(t, "old-campaign")
		fresh := f.seedActiveCampaign(t, "fresh-campaign")

		_, err := f.flow.CompleteOnboarding(ctx, userID, &dto.CompleteOnboardingRequest{
			Username:    utils.ToPtr("civic_sam"),
			CampaignIDs: []string{old.ID.String()},
		})
		require.NoError(t, err)

		resp, err := f.flow.CompleteOnboarding(ctx, userID, &dto.CompleteOnboardingRequest{
			CampaignIDs: []string{fresh.ID.String()},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.DailyPlansCount)

		plans, err := f.planRepo.ListActiveByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, fresh.ID, plans[0].CampaignID)
	})

	t.Run("DefaultsForPlanFields", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		campaign := f.seedActiveCampaign(t, "fair-housing")

		_, err := f.flow.CompleteOnboarding(ctx, userID, &dto.CompleteOnboardingRequest{
			Username:    utils.ToPtr("civic_sam"),
			CampaignIDs: []string{campaign.ID.String()},
		})
		require.NoError(t, err)

		plans, err := f.planRepo.ListActiveByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, 1, plans[0].TargetActionsPerDay)
		assert.Equal(t, DefaultWeekdaysMask, plans[0].ActiveWeekdaysMask)
	})

	t.Run("DuplicateCampaignIDsCollapse", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		campaign := f.seedActiveCampaign(t, "fair-housing")

		resp, err := f.flow.CompleteOnboarding(ctx, userID, &dto.CompleteOnboardingRequest{
			Username:    utils.ToPtr("civic_sam"),
			CampaignIDs: []string{campaign.ID.String(), campaign.ID.String()},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.DailyPlansCount)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("ExistingProfile", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		require.NoError(t, f.profileRepo.Save(ctx, &models.UserProfile{
			UserID:   userID,
			Username: "civic_sam",
		}))

		profile, err := f.flow.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "civic_sam", profile.Username)
		assert.Equal(t, "private", profile.VisibilityMode)
	})

	t.Run("MissingProfile", func(t *testing.T) {
		f := newOnboardingFlowFixture()

		_, err := f.flow.GetProfile(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, IsProfileNotFound(err))
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()
		require.NoError(t, f.profileRepo.Save(ctx, &models.UserProfile{
			UserID:    userID,
			Username:  "civic_sam",
			StateCode: utils.ToPtr("TX"),
		}))

		profile, err := f.flow.UpdateProfile(ctx, userID, &dto.UpdateProfileRequest{
			VisibilityMode: utils.ToPtr("public_opt_in"),
		})
		require.NoError(t, err)
		assert.Equal(t, "civic_sam", profile.Username)
		assert.Equal(t, "public_opt_in", profile.VisibilityMode)
		require.NotNil(t, profile.StateCode)
		assert.Equal(t, "TX", *profile.StateCode)
	})

	t.Run("CreatesProfileWhenAbsent", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()

		profile, err := f.flow.UpdateProfile(ctx, userID, &dto.UpdateProfileRequest{
			Username: utils.ToPtr("new_user"),
		})
		require.NoError(t, err)
		assert.Equal(t, "new_user", profile.Username)
	})
}

func TestPrivacySettings(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstReadCreatesDefaults", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()

		settings, err := f.flow.GetPrivacySettings(ctx, userID)
		require.NoError(t, err)
		assert.False(t, settings.ShowOnLeaderboard)
		assert.False(t, settings.ShowStreaks)
		assert.True(t, settings.ShowBadges)
		assert.False(t, settings.AllowShareableCard)
		assert.True(t, settings.AllowReferralTracking)

		stored, err := f.privacyRepo.ByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, stored)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		f := newOnboardingFlowFixture()
		userID := uuid.New()

		settings, err := f.flow.UpdatePrivacySettings(ctx, userID, &dto.UpdatePrivacySettingsRequest{
			AllowShareableCard: utils.ToPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, settings.AllowShareableCard)
		assert.True(t, settings.ShowBadges)

		settings, err = f.flow.UpdatePrivacySettings(ctx, userID, &dto.UpdatePrivacySettingsRequest{
			ShowBadges: utils.ToPtr(false),
		})
		require.NoError(t, err)
		assert.True(t, settings.AllowShareableCard)
		assert.False(t, settings.ShowBadges)
	})
}
