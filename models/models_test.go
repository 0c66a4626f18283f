package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megaphone-app/megaphone/utils"
)

func TestDailyActionPlanActiveOn(t *testing.T) {
	t.Run("MaskIsMondayIndexed", func(t *testing.T) {
		plan := &DailyActionPlan{ActiveWeekdaysMask: "1010101"}

		assert.True(t, plan.ActiveOn(0))  // Monday
		assert.False(t, plan.ActiveOn(1)) // Tuesday
		assert.True(t, plan.ActiveOn(2))
		assert.False(t, plan.ActiveOn(3))
		assert.True(t, plan.ActiveOn(4))
		assert.False(t, plan.ActiveOn(5))
		assert.True(t, plan.ActiveOn(6)) // Sunday
	})

	t.Run("EveryDay", func(t *testing.T) {
		plan := &DailyActionPlan{ActiveWeekdaysMask: "1111111"}
		for day := 0; day < 7; day++ {
			assert.True(t, plan.ActiveOn(day))
		}
	})

	t.Run("MalformedMaskIsNeverActive", func(t *testing.T) {
		for _, mask := range []string{"", "111", "11111111"} {
			plan := &DailyActionPlan{ActiveWeekdaysMask: mask}
			for day := 0; day < 7; day++ {
				assert.False(t, plan.ActiveOn(day), "mask %q day %d", mask, day)
			}
		}
	})

	t.Run("OutOfRangeWeekday", func(t *testing.T) {
		plan := &DailyActionPlan{ActiveWeekdaysMask: "1111111"}
		assert.False(t, plan.ActiveOn(-1))
		assert.False(t, plan.ActiveOn(7))
	})
}

func TestDailyActionPlanBeforeCreate(t *testing.T) {
	plan := &DailyActionPlan{
		UserID:             uuid.New(),
		CampaignID:         uuid.New(),
		ActiveWeekdaysMask: "1111111",
	}
	require.NoError(t, plan.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, plan.ID)
	assert.Equal(t, 1, plan.TargetActionsPerDay)
	require.NotNil(t, plan.IsActive)
	assert.True(t, *plan.IsActive)
	assert.False(t, plan.CreatedAt.IsZero())
}

func TestCampaignIsActionable(t *testing.T) {
	assert.True(t, (&Campaign{Status: CampaignStatusActive}).IsActionable())
	assert.False(t, (&Campaign{Status: CampaignStatusDraft}).IsActionable())
	assert.False(t, (&Campaign{Status: CampaignStatusPaused}).IsActionable())
	assert.False(t, (&Campaign{Status: CampaignStatusArchived}).IsActionable())
}

func TestReferralIsClaimed(t *testing.T) {
	referral := &Referral{ReferrerUserID: uuid.New(), Code: "abc123"}
	assert.False(t, referral.IsClaimed())

	referral.ReferredUserID = utils.ToPtr(uuid.New())
	assert.True(t, referral.IsClaimed())
}

func TestEnumValidation(t *testing.T) {
	t.Run("ActionType", func(t *testing.T) {
		for _, v := range []ActionType{ActionTypeCall, ActionTypeEmail, ActionTypeBoycott, ActionTypeEvent} {
			assert.True(t, v.Valid())
		}
		assert.False(t, ActionType("protest").Valid())
		assert.False(t, ActionType("").Valid())
	})

	t.Run("ActionLogStatus", func(t *testing.T) {
		assert.True(t, ActionLogStatusCompleted.Valid())
		assert.True(t, ActionLogStatusSkipped.Valid())
		assert.False(t, ActionLogStatus("pending").Valid())
	})

	t.Run("VisibilityMode", func(t *testing.T) {
		assert.True(t, VisibilityModePrivate.Valid())
		assert.True(t, VisibilityModeCommunity.Valid())
		assert.True(t, VisibilityModePublicOptIn.Valid())
		assert.False(t, VisibilityMode("public").Valid())
	})

	t.Run("CampaignStatus", func(t *testing.T) {
		assert.True(t, CampaignStatusActive.Valid())
		assert.False(t, CampaignStatus("live").Valid())
	})

	t.Run("ReferralChannel", func(t *testing.T) {
		assert.True(t, ReferralChannelLink.Valid())
		assert.True(t, ReferralChannelQR.Valid())
		assert.True(t, ReferralChannelSocial.Valid())
		assert.False(t, ReferralChannel("email").Valid())
	})
}

func TestUserPrivacySettingsDefaults(t *testing.T) {
	settings := &UserPrivacySettings{UserID: uuid.New()}
	require.NoError(t, settings.BeforeCreate(nil))

	assert.False(t, *settings.ShowOnLeaderboard)
	assert.False(t, *settings.ShowStreaks)
	assert.True(t, *settings.ShowBadges)
	assert.False(t, *settings.AllowShareableCard)
	assert.True(t, *settings.AllowReferralTracking)
}

func TestUserProfileDefaults(t *testing.T) {
	profile := &UserProfile{UserID: uuid.New(), Username: "civic_sam"}
	require.NoError(t, profile.BeforeCreate(nil))

	assert.Equal(t, "America/Chicago", profile.Timezone)
	assert.Equal(t, VisibilityModePrivate, profile.VisibilityMode)
}
