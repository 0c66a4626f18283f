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

type campaignFlowFixture struct {
	flow         CampaignFlow
	campaignRepo *fakeCampaignRepo
	targetRepo   *fakeTargetRepo
	templateRepo *fakeTemplateRepo
}

func newCampaignFlowFixture() *campaignFlowFixture {
	f := &campaignFlowFixture{
		campaignRepo: newFakeCampaignRepo(),
		targetRepo:   newFakeTargetRepo(),
		templateRepo: newFakeTemplateRepo(),
	}
	f.flow = NewCampaignFlow(f.campaignRepo, f.targetRepo, f.templateRepo)
	return f
}

func (f *campaignFlowFixture) seedCampaign(t *testing.T, slug string, status models.CampaignStatus) *models.Campaign {
	t.Helper()
	campaign := &models.Campaign{
		Slug:        slug,
		Title:       "Protect Clean Water",
		Description: "Push back on the rollback of water protections",
		PolicyTopic: "environment",
		Status:      status,
	}
	require.NoError(t, f.campaignRepo.Save(context.Background(), campaign))
	return campaign
}

func TestListCampaigns(t *testing.T) {
	ctx := context.Background()

	f := newCampaignFlowFixture()
	f.seedCampaign(t, "clean-water", models.CampaignStatusActive)
	f.seedCampaign(t, "housing-now", models.CampaignStatusActive)
	f.seedCampaign(t, "old-drive", models.CampaignStatusArchived)

	t.Run("AllCampaigns", func(t *testing.T) {
		resp, err := f.flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Count)
		assert.Len(t, resp.Data, 3)
	})

	t.Run("FilteredByStatus", func(t *testing.T) {
		resp, err := f.flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{Status: "active"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Count)
		for _, c := range resp.Data {
			assert.Equal(t, "active", c.Status)
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		resp, err := f.flow.ListCampaigns(ctx, &dto.ListCampaignsRequest{Skip: 2, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(3), resp.Count)
	})
}

func TestGetCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing", func(t *testing.T) {
		f := newCampaignFlowFixture()
		campaign := f.seedCampaign(t, "clean-water", models.CampaignStatusActive)

		got, err := f.flow.GetCampaign(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, campaign.ID.String(), got.ID)
		assert.Equal(t, "clean-water", got.Slug)
		assert.Equal(t, "environment", got.PolicyTopic)
	})

	t.Run("Unknown", func(t *testing.T) {
		f := newCampaignFlowFixture()

		_, err := f.flow.GetCampaign(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})
}

func TestListTargets(t *testing.T) {
	ctx := context.Background()

	t.Run("TargetsForCampaign", func(t *testing.T) {
		f := newCampaignFlowFixture()
		campaign := f.seedCampaign(t, "clean-water", models.CampaignStatusActive)

		require.NoError(t, f.targetRepo.Save(ctx, &models.RepresentativeTarget{
			CampaignID: campaign.ID,
			OfficeType: models.OfficeTypeSenate,
			OfficeName: "Senator Smith",
			StateCode:  utils.ToPtr("TX"),
		}))
		require.NoError(t, f.targetRepo.Save(ctx, &models.RepresentativeTarget{
			CampaignID: campaign.ID,
			OfficeType: models.OfficeTypeHouse,
			OfficeName: "Representative Jones",
		}))

		resp, err := f.flow.ListTargets(ctx, campaign.ID, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Count)
		assert.Len(t, resp.Data, 2)
	})

	t.Run("UnknownCampaign", func(t *testing.T) {
		f := newCampaignFlowFixture()

		_, err := f.flow.ListTargets(ctx, uuid.New(), 0, 100)
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})
}

func TestListTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("TemplatesForCampaign", func(t *testing.T) {
		f := newCampaignFlowFixture()
		campaign := f.seedCampaign(t, "clean-water", models.CampaignStatusActive)

		require.NoError(t, f.templateRepo.Save(ctx, &models.ActionTemplate{
			CampaignID:   campaign.ID,
			ActionType:   models.ActionTypeEmail,
			Title:        "Email the committee",
			ScriptText:   "Dear committee members...",
			EmailSubject: utils.ToPtr("Vote no on the rollback"),
		}))

		resp, err := f.flow.ListTemplates(ctx, campaign.ID, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Count)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "email", resp.Data[0].ActionType)
		require.NotNil(t, resp.Data[0].EmailSubject)
	})

	t.Run("UnknownCampaign", func(t *testing.T) {
		f := newCampaignFlowFixture()

		_, err := f.flow.ListTemplates(ctx, uuid.New(), 0, 100)
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})
}
