package businessflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/models"
	"github.com/megaphone-app/megaphone/repository"
)

// CampaignFlow handles read access to campaigns and their targets and templates
type CampaignFlow interface {
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error)
	GetCampaign(ctx context.Context, campaignID uuid.UUID) (*dto.CampaignDTO, error)
	ListTargets(ctx context.Context, campaignID uuid.UUID, skip, limit int) (*dto.CampaignTargetsResponse, error)
	ListTemplates(ctx context.Context, campaignID uuid.UUID, skip, limit int) (*dto.CampaignTemplatesResponse, error)
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	targetRepo   repository.RepresentativeTargetRepository
	templateRepo repository.ActionTemplateRepository
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	targetRepo repository.RepresentativeTargetRepository,
	templateRepo repository.ActionTemplateRepository,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		targetRepo:   targetRepo,
		templateRepo: templateRepo,
	}
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return skip, limit
}

// ListCampaigns returns a page of campaigns, optionally filtered by status
func (f *CampaignFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error) {
	skip, limit := normalizePage(req.Skip, req.Limit)

	var status *models.CampaignStatus
	if req.Status != "" {
		s := models.CampaignStatus(req.Status)
		status = &s
	}

	campaigns, err := f.campaignRepo.List(ctx, status, limit, skip)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	count, err := f.campaignRepo.Count(ctx, status)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaigns", err)
	}

	resp := &dto.ListCampaignsResponse{
		Data:  make([]dto.CampaignDTO, 0, len(campaigns)),
		Count: count,
	}
	for _, c := range campaigns {
		resp.Data = append(resp.Data, ToCampaignDTO(c))
	}

	return resp, nil
}

// GetCampaign returns a single campaign by ID
func (f *CampaignFlowImpl) GetCampaign(ctx context.Context, campaignID uuid.UUID) (*dto.CampaignDTO, error) {
	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	out := ToCampaignDTO(campaign)
	return &out, nil
}

// ListTargets returns the representative targets attached to a campaign
func (f *CampaignFlowImpl) ListTargets(ctx context.Context, campaignID uuid.UUID, skip, limit int) (*dto.CampaignTargetsResponse, error) {
	skip, limit = normalizePage(skip, limit)

	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	targets, err := f.targetRepo.ListByCampaign(ctx, campaignID, limit, skip)
	if err != nil {
		return nil, NewBusinessError("TARGET_LIST_FAILED", "Failed to list targets", err)
	}

	count, err := f.targetRepo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("TARGET_COUNT_FAILED", "Failed to count targets", err)
	}

	resp := &dto.CampaignTargetsResponse{
		Data:  make([]dto.RepresentativeTargetDTO, 0, len(targets)),
		Count: count,
	}
	for _, t := range targets {
		resp.Data = append(resp.Data, ToRepresentativeTargetDTO(t))
	}

	return resp, nil
}

// ListTemplates returns the action templates attached to a campaign
func (f *CampaignFlowImpl) ListTemplates(ctx context.Context, campaignID uuid.UUID, skip, limit int) (*dto.CampaignTemplatesResponse, error) {
	skip, limit = normalizePage(skip, limit)

	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	templates, err := f.templateRepo.ListByCampaign(ctx, campaignID, limit, skip)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_LIST_FAILED", "Failed to list templates", err)
	}

	count, err := f.templateRepo.CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("TEMPLATE_COUNT_FAILED", "Failed to count templates", err)
	}

	resp := &dto.CampaignTemplatesResponse{
		Data:  make([]dto.ActionTemplateDTO, 0, len(templates)),
		Count: count,
	}
	for _, t := range templates {
		resp.Data = append(resp.Data, ToActionTemplateDTO(t))
	}

	return resp, nil
}
