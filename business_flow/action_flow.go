package businessflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/models"
	"github.com/megaphone-app/megaphone/repository"
	"github.com/megaphone-app/megaphone/utils"
)

// ActionFlow handles the daily action feed and the action log
type ActionFlow interface {
	TodayActions(ctx context.Context, userID uuid.UUID) (*dto.TodayActionsResponse, error)
	LogAction(ctx context.Context, userID uuid.UUID, req *dto.LogActionRequest) (*dto.ActionLogDTO, error)
	ListMyActions(ctx context.Context, userID uuid.UUID, skip, limit int) (*dto.ListMyActionsResponse, error)
	MyStats(ctx context.Context, userID uuid.UUID, window string) (*dto.UserStatsDTO, error)
}

// ActionFlowImpl implements the action business flow
type ActionFlowImpl struct {
	planRepo     repository.DailyActionPlanRepository
	campaignRepo repository.CampaignRepository
	targetRepo   repository.RepresentativeTargetRepository
	templateRepo repository.ActionTemplateRepository
	logRepo      repository.UserActionLogRepository
}

// NewActionFlow creates a new action flow instance
func NewActionFlow(
	planRepo repository.DailyActionPlanRepository,
	campaignRepo repository.CampaignRepository,
	targetRepo repository.RepresentativeTargetRepository,
	templateRepo repository.ActionTemplateRepository,
	logRepo repository.UserActionLogRepository,
) ActionFlow {
	return &ActionFlowImpl{
		planRepo:     planRepo,
		campaignRepo: campaignRepo,
		targetRepo:   targetRepo,
		templateRepo: templateRepo,
		logRepo:      logRepo,
	}
}

// TodayActions builds the action feed for the current UTC weekday. Plans whose
// weekday mask is malformed or whose campaign no longer exists are skipped
// silently.
func (f *ActionFlowImpl) TodayActions(ctx context.Context, userID uuid.UUID) (*dto.TodayActionsResponse, error) {
	weekday := utils.UTCWeekdayIndex(utils.UTCNow())

	plans, err := f.planRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PLAN_FETCH_FAILED", "Failed to fetch daily action plans", err)
	}

	actions := []dto.TodayActionDTO{}
	for _, plan := range plans {
		if !plan.ActiveOn(weekday) {
			continue
		}

		campaign, err := f.campaignRepo.ByID(ctx, plan.CampaignID)
		if err != nil {
			return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
		}
		if campaign == nil {
			// Dangling plan reference, tolerate and move on
			continue
		}

		templates, err := f.templateRepo.LatestByCampaign(ctx, campaign.ID, plan.TargetActionsPerDay)
		if err != nil {
			return nil, NewBusinessError("TEMPLATE_FETCH_FAILED", "Failed to fetch action templates", err)
		}

		for _, tmpl := range templates {
			action := dto.TodayActionDTO{
				CampaignID:       campaign.ID.String(),
				CampaignTitle:    campaign.Title,
				TemplateID:       tmpl.ID.String(),
				ActionType:       tmpl.ActionType.String(),
				Title:            tmpl.Title,
				EstimatedMinutes: tmpl.EstimatedMinutes,
			}
			if tmpl.TargetID != nil {
				id := tmpl.TargetID.String()
				action.TargetID = &id
			}
			actions = append(actions, action)
		}
	}

	return &dto.TodayActionsResponse{Data: actions, Count: len(actions)}, nil
}

// LogAction validates referential consistency and appends one immutable log row
func (f *ActionFlowImpl) LogAction(ctx context.Context, userID uuid.UUID, req *dto.LogActionRequest) (*dto.ActionLogDTO, error) {
	campaignID, err := utils.ParseUUID(req.CampaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	var targetID *uuid.UUID
	if req.TargetID != nil {
		id, err := utils.ParseUUID(*req.TargetID)
		if err != nil {
			return nil, NewBusinessError("TARGET_NOT_FOUND", "Representative target not found", ErrTargetNotFound)
		}

		target, err := f.targetRepo.ByID(ctx, id)
		if err != nil {
			return nil, NewBusinessError("TARGET_FETCH_FAILED", "Failed to fetch target", err)
		}
		// Mismatch is only rejected when the target actually exists; a
		// missing target is tolerated and stored as supplied.
		if target != nil && target.CampaignID != campaignID {
			return nil, NewBusinessError("TARGET_CAMPAIGN_MISMATCH", "Target does not belong to campaign", ErrTargetCampaignMismatch)
		}
		targetID = &id
	}

	var templateID *uuid.UUID
	if req.TemplateID != nil {
		id, err := utils.ParseUUID(*req.TemplateID)
		if err != nil {
			return nil, NewBusinessError("TEMPLATE_NOT_FOUND", "Action template not found", ErrTemplateNotFound)
		}

		template, err := f.templateRepo.ByID(ctx, id)
		if err != nil {
			return nil, NewBusinessError("TEMPLATE_FETCH_FAILED", "Failed to fetch action template", err)
		}
		if template == nil {
			return nil, NewBusinessError("TEMPLATE_NOT_FOUND", "Action template not found", ErrTemplateNotFound)
		}
		if template.CampaignID != campaignID {
			return nil, NewBusinessError("TEMPLATE_CAMPAIGN_MISMATCH", "Action template does not belong to campaign", ErrTemplateCampaignMismatch)
		}
		templateID = &id
	}

	outcome := models.ActionOutcomeUnknown
	if req.Outcome != nil {
		outcome = models.ActionOutcome(*req.Outcome)
	}

	log := &models.UserActionLog{
		UserID:          userID,
		CampaignID:      campaignID,
		TargetID:        targetID,
		TemplateID:      templateID,
		ActionType:      models.ActionType(req.ActionType),
		Status:          models.ActionLogStatus(req.Status),
		Outcome:         outcome,
		ConfidenceScore: req.ConfidenceScore,
		CreatedAt:       utils.UTCNow(),
	}

	if err := f.logRepo.Save(ctx, log); err != nil {
		return nil, NewBusinessError("LOG_SAVE_FAILED", "Failed to save action log", err)
	}

	out := ToActionLogDTO(log)
	return &out, nil
}

// ListMyActions returns a page of the caller's own log entries, newest first
func (f *ActionFlowImpl) ListMyActions(ctx context.Context, userID uuid.UUID, skip, limit int) (*dto.ListMyActionsResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}

	logs, err := f.logRepo.ListByUser(ctx, userID, limit, skip)
	if err != nil {
		return nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	count, err := f.logRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("LOG_COUNT_FAILED", "Failed to count action logs", err)
	}

	resp := &dto.ListMyActionsResponse{
		Data:  make([]dto.ActionLogDTO, 0, len(logs)),
		Count: count,
	}
	for _, log := range logs {
		resp.Data = append(resp.Data, ToActionLogDTO(log))
	}

	return resp, nil
}

// MyStats aggregates the caller's own log entries over a lookback window
func (f *ActionFlowImpl) MyStats(ctx context.Context, userID uuid.UUID, window string) (*dto.UserStatsDTO, error) {
	if window == "" {
		window = utils.DefaultStatsWindow
	}

	days, err := ResolveWindow(window)
	if err != nil {
		return nil, err
	}

	logs, err := f.logRepo.ListByUserSince(ctx, userID, WindowStart(days))
	if err != nil {
		return nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	stats := BuildUserStats(logs, days)
	return &stats, nil
}
