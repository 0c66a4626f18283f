package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/config"
	"github.com/megaphone-app/megaphone/models"
	"github.com/megaphone-app/megaphone/repository"
	"github.com/megaphone-app/megaphone/utils"
)

// Share card message variants. The privacy-safe variant never includes the
// caller's username.
const (
	shareCardMessageShareable = "Shareable card enabled. Personal details are limited to your opted-in username."
	shareCardMessagePrivate   = "Share card is privacy-safe only. Enable public opt-in visibility and shareable cards in settings to include your username."
)

// ImpactFlow handles windowed aggregate impact views
type ImpactFlow interface {
	PlatformImpact(ctx context.Context, window string) (*dto.ImpactStatsDTO, error)
	CampaignImpact(ctx context.Context, campaignID uuid.UUID, window string) (*dto.ImpactStatsDTO, error)
	RepresentativeImpact(ctx context.Context, targetID uuid.UUID, window string) (*dto.ImpactStatsDTO, error)
	MyShareCard(ctx context.Context, userID uuid.UUID, window string) (*dto.ShareCardResponse, error)
	ExportCampaignImpact(ctx context.Context, campaignID uuid.UUID, window string) (string, []byte, error)
}

// ImpactFlowImpl implements the impact business flow
type ImpactFlowImpl struct {
	logRepo      repository.UserActionLogRepository
	campaignRepo repository.CampaignRepository
	targetRepo   repository.RepresentativeTargetRepository
	profileRepo  repository.UserProfileRepository
	privacyRepo  repository.UserPrivacySettingsRepository
	rc           *redis.Client
	cacheConfig  *config.CacheConfig
}

// NewImpactFlow creates a new impact flow instance
func NewImpactFlow(
	logRepo repository.UserActionLogRepository,
	campaignRepo repository.CampaignRepository,
	targetRepo repository.RepresentativeTargetRepository,
	profileRepo repository.UserProfileRepository,
	privacyRepo repository.UserPrivacySettingsRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) ImpactFlow {
	return &ImpactFlowImpl{
		logRepo:      logRepo,
		campaignRepo: campaignRepo,
		targetRepo:   targetRepo,
		profileRepo:  profileRepo,
		privacyRepo:  privacyRepo,
		rc:           rc,
		cacheConfig:  cacheConfig,
	}
}

// PlatformImpact aggregates every log entry in the window. The result is
// cached per window day count since it is identical for all callers.
func (f *ImpactFlowImpl) PlatformImpact(ctx context.Context, window string) (*dto.ImpactStatsDTO, error) {
	if window == "" {
		window = utils.DefaultStatsWindow
	}

	days, err := ResolveWindow(window)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if f.rc != nil && f.cacheConfig != nil {
		cacheKey = redisKey(*f.cacheConfig, utils.PlatformImpactCacheKeyPrefix+strconv.Itoa(days))
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached dto.ImpactStatsDTO
			if err := json.Unmarshal(bs, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	logs, err := f.logRepo.ListSince(ctx, WindowStart(days))
	if err != nil {
		return nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	stats := BuildImpactStats(logs, days)

	if cacheKey != "" {
		if bs, err := json.Marshal(stats); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, utils.PlatformImpactCacheTTL).Err()
		}
	}

	return &stats, nil
}

// CampaignImpact aggregates a campaign's log entries in the window
func (f *ImpactFlowImpl) CampaignImpact(ctx context.Context, campaignID uuid.UUID, window string) (*dto.ImpactStatsDTO, error) {
	if window == "" {
		window = utils.DefaultImpactWindow
	}

	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	days, err := ResolveWindow(window)
	if err != nil {
		return nil, err
	}

	logs, err := f.logRepo.ListByCampaignSince(ctx, campaignID, WindowStart(days))
	if err != nil {
		return nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	stats := BuildImpactStats(logs, days)
	id := campaign.ID.String()
	stats.CampaignID = &id
	stats.CampaignTitle = &campaign.Title

	return &stats, nil
}

// RepresentativeImpact aggregates a target's log entries in the window. The
// owning campaign is attached when it still exists.
func (f *ImpactFlowImpl) RepresentativeImpact(ctx context.Context, targetID uuid.UUID, window string) (*dto.ImpactStatsDTO, error) {
	if window == "" {
		window = utils.DefaultImpactWindow
	}

	target, err := f.targetRepo.ByID(ctx, targetID)
	if err != nil {
		return nil, NewBusinessError("TARGET_FETCH_FAILED", "Failed to fetch target", err)
	}
	if target == nil {
		return nil, NewBusinessError("TARGET_NOT_FOUND", "Representative target not found", ErrTargetNotFound)
	}

	days, err := ResolveWindow(window)
	if err != nil {
		return nil, err
	}

	logs, err := f.logRepo.ListByTargetSince(ctx, targetID, WindowStart(days))
	if err != nil {
		return nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	stats := BuildImpactStats(logs, days)

	campaign, err := f.campaignRepo.ByID(ctx, target.CampaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign != nil {
		id := campaign.ID.String()
		stats.CampaignID = &id
		stats.CampaignTitle = &campaign.Title
	}

	return &stats, nil
}

// MyShareCard builds the privacy-gated public summary of the caller's impact
func (f *ImpactFlowImpl) MyShareCard(ctx context.Context, userID uuid.UUID, window string) (*dto.ShareCardResponse, error) {
	if window == "" {
		window = utils.DefaultStatsWindow
	}

	profile, err := f.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch profile", err)
	}
	if profile == nil {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Profile not found", ErrProfileNotFound)
	}

	privacy, err := f.privacyRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PRIVACY_FETCH_FAILED", "Failed to fetch privacy settings", err)
	}
	allowShareableCard := privacy != nil && utils.IsTrue(privacy.AllowShareableCard)

	days, err := ResolveWindow(window)
	if err != nil {
		return nil, err
	}

	logs, err := f.logRepo.ListByUserSince(ctx, userID, WindowStart(days))
	if err != nil {
		return nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	stats := BuildUserStats(logs, days)

	shareable := allowShareableCard && profile.VisibilityMode == models.VisibilityModePublicOptIn

	resp := &dto.ShareCardResponse{
		WindowDays:       days,
		Shareable:        shareable,
		VisibilityMode:   profile.VisibilityMode.String(),
		PeriodLabel:      fmt.Sprintf("last_%d_days", days),
		TotalActions:     stats.TotalActions,
		CompletedActions: stats.CompletedActions,
		Calls:            stats.Calls,
		Emails:           stats.Emails,
		Message:          shareCardMessagePrivate,
	}
	if shareable {
		resp.DisplayName = &profile.Username
		resp.Message = shareCardMessageShareable
	}

	return resp, nil
}

// ExportCampaignImpact renders a campaign's windowed log entries as an XLSX
// workbook for offline analysis
func (f *ImpactFlowImpl) ExportCampaignImpact(ctx context.Context, campaignID uuid.UUID, window string) (string, []byte, error) {
	if window == "" {
		window = utils.DefaultImpactWindow
	}

	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return "", nil, NewBusinessError("CAMPAIGN_FETCH_FAILED", "Failed to fetch campaign", err)
	}
	if campaign == nil {
		return "", nil, NewBusinessError("CAMPAIGN_NOT_FOUND", "Campaign not found", ErrCampaignNotFound)
	}

	days, err := ResolveWindow(window)
	if err != nil {
		return "", nil, err
	}

	logs, err := f.logRepo.ListByCampaignSince(ctx, campaignID, WindowStart(days))
	if err != nil {
		return "", nil, NewBusinessError("LOG_FETCH_FAILED", "Failed to fetch action logs", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"id", "user_id", "target_id", "template_id", "action_type", "status", "outcome", "confidence_score", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, log := range logs {
		targetID := ""
		if log.TargetID != nil {
			targetID = log.TargetID.String()
		}
		templateID := ""
		if log.TemplateID != nil {
			templateID = log.TemplateID.String()
		}
		confidence := ""
		if log.ConfidenceScore != nil {
			confidence = strconv.Itoa(*log.ConfidenceScore)
		}
		record := []string{
			log.ID.String(),
			log.UserID.String(),
			targetID,
			templateID,
			log.ActionType.String(),
			log.Status.String(),
			log.Outcome.String(),
			confidence,
			log.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("campaign_%s_impact_%dd.xlsx", campaign.Slug, days)
	return filename, buf.Bytes(), nil
}
