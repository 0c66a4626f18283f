// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/config"
	"github.com/megaphone-app/megaphone/models"
)

func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

// ToCampaignDTO converts a campaign model to its API representation
func ToCampaignDTO(c *models.Campaign) dto.CampaignDTO {
	return dto.CampaignDTO{
		ID:          c.ID.String(),
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		PolicyTopic: c.PolicyTopic,
		Status:      c.Status.String(),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

// ToRepresentativeTargetDTO converts a target model to its API representation
func ToRepresentativeTargetDTO(t *models.RepresentativeTarget) dto.RepresentativeTargetDTO {
	out := dto.RepresentativeTargetDTO{
		ID:           t.ID.String(),
		CampaignID:   t.CampaignID.String(),
		OfficeType:   t.OfficeType.String(),
		OfficeName:   t.OfficeName,
		StateCode:    t.StateCode,
		DistrictCode: t.DistrictCode,
		ContactPhone: t.ContactPhone,
		ContactEmail: t.ContactEmail,
	}
	if t.IsActive != nil {
		out.IsActive = *t.IsActive
	}
	return out
}

// ToActionTemplateDTO converts a template model to its API representation
func ToActionTemplateDTO(t *models.ActionTemplate) dto.ActionTemplateDTO {
	out := dto.ActionTemplateDTO{
		ID:               t.ID.String(),
		CampaignID:       t.CampaignID.String(),
		ActionType:       t.ActionType.String(),
		Title:            t.Title,
		ScriptText:       t.ScriptText,
		EmailSubject:     t.EmailSubject,
		EmailBody:        t.EmailBody,
		EstimatedMinutes: t.EstimatedMinutes,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
	if t.TargetID != nil {
		id := t.TargetID.String()
		out.TargetID = &id
	}
	return out
}

// ToActionLogDTO converts a log model to its API representation
func ToActionLogDTO(l *models.UserActionLog) dto.ActionLogDTO {
	out := dto.ActionLogDTO{
		ID:              l.ID.String(),
		UserID:          l.UserID.String(),
		CampaignID:      l.CampaignID.String(),
		ActionType:      l.ActionType.String(),
		Status:          l.Status.String(),
		Outcome:         l.Outcome.String(),
		ConfidenceScore: l.ConfidenceScore,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.TargetID != nil {
		id := l.TargetID.String()
		out.TargetID = &id
	}
	if l.TemplateID != nil {
		id := l.TemplateID.String()
		out.TemplateID = &id
	}
	return out
}

// ToUserProfileDTO converts a profile model to its API representation
func ToUserProfileDTO(p *models.UserProfile) dto.UserProfileDTO {
	return dto.UserProfileDTO{
		UserID:         p.UserID.String(),
		Username:       p.Username,
		StateCode:      p.StateCode,
		DistrictCode:   p.DistrictCode,
		Timezone:       p.Timezone,
		VisibilityMode: p.VisibilityMode.String(),
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

// ToPrivacySettingsDTO converts a privacy settings model to its API representation
func ToPrivacySettingsDTO(s *models.UserPrivacySettings) dto.PrivacySettingsDTO {
	out := dto.PrivacySettingsDTO{
		UserID: s.UserID.String(),
	}
	if s.ShowOnLeaderboard != nil {
		out.ShowOnLeaderboard = *s.ShowOnLeaderboard
	}
	if s.ShowStreaks != nil {
		out.ShowStreaks = *s.ShowStreaks
	}
	if s.ShowBadges != nil {
		out.ShowBadges = *s.ShowBadges
	}
	if s.AllowShareableCard != nil {
		out.AllowShareableCard = *s.AllowShareableCard
	}
	if s.AllowReferralTracking != nil {
		out.AllowReferralTracking = *s.AllowReferralTracking
	}
	return out
}

// ToDailyActionPlanDTO converts a plan model to its API representation
func ToDailyActionPlanDTO(p *models.DailyActionPlan) dto.DailyActionPlanDTO {
	out := dto.DailyActionPlanDTO{
		ID:                  p.ID.String(),
		CampaignID:          p.CampaignID.String(),
		TargetActionsPerDay: p.TargetActionsPerDay,
		ActiveWeekdaysMask:  p.ActiveWeekdaysMask,
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	return out
}

// ToReferralDTO converts a referral model to its API representation, attaching
// the invite URL built from the configured frontend host
func ToReferralDTO(r *models.Referral, inviteURL string) dto.ReferralDTO {
	out := dto.ReferralDTO{
		ID:             r.ID.String(),
		ReferrerUserID: r.ReferrerUserID.String(),
		Code:           r.Code,
		Channel:        r.Channel.String(),
		InviteURL:      inviteURL,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.ReferredUserID != nil {
		id := r.ReferredUserID.String()
		out.ReferredUserID = &id
	}
	return out
}
