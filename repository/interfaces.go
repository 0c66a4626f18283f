package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// TxContextKey is the context key for database transactions
const TxContextKey contextKey = "tx"

// Repository defines the base interface for all repositories
type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) error
}

// AccountRepository defines operations on account records
type AccountRepository interface {
	Repository[models.Account, models.AccountFilter]
	ByEmail(ctx context.Context, email string) (*models.Account, error)
}

// CampaignRepository defines operations on campaign records
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	BySlug(ctx context.Context, slug string) (*models.Campaign, error)
	List(ctx context.Context, status *models.CampaignStatus, limit, offset int) ([]*models.Campaign, error)
	Count(ctx context.Context, status *models.CampaignStatus) (int64, error)
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Campaign, error)
}

// RepresentativeTargetRepository defines operations on representative target records
type RepresentativeTargetRepository interface {
	Repository[models.RepresentativeTarget, models.RepresentativeTargetFilter]
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*models.RepresentativeTarget, error)
	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
}

// ActionTemplateRepository defines operations on action template records
type ActionTemplateRepository interface {
	Repository[models.ActionTemplate, models.ActionTemplateFilter]
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*models.ActionTemplate, error)
	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
	LatestByCampaign(ctx context.Context, campaignID uuid.UUID, limit int) ([]*models.ActionTemplate, error)
}

// UserProfileRepository defines operations on user profile records
type UserProfileRepository interface {
	ByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	ByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	Save(ctx context.Context, profile *models.UserProfile) error
	Update(ctx context.Context, profile *models.UserProfile) error
}

// UserPrivacySettingsRepository defines operations on privacy settings records
type UserPrivacySettingsRepository interface {
	ByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPrivacySettings, error)
	Save(ctx context.Context, settings *models.UserPrivacySettings) error
	Update(ctx context.Context, settings *models.UserPrivacySettings) error
}

// DailyActionPlanRepository defines operations on daily action plan records
type DailyActionPlanRepository interface {
	Repository[models.DailyActionPlan, models.DailyActionPlanFilter]
	SaveBatch(ctx context.Context, plans []*models.DailyActionPlan) error
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*models.DailyActionPlan, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeactivateAllByUser(ctx context.Context, userID uuid.UUID) error
}

// UserActionLogRepository defines operations on the append-only action log
type UserActionLogRepository interface {
	Repository[models.UserActionLog, models.UserActionLogFilter]
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.UserActionLog, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.UserActionLog, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.UserActionLog, error)
	ListByCampaignSince(ctx context.Context, campaignID uuid.UUID, since time.Time) ([]*models.UserActionLog, error)
	ListByTargetSince(ctx context.Context, targetID uuid.UUID, since time.Time) ([]*models.UserActionLog, error)
	CountByUsersSince(ctx context.Context, userIDs []uuid.UUID, since time.Time) (int64, error)
}

// ReferralRepository defines operations on referral records
type ReferralRepository interface {
	Repository[models.Referral, models.ReferralFilter]
	ByCode(ctx context.Context, code string) (*models.Referral, error)
	ByReferredUser(ctx context.Context, referredUserID uuid.UUID) (*models.Referral, error)
	ListByReferrer(ctx context.Context, referrerUserID uuid.UUID, limit, offset int) ([]*models.Referral, error)
	CountByReferrer(ctx context.Context, referrerUserID uuid.UUID) (int64, error)
	ClaimedUserIDsSince(ctx context.Context, referrerUserID uuid.UUID, since time.Time) ([]uuid.UUID, error)
	Update(ctx context.Context, referral *models.Referral) error
}
