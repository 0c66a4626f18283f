package businessflow

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/app/dto"
	"github.com/megaphone-app/megaphone/models"
	"github.com/megaphone-app/megaphone/repository"
	"github.com/megaphone-app/megaphone/utils"
)

// ReferralFlow handles issuing, claiming, and measuring invite codes
type ReferralFlow interface {
	CreateLink(ctx context.Context, userID uuid.UUID, req *dto.CreateReferralLinkRequest) (*dto.ReferralDTO, error)
	Claim(ctx context.Context, userID uuid.UUID, req *dto.ClaimReferralRequest) error
	ListMine(ctx context.Context, userID uuid.UUID, skip, limit int) (*dto.ListReferralsResponse, error)
	Assists(ctx context.Context, userID uuid.UUID, window string) (*dto.ReferralAssistsResponse, error)
}

// ReferralFlowImpl implements the referral business flow
type ReferralFlowImpl struct {
	referralRepo repository.ReferralRepository
	privacyRepo  repository.UserPrivacySettingsRepository
	logRepo      repository.UserActionLogRepository
	frontendHost string
	db           *gorm.DB
}

// NewReferralFlow creates a new referral flow instance
func NewReferralFlow(
	referralRepo repository.ReferralRepository,
	privacyRepo repository.UserPrivacySettingsRepository,
	logRepo repository.UserActionLogRepository,
	frontendHost string,
	db *gorm.DB,
) ReferralFlow {
	return &ReferralFlowImpl{
		referralRepo: referralRepo,
		privacyRepo:  privacyRepo,
		logRepo:      logRepo,
		frontendHost: frontendHost,
		db:           db,
	}
}

func (f *ReferralFlowImpl) inviteURL(code string) string {
	return fmt.Sprintf("%s/signup?ref=%s", f.frontendHost, code)
}

func generateReferralCode() (string, error) {
	buf := make([]byte, utils.ReferralCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate referral code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateLink mints a new invite code for the caller. A user with referral
// tracking disabled cannot issue codes; a missing privacy row is permissive.
func (f *ReferralFlowImpl) CreateLink(ctx context.Context, userID uuid.UUID, req *dto.CreateReferralLinkRequest) (*dto.ReferralDTO, error) {
	privacy, err := f.privacyRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PRIVACY_FETCH_FAILED", "Failed to fetch privacy settings", err)
	}
	if privacy != nil && !utils.IsTrue(privacy.AllowReferralTracking) {
		return nil, NewBusinessError("REFERRAL_TRACKING_DISABLED", "Referral tracking is disabled in your privacy settings", ErrReferralTrackingDisabled)
	}

	code, err := generateReferralCode()
	if err != nil {
		return nil, NewBusinessError("CODE_GENERATION_FAILED", "Failed to generate referral code", err)
	}

	channel := models.ReferralChannelLink
	if req.Channel != "" {
		channel = models.ReferralChannel(req.Channel)
	}

	referral := &models.Referral{
		ReferrerUserID: userID,
		Code:           code,
		Channel:        channel,
		CreatedAt:      utils.UTCNow(),
	}
	if err := f.referralRepo.Save(ctx, referral); err != nil {
		return nil, NewBusinessError("REFERRAL_SAVE_FAILED", "Failed to save referral", err)
	}

	out := ToReferralDTO(referral, f.inviteURL(referral.Code))
	return &out, nil
}

// Claim permanently binds an invite code to the caller. Each user may claim
// at most one referral ever, and each code may be claimed at most once; the
// unique index on referred_user_id backs both pre-checks under races.
func (f *ReferralFlowImpl) Claim(ctx context.Context, userID uuid.UUID, req *dto.ClaimReferralRequest) error {
	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		referral, err := f.referralRepo.ByCode(txCtx, req.Code)
		if err != nil {
			return NewBusinessError("REFERRAL_FETCH_FAILED", "Failed to fetch referral", err)
		}
		if referral == nil {
			return NewBusinessError("REFERRAL_CODE_NOT_FOUND", "Referral code not found", ErrReferralCodeNotFound)
		}

		if referral.ReferrerUserID == userID {
			return NewBusinessError("SELF_REFERRAL", "You cannot claim your own referral code", ErrSelfReferral)
		}

		existing, err := f.referralRepo.ByReferredUser(txCtx, userID)
		if err != nil {
			return NewBusinessError("REFERRAL_FETCH_FAILED", "Failed to fetch existing claim", err)
		}
		if existing != nil {
			return NewBusinessError("REFERRAL_ALREADY_CLAIMED_BY_USER", "User has already claimed a referral", ErrReferralAlreadyClaimedByUser)
		}

		if referral.ReferredUserID != nil {
			return NewBusinessError("REFERRAL_CODE_ALREADY_CLAIMED", "Referral code was already claimed", ErrReferralCodeAlreadyClaimed)
		}

		referral.ReferredUserID = &userID
		if err := f.referralRepo.Update(txCtx, referral); err != nil {
			return NewBusinessError("REFERRAL_SAVE_FAILED", "Failed to claim referral", err)
		}

		return nil
	})
}

// ListMine returns a page of the caller's issued referrals, newest first
func (f *ReferralFlowImpl) ListMine(ctx context.Context, userID uuid.UUID, skip, limit int) (*dto.ListReferralsResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}

	referrals, err := f.referralRepo.ListByReferrer(ctx, userID, limit, skip)
	if err != nil {
		return nil, NewBusinessError("REFERRAL_LIST_FAILED", "Failed to list referrals", err)
	}

	count, err := f.referralRepo.CountByReferrer(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("REFERRAL_COUNT_FAILED", "Failed to count referrals", err)
	}

	resp := &dto.ListReferralsResponse{
		Data:  make([]dto.ReferralDTO, 0, len(referrals)),
		Count: count,
	}
	for _, r := range referrals {
		resp.Data = append(resp.Data, ToReferralDTO(r, f.inviteURL(r.Code)))
	}

	return resp, nil
}

// Assists counts users recruited in the window (by referral creation time)
// and the actions those users logged in the same window
func (f *ReferralFlowImpl) Assists(ctx context.Context, userID uuid.UUID, window string) (*dto.ReferralAssistsResponse, error) {
	if window == "" {
		window = utils.DefaultStatsWindow
	}

	days, err := ResolveWindow(window)
	if err != nil {
		return nil, err
	}
	since := WindowStart(days)

	referredIDs, err := f.referralRepo.ClaimedUserIDsSince(ctx, userID, since)
	if err != nil {
		return nil, NewBusinessError("REFERRAL_FETCH_FAILED", "Failed to fetch claimed referrals", err)
	}

	resp := &dto.ReferralAssistsResponse{WindowDays: days}
	if len(referredIDs) == 0 {
		return resp, nil
	}

	assisted, err := f.logRepo.CountByUsersSince(ctx, referredIDs, since)
	if err != nil {
		return nil, NewBusinessError("LOG_COUNT_FAILED", "Failed to count assisted actions", err)
	}

	resp.RecruitedUsers = int64(len(referredIDs))
	resp.AssistedActions = assisted

	return resp, nil
}
