package businessflow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/models"
)

// In-memory repository fakes used by the flow tests. They mirror the
// semantics of the GORM-backed implementations closely enough for the
// business rules under test: nil result for a miss, newest-first ordering,
// and generated IDs on save.

type fakeCampaignRepo struct {
	campaigns map[uuid.UUID]*models.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[uuid.UUID]*models.Campaign)}
}

func (r *fakeCampaignRepo) ByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return r.campaigns[id], nil
}

func (r *fakeCampaignRepo) Save(ctx context.Context, entity *models.Campaign) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}
	r.campaigns[entity.ID] = entity
	return nil
}

func (r *fakeCampaignRepo) BySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	for _, c := range r.campaigns {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCampaignRepo) List(ctx context.Context, status *models.CampaignStatus, limit, offset int) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range r.campaigns {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCampaignRepo) Count(ctx context.Context, status *models.CampaignStatus) (int64, error) {
	var count int64
	for _, c := range r.campaigns {
		if status != nil && c.Status != *status {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeCampaignRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, id := range ids {
		if c, ok := r.campaigns[id]; ok && c.Status == models.CampaignStatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeTargetRepo struct {
	targets map[uuid.UUID]*models.RepresentativeTarget
}

func newFakeTargetRepo() *fakeTargetRepo {
	return &fakeTargetRepo{targets: make(map[uuid.UUID]*models.RepresentativeTarget)}
}

func (r *fakeTargetRepo) ByID(ctx context.Context, id uuid.UUID) (*models.RepresentativeTarget, error) {
	return r.targets[id], nil
}

func (r *fakeTargetRepo) Save(ctx context.Context, entity *models.RepresentativeTarget) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	r.targets[entity.ID] = entity
	return nil
}

func (r *fakeTargetRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*models.RepresentativeTarget, error) {
	var out []*models.RepresentativeTarget
	for _, t := range r.targets {
		if t.CampaignID == campaignID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTargetRepo) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	targets, _ := r.ListByCampaign(ctx, campaignID, 0, 0)
	return int64(len(targets)), nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*models.ActionTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*models.ActionTemplate)}
}

func (r *fakeTemplateRepo) ByID(ctx context.Context, id uuid.UUID) (*models.ActionTemplate, error) {
	return r.templates[id], nil
}

func (r *fakeTemplateRepo) Save(ctx context.Context, entity *models.ActionTemplate) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}
	r.templates[entity.ID] = entity
	return nil
}

func (r *fakeTemplateRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*models.ActionTemplate, error) {
	var out []*models.ActionTemplate
	for _, t := range r.templates {
		if t.CampaignID == campaignID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTemplateRepo) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	for _, t := range r.templates {
		if t.CampaignID == campaignID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTemplateRepo) LatestByCampaign(ctx context.Context, campaignID uuid.UUID, limit int) ([]*models.ActionTemplate, error) {
	return r.ListByCampaign(ctx, campaignID, limit, 0)
}

type fakePlanRepo struct {
	plans map[uuid.UUID]*models.DailyActionPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uuid.UUID]*models.DailyActionPlan)}
}

func (r *fakePlanRepo) ByID(ctx context.Context, id uuid.UUID) (*models.DailyActionPlan, error) {
	return r.plans[id], nil
}

func (r *fakePlanRepo) Save(ctx context.Context, entity *models.DailyActionPlan) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	r.plans[entity.ID] = entity
	return nil
}

func (r *fakePlanRepo) SaveBatch(ctx context.Context, plans []*models.DailyActionPlan) error {
	for _, p := range plans {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePlanRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*models.DailyActionPlan, error) {
	var out []*models.DailyActionPlan
	for _, p := range r.plans {
		if p.UserID == userID && p.IsActive != nil && *p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	plans, _ := r.ListActiveByUser(ctx, userID)
	return int64(len(plans)), nil
}

func (r *fakePlanRepo) DeactivateAllByUser(ctx context.Context, userID uuid.UUID) error {
	inactive := false
	for _, p := range r.plans {
		if p.UserID == userID {
			p.IsActive = &inactive
		}
	}
	return nil
}

type fakeLogRepo struct {
	logs []*models.UserActionLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{}
}

func (r *fakeLogRepo) ByID(ctx context.Context, id uuid.UUID) (*models.UserActionLog, error) {
	for _, l := range r.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLogRepo) Save(ctx context.Context, entity *models.UserActionLog) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}
	r.logs = append(r.logs, entity)
	return nil
}

func (r *fakeLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.UserActionLog, error) {
	var out []*models.UserActionLog
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeLogRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range r.logs {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLogRepo) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.UserActionLog, error) {
	var out []*models.UserActionLog
	for _, l := range r.logs {
		if l.UserID == userID && l.CreatedAt.After(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) ListSince(ctx context.Context, since time.Time) ([]*models.UserActionLog, error) {
	var out []*models.UserActionLog
	for _, l := range r.logs {
		if l.CreatedAt.After(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) ListByCampaignSince(ctx context.Context, campaignID uuid.UUID, since time.Time) ([]*models.UserActionLog, error) {
	var out []*models.UserActionLog
	for _, l := range r.logs {
		if l.CampaignID == campaignID && l.CreatedAt.After(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) ListByTargetSince(ctx context.Context, targetID uuid.UUID, since time.Time) ([]*models.UserActionLog, error) {
	var out []*models.UserActionLog
	for _, l := range r.logs {
		if l.TargetID != nil && *l.TargetID == targetID && l.CreatedAt.After(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) CountByUsersSince(ctx context.Context, userIDs []uuid.UUID, since time.Time) (int64, error) {
	members := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		members[id] = struct{}{}
	}
	var count int64
	for _, l := range r.logs {
		if _, ok := members[l.UserID]; ok && l.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.UserProfile)}
}

func (r *fakeProfileRepo) ByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return r.profiles[userID], nil
}

func (r *fakeProfileRepo) ByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	for _, p := range r.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Save(ctx context.Context, profile *models.UserProfile) error {
	if profile.Timezone == "" {
		profile.Timezone = "America/Chicago"
	}
	if profile.VisibilityMode == "" {
		profile.VisibilityMode = models.VisibilityModePrivate
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *models.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

type fakePrivacyRepo struct {
	settings map[uuid.UUID]*models.UserPrivacySettings
}

func newFakePrivacyRepo() *fakePrivacyRepo {
	return &fakePrivacyRepo{settings: make(map[uuid.UUID]*models.UserPrivacySettings)}
}

func (r *fakePrivacyRepo) ByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPrivacySettings, error) {
	return r.settings[userID], nil
}

func (r *fakePrivacyRepo) Save(ctx context.Context, settings *models.UserPrivacySettings) error {
	if err := settings.BeforeCreate(nil); err != nil {
		return err
	}
	r.settings[settings.UserID] = settings
	return nil
}

func (r *fakePrivacyRepo) Update(ctx context.Context, settings *models.UserPrivacySettings) error {
	r.settings[settings.UserID] = settings
	return nil
}

type fakeReferralRepo struct {
	referrals map[uuid.UUID]*models.Referral
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{referrals: make(map[uuid.UUID]*models.Referral)}
}

func (r *fakeReferralRepo) ByID(ctx context.Context, id uuid.UUID) (*models.Referral, error) {
	return r.referrals[id], nil
}

func (r *fakeReferralRepo) Save(ctx context.Context, entity *models.Referral) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if entity.Channel == "" {
		entity.Channel = models.ReferralChannelLink
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}
	r.referrals[entity.ID] = entity
	return nil
}

func (r *fakeReferralRepo) ByCode(ctx context.Context, code string) (*models.Referral, error) {
	for _, ref := range r.referrals {
		if ref.Code == code {
			return ref, nil
		}
	}
	return nil, nil
}

func (r *fakeReferralRepo) ByReferredUser(ctx context.Context, referredUserID uuid.UUID) (*models.Referral, error) {
	for _, ref := range r.referrals {
		if ref.ReferredUserID != nil && *ref.ReferredUserID == referredUserID {
			return ref, nil
		}
	}
	return nil, nil
}

func (r *fakeReferralRepo) ListByReferrer(ctx context.Context, referrerUserID uuid.UUID, limit, offset int) ([]*models.Referral, error) {
	var out []*models.Referral
	for _, ref := range r.referrals {
		if ref.ReferrerUserID == referrerUserID {
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReferralRepo) CountByReferrer(ctx context.Context, referrerUserID uuid.UUID) (int64, error) {
	var count int64
	for _, ref := range r.referrals {
		if ref.ReferrerUserID == referrerUserID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReferralRepo) ClaimedUserIDsSince(ctx context.Context, referrerUserID uuid.UUID, since time.Time) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, ref := range r.referrals {
		if ref.ReferrerUserID == referrerUserID && ref.ReferredUserID != nil && ref.CreatedAt.After(since) {
			out = append(out, *ref.ReferredUserID)
		}
	}
	return out, nil
}

func (r *fakeReferralRepo) Update(ctx context.Context, referral *models.Referral) error {
	r.referrals[referral.ID] = referral
	return nil
}
