package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// RepresentativeTargetRepositoryImpl implements RepresentativeTargetRepository interface
type RepresentativeTargetRepositoryImpl struct {
	*BaseRepository[models.RepresentativeTarget, models.RepresentativeTargetFilter]
}

// NewRepresentativeTargetRepository creates a new representative target repository
func NewRepresentativeTargetRepository(db *gorm.DB) RepresentativeTargetRepository {
	return &RepresentativeTargetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RepresentativeTarget, models.RepresentativeTargetFilter](db),
	}
}

// ListByCampaign retrieves the targets attached to a campaign
func (r *RepresentativeTargetRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*models.RepresentativeTarget, error) {
	db := r.getDB(ctx)

	query := db.Where("campaign_id = ?", campaignID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var targets []*models.RepresentativeTarget
	if err := query.Find(&targets).Error; err != nil {
		return nil, fmt.Errorf("failed to list targets by campaign: %w", err)
	}

	return targets, nil
}

// CountByCampaign returns the number of targets attached to a campaign
func (r *RepresentativeTargetRepositoryImpl) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.RepresentativeTarget{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count targets by campaign: %w", err)
	}

	return count, nil
}
