package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// ActionTemplateRepositoryImpl implements ActionTemplateRepository interface
type ActionTemplateRepositoryImpl struct {
	*BaseRepository[models.ActionTemplate, models.ActionTemplateFilter]
}

// NewActionTemplateRepository creates a new action template repository
func NewActionTemplateRepository(db *gorm.DB) ActionTemplateRepository {
	return &ActionTemplateRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ActionTemplate, models.ActionTemplateFilter](db),
	}
}

// ListByCampaign retrieves the templates attached to a campaign
func (r *ActionTemplateRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*models.ActionTemplate, error) {
	db := r.getDB(ctx)

	query := db.Where("campaign_id = ?", campaignID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var templates []*models.ActionTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates by campaign: %w", err)
	}

	return templates, nil
}

// CountByCampaign returns the number of templates attached to a campaign
func (r *ActionTemplateRepositoryImpl) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.ActionTemplate{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count templates by campaign: %w", err)
	}

	return count, nil
}

// LatestByCampaign retrieves the most recently created templates for a campaign
func (r *ActionTemplateRepositoryImpl) LatestByCampaign(ctx context.Context, campaignID uuid.UUID, limit int) ([]*models.ActionTemplate, error) {
	db := r.getDB(ctx)

	query := db.Where("campaign_id = ?", campaignID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var templates []*models.ActionTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list latest templates by campaign: %w", err)
	}

	return templates, nil
}
