package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megaphone-app/megaphone/models"
)

// CampaignRepositoryImpl implements CampaignRepository interface
type CampaignRepositoryImpl struct {
	*BaseRepository[models.Campaign, models.CampaignFilter]
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &CampaignRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Campaign, models.CampaignFilter](db),
	}
}

// BySlug retrieves a campaign by its URL slug
func (r *CampaignRepositoryImpl) BySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	db := r.getDB(ctx)

	var campaign models.Campaign
	err := db.Where("slug = ?", slug).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find campaign by slug: %w", err)
	}

	return &campaign, nil
}

// List retrieves campaigns ordered by creation time, optionally filtered by status
func (r *CampaignRepositoryImpl) List(ctx context.Context, status *models.CampaignStatus, limit, offset int) ([]*models.Campaign, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Campaign{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var campaigns []*models.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

// Count returns the number of campaigns, optionally filtered by status
func (r *CampaignRepositoryImpl) Count(ctx context.Context, status *models.CampaignStatus) (int64, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.Campaign{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return count, nil
}

// ListActiveByIDs retrieves the active campaigns among the given IDs
func (r *CampaignRepositoryImpl) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Campaign, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	db := r.getDB(ctx)

	var campaigns []*models.Campaign
	err := db.Where("id IN ?", ids).
		Where("status = ?", models.CampaignStatusActive).
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active campaigns by IDs: %w", err)
	}

	return campaigns, nil
}
