package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/trade"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormBuyOrderDetailRepository implements trade.BuyOrderDetailRepository using GORM
type GormBuyOrderDetailRepository struct {
	db *gorm.DB
}

// NewGormBuyOrderDetailRepository creates a new GormBuyOrderDetailRepository
func NewGormBuyOrderDetailRepository(db *gorm.DB) *GormBuyOrderDetailRepository {
	return &GormBuyOrderDetailRepository{db: db}
}

// FindByExternalIDs returns details whose external order id is in externalIDs
func (r *GormBuyOrderDetailRepository) FindByExternalIDs(ctx context.Context, externalIDs []string) ([]*trade.BuyOrderDetail, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var detailModels []models.BuyOrderDetailModel
	if err := r.db.WithContext(ctx).
		Where("order_external_id IN ?", externalIDs).
		Find(&detailModels).Error; err != nil {
		return nil, err
	}
	details := make([]*trade.BuyOrderDetail, len(detailModels))
	for i := range detailModels {
		details[i] = detailModels[i].ToDomain()
	}
	return details, nil
}

// BulkCreate inserts new details, ignoring external ids that already exist
func (r *GormBuyOrderDetailRepository) BulkCreate(ctx context.Context, details []*trade.BuyOrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	detailModels := make([]*models.BuyOrderDetailModel, len(details))
	for i, d := range details {
		detailModels[i] = models.BuyOrderDetailModelFromDomain(d)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_external_id"}},
			DoNothing: true,
		}).
		CreateInBatches(detailModels, 100).Error
}

// BulkUpdateMutable overwrites only the status and tracking code of
// existing details in one statement keyed by the external order id.
// Amounts and dates are fixed at first ingestion.
func (r *GormBuyOrderDetailRepository) BulkUpdateMutable(ctx context.Context, details []*trade.BuyOrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	detailModels := make([]*models.BuyOrderDetailModel, len(details))
	for i, d := range details {
		detailModels[i] = models.BuyOrderDetailModelFromDomain(d)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status_id", "tracking_code", "updated_at"}),
		}).
		CreateInBatches(detailModels, 100).Error
}
