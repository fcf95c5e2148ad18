package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/shipping"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormEcsBuyOrderRepository implements shipping.EcsBuyOrderRepository using GORM
type GormEcsBuyOrderRepository struct {
	db *gorm.DB
}

// NewGormEcsBuyOrderRepository creates a new GormEcsBuyOrderRepository
func NewGormEcsBuyOrderRepository(db *gorm.DB) *GormEcsBuyOrderRepository {
	return &GormEcsBuyOrderRepository{db: db}
}

// FindByEcsOrderIDs returns carrier orders whose ecs order id is in ecsOrderIDs
func (r *GormEcsBuyOrderRepository) FindByEcsOrderIDs(ctx context.Context, ecsOrderIDs []string) ([]*shipping.EcsBuyOrder, error) {
	if len(ecsOrderIDs) == 0 {
		return nil, nil
	}
	var orderModels []models.EcsBuyOrderModel
	if err := r.db.WithContext(ctx).
		Where("ecs_order_id IN ?", ecsOrderIDs).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]*shipping.EcsBuyOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// BulkUpsert creates or overwrites carrier orders keyed by ecs order id.
// All carrier-side fields are replaced on conflict; the created_at stamp
// of the first sighting survives.
func (r *GormEcsBuyOrderRepository) BulkUpsert(ctx context.Context, orders []*shipping.EcsBuyOrder) error {
	if len(orders) == 0 {
		return nil
	}
	orderModels := make([]*models.EcsBuyOrderModel, len(orders))
	for i, o := range orders {
		orderModels[i] = models.EcsBuyOrderModelFromDomain(o)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ecs_order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"buy_order_id",
				"company_id",
				"ecs_order_number",
				"payment_date",
				"coupon",
				"deadline_days",
				"carrier",
				"recipient_name",
				"recipient_zip_code",
				"recipient_city",
				"recipient_state",
				"ecs_delivery_date",
				"updated_at",
			}),
		}).
		CreateInBatches(orderModels, 100).Error
}
