package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/trade"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormBuyOrderRepository implements trade.BuyOrderRepository using GORM
type GormBuyOrderRepository struct {
	db *gorm.DB
}

// NewGormBuyOrderRepository creates a new GormBuyOrderRepository
func NewGormBuyOrderRepository(db *gorm.DB) *GormBuyOrderRepository {
	return &GormBuyOrderRepository{db: db}
}

// FindByOrderNumbers returns buy orders whose order number is in orderNumbers
func (r *GormBuyOrderRepository) FindByOrderNumbers(ctx context.Context, orderNumbers []string) ([]*trade.BuyOrder, error) {
	if len(orderNumbers) == 0 {
		return nil, nil
	}
	var orderModels []models.BuyOrderModel
	if err := r.db.WithContext(ctx).
		Where("order_number IN ?", orderNumbers).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]*trade.BuyOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// BulkCreate inserts buy orders, ignoring order numbers that already exist
func (r *GormBuyOrderRepository) BulkCreate(ctx context.Context, orders []*trade.BuyOrder) error {
	if len(orders) == 0 {
		return nil
	}
	orderModels := make([]*models.BuyOrderModel, len(orders))
	for i, o := range orders {
		orderModels[i] = models.BuyOrderModelFromDomain(o)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_number"}},
			DoNothing: true,
		}).
		CreateInBatches(orderModels, 100).Error
}
