package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/trade"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormPaymentTypeRepository implements trade.PaymentTypeRepository using GORM
type GormPaymentTypeRepository struct {
	db *gorm.DB
}

// NewGormPaymentTypeRepository creates a new GormPaymentTypeRepository
func NewGormPaymentTypeRepository(db *gorm.DB) *GormPaymentTypeRepository {
	return &GormPaymentTypeRepository{db: db}
}

// FindByNames returns payment types whose name is in names
func (r *GormPaymentTypeRepository) FindByNames(ctx context.Context, names []string) ([]*trade.PaymentType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var typeModels []models.PaymentTypeModel
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&typeModels).Error; err != nil {
		return nil, err
	}
	types := make([]*trade.PaymentType, len(typeModels))
	for i := range typeModels {
		types[i] = typeModels[i].ToDomain()
	}
	return types, nil
}

// BulkCreate inserts new payment types, ignoring names that already exist
func (r *GormPaymentTypeRepository) BulkCreate(ctx context.Context, types []*trade.PaymentType) error {
	if len(types) == 0 {
		return nil
	}
	typeModels := make([]*models.PaymentTypeModel, len(types))
	for i, p := range types {
		typeModels[i] = models.PaymentTypeModelFromDomain(p)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		CreateInBatches(typeModels, 100).Error
}

// GormStatusRepository implements trade.StatusRepository using GORM
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GormStatusRepository
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// FindByNames returns statuses whose name is in names
func (r *GormStatusRepository) FindByNames(ctx context.Context, names []string) ([]*trade.Status, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var statusModels []models.StatusModel
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&statusModels).Error; err != nil {
		return nil, err
	}
	statuses := make([]*trade.Status, len(statusModels))
	for i := range statusModels {
		statuses[i] = statusModels[i].ToDomain()
	}
	return statuses, nil
}

// BulkCreate inserts new statuses, ignoring names that already exist
func (r *GormStatusRepository) BulkCreate(ctx context.Context, statuses []*trade.Status) error {
	if len(statuses) == 0 {
		return nil
	}
	statusModels := make([]*models.StatusModel, len(statuses))
	for i, s := range statuses {
		statusModels[i] = models.StatusModelFromDomain(s)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		CreateInBatches(statusModels, 100).Error
}
