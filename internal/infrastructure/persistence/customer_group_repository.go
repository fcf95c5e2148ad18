package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/partner"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormCustomerGroupRepository implements partner.CustomerGroupRepository using GORM
type GormCustomerGroupRepository struct {
	db *gorm.DB
}

// NewGormCustomerGroupRepository creates a new GormCustomerGroupRepository
func NewGormCustomerGroupRepository(db *gorm.DB) *GormCustomerGroupRepository {
	return &GormCustomerGroupRepository{db: db}
}

// FindByNames returns groups whose name is in names
func (r *GormCustomerGroupRepository) FindByNames(ctx context.Context, names []string) ([]*partner.CustomerGroup, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var groupModels []models.CustomerGroupModel
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&groupModels).Error; err != nil {
		return nil, err
	}
	groups := make([]*partner.CustomerGroup, len(groupModels))
	for i := range groupModels {
		groups[i] = groupModels[i].ToDomain()
	}
	return groups, nil
}

// BulkCreate inserts new groups, ignoring names that already exist
func (r *GormCustomerGroupRepository) BulkCreate(ctx context.Context, groups []*partner.CustomerGroup) error {
	if len(groups) == 0 {
		return nil
	}
	groupModels := make([]*models.CustomerGroupModel, len(groups))
	for i, g := range groups {
		groupModels[i] = models.CustomerGroupModelFromDomain(g)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		CreateInBatches(groupModels, 100).Error
}
