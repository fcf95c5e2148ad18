package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/partner"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByEmails returns customers whose email is in emails
func (r *GormCustomerRepository) FindByEmails(ctx context.Context, emails []string) ([]*partner.Customer, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]*partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, nil
}

// FindByCPFs returns customers whose CPF is in cpfs
func (r *GormCustomerRepository) FindByCPFs(ctx context.Context, cpfs []string) ([]*partner.Customer, error) {
	if len(cpfs) == 0 {
		return nil, nil
	}
	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("cpf IN ?", cpfs).
		Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]*partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = customerModels[i].ToDomain()
	}
	return customers, nil
}

// BulkCreate inserts new customers in one batch, ignoring rows that would
// violate the email or CPF unique constraints
func (r *GormCustomerRepository) BulkCreate(ctx context.Context, customers []*partner.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	customerModels := make([]*models.CustomerModel, len(customers))
	for i, c := range customers {
		customerModels[i] = models.CustomerModelFromDomain(c)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(customerModels, 100).Error
}

// BulkUpdate writes only the named fields of the given customers in one
// statement. Every row already exists, so the primary-key conflict turns
// the insert into a field-scoped update.
func (r *GormCustomerRepository) BulkUpdate(ctx context.Context, customers []*partner.Customer, fields []partner.CustomerField) error {
	if len(customers) == 0 || len(fields) == 0 {
		return nil
	}
	columns := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		columns = append(columns, string(f))
	}
	columns = append(columns, "updated_at")

	customerModels := make([]*models.CustomerModel, len(customers))
	for i, c := range customers {
		customerModels[i] = models.CustomerModelFromDomain(c)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		CreateInBatches(customerModels, 100).Error
}
