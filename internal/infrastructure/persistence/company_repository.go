package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oms/backend/internal/domain/shipping"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

// GormCompanyRepository implements shipping.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByCNPJs returns companies whose CNPJ is in cnpjs
func (r *GormCompanyRepository) FindByCNPJs(ctx context.Context, cnpjs []string) ([]*shipping.Company, error) {
	if len(cnpjs) == 0 {
		return nil, nil
	}
	var companyModels []models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("cnpj IN ?", cnpjs).
		Find(&companyModels).Error; err != nil {
		return nil, err
	}
	companies := make([]*shipping.Company, len(companyModels))
	for i := range companyModels {
		companies[i] = companyModels[i].ToDomain()
	}
	return companies, nil
}

// BulkCreate inserts new companies, ignoring CNPJs that already exist
func (r *GormCompanyRepository) BulkCreate(ctx context.Context, companies []*shipping.Company) error {
	if len(companies) == 0 {
		return nil
	}
	companyModels := make([]*models.CompanyModel, len(companies))
	for i, c := range companies {
		companyModels[i] = models.CompanyModelFromDomain(c)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cnpj"}},
			DoNothing: true,
		}).
		CreateInBatches(companyModels, 100).Error
}
