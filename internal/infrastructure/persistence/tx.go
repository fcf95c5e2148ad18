package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/oms/backend/internal/ingestion"
)

// GormTxManager implements ingestion.TxManager on top of a GORM connection.
// Every repository handed to the callback is bound to the same database
// transaction, so a returned error rolls back the whole load.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// InTx runs fn inside a single database transaction
func (m *GormTxManager) InTx(ctx context.Context, fn func(ctx context.Context, repos *ingestion.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// NewRepositories builds the repository bundle over the given connection,
// which may be a transaction handle
func NewRepositories(db *gorm.DB) *ingestion.Repositories {
	return &ingestion.Repositories{
		Customers:    NewGormCustomerRepository(db),
		Groups:       NewGormCustomerGroupRepository(db),
		BuyOrders:    NewGormBuyOrderRepository(db),
		Details:      NewGormBuyOrderDetailRepository(db),
		PaymentTypes: NewGormPaymentTypeRepository(db),
		Statuses:     NewGormStatusRepository(db),
		Companies:    NewGormCompanyRepository(db),
		EcsOrders:    NewGormEcsBuyOrderRepository(db),
	}
}
