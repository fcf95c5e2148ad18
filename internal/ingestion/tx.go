package ingestion

import (
	"context"

	"github.com/oms/backend/internal/domain/partner"
	"github.com/oms/backend/internal/domain/shipping"
	"github.com/oms/backend/internal/domain/trade"
)

// Repositories bundles every store a loader may touch, all bound to the
// same transaction
type Repositories struct {
	Customers    partner.CustomerRepository
	Groups       partner.CustomerGroupRepository
	BuyOrders    trade.BuyOrderRepository
	Details      trade.BuyOrderDetailRepository
	PaymentTypes trade.PaymentTypeRepository
	Statuses     trade.StatusRepository
	Companies    shipping.CompanyRepository
	EcsOrders    shipping.EcsBuyOrderRepository
}

// TxManager opens the all-or-nothing transaction a load runs in. The
// callback's error rolls everything back; nil commits.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}
