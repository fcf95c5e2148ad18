package shipping

import (
	"context"
)

// CompanyRepository resolves companies by CNPJ, creating missing ones.
// Existing companies are never overwritten.
type CompanyRepository interface {
	FindByCNPJs(ctx context.Context, cnpjs []string) ([]*Company, error)
	BulkCreate(ctx context.Context, companies []*Company) error
}

// EcsBuyOrderRepository provides batched upsert access keyed by the
// carrier's order id
type EcsBuyOrderRepository interface {
	FindByEcsOrderIDs(ctx context.Context, ecsOrderIDs []string) ([]*EcsBuyOrder, error)
	BulkUpsert(ctx context.Context, orders []*EcsBuyOrder) error
}
