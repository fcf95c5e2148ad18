package trade

import (
	"context"
)

// BuyOrderRepository provides batched access to buy orders by order number
type BuyOrderRepository interface {
	FindByOrderNumbers(ctx context.Context, orderNumbers []string) ([]*BuyOrder, error)
	// BulkCreate inserts buy orders, ignoring rows whose order number
	// already exists (create-if-absent, never duplicate-insert)
	BulkCreate(ctx context.Context, orders []*BuyOrder) error
}

// BuyOrderDetailRepository provides batched upsert access to order details
type BuyOrderDetailRepository interface {
	FindByExternalIDs(ctx context.Context, externalIDs []string) ([]*BuyOrderDetail, error)
	// BulkCreate inserts new details, ignoring external-id conflicts
	BulkCreate(ctx context.Context, details []*BuyOrderDetail) error
	// BulkUpdateMutable overwrites only status and tracking code of
	// existing details; immutable fields stay as first ingested
	BulkUpdateMutable(ctx context.Context, details []*BuyOrderDetail) error
}

// PaymentTypeRepository resolves payment types by name, creating missing ones
type PaymentTypeRepository interface {
	FindByNames(ctx context.Context, names []string) ([]*PaymentType, error)
	BulkCreate(ctx context.Context, types []*PaymentType) error
}

// StatusRepository resolves statuses by name, creating missing ones
type StatusRepository interface {
	FindByNames(ctx context.Context, names []string) ([]*Status, error)
	BulkCreate(ctx context.Context, statuses []*Status) error
}
