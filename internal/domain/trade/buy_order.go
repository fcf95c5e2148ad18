package trade

import (
	"strings"

	"github.com/google/uuid"

	"github.com/oms/backend/internal/domain/shared"
)

// BuyOrder is a sale recorded by the store, identified by its order number.
// The order number uniquely identifies a buy order across the whole
// ingestion history: re-ingesting the same order never creates a duplicate,
// and the customer linkage is fixed at first sight.
type BuyOrder struct {
	shared.BaseEntity
	OrderNumber string
	CustomerID  uuid.UUID
}

// NewBuyOrder creates a buy order for a resolved customer
func NewBuyOrder(orderNumber string, customerID uuid.UUID) (*BuyOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CUSTOMER", "buy order requires a customer")
	}
	return &BuyOrder{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNumber: orderNumber,
		CustomerID:  customerID,
	}, nil
}
