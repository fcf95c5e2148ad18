package shipping

import (
	"time"

	"github.com/google/uuid"

	"github.com/oms/backend/internal/domain/shared"
)

// EcsBuyOrder is the carrier-side view of a buy order, identified by the
// carrier's own order id. It cannot exist without its parent buy order;
// that is a hard referential precondition of the ECS ingestion.
type EcsBuyOrder struct {
	shared.BaseEntity
	BuyOrderID       uuid.UUID
	CompanyID        uuid.UUID
	EcsOrderID       string
	EcsOrderNumber   string
	PaymentDate      *time.Time
	Coupon           string
	DeadlineDays     int
	Carrier          string
	RecipientName    string
	RecipientZipCode string
	RecipientCity    string
	RecipientState   string
	EcsDeliveryDate  *time.Time
}

// NewEcsBuyOrder creates a carrier order bound to its parent buy order
func NewEcsBuyOrder(buyOrderID, companyID uuid.UUID, ecsOrderID, ecsOrderNumber string) (*EcsBuyOrder, error) {
	if buyOrderID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_BUY_ORDER", "ecs order requires a parent buy order")
	}
	if ecsOrderID == "" {
		return nil, shared.NewDomainError("INVALID_ECS_ORDER_ID", "ecs order id cannot be empty")
	}
	return &EcsBuyOrder{
		BaseEntity:     shared.NewBaseEntity(),
		BuyOrderID:     buyOrderID,
		CompanyID:      companyID,
		EcsOrderID:     ecsOrderID,
		EcsOrderNumber: ecsOrderNumber,
	}, nil
}
