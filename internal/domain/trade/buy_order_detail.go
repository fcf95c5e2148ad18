package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oms/backend/internal/domain/shared"
)

// BuyOrderDetail carries the order attributes that arrive with buy-order
// reports. It is one-to-one with BuyOrder and identified by the source
// system's external order id. Status and tracking code are expected to
// change between report runs; amounts and dates are fixed at order
// placement and never altered by later ingestions.
type BuyOrderDetail struct {
	shared.BaseEntity
	BuyOrderID      uuid.UUID
	OrderExternalID string
	OrderDate       time.Time
	StatusID        uuid.UUID
	PaymentTypeID   uuid.UUID
	TrackingCode    string
	SoldQuantity    int
	ShippingAmount  decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
}

// NewBuyOrderDetail creates a detail record for a buy order
func NewBuyOrderDetail(buyOrderID uuid.UUID, orderExternalID string, orderDate time.Time) (*BuyOrderDetail, error) {
	if buyOrderID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_BUY_ORDER", "detail requires a buy order")
	}
	if orderExternalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "order external id cannot be empty")
	}
	return &BuyOrderDetail{
		BaseEntity:      shared.NewBaseEntity(),
		BuyOrderID:      buyOrderID,
		OrderExternalID: orderExternalID,
		OrderDate:       orderDate,
	}, nil
}

// ApplyStatusUpdate overwrites the mutable projection of the detail.
// Immutable fields are deliberately not touched here.
func (d *BuyOrderDetail) ApplyStatusUpdate(statusID uuid.UUID, trackingCode string) {
	d.StatusID = statusID
	d.TrackingCode = trackingCode
	d.Touch()
}
