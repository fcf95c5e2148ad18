package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oms/backend/internal/domain/trade"
)

// BuyOrderModel is the persistence model for the BuyOrder domain entity.
type BuyOrderModel struct {
	BaseModel
	OrderNumber string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_buy_order_number"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (BuyOrderModel) TableName() string {
	return "buy_orders"
}

// ToDomain converts the persistence model to a domain BuyOrder entity.
func (m *BuyOrderModel) ToDomain() *trade.BuyOrder {
	return &trade.BuyOrder{
		BaseEntity:  m.BaseModel.ToDomain(),
		OrderNumber: m.OrderNumber,
		CustomerID:  m.CustomerID,
	}
}

// BuyOrderModelFromDomain creates a new persistence model from a domain BuyOrder entity.
func BuyOrderModelFromDomain(o *trade.BuyOrder) *BuyOrderModel {
	m := &BuyOrderModel{
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// BuyOrderDetailModel is the persistence model for the BuyOrderDetail domain entity.
type BuyOrderDetailModel struct {
	BaseModel
	BuyOrderID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_detail_buy_order"`
	OrderExternalID string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_detail_external_id"`
	OrderDate       time.Time       `gorm:"not null;index"`
	StatusID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentTypeID   uuid.UUID       `gorm:"type:uuid;not null"`
	TrackingCode    string          `gorm:"type:varchar(100)"`
	SoldQuantity    int             `gorm:"not null;default:0"`
	ShippingAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (BuyOrderDetailModel) TableName() string {
	return "buy_order_details"
}

// ToDomain converts the persistence model to a domain BuyOrderDetail entity.
func (m *BuyOrderDetailModel) ToDomain() *trade.BuyOrderDetail {
	return &trade.BuyOrderDetail{
		BaseEntity:      m.BaseModel.ToDomain(),
		BuyOrderID:      m.BuyOrderID,
		OrderExternalID: m.OrderExternalID,
		OrderDate:       m.OrderDate,
		StatusID:        m.StatusID,
		PaymentTypeID:   m.PaymentTypeID,
		TrackingCode:    m.TrackingCode,
		SoldQuantity:    m.SoldQuantity,
		ShippingAmount:  m.ShippingAmount,
		DiscountAmount:  m.DiscountAmount,
		TotalAmount:     m.TotalAmount,
	}
}

// FromDomain populates the persistence model from a domain BuyOrderDetail entity.
func (m *BuyOrderDetailModel) FromDomain(d *trade.BuyOrderDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.BuyOrderID = d.BuyOrderID
	m.OrderExternalID = d.OrderExternalID
	m.OrderDate = d.OrderDate
	m.StatusID = d.StatusID
	m.PaymentTypeID = d.PaymentTypeID
	m.TrackingCode = d.TrackingCode
	m.SoldQuantity = d.SoldQuantity
	m.ShippingAmount = d.ShippingAmount
	m.DiscountAmount = d.DiscountAmount
	m.TotalAmount = d.TotalAmount
}

// BuyOrderDetailModelFromDomain creates a new persistence model from a domain BuyOrderDetail entity.
func BuyOrderDetailModelFromDomain(d *trade.BuyOrderDetail) *BuyOrderDetailModel {
	m := &BuyOrderDetailModel{}
	m.FromDomain(d)
	return m
}

// PaymentTypeModel is the persistence model for the PaymentType domain entity.
type PaymentTypeModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_payment_type_name"`
}

// TableName returns the table name for GORM
func (PaymentTypeModel) TableName() string {
	return "payment_types"
}

// ToDomain converts the persistence model to a domain PaymentType entity.
func (m *PaymentTypeModel) ToDomain() *trade.PaymentType {
	return &trade.PaymentType{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// PaymentTypeModelFromDomain creates a new persistence model from a domain PaymentType entity.
func PaymentTypeModelFromDomain(p *trade.PaymentType) *PaymentTypeModel {
	m := &PaymentTypeModel{Name: p.Name}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// StatusModel is the persistence model for the Status domain entity.
type StatusModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_status_name"`
}

// TableName returns the table name for GORM
func (StatusModel) TableName() string {
	return "statuses"
}

// ToDomain converts the persistence model to a domain Status entity.
func (m *StatusModel) ToDomain() *trade.Status {
	return &trade.Status{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// StatusModelFromDomain creates a new persistence model from a domain Status entity.
func StatusModelFromDomain(s *trade.Status) *StatusModel {
	m := &StatusModel{Name: s.Name}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
