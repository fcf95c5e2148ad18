package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oms/backend/internal/domain/shipping"
)

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200)"`
	CNPJ string `gorm:"type:varchar(14);not null;uniqueIndex:idx_company_cnpj"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *shipping.Company {
	return &shipping.Company{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CNPJ:       m.CNPJ,
	}
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *shipping.Company) *CompanyModel {
	m := &CompanyModel{Name: c.Name, CNPJ: c.CNPJ}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// EcsBuyOrderModel is the persistence model for the EcsBuyOrder domain entity.
type EcsBuyOrderModel struct {
	BaseModel
	BuyOrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EcsOrderID       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_ecs_order_id"`
	EcsOrderNumber   string    `gorm:"type:varchar(50)"`
	PaymentDate      *time.Time
	Coupon           string `gorm:"type:varchar(100)"`
	DeadlineDays     int    `gorm:"not null;default:0"`
	Carrier          string `gorm:"type:varchar(100)"`
	RecipientName    string `gorm:"type:varchar(200)"`
	RecipientZipCode string `gorm:"type:varchar(20)"`
	RecipientCity    string `gorm:"type:varchar(100)"`
	RecipientState   string `gorm:"type:varchar(100)"`
	EcsDeliveryDate  *time.Time
}

// TableName returns the table name for GORM
func (EcsBuyOrderModel) TableName() string {
	return "ecs_buy_orders"
}

// ToDomain converts the persistence model to a domain EcsBuyOrder entity.
func (m *EcsBuyOrderModel) ToDomain() *shipping.EcsBuyOrder {
	return &shipping.EcsBuyOrder{
		BaseEntity:       m.BaseModel.ToDomain(),
		BuyOrderID:       m.BuyOrderID,
		CompanyID:        m.CompanyID,
		EcsOrderID:       m.EcsOrderID,
		EcsOrderNumber:   m.EcsOrderNumber,
		PaymentDate:      m.PaymentDate,
		Coupon:           m.Coupon,
		DeadlineDays:     m.DeadlineDays,
		Carrier:          m.Carrier,
		RecipientName:    m.RecipientName,
		RecipientZipCode: m.RecipientZipCode,
		RecipientCity:    m.RecipientCity,
		RecipientState:   m.RecipientState,
		EcsDeliveryDate:  m.EcsDeliveryDate,
	}
}

// FromDomain populates the persistence model from a domain EcsBuyOrder entity.
func (m *EcsBuyOrderModel) FromDomain(o *shipping.EcsBuyOrder) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.BuyOrderID = o.BuyOrderID
	m.CompanyID = o.CompanyID
	m.EcsOrderID = o.EcsOrderID
	m.EcsOrderNumber = o.EcsOrderNumber
	m.PaymentDate = o.PaymentDate
	m.Coupon = o.Coupon
	m.DeadlineDays = o.DeadlineDays
	m.Carrier = o.Carrier
	m.RecipientName = o.RecipientName
	m.RecipientZipCode = o.RecipientZipCode
	m.RecipientCity = o.RecipientCity
	m.RecipientState = o.RecipientState
	m.EcsDeliveryDate = o.EcsDeliveryDate
}

// EcsBuyOrderModelFromDomain creates a new persistence model from a domain EcsBuyOrder entity.
func EcsBuyOrderModelFromDomain(o *shipping.EcsBuyOrder) *EcsBuyOrderModel {
	m := &EcsBuyOrderModel{}
	m.FromDomain(o)
	return m
}
