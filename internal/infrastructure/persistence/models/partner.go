package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oms/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	ExternalID    string     `gorm:"type:varchar(50);index"`
	FirstName     string     `gorm:"type:varchar(100)"`
	LastName      string     `gorm:"type:varchar(100)"`
	Email         string     `gorm:"type:varchar(200);uniqueIndex:idx_customer_email,where:email <> ''"`
	CPF           string     `gorm:"type:varchar(14);uniqueIndex:idx_customer_cpf,where:cpf <> ''"`
	Phone         string     `gorm:"type:varchar(50)"`
	PostalCode    string     `gorm:"type:varchar(20)"`
	City          string     `gorm:"type:varchar(100)"`
	State         string     `gorm:"type:varchar(100)"`
	Country       string     `gorm:"type:varchar(100)"`
	GroupID       *uuid.UUID `gorm:"type:uuid;index"`
	CustomerSince *time.Time
	LastOrder     *time.Time
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:    m.BaseModel.ToDomain(),
		ExternalID:    m.ExternalID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		CPF:           m.CPF,
		Phone:         m.Phone,
		PostalCode:    m.PostalCode,
		City:          m.City,
		State:         m.State,
		Country:       m.Country,
		GroupID:       m.GroupID,
		CustomerSince: m.CustomerSince,
		LastOrder:     m.LastOrder,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ExternalID = c.ExternalID
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.CPF = c.CPF
	m.Phone = c.Phone
	m.PostalCode = c.PostalCode
	m.City = c.City
	m.State = c.State
	m.Country = c.Country
	m.GroupID = c.GroupID
	m.CustomerSince = c.CustomerSince
	m.LastOrder = c.LastOrder
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// CustomerGroupModel is the persistence model for the CustomerGroup domain entity.
type CustomerGroupModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_customer_group_name"`
}

// TableName returns the table name for GORM
func (CustomerGroupModel) TableName() string {
	return "customer_groups"
}

// ToDomain converts the persistence model to a domain CustomerGroup entity.
func (m *CustomerGroupModel) ToDomain() *partner.CustomerGroup {
	return &partner.CustomerGroup{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// CustomerGroupModelFromDomain creates a new persistence model from a domain CustomerGroup entity.
func CustomerGroupModelFromDomain(g *partner.CustomerGroup) *CustomerGroupModel {
	m := &CustomerGroupModel{Name: g.Name}
	m.FromDomainBaseEntity(g.BaseEntity)
	return m
}
