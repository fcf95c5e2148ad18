package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oms/backend/internal/domain/shared"
)

// Customer represents a store customer reconciled from report uploads.
// A customer is identified by email (case-insensitive) or CPF (digits only);
// at most one customer row may exist per email and per CPF.
type Customer struct {
	shared.BaseEntity
	ExternalID    string
	FirstName     string
	LastName      string
	Email         string
	CPF           string
	Phone         string
	PostalCode    string
	City          string
	State         string
	Country       string
	GroupID       *uuid.UUID
	CustomerSince *time.Time
	LastOrder     *time.Time
}

// NewCustomer creates a customer from a first sighting in a report.
// Email is normalized to lower case; CPF is expected digits-only.
func NewCustomer(email, cpf, firstName, lastName string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" && cpf == "" {
		return nil, shared.NewDomainError("MISSING_IDENTITY", "customer requires an email or a cpf")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		CPF:        cpf,
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}

// SupersededBy reports whether a row carrying orderDate is strictly newer
// than the customer's last known order. Rows that are older or equal must
// leave the stored customer untouched (latest-wins merge rule).
func (c *Customer) SupersededBy(orderDate time.Time) bool {
	return c.LastOrder == nil || c.LastOrder.Before(orderDate)
}

// ApplyOrderSighting merges contact and group fields from the row whose
// order date won the latest-wins comparison. Callers must check
// SupersededBy first.
func (c *Customer) ApplyOrderSighting(orderDate time.Time, groupID *uuid.UUID, firstName, lastName, phone, cpf string) {
	c.LastOrder = &orderDate
	if groupID != nil {
		c.GroupID = groupID
	}
	if firstName != "" {
		c.FirstName = firstName
	}
	if lastName != "" {
		c.LastName = lastName
	}
	if phone != "" {
		c.Phone = phone
	}
	if cpf != "" && c.CPF == "" {
		c.CPF = cpf
	}
	c.Touch()
}

// SinceSupersededBy reports whether a customer-report row carrying
// customerSince is strictly newer than the stored value.
func (c *Customer) SinceSupersededBy(customerSince time.Time) bool {
	return c.CustomerSince == nil || c.CustomerSince.Before(customerSince)
}

// ApplyProfileSighting merges profile fields from a customer report row.
// Callers must check SinceSupersededBy first.
func (c *Customer) ApplyProfileSighting(customerSince time.Time, externalID string, groupID *uuid.UUID) {
	c.CustomerSince = &customerSince
	if externalID != "" {
		c.ExternalID = externalID
	}
	if groupID != nil {
		c.GroupID = groupID
	}
	c.Touch()
}

// FullName returns the display name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
