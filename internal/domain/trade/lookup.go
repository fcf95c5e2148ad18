package trade

import (
	"strings"

	"github.com/oms/backend/internal/domain/shared"
)

// PaymentType is a named payment method. Created lazily on first
// reference, immutable thereafter.
type PaymentType struct {
	shared.BaseEntity
	Name string
}

// NewPaymentType creates a payment type with a normalized name
func NewPaymentType(name string) (*PaymentType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "payment type name cannot be empty")
	}
	return &PaymentType{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}

// Status is a named order status. Created lazily on first reference,
// immutable thereafter.
type Status struct {
	shared.BaseEntity
	Name string
}

// NewStatus creates a status with a normalized name
func NewStatus(name string) (*Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STATUS", "status name cannot be empty")
	}
	return &Status{BaseEntity: shared.NewBaseEntity(), Name: name}, nil
}
