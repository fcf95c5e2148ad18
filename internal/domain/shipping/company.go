package shipping

import (
	"strings"

	"github.com/oms/backend/internal/domain/shared"
)

// Company is a carrier-integration counterpart identified by its CNPJ.
// Companies are get-or-create only: fields are never overwritten after
// creation.
type Company struct {
	shared.BaseEntity
	Name string
	CNPJ string
}

// NewCompany creates a company from a CNPJ sighted in an ECS report
func NewCompany(cnpj, name string) (*Company, error) {
	cnpj = strings.TrimSpace(cnpj)
	if cnpj == "" {
		return nil, shared.NewDomainError("INVALID_CNPJ", "company cnpj cannot be empty")
	}
	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		CNPJ:       cnpj,
		Name:       name,
	}, nil
}
