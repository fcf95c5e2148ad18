package partner

import (
	"strings"

	"github.com/oms/backend/internal/domain/shared"
)

// CustomerGroup is a named customer segment referenced by reports.
// Groups are created lazily on first reference and never updated.
type CustomerGroup struct {
	shared.BaseEntity
	Name string
}

// NewCustomerGroup creates a group with a case-normalized name
func NewCustomerGroup(name string) (*CustomerGroup, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "group name cannot be empty")
	}
	return &CustomerGroup{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
