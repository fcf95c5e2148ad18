package partner

import (
	"context"
)

// CustomerField names a customer column eligible for bulk updates
type CustomerField string

const (
	CustomerFieldExternalID    CustomerField = "external_id"
	CustomerFieldFirstName     CustomerField = "first_name"
	CustomerFieldLastName      CustomerField = "last_name"
	CustomerFieldCPF           CustomerField = "cpf"
	CustomerFieldPhone         CustomerField = "phone"
	CustomerFieldGroupID       CustomerField = "group_id"
	CustomerFieldCustomerSince CustomerField = "customer_since"
	CustomerFieldLastOrder     CustomerField = "last_order"
)

// CustomerRepository provides batched access to customers keyed by their
// natural identities. Loaders pre-fetch once per batch and write in at most
// two rounds; per-row queries are not part of this contract.
type CustomerRepository interface {
	// FindByEmails returns customers whose lower-cased email is in emails
	FindByEmails(ctx context.Context, emails []string) ([]*Customer, error)
	// FindByCPFs returns customers whose CPF is in cpfs (exact digits match)
	FindByCPFs(ctx context.Context, cpfs []string) ([]*Customer, error)
	// BulkCreate inserts new customers, skipping rows that would violate
	// the email unique constraint (safety net, not the primary mechanism)
	BulkCreate(ctx context.Context, customers []*Customer) error
	// BulkUpdate writes only the named fields of the given customers
	BulkUpdate(ctx context.Context, customers []*Customer, fields []CustomerField) error
}

// CustomerGroupRepository resolves groups by name, creating missing ones
type CustomerGroupRepository interface {
	FindByNames(ctx context.Context, names []string) ([]*CustomerGroup, error)
	BulkCreate(ctx context.Context, groups []*CustomerGroup) error
}
