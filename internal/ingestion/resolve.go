package ingestion

import (
	"context"

	"github.com/oms/backend/internal/domain/partner"
	"github.com/oms/backend/internal/domain/shipping"
	"github.com/oms/backend/internal/domain/trade"
)

// Lookup entities (groups, payment types, statuses, companies) are
// get-or-create only: one bulk fetch, one bulk insert of the unseen names,
// and existing rows are never modified.

// ResolveGroups maps every name to a group, creating missing ones.
// Returns the map and how many groups were created.
func ResolveGroups(ctx context.Context, repo partner.CustomerGroupRepository, names []string) (map[string]*partner.CustomerGroup, int, error) {
	existing, err := repo.FindByNames(ctx, names)
	if err != nil {
		return nil, 0, err
	}
	byName := make(map[string]*partner.CustomerGroup, len(existing))
	for _, g := range existing {
		byName[g.Name] = g
	}

	var missing []*partner.CustomerGroup
	for _, name := range names {
		if _, ok := byName[name]; ok {
			continue
		}
		g, err := partner.NewCustomerGroup(name)
		if err != nil {
			return nil, 0, err
		}
		byName[g.Name] = g
		missing = append(missing, g)
	}
	if len(missing) > 0 {
		if err := repo.BulkCreate(ctx, missing); err != nil {
			return nil, 0, err
		}
	}
	return byName, len(missing), nil
}

// ResolvePaymentTypes maps every name to a payment type, creating missing ones
func ResolvePaymentTypes(ctx context.Context, repo trade.PaymentTypeRepository, names []string) (map[string]*trade.PaymentType, error) {
	existing, err := repo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*trade.PaymentType, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	var missing []*trade.PaymentType
	for _, name := range names {
		if _, ok := byName[name]; ok {
			continue
		}
		p, err := trade.NewPaymentType(name)
		if err != nil {
			return nil, err
		}
		byName[p.Name] = p
		missing = append(missing, p)
	}
	if len(missing) > 0 {
		if err := repo.BulkCreate(ctx, missing); err != nil {
			return nil, err
		}
	}
	return byName, nil
}

// ResolveStatuses maps every name to a status, creating missing ones
func ResolveStatuses(ctx context.Context, repo trade.StatusRepository, names []string) (map[string]*trade.Status, error) {
	existing, err := repo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*trade.Status, len(existing))
	for _, s := range existing {
		byName[s.Name] = s
	}

	var missing []*trade.Status
	for _, name := range names {
		if _, ok := byName[name]; ok {
			continue
		}
		s, err := trade.NewStatus(name)
		if err != nil {
			return nil, err
		}
		byName[s.Name] = s
		missing = append(missing, s)
	}
	if len(missing) > 0 {
		if err := repo.BulkCreate(ctx, missing); err != nil {
			return nil, err
		}
	}
	return byName, nil
}

// ResolveCompanies maps every CNPJ to a company, creating missing ones.
// Returns the map and how many companies were created.
func ResolveCompanies(ctx context.Context, repo shipping.CompanyRepository, cnpjs []string) (map[string]*shipping.Company, int, error) {
	existing, err := repo.FindByCNPJs(ctx, cnpjs)
	if err != nil {
		return nil, 0, err
	}
	byCNPJ := make(map[string]*shipping.Company, len(existing))
	for _, c := range existing {
		byCNPJ[c.CNPJ] = c
	}

	var missing []*shipping.Company
	for _, cnpj := range cnpjs {
		if _, ok := byCNPJ[cnpj]; ok {
			continue
		}
		c, err := shipping.NewCompany(cnpj, "")
		if err != nil {
			return nil, 0, err
		}
		byCNPJ[c.CNPJ] = c
		missing = append(missing, c)
	}
	if len(missing) > 0 {
		if err := repo.BulkCreate(ctx, missing); err != nil {
			return nil, 0, err
		}
	}
	return byCNPJ, len(missing), nil
}
