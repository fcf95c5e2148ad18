package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/oms/backend/internal/domain/partner"
	csvimport "github.com/oms/backend/internal/infrastructure/import"
	"github.com/oms/backend/internal/ingestion"
)

// Loader upserts customer profiles. Rows are matched by email; the
// customer_since comparison decides whether a stored profile is refreshed
// (latest-wins, same rule the order reports use for last_order).
type Loader struct {
	tx   ingestion.TxManager
	opts ingestion.Options
}

// NewLoader builds the loader with run-wide policies
func NewLoader(tx ingestion.TxManager, opts ingestion.Options) *Loader {
	return &Loader{tx: tx, opts: opts}
}

// Load implements ingestion.Loader
func (l *Loader) Load(ctx context.Context, t *ingestion.Table) (*ingestion.Result, error) {
	if err := l.validate(t); err != nil {
		return nil, err
	}
	res := &ingestion.Result{}
	err := l.tx.InTx(ctx, func(ctx context.Context, repos *ingestion.Repositories) error {
		return l.load(ctx, repos, t, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Loader) validate(t *ingestion.Table) error {
	ec := csvimport.NewErrorCollection(l.opts.MaxErrors)
	rules := validationRules()
	for _, row := range t.Rows() {
		csvimport.ValidateRow(row.Line, ingestion.RowGetter(row), rules, ec)

		since := row.Get(ColCustomerSince)
		if _, ok := since.AsTime(); !ok && !since.IsMissing() {
			ec.AddFormat(row.Line, ColCustomerSince, "date (dd/mm/yyyy hh:mm:ss)", since.Display())
		}
	}
	if ec.HasErrors() {
		return ingestion.NewValidationError(ReportType, t.Len(), ec.Errors())
	}
	return nil
}

func (l *Loader) load(ctx context.Context, repos *ingestion.Repositories, t *ingestion.Table, res *ingestion.Result) error {
	groups, created, err := ingestion.ResolveGroups(ctx, repos.Groups, ingestion.DistinctStrings(t, ColCustomerGroup))
	if err != nil {
		return err
	}
	res.GroupsCreated += created

	existing, err := repos.Customers.FindByEmails(ctx, ingestion.DistinctStrings(t, ColEmail))
	if err != nil {
		return err
	}
	byEmail := make(map[string]*partner.Customer, len(existing))
	for _, c := range existing {
		byEmail[c.Email] = c
	}

	var creates []*partner.Customer
	updates := make(map[uuid.UUID]*partner.Customer)
	fresh := make(map[uuid.UUID]struct{})

	for _, row := range t.Rows() {
		email := stringOf(row, ColEmail)
		since, _ := row.Get(ColCustomerSince).AsTime()

		var groupID *uuid.UUID
		if g, ok := groups[stringOf(row, ColCustomerGroup)]; ok {
			id := g.ID
			groupID = &id
		}

		c, ok := byEmail[email]
		if !ok {
			c, err = partner.NewCustomer(email, "", stringOf(row, ColFirstName), stringOf(row, ColLastName))
			if err != nil {
				return err
			}
			c.ExternalID = stringOf(row, ColExternalID)
			c.Phone = stringOf(row, ColPhone)
			c.PostalCode = stringOf(row, ColPostalCode)
			c.State = stringOf(row, ColState)
			c.Country = stringOf(row, ColCountry)
			c.GroupID = groupID
			c.CustomerSince = &since
			byEmail[email] = c
			fresh[c.ID] = struct{}{}
			creates = append(creates, c)
			continue
		}

		if c.SinceSupersededBy(since) {
			c.ApplyProfileSighting(since, stringOf(row, ColExternalID), groupID)
			if _, isNew := fresh[c.ID]; !isNew {
				updates[c.ID] = c
			}
		}
	}

	if len(creates) > 0 {
		if err := repos.Customers.BulkCreate(ctx, creates); err != nil {
			return err
		}
		res.CustomersCreated += len(creates)
	}
	if len(updates) > 0 {
		list := make([]*partner.Customer, 0, len(updates))
		for _, c := range updates {
			list = append(list, c)
		}
		fields := []partner.CustomerField{
			partner.CustomerFieldExternalID,
			partner.CustomerFieldGroupID,
			partner.CustomerFieldCustomerSince,
		}
		if err := repos.Customers.BulkUpdate(ctx, list, fields); err != nil {
			return err
		}
		res.CustomersUpdated += len(list)
	}
	return nil
}

func stringOf(row *ingestion.Row, col string) string {
	s, _ := row.Get(col).AsString()
	return s
}
