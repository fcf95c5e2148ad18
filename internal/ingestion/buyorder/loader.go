package buyorder

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oms/backend/internal/domain/partner"
	"github.com/oms/backend/internal/domain/trade"
	csvimport "github.com/oms/backend/internal/infrastructure/import"
	"github.com/oms/backend/internal/ingestion"
)

// Loader resolves buy-order rows against the store and persists the batch
// in one transaction. Reads happen in bulk up front; writes happen in at
// most two rounds per entity (create round, update round).
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

// validate rejects the whole batch on the first round of row errors.
// Partial ingestion of a report is not allowed.
func (l *Loader) validate(t *ingestion.Table) error {
	ec := csvimport.NewErrorCollection(l.opts.MaxErrors)
	rules := validationRules()
	for _, row := range t.Rows() {
		csvimport.ValidateRow(row.Line, ingestion.RowGetter(row), rules, ec)

		if _, ok := row.Get(ColOrderDate).AsTime(); !ok && !row.Get(ColOrderDate).IsMissing() {
			ec.AddFormat(row.Line, ColOrderDate, "date (dd/mm/yyyy hh:mm:ss)", row.Get(ColOrderDate).Display())
		}
		if row.Get(ColEmail).IsMissing() && row.Get(ColCPF).IsMissing() {
			ec.AddRequired(row.Line, ColEmail)
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

	payments, err := ingestion.ResolvePaymentTypes(ctx, repos.PaymentTypes, ingestion.DistinctStrings(t, ColPaymentType))
	if err != nil {
		return err
	}
	statuses, err := ingestion.ResolveStatuses(ctx, repos.Statuses, ingestion.DistinctStrings(t, ColStatus))
	if err != nil {
		return err
	}

	customers, err := l.loadCustomers(ctx, repos, t, groups, res)
	if err != nil {
		return err
	}

	orders, err := l.loadBuyOrders(ctx, repos, t, customers, res)
	if err != nil {
		return err
	}

	return l.loadDetails(ctx, repos, t, orders, payments, statuses, res)
}

// customerIndex resolves rows to customers by email first, then cpf
type customerIndex struct {
	byEmail map[string]*partner.Customer
	byCPF   map[string]*partner.Customer
	created map[uuid.UUID]struct{}
}

func (ci *customerIndex) add(c *partner.Customer) {
	if c.Email != "" {
		ci.byEmail[c.Email] = c
	}
	if c.CPF != "" {
		ci.byCPF[c.CPF] = c
	}
}

// resolve applies the identity preference when email and cpf point at two
// different customers
func (ci *customerIndex) resolve(email, cpf string, pref ingestion.IdentityPreference) (c *partner.Customer, ambiguous bool) {
	var byEmail, byCPF *partner.Customer
	if email != "" {
		byEmail = ci.byEmail[email]
	}
	if cpf != "" {
		byCPF = ci.byCPF[cpf]
	}
	if byEmail != nil && byCPF != nil && byEmail.ID != byCPF.ID {
		if pref == ingestion.PreferCPF {
			return byCPF, true
		}
		return byEmail, true
	}
	if byEmail != nil {
		return byEmail, false
	}
	return byCPF, false
}

// loadCustomers pre-fetches every customer the batch could touch, then
// creates the unseen ones and updates the ones a newer order supersedes
func (l *Loader) loadCustomers(ctx context.Context, repos *ingestion.Repositories, t *ingestion.Table, groups map[string]*partner.CustomerGroup, res *ingestion.Result) (*customerIndex, error) {
	idx := &customerIndex{
		byEmail: make(map[string]*partner.Customer),
		byCPF:   make(map[string]*partner.Customer),
		created: make(map[uuid.UUID]struct{}),
	}

	byEmail, err := repos.Customers.FindByEmails(ctx, ingestion.DistinctStrings(t, ColEmail))
	if err != nil {
		return nil, err
	}
	byCPF, err := repos.Customers.FindByCPFs(ctx, ingestion.DistinctStrings(t, ColCPF))
	if err != nil {
		return nil, err
	}
	for _, c := range byEmail {
		idx.add(c)
	}
	for _, c := range byCPF {
		idx.add(c)
	}

	var creates []*partner.Customer
	updates := make(map[uuid.UUID]*partner.Customer)

	for _, row := range t.Rows() {
		email := stringOf(row, ColEmail)
		cpf := stringOf(row, ColCPF)
		orderDate, _ := row.Get(ColOrderDate).AsTime()

		var groupID *uuid.UUID
		if g, ok := groups[stringOf(row, ColCustomerGroup)]; ok {
			id := g.ID
			groupID = &id
		}

		customer, ambiguous := idx.resolve(email, cpf, l.opts.Identity)
		if ambiguous {
			res.AddWarning(ingestion.WarnAmbiguousIdentity, row.Line,
				"email %q and cpf %q match different customers; kept the %s match",
				email, cpf, l.opts.Identity)
			// the losing cpf still identifies the other stored customer;
			// copying it onto the winner would leave two rows per cpf
			if l.opts.Identity != ingestion.PreferCPF {
				cpf = ""
			}
		}

		if customer == nil {
			c, err := partner.NewCustomer(email, cpf, stringOf(row, ColFirstName), stringOf(row, ColLastName))
			if err != nil {
				return nil, err
			}
			c.Phone = stringOf(row, ColPhone)
			c.GroupID = groupID
			c.LastOrder = &orderDate
			idx.add(c)
			idx.created[c.ID] = struct{}{}
			creates = append(creates, c)
			continue
		}

		if customer.SupersededBy(orderDate) {
			customer.ApplyOrderSighting(orderDate, groupID,
				stringOf(row, ColFirstName), stringOf(row, ColLastName),
				stringOf(row, ColPhone), cpf)
			idx.add(customer)
			// rows resolving to a customer created earlier in this batch
			// mutate it in memory before the single insert round
			if _, fresh := idx.created[customer.ID]; !fresh {
				updates[customer.ID] = customer
			}
		}
	}

	if len(creates) > 0 {
		if err := repos.Customers.BulkCreate(ctx, creates); err != nil {
			return nil, err
		}
		res.CustomersCreated += len(creates)
	}
	if len(updates) > 0 {
		list := make([]*partner.Customer, 0, len(updates))
		for _, c := range updates {
			list = append(list, c)
		}
		fields := []partner.CustomerField{
			partner.CustomerFieldFirstName,
			partner.CustomerFieldLastName,
			partner.CustomerFieldCPF,
			partner.CustomerFieldPhone,
			partner.CustomerFieldGroupID,
			partner.CustomerFieldLastOrder,
		}
		if err := repos.Customers.BulkUpdate(ctx, list, fields); err != nil {
			return nil, err
		}
		res.CustomersUpdated += len(list)
	}
	return idx, nil
}

// loadBuyOrders creates the orders the store has not seen. The customer
// linkage of an existing order is fixed at first sight and never rewritten.
func (l *Loader) loadBuyOrders(ctx context.Context, repos *ingestion.Repositories, t *ingestion.Table, customers *customerIndex, res *ingestion.Result) (map[string]*trade.BuyOrder, error) {
	numbers := ingestion.DistinctStrings(t, ColOrderNumber)
	existing, err := repos.BuyOrders.FindByOrderNumbers(ctx, numbers)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[string]*trade.BuyOrder, len(existing))
	for _, o := range existing {
		byNumber[o.OrderNumber] = o
	}

	var creates []*trade.BuyOrder
	for _, row := range t.Rows() {
		number := stringOf(row, ColOrderNumber)
		if _, ok := byNumber[number]; ok {
			continue
		}
		customer, _ := customers.resolve(stringOf(row, ColEmail), stringOf(row, ColCPF), l.opts.Identity)
		order, err := trade.NewBuyOrder(number, customer.ID)
		if err != nil {
			return nil, err
		}
		byNumber[number] = order
		creates = append(creates, order)
	}
	if len(creates) > 0 {
		if err := repos.BuyOrders.BulkCreate(ctx, creates); err != nil {
			return nil, err
		}
		res.OrdersCreated += len(creates)
	}
	return byNumber, nil
}

// loadDetails creates unseen details and refreshes the mutable projection
// (status, tracking code) of the ones already stored
func (l *Loader) loadDetails(ctx context.Context, repos *ingestion.Repositories, t *ingestion.Table, orders map[string]*trade.BuyOrder, payments map[string]*trade.PaymentType, statuses map[string]*trade.Status, res *ingestion.Result) error {
	externalIDs := ingestion.DistinctStrings(t, ColOrderExternalID)
	existing, err := repos.Details.FindByExternalIDs(ctx, externalIDs)
	if err != nil {
		return err
	}
	byExternal := make(map[string]*trade.BuyOrderDetail, len(existing))
	for _, d := range existing {
		byExternal[d.OrderExternalID] = d
	}

	var creates []*trade.BuyOrderDetail
	updates := make(map[uuid.UUID]*trade.BuyOrderDetail)
	fresh := make(map[uuid.UUID]struct{})

	for _, row := range t.Rows() {
		statusID := statuses[stringOf(row, ColStatus)].ID
		tracking := stringOf(row, ColTrackingCode)
		externalID := stringOf(row, ColOrderExternalID)

		if d, ok := byExternal[externalID]; ok {
			d.ApplyStatusUpdate(statusID, tracking)
			if _, isNew := fresh[d.ID]; !isNew {
				updates[d.ID] = d
			}
			continue
		}

		order := orders[stringOf(row, ColOrderNumber)]
		orderDate, _ := row.Get(ColOrderDate).AsTime()
		d, err := trade.NewBuyOrderDetail(order.ID, externalID, orderDate)
		if err != nil {
			return err
		}
		d.StatusID = statusID
		d.PaymentTypeID = payments[stringOf(row, ColPaymentType)].ID
		d.TrackingCode = tracking
		d.SoldQuantity = intOf(row, ColSoldQuantity)
		d.ShippingAmount = decimalOf(row, ColShippingAmount)
		d.DiscountAmount = decimalOf(row, ColDiscountAmount)
		d.TotalAmount = decimalOf(row, ColTotalAmount)
		byExternal[externalID] = d
		fresh[d.ID] = struct{}{}
		creates = append(creates, d)
	}

	if len(creates) > 0 {
		if err := repos.Details.BulkCreate(ctx, creates); err != nil {
			return err
		}
		res.DetailsCreated += len(creates)
	}
	if len(updates) > 0 {
		list := make([]*trade.BuyOrderDetail, 0, len(updates))
		for _, d := range updates {
			list = append(list, d)
		}
		if err := repos.Details.BulkUpdateMutable(ctx, list); err != nil {
			return err
		}
		res.DetailsUpdated += len(list)
	}
	return nil
}

func stringOf(row *ingestion.Row, col string) string {
	s, _ := row.Get(col).AsString()
	return s
}

func intOf(row *ingestion.Row, col string) int {
	s, ok := row.Get(col).AsString()
	if !ok {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

func decimalOf(row *ingestion.Row, col string) decimal.Decimal {
	d, ok := row.Get(col).AsDecimal()
	if !ok {
		return decimal.Zero
	}
	return d
}
