// Package ingestiontest provides in-memory repositories and a pass-through
// transaction manager for exercising loaders without a database.
package ingestiontest

import (
	"context"

	"github.com/oms/backend/internal/domain/partner"
	"github.com/oms/backend/internal/domain/shipping"
	"github.com/oms/backend/internal/domain/trade"
	"github.com/oms/backend/internal/ingestion"
)

// Store holds every fake repository over shared in-memory state
type Store struct {
	Customers    *CustomerRepo
	Groups       *GroupRepo
	BuyOrders    *BuyOrderRepo
	Details      *DetailRepo
	PaymentTypes *PaymentTypeRepo
	Statuses     *StatusRepo
	Companies    *CompanyRepo
	EcsOrders    *EcsOrderRepo

	// FailOn, when set, makes the named repository call return this error
	FailOn map[string]error
}

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{FailOn: make(map[string]error)}
	s.Customers = &CustomerRepo{store: s}
	s.Groups = &GroupRepo{store: s}
	s.BuyOrders = &BuyOrderRepo{store: s}
	s.Details = &DetailRepo{store: s}
	s.PaymentTypes = &PaymentTypeRepo{store: s}
	s.Statuses = &StatusRepo{store: s}
	s.Companies = &CompanyRepo{store: s}
	s.EcsOrders = &EcsOrderRepo{store: s}
	return s
}

// Repositories bundles the fakes the way a transaction would
func (s *Store) Repositories() *ingestion.Repositories {
	return &ingestion.Repositories{
		Customers:    s.Customers,
		Groups:       s.Groups,
		BuyOrders:    s.BuyOrders,
		Details:      s.Details,
		PaymentTypes: s.PaymentTypes,
		Statuses:     s.Statuses,
		Companies:    s.Companies,
		EcsOrders:    s.EcsOrders,
	}
}

func (s *Store) fail(call string) error {
	return s.FailOn[call]
}

// TxManager runs the callback against the store without real transaction
// semantics. Snapshot/Restore let tests assert rollback behavior.
type TxManager struct {
	Store *Store
	// Began counts InTx invocations
	Began int
}

// NewTxManager wraps a store
func NewTxManager(store *Store) *TxManager {
	return &TxManager{Store: store}
}

// InTx implements ingestion.TxManager. On error the store is restored to
// its state at the start of the callback, mimicking a rollback.
func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context, repos *ingestion.Repositories) error) error {
	m.Began++
	snapshot := m.Store.snapshot()
	if err := fn(ctx, m.Store.Repositories()); err != nil {
		m.Store.restore(snapshot)
		return err
	}
	return nil
}

type storeState struct {
	customers    []*partner.Customer
	groups       []*partner.CustomerGroup
	buyOrders    []*trade.BuyOrder
	details      []*trade.BuyOrderDetail
	paymentTypes []*trade.PaymentType
	statuses     []*trade.Status
	companies    []*shipping.Company
	ecsOrders    []*shipping.EcsBuyOrder
}

func (s *Store) snapshot() storeState {
	st := storeState{}
	for _, c := range s.Customers.items {
		cp := *c
		st.customers = append(st.customers, &cp)
	}
	for _, g := range s.Groups.items {
		cp := *g
		st.groups = append(st.groups, &cp)
	}
	for _, o := range s.BuyOrders.items {
		cp := *o
		st.buyOrders = append(st.buyOrders, &cp)
	}
	for _, d := range s.Details.items {
		cp := *d
		st.details = append(st.details, &cp)
	}
	for _, p := range s.PaymentTypes.items {
		cp := *p
		st.paymentTypes = append(st.paymentTypes, &cp)
	}
	for _, x := range s.Statuses.items {
		cp := *x
		st.statuses = append(st.statuses, &cp)
	}
	for _, c := range s.Companies.items {
		cp := *c
		st.companies = append(st.companies, &cp)
	}
	for _, e := range s.EcsOrders.items {
		cp := *e
		st.ecsOrders = append(st.ecsOrders, &cp)
	}
	return st
}

func (s *Store) restore(st storeState) {
	s.Customers.items = st.customers
	s.Groups.items = st.groups
	s.BuyOrders.items = st.buyOrders
	s.Details.items = st.details
	s.PaymentTypes.items = st.paymentTypes
	s.Statuses.items = st.statuses
	s.Companies.items = st.companies
	s.EcsOrders.items = st.ecsOrders
}

// CustomerRepo is an in-memory partner.CustomerRepository
type CustomerRepo struct {
	store *Store
	items []*partner.Customer
}

// Seed adds a customer directly, bypassing the repository contract
func (r *CustomerRepo) Seed(c *partner.Customer) { r.items = append(r.items, c) }

// All returns the stored customers
func (r *CustomerRepo) All() []*partner.Customer { return r.items }

// FindByEmail is a test convenience lookup
func (r *CustomerRepo) FindByEmail(email string) *partner.Customer {
	for _, c := range r.items {
		if c.Email == email {
			return c
		}
	}
	return nil
}

func (r *CustomerRepo) FindByEmails(_ context.Context, emails []string) ([]*partner.Customer, error) {
	if err := r.store.fail("Customers.FindByEmails"); err != nil {
		return nil, err
	}
	want := toSet(emails)
	var out []*partner.Customer
	for _, c := range r.items {
		if _, ok := want[c.Email]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CustomerRepo) FindByCPFs(_ context.Context, cpfs []string) ([]*partner.Customer, error) {
	if err := r.store.fail("Customers.FindByCPFs"); err != nil {
		return nil, err
	}
	want := toSet(cpfs)
	var out []*partner.Customer
	for _, c := range r.items {
		if _, ok := want[c.CPF]; ok && c.CPF != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CustomerRepo) BulkCreate(_ context.Context, customers []*partner.Customer) error {
	if err := r.store.fail("Customers.BulkCreate"); err != nil {
		return err
	}
	for _, c := range customers {
		if c.Email != "" && r.FindByEmail(c.Email) != nil {
			continue
		}
		r.items = append(r.items, c)
	}
	return nil
}

func (r *CustomerRepo) BulkUpdate(_ context.Context, customers []*partner.Customer, _ []partner.CustomerField) error {
	if err := r.store.fail("Customers.BulkUpdate"); err != nil {
		return err
	}
	for _, incoming := range customers {
		for i, c := range r.items {
			if c.ID == incoming.ID {
				r.items[i] = incoming
			}
		}
	}
	return nil
}

// GroupRepo is an in-memory partner.CustomerGroupRepository
type GroupRepo struct {
	store *Store
	items []*partner.CustomerGroup
}

// All returns the stored groups
func (r *GroupRepo) All() []*partner.CustomerGroup { return r.items }

func (r *GroupRepo) FindByNames(_ context.Context, names []string) ([]*partner.CustomerGroup, error) {
	if err := r.store.fail("Groups.FindByNames"); err != nil {
		return nil, err
	}
	want := toSet(names)
	var out []*partner.CustomerGroup
	for _, g := range r.items {
		if _, ok := want[g.Name]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *GroupRepo) BulkCreate(_ context.Context, groups []*partner.CustomerGroup) error {
	if err := r.store.fail("Groups.BulkCreate"); err != nil {
		return err
	}
	r.items = append(r.items, groups...)
	return nil
}

// BuyOrderRepo is an in-memory trade.BuyOrderRepository
type BuyOrderRepo struct {
	store *Store
	items []*trade.BuyOrder
}

// Seed adds an order directly
func (r *BuyOrderRepo) Seed(o *trade.BuyOrder) { r.items = append(r.items, o) }

// All returns the stored orders
func (r *BuyOrderRepo) All() []*trade.BuyOrder { return r.items }

func (r *BuyOrderRepo) FindByOrderNumbers(_ context.Context, numbers []string) ([]*trade.BuyOrder, error) {
	if err := r.store.fail("BuyOrders.FindByOrderNumbers"); err != nil {
		return nil, err
	}
	want := toSet(numbers)
	var out []*trade.BuyOrder
	for _, o := range r.items {
		if _, ok := want[o.OrderNumber]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *BuyOrderRepo) BulkCreate(_ context.Context, orders []*trade.BuyOrder) error {
	if err := r.store.fail("BuyOrders.BulkCreate"); err != nil {
		return err
	}
	existing := make(map[string]struct{}, len(r.items))
	for _, o := range r.items {
		existing[o.OrderNumber] = struct{}{}
	}
	for _, o := range orders {
		if _, dup := existing[o.OrderNumber]; dup {
			continue
		}
		r.items = append(r.items, o)
	}
	return nil
}

// DetailRepo is an in-memory trade.BuyOrderDetailRepository
type DetailRepo struct {
	store *Store
	items []*trade.BuyOrderDetail
}

// Seed adds a detail directly
func (r *DetailRepo) Seed(d *trade.BuyOrderDetail) { r.items = append(r.items, d) }

// All returns the stored details
func (r *DetailRepo) All() []*trade.BuyOrderDetail { return r.items }

func (r *DetailRepo) FindByExternalIDs(_ context.Context, ids []string) ([]*trade.BuyOrderDetail, error) {
	if err := r.store.fail("Details.FindByExternalIDs"); err != nil {
		return nil, err
	}
	want := toSet(ids)
	var out []*trade.BuyOrderDetail
	for _, d := range r.items {
		if _, ok := want[d.OrderExternalID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *DetailRepo) BulkCreate(_ context.Context, details []*trade.BuyOrderDetail) error {
	if err := r.store.fail("Details.BulkCreate"); err != nil {
		return err
	}
	r.items = append(r.items, details...)
	return nil
}

func (r *DetailRepo) BulkUpdateMutable(_ context.Context, details []*trade.BuyOrderDetail) error {
	if err := r.store.fail("Details.BulkUpdateMutable"); err != nil {
		return err
	}
	for _, incoming := range details {
		for i, d := range r.items {
			if d.ID == incoming.ID {
				r.items[i] = incoming
			}
		}
	}
	return nil
}

// PaymentTypeRepo is an in-memory trade.PaymentTypeRepository
type PaymentTypeRepo struct {
	store *Store
	items []*trade.PaymentType
}

// All returns the stored payment types
func (r *PaymentTypeRepo) All() []*trade.PaymentType { return r.items }

func (r *PaymentTypeRepo) FindByNames(_ context.Context, names []string) ([]*trade.PaymentType, error) {
	if err := r.store.fail("PaymentTypes.FindByNames"); err != nil {
		return nil, err
	}
	want := toSet(names)
	var out []*trade.PaymentType
	for _, p := range r.items {
		if _, ok := want[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PaymentTypeRepo) BulkCreate(_ context.Context, types []*trade.PaymentType) error {
	if err := r.store.fail("PaymentTypes.BulkCreate"); err != nil {
		return err
	}
	r.items = append(r.items, types...)
	return nil
}

// StatusRepo is an in-memory trade.StatusRepository
type StatusRepo struct {
	store *Store
	items []*trade.Status
}

// All returns the stored statuses
func (r *StatusRepo) All() []*trade.Status { return r.items }

func (r *StatusRepo) FindByNames(_ context.Context, names []string) ([]*trade.Status, error) {
	if err := r.store.fail("Statuses.FindByNames"); err != nil {
		return nil, err
	}
	want := toSet(names)
	var out []*trade.Status
	for _, s := range r.items {
		if _, ok := want[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *StatusRepo) BulkCreate(_ context.Context, statuses []*trade.Status) error {
	if err := r.store.fail("Statuses.BulkCreate"); err != nil {
		return err
	}
	r.items = append(r.items, statuses...)
	return nil
}

// CompanyRepo is an in-memory shipping.CompanyRepository
type CompanyRepo struct {
	store *Store
	items []*shipping.Company
}

// All returns the stored companies
func (r *CompanyRepo) All() []*shipping.Company { return r.items }

func (r *CompanyRepo) FindByCNPJs(_ context.Context, cnpjs []string) ([]*shipping.Company, error) {
	if err := r.store.fail("Companies.FindByCNPJs"); err != nil {
		return nil, err
	}
	want := toSet(cnpjs)
	var out []*shipping.Company
	for _, c := range r.items {
		if _, ok := want[c.CNPJ]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CompanyRepo) BulkCreate(_ context.Context, companies []*shipping.Company) error {
	if err := r.store.fail("Companies.BulkCreate"); err != nil {
		return err
	}
	r.items = append(r.items, companies...)
	return nil
}

// EcsOrderRepo is an in-memory shipping.EcsBuyOrderRepository
type EcsOrderRepo struct {
	store *Store
	items []*shipping.EcsBuyOrder
}

// Seed adds a carrier order directly
func (r *EcsOrderRepo) Seed(e *shipping.EcsBuyOrder) { r.items = append(r.items, e) }

// All returns the stored carrier orders
func (r *EcsOrderRepo) All() []*shipping.EcsBuyOrder { return r.items }

func (r *EcsOrderRepo) FindByEcsOrderIDs(_ context.Context, ids []string) ([]*shipping.EcsBuyOrder, error) {
	if err := r.store.fail("EcsOrders.FindByEcsOrderIDs"); err != nil {
		return nil, err
	}
	want := toSet(ids)
	var out []*shipping.EcsBuyOrder
	for _, e := range r.items {
		if _, ok := want[e.EcsOrderID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EcsOrderRepo) BulkUpsert(_ context.Context, orders []*shipping.EcsBuyOrder) error {
	if err := r.store.fail("EcsOrders.BulkUpsert"); err != nil {
		return err
	}
	for _, incoming := range orders {
		replaced := false
		for i, e := range r.items {
			if e.EcsOrderID == incoming.EcsOrderID {
				r.items[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			r.items = append(r.items, incoming)
		}
	}
	return nil
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
