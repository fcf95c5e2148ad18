package ecsorder

import (
	"context"
	"strconv"
	"time"

	"github.com/oms/backend/internal/domain/shipping"
	"github.com/oms/backend/internal/domain/trade"
	csvimport "github.com/oms/backend/internal/infrastructure/import"
	"github.com/oms/backend/internal/ingestion"
)

// Loader upserts carrier orders keyed by the carrier's own order id. Every
// row must reference an existing buy order; a dangling reference rolls the
// whole batch back.
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
	}
	if ec.HasErrors() {
		return ingestion.NewValidationError(ReportType, t.Len(), ec.Errors())
	}
	return nil
}

func (l *Loader) load(ctx context.Context, repos *ingestion.Repositories, t *ingestion.Table, res *ingestion.Result) error {
	companies, created, err := ingestion.ResolveCompanies(ctx, repos.Companies, ingestion.DistinctStrings(t, ColCNPJ))
	if err != nil {
		return err
	}
	res.CompaniesCreated += created

	existingOrders, err := repos.BuyOrders.FindByOrderNumbers(ctx, ingestion.DistinctStrings(t, ColOrderNumber))
	if err != nil {
		return err
	}
	ordersByNumber := make(map[string]*trade.BuyOrder, len(existingOrders))
	for _, o := range existingOrders {
		ordersByNumber[o.OrderNumber] = o
	}

	existing, err := repos.EcsOrders.FindByEcsOrderIDs(ctx, ingestion.DistinctStrings(t, ColEcsOrderID))
	if err != nil {
		return err
	}
	byEcsID := make(map[string]*shipping.EcsBuyOrder, len(existing))
	for _, e := range existing {
		byEcsID[e.EcsOrderID] = e
	}

	upserts := make(map[string]*shipping.EcsBuyOrder)
	for _, row := range t.Rows() {
		orderNumber := stringOf(row, ColOrderNumber)
		order, ok := ordersByNumber[orderNumber]
		if !ok {
			return &ingestion.MissingParentError{Line: row.Line, OrderNumber: orderNumber}
		}

		ecsID := stringOf(row, ColEcsOrderID)
		e, ok := byEcsID[ecsID]
		if !ok {
			e, err = shipping.NewEcsBuyOrder(order.ID, companies[stringOf(row, ColCNPJ)].ID, ecsID, stringOf(row, ColEcsOrderNumber))
			if err != nil {
				return err
			}
			byEcsID[ecsID] = e
		} else {
			e.BuyOrderID = order.ID
			e.CompanyID = companies[stringOf(row, ColCNPJ)].ID
			e.EcsOrderNumber = stringOf(row, ColEcsOrderNumber)
			e.Touch()
		}

		e.PaymentDate = timeOf(row, ColPaymentDate)
		e.Coupon = stringOf(row, ColCoupon)
		e.DeadlineDays = intOf(row, ColDeadlineDays)
		e.Carrier = stringOf(row, ColCarrier)
		e.RecipientName = stringOf(row, ColRecipientName)
		e.RecipientZipCode = stringOf(row, ColRecipientZipCode)
		e.RecipientCity = stringOf(row, ColRecipientCity)
		e.RecipientState = stringOf(row, ColRecipientState)
		e.EcsDeliveryDate = timeOf(row, ColEcsDeliveryDate)

		upserts[ecsID] = e
	}

	if len(upserts) > 0 {
		list := make([]*shipping.EcsBuyOrder, 0, len(upserts))
		for _, e := range upserts {
			list = append(list, e)
		}
		if err := repos.EcsOrders.BulkUpsert(ctx, list); err != nil {
			return err
		}
		res.EcsOrdersUpserted += len(list)
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

func timeOf(row *ingestion.Row, col string) *time.Time {
	t, ok := row.Get(col).AsTime()
	if !ok {
		return nil
	}
	return &t
}
