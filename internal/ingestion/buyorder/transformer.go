package buyorder

import (
	"github.com/oms/backend/internal/ingestion"
	"github.com/oms/backend/internal/ingestion/clean"
)

// order timestamps arrive naive in the store's local time
const orderDateLayout = "02/01/2006 15:04:05"

// paymentTypeRules normalizes the free-text payment column to the closed
// set of payment type names. Order matters: earlier rules win.
var paymentTypeRules = []clean.ReplaceRule{
	{Find: "pix", Replace: "pix"},
	{Find: "cartão", Replace: "cartão de crédito"},
	{Find: "boleto", Replace: "boleto bancário"},
	{Find: "necessário", Replace: "saldo"},
}

// Transformer applies the buy-orders cleaning rules. Pure and idempotent:
// running it over its own output changes nothing.
type Transformer struct {
	opts ingestion.Options
}

// NewTransformer builds the transformer with run-wide policies
func NewTransformer(opts ingestion.Options) *Transformer {
	return &Transformer{opts: opts}
}

// Transform implements ingestion.Transformer
func (tr *Transformer) Transform(t *ingestion.Table) (*ingestion.Table, error) {
	for _, col := range t.Columns() {
		clean.Apply(t, col, clean.Chain(clean.TrimSpace(), clean.BlankToMissing()))
	}

	lower := clean.LowerCase()
	for _, col := range []string{ColFirstName, ColLastName, ColEmail, ColCustomerGroup, ColStatus} {
		clean.Apply(t, col, lower)
	}

	clean.Apply(t, ColPaymentType, clean.Chain(lower, clean.ReplaceContains(paymentTypeRules)))

	currency := clean.Currency(tr.opts.Currency)
	for _, col := range []string{ColShippingAmount, ColDiscountAmount, ColTotalAmount} {
		clean.Apply(t, col, currency)
	}

	clean.Apply(t, ColOrderDate, clean.ParseTime(orderDateLayout, tr.opts.Location))

	digits := clean.DigitsOnly()
	clean.Apply(t, ColCPF, digits)
	clean.Apply(t, ColPhone, digits)

	return t, nil
}
