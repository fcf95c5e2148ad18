package customer

import (
	"github.com/oms/backend/internal/ingestion"
	"github.com/oms/backend/internal/ingestion/clean"
)

const customerSinceLayout = "02/01/2006 15:04:05"

// Transformer applies the customer-report cleaning rules
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

	clean.SplitNameInto(t, ColName, ColFirstName, ColLastName)

	lower := clean.LowerCase()
	for _, col := range []string{ColFirstName, ColLastName, ColEmail, ColCustomerGroup, ColState, ColCountry} {
		clean.Apply(t, col, lower)
	}

	clean.Apply(t, ColCustomerSince, clean.ParseTime(customerSinceLayout, tr.opts.Location))

	digits := clean.DigitsOnly()
	clean.Apply(t, ColPhone, digits)
	clean.Apply(t, ColPostalCode, digits)

	return t, nil
}
