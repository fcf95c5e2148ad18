package buyorder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms/backend/internal/ingestion"
)

func transformed(t *testing.T) *ingestion.Table {
	t.Helper()
	table := extract(t, sampleCSV)
	out, err := NewTransformer(ingestion.DefaultOptions()).Transform(table)
	require.NoError(t, err)
	return out
}

func TestTransform(t *testing.T) {
	t.Run("Identity and status columns lower-cased", func(t *testing.T) {
		table := transformed(t)
		row := table.Rows()[0]

		email, _ := row.Get(ColEmail).AsString()
		status, _ := row.Get(ColStatus).AsString()
		assert.Equal(t, "giovanna@example.com", email)
		assert.Equal(t, "pago", status)
	})

	t.Run("Payment type normalized to closed set", func(t *testing.T) {
		table := transformed(t)

		p0, _ := table.Rows()[0].Get(ColPaymentType).AsString()
		p1, _ := table.Rows()[1].Get(ColPaymentType).AsString()
		assert.Equal(t, "cartão de crédito", p0)
		assert.Equal(t, "boleto bancário", p1)
	})

	t.Run("Currency columns promoted to decimals", func(t *testing.T) {
		table := transformed(t)
		row := table.Rows()[0]

		total, ok := row.Get(ColTotalAmount).AsDecimal()
		require.True(t, ok)
		assert.True(t, total.Equal(decimal.RequireFromString("150.50")))

		shipping, _ := row.Get(ColShippingAmount).AsDecimal()
		assert.True(t, shipping.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("Order date promoted with report timezone", func(t *testing.T) {
		table := transformed(t)

		ts, ok := table.Rows()[0].Get(ColOrderDate).AsTime()
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 12, 25, 14, 30, 0, 0, ts.Location()), ts)
		assert.Equal(t, ingestion.DefaultLocation, ts.Location().String())
	})

	t.Run("CPF and phone reduced to digits", func(t *testing.T) {
		table := transformed(t)
		row := table.Rows()[0]

		cpf, _ := row.Get(ColCPF).AsString()
		phone, _ := row.Get(ColPhone).AsString()
		assert.Equal(t, "12345678901", cpf)
		assert.Equal(t, "5511987654321", phone)
	})

	t.Run("Transform is idempotent", func(t *testing.T) {
		tr := NewTransformer(ingestion.DefaultOptions())
		table := transformed(t)

		again, err := tr.Transform(table)
		require.NoError(t, err)
		row := again.Rows()[0]

		total, ok := row.Get(ColTotalAmount).AsDecimal()
		require.True(t, ok)
		assert.True(t, total.Equal(decimal.RequireFromString("150.50")))
		_, ok = row.Get(ColOrderDate).AsTime()
		assert.True(t, ok)
	})

	t.Run("Unparsable money defaults to zero", func(t *testing.T) {
		table := extract(t, sampleCSV)
		table.Rows()[0].Set(ColDiscountAmount, ingestion.StringCell("cortesia"))

		out, err := NewTransformer(ingestion.DefaultOptions()).Transform(table)
		require.NoError(t, err)

		d, ok := out.Rows()[0].Get(ColDiscountAmount).AsDecimal()
		require.True(t, ok)
		assert.True(t, d.IsZero())
	})

	t.Run("Reject policy keeps unparsable money as text", func(t *testing.T) {
		opts := ingestion.DefaultOptions()
		opts.Currency = ingestion.CurrencyRejectRow
		table := extract(t, sampleCSV)
		table.Rows()[0].Set(ColDiscountAmount, ingestion.StringCell("cortesia"))

		out, err := NewTransformer(opts).Transform(table)
		require.NoError(t, err)

		_, ok := out.Rows()[0].Get(ColDiscountAmount).AsDecimal()
		assert.False(t, ok)
	})
}
