package ingestion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell(t *testing.T) {
	t.Run("String cell", func(t *testing.T) {
		c := StringCell("pago")
		s, ok := c.AsString()
		assert.True(t, ok)
		assert.Equal(t, "pago", s)
		assert.False(t, c.IsMissing())
		_, ok = c.AsDecimal()
		assert.False(t, ok)
	})

	t.Run("Decimal cell", func(t *testing.T) {
		c := DecimalCell(decimal.RequireFromString("10.50"))
		d, ok := c.AsDecimal()
		require.True(t, ok)
		assert.Equal(t, "10.5", d.String())
		assert.Equal(t, KindDecimal, c.Kind())
	})

	t.Run("Missing cell", func(t *testing.T) {
		assert.True(t, Missing.IsMissing())
		assert.Equal(t, "", Missing.Display())
	})

	t.Run("Display renders each kind", func(t *testing.T) {
		ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, "pago", StringCell("pago").Display())
		assert.Equal(t, "10.5", DecimalCell(decimal.RequireFromString("10.50")).Display())
		assert.Equal(t, "2024-03-05T10:00:00Z", TimeCell(ts).Display())
	})
}

func TestRow(t *testing.T) {
	row := NewRow(7)
	row.Set("status", StringCell("pago"))

	assert.Equal(t, 7, row.Line)
	s, _ := row.Get("status").AsString()
	assert.Equal(t, "pago", s)
	assert.True(t, row.Get("absent").IsMissing())
}

func TestTable(t *testing.T) {
	t.Run("Columns and rows", func(t *testing.T) {
		table := NewTable([]string{"order_number", "status"})
		row := NewRow(2)
		row.Set("order_number", StringCell("1001"))
		table.Append(row)

		assert.Equal(t, []string{"order_number", "status"}, table.Columns())
		assert.True(t, table.HasColumn("status"))
		assert.False(t, table.HasColumn("total"))
		assert.Equal(t, 1, table.Len())
	})

	t.Run("AddColumn is idempotent", func(t *testing.T) {
		table := NewTable([]string{"a"})
		table.AddColumn("b")
		table.AddColumn("b")
		assert.Equal(t, []string{"a", "b"}, table.Columns())
	})

	t.Run("RenameColumns moves cell data", func(t *testing.T) {
		table := NewTable([]string{"número do pedido", "status"})
		row := NewRow(2)
		row.Set("número do pedido", StringCell("1001"))
		table.Append(row)

		table.RenameColumns(map[string]string{"número do pedido": "order_number"})

		assert.Equal(t, []string{"order_number", "status"}, table.Columns())
		s, _ := table.Rows()[0].Get("order_number").AsString()
		assert.Equal(t, "1001", s)
		assert.True(t, table.Rows()[0].Get("número do pedido").IsMissing())
	})

	t.Run("Last and DropLast", func(t *testing.T) {
		table := NewTable([]string{"a"})
		assert.Nil(t, table.Last())

		r1, r2 := NewRow(2), NewRow(3)
		table.Append(r1)
		table.Append(r2)
		assert.Same(t, r2, table.Last())

		table.DropLast()
		assert.Same(t, r1, table.Last())
		assert.Equal(t, 1, table.Len())
	})
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"  Número do Pedido ": "numero do pedido",
		"E-MAIL":              "e-mail",
		"Método de Envio":     "metodo de envio",
		"cpf":                 "cpf",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), "input %q", in)
	}
}
