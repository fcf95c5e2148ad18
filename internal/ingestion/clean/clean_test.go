package clean

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms/backend/internal/ingestion"
)

func TestCurrency(t *testing.T) {
	zero := Currency(ingestion.CurrencyZeroOnError)

	t.Run("Brazilian format with symbol", func(t *testing.T) {
		c := zero(ingestion.StringCell("R$ 1.234,56"))
		d, ok := c.AsDecimal()
		require.True(t, ok)
		assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
	})

	t.Run("Plain amount", func(t *testing.T) {
		c := zero(ingestion.StringCell("10,00"))
		d, ok := c.AsDecimal()
		require.True(t, ok)
		assert.True(t, d.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("Unparsable becomes zero under zero policy", func(t *testing.T) {
		c := zero(ingestion.StringCell("grátis"))
		d, ok := c.AsDecimal()
		require.True(t, ok)
		assert.True(t, d.IsZero())
	})

	t.Run("Unparsable stays string under reject policy", func(t *testing.T) {
		reject := Currency(ingestion.CurrencyRejectRow)
		c := reject(ingestion.StringCell("grátis"))
		s, ok := c.AsString()
		require.True(t, ok)
		assert.Equal(t, "grátis", s)
	})

	t.Run("Already-promoted cell untouched", func(t *testing.T) {
		in := ingestion.DecimalCell(decimal.RequireFromString("7.77"))
		out := zero(in)
		assert.Equal(t, in, out)
	})

	t.Run("Missing passes through", func(t *testing.T) {
		assert.True(t, zero(ingestion.Missing).IsMissing())
	})
}

func TestParseTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	t.Run("Naive datetime gets location attached", func(t *testing.T) {
		fn := ParseTime("02/01/2006 15:04:05", loc)
		c := fn(ingestion.StringCell("25/12/2023 14:30:00"))

		ts, ok := c.AsTime()
		require.True(t, ok)
		assert.Equal(t, 2023, ts.Year())
		assert.Equal(t, time.December, ts.Month())
		assert.Equal(t, 25, ts.Day())
		assert.Equal(t, loc, ts.Location())
	})

	t.Run("Date-only layout", func(t *testing.T) {
		fn := ParseTime("02/01/2006", loc)
		c := fn(ingestion.StringCell("05/03/2024"))

		ts, ok := c.AsTime()
		require.True(t, ok)
		assert.Equal(t, 5, ts.Day())
	})

	t.Run("Unparsable stays string", func(t *testing.T) {
		fn := ParseTime("02/01/2006", loc)
		c := fn(ingestion.StringCell("not a date"))

		s, ok := c.AsString()
		require.True(t, ok)
		assert.Equal(t, "not a date", s)
	})

	t.Run("Idempotent on time cells", func(t *testing.T) {
		fn := ParseTime("02/01/2006", loc)
		in := ingestion.TimeCell(time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
		assert.Equal(t, in, fn(in))
	})
}

func TestDigitsOnly(t *testing.T) {
	fn := DigitsOnly()

	t.Run("Strips punctuation", func(t *testing.T) {
		c := fn(ingestion.StringCell("123.456.789-01"))
		s, _ := c.AsString()
		assert.Equal(t, "12345678901", s)
	})

	t.Run("Phone with country code", func(t *testing.T) {
		c := fn(ingestion.StringCell("+55 (11) 98765-4321"))
		s, _ := c.AsString()
		assert.Equal(t, "5511987654321", s)
	})

	t.Run("No digits becomes missing", func(t *testing.T) {
		assert.True(t, fn(ingestion.StringCell("n/a")).IsMissing())
	})
}

func TestBlankAndMatchToMissing(t *testing.T) {
	t.Run("Blank to missing", func(t *testing.T) {
		fn := BlankToMissing()
		assert.True(t, fn(ingestion.StringCell("   ")).IsMissing())
		assert.False(t, fn(ingestion.StringCell("x")).IsMissing())
	})

	t.Run("Zero date to missing", func(t *testing.T) {
		fn := MatchToMissing(regexp.MustCompile(`^0{4}-0{2}-0{2}\s+0{2}:0{2}:0{2}`))
		assert.True(t, fn(ingestion.StringCell("0000-00-00 00:00:00")).IsMissing())
		assert.False(t, fn(ingestion.StringCell("2024-01-01 10:00:00")).IsMissing())
	})
}

func TestReplaceContains(t *testing.T) {
	rules := []ReplaceRule{
		{Find: "cartão", Replace: "cartão de crédito"},
		{Find: "boleto", Replace: "boleto bancário"},
		{Find: "necessário", Replace: "saldo"},
		{Find: "pix", Replace: "pix"},
	}
	fn := ReplaceContains(rules)

	t.Run("Rewrites on substring match", func(t *testing.T) {
		c := fn(ingestion.StringCell("cartão visa 3x"))
		s, _ := c.AsString()
		assert.Equal(t, "cartão de crédito", s)
	})

	t.Run("Case insensitive", func(t *testing.T) {
		c := fn(ingestion.StringCell("Boleto à vista"))
		s, _ := c.AsString()
		assert.Equal(t, "boleto bancário", s)
	})

	t.Run("First matching rule wins", func(t *testing.T) {
		c := fn(ingestion.StringCell("não é necessário cartão"))
		s, _ := c.AsString()
		assert.Equal(t, "cartão de crédito", s)
	})

	t.Run("No match passes through", func(t *testing.T) {
		c := fn(ingestion.StringCell("transferência"))
		s, _ := c.AsString()
		assert.Equal(t, "transferência", s)
	})
}

func TestExtractPattern(t *testing.T) {
	t.Run("Captures group", func(t *testing.T) {
		fn := ExtractPattern(regexp.MustCompile(`cnpj_(\d{14})`))
		c := fn(ingestion.StringCell("transportadora cnpj_12345678000190 sedex"))
		s, _ := c.AsString()
		assert.Equal(t, "12345678000190", s)
	})

	t.Run("No match becomes missing", func(t *testing.T) {
		fn := ExtractPattern(regexp.MustCompile(`média\s+(\d+)`))
		assert.True(t, fn(ingestion.StringCell("sem prazo")).IsMissing())
	})
}

func TestSplitName(t *testing.T) {
	t.Run("First and last", func(t *testing.T) {
		first, last := SplitName("Maria da Silva")
		assert.Equal(t, "Maria", first)
		assert.Equal(t, "da Silva", last)
	})

	t.Run("Single word", func(t *testing.T) {
		first, last := SplitName("Cher")
		assert.Equal(t, "Cher", first)
		assert.Equal(t, "", last)
	})

	t.Run("Blank", func(t *testing.T) {
		first, last := SplitName("   ")
		assert.Equal(t, "", first)
		assert.Equal(t, "", last)
	})
}

func TestApplyAndChain(t *testing.T) {
	t.Run("Apply rewrites one column", func(t *testing.T) {
		table := ingestion.NewTable([]string{"status", "total"})
		row := ingestion.NewRow(2)
		row.Set("status", ingestion.StringCell("  PAGO  "))
		row.Set("total", ingestion.StringCell("  10,00  "))
		table.Append(row)

		Apply(table, "status", Chain(TrimSpace(), LowerCase()))

		s, _ := table.Rows()[0].Get("status").AsString()
		assert.Equal(t, "pago", s)
		unchanged, _ := table.Rows()[0].Get("total").AsString()
		assert.Equal(t, "  10,00  ", unchanged)
	})

	t.Run("Apply to absent column is a no-op", func(t *testing.T) {
		table := ingestion.NewTable([]string{"status"})
		Apply(table, "tracking_code", LowerCase())
		assert.Equal(t, []string{"status"}, table.Columns())
	})

	t.Run("SplitNameInto adds derived columns", func(t *testing.T) {
		table := ingestion.NewTable([]string{"customer_name"})
		row := ingestion.NewRow(2)
		row.Set("customer_name", ingestion.StringCell("João Pereira Souza"))
		table.Append(row)

		SplitNameInto(table, "customer_name", "first_name", "last_name")

		assert.True(t, table.HasColumn("first_name"))
		first, _ := table.Rows()[0].Get("first_name").AsString()
		last, _ := table.Rows()[0].Get("last_name").AsString()
		assert.Equal(t, "João", first)
		assert.Equal(t, "Pereira Souza", last)
	})
}
