package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

type stubExtractor struct {
	table *Table
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, _ Source) (*Table, error) {
	return s.table, s.err
}

type stubTransformer struct{ err error }

func (s *stubTransformer) Transform(t *Table) (*Table, error) {
	return t, s.err
}

type stubLoader struct {
	result *Result
	err    error
	called bool
}

func (s *stubLoader) Load(_ context.Context, _ *Table) (*Result, error) {
	s.called = true
	return s.result, s.err
}

func TestPipelineRun(t *testing.T) {
	t.Run("Happy path stamps report type and rows", func(t *testing.T) {
		table := NewTable([]string{"a"})
		table.Append(NewRow(2))
		loader := &stubLoader{result: &Result{OrdersCreated: 1}}
		p := NewPipeline("buy_orders_csv", &stubExtractor{table: table}, &stubTransformer{}, loader, zap.NewNop())

		res, err := p.Run(context.Background(), ReaderSource("test", strings.NewReader("")))

		require.NoError(t, err)
		assert.Equal(t, "buy_orders_csv", res.ReportType)
		assert.Equal(t, 1, res.Rows)
		assert.Equal(t, 1, res.OrdersCreated)
	})

	t.Run("Extract failure aborts before load", func(t *testing.T) {
		boom := NewSourceReadError("orders.csv", errors.New("no such file"))
		loader := &stubLoader{}
		p := NewPipeline("buy_orders_csv", &stubExtractor{err: boom}, &stubTransformer{}, loader, nil)

		_, err := p.Run(context.Background(), FileSource("orders.csv"))

		var sre *SourceReadError
		require.ErrorAs(t, err, &sre)
		assert.False(t, loader.called)
	})

	t.Run("Transform failure aborts before load", func(t *testing.T) {
		loader := &stubLoader{}
		p := NewPipeline("buy_orders_csv", &stubExtractor{table: NewTable(nil)},
			&stubTransformer{err: errors.New("bad rules")}, loader, nil)

		_, err := p.Run(context.Background(), ReaderSource("test", strings.NewReader("")))

		require.Error(t, err)
		assert.False(t, loader.called)
	})

	t.Run("Cancelled context stops between stages", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		loader := &stubLoader{}
		p := NewPipeline("buy_orders_csv", &stubExtractor{table: NewTable(nil)}, &stubTransformer{}, loader, nil)

		_, err := p.Run(ctx, ReaderSource("test", strings.NewReader("")))

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, loader.called)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("Resolve known type", func(t *testing.T) {
		r := NewRegistry()
		p := NewPipeline("customers_csv", &stubExtractor{}, &stubTransformer{}, &stubLoader{}, nil)
		r.Register(p)

		got, err := r.Resolve("customers_csv")
		require.NoError(t, err)
		assert.Same(t, p, got)
	})

	t.Run("Unknown type", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Resolve("refunds_csv")
		assert.ErrorIs(t, err, ErrUnknownReportType)
		assert.Contains(t, err.Error(), "refunds_csv")
	})

	t.Run("ReportTypes sorted", func(t *testing.T) {
		r := NewRegistry()
		r.Register(NewPipeline("ecs_buy_orders_csv", &stubExtractor{}, &stubTransformer{}, &stubLoader{}, nil))
		r.Register(NewPipeline("buy_orders_csv", &stubExtractor{}, &stubTransformer{}, &stubLoader{}, nil))
		r.Register(NewPipeline("customers_csv", &stubExtractor{}, &stubTransformer{}, &stubLoader{}, nil))

		assert.Equal(t, []string{"buy_orders_csv", "customers_csv", "ecs_buy_orders_csv"}, r.ReportTypes())
	})
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError("buy_orders_csv", 10, []csvimport.RowError{
		csvimport.NewRowError(3, "email", csvimport.ErrCodeRequiredField, `field "email" is required`),
	})
	assert.Contains(t, ve.Error(), "buy_orders_csv")
	assert.Contains(t, ve.Error(), "1 of 10")
}

func TestSourceOpen(t *testing.T) {
	t.Run("Reader source", func(t *testing.T) {
		src := ReaderSource("upload", strings.NewReader("a,b\n1,2"))
		rc, err := src.Open()
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, "upload", src.Ident())
	})

	t.Run("Missing file", func(t *testing.T) {
		src := FileSource("/nonexistent/orders.csv")
		_, err := src.Open()
		var sre *SourceReadError
		require.ErrorAs(t, err, &sre)
		assert.Equal(t, "/nonexistent/orders.csv", sre.Source)
	})
}
