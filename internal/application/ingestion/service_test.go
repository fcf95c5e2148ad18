package ingestion

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oms/backend/internal/domain/partner"
	coreingestion "github.com/oms/backend/internal/ingestion"
	"github.com/oms/backend/internal/ingestion/ingestiontest"
)

const buyOrderHeader = "Pedido #,ID do Pedido,Comprado Em,Status,Número do Rastreador,Qtd. Vendida,Payment Type,Frete,Desconto,Total da Venda,Firstname,Lastname,Email,Grupo do Cliente,Número CPF/CNPJ,Shipping Telephone\n"

func newService(t *testing.T, store *ingestiontest.Store) *ReportService {
	t.Helper()
	registry, err := NewDefaultRegistry(ingestiontest.NewTxManager(store), coreingestion.DefaultOptions(), zap.NewNop())
	require.NoError(t, err)
	return NewReportService(registry, zap.NewNop())
}

func process(t *testing.T, svc *ReportService, reportType, csv string) (*coreingestion.Result, error) {
	t.Helper()
	return svc.ProcessReport(context.Background(), reportType, coreingestion.ReaderSource("upload.csv", strings.NewReader(csv)))
}

func TestProcessReport(t *testing.T) {
	t.Run("Unknown report type is a caller error", func(t *testing.T) {
		svc := newService(t, ingestiontest.NewStore())

		_, err := process(t, svc, "refunds_csv", "a,b\n1,2")

		assert.ErrorIs(t, err, coreingestion.ErrUnknownReportType)
	})

	t.Run("Report types are listed for the caller", func(t *testing.T) {
		svc := newService(t, ingestiontest.NewStore())

		assert.Equal(t, []string{"buy_orders_csv", "customers_csv", "ecs_buy_orders_csv"}, svc.ReportTypes())
	})

	t.Run("Newer row updates existing customer, older row creates a new one", func(t *testing.T) {
		store := ingestiontest.NewStore()
		existing, err := partner.NewCustomer("gabi@example.com", "11122233344", "gabi", "gomes")
		require.NoError(t, err)
		lastOrder := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
		existing.LastOrder = &lastOrder
		store.Customers.Seed(existing)
		svc := newService(t, store)

		csv := buyOrderHeader +
			`4001,930001,01/07/2023 10:00:00,Pago,,1,PIX,"R$ 0,00","R$ 0,00","R$ 50,00",Gabi,Gomes,gabi@example.com,Vip,111.222.333-44,` + "\n" +
			`4002,930002,01/01/2023 10:00:00,Pago,,1,PIX,"R$ 0,00","R$ 0,00","R$ 20,00",Nino,Nunes,nino@example.com,Varejo,555.666.777-88,` + "\n"

		res, err := process(t, svc, "buy_orders_csv", csv)
		require.NoError(t, err)

		assert.Equal(t, 1, res.CustomersCreated)
		assert.Equal(t, 1, res.CustomersUpdated)
		assert.Equal(t, 2, res.OrdersCreated)
		assert.Len(t, store.Customers.All(), 2)

		gabi := store.Customers.FindByEmail("gabi@example.com")
		assert.Equal(t, time.July, gabi.LastOrder.Month())
		require.NotNil(t, gabi.GroupID)
	})

	t.Run("Re-ingesting reflects a status change exactly once", func(t *testing.T) {
		store := ingestiontest.NewStore()
		svc := newService(t, store)

		first := buyOrderHeader +
			`5001,940001,01/08/2023 10:00:00,Pago,,1,PIX,"R$ 0,00","R$ 0,00","R$ 60,00",Rui,Reis,rui@example.com,Varejo,,` + "\n"
		_, err := process(t, svc, "buy_orders_csv", first)
		require.NoError(t, err)

		second := strings.Replace(first, "Pago", "Enviado", 1)
		res, err := process(t, svc, "buy_orders_csv", second)
		require.NoError(t, err)

		assert.Equal(t, 0, res.CustomersCreated)
		assert.Equal(t, 0, res.OrdersCreated)
		assert.Equal(t, 0, res.DetailsCreated)
		assert.Equal(t, 1, res.DetailsUpdated)
		assert.Len(t, store.BuyOrders.All(), 1)
		assert.Len(t, store.Details.All(), 1)

		var names []string
		for _, s := range store.Statuses.All() {
			names = append(names, s.Name)
		}
		assert.ElementsMatch(t, []string{"pago", "enviado"}, names)
	})

	t.Run("ECS row without its buy order aborts with no side effects", func(t *testing.T) {
		store := ingestiontest.NewStore()
		svc := newService(t, store)

		csv := `ID,Número do Pedido,Numero da Ordem,Data do Pagamento,Nome do contato,Cidade do contato,UF do Contato,CEP do contato,Data de Entrega,Observação Interna,Transportadora,Forma Frete
88001,ECS-1,9999,20/12/2023,Alguém,São Paulo,SP,01310-930,,"cnpj_12345678000190 média 2",JadLog,
`
		_, err := process(t, svc, "ecs_buy_orders_csv", csv)

		var mpe *coreingestion.MissingParentError
		require.ErrorAs(t, err, &mpe)
		assert.Empty(t, store.EcsOrders.All())
		assert.Empty(t, store.Companies.All())
		assert.Empty(t, store.BuyOrders.All())
	})

	t.Run("Customer report flows through the same service", func(t *testing.T) {
		store := ingestiontest.NewStore()
		svc := newService(t, store)

		csv := `ID,Nome,E-mail,Grupo,Telefone,CEP,País,Estado,Cliente Desde,Créditos / Vale Presentes
600,Olivia Prado,olivia@example.com,Vip,,,Brasil,BA,15/02/2021 09:00:00,
`
		res, err := process(t, svc, "customers_csv", csv)
		require.NoError(t, err)

		assert.Equal(t, 1, res.CustomersCreated)
		require.NotNil(t, store.Customers.FindByEmail("olivia@example.com"))
	})
}
