// Package buyorder ingests the store's buy-orders export: one row per
// sale, carrying both the order attributes and the buyer's contact data.
package buyorder

import (
	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

// ReportType is the registry key for this report
const ReportType = "buy_orders_csv"

// Canonical column names after extraction
const (
	ColOrderNumber     = "order_number"
	ColOrderExternalID = "order_external_id"
	ColOrderDate       = "order_date"
	ColStatus          = "status"
	ColTrackingCode    = "tracking_code"
	ColSoldQuantity    = "sold_quantity"
	ColPaymentType     = "payment_type"
	ColShippingAmount  = "shipping_amount"
	ColDiscountAmount  = "discount_amount"
	ColTotalAmount     = "total_amount"
	ColFirstName       = "first_name"
	ColLastName        = "last_name"
	ColEmail           = "email"
	ColCustomerGroup   = "customer_group"
	ColCPF             = "cpf"
	ColPhone           = "phone"
)

// columnAliases maps accent-folded export headers to canonical names.
// The export mixes Portuguese and English headers.
var columnAliases = map[string]string{
	"pedido #":             ColOrderNumber,
	"id do pedido":         ColOrderExternalID,
	"comprado em":          ColOrderDate,
	"status":               ColStatus,
	"numero do rastreador": ColTrackingCode,
	"qtd. vendida":         ColSoldQuantity,
	"payment type":         ColPaymentType,
	"frete":                ColShippingAmount,
	"desconto":             ColDiscountAmount,
	"total da venda":       ColTotalAmount,
	"firstname":            ColFirstName,
	"lastname":             ColLastName,
	"email":                ColEmail,
	"grupo do cliente":     ColCustomerGroup,
	"numero cpf/cnpj":      ColCPF,
	"shipping telephone":   ColPhone,
}

// validationRules are checked after cleaning, before any write. One
// violation rejects the whole batch.
func validationRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field(ColOrderNumber).Required().Build(),
		csvimport.Field(ColOrderExternalID).Required().Build(),
		csvimport.Field(ColOrderDate).Required().Build(),
		csvimport.Field(ColStatus).Required().Build(),
		csvimport.Field(ColPaymentType).Required().Build(),
		csvimport.Field(ColSoldQuantity).Int().Build(),
		csvimport.Field(ColShippingAmount).Decimal().Build(),
		csvimport.Field(ColDiscountAmount).Decimal().Build(),
		csvimport.Field(ColTotalAmount).Decimal().Build(),
	}
}
