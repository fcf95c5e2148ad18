// Package ecsorder ingests the carrier system's order export and links it
// back to the store's buy orders. Rows referencing an unknown buy order
// fail the whole batch: carrier data must never exist without its sale.
package ecsorder

import (
	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

// ReportType is the registry key for this report
const ReportType = "ecs_buy_orders_csv"

// Canonical column names after extraction
const (
	ColOrderNumber      = "order_number"
	ColEcsOrderNumber   = "ecs_order_number"
	ColEcsOrderID       = "ecs_order_id"
	ColDetails          = "details"
	ColPaymentDate      = "payment_date"
	ColRecipientName    = "recipient_name"
	ColRecipientZipCode = "recipient_zip_code"
	ColRecipientCity    = "recipient_city"
	ColRecipientState   = "recipient_state"
	ColEcsDeliveryDate  = "ecs_delivery_date"
	ColCarrier          = "carrier"
	ColCarrierType      = "carrier_type"
)

// Columns derived from the free-text details field during transform
const (
	ColCNPJ         = "cnpj"
	ColDeadlineDays = "deadline_days"
	ColCoupon       = "coupon"
)

// columnAliases maps accent-folded export headers to canonical names
var columnAliases = map[string]string{
	"numero da ordem":    ColOrderNumber,
	"numero do pedido":   ColEcsOrderNumber,
	"id":                 ColEcsOrderID,
	"observacao interna": ColDetails,
	"data do pagamento":  ColPaymentDate,
	"nome do contato":    ColRecipientName,
	"cep do contato":     ColRecipientZipCode,
	"cidade do contato":  ColRecipientCity,
	"uf do contato":      ColRecipientState,
	"data de entrega":    ColEcsDeliveryDate,
	"transportadora":     ColCarrier,
	"forma frete":        ColCarrierType,
}

// validationRules are checked after cleaning, before any write
func validationRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field(ColOrderNumber).Required().Build(),
		csvimport.Field(ColEcsOrderID).Required().Build(),
		csvimport.Field(ColCNPJ).Required().MinLength(14).MaxLength(14).Build(),
		csvimport.Field(ColDeadlineDays).Int().Build(),
	}
}
