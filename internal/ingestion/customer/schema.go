// Package customer ingests the store's customer-profile export. It only
// creates and enriches customers; orders are untouched.
package customer

import (
	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

// ReportType is the registry key for this report
const ReportType = "customers_csv"

// Canonical column names after extraction
const (
	ColExternalID    = "external_id"
	ColName          = "name"
	ColFirstName     = "first_name"
	ColLastName      = "last_name"
	ColEmail         = "email"
	ColCustomerGroup = "customer_group"
	ColPhone         = "phone"
	ColPostalCode    = "postal_code"
	ColCountry       = "country"
	ColState         = "state"
	ColCustomerSince = "customer_since"
	ColStoreCredit   = "store_credit"
)

// columnAliases maps accent-folded export headers to canonical names
var columnAliases = map[string]string{
	"id":                        ColExternalID,
	"nome":                      ColName,
	"e-mail":                    ColEmail,
	"grupo":                     ColCustomerGroup,
	"telefone":                  ColPhone,
	"cep":                       ColPostalCode,
	"pais":                      ColCountry,
	"estado":                    ColState,
	"cliente desde":             ColCustomerSince,
	"creditos / vale presentes": ColStoreCredit,
}

// validationRules are checked after cleaning, before any write
func validationRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field(ColExternalID).Required().Build(),
		csvimport.Field(ColEmail).Required().Build(),
		csvimport.Field(ColCustomerSince).Required().Build(),
	}
}
