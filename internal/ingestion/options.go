package ingestion

import (
	"time"
)

// CurrencyPolicy decides what happens when a monetary value cannot be
// parsed. The original exports are known to carry garbage in money columns,
// so the default is a documented lossy fallback to zero; stricter
// deployments can reject the batch instead.
type CurrencyPolicy string

const (
	CurrencyZeroOnError CurrencyPolicy = "zero"
	CurrencyRejectRow   CurrencyPolicy = "reject"
)

// IdentityPreference names the policy for the ambiguous-identity case
// where email and cpf match two different existing customers.
type IdentityPreference string

const (
	PreferEmail IdentityPreference = "email"
	PreferCPF   IdentityPreference = "cpf"
)

// Options carries the run-wide ingestion policies
type Options struct {
	// Location is attached to naive parsed datetimes
	Location *time.Location
	// Currency selects the unparsable-money policy
	Currency CurrencyPolicy
	// Identity selects the ambiguous-identity preference
	Identity IdentityPreference
	// MaxErrors caps how many row errors are collected before truncation
	MaxErrors int
}

// DefaultLocation is the reference timezone of the source reports
const DefaultLocation = "America/Sao_Paulo"

// DefaultOptions returns the documented default policies
func DefaultOptions() Options {
	loc, err := time.LoadLocation(DefaultLocation)
	if err != nil {
		loc = time.FixedZone("-03", -3*60*60)
	}
	return Options{
		Location:  loc,
		Currency:  CurrencyZeroOnError,
		Identity:  PreferEmail,
		MaxErrors: 100,
	}
}
