package ecsorder

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/oms/backend/internal/ingestion"
	"github.com/oms/backend/internal/ingestion/clean"
)

const (
	deliveryDateLayout = "02/01/2006 15:04:05"
	paymentDateLayout  = "02/01/2006"
)

// placeholder the carrier system emits for unset delivery dates
var zeroDate = regexp.MustCompile(`^0{4}-0{2}-0{2}\s+0{2}:0{2}:0{2}$`)

// extraction patterns for the free-text details field
var (
	cnpjPattern     = regexp.MustCompile(`cnpj_(\d{14})`)
	deadlinePattern = regexp.MustCompile(`média\s+(\d+)`)
	couponPattern   = regexp.MustCompile(`meio de pagamento:[^\S\r\n]*\S+\s+(\S+)`)
)

//go:embed shipping_methods.json
var shippingMethodsJSON []byte

// loadCarrierRules turns the carrier synonym map into deterministic
// contains-rules, longest synonym first so specific names win
func loadCarrierRules() ([]clean.ReplaceRule, error) {
	var synonyms map[string]string
	if err := json.Unmarshal(shippingMethodsJSON, &synonyms); err != nil {
		return nil, fmt.Errorf("cannot parse shipping methods: %w", err)
	}
	finds := make([]string, 0, len(synonyms))
	for find := range synonyms {
		finds = append(finds, find)
	}
	sort.Slice(finds, func(i, j int) bool {
		if len(finds[i]) != len(finds[j]) {
			return len(finds[i]) > len(finds[j])
		}
		return finds[i] < finds[j]
	})
	rules := make([]clean.ReplaceRule, 0, len(finds))
	for _, find := range finds {
		rules = append(rules, clean.ReplaceRule{Find: find, Replace: synonyms[find]})
	}
	return rules, nil
}

// Transformer applies the carrier-report cleaning rules
type Transformer struct {
	opts         ingestion.Options
	carrierRules []clean.ReplaceRule
}

// NewTransformer builds the transformer with run-wide policies
func NewTransformer(opts ingestion.Options) (*Transformer, error) {
	rules, err := loadCarrierRules()
	if err != nil {
		return nil, err
	}
	return &Transformer{opts: opts, carrierRules: rules}, nil
}

// Transform implements ingestion.Transformer
func (tr *Transformer) Transform(t *ingestion.Table) (*ingestion.Table, error) {
	for _, col := range t.Columns() {
		clean.Apply(t, col, clean.Chain(clean.TrimSpace(), clean.BlankToMissing()))
	}

	lower := clean.LowerCase()
	for _, col := range []string{ColRecipientName, ColRecipientCity, ColRecipientState, ColDetails, ColCarrier, ColCarrierType} {
		clean.Apply(t, col, lower)
	}

	// both dates are optional, so a malformed value is dropped rather
	// than left for validation to reject
	clean.Apply(t, ColEcsDeliveryDate, clean.Chain(
		clean.MatchToMissing(zeroDate),
		clean.ParseTimeOrMissing(deliveryDateLayout, tr.opts.Location),
	))
	clean.Apply(t, ColPaymentDate, clean.ParseTimeOrMissing(paymentDateLayout, tr.opts.Location))

	clean.Apply(t, ColRecipientZipCode, clean.DigitsOnly())

	tr.extractFromDetails(t)

	clean.Apply(t, ColCarrier, clean.ReplaceContains(tr.carrierRules))
	tr.replaceCarrierWithType(t)

	return t, nil
}

// extractFromDetails derives the company tax id, the delivery deadline and
// the coupon code from the free-text internal note
func (tr *Transformer) extractFromDetails(t *ingestion.Table) {
	if !t.HasColumn(ColDetails) {
		return
	}
	t.AddColumn(ColCNPJ)
	t.AddColumn(ColDeadlineDays)
	t.AddColumn(ColCoupon)

	extractCNPJ := clean.ExtractPattern(cnpjPattern)
	extractDeadline := clean.ExtractPattern(deadlinePattern)
	extractCoupon := clean.Chain(
		clean.ExtractPattern(couponPattern),
		clean.TrimSpace(),
		clean.TrimRightCutset(".,;:"),
	)

	for _, row := range t.Rows() {
		details := row.Get(ColDetails)
		if row.Get(ColCNPJ).IsMissing() {
			row.Set(ColCNPJ, extractCNPJ(details))
		}
		if row.Get(ColDeadlineDays).IsMissing() {
			row.Set(ColDeadlineDays, extractDeadline(details))
		}
		if row.Get(ColCoupon).IsMissing() {
			row.Set(ColCoupon, extractCoupon(details))
		}
	}
}

// replaceCarrierWithType substitutes the generic postal carrier with the
// concrete service from the shipping-method column
func (tr *Transformer) replaceCarrierWithType(t *ingestion.Table) {
	if !t.HasColumn(ColCarrier) || !t.HasColumn(ColCarrierType) {
		return
	}
	for _, row := range t.Rows() {
		carrier, ok := row.Get(ColCarrier).AsString()
		if !ok || carrier != "correios" {
			continue
		}
		row.Set(ColCarrier, row.Get(ColCarrierType))
	}
}
