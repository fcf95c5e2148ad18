package csvimport

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// FieldType is the expected shape of a field's value
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeEmail   FieldType = "email"
)

// Value is a field value as seen by the validator. Present is false for
// missing cells so required checks can tell blank apart from absent.
type Value struct {
	Present bool
	Text    string
}

// FieldRule declares the constraints for one column
type FieldRule struct {
	Column      string
	Type        FieldType
	Required    bool
	MinLength   int
	MaxLength   int
	Pattern     *regexp.Regexp
	PatternDesc string
	CustomFunc  func(value string) error
}

// FieldRuleBuilder builds field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for a column
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// String sets the field type to string
func (b *FieldRuleBuilder) String() *FieldRuleBuilder {
	b.rule.Type = TypeString
	return b
}

// Int sets the field type to integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal sets the field type to decimal
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// Email sets the field type to email
func (b *FieldRuleBuilder) Email() *FieldRuleBuilder {
	b.rule.Type = TypeEmail
	return b
}

// MinLength sets the minimum value length
func (b *FieldRuleBuilder) MinLength(n int) *FieldRuleBuilder {
	b.rule.MinLength = n
	return b
}

// MaxLength sets the maximum value length
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Matches requires the value to match a pattern
func (b *FieldRuleBuilder) Matches(re *regexp.Regexp, desc string) *FieldRuleBuilder {
	b.rule.Pattern = re
	b.rule.PatternDesc = desc
	return b
}

// Custom adds a custom validation function
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build returns the assembled rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// ValidateRow checks one row against the rules, recording failures in ec.
// The get callback resolves a column to its value for this row.
func ValidateRow(row int, get func(column string) Value, rules []FieldRule, ec *ErrorCollection) {
	for _, rule := range rules {
		v := get(rule.Column)

		if !v.Present || v.Text == "" {
			if rule.Required {
				ec.AddRequired(row, rule.Column)
			}
			continue
		}

		switch rule.Type {
		case TypeInt:
			if _, err := strconv.Atoi(v.Text); err != nil {
				ec.AddType(row, rule.Column, "integer", v.Text)
				continue
			}
		case TypeDecimal:
			if _, err := decimal.NewFromString(v.Text); err != nil {
				ec.AddType(row, rule.Column, "decimal", v.Text)
				continue
			}
		case TypeEmail:
			if _, err := mail.ParseAddress(v.Text); err != nil {
				ec.AddFormat(row, rule.Column, "email address", v.Text)
				continue
			}
		}

		if rule.MinLength > 0 && len(v.Text) < rule.MinLength {
			ec.Add(NewRowErrorWithValue(row, rule.Column, ErrCodeInvalidFormat,
				fmt.Sprintf("length must be at least %d", rule.MinLength), v.Text))
			continue
		}
		if rule.MaxLength > 0 && len(v.Text) > rule.MaxLength {
			ec.Add(NewRowErrorWithValue(row, rule.Column, ErrCodeInvalidFormat,
				fmt.Sprintf("length must be at most %d", rule.MaxLength), v.Text))
			continue
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(v.Text) {
			ec.Add(NewRowErrorWithValue(row, rule.Column, ErrCodeInvalidFormat,
				fmt.Sprintf("value does not match %s", rule.PatternDesc), v.Text))
			continue
		}
		if rule.CustomFunc != nil {
			if err := rule.CustomFunc(v.Text); err != nil {
				ec.Add(NewRowErrorWithValue(row, rule.Column, ErrCodeInvalidFormat,
					err.Error(), v.Text))
			}
		}
	}
}
