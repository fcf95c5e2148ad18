package csvimport

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getter(fields map[string]string) func(string) Value {
	return func(column string) Value {
		v, ok := fields[column]
		return Value{Present: ok, Text: v}
	}
}

func TestValidateRow(t *testing.T) {
	t.Run("Required field missing", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("email").Required().Build()}

		ValidateRow(2, getter(map[string]string{}), rules, ec)

		require.True(t, ec.HasErrors())
		assert.Equal(t, ErrCodeRequiredField, ec.Errors()[0].Code)
		assert.Equal(t, "email", ec.Errors()[0].Column)
	})

	t.Run("Required field blank", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("email").Required().Build()}

		ValidateRow(2, getter(map[string]string{"email": ""}), rules, ec)

		assert.True(t, ec.HasErrors())
	})

	t.Run("Optional field missing is ignored", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("tracking_code").Build()}

		ValidateRow(2, getter(map[string]string{}), rules, ec)

		assert.False(t, ec.HasErrors())
	})

	t.Run("Integer type check", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("quantity").Int().Build()}

		ValidateRow(2, getter(map[string]string{"quantity": "abc"}), rules, ec)

		require.True(t, ec.HasErrors())
		assert.Equal(t, ErrCodeInvalidType, ec.Errors()[0].Code)
	})

	t.Run("Decimal type check", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("total").Decimal().Build()}

		ValidateRow(2, getter(map[string]string{"total": "10.50"}), rules, ec)
		assert.False(t, ec.HasErrors())

		ValidateRow(3, getter(map[string]string{"total": "R$ 10,50"}), rules, ec)
		assert.True(t, ec.HasErrors())
	})

	t.Run("Email format check", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("email").Email().Build()}

		ValidateRow(2, getter(map[string]string{"email": "alice@example.com"}), rules, ec)
		assert.False(t, ec.HasErrors())

		ValidateRow(3, getter(map[string]string{"email": "not-an-email"}), rules, ec)
		require.True(t, ec.HasErrors())
		assert.Equal(t, ErrCodeInvalidFormat, ec.Errors()[0].Code)
	})

	t.Run("Length bounds", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{Field("cpf").MinLength(11).MaxLength(11).Build()}

		ValidateRow(2, getter(map[string]string{"cpf": "12345678901"}), rules, ec)
		assert.False(t, ec.HasErrors())

		ValidateRow(3, getter(map[string]string{"cpf": "123"}), rules, ec)
		assert.Equal(t, 1, ec.TotalCount())
	})

	t.Run("Pattern check", func(t *testing.T) {
		ec := NewErrorCollection(10)
		re := regexp.MustCompile(`^\d{8}$`)
		rules := []FieldRule{Field("zip_code").Matches(re, "8-digit zip code").Build()}

		ValidateRow(2, getter(map[string]string{"zip_code": "01310930"}), rules, ec)
		assert.False(t, ec.HasErrors())

		ValidateRow(3, getter(map[string]string{"zip_code": "01310-930"}), rules, ec)
		require.True(t, ec.HasErrors())
		assert.Contains(t, ec.Errors()[0].Message, "8-digit zip code")
	})

	t.Run("Custom check", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{
			Field("status").Custom(func(v string) error {
				if v == "unknown" {
					return errors.New("unrecognized status")
				}
				return nil
			}).Build(),
		}

		ValidateRow(2, getter(map[string]string{"status": "unknown"}), rules, ec)

		require.True(t, ec.HasErrors())
		assert.Equal(t, "unrecognized status", ec.Errors()[0].Message)
	})

	t.Run("Multiple rules accumulate across rows", func(t *testing.T) {
		ec := NewErrorCollection(10)
		rules := []FieldRule{
			Field("order_number").Required().Build(),
			Field("total").Required().Decimal().Build(),
		}

		ValidateRow(2, getter(map[string]string{"total": "x"}), rules, ec)
		ValidateRow(3, getter(map[string]string{"order_number": "1001", "total": "9.90"}), rules, ec)

		assert.Equal(t, 2, ec.TotalCount())
	})
}
