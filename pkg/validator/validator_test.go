package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Code    string          `validate:"required"`
	Price   decimal.Decimal `validate:"gte=0"`
	ExpDate string          `validate:"dateonly"`
	Qty     int             `validate:"gt=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sample{Code: "X1", Price: decimal.NewFromInt(100), ExpDate: "2028-01-15", Qty: 1})
	assert.Empty(t, errs)

	errs = ValidateStruct(sample{Code: "X1", Price: decimal.Zero, Qty: 1})
	assert.Empty(t, errs, "empty date and zero price are allowed")
}

func TestValidateStruct_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input sample
		field string
		tag   string
	}{
		{"missing_code", sample{Price: decimal.Zero, Qty: 1}, "sample.Code", "required"},
		{"negative_price", sample{Code: "X", Price: decimal.NewFromInt(-1), Qty: 1}, "sample.Price", "gte"},
		{"bad_date", sample{Code: "X", ExpDate: "15/01/2028", Qty: 1}, "sample.ExpDate", "dateonly"},
		{"zero_quantity", sample{Code: "X"}, "sample.Qty", "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.input)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].FailedField)
			assert.Equal(t, tt.tag, errs[0].Tag)
			assert.NotEmpty(t, errs[0].Error())
		})
	}
}
