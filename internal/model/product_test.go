package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_StockPercentage(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		initial  int
		want     float64
		low      bool
	}{
		{"twenty_percent", 2, 10, 20, true},
		{"eighty_percent", 8, 10, 80, false},
		{"exactly_threshold", 3, 10, 30, false},
		{"restocked_above_initial", 25, 20, 125, false},
		{"empty", 0, 10, 0, true},
		{"zero_initial", 5, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Quantity: tt.quantity, InitialQuantity: tt.initial}
			assert.InDelta(t, tt.want, p.StockPercentage(), 1e-9)
			assert.Equal(t, tt.low, p.IsLowStock())
		})
	}
}

func TestProduct_Value(t *testing.T) {
	p := Product{Quantity: 15, UnitPrice: decimal.NewFromInt(100)}
	assert.True(t, p.Value().Equal(decimal.NewFromInt(1500)))
}

func TestProduct_Matches(t *testing.T) {
	p := Product{Name: "Laptop Dell XPS 13", Code: "LT-DELL-001", Brand: "Dell"}

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("xps"))
	assert.True(t, p.Matches("lt-dell"))
	assert.True(t, p.Matches(" DELL "))
	assert.False(t, p.Matches("iphone"))
}

func TestProductInput_Normalize(t *testing.T) {
	in := ProductInput{Code: "  X1 ", Name: "\tWidget\n", Supplier: " Acme "}
	in.Normalize()

	assert.Equal(t, "X1", in.Code)
	assert.Equal(t, "Widget", in.Name)
	assert.Equal(t, "Acme", in.Supplier)
}

func TestTransaction_Signed(t *testing.T) {
	in := Transaction{Type: TxImport, Quantity: 5}
	out := Transaction{Type: TxExport, Quantity: 3}

	assert.Equal(t, 5, in.Signed())
	assert.Equal(t, -3, out.Signed())
}
