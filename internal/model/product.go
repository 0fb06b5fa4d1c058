package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock percentage below which a product alerts.
const LowStockThreshold = 30.0

// Product is a catalog entry. InitialQuantity is fixed when the product is
// first received and is only used as the alert denominator.
type Product struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Model           string          `json:"model"`
	Serial          string          `json:"serial"`
	Lot             string          `json:"lot"`
	MfgDate         string          `json:"mfgDate"`
	ExpDate         string          `json:"expDate"`
	Supplier        string          `json:"supplier"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	InitialQuantity int             `json:"initialQuantity"`
	Unit            string          `json:"unit"`
}

// ProductInput carries the catalog fields supplied when a new product is
// received. Quantities are passed separately.
type ProductInput struct {
	Code      string          `json:"code" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Serial    string          `json:"serial"`
	Lot       string          `json:"lot"`
	MfgDate   string          `json:"mfgDate" validate:"dateonly"`
	ExpDate   string          `json:"expDate" validate:"dateonly"`
	Supplier  string          `json:"supplier"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Unit      string          `json:"unit"`
}

// Normalize trims surrounding whitespace from every text field.
func (in *ProductInput) Normalize() {
	for _, f := range []*string{&in.Code, &in.Name, &in.Brand, &in.Model, &in.Serial, &in.Lot,
		&in.MfgDate, &in.ExpDate, &in.Supplier, &in.Unit} {
		*f = strings.TrimSpace(*f)
	}
}

// StockPercentage is current/initial*100. A non-positive initial quantity
// reads as 0% so such a product always alerts.
func (p *Product) StockPercentage() float64 {
	if p.InitialQuantity <= 0 {
		return 0
	}
	return float64(p.Quantity) / float64(p.InitialQuantity) * 100
}

func (p *Product) IsLowStock() bool {
	return p.StockPercentage() < LowStockThreshold
}

// Value is quantity on hand times unit price.
func (p *Product) Value() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Matches reports whether term occurs in the name, code or brand, ignoring case.
func (p *Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Code), term) ||
		strings.Contains(strings.ToLower(p.Brand), term)
}
