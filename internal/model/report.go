package model

import "github.com/shopspring/decimal"

// StockAlert is the derived low-stock view of a product. It is never stored.
type StockAlert struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Current     int     `json:"current"`
	Initial     int     `json:"initial"`
	Percentage  float64 `json:"percentage"`
}

func NewStockAlert(p *Product) StockAlert {
	return StockAlert{
		ProductID:   p.ID,
		ProductName: p.Name,
		Current:     p.Quantity,
		Initial:     p.InitialQuantity,
		Percentage:  p.StockPercentage(),
	}
}

// Discrepancy flags a product whose cached quantity disagrees with the
// replayed transaction log.
type Discrepancy struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Recorded    int    `json:"recorded"`
	Replayed    int    `json:"replayed"`
}

// BrandShare is the quantity on hand for one brand.
type BrandShare struct {
	Brand    string `json:"brand"`
	Quantity int    `json:"quantity"`
}

type DashboardStats struct {
	TotalProducts  int             `json:"total_products"`
	TotalItems     int             `json:"total_items"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
	LowStockCount  int             `json:"low_stock_count"`
	Alerts         []StockAlert    `json:"alerts"`
	Brands         []BrandShare    `json:"brands"`
}

// StockMovementData is one day of inbound/outbound totals for charts.
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// StockSummaryRow is one line of the import/export/closing report.
type StockSummaryRow struct {
	ProductID     string          `json:"productId"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Initial       int             `json:"initial"`
	TotalImported int             `json:"totalImported"`
	TotalExported int             `json:"totalExported"`
	Closing       int             `json:"closing"`
	Value         decimal.Decimal `json:"value"`
}

type FinancialSummary struct {
	ImportValue decimal.Decimal `json:"import_value"`
	ExportValue decimal.Decimal `json:"export_value"`
}
