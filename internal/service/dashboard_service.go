package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"go-warehouse-ledger/internal/model"
	"go-warehouse-ledger/internal/repository"
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
	GetStockMovement(ctx context.Context, days int) ([]model.StockMovementData, error)
	GetStockSummary(ctx context.Context) ([]model.StockSummaryRow, error)
	WriteStockSummaryCSV(ctx context.Context, w io.Writer) error
	GetFinancialStats(ctx context.Context, startDate, endDate time.Time) (*model.FinancialSummary, error)
}

type dashboardService struct {
	inventory InventoryService
	txRepo    repository.TransactionRepository
	now       func() time.Time
}

func NewDashboardService(inventory InventoryService, txRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{inventory: inventory, txRepo: txRepo, now: time.Now}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	products, err := s.inventory.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.inventory.ComputeAlerts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalProducts:  len(products),
		TotalValuation: totalValue(products),
		LowStockCount:  len(alerts),
		Alerts:         alerts,
		Brands:         []model.BrandShare{},
	}

	brandIdx := make(map[string]int)
	for _, p := range products {
		stats.TotalItems += p.Quantity
		i, ok := brandIdx[p.Brand]
		if !ok {
			i = len(stats.Brands)
			brandIdx[p.Brand] = i
			stats.Brands = append(stats.Brands, model.BrandShare{Brand: p.Brand})
		}
		stats.Brands[i].Quantity += p.Quantity
	}
	return stats, nil
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]model.StockMovementData, error) {
	endDate := s.now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(ctx, startDate, endDate)
}

// GetStockSummary builds the import/export/closing report, one row per product
// in catalog order. Totals count every logged movement, the initial receipt
// included.
func (s *dashboardService) GetStockSummary(ctx context.Context) ([]model.StockSummaryRow, error) {
	products, err := s.inventory.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.inventory.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	imported := make(map[string]int)
	exported := make(map[string]int)
	for _, t := range transactions {
		switch t.Type {
		case model.TxImport:
			imported[t.ProductID] += t.Quantity
		case model.TxExport:
			exported[t.ProductID] += t.Quantity
		}
	}

	rows := make([]model.StockSummaryRow, 0, len(products))
	for i := range products {
		p := &products[i]
		rows = append(rows, model.StockSummaryRow{
			ProductID:     p.ID,
			Code:          p.Code,
			Name:          p.Name,
			Initial:       p.InitialQuantity,
			TotalImported: imported[p.ID],
			TotalExported: exported[p.ID],
			Closing:       p.Quantity,
			Value:         p.Value(),
		})
	}
	return rows, nil
}

func (s *dashboardService) WriteStockSummaryCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.GetStockSummary(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Code", "Name", "Initial", "Imported", "Exported", "Closing", "Value"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Code,
			r.Name,
			strconv.Itoa(r.Initial),
			strconv.Itoa(r.TotalImported),
			strconv.Itoa(r.TotalExported),
			strconv.Itoa(r.Closing),
			r.Value.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *dashboardService) GetFinancialStats(ctx context.Context, startDate, endDate time.Time) (*model.FinancialSummary, error) {
	return s.txRepo.GetFinancialSummary(ctx, startDate, endDate)
}
