package repository

import (
	"context"
	"sort"
	"time"

	"go-warehouse-ledger/internal/model"
	"go-warehouse-ledger/pkg/kvstore"

	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByProduct(ctx context.Context, productID string) ([]model.Transaction, error)
	SaveAll(ctx context.Context, transactions []model.Transaction) error
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]model.StockMovementData, error)
	GetFinancialSummary(ctx context.Context, startDate, endDate time.Time) (*model.FinancialSummary, error)
	Clear(ctx context.Context) error
}

type transactionRepo struct {
	store kvstore.Store
}

func NewTransactionRepo(store kvstore.Store) TransactionRepository {
	return &transactionRepo{store}
}

// FindAll returns the log newest-first, which is the order it is stored in.
func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	return loadCollection[model.Transaction](ctx, r.store, TransactionsKey)
}

func (r *transactionRepo) FindByProduct(ctx context.Context, productID string) ([]model.Transaction, error) {
	transactions, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Transaction
	for _, t := range transactions {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

// SaveAll rewrites the whole log. Callers keep it newest-first.
func (r *transactionRepo) SaveAll(ctx context.Context, transactions []model.Transaction) error {
	return saveCollection(ctx, r.store, TransactionsKey, transactions)
}

// GetStockMovement aggregates inbound/outbound quantities per UTC day within
// [startDate, endDate], oldest day first.
func (r *transactionRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]model.StockMovementData, error) {
	transactions, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*model.StockMovementData)
	for _, t := range transactions {
		if t.Date.Before(startDate) || t.Date.After(endDate) {
			continue
		}
		day := t.Date.UTC().Format("2006-01-02")
		data, ok := byDay[day]
		if !ok {
			data = &model.StockMovementData{Date: day}
			byDay[day] = data
		}
		switch t.Type {
		case model.TxImport:
			data.Inbound += t.Quantity
		case model.TxExport:
			data.Outbound += t.Quantity
		}
	}

	results := make([]model.StockMovementData, 0, len(byDay))
	for _, data := range byDay {
		results = append(results, *data)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date < results[j].Date
	})
	return results, nil
}

// GetFinancialSummary sums the recorded amounts of imports and exports in range.
func (r *transactionRepo) GetFinancialSummary(ctx context.Context, startDate, endDate time.Time) (*model.FinancialSummary, error) {
	transactions, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.FinancialSummary{ImportValue: decimal.Zero, ExportValue: decimal.Zero}
	for _, t := range transactions {
		if t.Date.Before(startDate) || t.Date.After(endDate) {
			continue
		}
		switch t.Type {
		case model.TxImport:
			summary.ImportValue = summary.ImportValue.Add(t.TotalAmount)
		case model.TxExport:
			summary.ExportValue = summary.ExportValue.Add(t.TotalAmount)
		}
	}
	return summary, nil
}

func (r *transactionRepo) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, TransactionsKey)
}
