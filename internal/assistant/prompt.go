package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"go-warehouse-ledger/internal/model"
)

type productSummary struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Qty      int    `json:"qty"`
	Initial  int    `json:"initial"`
	Exp      string `json:"exp"`
	Supplier string `json:"supplier"`
}

type transactionSummary struct {
	Type    model.TransactionType `json:"type"`
	Item    string                `json:"item"`
	Qty     int                   `json:"qty"`
	Date    string                `json:"date"`
	Partner string                `json:"partner"`
}

// Snapshot is the compact ledger context sent with every question.
type Snapshot struct {
	Summary            string               `json:"summary"`
	Products           []productSummary     `json:"products"`
	RecentTransactions []transactionSummary `json:"recentTransactions"`
}

// NewSnapshot summarises the catalog and the newest RecentTransactionLimit
// entries of the log (which is already newest-first).
func NewSnapshot(products []model.Product, transactions []model.Transaction) Snapshot {
	snap := Snapshot{
		Summary:            fmt.Sprintf("Total products: %d.", len(products)),
		Products:           make([]productSummary, 0, len(products)),
		RecentTransactions: []transactionSummary{},
	}
	for _, p := range products {
		snap.Products = append(snap.Products, productSummary{
			Name:     p.Name,
			Code:     p.Code,
			Qty:      p.Quantity,
			Initial:  p.InitialQuantity,
			Exp:      p.ExpDate,
			Supplier: p.Supplier,
		})
	}
	if len(transactions) > RecentTransactionLimit {
		transactions = transactions[:RecentTransactionLimit]
	}
	for _, t := range transactions {
		snap.RecentTransactions = append(snap.RecentTransactions, transactionSummary{
			Type:    t.Type,
			Item:    t.ProductName,
			Qty:     t.Quantity,
			Date:    t.Date.UTC().Format(time.RFC3339),
			Partner: t.Partner,
		})
	}
	return snap
}

const instructionTemplate = `You are a professional warehouse management assistant.
Below is the current warehouse data as JSON.
Answer the user's question based on this data, briefly and concisely.
If you notice problems (items running low, items expired or about to expire), warn about them.

Warehouse data: %s`

// SystemInstruction renders the fixed instruction with the snapshot embedded.
func SystemInstruction(products []model.Product, transactions []model.Transaction) (string, error) {
	data, err := json.Marshal(NewSnapshot(products, transactions))
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return fmt.Sprintf(instructionTemplate, data), nil
}
