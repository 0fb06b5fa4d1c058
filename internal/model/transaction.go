package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxImport TransactionType = "IMPORT"
	TxExport TransactionType = "EXPORT"
)

// Notes attached to receipts by the ledger itself.
const (
	NoteInitialReceipt = "Initial receipt"
	NoteRestock        = "Restock"
)

// Transaction is one immutable stock movement. ProductName is a copy taken at
// recording time and stays the display value even if the product goes away.
type Transaction struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Date        time.Time       `json:"date"`
	Partner     string          `json:"partner"`
	Notes       string          `json:"notes,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Signed returns the quantity with the sign of its effect on stock.
func (t *Transaction) Signed() int {
	if t.Type == TxExport {
		return -t.Quantity
	}
	return t.Quantity
}

// MovementResult is what a successful receive or issue hands back: the
// product as persisted and the ledger entry that moved it.
type MovementResult struct {
	Product     Product     `json:"product"`
	Transaction Transaction `json:"transaction"`
}
