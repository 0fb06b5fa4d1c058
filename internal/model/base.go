package model

import (
	"fmt"

	"github.com/google/uuid"
)

// NewProductID returns a random identifier for a catalog entry.
func NewProductID() string {
	return uuid.NewString()
}

// NewTransactionID returns a time-ordered (v7) identifier so ledger entries
// sort by creation instant.
func NewTransactionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate transaction id: %w", err)
	}
	return id.String(), nil
}
