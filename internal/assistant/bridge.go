// Package assistant answers free-text questions about the warehouse by
// handing a compact ledger snapshot to a remote text-generation model.
//
// The bridge only reads from the ledger. Every failure (no API key, network
// error, timeout, bad response) is absorbed and turned into a fallback
// message, so callers always get text back.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-warehouse-ledger/internal/model"

	"go.uber.org/zap"
)

var (
	ErrNotConfigured = errors.New("assistant: no API key configured")
	ErrUnavailable   = errors.New("assistant: generation service unavailable")
)

const (
	FallbackNotConfigured = "Please configure an API key to use the assistant."
	FallbackUnavailable   = "Sorry, I ran into a problem analysing the warehouse data. Please try again later."
)

// RecentTransactionLimit caps how much of the log goes into the prompt.
const RecentTransactionLimit = 10

// LedgerReader is the read-only slice of the ledger the bridge needs.
type LedgerReader interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
}

type Bridge struct {
	ledger    LedgerReader
	generator Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewBridge wires the bridge. A nil generator means the assistant is not
// configured and every question gets FallbackNotConfigured.
func NewBridge(ledger LedgerReader, generator Generator, timeout time.Duration, log *zap.Logger) *Bridge {
	return &Bridge{ledger: ledger, generator: generator, timeout: timeout, logger: log}
}

// Ask answers query from the current ledger state. It never returns an error.
func (b *Bridge) Ask(ctx context.Context, query string) string {
	answer, err := b.ask(ctx, query)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return FallbackNotConfigured
	case err != nil:
		b.logger.Error("assistant request failed", zap.Error(err))
		return FallbackUnavailable
	}
	return answer
}

func (b *Bridge) ask(ctx context.Context, query string) (string, error) {
	if b.generator == nil {
		return "", ErrNotConfigured
	}

	products, err := b.ledger.ListProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: read products: %v", ErrUnavailable, err)
	}
	transactions, err := b.ledger.ListTransactions(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: read transactions: %v", ErrUnavailable, err)
	}

	instruction, err := SystemInstruction(products, transactions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	answer, err := b.generator.Generate(ctx, instruction, query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return answer, nil
}
