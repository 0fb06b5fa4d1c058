package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-warehouse-ledger/pkg/kvstore"
)

// Keys of the two top-level records the ledger keeps in the store.
const (
	ProductsKey     = "inventory_products"
	TransactionsKey = "inventory_transactions"
)

// loadCollection decodes the JSON array stored under key. An absent key is an
// empty collection.
func loadCollection[T any](ctx context.Context, store kvstore.Store, key string) ([]T, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveCollection replaces the whole record under key.
func saveCollection[T any](ctx context.Context, store kvstore.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, data)
}
