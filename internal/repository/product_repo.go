package repository

import (
	"context"
	"errors"

	"go-warehouse-ledger/internal/model"
	"go-warehouse-ledger/pkg/kvstore"
)

var ErrRecordNotFound = errors.New("record not found")

type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	SaveAll(ctx context.Context, products []model.Product) error
	Initialized(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
}

type productRepo struct {
	store kvstore.Store
}

func NewProductRepo(store kvstore.Store) ProductRepository {
	return &productRepo{store}
}

// FindAll returns the catalog in insertion order.
func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	return loadCollection[model.Product](ctx, r.store, ProductsKey)
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	products, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// SaveAll rewrites the whole catalog.
func (r *productRepo) SaveAll(ctx context.Context, products []model.Product) error {
	return saveCollection(ctx, r.store, ProductsKey, products)
}

// Initialized reports whether the products record exists at all, even empty.
func (r *productRepo) Initialized(ctx context.Context) (bool, error) {
	_, err := r.store.Get(ctx, ProductsKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *productRepo) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, ProductsKey)
}
