package service

import (
	"context"
	"time"

	"go-warehouse-ledger/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedEntry struct {
	product model.Product
	issued  int
	issueTo string
}

func demoCatalog() []seedEntry {
	return []seedEntry{
		{
			product: model.Product{
				Code: "LT-DELL-001", Name: "Laptop Dell XPS 13", Brand: "Dell", Model: "9310",
				Serial: "8H29S12", Lot: "LOT202301", MfgDate: "2023-01-15", ExpDate: "2028-01-15",
				Supplier: "FPT Distribution", UnitPrice: decimal.NewFromInt(25000000),
				InitialQuantity: 50, Unit: "Piece",
			},
			issued:  45, // 10% left, alerts
			issueTo: "Sales Department",
		},
		{
			product: model.Product{
				Code: "DT-IP-15", Name: "iPhone 15 Pro Max", Brand: "Apple", Model: "A2890",
				Serial: "G6X7Y8Z9", Lot: "LOT202309", MfgDate: "2023-09-01", ExpDate: "2030-01-01",
				Supplier: "Viettel Store", UnitPrice: decimal.NewFromInt(30000000),
				InitialQuantity: 100, Unit: "Piece",
			},
			issued:  20,
			issueTo: "Retail Branch 1",
		},
		{
			product: model.Product{
				Code: "SERVER-HP-01", Name: "Server HP ProLiant", Brand: "HP", Model: "DL380",
				Serial: "USM12345", Lot: "LOT202212", MfgDate: "2022-12-01", ExpDate: "2027-12-01",
				Supplier: "CMC Telecom", UnitPrice: decimal.NewFromInt(120000000),
				InitialQuantity: 10, Unit: "Set",
			},
			issued:  8, // 20% left, alerts
			issueTo: "IT Department",
		},
	}
}

// SeedDemoCatalog writes the demonstration catalog when no products record
// exists yet. Every seeded quantity is backed by an initial receipt and an
// issue so the log replays cleanly. Reports whether anything was written.
func (s *inventoryService) SeedDemoCatalog(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	initialized, err := s.productRepo.Initialized(ctx)
	if err != nil {
		return false, err
	}
	if initialized {
		return false, nil
	}

	now := s.now().UTC()
	var products []model.Product
	var log []model.Transaction

	catalog := demoCatalog()
	for i, entry := range catalog {
		p := entry.product
		p.ID = model.NewProductID()
		p.Quantity = p.InitialQuantity

		// entries end one minute before now so later movements sort first
		received := now.Add(-time.Duration((len(catalog)-i)*2) * time.Minute)
		in, err := s.seedTransaction(&p, model.TxImport, p.InitialQuantity, p.Supplier, model.NoteInitialReceipt, received)
		if err != nil {
			return false, err
		}
		log = append([]model.Transaction{in}, log...)

		if entry.issued > 0 {
			p.Quantity -= entry.issued
			out, err := s.seedTransaction(&p, model.TxExport, entry.issued, entry.issueTo, "", received.Add(time.Minute))
			if err != nil {
				return false, err
			}
			log = append([]model.Transaction{out}, log...)
		}
		products = append(products, p)
	}

	if err := s.commitSeed(ctx, products, log); err != nil {
		return false, err
	}
	s.logger.Info("seeded demo catalog", zap.Int("products", len(products)), zap.Int("transactions", len(log)))
	return true, nil
}

func (s *inventoryService) seedTransaction(p *model.Product, txType model.TransactionType, quantity int, partner, notes string, at time.Time) (model.Transaction, error) {
	tx, err := s.newTransaction(p, txType, quantity, partner, notes)
	if err != nil {
		return tx, err
	}
	tx.Date = at
	return tx, nil
}

func (s *inventoryService) commitSeed(ctx context.Context, products []model.Product, log []model.Transaction) error {
	if err := s.transactionRepo.SaveAll(ctx, log); err != nil {
		return err
	}
	// products last: its presence marks the store as initialised
	return s.productRepo.SaveAll(ctx, products)
}
