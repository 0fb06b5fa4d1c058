package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-warehouse-ledger/internal/model"
	"go-warehouse-ledger/internal/repository"
	"go-warehouse-ledger/pkg/validator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
)

// Publisher receives a JSON message after every committed stock movement.
type Publisher interface {
	Publish(message []byte)
}

type InventoryService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, term string) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
	ProductHistory(ctx context.Context, productID string) ([]model.Transaction, error)
	ComputeAlerts(ctx context.Context) ([]model.StockAlert, error)
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	Reconcile(ctx context.Context) ([]model.Discrepancy, error)

	ReceiveNewProduct(ctx context.Context, data model.ProductInput, receivedQuantity int) (*model.MovementResult, error)
	ReceiveExistingStock(ctx context.Context, productID string, receivedQuantity int) (*model.MovementResult, error)
	IssueStock(ctx context.Context, productID string, quantity int, partner, notes string) (*model.MovementResult, error)

	SeedDemoCatalog(ctx context.Context) (bool, error)
}

type Option func(*inventoryService)

// WithClock overrides the time source used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(s *inventoryService) { s.now = now }
}

// WithPublisher attaches the live stock feed.
func WithPublisher(p Publisher) Option {
	return func(s *inventoryService) { s.publisher = p }
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	publisher       Publisher
	logger          *zap.Logger
	now             func() time.Time

	// single writer: every read-modify-write of the two collections holds mu
	mu sync.RWMutex
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, log *zap.Logger, opts ...Option) InventoryService {
	s := &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		logger:          log,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inventoryService) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productRepo.FindAll(ctx)
}

func (s *inventoryService) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Product, 0, len(products))
	for i := range products {
		if products[i].Matches(term) {
			matched = append(matched, products[i])
		}
	}
	return matched, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return product, err
}

func (s *inventoryService) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactionRepo.FindAll(ctx)
}

func (s *inventoryService) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	transactions, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// ProductHistory returns the log entries of one product, newest first.
func (s *inventoryService) ProductHistory(ctx context.Context, productID string) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}
	history, err := s.transactionRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []model.Transaction{}
	}
	return history, nil
}

// ComputeAlerts returns the low-stock view of every product under the
// threshold, in catalog order.
func (s *inventoryService) ComputeAlerts(ctx context.Context) ([]model.StockAlert, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	alerts := []model.StockAlert{}
	for i := range products {
		if products[i].IsLowStock() {
			alerts = append(alerts, model.NewStockAlert(&products[i]))
		}
	}
	return alerts, nil
}

func (s *inventoryService) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return totalValue(products), nil
}

func totalValue(products []model.Product) decimal.Decimal {
	total := decimal.Zero
	for i := range products {
		total = total.Add(products[i].Value())
	}
	return total
}

// Reconcile replays the log for every product and reports those whose cached
// quantity disagrees. The initial receipt is itself an IMPORT entry, so the
// replay starts from zero.
func (s *inventoryService) Reconcile(ctx context.Context) ([]model.Discrepancy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	replayed := make(map[string]int, len(products))
	for i := range transactions {
		replayed[transactions[i].ProductID] += transactions[i].Signed()
	}

	discrepancies := []model.Discrepancy{}
	for _, p := range products {
		if replayed[p.ID] != p.Quantity {
			discrepancies = append(discrepancies, model.Discrepancy{
				ProductID:   p.ID,
				ProductName: p.Name,
				Recorded:    p.Quantity,
				Replayed:    replayed[p.ID],
			})
		}
	}
	return discrepancies, nil
}

func (s *inventoryService) ReceiveNewProduct(ctx context.Context, data model.ProductInput, receivedQuantity int) (*model.MovementResult, error) {
	// 1. Validate before touching the store
	data.Normalize()
	if errs := validator.ValidateStruct(&data); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, errs[0].Error())
	}
	if receivedQuantity <= 0 {
		return nil, fmt.Errorf("%w: received quantity must be positive, got %d", ErrInvalidInput, receivedQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 2. Read both collections
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Apply
	product := model.Product{
		ID:              model.NewProductID(),
		Code:            data.Code,
		Name:            data.Name,
		Brand:           data.Brand,
		Model:           data.Model,
		Serial:          data.Serial,
		Lot:             data.Lot,
		MfgDate:         data.MfgDate,
		ExpDate:         data.ExpDate,
		Supplier:        data.Supplier,
		UnitPrice:       data.UnitPrice,
		Quantity:        receivedQuantity,
		InitialQuantity: receivedQuantity,
		Unit:            data.Unit,
	}
	tx, err := s.newTransaction(&product, model.TxImport, receivedQuantity, product.Supplier, model.NoteInitialReceipt)
	if err != nil {
		return nil, err
	}

	// 4. Write both collections back
	updated := append(append(make([]model.Product, 0, len(products)+1), products...), product)
	if err := s.commit(ctx, products, updated, transactions, tx); err != nil {
		return nil, err
	}

	s.logger.Info("product received",
		zap.String("product_id", product.ID),
		zap.String("code", product.Code),
		zap.Int("quantity", receivedQuantity))
	s.broadcast("product_created", &product, &tx)

	return &model.MovementResult{Product: product, Transaction: tx}, nil
}

func (s *inventoryService) ReceiveExistingStock(ctx context.Context, productID string, receivedQuantity int) (*model.MovementResult, error) {
	if receivedQuantity <= 0 {
		return nil, fmt.Errorf("%w: received quantity must be positive, got %d", ErrInvalidInput, receivedQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(products, productID)
	if idx < 0 {
		s.logger.Warn("restock of unknown product", zap.String("product_id", productID))
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	// InitialQuantity stays put: the alert denominator is the first batch.
	updated := append([]model.Product(nil), products...)
	product := &updated[idx]
	product.Quantity += receivedQuantity

	tx, err := s.newTransaction(product, model.TxImport, receivedQuantity, product.Supplier, model.NoteRestock)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, products, updated, transactions, tx); err != nil {
		return nil, err
	}

	s.logger.Info("stock received",
		zap.String("product_id", product.ID),
		zap.Int("quantity", receivedQuantity),
		zap.Int("new_quantity", product.Quantity))
	s.broadcast("stock_received", product, &tx)

	return &model.MovementResult{Product: *product, Transaction: tx}, nil
}

func (s *inventoryService) IssueStock(ctx context.Context, productID string, quantity int, partner, notes string) (*model.MovementResult, error) {
	partner = strings.TrimSpace(partner)
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: issue quantity must be positive, got %d", ErrInvalidInput, quantity)
	}
	if partner == "" {
		return nil, fmt.Errorf("%w: partner is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(products, productID)
	if idx < 0 {
		s.logger.Warn("issue of unknown product", zap.String("product_id", productID))
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if products[idx].Quantity < quantity {
		s.logger.Warn("issue rejected",
			zap.String("product_id", productID),
			zap.Int("requested", quantity),
			zap.Int("available", products[idx].Quantity))
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, products[idx].Quantity)
	}

	updated := append([]model.Product(nil), products...)
	product := &updated[idx]
	product.Quantity -= quantity

	tx, err := s.newTransaction(product, model.TxExport, quantity, partner, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, products, updated, transactions, tx); err != nil {
		return nil, err
	}

	s.logger.Info("stock issued",
		zap.String("product_id", product.ID),
		zap.String("partner", partner),
		zap.Int("quantity", quantity),
		zap.Int("new_quantity", product.Quantity))
	s.broadcast("stock_issued", product, &tx)

	return &model.MovementResult{Product: *product, Transaction: tx}, nil
}

func (s *inventoryService) newTransaction(p *model.Product, txType model.TransactionType, quantity int, partner, notes string) (model.Transaction, error) {
	id, err := model.NewTransactionID()
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:          id,
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        txType,
		Quantity:    quantity,
		Date:        s.now().UTC(),
		Partner:     partner,
		Notes:       notes,
		TotalAmount: p.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// commit writes the product collection, then the log with tx prepended. If
// the log write fails the previous catalog is written back so readers never
// see a quantity change without its entry.
func (s *inventoryService) commit(ctx context.Context, previous, products []model.Product, transactions []model.Transaction, tx model.Transaction) error {
	if err := s.productRepo.SaveAll(ctx, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}

	log := make([]model.Transaction, 0, len(transactions)+1)
	log = append(log, tx)
	log = append(log, transactions...)
	if err := s.transactionRepo.SaveAll(ctx, log); err != nil {
		if rbErr := s.productRepo.SaveAll(ctx, previous); rbErr != nil {
			s.logger.Error("restore products after failed log write", zap.Error(rbErr))
		}
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

func indexOf(products []model.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
