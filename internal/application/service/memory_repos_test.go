package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. They mirror the behavioral contracts of the
// gorm implementations: ApplyMovement is serialized per store, missing rows
// come back as (nil, nil), and report updates are conditional on the
// finalized flag.

type memInventoryRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*entity.InventoryItem
	movements []entity.StockMovement
	clock     time.Time
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{
		items: make(map[uuid.UUID]*entity.InventoryItem),
		clock: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
}

func (r *memInventoryRepo) CreateItem(_ context.Context, item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *memInventoryRepo) GetItem(_ context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *memInventoryRepo) ListItems(_ context.Context, params *repository.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []entity.InventoryItem
	for _, item := range r.items {
		if params.LowStock && !item.BelowReorderLevel() {
			continue
		}
		items = append(items, *item)
	}
	return items, int64(len(items)), nil
}

func (r *memInventoryRepo) ListLowStock(_ context.Context) ([]entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []entity.InventoryItem
	for _, item := range r.items {
		if item.BelowReorderLevel() {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *memInventoryRepo) ApplyMovement(_ context.Context, input *repository.MovementInput) (*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[input.InventoryItemID]
	if !ok {
		return nil, repository.ErrItemNotFound
	}

	before := item.Quantity
	after := before.Add(input.Delta)
	item.Quantity = after

	r.clock = r.clock.Add(time.Second)
	movement := entity.StockMovement{
		ID:              uuid.New(),
		InventoryItemID: input.InventoryItemID,
		Delta:           input.Delta,
		QuantityBefore:  before,
		QuantityAfter:   after,
		Kind:            input.Kind,
		SaleID:          input.SaleID,
		Reference:       input.Reference,
		Actor:           input.Actor,
		CreatedAt:       r.clock,
	}
	r.movements = append(r.movements, movement)
	return &movement, nil
}

func (r *memInventoryRepo) ListMovements(_ context.Context, itemID uuid.UUID, params *pagination.CursorParams) ([]entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []entity.StockMovement
	for _, m := range r.movements {
		if m.InventoryItemID == itemID {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() > all[j].ID.String()
	})

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		idx := -1
		for i, m := range all {
			if m.ID.String() == cursor.ID {
				idx = i
				break
			}
		}
		all = all[idx+1:]
	}

	if len(all) > params.Limit+1 {
		all = all[:params.Limit+1]
	}
	return all, nil
}

func (r *memInventoryRepo) ListMovementsBySale(_ context.Context, saleID uuid.UUID) ([]entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.SaleID != nil && *m.SaleID == saleID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	recipes  map[uuid.UUID][]entity.RecipeLine
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products: make(map[uuid.UUID]*entity.Product),
		recipes:  make(map[uuid.UUID][]entity.RecipeLine),
	}
}

func (r *memProductRepo) CreateProduct(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) CreateRecipeLine(_ context.Context, line *entity.RecipeLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	r.recipes[line.ProductID] = append(r.recipes[line.ProductID], *line)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (r *memProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *memProductRepo) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Product
	for _, product := range r.products {
		if params.ActiveOnly && !product.Active {
			continue
		}
		out = append(out, *product)
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) RecipeLinesFor(_ context.Context, productID uuid.UUID) ([]entity.RecipeLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.recipes[productID]
	out := make([]entity.RecipeLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type memSaleRepo struct {
	mu    sync.Mutex
	sales map[uuid.UUID]*entity.SalesTransaction
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*entity.SalesTransaction)}
}

func (r *memSaleRepo) Create(_ context.Context, transaction *entity.SalesTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	for i := range transaction.Lines {
		if transaction.Lines[i].ID == uuid.Nil {
			transaction.Lines[i].ID = uuid.New()
		}
		transaction.Lines[i].TransactionID = transaction.ID
	}
	clone := *transaction
	clone.Lines = append([]entity.SalesTransactionLine(nil), transaction.Lines...)
	r.sales[transaction.ID] = &clone
	return nil
}

func (r *memSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	return r.GetWithLines(ctx, id)
}

func (r *memSaleRepo) GetWithLines(_ context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	clone := *transaction
	clone.Lines = append([]entity.SalesTransactionLine(nil), transaction.Lines...)
	return &clone, nil
}

func (r *memSaleRepo) GetByReceiptNo(_ context.Context, receiptNo string) (*entity.SalesTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.sales {
		if transaction.ReceiptNo == receiptNo {
			clone := *transaction
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) GetVoidOf(_ context.Context, originalID uuid.UUID) (*entity.SalesTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.sales {
		if transaction.VoidOfID != nil && *transaction.VoidOfID == originalID {
			clone := *transaction
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.SalesTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.SalesTransaction
	for _, transaction := range r.sales {
		out = append(out, *transaction)
	}
	return out, int64(len(out)), nil
}

type memReportRepo struct {
	mu      sync.Mutex
	reports map[string]*entity.DailyReport
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[string]*entity.DailyReport)}
}

func (r *memReportRepo) Create(_ context.Context, report *entity.DailyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[report.ReportDate]; exists {
		// Mirrors ON CONFLICT DO NOTHING on the report_date unique index.
		return nil
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	clone := *report
	r.reports[report.ReportDate] = &clone
	return nil
}

func (r *memReportRepo) GetByDate(_ context.Context, date string) (*entity.DailyReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[date]
	if !ok {
		return nil, nil
	}
	clone := *report
	return &clone, nil
}

func (r *memReportRepo) ApplySale(_ context.Context, date string, delta *repository.ReportDelta) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[date]
	if !ok || report.Finalized {
		return false, nil
	}

	report.TotalSales = report.TotalSales.Add(delta.Amount)
	report.TransactionCount++
	report.ItemsSold = report.ItemsSold.Add(delta.ItemsSold)
	report.TotalDiscount = report.TotalDiscount.Add(delta.Discount)
	report.TotalVat = report.TotalVat.Add(delta.Vat)
	switch delta.PaymentMethod {
	case "cash":
		report.CashTotal = report.CashTotal.Add(delta.Amount)
	case "gcash":
		report.GCashTotal = report.GCashTotal.Add(delta.Amount)
	case "card":
		report.CardTotal = report.CardTotal.Add(delta.Amount)
	}
	occurred := delta.OccurredAt
	if report.OpeningTime == nil || occurred.Before(*report.OpeningTime) {
		report.OpeningTime = &occurred
	}
	if report.ClosingTime == nil || occurred.After(*report.ClosingTime) {
		report.ClosingTime = &occurred
	}
	return true, nil
}

func (r *memReportRepo) Finalize(_ context.Context, date string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[date]
	if !ok || report.Finalized {
		return false, nil
	}
	report.Finalized = true
	report.FinalizedAt = &at
	return true, nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
