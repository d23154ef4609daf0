package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

func newLedgerFixture(t *testing.T, initialQty string) (*LedgerService, *memInventoryRepo, uuid.UUID) {
	t.Helper()
	repo := newMemInventoryRepo()
	item := &entity.InventoryItem{
		Name:         "Coffee Beans",
		Unit:         "g",
		Quantity:     mustDecimal(initialQty),
		ReorderLevel: mustDecimal("100"),
	}
	if err := repo.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return NewLedgerService(repo), repo, item.ID
}

func TestApplyMovementChainsBalances(t *testing.T) {
	ledger, _, itemID := newLedgerFixture(t, "100")
	ctx := context.Background()

	m1, err := ledger.ApplyMovement(ctx, &repository.MovementInput{
		InventoryItemID: itemID,
		Delta:           mustDecimal("-30"),
		Kind:            enum.MovementKindSale,
	})
	if err != nil {
		t.Fatalf("first movement: %v", err)
	}
	if !m1.QuantityBefore.Equal(mustDecimal("100")) || !m1.QuantityAfter.Equal(mustDecimal("70")) {
		t.Errorf("movement 1 = %s -> %s, want 100 -> 70", m1.QuantityBefore, m1.QuantityAfter)
	}

	m2, err := ledger.ApplyMovement(ctx, &repository.MovementInput{
		InventoryItemID: itemID,
		Delta:           mustDecimal("50"),
		Kind:            enum.MovementKindPurchase,
	})
	if err != nil {
		t.Fatalf("second movement: %v", err)
	}
	if !m2.QuantityBefore.Equal(m1.QuantityAfter) {
		t.Errorf("movement 2 before = %s, want chained from %s", m2.QuantityBefore, m1.QuantityAfter)
	}

	balance, err := ledger.CurrentBalance(ctx, itemID)
	if err != nil {
		t.Fatalf("CurrentBalance: %v", err)
	}
	if !balance.Equal(mustDecimal("120")) {
		t.Errorf("balance = %s, want 120", balance)
	}
}

func TestApplyMovementAllowsNegativeBalance(t *testing.T) {
	ledger, _, itemID := newLedgerFixture(t, "10")

	m, err := ledger.ApplyMovement(context.Background(), &repository.MovementInput{
		InventoryItemID: itemID,
		Delta:           mustDecimal("-25"),
		Kind:            enum.MovementKindSale,
	})
	if err != nil {
		t.Fatalf("oversell should be recorded, got error: %v", err)
	}
	if !m.QuantityAfter.Equal(mustDecimal("-15")) {
		t.Errorf("balance after oversell = %s, want -15", m.QuantityAfter)
	}
}

func TestApplyMovementValidation(t *testing.T) {
	ledger, _, itemID := newLedgerFixture(t, "10")
	ctx := context.Background()

	tests := []struct {
		name     string
		input    *repository.MovementInput
		wantCode int
	}{
		{
			name:     "zero delta",
			input:    &repository.MovementInput{InventoryItemID: itemID, Delta: decimal.Zero, Kind: enum.MovementKindAdjustment},
			wantCode: 400,
		},
		{
			name:     "unknown kind",
			input:    &repository.MovementInput{InventoryItemID: itemID, Delta: mustDecimal("1"), Kind: enum.MovementKind("restock")},
			wantCode: 400,
		},
		{
			name:     "unknown item",
			input:    &repository.MovementInput{InventoryItemID: uuid.New(), Delta: mustDecimal("1"), Kind: enum.MovementKindPurchase},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.ApplyMovement(ctx, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperror.GetAppError(err).Code; code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestHistoryIsRestartableAndNewestFirst(t *testing.T) {
	ledger, _, itemID := newLedgerFixture(t, "1000")
	ctx := context.Background()

	deltas := []string{"-10", "-20", "300", "-5", "-1"}
	for _, d := range deltas {
		if _, err := ledger.ApplyMovement(ctx, &repository.MovementInput{
			InventoryItemID: itemID,
			Delta:           mustDecimal(d),
			Kind:            enum.MovementKindAdjustment,
		}); err != nil {
			t.Fatalf("apply %s: %v", d, err)
		}
	}

	// Walk the history two movements at a time, restarting from the cursor.
	var collected []entity.StockMovement
	params := &pagination.CursorParams{Limit: 2}
	for {
		page, err := ledger.History(ctx, itemID, params)
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		collected = append(collected, page.Items...)
		if !page.Pagination.HasNext {
			break
		}
		params = &pagination.CursorParams{Limit: 2, Cursor: *page.Pagination.NextCursor}
	}

	if len(collected) != len(deltas) {
		t.Fatalf("collected %d movements, want %d", len(collected), len(deltas))
	}
	for i := 1; i < len(collected); i++ {
		if collected[i].CreatedAt.After(collected[i-1].CreatedAt) {
			t.Fatalf("history not in reverse chronological order at index %d", i)
		}
	}

	// Replaying deltas from zero reproduces the current balance.
	replayed := decimal.Zero
	for _, m := range collected {
		replayed = replayed.Add(m.Delta)
	}
	balance, _ := ledger.CurrentBalance(ctx, itemID)
	if !replayed.Add(mustDecimal("1000")).Equal(balance) {
		t.Errorf("replayed balance = %s, current = %s", replayed.Add(mustDecimal("1000")), balance)
	}
}

func TestHistoryUnknownItem(t *testing.T) {
	ledger, _, _ := newLedgerFixture(t, "10")
	_, err := ledger.History(context.Background(), uuid.New(), &pagination.CursorParams{Limit: 10})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if code := apperror.GetAppError(err).Code; code != 404 {
		t.Errorf("code = %d, want 404", code)
	}
}

func TestConcurrentMovementsLoseNoUpdates(t *testing.T) {
	ledger, repo, itemID := newLedgerFixture(t, "500")
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ledger.ApplyMovement(ctx, &repository.MovementInput{
				InventoryItemID: itemID,
				Delta:           mustDecimal("-3"),
				Kind:            enum.MovementKindSale,
			})
		}()
	}
	wg.Wait()

	balance, err := ledger.CurrentBalance(ctx, itemID)
	if err != nil {
		t.Fatalf("CurrentBalance: %v", err)
	}
	if !balance.Equal(mustDecimal("440")) {
		t.Errorf("balance = %s, want 440 after %d deductions of 3", balance, workers)
	}

	// The before/after chain must account for every movement exactly once.
	sum := decimal.Zero
	for _, m := range repo.movements {
		if !m.QuantityBefore.Add(m.Delta).Equal(m.QuantityAfter) {
			t.Errorf("movement %s breaks the chain: %s + %s != %s", m.ID, m.QuantityBefore, m.Delta, m.QuantityAfter)
		}
		sum = sum.Add(m.Delta)
	}
	if !mustDecimal("500").Add(sum).Equal(balance) {
		t.Errorf("movement log sums to %s, balance is %s", sum, balance)
	}
}
