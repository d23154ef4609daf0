package repository

import (
	"context"
	"time"

	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ReportDelta is the contribution of one settled sale to a daily report.
type ReportDelta struct {
	Amount        decimal.Decimal
	Discount      decimal.Decimal
	Vat           decimal.Decimal
	ItemsSold     decimal.Decimal
	PaymentMethod enum.PaymentMethod
	OccurredAt    time.Time
}

// DailyReportRepository defines the interface for daily report rows.
//
// ApplySale and Finalize are compare-and-swap operations guarded by
// `finalized = false`: both report whether the row was updated, so concurrent
// writers converge without locking the table. Uniqueness of ReportDate is a
// database constraint, not an application convention.
type DailyReportRepository interface {
	Create(ctx context.Context, report *entity.DailyReport) error
	GetByDate(ctx context.Context, date string) (*entity.DailyReport, error)
	// ApplySale adds the delta to the date's running totals. Returns false
	// when no open report row matched (missing or already finalized).
	ApplySale(ctx context.Context, date string, delta *ReportDelta) (bool, error)
	// Finalize flips finalized false -> true. Returns false when the row was
	// already finalized or does not exist.
	Finalize(ctx context.Context, date string, at time.Time) (bool, error)
}
