package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	domainRepo "github.com/jraflores/tindahan-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dailyReportRepository struct {
	db *gorm.DB
}

// NewDailyReportRepository creates a new daily report repository
func NewDailyReportRepository(db *gorm.DB) domainRepo.DailyReportRepository {
	return &dailyReportRepository{db: db}
}

// Create inserts the date's report row. The unique index on report_date makes
// "one report per day" a database guarantee; a concurrent duplicate insert is
// silently dropped and the caller falls through to the running-total update.
func (r *dailyReportRepository) Create(ctx context.Context, report *entity.DailyReport) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "report_date"}}, DoNothing: true}).
		Create(report).Error
}

func (r *dailyReportRepository) GetByDate(ctx context.Context, date string) (*entity.DailyReport, error) {
	var report entity.DailyReport
	err := r.db.WithContext(ctx).First(&report, "report_date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}

// ApplySale folds the delta into the date's running totals with a single
// conditional UPDATE. The `finalized = false` guard is the compare-and-swap
// that keeps closed days immutable under concurrent writers.
func (r *dailyReportRepository) ApplySale(ctx context.Context, date string, delta *domainRepo.ReportDelta) (bool, error) {
	updates := map[string]interface{}{
		"total_sales":       gorm.Expr("total_sales + ?", delta.Amount),
		"transaction_count": gorm.Expr("transaction_count + 1"),
		"items_sold":        gorm.Expr("items_sold + ?", delta.ItemsSold),
		"total_discount":    gorm.Expr("total_discount + ?", delta.Discount),
		"total_vat":         gorm.Expr("total_vat + ?", delta.Vat),
		"opening_time":      gorm.Expr("LEAST(COALESCE(opening_time, ?::timestamptz), ?::timestamptz)", delta.OccurredAt, delta.OccurredAt),
		"closing_time":      gorm.Expr("GREATEST(COALESCE(closing_time, ?::timestamptz), ?::timestamptz)", delta.OccurredAt, delta.OccurredAt),
		"updated_at":        time.Now(),
	}

	column := paymentColumn(delta.PaymentMethod)
	updates[column] = gorm.Expr(column+" + ?", delta.Amount)

	result := r.db.WithContext(ctx).Model(&entity.DailyReport{}).
		Where("report_date = ? AND finalized = ?", date, false).
		Updates(updates)

	return result.RowsAffected > 0, result.Error
}

// Finalize flips the finalized flag exactly once. A row already finalized
// matches nothing, so concurrent finalize calls converge on one winner.
func (r *dailyReportRepository) Finalize(ctx context.Context, date string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.DailyReport{}).
		Where("report_date = ? AND finalized = ?", date, false).
		Updates(map[string]interface{}{
			"finalized":    true,
			"finalized_at": at,
			"updated_at":   at,
		})

	return result.RowsAffected > 0, result.Error
}

func paymentColumn(method enum.PaymentMethod) string {
	switch method {
	case enum.PaymentMethodGCash:
		return "gcash_total"
	case enum.PaymentMethodCard:
		return "card_total"
	default:
		return "cash_total"
	}
}
