package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyReport accumulates the day's settled sales. Exactly one row exists per
// calendar date (unique index on ReportDate). While Finalized is false the
// totals are running (X-Read); finalizing flips the flag exactly once through
// a compare-and-swap, after which the row is read-only forever (Z-Read).
type DailyReport struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReportDate       string          `gorm:"size:10;uniqueIndex;not null" json:"report_date"` // YYYY-MM-DD
	TotalSales       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_sales"`
	TransactionCount int64           `gorm:"not null;default:0" json:"transaction_count"`
	ItemsSold        decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"items_sold"`
	TotalDiscount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_discount"`
	TotalVat         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_vat"`
	CashTotal        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"cash_total"`
	GCashTotal       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"gcash_total"`
	CardTotal        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"card_total"`
	OpeningTime      *time.Time      `json:"opening_time,omitempty"`
	ClosingTime      *time.Time      `json:"closing_time,omitempty"`
	Finalized        bool            `gorm:"not null;default:false" json:"finalized"`
	FinalizedAt      *time.Time      `json:"finalized_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new daily report
func (r *DailyReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyReport model
func (DailyReport) TableName() string {
	return "daily_reports"
}
