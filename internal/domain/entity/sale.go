package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesTransaction is the settled monetary record of one sale. It is created
// once and never edited; refunds and corrections are separate compensating
// transactions that reference the original through VoidOfID.
type SalesTransaction struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo       string             `gorm:"size:100;unique;not null" json:"receipt_no"`
	Subtotal        decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	DiscountType    enum.DiscountType  `gorm:"default:0" json:"discount_type"`
	DiscountAmount  decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	VatExemptAmount decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"vat_exempt_amount"`
	VatableAmount   decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"vatable_amount"`
	VatAmount       decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"vat_amount"`
	Total           decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"total"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	TenderedAmount  decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"tendered_amount"`
	ChangeAmount    decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"change_amount"`
	Cashier         string             `gorm:"size:100" json:"cashier,omitempty"`
	TerminalID      string             `gorm:"size:100" json:"terminal_id,omitempty"`
	VoidOfID        *uuid.UUID         `gorm:"type:uuid;index" json:"void_of_id,omitempty"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`

	// Relationships
	Lines []SalesTransactionLine `gorm:"foreignKey:TransactionID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sales transaction
func (t *SalesTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesTransaction model
func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// ReportDate returns the calendar date the transaction settles into.
func (t *SalesTransaction) ReportDate() string {
	return t.CreatedAt.Format("2006-01-02")
}

// SalesTransactionLine is one cart line of a settled sale. Product name and
// unit price are snapshotted at sale time so later catalog edits cannot
// rewrite history.
type SalesTransactionLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string          `gorm:"size:255;not null" json:"product_name"`
	Quantity      decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	LineTotal     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"line_total"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relationships
	Transaction SalesTransaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction line
func (l *SalesTransactionLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesTransactionLine model
func (SalesTransactionLine) TableName() string {
	return "sales_transaction_lines"
}
