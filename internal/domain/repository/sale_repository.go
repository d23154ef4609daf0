package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/pkg/pagination"
)

// SaleRepository defines the interface for settled sales transactions.
// Create must persist the transaction and its lines in one database
// transaction; rows are never updated or deleted afterwards.
type SaleRepository interface {
	Create(ctx context.Context, transaction *entity.SalesTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.SalesTransaction, error)
	// GetVoidOf returns the compensating transaction for an original sale, if any.
	GetVoidOf(ctx context.Context, originalID uuid.UUID) (*entity.SalesTransaction, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.SalesTransaction, int64, error)
}

// SaleFilterParams contains filtering parameters for sales queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentMethod *enum.PaymentMethod
	Search        string
}
