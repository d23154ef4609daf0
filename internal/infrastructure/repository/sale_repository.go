package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	domainRepo "github.com/jraflores/tindahan-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create persists the transaction and its lines together; gorm inserts the
// association rows in the same database transaction as the header.
func (r *saleRepository) Create(ctx context.Context, transaction *entity.SalesTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	var transaction entity.SalesTransaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *saleRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	var transaction entity.SalesTransaction
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *saleRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.SalesTransaction, error) {
	var transaction entity.SalesTransaction
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&transaction, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *saleRepository) GetVoidOf(ctx context.Context, originalID uuid.UUID) (*entity.SalesTransaction, error) {
	var transaction entity.SalesTransaction
	err := r.db.WithContext(ctx).First(&transaction, "void_of_id = ?", originalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.SalesTransaction, int64, error) {
	var transactions []entity.SalesTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesTransaction{})

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines").
		Order("created_at DESC").
		Find(&transactions).Error

	return transactions, total, err
}
