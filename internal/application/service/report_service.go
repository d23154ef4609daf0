package service

import (
	"context"
	"time"

	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/jraflores/tindahan-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReportService rolls settled sales into per-day reports and owns the
// Open -> Finalized transition (X-Read / Z-Read).
type ReportService struct {
	reportRepo repository.DailyReportRepository
	log        *logrus.Entry
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.DailyReportRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		log:        logger.WithComponent("daily-report"),
	}
}

// ApplySettled folds one settled transaction into its calendar date's running
// totals. The report row is created lazily on the first sale of the day; the
// update itself is a conditional write guarded by `finalized = false`, so a
// finalized day is never touched. Returns ReportAlreadyFinalized when the day
// is closed; the caller logs it and keeps the sale.
func (s *ReportService) ApplySettled(ctx context.Context, transaction *entity.SalesTransaction) error {
	date := transaction.ReportDate()
	delta := buildReportDelta(transaction)

	// The loop covers the create/update race between concurrent first sales
	// of a day: a lost insert falls through to the conditional update.
	for attempt := 0; attempt < 3; attempt++ {
		updated, err := s.reportRepo.ApplySale(ctx, date, delta)
		if err != nil {
			return err
		}
		if updated {
			return nil
		}

		report, err := s.reportRepo.GetByDate(ctx, date)
		if err != nil {
			return err
		}
		if report != nil && report.Finalized {
			return apperror.NewReportAlreadyFinalized(date)
		}
		if report == nil {
			if err := s.reportRepo.Create(ctx, &entity.DailyReport{ReportDate: date}); err != nil {
				s.log.WithFields(logrus.Fields{
					"date":    date,
					"attempt": attempt,
				}).WithError(err).Warn("daily report create raced, retrying")
			}
		}
	}

	return apperror.NewAppError(500, "Could not aggregate sale into daily report for "+date)
}

// GetReport returns the date's current snapshot, Open or Finalized.
func (s *ReportService) GetReport(ctx context.Context, date string) (*entity.DailyReport, error) {
	report, err := s.reportRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Daily report for " + date)
	}
	return report, nil
}

// Finalize closes the date's report (Z-Read). The transition is a
// compare-and-swap on the finalized flag, so concurrent calls cannot both
// win; re-invoking on a finalized report returns the frozen snapshot
// unchanged rather than erroring.
func (s *ReportService) Finalize(ctx context.Context, date string) (*entity.DailyReport, error) {
	flipped, err := s.reportRepo.Finalize(ctx, date, time.Now())
	if err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Daily report for " + date)
	}

	if flipped {
		s.log.WithFields(logrus.Fields{
			"date":        date,
			"total_sales": report.TotalSales,
			"count":       report.TransactionCount,
		}).Info("daily report finalized")
	}

	return report, nil
}

func buildReportDelta(transaction *entity.SalesTransaction) *repository.ReportDelta {
	items := decimal.Zero
	for _, line := range transaction.Lines {
		items = items.Add(line.Quantity)
	}

	return &repository.ReportDelta{
		Amount:        transaction.Total,
		Discount:      transaction.DiscountAmount,
		Vat:           transaction.VatAmount,
		ItemsSold:     items,
		PaymentMethod: transaction.PaymentMethod,
		OccurredAt:    transaction.CreatedAt,
	}
}
