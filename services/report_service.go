package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jewelry-backend/apperrors"
	"jewelry-backend/logger"
	repositories "jewelry-backend/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ReportParams selects the reporting window. Date requires Month and Year,
// Month requires Year; all nil means all-time.
type ReportParams struct {
	Date    *int
	Month   *int
	Year    *int
	StoreID *uuid.UUID
}

// PeriodComparison compares a period's paid profit against the previous one.
// PercentageChange is 0 when the prior-period baseline is 0.
type PeriodComparison struct {
	Current          int64   `json:"current"`
	Previous         int64   `json:"previous"`
	Difference       int64   `json:"difference"`
	PercentageChange float64 `json:"percentageChange"`
}

// ProfitReport is the aggregate over paid orders for the selected window,
// plus order status counts and customer growth figures.
type ProfitReport struct {
	TotalProfit   int64 `json:"totalProfit"`
	TotalQuantity int64 `json:"totalQuantity"`

	Paid      int64 `json:"paid"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	NotEnough int64 `json:"notEnough"`

	TotalCustomers       int64 `json:"totalCustomers"`
	NewCustomersThisYear int64 `json:"newCustomersThisYear"`

	MonthlyProfit *PeriodComparison `json:"monthlyProfit,omitempty"`
	YearlyProfit  *PeriodComparison `json:"yearlyProfit,omitempty"`
}

// ReportService is the read-only rollup over persisted orders. Responses are
// cached in redis for a short TTL; cache failures are ignored.
type ReportService struct {
	orders    repositories.OrderRepository
	customers repositories.CustomerRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewReportService(orders repositories.OrderRepository, customers repositories.CustomerRepository, cache *redis.Client) *ReportService {
	return &ReportService{
		orders:    orders,
		customers: customers,
		cache:     cache,
		cacheTTL:  time.Minute,
		now:       time.Now,
	}
}

// DailyProfitAndQuantity aggregates paid-order profit and quantity for the
// window selected by params, with month-over-month and year-over-year
// comparisons when a calendar unit is given.
func (s *ReportService) DailyProfitAndQuantity(ctx context.Context, params ReportParams) (*ProfitReport, error) {
	if err := validateReportParams(params); err != nil {
		return nil, err
	}

	cacheKey := reportCacheKey(params)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	report, err := s.build(ctx, params)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, cacheKey, report)
	return report, nil
}

func validateReportParams(params ReportParams) error {
	if params.Date != nil && (params.Month == nil || params.Year == nil) {
		return apperrors.InvalidArgument("date requires month and year")
	}
	if params.Month != nil && params.Year == nil {
		return apperrors.InvalidArgument("month requires year")
	}
	if params.Month != nil && (*params.Month < 1 || *params.Month > 12) {
		return apperrors.InvalidArgument("month must be between 1 and 12")
	}
	if params.Year != nil && *params.Year < 1 {
		return apperrors.InvalidArgument("invalid year")
	}
	if params.Date != nil {
		day := time.Date(*params.Year, time.Month(*params.Month), *params.Date, 0, 0, 0, 0, time.UTC)
		if day.Day() != *params.Date || *params.Date < 1 {
			return apperrors.InvalidArgument("invalid day of month")
		}
	}
	return nil
}

func (s *ReportService) build(ctx context.Context, params ReportParams) (*ProfitReport, error) {
	var (
		primary      *repositories.TimeRange
		withMonthly  bool
		monthWindow  repositories.TimeRange
		prevMonth    repositories.TimeRange
		withYearly   bool
		yearWindow   repositories.TimeRange
		prevYear     repositories.TimeRange
	)

	if params.Year != nil {
		year := *params.Year
		yearWindow = yearRange(year)
		prevYear = yearRange(year - 1)
		withYearly = true
		primary = &yearWindow

		if params.Month != nil {
			month := *params.Month
			monthWindow = monthRange(year, month)
			prevMonth = monthRange(prevMonthOf(year, month))
			withMonthly = true
			primary = &monthWindow

			if params.Date != nil {
				day := dayRange(year, month, *params.Date)
				primary = &day
			}
		}
	}

	report := &ProfitReport{}

	profit, err := s.orders.SumPaidProfit(ctx, primary, params.StoreID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	report.TotalProfit = profit

	quantity, err := s.orders.SumPaidQuantity(ctx, primary, params.StoreID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	report.TotalQuantity = quantity

	counts, err := s.orders.CountByStatus(ctx, params.StoreID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	report.Paid = counts["paid"]
	report.Pending = counts["pending"]
	report.Cancelled = counts["cancelled"]
	report.NotEnough = counts["notEnough"]

	totalCustomers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	report.TotalCustomers = totalCustomers

	yearStart := time.Date(s.now().UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	newCustomers, err := s.customers.CountCreatedSince(ctx, yearStart)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	report.NewCustomersThisYear = newCustomers

	if withMonthly {
		comparison, err := s.compare(ctx, monthWindow, prevMonth, params.StoreID)
		if err != nil {
			return nil, err
		}
		report.MonthlyProfit = comparison
	}
	if withYearly {
		comparison, err := s.compare(ctx, yearWindow, prevYear, params.StoreID)
		if err != nil {
			return nil, err
		}
		report.YearlyProfit = comparison
	}

	return report, nil
}

func (s *ReportService) compare(ctx context.Context, current, previous repositories.TimeRange, storeID *uuid.UUID) (*PeriodComparison, error) {
	currentProfit, err := s.orders.SumPaidProfit(ctx, &current, storeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	previousProfit, err := s.orders.SumPaidProfit(ctx, &previous, storeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	comparison := &PeriodComparison{
		Current:    currentProfit,
		Previous:   previousProfit,
		Difference: currentProfit - previousProfit,
	}
	if previousProfit != 0 {
		comparison.PercentageChange = float64(comparison.Difference) / float64(previousProfit) * 100
	}
	return comparison, nil
}

// Calendar windows are UTC 00:00:00.000 through 23:59:59.999 of the unit.
func dayRange(year, month, day int) repositories.TimeRange {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return repositories.TimeRange{Start: start, End: start.Add(24*time.Hour - time.Millisecond)}
}

func monthRange(year, month int) repositories.TimeRange {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return repositories.TimeRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Millisecond)}
}

func yearRange(year int) repositories.TimeRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return repositories.TimeRange{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Millisecond)}
}

func prevMonthOf(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

func reportCacheKey(params ReportParams) string {
	key := "report:daily-profit"
	if params.Date != nil {
		key += fmt.Sprintf(":d=%d", *params.Date)
	}
	if params.Month != nil {
		key += fmt.Sprintf(":m=%d", *params.Month)
	}
	if params.Year != nil {
		key += fmt.Sprintf(":y=%d", *params.Year)
	}
	if params.StoreID != nil {
		key += ":s=" + params.StoreID.String()
	}
	return key
}

func (s *ReportService) fromCache(ctx context.Context, key string) *ProfitReport {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var report ProfitReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReportService) toCache(ctx context.Context, key string, report *ProfitReport) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		logger.Warn(ctx, "Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
