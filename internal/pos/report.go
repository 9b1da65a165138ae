package pos

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openpdv/pdvserver/internal/domain"
	"github.com/openpdv/pdvserver/pkg/common"
)

// DateRange bounds a report by calendar date, inclusive on both ends. A nil
// bound leaves that side open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseReportDate parses a report bound ("2026-08-29" and most other common
// layouts) in the server's local timezone.
func ParseReportDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrValidation, "invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// Summary aggregates a report for accounting display.
type Summary struct {
	Count       int     `json:"count"`
	TotalSum    float64 `json:"total_sum"`
	MeanTotal   float64 `json:"mean_total"`
	MedianTotal float64 `json:"median_total"`
}

// Report reads historical orders by creation date.
type Report struct {
	db *gorm.DB
}

func NewReport(db *gorm.DB) *Report {
	return &Report{db: db}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ListOrders returns all orders whose creation date falls within r, with line
// items attached, ordered by creation timestamp ascending. An inverted range
// yields an empty result rather than an error.
func (s *Report) ListOrders(ctx context.Context, r DateRange) ([]domain.Order, error) {
	if r.From != nil && r.To != nil && startOfDay(*r.From).After(startOfDay(*r.To)) {
		return []domain.Order{}, nil
	}

	q := s.db.WithContext(ctx).Model(&domain.Order{}).Preload("Items")
	if r.From != nil {
		q = q.Where("created_at >= ?", startOfDay(*r.From))
	}
	if r.To != nil {
		q = q.Where("created_at < ?", startOfDay(*r.To).AddDate(0, 0, 1))
	}

	orders := []domain.Order{}
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Summarize computes the report footer from the returned orders.
func (s *Report) Summarize(orders []domain.Order) Summary {
	sum := Summary{Count: len(orders)}
	if len(orders) == 0 {
		return sum
	}
	totals := make([]float64, 0, len(orders))
	for _, o := range orders {
		sum.TotalSum += o.Total
		totals = append(totals, o.Total)
	}
	sum.TotalSum = common.Round2(sum.TotalSum)
	if mean, err := stats.Mean(totals); err == nil {
		sum.MeanTotal = common.Round2(mean)
	}
	if median, err := stats.Median(totals); err == nil {
		sum.MedianTotal = common.Round2(median)
	}
	return sum
}
