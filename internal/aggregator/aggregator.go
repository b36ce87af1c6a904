// Package aggregator rolls yesterday's payments across all order lists into
// the payments summary list.
package aggregator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"promobot/internal/metrics"
	"promobot/internal/sheets"
)

type Aggregator struct {
	store        sheets.ListStore
	schema       sheets.Schema
	paymentsList string
	summaryList  string
	loc          *time.Location
	delay        time.Duration
	log          *zap.Logger
	now          func() time.Time
}

func New(store sheets.ListStore, schema sheets.Schema, paymentsList, summaryList string, loc *time.Location, delay time.Duration, log *zap.Logger) *Aggregator {
	return &Aggregator{
		store:        store,
		schema:       schema,
		paymentsList: paymentsList,
		summaryList:  summaryList,
		loc:          loc,
		delay:        delay,
		log:          log,
		now:          time.Now,
	}
}

// Run sums the payment amounts of every order list whose paid date equals
// yesterday and upserts the total into the payments list row for that date.
// A list that fails to read is skipped; its payments are simply missing from
// the total for the day.
func (a *Aggregator) Run(ctx context.Context) error {
	targetDate := a.now().In(a.loc).AddDate(0, 0, -1).Format(sheets.DateLayout)

	names, err := a.store.ListNames(ctx)
	if err != nil {
		metrics.AggregationFailuresTotal.Inc()
		return fmt.Errorf("list sheets: %w", err)
	}

	total := 0
	for _, name := range names {
		if name == a.paymentsList || name == a.summaryList {
			continue
		}

		sum, err := a.sumList(ctx, name, targetDate)
		if err != nil {
			if ctx.Err() != nil {
				metrics.AggregationFailuresTotal.Inc()
				return ctx.Err()
			}
			a.log.Error("skipping list in payment rollup",
				zap.String("list", name),
				zap.Error(err),
			)
			continue
		}
		total += sum

		// The store throttles bursts of reads; space the lists out.
		if err := a.pause(ctx); err != nil {
			metrics.AggregationFailuresTotal.Inc()
			return err
		}
	}

	if err := a.upsertTotal(ctx, targetDate, total); err != nil {
		metrics.AggregationFailuresTotal.Inc()
		return err
	}

	metrics.AggregationRunsTotal.Inc()
	a.log.Info("payment rollup complete",
		zap.String("date", targetDate),
		zap.Int("total", total),
	)
	return nil
}

func (a *Aggregator) sumList(ctx context.Context, list, targetDate string) (int, error) {
	paidDates, err := a.store.ReadColumn(ctx, list, a.schema.PaidDate)
	if err != nil {
		return 0, fmt.Errorf("read paid dates of %q: %w", list, err)
	}
	amounts, err := a.store.ReadColumn(ctx, list, a.schema.PaymentPrice)
	if err != nil {
		return 0, fmt.Errorf("read payments of %q: %w", list, err)
	}

	sum := 0
	for i, date := range paidDates {
		if date != targetDate || i >= len(amounts) {
			continue
		}
		amount, err := strconv.Atoi(strings.TrimSpace(amounts[i]))
		if err != nil {
			a.log.Warn("unparsable payment amount",
				zap.String("list", list),
				zap.Int("row", i+1),
				zap.String("value", amounts[i]),
			)
			continue
		}
		sum += amount
	}
	return sum, nil
}

// upsertTotal overwrites the total of an existing row for the date, or
// appends a new date row after the last occupied one.
func (a *Aggregator) upsertTotal(ctx context.Context, date string, total int) error {
	dates, err := a.store.ReadColumn(ctx, a.paymentsList, sheets.PaymentsDateColumn)
	if err != nil {
		return fmt.Errorf("read payments list dates: %w", err)
	}

	cells := []sheets.Cell{}
	row := 0
	for i, existing := range dates {
		if existing == date {
			row = i + 1
			break
		}
	}
	if row == 0 {
		row = len(dates) + 1
		cells = append(cells, sheets.Cell{Column: sheets.PaymentsDateColumn, Row: row, Value: date})
	}
	cells = append(cells, sheets.Cell{Column: sheets.PaymentsTotalColumn, Row: row, Value: strconv.Itoa(total)})

	if err := a.store.WriteCells(ctx, a.paymentsList, cells); err != nil {
		return fmt.Errorf("write payments total for %s: %w", date, err)
	}
	return nil
}

func (a *Aggregator) pause(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.delay):
		return nil
	}
}
