package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gastobot/internal/budget"
	"gastobot/internal/model"
	"gastobot/internal/repository/mocks"
)

// Wednesday; the week starts Monday 2024-05-13, the month on 2024-05-01.
var reportNow = time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)

func reportCatalog(t *testing.T) *budget.Catalog {
	t.Helper()
	catalog, err := budget.Parse(strings.NewReader(`categoria,semanal,mensual,anual
comida,100,400,
transporte,,120,
salud,,,600
regalos,,,
`))
	require.NoError(t, err)
	return catalog
}

func entryOn(category string, amount float64, year int, month time.Month, day int) model.Entry {
	return model.Entry{
		Actor:      "Marta",
		Category:   category,
		Amount:     amount,
		GroupID:    testGroup,
		RecordedAt: time.Date(year, month, day, 12, 0, 0, 0, time.UTC),
	}
}

func newReporter(t *testing.T, entries []model.Entry) (*Reporter, *mocks.Ledger) {
	t.Helper()
	ledger := mocks.NewLedger(t)
	ledger.On("EntriesByGroup", mock.Anything, testGroup).Return(entries, nil)

	reporter := NewReporter(ledger, reportCatalog(t))
	reporter.now = func() time.Time { return reportNow }
	return reporter, ledger
}

func TestReporter_CategorySummary(t *testing.T) {
	reporter, _ := newReporter(t, []model.Entry{
		entryOn("comida", 30, 2023, time.December, 24),
		entryOn("comida", 80, 2024, time.May, 14),
		entryOn(model.SavingsCategory, 50, 2024, time.May, 10),
	})

	totals, err := reporter.CategorySummary(context.Background(), testGroup)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{
		"comida":              110,
		model.SavingsCategory: 50,
	}, totals)
}

func TestReporter_CategorySummaryEmptyGroup(t *testing.T) {
	reporter, _ := newReporter(t, nil)

	totals, err := reporter.CategorySummary(context.Background(), testGroup)
	require.NoError(t, err)
	require.Empty(t, totals)
}

func TestReporter_PeriodReportWeeklyWinsOverMonthly(t *testing.T) {
	// comida defines both limits: only the weekly comparison is reported,
	// so the 2024-05-05 expense (this month, previous week) is ignored.
	reporter, _ := newReporter(t, []model.Entry{
		entryOn("comida", 30, 2024, time.May, 13),
		entryOn("comida", 45, 2024, time.May, 5),
	})

	lines, err := reporter.PeriodReport(context.Background(), testGroup)
	require.NoError(t, err)
	require.Equal(t, []model.PeriodLine{
		{Category: "comida", Period: model.Weekly, Limit: 100, Remaining: 70},
		{Category: "transporte", Period: model.Monthly, Limit: 120, Remaining: 120},
	}, lines)
}

func TestReporter_PeriodReportNegativeRemaining(t *testing.T) {
	reporter, _ := newReporter(t, []model.Entry{
		entryOn("comida", 30, 2024, time.May, 13),
		entryOn("comida", 80, 2024, time.May, 14),
	})

	lines, err := reporter.PeriodReport(context.Background(), testGroup)
	require.NoError(t, err)
	require.Equal(t, model.PeriodLine{Category: "comida", Period: model.Weekly, Limit: 100, Remaining: -10}, lines[0])
}

func TestReporter_PeriodReportWindowBoundaries(t *testing.T) {
	reporter, _ := newReporter(t, []model.Entry{
		entryOn("comida", 10, 2024, time.May, 13),      // Monday, in the week
		entryOn("comida", 99, 2024, time.May, 12),      // Sunday before, out
		entryOn("transporte", 20, 2024, time.May, 1),   // 1st of month, in
		entryOn("transporte", 70, 2024, time.April, 30), // out
	})

	lines, err := reporter.PeriodReport(context.Background(), testGroup)
	require.NoError(t, err)
	require.Equal(t, []model.PeriodLine{
		{Category: "comida", Period: model.Weekly, Limit: 100, Remaining: 90},
		{Category: "transporte", Period: model.Monthly, Limit: 120, Remaining: 100},
	}, lines)
}

func TestReporter_PeriodReportNeverListsSavings(t *testing.T) {
	reporter, _ := newReporter(t, []model.Entry{
		entryOn(model.SavingsCategory, 50, 2024, time.May, 14),
	})

	lines, err := reporter.PeriodReport(context.Background(), testGroup)
	require.NoError(t, err)
	for _, line := range lines {
		require.NotEqual(t, model.SavingsCategory, line.Category)
	}
}

func TestReporter_PeriodReportIdempotent(t *testing.T) {
	reporter, _ := newReporter(t, []model.Entry{
		entryOn("comida", 30, 2024, time.May, 13),
	})

	first, err := reporter.PeriodReport(context.Background(), testGroup)
	require.NoError(t, err)
	second, err := reporter.PeriodReport(context.Background(), testGroup)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReporter_AnnualReport(t *testing.T) {
	reporter, _ := newReporter(t, []model.Entry{
		entryOn("salud", 100, 2024, time.January, 1),    // year boundary, in
		entryOn("salud", 250, 2023, time.December, 31),  // previous year, out
		entryOn(model.SavingsCategory, 50, 2024, time.May, 10),
	})

	lines, err := reporter.AnnualReport(context.Background(), testGroup)
	require.NoError(t, err)
	require.Equal(t, []model.AnnualLine{
		{Category: "salud", Limit: 600, Remaining: 500},
	}, lines)
}

func TestReporter_HistoryInvalidRange(t *testing.T) {
	ledger := mocks.NewLedger(t)
	reporter := NewReporter(ledger, reportCatalog(t))
	reporter.now = func() time.Time { return reportNow }

	_, err := reporter.History(context.Background(), testGroup,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, model.ErrInvalidRange)
	ledger.AssertNotCalled(t, "EntriesByGroupBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReporter_HistoryIncludesWholeEndDay(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.Entry{entryOn("comida", 30, 2024, time.January, 20)}

	ledger := mocks.NewLedger(t)
	ledger.On("EntriesByGroupBetween", mock.Anything, testGroup, from,
		time.Date(2024, time.February, 1, 23, 59, 59, 999999999, time.UTC)).Return(entries, nil)

	reporter := NewReporter(ledger, reportCatalog(t))
	got, err := reporter.History(context.Background(), testGroup, from, to)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)

	require.Equal(t, monday, startOfWeek(monday))
	require.Equal(t, monday, startOfWeek(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, monday, startOfWeek(time.Date(2024, time.May, 19, 0, 0, 0, 0, time.UTC))) // Sunday
	require.Equal(t,
		time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC),
		startOfWeek(time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)))
}
