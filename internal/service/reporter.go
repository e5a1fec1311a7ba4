package service

import (
	"context"
	"time"

	"gastobot/internal/budget"
	"gastobot/internal/model"
	"gastobot/internal/repository"
)

// Reporter builds the read-only reports of a group's ledger. Period
// boundaries are computed in UTC from the current instant on every
// invocation, so a report is reproducible for a fixed ledger and clock.
type Reporter struct {
	ledger  repository.Ledger
	catalog *budget.Catalog
	now     func() time.Time
}

func NewReporter(ledger repository.Ledger, catalog *budget.Catalog) *Reporter {
	return &Reporter{
		ledger:  ledger,
		catalog: catalog,
		now:     time.Now,
	}
}

// CategorySummary returns the lifetime total per category. An empty map
// means the group has no entries yet.
func (r *Reporter) CategorySummary(ctx context.Context, groupID int64) (map[string]float64, error) {
	entries, err := r.ledger.EntriesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return sumByCategory(entries, time.Time{}), nil
}

// PeriodReport returns the remaining weekly or monthly budget per category
// in catalog order. A category defining both limits reports only the weekly
// one; a category defining neither is omitted.
func (r *Reporter) PeriodReport(ctx context.Context, groupID int64) ([]model.PeriodLine, error) {
	entries, err := r.ledger.EntriesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	today := dateOnly(r.now().UTC())
	weeklySpent := sumByCategory(entries, startOfWeek(today))
	monthlySpent := sumByCategory(entries, startOfMonth(today))

	var lines []model.PeriodLine
	for _, category := range r.catalog.Categories() {
		rule, _ := r.catalog.Rule(category)
		switch {
		case rule.Weekly != nil:
			lines = append(lines, model.PeriodLine{
				Category:  category,
				Period:    model.Weekly,
				Limit:     *rule.Weekly,
				Remaining: *rule.Weekly - weeklySpent[category],
			})
		case rule.Monthly != nil:
			lines = append(lines, model.PeriodLine{
				Category:  category,
				Period:    model.Monthly,
				Limit:     *rule.Monthly,
				Remaining: *rule.Monthly - monthlySpent[category],
			})
		}
	}
	return lines, nil
}

// AnnualReport returns the remaining year-to-date budget for every category
// with an annual limit, in catalog order.
func (r *Reporter) AnnualReport(ctx context.Context, groupID int64) ([]model.AnnualLine, error) {
	entries, err := r.ledger.EntriesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	spent := sumByCategory(entries, startOfYear(dateOnly(r.now().UTC())))

	var lines []model.AnnualLine
	for _, category := range r.catalog.Categories() {
		rule, _ := r.catalog.Rule(category)
		if rule.Annual == nil {
			continue
		}
		lines = append(lines, model.AnnualLine{
			Category:  category,
			Limit:     *rule.Annual,
			Remaining: *rule.Annual - spent[category],
		})
	}
	return lines, nil
}

// History returns the group's entries between two dates inclusive, oldest
// first.
func (r *Reporter) History(ctx context.Context, groupID int64, from, to time.Time) ([]model.Entry, error) {
	from, to = dateOnly(from.UTC()), dateOnly(to.UTC())
	if from.After(to) {
		return nil, model.ErrInvalidRange
	}
	// everything recorded during the end day is in range
	return r.ledger.EntriesByGroupBetween(ctx, groupID, from, to.AddDate(0, 0, 1).Add(-time.Nanosecond))
}

// sumByCategory totals amounts per category for entries recorded on or
// after since. The zero time means no lower bound. Categories with no
// matching entries are absent from the result.
func sumByCategory(entries []model.Entry, since time.Time) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		if !since.IsZero() && dateOnly(e.RecordedAt.UTC()).Before(since) {
			continue
		}
		totals[e.Category] += e.Amount
	}
	return totals
}

// startOfWeek returns the Monday of the week containing day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func startOfYear(day time.Time) time.Time {
	return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
