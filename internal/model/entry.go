package model

import "time"

// SavingsCategory is the reserved category for savings contributions. It is
// never part of the budget catalog and is exempt from every limit: savings
// are only ever summed.
const SavingsCategory = "ahorro"

// Entry is one recorded expense or savings contribution
type Entry struct {
	ID          int64
	Actor       string
	Category    string
	Amount      float64
	Description string
	GroupID     int64
	RecordedAt  time.Time
}

// BudgetRule holds the optional limits of one category. A nil limit means
// the category has no budget for that period.
type BudgetRule struct {
	Weekly  *float64
	Monthly *float64
	Annual  *float64
}

type PeriodKind string

const (
	Weekly  PeriodKind = "weekly"
	Monthly PeriodKind = "monthly"
)

// PeriodLine is one row of the weekly/monthly report. Remaining can be
// negative when the category is overspent.
type PeriodLine struct {
	Category  string
	Period    PeriodKind
	Limit     float64
	Remaining float64
}

// AnnualLine is one row of the year-to-date report.
type AnnualLine struct {
	Category  string
	Limit     float64
	Remaining float64
}
