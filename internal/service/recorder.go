package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gastobot/internal/budget"
	"gastobot/internal/model"
	"gastobot/internal/repository"
)

const defaultDescription = "-"

// EventPublisher is notified about every persisted entry. Publishing is
// best effort: a failure is logged and never surfaced to the caller.
type EventPublisher interface {
	PublishEntryRecorded(ctx context.Context, entry *model.Entry) error
}

// Recorder validates and appends ledger entries. publisher may be nil.
type Recorder struct {
	ledger    repository.Ledger
	catalog   *budget.Catalog
	publisher EventPublisher
	now       func() time.Time
}

func NewRecorder(ledger repository.Ledger, catalog *budget.Catalog, publisher EventPublisher) *Recorder {
	return &Recorder{
		ledger:    ledger,
		catalog:   catalog,
		publisher: publisher,
		now:       time.Now,
	}
}

// RecordExpense appends one expense entry. The reserved savings category is
// rejected here: it is only reachable through RecordSavings.
func (r *Recorder) RecordExpense(ctx context.Context, groupID int64, actor string, amount float64, category, description string) (*model.Entry, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	switch {
	case !validAmount(amount):
		return nil, model.ErrInvalidAmount
	case category == model.SavingsCategory:
		return nil, model.ErrReservedCategory
	case !r.catalog.Has(category):
		return nil, model.ErrUnknownCategory
	}
	return r.append(ctx, groupID, actor, amount, category, description)
}

// RecordSavings appends a savings contribution under the reserved category.
func (r *Recorder) RecordSavings(ctx context.Context, groupID int64, actor string, amount float64, description string) (*model.Entry, error) {
	if !validAmount(amount) {
		return nil, model.ErrInvalidAmount
	}
	return r.append(ctx, groupID, actor, amount, model.SavingsCategory, description)
}

func (r *Recorder) append(ctx context.Context, groupID int64, actor string, amount float64, category, description string) (*model.Entry, error) {
	if strings.TrimSpace(description) == "" {
		description = defaultDescription
	}

	entry := &model.Entry{
		Actor:       actor,
		Category:    category,
		Amount:      amount,
		Description: description,
		GroupID:     groupID,
		RecordedAt:  r.now().UTC(),
	}
	persisted, err := r.ledger.Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	if r.publisher != nil {
		if err = r.publisher.PublishEntryRecorded(ctx, persisted); err != nil {
			logrus.Errorf("recorder couldn't publish entry %d: %v", persisted.ID, err)
		}
	}
	return persisted, nil
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 1)
}
