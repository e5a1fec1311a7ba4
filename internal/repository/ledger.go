package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gastobot/internal/model"
)

//go:generate mockery --name=Ledger

// Ledger is the durable append-only entry store. Entries are strictly
// partitioned by group: every query is scoped to exactly one group, and
// results come back oldest first with insertion order breaking ties.
type Ledger interface {
	Append(ctx context.Context, entry *model.Entry) (*model.Entry, error)
	EntriesByGroup(ctx context.Context, groupID int64) ([]model.Entry, error)
	EntriesByGroupBetween(ctx context.Context, groupID int64, from, to time.Time) ([]model.Entry, error)
}

type Postgres struct {
	conn *pgxpool.Pool
}

func NewPostgres(conn *pgxpool.Pool) *Postgres {
	return &Postgres{
		conn: conn,
	}
}

func (p *Postgres) Append(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	query := `INSERT INTO entries (actor, category, amount, description, group_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := p.conn.QueryRow(ctx, query,
		entry.Actor, entry.Category, entry.Amount, entry.Description, entry.GroupID, entry.RecordedAt).Scan(&entry.ID)
	if err != nil {
		return nil, &model.PersistenceError{Op: "repository.Ledger.Append", Err: err}
	}
	return entry, nil
}

func (p *Postgres) EntriesByGroup(ctx context.Context, groupID int64) ([]model.Entry, error) {
	query := `SELECT id, actor, category, amount, description, group_id, recorded_at
		FROM entries WHERE group_id = $1 ORDER BY recorded_at, id`
	rows, err := p.conn.Query(ctx, query, groupID)
	if err != nil {
		return nil, &model.PersistenceError{Op: "repository.Ledger.EntriesByGroup", Err: err}
	}
	return scanEntries(rows, "repository.Ledger.EntriesByGroup")
}

func (p *Postgres) EntriesByGroupBetween(ctx context.Context, groupID int64, from, to time.Time) ([]model.Entry, error) {
	query := `SELECT id, actor, category, amount, description, group_id, recorded_at
		FROM entries WHERE group_id = $1 AND recorded_at BETWEEN $2 AND $3 ORDER BY recorded_at, id`
	rows, err := p.conn.Query(ctx, query, groupID, from, to)
	if err != nil {
		return nil, &model.PersistenceError{Op: "repository.Ledger.EntriesByGroupBetween", Err: err}
	}
	return scanEntries(rows, "repository.Ledger.EntriesByGroupBetween")
}

func scanEntries(rows pgx.Rows, op string) ([]model.Entry, error) {
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		err := rows.Scan(&e.ID, &e.Actor, &e.Category, &e.Amount, &e.Description, &e.GroupID, &e.RecordedAt)
		if err != nil {
			return nil, &model.PersistenceError{Op: op, Err: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.PersistenceError{Op: op, Err: err}
	}
	return entries, nil
}
