package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashquiz/internal/deck"
)

// insertBatch bounds the rows per INSERT to stay under SQLite's variable limit.
const insertBatch = 200

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SetRepo implements deck.Source on top of the archive.
type SetRepo struct {
	db *sql.DB
}

var _ deck.Source = (*SetRepo)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty set name", deck.ErrInvalidName)
	}
	return nil
}

// deckID returns the row id of the named set, or deck.ErrNotFound.
func deckID(ctx context.Context, q querier, name string) (int, error) {
	query, args := builder().
		Select("id").
		From(entsql.Table(DecksTable.Name)).
		Where(entsql.EQ("name", name)).
		Query()

	var id int
	err := q.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", deck.ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: query set %s: %w", deck.ErrIO, name, err)
	}
	return id, nil
}

// Load returns the entries of the named set in stored order.
func (r *SetRepo) Load(ctx context.Context, name string) ([]deck.Entry, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	id, err := deckID(ctx, r.db, name)
	if err != nil {
		return nil, err
	}

	query, args := builder().
		Select("prompt", "answer").
		From(entsql.Table(CardsTable.Name)).
		Where(entsql.EQ("deck_id", id)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query cards of %s: %w", deck.ErrIO, name, err)
	}
	defer rows.Close()

	entries := []deck.Entry{}
	for rows.Next() {
		var e deck.Entry
		if err := rows.Scan(&e.Prompt, &e.Answer); err != nil {
			return nil, fmt.Errorf("%w: scan card: %w", deck.ErrIO, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read cards of %s: %w", deck.ErrIO, name, err)
	}
	return entries, nil
}

// Save replaces the named set with entries, creating it if needed. The
// replacement happens in one transaction.
func (r *SetRepo) Save(ctx context.Context, name string, entries []deck.Entry) error {
	if err := checkName(name); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", deck.ErrIO, err)
	}
	defer tx.Rollback()

	id, err := deckID(ctx, tx, name)
	switch {
	case errors.Is(err, deck.ErrNotFound):
		query, args := builder().Insert(DecksTable.Name).Columns("name").Values(name).Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: insert set %s: %w", deck.ErrIO, name, err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: insert set %s: %w", deck.ErrIO, name, err)
		}
		id = int(lastID)
	case err != nil:
		return err
	default:
		query, args := builder().Delete(CardsTable.Name).Where(entsql.EQ("deck_id", id)).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: clear set %s: %w", deck.ErrIO, name, err)
		}
	}

	for start := 0; start < len(entries); start += insertBatch {
		end := min(start+insertBatch, len(entries))
		ins := builder().Insert(CardsTable.Name).Columns("deck_id", "position", "prompt", "answer")
		for i, e := range entries[start:end] {
			ins.Values(id, start+i, e.Prompt, e.Answer)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insert cards of %s: %w", deck.ErrIO, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %w", deck.ErrIO, name, err)
	}
	return nil
}

// List returns every archived set with its card count, sorted by name.
func (r *SetRepo) List(ctx context.Context) ([]deck.SetInfo, error) {
	b := builder()
	d := b.Table(DecksTable.Name).As("d")
	c := b.Table(CardsTable.Name).As("c")
	query, args := b.Select(d.C("name"), entsql.Count(c.C("id"))).
		From(d).
		LeftJoin(c).On(d.C("id"), c.C("deck_id")).
		GroupBy(d.C("id"), d.C("name")).
		OrderBy(d.C("name")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list sets: %w", deck.ErrIO, err)
	}
	defer rows.Close()

	sets := []deck.SetInfo{}
	for rows.Next() {
		var info deck.SetInfo
		if err := rows.Scan(&info.Name, &info.Entries); err != nil {
			return nil, fmt.Errorf("%w: scan set: %w", deck.ErrIO, err)
		}
		sets = append(sets, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list sets: %w", deck.ErrIO, err)
	}
	return sets, nil
}

// Delete removes the named set and its cards.
func (r *SetRepo) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	query, args := builder().Delete(DecksTable.Name).Where(entsql.EQ("name", name)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: delete set %s: %w", deck.ErrIO, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete set %s: %w", deck.ErrIO, name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", deck.ErrNotFound, name)
	}
	return nil
}
