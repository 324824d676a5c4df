package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bucketcms/service/internal/apperr"
)

// PostgresJournal keeps rename markers in the rename_journal table created
// by the db migrations.
type PostgresJournal struct {
	db *pgxpool.Pool
}

// NewPostgresJournal creates a PostgresJournal with the given connection pool.
func NewPostgresJournal(db *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// Begin upserts m. The conditional update leaves a committed marker for a
// different ToID untouched, which shows up as zero affected rows.
func (j *PostgresJournal) Begin(ctx context.Context, m Marker) error {
	tag, err := j.db.Exec(ctx,
		`INSERT INTO rename_journal (collection_name, from_id, to_id, item_name, digest, committed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (collection_name, from_id) DO UPDATE
		 SET to_id = EXCLUDED.to_id,
		     item_name = EXCLUDED.item_name,
		     digest = EXCLUDED.digest,
		     committed = EXCLUDED.committed,
		     created_at = EXCLUDED.created_at
		 WHERE NOT rename_journal.committed OR rename_journal.to_id = EXCLUDED.to_id`,
		m.CollectionName, m.FromID, m.ToID, m.ItemName, m.Digest, m.Committed, m.CreatedAt,
	)
	if err != nil {
		return apperr.Storage.Wrap(fmt.Errorf("begin rename: %w", err))
	}
	if tag.RowsAffected() == 0 {
		existing, ok, err := j.Lookup(ctx, m.CollectionName, m.FromID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict.New("rename marker for %q in collection %q changed concurrently", m.FromID, m.CollectionName)
		}
		return errMarkerConflict(m, existing)
	}
	return nil
}

func (j *PostgresJournal) Clear(ctx context.Context, collectionName, fromID string) error {
	_, err := j.db.Exec(ctx,
		`DELETE FROM rename_journal WHERE collection_name = $1 AND from_id = $2`,
		collectionName, fromID,
	)
	if err != nil {
		return apperr.Storage.Wrap(fmt.Errorf("clear rename: %w", err))
	}
	return nil
}

func (j *PostgresJournal) Lookup(ctx context.Context, collectionName, fromID string) (Marker, bool, error) {
	var m Marker
	err := j.db.QueryRow(ctx,
		`SELECT collection_name, from_id, to_id, item_name, digest, committed, created_at
		 FROM rename_journal WHERE collection_name = $1 AND from_id = $2`,
		collectionName, fromID,
	).Scan(&m.CollectionName, &m.FromID, &m.ToID, &m.ItemName, &m.Digest, &m.Committed, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Marker{}, false, nil
	}
	if err != nil {
		return Marker{}, false, apperr.Storage.Wrap(fmt.Errorf("lookup rename: %w", err))
	}
	return m, true, nil
}

func (j *PostgresJournal) Pending(ctx context.Context) ([]Marker, error) {
	rows, err := j.db.Query(ctx,
		`SELECT collection_name, from_id, to_id, item_name, digest, committed, created_at
		 FROM rename_journal ORDER BY created_at`,
	)
	if err != nil {
		return nil, apperr.Storage.Wrap(fmt.Errorf("list renames: %w", err))
	}

	markers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Marker, error) {
		var m Marker
		err := row.Scan(&m.CollectionName, &m.FromID, &m.ToID, &m.ItemName, &m.Digest, &m.Committed, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, apperr.Storage.Wrap(fmt.Errorf("scan renames: %w", err))
	}
	return markers, nil
}
