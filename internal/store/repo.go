package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/lesson"
)

var sqlite = entsql.Dialect(dialect.SQLite)

var (
	_ lesson.Persistence = (*Store)(nil)
	_ lesson.EventLog    = (*Store)(nil)
)

// LoadProgress returns the learner's records keyed by lesson id.
func (s *Store) LoadProgress(ctx context.Context, userID string) (map[string]lesson.ProgressRecord, error) {
	query, args := sqlite.Select(colLessonID, colCompleted, colScore, colDate).
		From(sqlite.Table(tableProgress)).
		Where(entsql.EQ(colUserID, userID)).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]lesson.ProgressRecord)
	for rows.Next() {
		var (
			lessonID string
			rec      lesson.ProgressRecord
		)
		if err := rows.Scan(&lessonID, &rec.Completed, &rec.Score, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out[lessonID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

// SaveProgress upserts the record for a lesson. The latest attempt wins.
func (s *Store) SaveProgress(ctx context.Context, userID, lessonID string, rec lesson.ProgressRecord) error {
	query, args := sqlite.Insert(tableProgress).
		Columns(colUserID, colLessonID, colCompleted, colScore, colDate).
		Values(userID, lessonID, rec.Completed, rec.Score, rec.Date.UTC()).
		OnConflict(
			entsql.ConflictColumns(colUserID, colLessonID),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// LoadBadges returns the learner's earned badges in award order.
func (s *Store) LoadBadges(ctx context.Context, userID string) ([]catalog.Badge, error) {
	query, args := sqlite.Select(colName, colImage, colDescription, colEarnedAt).
		From(sqlite.Table(tableBadgeAwards)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(colEarnedAt, colID).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()

	var out []catalog.Badge
	for rows.Next() {
		var (
			b  catalog.Badge
			at time.Time
		)
		if err := rows.Scan(&b.Name, &b.Image, &b.Description, &at); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		b.EarnedDate = &at
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate badges: %w", err)
	}
	return out, nil
}

// SaveBadges appends badges the learner does not hold yet. Existing awards
// keep their original earned date. Badges without an earned date are
// stamped with the current time.
func (s *Store) SaveBadges(ctx context.Context, userID string, badges []catalog.Badge) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, b := range badges {
			at := time.Now().UTC()
			if b.EarnedDate != nil {
				at = b.EarnedDate.UTC()
			}
			query, args := sqlite.Insert(tableBadgeAwards).
				Columns(colUserID, colName, colImage, colDescription, colEarnedAt).
				Values(userID, b.Name, b.Image, b.Description, at).
				OnConflict(
					entsql.ConflictColumns(colUserID, colName),
					entsql.DoNothing(),
				).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save badge %q: %w", b.Name, err)
			}
		}
		return nil
	})
}

// Reset deletes a learner's progress, badges and lesson events. The learner
// record itself is kept.
func (s *Store) Reset(ctx context.Context, userID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{tableProgress, tableBadgeAwards, tableLessonEvents} {
			query, args := sqlite.Delete(table).Where(entsql.EQ(colUserID, userID)).Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
