package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/spacey-learn/spacey/internal/lesson"
)

// sequenceCounter manages the global monotonic sequence number assigned to
// lesson events. Uses raw SQL outside the builders because the increment
// has to be atomic at the database level; the mutex serializes within the
// process and the RETURNING clause does the rest.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int   // max results (0 = unlimited)
	After  int64 // sequence > After
	Before int64 // sequence < Before
}

// EventRecord is a stored lesson event.
type EventRecord struct {
	Sequence  int64
	Timestamp time.Time
	lesson.Event
}

// AppendLessonEvent records a lesson event under the next global sequence.
func (s *Store) AppendLessonEvent(ctx context.Context, ev lesson.Event) error {
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite.Insert(tableLessonEvents).
		Columns(colSequence, colTimestamp, colUserID, colSessionID, colLessonID, colAction, colDetail).
		Values(seqNum, time.Now().UTC(), ev.UserID, ev.SessionID, ev.LessonID, ev.Action, ev.Detail).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

// LessonEvents returns a learner's events in sequence order.
func (s *Store) LessonEvents(ctx context.Context, userID string, opts QueryOpts) ([]EventRecord, error) {
	sel := sqlite.Select(colSequence, colTimestamp, colUserID, colSessionID, colLessonID, colAction, colDetail).
		From(sqlite.Table(tableLessonEvents)).
		Where(entsql.EQ(colUserID, userID)).
		OrderBy(colSequence)
	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var r EventRecord
		if err := rows.Scan(&r.Sequence, &r.Timestamp, &r.UserID, &r.SessionID, &r.LessonID, &r.Action, &r.Detail); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson events: %w", err)
	}
	return out, nil
}
