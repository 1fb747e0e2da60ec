package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// GuestNamePrefix starts every generated guest display name.
const GuestNamePrefix = "Space Explorer"

// User is a learner.
type User struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
}

// GuestName derives a display name from a learner id.
func GuestName(id string) string {
	suffix := id
	if len(suffix) > 4 {
		suffix = suffix[:4]
	}
	return fmt.Sprintf("%s %s", GuestNamePrefix, suffix)
}

// User returns the learner with id, or nil if there is none.
func (s *Store) User(ctx context.Context, id string) (*User, error) {
	query, args := sqlite.Select(colID, colDisplayName, colCreatedAt).
		From(sqlite.Table(tableUsers)).
		Where(entsql.EQ(colID, id)).
		Query()

	var u User
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// EnsureUser returns the learner with id, creating it with a guest name
// when missing. An empty id creates a new guest.
func (s *Store) EnsureUser(ctx context.Context, id string) (User, error) {
	if id == "" {
		return s.CreateGuest(ctx)
	}
	u, err := s.User(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u != nil {
		return *u, nil
	}
	return s.insertUser(ctx, User{ID: id, DisplayName: GuestName(id), CreatedAt: time.Now().UTC()})
}

// CreateGuest creates a learner with a random id.
func (s *Store) CreateGuest(ctx context.Context) (User, error) {
	id := uuid.NewString()
	return s.insertUser(ctx, User{ID: id, DisplayName: GuestName(id), CreatedAt: time.Now().UTC()})
}

// DefaultUser returns the earliest learner, creating a guest on first run.
func (s *Store) DefaultUser(ctx context.Context) (User, error) {
	query, args := sqlite.Select(colID, colDisplayName, colCreatedAt).
		From(sqlite.Table(tableUsers)).
		OrderBy(colCreatedAt).
		Limit(1).
		Query()

	var u User
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s.CreateGuest(ctx)
	}
	if err != nil {
		return User{}, fmt.Errorf("query default user: %w", err)
	}
	return u, nil
}

func (s *Store) insertUser(ctx context.Context, u User) (User, error) {
	query, args := sqlite.Insert(tableUsers).
		Columns(colID, colDisplayName, colCreatedAt).
		Values(u.ID, u.DisplayName, u.CreatedAt).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
