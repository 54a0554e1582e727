package store

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ErrInvalidEmail is returned for addresses that are not a bare mailbox.
var ErrInvalidEmail = errors.New("invalid email address")

const maxListLimit = 1000

// Subscriber is a newsletter sign-up.
type Subscriber struct {
	Email     string    `json:"email"`
	Locale    string    `json:"locale"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail lowercases and validates a bare e-mail address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || len(email) > 254 {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// AddSubscriber stores a subscriber. Re-adding an existing address is not an
// error; created reports whether a new row was written.
func (s *Store) AddSubscriber(ctx context.Context, sub Subscriber) (created bool, err error) {
	if s == nil || s.DB == nil {
		return false, errNotInitialized
	}

	email, err := NormalizeEmail(sub.Email)
	if err != nil {
		return false, err
	}

	locale := strings.ToLower(strings.TrimSpace(sub.Locale))
	if locale == "" {
		locale = "en"
	}
	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO subscribers (email, locale, source, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING
	`, email, locale, strings.TrimSpace(sub.Source), createdAt.Unix())
	if err != nil {
		return false, fmt.Errorf("insert subscriber: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert subscriber: %w", err)
	}
	return affected > 0, nil
}

// ListSubscribers returns the most recent subscribers first.
func (s *Store) ListSubscribers(ctx context.Context, limit int) ([]Subscriber, error) {
	if s == nil || s.DB == nil {
		return nil, errNotInitialized
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT email, locale, source, created_at
		FROM subscribers
		ORDER BY created_at DESC, email ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var out []Subscriber
	for rows.Next() {
		var (
			sub       Subscriber
			createdAt int64
		)
		if err := rows.Scan(&sub.Email, &sub.Locale, &sub.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		sub.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return out, nil
}

// CountSubscribers returns the number of stored subscribers.
func (s *Store) CountSubscribers(ctx context.Context) (int, error) {
	if s == nil || s.DB == nil {
		return 0, errNotInitialized
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}
