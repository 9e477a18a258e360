package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	EventPageView  = "page_view"
	maxActivityLen = 500
	maxEventType   = 50

	DefaultInsightDays = 30
	MaxInsightDays     = 365
	topPathsLimit      = 20
)

var ErrEventTypeTooLong = errors.New("event type must be at most 50 characters")

// ActivityRecorder stores product analytics events. Anonymous visits have no user id.
type ActivityRecorder struct {
	db  *sql.DB
	now func() time.Time
}

func NewActivityRecorder(db *sql.DB) *ActivityRecorder {
	return &ActivityRecorder{db: db, now: time.Now}
}

func (a *ActivityRecorder) Record(ctx context.Context, userID *uuid.UUID, path, eventType string) error {
	if utf8.RuneCountInString(eventType) > maxEventType {
		return ErrEventTypeTooLong
	}
	path = truncateRunes(path, maxActivityLen)
	if eventType == "" {
		eventType = EventPageView
	}

	var uid any
	if userID != nil {
		uid = *userID
	}
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO activity_events (user_id, path, event_type, created_at)
		VALUES ($1, $2, $3, NOW())
	`, uid, path, eventType)
	return err
}

// truncateRunes keeps at most n characters; the column limit counts characters, not bytes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Insights summarises activity over a window of whole UTC days ending today.
type Insights struct {
	From              string      `json:"from"`
	To                string      `json:"to"`
	NewUsersPerDay    []DayCount  `json:"new_users_per_day"`
	ActiveUsersPerDay []DayCount  `json:"active_users_per_day"`
	RecurringUsers    int         `json:"recurring_users_count"`
	TopPaths          []PathCount `json:"top_pages"`
	TotalNewUsers     int         `json:"total_new_users"`
	TotalActiveUsers  int         `json:"total_active_users"`
}

// Insights aggregates the last days days of sign-ups and activity. Recurring users are those
// active on two or more distinct days in the window.
func (a *ActivityRecorder) Insights(ctx context.Context, days int) (*Insights, error) {
	if days <= 0 {
		days = DefaultInsightDays
	}
	if days > MaxInsightDays {
		days = MaxInsightDays
	}
	today := a.now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1)

	out := &Insights{From: from.Format(time.DateOnly), To: today.Format(time.DateOnly)}
	var err error

	out.NewUsersPerDay, err = a.dayCounts(ctx, `
		SELECT (created_at)::date AS d, COUNT(*)
		FROM users
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY (created_at)::date
		ORDER BY d
	`, from, end)
	if err != nil {
		return nil, fmt.Errorf("new users: %w", err)
	}

	out.ActiveUsersPerDay, err = a.dayCounts(ctx, `
		SELECT (created_at)::date AS d, COUNT(DISTINCT user_id)
		FROM activity_events
		WHERE user_id IS NOT NULL AND created_at >= $1 AND created_at < $2
		GROUP BY (created_at)::date
		ORDER BY d
	`, from, end)
	if err != nil {
		return nil, fmt.Errorf("active users: %w", err)
	}

	err = a.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT user_id
			FROM activity_events
			WHERE user_id IS NOT NULL AND created_at >= $1 AND created_at < $2
			GROUP BY user_id
			HAVING COUNT(DISTINCT (created_at)::date) >= 2
		) t
	`, from, end).Scan(&out.RecurringUsers)
	if err != nil {
		return nil, fmt.Errorf("recurring users: %w", err)
	}

	out.TopPaths, err = a.topPaths(ctx, from, end)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}

	err = a.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users
		WHERE created_at >= $1 AND created_at < $2
	`, from, end).Scan(&out.TotalNewUsers)
	if err != nil {
		return nil, fmt.Errorf("total new users: %w", err)
	}

	err = a.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM activity_events
		WHERE user_id IS NOT NULL AND created_at >= $1 AND created_at < $2
	`, from, end).Scan(&out.TotalActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("total active users: %w", err)
	}
	return out, nil
}

func (a *ActivityRecorder) dayCounts(ctx context.Context, query string, from, end time.Time) ([]DayCount, error) {
	rows, err := a.db.QueryContext(ctx, query, from, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DayCount, 0)
	for rows.Next() {
		var d time.Time
		var c int
		if err := rows.Scan(&d, &c); err != nil {
			return nil, err
		}
		out = append(out, DayCount{Date: d.Format(time.DateOnly), Count: c})
	}
	return out, rows.Err()
}

func (a *ActivityRecorder) topPaths(ctx context.Context, from, end time.Time) ([]PathCount, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS c
		FROM activity_events
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY path
		ORDER BY c DESC
		LIMIT $3
	`, from, end, topPathsLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PathCount, 0)
	for rows.Next() {
		var p PathCount
		if err := rows.Scan(&p.Path, &p.Count); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
