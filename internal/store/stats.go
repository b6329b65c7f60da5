package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openshelf/openshelf/types"
)

// recentLoanLimit caps the dashboard activity feeds.
const recentLoanLimit = 3

// StatsRepository derives the dashboard summaries.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AdminStats summarizes the whole library as of now.
func (r *StatsRepository) AdminStats(ctx context.Context, now time.Time) (types.AdminStats, error) {
	var stats types.AdminStats

	const countsQuery = `
		SELECT
			(SELECT COUNT(1) FROM books),
			(SELECT COUNT(1) FROM users WHERE role = 'user'),
			(SELECT COUNT(1) FROM loans WHERE return_date IS NULL),
			(SELECT COUNT(1) FROM loans WHERE return_date IS NULL AND due_date < $1)`
	if err := r.db.QueryRowContext(ctx, countsQuery, now).Scan(
		&stats.TotalBooks,
		&stats.RegisteredPatrons,
		&stats.ActiveLoans,
		&stats.OverdueBooks,
	); err != nil {
		return types.AdminStats{}, err
	}

	const recentQuery = `
		SELECT b.title, u.name, l.created_at
		FROM loans l
		JOIN books b ON b.id = l.book_id
		JOIN users u ON u.id = l.patron_id
		ORDER BY l.created_at DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, recentQuery, recentLoanLimit)
	if err != nil {
		return types.AdminStats{}, err
	}
	defer rows.Close()

	stats.RecentLoans = make([]types.AdminRecentLoan, 0, recentLoanLimit)
	for rows.Next() {
		var recent types.AdminRecentLoan
		var createdAt time.Time
		if err := rows.Scan(&recent.Title, &recent.Patron, &createdAt); err != nil {
			return types.AdminStats{}, err
		}
		recent.Time = relativeTime(createdAt, now)
		stats.RecentLoans = append(stats.RecentLoans, recent)
	}
	if err := rows.Err(); err != nil {
		return types.AdminStats{}, err
	}
	return stats, nil
}

// UserStats summarizes one patron's standing as of now.
func (r *StatsRepository) UserStats(ctx context.Context, patronID int, now time.Time) (types.UserStats, error) {
	var stats types.UserStats

	const countsQuery = `
		SELECT
			(SELECT COUNT(1) FROM books),
			(SELECT COUNT(1) FROM loans WHERE patron_id = $1 AND return_date IS NULL),
			(SELECT COUNT(1) FROM loans WHERE patron_id = $1 AND return_date IS NULL AND due_date < $2)`
	if err := r.db.QueryRowContext(ctx, countsQuery, patronID, now).Scan(
		&stats.TotalBooks,
		&stats.ActiveLoans,
		&stats.OverdueBooks,
	); err != nil {
		return types.UserStats{}, err
	}

	const recentQuery = `
		SELECT b.title, l.checkout_date, l.due_date
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.patron_id = $1 AND l.return_date IS NULL
		ORDER BY l.checkout_date DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, recentQuery, patronID, recentLoanLimit)
	if err != nil {
		return types.UserStats{}, err
	}
	defer rows.Close()

	stats.RecentLoans = make([]types.UserRecentLoan, 0, recentLoanLimit)
	for rows.Next() {
		var recent types.UserRecentLoan
		var checkout, due time.Time
		if err := rows.Scan(&recent.Title, &checkout, &due); err != nil {
			return types.UserStats{}, err
		}
		recent.CheckoutDate = checkout.Format("Jan 2, 2006")
		recent.DueDate = due.Format("Jan 2, 2006")
		stats.RecentLoans = append(stats.RecentLoans, recent)
	}
	if err := rows.Err(); err != nil {
		return types.UserStats{}, err
	}
	return stats, nil
}

// relativeTime renders a coarse human description of how long ago t
// was, matching the dashboard's activity-feed style.
func relativeTime(t, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		minutes := int(elapsed.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case elapsed < 24*time.Hour:
		hours := int(elapsed.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case elapsed < 48*time.Hour:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	}
}
