package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/openshelf/openshelf/types"
)

// LoanRepository handles persistence for loans. The wire record
// carries dates as plain strings and denormalized book/patron names;
// the repository does the joining and formatting.
type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

const loanColumns = `
	l.id, l.book_id, l.patron_id, b.title, u.name,
	l.checkout_date, l.due_date, l.return_date, l.status`

const loanJoins = `
	FROM loans l
	JOIN books b ON b.id = l.book_id
	JOIN users u ON u.id = l.patron_id`

func (r *LoanRepository) List(ctx context.Context) ([]types.Loan, error) {
	const query = `SELECT` + loanColumns + loanJoins + `
		ORDER BY l.id`
	return r.queryLoans(ctx, query)
}

func (r *LoanRepository) ListByPatron(ctx context.Context, patronID int) ([]types.Loan, error) {
	const query = `SELECT` + loanColumns + loanJoins + `
		WHERE l.patron_id = $1
		ORDER BY l.id`
	return r.queryLoans(ctx, query, patronID)
}

func (r *LoanRepository) Get(ctx context.Context, id int) (types.Loan, error) {
	const query = `SELECT` + loanColumns + loanJoins + `
		WHERE l.id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	loan, err := scanLoan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Loan{}, ErrNotFound
		}
		return types.Loan{}, err
	}
	return loan, nil
}

// Create inserts the loan and marks the book loaned in one
// transaction.
func (r *LoanRepository) Create(ctx context.Context, loan types.Loan) (types.Loan, error) {
	checkout, err := time.Parse(types.LoanDateFormat, loan.CheckoutDate)
	if err != nil {
		return types.Loan{}, err
	}
	due, err := time.Parse(types.LoanDateFormat, loan.DueDate)
	if err != nil {
		return types.Loan{}, err
	}
	if loan.Status == "" {
		loan.Status = types.LoanStatusLoaned
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Loan{}, err
	}
	defer tx.Rollback()

	const insertQuery = `
		INSERT INTO loans (book_id, patron_id, checkout_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		insertQuery,
		loan.BookID,
		loan.PatronID,
		checkout,
		due,
		loan.Status,
	).Scan(&loan.ID); err != nil {
		return types.Loan{}, err
	}

	const bookQuery = `UPDATE books SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, bookQuery, types.BookStatusLoaned, time.Now(), loan.BookID); err != nil {
		return types.Loan{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Loan{}, err
	}
	return r.Get(ctx, loan.ID)
}

func (r *LoanRepository) Update(ctx context.Context, loan types.Loan) (types.Loan, error) {
	due, err := time.Parse(types.LoanDateFormat, loan.DueDate)
	if err != nil {
		return types.Loan{}, err
	}

	const query = `
		UPDATE loans
		SET due_date = $1,
			status = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, due, loan.Status, loan.ID)
	if err != nil {
		return types.Loan{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Loan{}, err
	}
	if affected == 0 {
		return types.Loan{}, ErrNotFound
	}
	return r.Get(ctx, loan.ID)
}

// Return closes the loan and makes the book available again in one
// transaction.
func (r *LoanRepository) Return(ctx context.Context, id int, returnedAt time.Time) (types.Loan, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Loan{}, err
	}
	defer tx.Rollback()

	const loanQuery = `
		UPDATE loans
		SET return_date = $1,
			status = $2
		WHERE id = $3
		RETURNING book_id`
	var bookID int
	if err := tx.QueryRowContext(ctx, loanQuery, returnedAt, types.LoanStatusReturned, id).Scan(&bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Loan{}, ErrNotFound
		}
		return types.Loan{}, err
	}

	const bookQuery = `UPDATE books SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, bookQuery, types.BookStatusAvailable, time.Now(), bookID); err != nil {
		return types.Loan{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Loan{}, err
	}
	return r.Get(ctx, id)
}

func (r *LoanRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM loans WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LoanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]types.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := make([]types.Loan, 0)
	for rows.Next() {
		loan, err := scanLoan(rows.Scan)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoan(scan func(dest ...any) error) (types.Loan, error) {
	var loan types.Loan
	var checkout, due time.Time
	var returned sql.NullTime
	if err := scan(
		&loan.ID,
		&loan.BookID,
		&loan.PatronID,
		&loan.BookTitle,
		&loan.Patron,
		&checkout,
		&due,
		&returned,
		&loan.Status,
	); err != nil {
		return types.Loan{}, err
	}

	loan.CheckoutDate = checkout.Format(types.LoanDateFormat)
	loan.DueDate = due.Format(types.LoanDateFormat)
	if returned.Valid {
		date := returned.Time.Format(types.LoanDateFormat)
		loan.ReturnDate = &date
	}
	return loan, nil
}
