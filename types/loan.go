package types

// Loan states as written on the wire.
const (
	LoanStatusLoaned   = "Loaned"
	LoanStatusOverdue  = "Overdue"
	LoanStatusReturned = "Returned"
)

// LoanDateFormat is the wire format for loan dates.
const LoanDateFormat = "2006-01-02"

// Loan represents a checkout of a book by a patron. Dates travel as
// plain "YYYY-MM-DD" strings; ReturnDate is null until the book comes
// back.
type Loan struct {
	ID int `json:"id" db:"id"`

	// BookID and PatronID identify the loaned book and the borrowing
	// patron. They are accepted on creation and omitted from list
	// payloads, which carry the display fields below instead.
	BookID   int `json:"bookId,omitempty" db:"book_id"`
	PatronID int `json:"patronId,omitempty" db:"patron_id"`

	// BookTitle and Patron are denormalized display copies.
	BookTitle string `json:"bookTitle" db:"book_title"`
	Patron    string `json:"patron" db:"patron"`

	CheckoutDate string  `json:"checkoutDate" db:"checkout_date"`
	DueDate      string  `json:"dueDate" db:"due_date"`
	Status       string  `json:"status" db:"status"`
	ReturnDate   *string `json:"returnDate" db:"return_date"`
}
