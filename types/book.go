package types

import "time"

// Book availability states. Status is an open string on the wire;
// these are the values the system itself writes.
const (
	BookStatusAvailable = "Available"
	BookStatusLoaned    = "Loaned"
)

// Book represents a title in the library catalog.
type Book struct {
	// ID is the unique identifier of the book.
	ID int `json:"id" db:"id"`

	// Title is the book's title.
	Title string `json:"title" db:"title"`

	// Author is the book's author.
	Author string `json:"author" db:"author"`

	// ISBN is the book's ISBN, stored as a string to preserve
	// leading zeros and hyphenation.
	ISBN string `json:"isbn" db:"isbn"`

	// Category is the display name of the book's category. This is a
	// denormalized copy, not a foreign key.
	Category string `json:"category" db:"category"`

	// Status is the current availability of the book.
	Status string `json:"status" db:"status"`

	// PublishedYear is the year of first publication.
	PublishedYear int `json:"publishedYear" db:"published_year"`

	// CoverKey is the object-storage key of the book's cover image,
	// empty when no cover has been uploaded.
	CoverKey string `json:"-" db:"cover_key"`

	CreatedAt time.Time `json:"created_at,omitzero" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero" db:"updated_at"`
}

// Category groups books for browsing. BookCount is maintained by the
// stats queries, not by the category record itself.
type Category struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	BookCount   int    `json:"bookCount" db:"book_count"`
}
