package gateway

import "github.com/openshelf/openshelf/types"

// The static catalog served in mock mode. Values are fixed so tests
// and demos see stable data.

var MockBooks = []types.Book{
	{ID: 1, Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780061120084", Category: "Fiction", Status: types.BookStatusAvailable, PublishedYear: 1960},
	{ID: 2, Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Category: "Science Fiction", Status: types.BookStatusLoaned, PublishedYear: 1949},
	{ID: 3, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", Category: "Fiction", Status: types.BookStatusAvailable, PublishedYear: 1925},
	{ID: 4, Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", Category: "Romance", Status: types.BookStatusAvailable, PublishedYear: 1813},
	{ID: 5, Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780547928227", Category: "Fantasy", Status: types.BookStatusLoaned, PublishedYear: 1937},
}

var MockCategories = []types.Category{
	{ID: 1, Name: "Fiction", Description: "Novels and short stories", BookCount: 145},
	{ID: 2, Name: "Science Fiction", Description: "Fiction with futuristic concepts", BookCount: 87},
	{ID: 3, Name: "Fantasy", Description: "Fiction with magical elements", BookCount: 112},
	{ID: 4, Name: "Romance", Description: "Fiction focusing on relationships", BookCount: 94},
	{ID: 5, Name: "Mystery", Description: "Fiction dealing with puzzles or crimes", BookCount: 76},
}

var MockLoans = []types.Loan{
	{ID: 1, BookTitle: "1984", Patron: "James Smith", CheckoutDate: "2023-05-05", DueDate: "2023-05-19", Status: types.LoanStatusLoaned},
	{ID: 2, BookTitle: "The Great Gatsby", Patron: "Sophia Brown", CheckoutDate: "2023-05-10", DueDate: "2023-05-24", Status: types.LoanStatusOverdue},
	{ID: 3, BookTitle: "The Hobbit", Patron: "Olivia Johnson", CheckoutDate: "2023-05-15", DueDate: "2023-05-29", Status: types.LoanStatusLoaned},
}

var MockAdminStats = types.AdminStats{
	TotalBooks:        635,
	RegisteredPatrons: 248,
	ActiveLoans:       87,
	OverdueBooks:      12,
	RecentLoans: []types.AdminRecentLoan{
		{Title: "The Alchemist", Patron: "Emma Wilson", Time: "2 hours ago"},
		{Title: "Dune", Patron: "James Smith", Time: "5 hours ago"},
		{Title: "The Silent Patient", Patron: "Sophia Brown", Time: "Yesterday"},
	},
}

var MockUserStats = types.UserStats{
	TotalBooks:   635,
	ActiveLoans:  2,
	OverdueBooks: 1,
	RecentLoans: []types.UserRecentLoan{
		{Title: "1984", CheckoutDate: "May 5, 2023", DueDate: "May 19, 2023"},
		{Title: "The Hobbit", CheckoutDate: "May 15, 2023", DueDate: "May 29, 2023"},
	},
}
