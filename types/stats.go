package types

// AdminStats summarizes the whole library for the admin dashboard.
type AdminStats struct {
	TotalBooks        int               `json:"totalBooks"`
	RegisteredPatrons int               `json:"registeredPatrons"`
	ActiveLoans       int               `json:"activeLoans"`
	OverdueBooks      int               `json:"overdueBooks"`
	RecentLoans       []AdminRecentLoan `json:"recentLoans"`
}

// AdminRecentLoan is one row of the admin dashboard's activity feed.
// Time is a human-readable relative description ("2 hours ago").
type AdminRecentLoan struct {
	Title  string `json:"title"`
	Patron string `json:"patron"`
	Time   string `json:"time"`
}

// UserStats summarizes a single patron's standing for their dashboard.
type UserStats struct {
	TotalBooks   int              `json:"totalBooks"`
	ActiveLoans  int              `json:"activeLoans"`
	OverdueBooks int              `json:"overdueBooks"`
	RecentLoans  []UserRecentLoan `json:"recentLoans"`
}

// UserRecentLoan is one row of the patron dashboard's loan list.
type UserRecentLoan struct {
	Title        string `json:"title"`
	CheckoutDate string `json:"checkoutDate"`
	DueDate      string `json:"dueDate"`
}
