package library

// Category groups books.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedBy int64  `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Book is a catalogued title. Image is server-managed and read-only here;
// uploads go through the web client.
type Book struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	Quantity      int    `json:"quantity"`
	Category      int64  `json:"category"`
	IsBestSelling bool   `json:"is_best_selling"`
	Image         string `json:"image,omitempty"`
	CreatedBy     int64  `json:"created_by,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Member plans and genders as the server enumerates them.
const (
	PlanStudent = "Student"
	PlanNormal  = "Normal"
	PlanPremium = "Premium"
)

// Member is a registered library member.
type Member struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Plan            string `json:"plan"`
	Address         string `json:"address"`
	Gender          string `json:"gender"`
	IsActive        bool   `json:"is_active"`
	LateReturnCount int    `json:"late_return_count,omitempty"`
	UnpaidFine      string `json:"unpaid_fine,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// Loan is one borrow record: a member holding a book. Dates are
// YYYY-MM-DD strings as the server renders them; LateFee is a decimal
// string for the same reason.
type Loan struct {
	ID          int64  `json:"id"`
	Member      int64  `json:"user"`
	Book        int64  `json:"book"`
	IssuedDate  string `json:"issued_date,omitempty"`
	ReturnDate  string `json:"return_date,omitempty"`
	LateFee     string `json:"late_fee,omitempty"`
	IsReturned  bool   `json:"is_returned"`
	LateFeePaid bool   `json:"late_fee_paid"`
}

// issueRequest creates a borrow record. The server resolves the member
// from user_name, which carries the member id - the web client's issue
// form posts the selected member id under both keys.
type issueRequest struct {
	Member     int64 `json:"user"`
	MemberName int64 `json:"user_name"`
	Book       int64 `json:"book"`
}

// LoanPage is one page of loan records.
type LoanPage struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []Loan `json:"results"`
}

// page is the server's pagination envelope. List endpoints that only need
// the records decode into it and unwrap Results.
type page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// choicePair is how the server enumerates field choices: a [value, label]
// pair per choice.
type choicePair [2]string

// InitialCounts is the dashboard's headline numbers.
type InitialCounts struct {
	IssuedBooks   int `json:"issued_books_count"`
	ReturnedBooks int `json:"returned_books_count"`
	TotalBooks    int `json:"total_books_count"`
	TotalMembers  int `json:"total_members_count"`
}

// BookCounts breaks the circulation numbers down by return status.
type BookCounts struct {
	IssuedBooks      int `json:"issued_books_count"`
	ReturnedBooks    int `json:"returned_books_count"`
	TotalBooks       int `json:"total_books_count"`
	NotReturnedBooks int `json:"not_returned_books_count"`
}

// MemberCounts breaks the membership numbers down by plan.
type MemberCounts struct {
	TotalMembers   int `json:"total_member_count"`
	NormalMembers  int `json:"normal_member_count"`
	PremiumMembers int `json:"premium_member_count"`
	StudentMembers int `json:"student_member_count"`
}

// BorrowCount is one entry in a most-borrowed ranking.
type BorrowCount struct {
	BookName string `json:"book__name"`
	Borrowed int    `json:"num_borrowed"`
}

// Insights ranks the most borrowed books over three windows.
type Insights struct {
	TopBooksWeek    []BorrowCount `json:"topBooksWeek"`
	TopBooksMonth   []BorrowCount `json:"topBooksMonth"`
	TopBooksAllTime []BorrowCount `json:"topBooksAllTime"`
}
