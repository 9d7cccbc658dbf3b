// Package library is the typed surface over the catalogue endpoints:
// books, categories, members, borrow records, and the dashboard numbers.
// It is pure plumbing - every method is one API call, authenticated by
// the bearer transport installed in the underlying api.Client.
package library

import (
	"context"
	"fmt"

	"github.com/athenaeum-hq/athenaeum-go/api"
	"github.com/pkg/errors"
)

// Client calls the library endpoints. Build its api.Client on an
// http.Client whose transport is an api.BearerTransport so every call
// carries a fresh access token.
type Client struct {
	api *api.Client
}

// NewClient creates a library client over apiClient.
func NewClient(apiClient *api.Client) (*Client, error) {
	if apiClient == nil {
		return nil, errors.New("[library.NewClient] api client is required")
	}
	return &Client{api: apiClient}, nil
}

// ListBooks returns the first page of the catalogue.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books page[Book]
	if err := c.api.Get(ctx, "api/books/", &books); err != nil {
		return nil, errors.Wrap(err, "[ListBooks]")
	}
	return books.Results, nil
}

// CreateBook adds a title to the catalogue.
func (c *Client) CreateBook(ctx context.Context, book Book) (Book, error) {
	var created Book
	if err := c.api.Post(ctx, "api/books/", book, &created); err != nil {
		return Book{}, errors.Wrap(err, "[CreateBook]")
	}
	return created, nil
}

// UpdateBook replaces the book with the given id.
func (c *Client) UpdateBook(ctx context.Context, id int64, book Book) (Book, error) {
	var updated Book
	if err := c.api.Put(ctx, fmt.Sprintf("api/books/%d/", id), book, &updated); err != nil {
		return Book{}, errors.Wrap(err, "[UpdateBook]")
	}
	return updated, nil
}

// DeleteBook removes the book with the given id.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("api/books/%d/", id)); err != nil {
		return errors.Wrap(err, "[DeleteBook]")
	}
	return nil
}

// ListCategories returns the first page of categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories page[Category]
	if err := c.api.Get(ctx, "api/categories/", &categories); err != nil {
		return nil, errors.Wrap(err, "[ListCategories]")
	}
	return categories.Results, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, category Category) (Category, error) {
	var created Category
	if err := c.api.Post(ctx, "api/categories/", category, &created); err != nil {
		return Category{}, errors.Wrap(err, "[CreateCategory]")
	}
	return created, nil
}

// UpdateCategory replaces the category with the given id.
func (c *Client) UpdateCategory(ctx context.Context, id int64, category Category) (Category, error) {
	var updated Category
	if err := c.api.Put(ctx, fmt.Sprintf("api/categories/%d/", id), category, &updated); err != nil {
		return Category{}, errors.Wrap(err, "[UpdateCategory]")
	}
	return updated, nil
}

// DeleteCategory removes the category with the given id.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("api/categories/%d/", id)); err != nil {
		return errors.Wrap(err, "[DeleteCategory]")
	}
	return nil
}

// ListMembers returns the first page of members.
func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var members page[Member]
	if err := c.api.Get(ctx, "api/members/", &members); err != nil {
		return nil, errors.Wrap(err, "[ListMembers]")
	}
	return members.Results, nil
}

// CreateMember registers a member.
func (c *Client) CreateMember(ctx context.Context, member Member) (Member, error) {
	var created Member
	if err := c.api.Post(ctx, "api/members/", member, &created); err != nil {
		return Member{}, errors.Wrap(err, "[CreateMember]")
	}
	return created, nil
}

// UpdateMember replaces the member with the given id.
func (c *Client) UpdateMember(ctx context.Context, id int64, member Member) (Member, error) {
	var updated Member
	if err := c.api.Put(ctx, fmt.Sprintf("api/members/%d/", id), member, &updated); err != nil {
		return Member{}, errors.Wrap(err, "[UpdateMember]")
	}
	return updated, nil
}

// DeleteMember removes the member with the given id.
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("api/members/%d/", id)); err != nil {
		return errors.Wrap(err, "[DeleteMember]")
	}
	return nil
}

// GenderChoices returns the genders the server accepts for members.
func (c *Client) GenderChoices(ctx context.Context) ([]string, error) {
	var choices []choicePair
	if err := c.api.Get(ctx, "api/members/gender_choices/", &choices); err != nil {
		return nil, errors.Wrap(err, "[GenderChoices]")
	}
	return choiceValues(choices), nil
}

// PlanChoices returns the membership plans the server accepts.
func (c *Client) PlanChoices(ctx context.Context) ([]string, error) {
	var choices []choicePair
	if err := c.api.Get(ctx, "api/members/plan_choices/", &choices); err != nil {
		return nil, errors.Wrap(err, "[PlanChoices]")
	}
	return choiceValues(choices), nil
}

// choiceValues projects the stored value out of each [value, label] pair.
func choiceValues(choices []choicePair) []string {
	values := make([]string, 0, len(choices))
	for _, choice := range choices {
		values = append(values, choice[0])
	}
	return values
}

// ListLoans returns one page of borrow records.
func (c *Client) ListLoans(ctx context.Context, page int) (LoanPage, error) {
	path := "api/manage/"
	if page > 1 {
		path = fmt.Sprintf("api/manage/?page=%d", page)
	}
	var loans LoanPage
	if err := c.api.Get(ctx, path, &loans); err != nil {
		return LoanPage{}, errors.Wrap(err, "[ListLoans]")
	}
	return loans, nil
}

// IssueBook lends a book to a member. The server resolves the member from
// the user_name field, which carries the member id, and enforces the
// plan's borrow limit and any unpaid fines.
func (c *Client) IssueBook(ctx context.Context, memberID, bookID int64) (Loan, error) {
	var created Loan
	request := issueRequest{Member: memberID, MemberName: memberID, Book: bookID}
	if err := c.api.Post(ctx, "api/manage/", request, &created); err != nil {
		return Loan{}, errors.Wrap(err, "[IssueBook]")
	}
	return created, nil
}

// UpdateLoan replaces the borrow record with the given id; marking it
// returned makes the server set the return date and compute any late fee.
func (c *Client) UpdateLoan(ctx context.Context, id int64, loan Loan) (Loan, error) {
	var updated Loan
	if err := c.api.Put(ctx, fmt.Sprintf("api/manage/%d/", id), loan, &updated); err != nil {
		return Loan{}, errors.Wrap(err, "[UpdateLoan]")
	}
	return updated, nil
}

// ReturnBook marks the borrow record as returned.
func (c *Client) ReturnBook(ctx context.Context, loan Loan) (Loan, error) {
	loan.IsReturned = true
	updated, err := c.UpdateLoan(ctx, loan.ID, loan)
	if err != nil {
		return Loan{}, errors.Wrap(err, "[ReturnBook]")
	}
	return updated, nil
}

// DeleteLoan removes the borrow record with the given id.
func (c *Client) DeleteLoan(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("api/manage/%d/", id)); err != nil {
		return errors.Wrap(err, "[DeleteLoan]")
	}
	return nil
}

// InitialCounts returns the dashboard's headline numbers.
func (c *Client) InitialCounts(ctx context.Context) (InitialCounts, error) {
	var counts InitialCounts
	if err := c.api.Get(ctx, "api/manage/initial_counts/", &counts); err != nil {
		return InitialCounts{}, errors.Wrap(err, "[InitialCounts]")
	}
	return counts, nil
}

// BookCounts returns circulation numbers by return status.
func (c *Client) BookCounts(ctx context.Context) (BookCounts, error) {
	var counts BookCounts
	if err := c.api.Get(ctx, "api/manage/book_counts/", &counts); err != nil {
		return BookCounts{}, errors.Wrap(err, "[BookCounts]")
	}
	return counts, nil
}

// MemberCounts returns membership numbers by plan.
func (c *Client) MemberCounts(ctx context.Context) (MemberCounts, error) {
	var counts MemberCounts
	if err := c.api.Get(ctx, "api/manage/member_counts/", &counts); err != nil {
		return MemberCounts{}, errors.Wrap(err, "[MemberCounts]")
	}
	return counts, nil
}

// Insights returns the most-borrowed rankings.
func (c *Client) Insights(ctx context.Context) (Insights, error) {
	var insights Insights
	if err := c.api.Get(ctx, "api/manage/insight/", &insights); err != nil {
		return Insights{}, errors.Wrap(err, "[Insights]")
	}
	return insights, nil
}
