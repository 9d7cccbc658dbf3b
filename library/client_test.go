package library_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athenaeum-hq/athenaeum-go/api"
	"github.com/athenaeum-hq/athenaeum-go/library"
)

func newClient(t *testing.T, handler http.Handler) *library.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient, err := api.NewClient(server.URL + "/")
	require.NoError(t, err)
	client, err := library.NewClient(apiClient)
	require.NoError(t, err)
	return client
}

func TestBooks(t *testing.T) {
	t.Run("list unwraps the pagination envelope", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/books/", r.URL.Path)
			w.Write([]byte(`{"count":1,"next":null,"previous":null,"results":[{"id":1,"name":"Dune","author":"Frank Herbert","quantity":3,"category":2,"is_best_selling":true}]}`))
		}))

		books, err := client.ListBooks(context.Background())
		require.NoError(t, err)
		require.Len(t, books, 1)
		require.Equal(t, "Dune", books[0].Name)
		require.True(t, books[0].IsBestSelling)
	})

	t.Run("create", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var book library.Book
			require.NoError(t, json.NewDecoder(r.Body).Decode(&book))
			require.Equal(t, "Dune", book.Name)
			book.ID = 1
			w.WriteHeader(http.StatusCreated)
			require.NoError(t, json.NewEncoder(w).Encode(book))
		}))

		created, err := client.CreateBook(context.Background(), library.Book{Name: "Dune", Author: "Frank Herbert", Quantity: 3, Category: 2})
		require.NoError(t, err)
		require.Equal(t, int64(1), created.ID)
	})

	t.Run("update addresses the book by id", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/api/books/7/", r.URL.Path)
			w.Write([]byte(`{"id":7,"name":"Dune Messiah"}`))
		}))

		updated, err := client.UpdateBook(context.Background(), 7, library.Book{Name: "Dune Messiah"})
		require.NoError(t, err)
		require.Equal(t, "Dune Messiah", updated.Name)
	})

	t.Run("delete", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			require.Equal(t, "/api/books/7/", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))

		require.NoError(t, client.DeleteBook(context.Background(), 7))
	})
}

func TestCategories(t *testing.T) {
	t.Run("list unwraps the pagination envelope", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/categories/", r.URL.Path)
			w.Write([]byte(`{"count":2,"results":[{"id":1,"name":"Sci-Fi"},{"id":2,"name":"History"}]}`))
		}))

		categories, err := client.ListCategories(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 2)
		require.Equal(t, "Sci-Fi", categories[0].Name)
	})
}

func TestMembers(t *testing.T) {
	t.Run("create carries the membership fields", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/members/", r.URL.Path)
			var member library.Member
			require.NoError(t, json.NewDecoder(r.Body).Decode(&member))
			require.Equal(t, library.PlanPremium, member.Plan)
			member.ID = 3
			w.WriteHeader(http.StatusCreated)
			require.NoError(t, json.NewEncoder(w).Encode(member))
		}))

		created, err := client.CreateMember(context.Background(), library.Member{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			PhoneNumber: "555-0100",
			Plan:        library.PlanPremium,
			IsActive:    true,
		})
		require.NoError(t, err)
		require.Equal(t, int64(3), created.ID)
	})

	t.Run("list unwraps the pagination envelope", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/members/", r.URL.Path)
			w.Write([]byte(`{"count":1,"results":[{"id":3,"name":"Jane Doe","email":"jane@example.com","plan":"Premium","is_active":true}]}`))
		}))

		members, err := client.ListMembers(context.Background())
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.Equal(t, "Jane Doe", members[0].Name)
	})

	t.Run("choices project the value out of each pair", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/members/plan_choices/":
				w.Write([]byte(`[["Student","Student"],["Normal","Normal"],["Premium","Premium"]]`))
			case "/api/members/gender_choices/":
				w.Write([]byte(`[["Male","Male"],["Female","Female"]]`))
			default:
				http.NotFound(w, r)
			}
		}))

		plans, err := client.PlanChoices(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{library.PlanStudent, library.PlanNormal, library.PlanPremium}, plans)

		genders, err := client.GenderChoices(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"Male", "Female"}, genders)
	})
}

func TestLoans(t *testing.T) {
	t.Run("first page omits the page parameter", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/manage/", r.URL.Path)
			require.Empty(t, r.URL.Query().Get("page"))
			w.Write([]byte(`{"count":1,"results":[{"id":1,"user":3,"book":7,"issued_date":"2026-08-01","is_returned":false}]}`))
		}))

		page, err := client.ListLoans(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		require.Equal(t, int64(3), page.Results[0].Member)
		require.Equal(t, int64(7), page.Results[0].Book)
	})

	t.Run("later pages are requested explicitly", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "2", r.URL.Query().Get("page"))
			w.Write([]byte(`{"count":12,"previous":"/api/manage/","results":[]}`))
		}))

		page, err := client.ListLoans(context.Background(), 2)
		require.NoError(t, err)
		require.Equal(t, 12, page.Count)
	})

	t.Run("issue posts the member id under both keys", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, float64(3), body["user"])
			// The server resolves the member from user_name.
			require.Equal(t, float64(3), body["user_name"])
			require.Equal(t, float64(7), body["book"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":9,"user":3,"book":7,"issued_date":"2026-08-28","is_returned":false}`))
		}))

		loan, err := client.IssueBook(context.Background(), 3, 7)
		require.NoError(t, err)
		require.Equal(t, int64(9), loan.ID)
	})

	t.Run("return flips the returned flag and trusts the server's fee", func(t *testing.T) {
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/api/manage/9/", r.URL.Path)

			var loan library.Loan
			require.NoError(t, json.NewDecoder(r.Body).Decode(&loan))
			require.True(t, loan.IsReturned)

			loan.ReturnDate = "2026-08-28"
			loan.LateFee = "5.00"
			require.NoError(t, json.NewEncoder(w).Encode(loan))
		}))

		updated, err := client.ReturnBook(context.Background(), library.Loan{ID: 9, Member: 3, Book: 7})
		require.NoError(t, err)
		require.True(t, updated.IsReturned)
		require.Equal(t, "2026-08-28", updated.ReturnDate)
		require.Equal(t, "5.00", updated.LateFee)
	})
}

func TestDashboard(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/manage/initial_counts/":
			w.Write([]byte(`{"issued_books_count":4,"returned_books_count":2,"total_books_count":10,"total_members_count":5}`))
		case "/api/manage/book_counts/":
			w.Write([]byte(`{"issued_books_count":4,"returned_books_count":2,"total_books_count":10,"not_returned_books_count":2}`))
		case "/api/manage/member_counts/":
			w.Write([]byte(`{"total_member_count":5,"normal_member_count":2,"premium_member_count":1,"student_member_count":2}`))
		case "/api/manage/insight/":
			w.Write([]byte(`{"topBooksWeek":[],"topBooksMonth":[{"book__name":"Dune","num_borrowed":3}],"topBooksAllTime":[{"book__name":"Dune","num_borrowed":8}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	counts, err := client.InitialCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, counts.TotalBooks)
	require.Equal(t, 5, counts.TotalMembers)

	bookCounts, err := client.BookCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, bookCounts.NotReturnedBooks)

	memberCounts, err := client.MemberCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, memberCounts.StudentMembers)

	insights, err := client.Insights(context.Background())
	require.NoError(t, err)
	require.Empty(t, insights.TopBooksWeek)
	require.Equal(t, "Dune", insights.TopBooksMonth[0].BookName)
	require.Equal(t, 8, insights.TopBooksAllTime[0].Borrowed)
}
