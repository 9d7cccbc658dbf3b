package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/athenaeum-hq/athenaeum-go/library"
)

func newBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalogue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all books",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			books, err := lib.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tQUANTITY\tCATEGORY\tBEST SELLING")
			for _, book := range books {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%v\n",
					book.ID, book.Name, book.Author, book.Quantity, book.Category, book.IsBestSelling)
			}
			return w.Flush()
		}),
	})

	var book library.Book
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			created, err := lib.CreateBook(cmd.Context(), book)
			if err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Printf("Book %d (%s) added\n", created.ID, created.Name)
			return nil
		}),
	}
	add.Flags().StringVar(&book.Name, "name", "", "Book name")
	add.Flags().StringVar(&book.Author, "author", "", "Author")
	add.Flags().IntVar(&book.Quantity, "quantity", 1, "Copies held")
	add.Flags().Int64Var(&book.Category, "category", 0, "Category ID")
	add.Flags().BoolVar(&book.IsBestSelling, "best-selling", false, "Mark as best selling")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("author")
	_ = add.MarkFlagRequired("category")
	cmd.AddCommand(add)

	var removeID int64
	remove := &cobra.Command{
		Use:   "rm",
		Short: "Delete a book",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			if err := lib.DeleteBook(cmd.Context(), removeID); err != nil {
				return err
			}
			fmt.Printf("Book %d deleted\n", removeID)
			return nil
		}),
	}
	remove.Flags().Int64Var(&removeID, "id", 0, "Book ID")
	_ = remove.MarkFlagRequired("id")
	cmd.AddCommand(remove)

	return cmd
}

func newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage book categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			categories, err := lib.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tNAME")
			for _, category := range categories {
				fmt.Fprintf(w, "%d\t%s\n", category.ID, category.Name)
			}
			return w.Flush()
		}),
	})

	var name string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			created, err := lib.CreateCategory(cmd.Context(), library.Category{Name: name})
			if err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Printf("Category %d (%s) added\n", created.ID, created.Name)
			return nil
		}),
	}
	add.Flags().StringVar(&name, "name", "", "Category name")
	_ = add.MarkFlagRequired("name")
	cmd.AddCommand(add)

	return cmd
}

func newMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage library members",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all members",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			members, err := lib.ListMembers(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tPLAN\tACTIVE")
			for _, member := range members {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%v\n",
					member.ID, member.Name, member.Email, member.PhoneNumber, member.Plan, member.IsActive)
			}
			return w.Flush()
		}),
	})

	var member library.Member
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a member",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			member.IsActive = true
			created, err := lib.CreateMember(cmd.Context(), member)
			if err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Printf("Member %d (%s) registered\n", created.ID, created.Name)
			return nil
		}),
	}
	add.Flags().StringVar(&member.Name, "name", "", "Member name")
	add.Flags().StringVar(&member.Email, "email", "", "Email address")
	add.Flags().StringVar(&member.PhoneNumber, "phone", "", "Phone number")
	add.Flags().StringVar(&member.Plan, "plan", library.PlanNormal, "Membership plan (Student, Normal, Premium)")
	add.Flags().StringVar(&member.Address, "address", "", "Postal address")
	add.Flags().StringVar(&member.Gender, "gender", "", "Gender")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")
	_ = add.MarkFlagRequired("phone")
	cmd.AddCommand(add)

	return cmd
}

func newLoansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Manage borrow records",
	}

	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List borrow records",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			loans, err := lib.ListLoans(cmd.Context(), page)
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tMEMBER\tBOOK\tISSUED\tRETURNED\tLATE FEE")
			for _, loan := range loans.Results {
				returned := loan.ReturnDate
				if !loan.IsReturned {
					returned = "-"
				}
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
					loan.ID, loan.Member, loan.Book, loan.IssuedDate, returned, loan.LateFee)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("%d record(s) total\n", loans.Count)
			return nil
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.AddCommand(list)

	var memberID, bookID int64
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Lend a book to a member",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			loan, err := lib.IssueBook(cmd.Context(), memberID, bookID)
			if err != nil {
				printFieldErrors(err)
				return err
			}
			fmt.Printf("Loan %d created (member %d, book %d)\n", loan.ID, loan.Member, loan.Book)
			return nil
		}),
	}
	issue.Flags().Int64Var(&memberID, "member", 0, "Member ID")
	issue.Flags().Int64Var(&bookID, "book", 0, "Book ID")
	_ = issue.MarkFlagRequired("member")
	_ = issue.MarkFlagRequired("book")
	cmd.AddCommand(issue)

	var loanID int64
	returnCmd := &cobra.Command{
		Use:   "return",
		Short: "Mark a borrow record as returned",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			page, err := lib.ListLoans(cmd.Context(), 1)
			if err != nil {
				return err
			}
			for _, loan := range page.Results {
				if loan.ID != loanID {
					continue
				}
				updated, err := lib.ReturnBook(cmd.Context(), loan)
				if err != nil {
					return err
				}
				fmt.Printf("Loan %d returned on %s, late fee %s\n", updated.ID, updated.ReturnDate, updated.LateFee)
				return nil
			}
			return fmt.Errorf("loan %d not found on the first page", loanID)
		}),
	}
	returnCmd.Flags().Int64Var(&loanID, "id", 0, "Loan ID")
	_ = returnCmd.MarkFlagRequired("id")
	cmd.AddCommand(returnCmd)

	return cmd
}

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show circulation and membership numbers",
		RunE: withLibrary(func(cmd *cobra.Command, lib *library.Client, args []string) error {
			counts, err := lib.InitialCounts(cmd.Context())
			if err != nil {
				return err
			}
			insights, err := lib.Insights(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Books: %d total, %d on loan, %d returned\n",
				counts.TotalBooks, counts.IssuedBooks, counts.ReturnedBooks)
			fmt.Printf("Members: %d\n", counts.TotalMembers)

			if len(insights.TopBooksAllTime) > 0 {
				fmt.Println("Most borrowed:")
				for _, entry := range insights.TopBooksAllTime {
					fmt.Printf("  %s (%d)\n", entry.BookName, entry.Borrowed)
				}
			}
			return nil
		}),
	}
}

// withLibrary resumes the stored session and hands the command a ready
// library client.
func withLibrary(run func(cmd *cobra.Command, lib *library.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.resume(cmd); err != nil {
			return err
		}
		return run(cmd, app.libClient, args)
	}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
