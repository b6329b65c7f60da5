/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/openshelf/openshelf/internal/client"
	"github.com/openshelf/openshelf/types"
	"github.com/spf13/cobra"
)

var (
	bookSearch   string
	bookCategory string
	addAuthor    string
	addISBN      string
	addBookCat   string
	addYear      int
)

// booksCmd represents the books command.
var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse and manage the book catalog",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		params := url.Values{}
		if bookSearch != "" {
			params.Set("search", bookSearch)
		}
		if bookCategory != "" {
			params.Set("category", bookCategory)
		}

		books, err := client.NewBooks(gw).List(cmd.Context(), params)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tSTATUS")
		for _, b := range books {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, b.Category, b.Status)
		}
		return w.Flush()
	},
}

var booksGetCmd = &cobra.Command{
	Use:   "get <book-id>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		b, err := client.NewBooks(gw).Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %d\n", b.ID)
		fmt.Printf("Title:     %s\n", b.Title)
		fmt.Printf("Author:    %s\n", b.Author)
		fmt.Printf("ISBN:      %s\n", b.ISBN)
		fmt.Printf("Category:  %s\n", b.Category)
		fmt.Printf("Status:    %s\n", b.Status)
		if b.PublishedYear != 0 {
			fmt.Printf("Published: %d\n", b.PublishedYear)
		}
		return nil
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a book to the catalog (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		created, err := client.NewBooks(gw).Create(cmd.Context(), types.Book{
			Title:         args[0],
			Author:        addAuthor,
			ISBN:          addISBN,
			Category:      addBookCat,
			PublishedYear: addYear,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added book %d: %s\n", created.ID, created.Title)
		return nil
	},
}

var booksRmCmd = &cobra.Command{
	Use:   "rm <book-id>",
	Short: "Remove a book from the catalog (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid book id %q", args[0])
		}

		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		if err := client.NewBooks(gw).Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Removed book %d\n", id)
		return nil
	},
}

// categoriesCmd represents the categories command.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List book categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		categories, err := client.NewCategories(gw).List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tBOOKS")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\t%d\n", c.ID, c.Name, c.BookCount)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(categoriesCmd)
	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksGetCmd)
	booksCmd.AddCommand(booksAddCmd)
	booksCmd.AddCommand(booksRmCmd)
	booksListCmd.Flags().StringVar(&bookSearch, "search", "", "filter by title or author")
	booksListCmd.Flags().StringVar(&bookCategory, "category", "", "filter by category")
	booksAddCmd.Flags().StringVar(&addAuthor, "author", "", "book author")
	booksAddCmd.Flags().StringVar(&addISBN, "isbn", "", "book ISBN")
	booksAddCmd.Flags().StringVar(&addBookCat, "category", "", "book category")
	booksAddCmd.Flags().IntVar(&addYear, "year", 0, "year of first publication")
}
