/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/openshelf/openshelf/internal/client"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard summary",
	Long: `Shows the dashboard summary for the signed-in account: library-wide
numbers for admins, the patron's own loan standing otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, sess, logger := newClient(cmd)
		defer logger.Sync()

		statsClient := client.NewStats(gw)
		if user, ok := sess.Current(); ok && user.IsAdmin() {
			stats, err := statsClient.Admin(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total books:        %d\n", stats.TotalBooks)
			fmt.Printf("Registered patrons: %d\n", stats.RegisteredPatrons)
			fmt.Printf("Active loans:       %d\n", stats.ActiveLoans)
			fmt.Printf("Overdue books:      %d\n", stats.OverdueBooks)
			for _, l := range stats.RecentLoans {
				fmt.Printf("  %s borrowed %q %s\n", l.Patron, l.Title, l.Time)
			}
			return nil
		}

		stats, err := statsClient.User(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Total books:   %d\n", stats.TotalBooks)
		fmt.Printf("Active loans:  %d\n", stats.ActiveLoans)
		fmt.Printf("Overdue books: %d\n", stats.OverdueBooks)
		for _, l := range stats.RecentLoans {
			fmt.Printf("  %q checked out %s, due %s\n", l.Title, l.CheckoutDate, l.DueDate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
