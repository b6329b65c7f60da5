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

var loansAll bool

// loansCmd represents the loans command.
var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List loans",
	Long: `Lists the signed-in patron's loans. With --all, lists every loan
in the library (requires the admin role).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		loansClient := client.NewLoans(gw)
		var loans []types.Loan
		var err error
		if loansAll {
			loans, err = loansClient.List(cmd.Context(), url.Values{})
		} else {
			loans, err = loansClient.ForCurrentUser(cmd.Context())
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBOOK\tPATRON\tCHECKOUT\tDUE\tSTATUS")
		for _, l := range loans {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.BookTitle, l.Patron, l.CheckoutDate, l.DueDate, l.Status)
		}
		return w.Flush()
	},
}

// returnCmd represents the return command.
var returnCmd = &cobra.Command{
	Use:   "return <loan-id>",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid loan id %q", args[0])
		}

		loan, err := client.NewLoans(gw).Return(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Returned %q\n", loan.BookTitle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loansCmd)
	loansCmd.AddCommand(returnCmd)
	loansCmd.Flags().BoolVar(&loansAll, "all", false, "list all loans (admin)")
}
