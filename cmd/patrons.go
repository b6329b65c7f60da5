/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/openshelf/openshelf/internal/client"
	"github.com/spf13/cobra"
)

// patronsCmd represents the patrons command.
var patronsCmd = &cobra.Command{
	Use:   "patrons",
	Short: "List registered patrons (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gw, _, logger := newClient(cmd)
		defer logger.Sync()

		patrons, err := client.NewPatrons(gw).List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, p := range patrons {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Email, p.Role)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(patronsCmd)
}
