/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// loginCmd represents the login command.
var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, sess, logger := newClient(cmd)
		defer logger.Sync()

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if !sess.Login(cmd.Context(), args[0], password) {
			return errors.New("login failed")
		}

		user, _ := sess.Current()
		fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
