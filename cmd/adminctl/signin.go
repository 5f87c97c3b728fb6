package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"stonepay_admin/internal/backend"
)

func (c *cli) signInCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				return errors.New("--password is required")
			}
			if _, err := c.app.Client.SignIn(cmd.Context(), email, password); err != nil {
				msg := backend.ServerMessage(err)
				if msg == "" {
					msg = "Sign-in failed! Please try again."
				}
				return errors.New(msg)
			}
			name := email
			if u := c.app.Session.User(); u != nil {
				name = u.DisplayName()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sign in successful! Signed in as %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}
