package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"stonepay_admin/config"
	"stonepay_admin/internal/app"
	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/pkg/logger"
)

type cli struct {
	configPath string
	verbose    bool
	app        *app.App
	in         io.Reader
}

func newRootCmd() *cobra.Command {
	c := &cli{in: os.Stdin}
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Operate the StonePay backend from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			var w io.Writer = io.Discard
			if c.verbose {
				w = cmd.ErrOrStderr()
			}
			c.app, err = app.Build(cmd.Context(), cfg, logger.NewQuietLogger(w, "[adminctl]"))
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("STONEPAY_CONFIG"), "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log backend calls to stderr")

	root.AddCommand(
		c.signInCmd(),
		c.ordersCmd(),
		c.productsCmd(),
		c.categoriesCmd(),
		c.usersCmd(),
		c.dashboardCmd(),
	)
	return root
}

// explain turns a dispatcher error into a one-line message for the terminal.
func explain(_ *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, backend.ErrSessionExpired) {
		return errors.New("your session has expired, run `adminctl signin` again")
	}
	return errors.New(dispatch.MessageOf(err))
}

func (c *cli) requireSession() error {
	if !c.app.Session.Authenticated() {
		return errors.New("not signed in, run `adminctl signin` first")
	}
	return nil
}
