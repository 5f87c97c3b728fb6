package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"stonepay_admin/internal/console"
	"stonepay_admin/internal/table"
)

type pageFlags struct {
	page int
	size int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page to print")
	cmd.Flags().IntVar(&p.size, "size", 0, "rows per page (one of the configured sizes)")
}

// printPage renders one page of rows as a text table.
func printPage[T table.Row](c *cli, cmd *cobra.Command, pf pageFlags, rows []T, cols []table.Column[T]) error {
	t := table.New(rows, cols, nil, c.app.Config.Table.ItemsPerPage)
	if pf.size != 0 && !t.SetPageSize(pf.size) {
		return fmt.Errorf("--size must be one of %v", t.Options())
	}
	t.SetPage(pf.page)
	return t.RenderText(cmd.OutOrStdout())
}

// listCmd builds "<resource> list" around a fetch and a printer.
func (c *cli) listCmd(short string, run func(ctx context.Context, cmd *cobra.Command, pf pageFlags) error) *cobra.Command {
	var pf pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			return run(cmd.Context(), cmd, pf)
		},
	}
	pf.bind(cmd)
	return cmd
}

func (c *cli) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Inspect and manage orders"}
	cmd.AddCommand(c.listCmd("List orders", func(ctx context.Context, cmd *cobra.Command, pf pageFlags) error {
		orders, err := c.app.Orders.FetchAll(ctx)
		if err != nil {
			return explain(cmd, err)
		}
		return printPage(c, cmd, pf, orders, console.OrderColumns())
	}))

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			id := args[0]
			if !yes && !c.confirm(cmd, fmt.Sprintf("Are you sure you want to delete order %s? [y/N] ", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			if err := c.app.Orders.Delete(cmd.Context(), id); err != nil {
				return explain(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Order deleted successfully")
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.AddCommand(del)
	return cmd
}

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Inspect products"}
	cmd.AddCommand(c.listCmd("List products", func(ctx context.Context, cmd *cobra.Command, pf pageFlags) error {
		products, err := c.app.Products.FetchAll(ctx)
		if err != nil {
			return explain(cmd, err)
		}
		categories, _ := c.app.Categories.FetchAll(ctx)
		return printPage(c, cmd, pf, products, console.ProductColumns(categories))
	}))
	return cmd
}

func (c *cli) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Inspect product categories"}
	cmd.AddCommand(c.listCmd("List categories", func(ctx context.Context, cmd *cobra.Command, pf pageFlags) error {
		categories, err := c.app.Categories.FetchAll(ctx)
		if err != nil {
			return explain(cmd, err)
		}
		return printPage(c, cmd, pf, categories, console.CategoryColumns())
	}))
	return cmd
}

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Inspect users"}
	cmd.AddCommand(c.listCmd("List users", func(ctx context.Context, cmd *cobra.Command, pf pageFlags) error {
		users, err := c.app.Users.FetchAll(ctx)
		if err != nil {
			return explain(cmd, err)
		}
		return printPage(c, cmd, pf, users, console.UserColumns())
	}))
	return cmd
}

func (c *cli) confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(c.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
