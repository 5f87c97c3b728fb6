package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/console"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/internal/table"
	"stonepay_admin/pkg/text"
)

func (c *cli) dashboardCmd() *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print counts, revenue, top sold products and the order chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			window := dispatch.LastDays(time.Now(), c.app.Config.Dashboard.Days)
			if start != "" || end != "" {
				window = dispatch.Window{}
				window.Start, _ = time.ParseInLocation(backend.ChartDateLayout, start, time.Local)
				window.End, _ = time.ParseInLocation(backend.ChartDateLayout, end, time.Local)
			}

			orders, err := c.app.Orders.Count(ctx)
			if err != nil {
				return explain(cmd, err)
			}
			products, err := c.app.Products.Count(ctx)
			if err != nil {
				return explain(cmd, err)
			}
			users, err := c.app.Users.Count(ctx)
			if err != nil {
				return explain(cmd, err)
			}
			top, err := c.app.Dashboard.FetchTopSold(ctx)
			if err != nil {
				return explain(cmd, err)
			}
			points, err := c.app.Dashboard.OrderChart(ctx, window)
			if err != nil {
				return explain(cmd, err)
			}
			revenue, err := c.app.Dashboard.TotalRevenue(ctx)
			if err != nil {
				return explain(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orders: %s  Products: %s  Users: %s  Revenue: %s\n\n",
				text.Number(orders), text.Number(products), text.Number(users), text.Naira(revenue.Decimal))

			fmt.Fprintln(out, "Top sold products")
			if err := table.New(top, console.TopSoldColumns(), nil, nil).WithoutPagination().RenderText(out); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nOrders %s to %s\n", window.Start.Format(backend.ChartDateLayout), window.End.Format(backend.ChartDateLayout))
			if len(points) == 0 {
				fmt.Fprintln(out, "No data available for the selected period.")
				return nil
			}
			return table.New(console.SortPoints(points), console.ChartColumns(), nil, nil).WithoutPagination().RenderText(out)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	return cmd
}
