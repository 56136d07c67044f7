package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praveenr14083/studygen/internal/insights"
	"github.com/praveenr14083/studygen/internal/ui/theme"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Analyze a sales CSV and report stock and sales insights",
	Long:  "Reads a CSV with product, quantity and price columns, aggregates it per product and asks the model for stock-out predictions, reorder levels and a performance summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("csv")

		inv, err := insights.LoadCSVFile(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := insights.NewAnalyst(a.provider, insights.DefaultConfig()).Analyze(cmd.Context(), inv)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Inventory"))
		fmt.Fprintf(out, "%-20s  %-12s  %8s  %6s\n", "Product", "Category", "Price", "Stock")
		for _, p := range inv.Products {
			fmt.Fprintf(out, "%-20s  %-12s  %8.2f  %6d\n", truncate(p.Name, 20), p.Category, p.Price, p.Stock)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Title.Render("AI Insights"))
		fmt.Fprintln(out, report)
		return nil
	},
}

func init() {
	insightsCmd.Flags().String("csv", "", "Path to the sales CSV file")
	_ = insightsCmd.MarkFlagRequired("csv")
}
