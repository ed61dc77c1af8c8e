package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/output"
	"github.com/homecare-ojt/ltcsim/internal/sequencing"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce [worksheet-file]",
	Short: "Plan quantity cuts that bring a worksheet under its monthly limit",
	Long: `Plans which units to cut when a worksheet exceeds the care grade's
monthly limit, then re-prices the reduced worksheet.

Strategies:
  largest_saving  fewest units, most expensive units first (default)
  overage_first   units billed past a tier allowance first
  spread          one unit from each line in turn
  custom          categories in --order, e.g. --order equipment,visit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		engine, err := rt.engine(cmd)
		if err != nil {
			return err
		}
		ws, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("strategy")
		order, _ := cmd.Flags().GetString("order")
		strategy, err := sequencing.CreateStrategy(name, sequencing.ParseCategoryOrder(order))
		if err != nil {
			return err
		}
		buffer, _ := cmd.Flags().GetInt64("buffer")

		outcome, err := sequencing.NewReducer(engine).Reduce(cmd.Context(), *ws, strategy, domain.Won(buffer))
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			data, err := yaml.Marshal(outcome.Worksheet)
			if err != nil {
				return fmt.Errorf("failed to encode worksheet: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Reduced worksheet written to %s\n", path)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if strings.EqualFold(outputFormat, "json") {
			data, err := json.MarshalIndent(outcome, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		printReduction(cmd.OutOrStdout(), outcome)
		return nil
	},
}

func printReduction(out io.Writer, o *sequencing.Outcome) {
	before, after := o.Before.Aggregate, o.After.Aggregate
	fmt.Fprintf(out, "LIMIT REDUCTION (%s)\n", o.Plan.StrategyUsed)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Monthly limit:   %s\n", output.FormatWon(before.MonthlyLimit))
	fmt.Fprintf(out, "Total before:    %s\n", output.FormatWon(before.TotalCost))
	fmt.Fprintf(out, "To remove:       %s\n", output.FormatWon(o.Plan.Requested))

	if len(o.Plan.Steps) > 0 {
		fmt.Fprintln(out, "\nCUTS")
		for _, s := range o.Plan.Steps {
			change := fmt.Sprintf("%d → %d", s.FromQuantity, s.ToQuantity)
			if s.RemovesLine() {
				change += " (remove line)"
			}
			fmt.Fprintf(out, "  %-12s %-20s saves %s\n", s.ServiceID, change, output.FormatWon(s.Savings))
		}
	}

	fmt.Fprintf(out, "\nTotal after:     %s\n", output.FormatWon(after.TotalCost))
	fmt.Fprintf(out, "User burden:     %s → %s\n", output.FormatWon(before.TotalUserBurden), output.FormatWon(after.TotalUserBurden))
	if after.IsOverMonthlyLimit {
		fmt.Fprintf(out, "Still OVER LIMIT by %s\n", output.FormatPercent(after.OverLimitPercent))
	} else {
		fmt.Fprintf(out, "Remaining limit: %s\n", output.FormatWon(after.RemainingLimit))
	}
	for _, n := range o.Plan.Notes {
		fmt.Fprintf(out, "Note: %s\n", n)
	}
}

func init() {
	reduceCmd.Flags().String("strategy", sequencing.StrategyLargestSaving, "Reduction strategy ("+strings.Join(sequencing.StrategyNames(), ", ")+")")
	reduceCmd.Flags().String("order", "", "Category order for the custom strategy")
	reduceCmd.Flags().Int64("buffer", 0, "Won to keep free below the limit")
	reduceCmd.Flags().StringP("output", "o", "", "Write the reduced worksheet YAML to this file")
	reduceCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	reduceCmd.Flags().String("tariff", "", "Path to a tariff YAML file (default: embedded schedule)")
	reduceCmd.Flags().Bool("debug", false, "Enable debug logging of line calculations")
	rootCmd.AddCommand(reduceCmd)
}
