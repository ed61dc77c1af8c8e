package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/homecare-ojt/ltcsim/internal/breakeven"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

var fitCmd = &cobra.Command{
	Use:     "fit [worksheet-file]",
	Aliases: []string{"break-even"},
	Short:   "Find how many units of a service fit under the limit or a budget",
	Long: `Searches for the largest quantity of a service that can be added to the
worksheet while the total stays within the monthly limit, a total cost
budget, or a user burden budget. Without --service every catalog service
is solved.

Examples:
  ltcsim fit worksheet.yaml --service daycare-1
  ltcsim fit worksheet.yaml --target burden --budget 100000 --tier reduced-40`,
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

		targetStr, _ := cmd.Flags().GetString("target")
		target, err := breakeven.ParseTarget(targetStr)
		if err != nil {
			return err
		}
		budget, _ := cmd.Flags().GetInt64("budget")
		day, _ := cmd.Flags().GetString("day")
		tier, _ := cmd.Flags().GetString("tier")
		maxQty, _ := cmd.Flags().GetInt("max")
		req := breakeven.Request{
			Worksheet: *ws,
			Target:    target,
			Constraints: breakeven.Constraints{
				BurdenTierID: tier,
				MaxQuantity:  maxQty,
				Budget:       domain.Won(budget),
			},
		}
		if day != "" {
			req.Constraints.DayType = domain.NormalizeDayType(day)
		}

		solver := breakeven.NewDefaultSolver(engine)
		services, _ := cmd.Flags().GetStringSlice("service")
		outputFormat, _ := cmd.Flags().GetString("format")
		formatter := &breakeven.TableFormatter{}
		out := cmd.OutOrStdout()

		if len(services) == 1 {
			req.Constraints.ServiceID = services[0]
			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if strings.EqualFold(outputFormat, "json") {
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				return nil
			}
			fmt.Fprint(out, formatter.Format(result))
			return nil
		}

		mr, err := solver.SolveServices(cmd.Context(), req, services)
		if err != nil {
			return err
		}
		if strings.EqualFold(outputFormat, "json") {
			text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(mr)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		}
		fmt.Fprint(out, formatter.FormatMulti(mr))
		return nil
	},
}

func init() {
	fitCmd.Flags().StringSlice("service", nil, "Service id(s) to solve (default: every catalog service)")
	fitCmd.Flags().String("target", "limit", "Ceiling to stay under (limit, cost, burden)")
	fitCmd.Flags().Int64("budget", 0, "Budget in won for the cost and burden targets")
	fitCmd.Flags().String("day", "", "Day type of the added units (default: worksheet default)")
	fitCmd.Flags().String("tier", "", "Burden tier of the added units (default: worksheet default)")
	fitCmd.Flags().Int("max", 0, "Upper quantity bound (default 100)")
	fitCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	fitCmd.Flags().String("tariff", "", "Path to a tariff YAML file (default: embedded schedule)")
	fitCmd.Flags().Bool("debug", false, "Enable debug logging of line calculations")
	rootCmd.AddCommand(fitCmd)
}
