package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/logging"
	"github.com/homecare-ojt/ltcsim/internal/output"
	"github.com/homecare-ojt/ltcsim/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// envFile is the --env flag shared by every command
var envFile string

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ltcsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

// runtimeEnv is what every command needs besides its own flags
type runtimeEnv struct {
	settings *config.Settings
	log      *zap.SugaredLogger
}

func loadRuntime(cmd *cobra.Command) (*runtimeEnv, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	settings, err := config.LoadSettings(files...)
	if err != nil {
		return nil, err
	}
	level := settings.LogLevel
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	log, err := logging.Sugared(level, settings.LogFormat)
	if err != nil {
		return nil, err
	}
	return &runtimeEnv{settings: settings, log: log}, nil
}

// engine loads the tariff named by --tariff, then LTCSIM_TARIFF, then the
// embedded schedule
func (rt *runtimeEnv) engine(cmd *cobra.Command) (*calculation.Engine, error) {
	tariffFile, _ := cmd.Flags().GetString("tariff")
	if tariffFile == "" {
		tariffFile = rt.settings.TariffFile
	}
	tariff, err := config.NewTariffParser().Load(tariffFile)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngine(tariff)
	engine.SetLogger(rt.log)
	return engine, nil
}

func (rt *runtimeEnv) store(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, rt.settings)
}

var rootCmd = &cobra.Command{
	Use:   "ltcsim",
	Short: "Long-term care fee simulator",
	Long:  "Prices home-care worksheets against the long-term care fee schedule and runs the OJT course",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [worksheet-file]",
	Short: "Price a worksheet and print the fee report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.log.Sync() //nolint:errcheck

		ws, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		engine, err := rt.engine(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := engine.Simulate(ctx, *ws)
		if err != nil {
			return err
		}
		report := &domain.Report{
			CustomerName:    ws.CustomerName,
			GeneratedAt:     time.Now(),
			TariffYear:      engine.Tariff.Metadata.Year,
			Worksheet:       *ws,
			Result:          result,
			Recommendations: engine.Recommend(*ws, result),
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %v)", outputFormat, output.AvailableFormatterNames())
		}
		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath != "" || f.Name() == "xlsx" {
			path, err := output.WriteFormatted(f, report, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
		} else {
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			st, err := rt.store(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			rec := store.NewSavedSimulation(*ws, result, report.GeneratedAt)
			if err := st.SaveSimulation(ctx, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved simulation %s\n", rec.ID)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [worksheet-file]",
	Short: "Validate a worksheet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Worksheet %s is valid (%d lines)\n", args[0], len(ws.Lines))
		return nil
	},
}

var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Print the fee schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		engine, err := rt.engine(cmd)
		if err != nil {
			return err
		}
		return printTariff(cmd.OutOrStdout(), engine.Tariff)
	},
}

func printTariff(out io.Writer, t *domain.Tariff) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Tariff %d  %s\n\n", t.Metadata.Year, t.Metadata.Description)

	fmt.Fprintln(w, "SERVICES")
	fmt.Fprintln(w, "ID\tName\tUnit\tCategory\tPrice")
	for _, s := range t.Services {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.UnitLabel, output.CategoryLabel(s.Category), output.FormatWon(s.UnitPrice))
	}

	fmt.Fprintln(w, "\nTIER RULES")
	fmt.Fprintln(w, "Applies to\tBase allowance\tPeriod\tOverage service")
	for _, r := range t.TierRules {
		target := r.ServiceID
		if target == "" {
			target = "category " + string(r.Category)
		}
		overage := r.OverageServiceID
		if !r.HasOverage() {
			overage = "(not billed)"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", target, r.BaseAllowance, r.Period, overage)
	}

	fmt.Fprintln(w, "\nDAY PRICING")
	for _, d := range t.DayPricing {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.DayType, d.Name, output.FormatMultiplier(d.Multiplier))
	}

	fmt.Fprintln(w, "\nCARE GRADES")
	for _, g := range t.CareGrades {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.ID, g.Name, output.FormatWon(g.MonthlyLimit))
	}

	fmt.Fprintln(w, "\nBURDEN TIERS")
	for _, b := range t.BurdenTiers {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, output.FormatRate(b.Rate))
	}
	return w.Flush()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file with LTCSIM_* settings (default: .env if present)")

	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html, xlsx)")
	simulateCmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	simulateCmd.Flags().String("tariff", "", "Path to a tariff YAML file (default: embedded schedule)")
	simulateCmd.Flags().Bool("save", false, "Save the simulation to the configured store")
	simulateCmd.Flags().Bool("debug", false, "Enable debug logging of line calculations")

	tariffCmd.Flags().String("tariff", "", "Path to a tariff YAML file (default: embedded schedule)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tariffCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
	initLearningCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
