package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/homecare-ojt/ltcsim/internal/compare"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [worksheet-file]",
	Short: "Compare a worksheet against modified variants",
	Long: `Prices the worksheet as entered and once per template or transform,
then reports the cost and burden differences.

Examples:
  ltcsim compare worksheet.yaml --with all_weekend,tier_reduced_40
  ltcsim compare worksheet.yaml --transform set_quantity:service=visit-1,quantity=2 -f csv
  ltcsim compare --list-templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		engine, err := rt.engine(cmd)
		if err != nil {
			return err
		}
		compareEngine := compare.NewEngine(engine)
		out := cmd.OutOrStdout()

		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprintln(out, "Available templates:")
			for _, name := range compareEngine.Templates.List() {
				tmpl, _ := compareEngine.Templates.Get(name)
				fmt.Fprintf(out, "  %-24s %s\n", name, tmpl.Description)
			}
			fmt.Fprintln(out, "\nAvailable transforms:")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("worksheet file is required")
		}
		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		templates := transform.ParseTemplateList(templatesStr)
		if len(templates) == 0 && len(transforms) == 0 {
			return fmt.Errorf("--with or --transform is required (or use --list-templates)")
		}

		ws, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		baseName, _ := cmd.Flags().GetString("base")
		set, err := compareEngine.Compare(cmd.Context(), *ws, compare.Options{
			BaseName:      baseName,
			Templates:     templates,
			Transforms:    transforms,
			WorksheetPath: args[0],
		})
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		var text string
		switch strings.ToLower(outputFormat) {
		case "csv":
			text, err = (&compare.CSVFormatter{}).Format(set)
		case "json":
			text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		case "table":
			text = (&compare.TableFormatter{}).Format(set)
		case "compact":
			text = (&compare.TableFormatter{}).FormatCompact(set)
		default:
			return fmt.Errorf("unknown format %q (table, compact, csv, json)", outputFormat)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", "base", "Label for the worksheet as entered")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available templates and transforms")
	compareCmd.Flags().String("tariff", "", "Path to a tariff YAML file (default: embedded schedule)")
	compareCmd.Flags().Bool("debug", false, "Enable debug logging of line calculations")
}
