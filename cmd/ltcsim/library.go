package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/learning"
)

var libraryCmd = &cobra.Command{
	Use:   "library [query]",
	Short: "Search the guide and form library",
	Long: `Lists library documents whose title, description or tags contain the
query, ignoring case. Without a query every document in the category is
listed.

Examples:
  ltcsim library 신청서
  ltcsim library --category 가이드`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		category, _ := cmd.Flags().GetString("category")
		docType, _ := cmd.Flags().GetString("type")
		outputFormat, _ := cmd.Flags().GetString("format")

		lib, err := config.NewLibraryParser().Load(file)
		if err != nil {
			return err
		}
		filter := learning.LibraryFilter{Category: category, Type: domain.DocumentType(docType)}
		if filter.Type != "" && !filter.Type.Valid() {
			return fmt.Errorf("unknown document type %q (form, guide, template)", docType)
		}
		if len(args) == 1 {
			filter.Query = args[0]
		}

		docs := learning.SearchLibrary(lib.Documents, filter)
		out := cmd.OutOrStdout()
		if strings.EqualFold(outputFormat, "json") {
			if docs == nil {
				docs = []domain.LibraryDocument{}
			}
			data, err := json.MarshalIndent(docs, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode documents: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		return printLibrary(out, docs)
	},
}

func printLibrary(out io.Writer, docs []domain.LibraryDocument) error {
	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents found")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tType\tCategory\tTitle\tTags")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Type, d.Category, d.Title, strings.Join(d.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%d document(s)\n", len(docs))
	return w.Flush()
}

func init() {
	libraryCmd.Flags().StringP("category", "c", "", "Only documents in this category (전체 for all)")
	libraryCmd.Flags().String("type", "", "Only documents of this type (form, guide, template)")
	libraryCmd.Flags().String("file", "", "Path to a library YAML file (default: embedded library)")
	libraryCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	rootCmd.AddCommand(libraryCmd)
}
