package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gleaner-dev/gleaner/internal/harvest"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search registry components by name, description, or tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	store := harvest.NewStore(appFs, GetConfig().Registry.Path, commandLogger())
	results, err := store.Search(query)
	if err != nil {
		return fmt.Errorf("search registry: %w", err)
	}

	if isJSON() {
		return printJSON(results)
	}

	if len(results) == 0 {
		cmd.Printf("No components match %q.\n", query)
		return nil
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("🔍 %d match(es) for %q", len(results), query)))
	for _, m := range results {
		cmd.Printf("  %s/%s  %s\n", m.Category, m.Name, labelStyle.Render(m.Description))
		if len(m.Tags) > 0 {
			cmd.Printf("    tags: %s\n", strings.Join(m.Tags, ", "))
		}
	}
	return nil
}
