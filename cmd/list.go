package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gleaner-dev/gleaner/internal/harvest"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all components in the registry",
	Long: `List shows every harvested component grouped by category, with its
file count, quality score, and tags.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store := harvest.NewStore(appFs, GetConfig().Registry.Path, commandLogger())
	components, err := store.List()
	if err != nil {
		return fmt.Errorf("list registry: %w", err)
	}

	if isJSON() {
		return printJSON(components)
	}

	if len(components) == 0 {
		cmd.Println("No components found in registry.")
		return nil
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("📦 Component Registry (%s)", GetConfig().Registry.Path)))

	categories := make([]string, 0, len(components))
	for category := range components {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		list := components[category]
		if len(list) == 0 {
			continue
		}
		cmd.Printf("\n%s\n", labelStyle.Render(strings.ToUpper(category[:1])+category[1:]+":"))
		for _, m := range list {
			tags := m.Tags
			if len(tags) > 3 {
				tags = tags[:3]
			}
			cmd.Printf("  %-24s %2d files  quality %.2f  %s\n",
				m.Name, len(m.Files), m.QualityScore, strings.Join(tags, ", "))
		}
	}
	return nil
}
