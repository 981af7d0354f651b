package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gleaner-dev/gleaner/internal/harvest"
)

var harvestProjectForce bool

// harvestProjectCmd represents the harvest-project command
var harvestProjectCmd = &cobra.Command{
	Use:   "harvest-project PATH",
	Short: "Bulk-harvest every matching file from a project",
	Long: `Harvest-project expands the built-in harvest rules (utility modules,
clients, scrapers, config files, chrome extension files) against the
project tree and harvests each match as <category>_<stem>. Individual
failures are reported but never stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runHarvestProject,
}

func init() {
	rootCmd.AddCommand(harvestProjectCmd)
	harvestProjectCmd.Flags().BoolVar(&harvestProjectForce, "force", false, "overwrite existing components")
}

func runHarvestProject(cmd *cobra.Command, args []string) error {
	projectPath := args[0]

	engine := harvest.NewEngine(appFs, GetConfig().Registry.Path, commandLogger())
	results, err := engine.HarvestProject(projectPath, nil, harvestProjectForce)
	if err != nil {
		return fmt.Errorf("harvest project %s: %w", projectPath, err)
	}

	if isJSON() {
		return printJSON(results)
	}

	cmd.Println(headerStyle.Render("🌾 Project Harvest"))
	if len(results) == 0 {
		cmd.Println("No files matched the harvest rules.")
		return nil
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	harvested := 0
	for _, name := range names {
		if results[name] {
			harvested++
			cmd.Printf("  %s %s\n", okStyle.Render("✔"), name)
		} else {
			cmd.Printf("  %s %s\n", warnStyle.Render("✘"), name)
		}
	}
	cmd.Printf("\n%s %d/%d components\n", labelStyle.Render("Harvested:"), harvested, len(results))
	return nil
}
