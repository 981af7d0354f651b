package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gleaner-dev/gleaner/internal/harvest"
)

var (
	harvestCategory    string
	harvestDescription string
	harvestForce       bool
)

// harvestCmd represents the harvest command
var harvestCmd = &cobra.Command{
	Use:   "harvest SOURCE NAME",
	Short: "Harvest a file or directory into the component registry",
	Long: `Harvest copies a source file or directory into the component registry
and records a searchable manifest next to it. The category comes from
--category when it names a known category, otherwise it is inferred
from the source path.

Examples:
  gleaner harvest ./bot/exchange_client.py exchange-client --category clients
  gleaner harvest ./ext tab-tools --description "Tab management extension"`,
	Args: cobra.ExactArgs(2),
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)
	harvestCmd.Flags().StringVar(&harvestCategory, "category", "", "registry category (python, chrome, shared, utils, clients, scrapers, config)")
	harvestCmd.Flags().StringVar(&harvestDescription, "description", "", "component description")
	harvestCmd.Flags().BoolVar(&harvestForce, "force", false, "overwrite an existing component")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	source, name := args[0], args[1]

	engine := harvest.NewEngine(appFs, GetConfig().Registry.Path, commandLogger())
	ok := engine.Harvest(source, name, harvestCategory, harvestDescription, harvestForce)

	if isJSON() {
		return printJSON(map[string]bool{name: ok})
	}
	if !ok {
		return fmt.Errorf("harvest of %s failed (run with --verbose for details)", name)
	}
	cmd.Printf("%s %s\n", okStyle.Render("✔ harvested"), name)
	return nil
}
