package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gleaner-dev/gleaner/internal/scout"
	"github.com/gleaner-dev/gleaner/models"
)

var (
	scanMapFile string
	scanSuggest bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Scan an ecosystem root and inventory its projects",
	Long: `Scan discovers every project directory under the ecosystem root,
classifies each by stack and family, checks its descriptor, collects
metrics, and scores files for harvest potential.

Examples:
  gleaner scan ~/projects                # summary to the terminal
  gleaner scan ~/projects --json         # full inventory as JSON
  gleaner scan ~/projects --map MAP.md   # also write the ecosystem map
  gleaner scan ~/projects --suggest      # print retrofit suggestions`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanMapFile, "map", "", "write the ecosystem map document to this path")
	scanCmd.Flags().BoolVar(&scanSuggest, "suggest", false, "print retrofit suggestions for projects lacking a valid descriptor")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := GetConfig().Scan.Root
	if len(args) > 0 {
		root = args[0]
	}

	scanner := scout.NewScanner(appFs, root, commandLogger())
	if secs := GetConfig().Scan.GitTimeoutSeconds; secs > 0 {
		scanner.SetGitTimeout(time.Duration(secs) * time.Second)
	}
	inventory, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}

	if scanMapFile != "" {
		if err := scanner.WriteMap(inventory, scanMapFile); err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(inventory)
	}

	printScanSummary(cmd, inventory)
	if scanSuggest {
		printRetrofitSuggestions(cmd, inventory)
	}
	if scanMapFile != "" {
		cmd.Printf("\n%s %s\n", labelStyle.Render("Map written to:"), scanMapFile)
	}
	return nil
}

func printScanSummary(cmd *cobra.Command, inv *models.EcosystemInventory) {
	cmd.Println(headerStyle.Render("🔎 Ecosystem Scan"))
	cmd.Printf("%s %d\n\n", labelStyle.Render("Projects:"), inv.TotalProjects)

	stackDist := inv.StackDistribution()
	for _, stack := range models.AllStacks {
		if n := stackDist[stack]; n > 0 {
			cmd.Printf("  %-18s %d\n", stack, n)
		}
	}

	dnaDist := inv.DNAStatusDistribution()
	valid := dnaDist[models.DNAValid]
	cmd.Printf("\n%s %s  %s %s\n",
		labelStyle.Render("Descriptors valid:"),
		okStyle.Render(fmt.Sprintf("%d", valid)),
		labelStyle.Render("needing attention:"),
		warnStyle.Render(fmt.Sprintf("%d", inv.TotalProjects-valid)))

	if top := inv.TopHarvestCandidates(); len(top) > 0 {
		cmd.Printf("\n%s\n", headerStyle.Render("Top harvest candidates"))
		limit := 5
		if len(top) < limit {
			limit = len(top)
		}
		for _, c := range top[:limit] {
			cmd.Printf("  %.2f  %s (%s)\n", c.HarvestScore, c.FilePath, c.Project)
		}
	}
}

func printRetrofitSuggestions(cmd *cobra.Command, inv *models.EcosystemInventory) {
	retrofits := inv.RetrofitCandidates()
	if len(retrofits) == 0 {
		cmd.Printf("\n%s\n", okStyle.Render("Every project has a valid descriptor."))
		return
	}
	cmd.Printf("\n%s\n", headerStyle.Render("Retrofit suggestions"))
	if len(retrofits) > 5 {
		retrofits = retrofits[:5]
	}
	for _, rc := range retrofits {
		cmd.Printf("  %s (priority %.2f)\n    %s\n",
			warnStyle.Render(rc.Project.Name), rc.Priority,
			scout.RetrofitCommand(rc.Project.Name))
	}
}
