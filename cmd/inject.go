package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gleaner-dev/gleaner/internal/scout"
)

var injectDryRun bool

// injectCmd represents the inject command
var injectCmd = &cobra.Command{
	Use:   "inject [root]",
	Short: "Inject the commit bridge stub into every project",
	Long: `Inject writes the shared commit bridge script into each discovered
project under the ecosystem root. Projects that already carry the stub
are skipped. With --dry-run nothing is written; the report shows what
would happen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInject,
}

func init() {
	rootCmd.AddCommand(injectCmd)
	injectCmd.Flags().BoolVar(&injectDryRun, "dry-run", false, "report without writing anything")
}

func runInject(cmd *cobra.Command, args []string) error {
	root := GetConfig().Scan.Root
	if len(args) > 0 {
		root = args[0]
	}

	scanner := scout.NewScanner(appFs, root, commandLogger())
	results, err := scanner.InjectStubs(injectDryRun)
	if err != nil {
		return fmt.Errorf("inject stubs under %s: %w", root, err)
	}

	if isJSON() {
		return printJSON(results)
	}

	title := "💉 Bridge Stub Injection"
	if injectDryRun {
		title += " (dry run)"
	}
	cmd.Println(headerStyle.Render(title))

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	injected := 0
	for _, name := range names {
		if results[name] {
			injected++
			cmd.Printf("  %s %s\n", okStyle.Render("injected"), name)
		} else {
			cmd.Printf("  %s  %s\n", labelStyle.Render("skipped"), name)
		}
	}
	cmd.Printf("\n%s %d/%d\n", labelStyle.Render("Injected:"), injected, len(results))
	return nil
}
