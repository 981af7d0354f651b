package scout

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/models"
)

// RetrofitCommand is the literal remediation command suggested for a
// project lacking a valid descriptor.
func RetrofitCommand(projectName string) string {
	return fmt.Sprintf("gleaner retrofit %s --force", projectName)
}

// topCandidatesInReport and topRetrofitsInReport bound the ranked
// sections of the map document.
const (
	topCandidatesInReport = 10
	topRetrofitsInReport  = 5
)

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GenerateMap renders the ecosystem inventory into the map document.
// It is a pure formatter: same inventory in, same text out.
func GenerateMap(inv *models.EcosystemInventory) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Ecosystem Map\n\n")
	fmt.Fprintf(&b, "**Generated on:** %s\n", inv.ScanDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Projects:** %d\n\n", inv.TotalProjects)

	b.WriteString("## Ecosystem Overview\n\n### Stack Distribution\n")
	stackDist := inv.StackDistribution()
	for _, stack := range models.AllStacks {
		if n := stackDist[stack]; n > 0 {
			fmt.Fprintf(&b, "- **%s**: %d projects\n", stack, n)
		}
	}

	b.WriteString("\n### Family Distribution\n")
	familyDist := inv.FamilyDistribution()
	for _, family := range models.AllFamilies {
		if n := familyDist[family]; n > 0 {
			fmt.Fprintf(&b, "- **%s**: %d projects\n", family, n)
		}
	}

	b.WriteString("\n### DNA Status Distribution\n")
	dnaDist := inv.DNAStatusDistribution()
	for _, status := range models.AllDNAStatuses {
		if n := dnaDist[status]; n > 0 {
			fmt.Fprintf(&b, "- **%s**: %d projects\n", status, n)
		}
	}

	b.WriteString("\n## Project Families\n\n")
	byFamily := make(map[models.ProjectFamily][]models.ProjectInventory)
	for _, p := range inv.Projects {
		byFamily[p.Family] = append(byFamily[p.Family], p)
	}
	for _, family := range models.AllFamilies {
		projects := byFamily[family]
		if len(projects) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s (%d projects)\n\n", titleCase(string(family)), len(projects))

		sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
		for _, p := range projects {
			marker := "⚠️"
			if p.DNAStatus == models.DNAValid {
				marker = "✅"
			}
			fmt.Fprintf(&b, "- %s **%s** (%s)\n", marker, p.Name, p.Stack)
			fmt.Fprintf(&b, "  - Path: `%s`\n", p.Path)
			fmt.Fprintf(&b, "  - DNA: %s\n", p.DNAStatus)
			fmt.Fprintf(&b, "  - Files: %d code, %d tests\n", p.Metrics.CodeFiles, p.Metrics.TestFiles)
			if len(p.HarvestCandidates) > 0 {
				fmt.Fprintf(&b, "  - Harvestable: %d components\n", len(p.HarvestCandidates))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if top := inv.TopHarvestCandidates(); len(top) > 0 {
		b.WriteString("## Top Harvest Candidates\n\n")
		if len(top) > topCandidatesInReport {
			top = top[:topCandidatesInReport]
		}
		for i, c := range top {
			fmt.Fprintf(&b, "%d. **%s** (Score: %.2f)\n", i+1, c.FilePath, c.HarvestScore)
			fmt.Fprintf(&b, "   - Tags: %s\n", strings.Join(c.Tags, ", "))
			deps := c.Dependencies
			if len(deps) > 3 {
				deps = deps[:3]
			}
			fmt.Fprintf(&b, "   - Dependencies: %s\n\n", strings.Join(deps, ", "))
		}
	}

	if retrofits := inv.RetrofitCandidates(); len(retrofits) > 0 {
		b.WriteString("## Retrofit Candidates\n\n")
		if len(retrofits) > topRetrofitsInReport {
			retrofits = retrofits[:topRetrofitsInReport]
		}
		for _, rc := range retrofits {
			fmt.Fprintf(&b, "- **%s** (Priority: %.2f)\n", rc.Project.Name, rc.Priority)
			fmt.Fprintf(&b, "  ```bash\n  %s\n  ```\n\n", RetrofitCommand(rc.Project.Name))
		}
	}

	return b.String()
}

// WriteMap renders the inventory and writes it to outputPath, creating
// parent directories as needed.
func (s *Scanner) WriteMap(inv *models.EcosystemInventory, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create map directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, outputPath, []byte(GenerateMap(inv)), 0o644); err != nil {
		return fmt.Errorf("write ecosystem map %s: %w", outputPath, err)
	}
	s.log.Info("ecosystem map generated", "path", outputPath)
	return nil
}
