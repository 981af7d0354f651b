// Package classify determines a project's technology stack and functional
// family from filename patterns and name keywords. The rule tables are
// plain data with explicit priority order, since both detections use
// first-match semantics.
package classify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/models"
)

// stackPattern matches either a file extension (leading dot) or an exact
// base filename.
type stackPattern string

func (p stackPattern) matches(base string) bool {
	if strings.HasPrefix(string(p), ".") {
		return strings.HasSuffix(base, string(p))
	}
	return base == string(p)
}

// stackPatterns maps each stack to its filename signatures. Counting is
// cumulative over the whole tree; the stack with the most matches wins.
var stackPatterns = map[models.ProjectStack][]stackPattern{
	models.StackPython:          {".py", "requirements.txt", "pyproject.toml", "setup.py"},
	models.StackJavaScript:      {".js", "package.json", ".jsx"},
	models.StackTypeScript:      {".ts", ".tsx", "tsconfig.json"},
	models.StackChromeExtension: {"manifest.json", "background.js", "content.js"},
}

// familyRule is a keyword group evaluated against the lowercased project
// name. Order in familyRules is the match priority.
type familyRule struct {
	family   models.ProjectFamily
	keywords []string
}

var familyRules = []familyRule{
	{models.FamilyTrading, []string{"arbiter", "trading", "market"}},
	{models.FamilyExtensions, []string{"extension", "chrome"}},
	{models.FamilyAutomation, []string{"automation", "scraper", "bot"}},
	{models.FamilyDataAnalytics, []string{"data", "analytics", "report"}},
	{models.FamilyWebTools, []string{"web", "site", "page"}},
	{models.FamilyUtilities, []string{"util", "helper", "tool"}},
}

// Classifier detects stack and family for project directories.
type Classifier struct {
	fs afero.Fs
}

// New creates a classifier over the given filesystem.
func New(fs afero.Fs) *Classifier {
	return &Classifier{fs: fs}
}

// Stack walks the project tree once, tallying filename matches per stack.
// The stack with the highest total wins; ties go to the earliest declared
// stack. All-zero totals yield unknown. Walk errors are treated as
// missing signals, never surfaced.
func (c *Classifier) Stack(projectDir string) models.ProjectStack {
	scores := make(map[models.ProjectStack]int)

	_ = afero.Walk(c.fs, projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		for stack, patterns := range stackPatterns {
			for _, p := range patterns {
				if p.matches(base) {
					scores[stack]++
				}
			}
		}
		return nil
	})

	best := models.StackUnknown
	bestScore := 0
	for _, stack := range models.AllStacks {
		if scores[stack] > bestScore {
			best = stack
			bestScore = scores[stack]
		}
	}
	return best
}

// Family picks the first keyword group matching the lowercased project
// name. Without a name match it falls back to a single content signal: a
// chrome extension manifest at the project root.
func (c *Classifier) Family(projectDir, name string) models.ProjectFamily {
	nameLower := strings.ToLower(name)
	for _, rule := range familyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(nameLower, kw) {
				return rule.family
			}
		}
	}

	if ok, err := afero.Exists(c.fs, filepath.Join(projectDir, "manifest.json")); err == nil && ok {
		return models.FamilyExtensions
	}
	return models.FamilyUnknown
}
