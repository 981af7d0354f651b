// Package harvest extracts reusable components from projects into a
// shared registry and reads them back out. A component is a verbatim
// copy of a source file or directory plus a component.json manifest.
package harvest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/internal/analyze"
	"github.com/gleaner-dev/gleaner/models"
	"github.com/gleaner-dev/gleaner/types"
)

// ManifestFileName is written into every component directory.
const ManifestFileName = "component.json"

// Engine harvests components into a registry rooted at registryPath.
// The registry layout is <registry>/<category>/<name>/.
type Engine struct {
	fs           afero.Fs
	registryPath string
	log          *slog.Logger

	// workDir is recorded in manifests as the harvest origin.
	workDir string
	now     func() time.Time
}

// NewEngine creates a harvest engine over the given registry root.
func NewEngine(fs afero.Fs, registryPath string, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return &Engine{
		fs:           fs,
		registryPath: registryPath,
		log:          log,
		workDir:      wd,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Harvest copies one component into the registry and writes its
// manifest. The outcome is a plain boolean; the underlying error is
// logged but never escapes, so one bad component cannot abort a bulk
// run driving this method.
func (e *Engine) Harvest(sourcePath, name, categoryHint, description string, overwrite bool) bool {
	if err := e.harvest(sourcePath, name, categoryHint, description, overwrite); err != nil {
		e.log.Error("harvest failed", "component", name, "source", sourcePath, "error", err)
		return false
	}
	return true
}

func (e *Engine) harvest(sourcePath, name, categoryHint, description string, overwrite bool) error {
	info, err := e.fs.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: source path %s", types.ErrNotFound, sourcePath)
	}

	category := resolveCategory(sourcePath, categoryHint)
	componentDir := filepath.Join(e.registryPath, category, name)

	if exists, err := afero.DirExists(e.fs, componentDir); err == nil && exists && !overwrite {
		return fmt.Errorf("%w: component %s/%s already exists", types.ErrConflict, category, name)
	}

	manifest, err := e.buildManifest(sourcePath, info.IsDir(), name, category, description)
	if err != nil {
		return err
	}

	if err := e.copyComponent(sourcePath, info.IsDir(), componentDir); err != nil {
		return fmt.Errorf("%w: copy %s: %v", types.ErrIO, sourcePath, err)
	}

	if err := e.writeManifest(componentDir, manifest); err != nil {
		return err
	}

	e.log.Info("harvested component", "component", name, "category", category)
	return nil
}

// resolveCategory honors a recognized category hint and otherwise
// infers the category from the source path.
func resolveCategory(sourcePath, hint string) string {
	if models.IsComponentCategory(hint) {
		return hint
	}
	base := filepath.Base(sourcePath)
	switch {
	case strings.HasSuffix(base, ".py"):
		if base == "config.py" || base == "settings.py" {
			return "config"
		}
		return "python"
	case strings.HasSuffix(base, ".js"):
		return "chrome"
	case base == "manifest.json":
		return "chrome"
	default:
		return "shared"
	}
}

// buildManifest runs file analysis over the source. Single files get a
// full analysis; for directories only the dependency and tag sets of
// the contained files are merged, with no quality or line aggregation.
func (e *Engine) buildManifest(sourcePath string, isDir bool, name, category, description string) (models.ComponentManifest, error) {
	m := models.ComponentManifest{
		ID:            uuid.NewString(),
		Name:          name,
		Category:      category,
		SourcePath:    sourcePath,
		Description:   description,
		HarvestedAt:   e.now(),
		HarvestedFrom: e.workDir,
	}
	if m.Description == "" {
		m.Description = fmt.Sprintf("Harvested from %s", filepath.Base(sourcePath))
	}

	if !isDir {
		base := filepath.Base(sourcePath)
		m.Files = []string{base}
		data, err := afero.ReadFile(e.fs, sourcePath)
		if err != nil {
			return m, fmt.Errorf("%w: read %s: %v", types.ErrIO, sourcePath, err)
		}
		signals := analyze.File(base, data)
		m.Dependencies = signals.Dependencies
		m.Tags = signals.Tags
		m.QualityScore = signals.QualityScore
		m.LinesOfCode = signals.LinesOfCode
		return m, nil
	}

	seenDeps := make(map[string]bool)
	seenTags := make(map[string]bool)
	err := afero.Walk(e.fs, sourcePath, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(sourcePath, path)
		if relErr != nil {
			rel = filepath.Base(path)
		}
		m.Files = append(m.Files, rel)

		data, readErr := afero.ReadFile(e.fs, path)
		if readErr != nil {
			e.log.Warn("skipping unreadable component file", "path", path, "error", readErr)
			return nil
		}
		signals := analyze.File(filepath.Base(path), data)
		for _, dep := range signals.Dependencies {
			if !seenDeps[dep] {
				seenDeps[dep] = true
				m.Dependencies = append(m.Dependencies, dep)
			}
		}
		for _, tag := range signals.Tags {
			if !seenTags[tag] {
				seenTags[tag] = true
				m.Tags = append(m.Tags, tag)
			}
		}
		return nil
	})
	if err != nil {
		return m, fmt.Errorf("%w: walk %s: %v", types.ErrIO, sourcePath, err)
	}
	return m, nil
}

// copyComponent performs the verbatim copy into the component directory.
// Directory copies merge into a pre-existing target, overwriting
// individual files rather than failing on collisions.
func (e *Engine) copyComponent(sourcePath string, isDir bool, componentDir string) error {
	if err := e.fs.MkdirAll(componentDir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(componentDir, filepath.Base(sourcePath))
	if !isDir {
		return e.copyFile(sourcePath, dest)
	}
	return afero.Walk(e.fs, sourcePath, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return err
		}
		rel, relErr := filepath.Rel(sourcePath, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dest, rel)
		if info.IsDir() {
			return e.fs.MkdirAll(target, 0o755)
		}
		return e.copyFile(path, target)
	})
}

func (e *Engine) copyFile(src, dst string) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := e.fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (e *Engine) writeManifest(componentDir string, m models.ComponentManifest) error {
	if err := models.ValidateStruct(m); err != nil {
		return fmt.Errorf("%w: manifest for %s: %v", types.ErrValidation, m.Name, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode manifest for %s: %v", types.ErrValidation, m.Name, err)
	}
	path := filepath.Join(componentDir, ManifestFileName)
	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", types.ErrIO, path, err)
	}
	return nil
}

// DefaultHarvestRules maps a registry category to the glob patterns
// bulk harvesting expands within a project. Patterns match anywhere in
// the tree.
func DefaultHarvestRules() map[string][]string {
	return map[string][]string{
		"utils":    {"utils/**/*.py", "helpers/**/*.py", "lib/**/*.py"},
		"clients":  {"*client*.py", "*api*.py"},
		"scrapers": {"*scrape*.py", "*crawl*.py", "*spider*.py"},
		"config":   {"config*.py", "settings*.py", "*.yaml", "*.yml"},
		"chrome":   {"manifest.json", "background.js", "content.js"},
	}
}

// HarvestProject bulk-harvests every file in the project matching the
// given rules, naming each component <category>_<stem>. A nil rules map
// selects DefaultHarvestRules. The returned map records the per-component
// outcome; failures are already logged by Harvest.
func (e *Engine) HarvestProject(projectPath string, rules map[string][]string, overwrite bool) (map[string]bool, error) {
	if ok, err := afero.DirExists(e.fs, projectPath); err != nil || !ok {
		return nil, fmt.Errorf("%w: project directory %s", types.ErrNotFound, projectPath)
	}
	if rules == nil {
		rules = DefaultHarvestRules()
	}

	categories := make([]string, 0, len(rules))
	for category := range rules {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	results := make(map[string]bool)
	for _, category := range categories {
		patterns := rules[category]
		for _, pattern := range patterns {
			matches, err := e.matchPattern(projectPath, pattern)
			if err != nil {
				e.log.Warn("pattern expansion failed", "pattern", pattern, "error", err)
				continue
			}
			for _, match := range matches {
				stem := strings.TrimSuffix(filepath.Base(match), filepath.Ext(match))
				name := fmt.Sprintf("%s_%s", category, stem)
				results[name] = e.Harvest(match, name, category, "", overwrite)
			}
		}
	}

	harvested := 0
	for _, ok := range results {
		if ok {
			harvested++
		}
	}
	e.log.Info("project harvest complete", "project", projectPath, "harvested", harvested, "total", len(results))
	return results, nil
}

// matchPattern returns project files whose path relative to projectDir
// matches the pattern at any depth.
func (e *Engine) matchPattern(projectDir, pattern string) ([]string, error) {
	var matches []string
	err := afero.Walk(e.fs, projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(projectDir, path)
		if relErr != nil {
			return nil
		}
		ok, matchErr := doublestar.Match("**/"+pattern, filepath.ToSlash(rel))
		if matchErr != nil {
			return matchErr
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
