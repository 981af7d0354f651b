// Package scout implements the ecosystem scanner: it discovers project
// directories under an ecosystem root, classifies each, computes metrics
// and harvest candidates, and assembles the aggregate inventory.
package scout

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/internal/classify"
	"github.com/gleaner-dev/gleaner/internal/dna"
	"github.com/gleaner-dev/gleaner/internal/gitmeta"
	"github.com/gleaner-dev/gleaner/models"
)

// signatureFiles qualify a directory as a project when present at its
// top level, even without version control.
var signatureFiles = []string{
	"manifest.json",
	"pyproject.toml",
	"requirements.txt",
	"package.json",
	dna.DescriptorFile,
	"setup.py",
}

// Scanner analyzes an ecosystem root. Every scan is independent; the
// scanner holds no mutable state between calls.
type Scanner struct {
	fs         afero.Fs
	root       string
	log        *slog.Logger
	classifier *classify.Classifier
	dna        *dna.Validator

	// commits queries the VCS for a project's commit count; swapped out
	// in tests. Failures degrade to zero commits.
	commits func(projectDir string) (int, error)
	// gitTimeout bounds each commit-count subprocess.
	gitTimeout time.Duration
	// now is stubbed in tests exercising activity boundaries.
	now func() time.Time
}

// NewScanner creates a scanner for the given ecosystem root.
func NewScanner(fs afero.Fs, root string, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Scanner{
		fs:         fs,
		root:       root,
		log:        log,
		classifier: classify.New(fs),
		dna:        dna.NewValidator(fs),
		gitTimeout: gitmeta.DefaultTimeout,
		now:        func() time.Time { return time.Now().UTC() },
	}
	s.commits = func(projectDir string) (int, error) {
		client := gitmeta.NewClient(projectDir)
		client.SetTimeout(s.gitTimeout)
		return client.CommitCount()
	}
	return s
}

// SetGitTimeout overrides the timeout applied to each git invocation
// during a scan. Non-positive values keep the default.
func (s *Scanner) SetGitTimeout(d time.Duration) {
	if d > 0 {
		s.gitTimeout = d
	}
}

// Scan performs a complete ecosystem scan. Individual project failures
// are logged and that project dropped; the scan itself only fails when
// the root is entirely inaccessible.
func (s *Scanner) Scan() (*models.EcosystemInventory, error) {
	s.log.Info("starting ecosystem scan", "root", s.root)

	projectDirs, err := s.DiscoverProjects()
	if err != nil {
		return nil, err
	}
	s.log.Info("discovered project directories", "count", len(projectDirs))

	var projects []models.ProjectInventory
	for _, dir := range projectDirs {
		project, err := s.analyzeProject(dir)
		if err != nil {
			s.log.Error("project analysis failed", "project", dir, "error", err)
			continue
		}
		projects = append(projects, project)
		s.log.Info("analyzed project", "name", project.Name, "stack", project.Stack, "dna", project.DNAStatus)
	}

	inventory := models.NewEcosystemInventory(projects)
	s.log.Info("ecosystem scan complete", "projects", len(projects))
	return inventory, nil
}

// DiscoverProjects enumerates immediate subdirectories of the root that
// look like projects: hidden directories are skipped, and a directory
// qualifies when it has a .git directory or any signature file at its
// top level. Partial read failures degrade to a partial list.
func (s *Scanner) DiscoverProjects() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("read ecosystem root %s: %w", s.root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		if s.isProject(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

func (s *Scanner) isProject(dir string) bool {
	if ok, err := afero.DirExists(s.fs, filepath.Join(dir, ".git")); err == nil && ok {
		return true
	}
	for _, sig := range signatureFiles {
		if ok, err := afero.Exists(s.fs, filepath.Join(dir, sig)); err == nil && ok {
			return true
		}
	}
	return false
}

// analyzeProject builds the full inventory record for one project.
func (s *Scanner) analyzeProject(projectDir string) (models.ProjectInventory, error) {
	if ok, err := afero.DirExists(s.fs, projectDir); err != nil || !ok {
		return models.ProjectInventory{}, fmt.Errorf("project directory %s unavailable: %w", projectDir, err)
	}

	name := filepath.Base(projectDir)
	stack := s.classifier.Stack(projectDir)

	return models.ProjectInventory{
		Name:              name,
		Path:              projectDir,
		Stack:             stack,
		Family:            s.classifier.Family(projectDir, name),
		DNAStatus:         s.dna.Status(projectDir),
		Metrics:           s.collectMetrics(projectDir),
		HarvestCandidates: s.findHarvestCandidates(projectDir),
		Dependencies:      s.detectDependencies(projectDir, stack),
		QualityIndicators: s.assessQuality(projectDir),
	}, nil
}
