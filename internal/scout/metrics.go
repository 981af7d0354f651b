package scout

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/internal/analyze"
	"github.com/gleaner-dev/gleaner/models"
)

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
}

var configBaseNames = map[string]bool{
	"config": true, "settings": true, "manifest": true, "package": true,
}

var docExtensions = map[string]bool{
	".md": true, ".rst": true, ".txt": true,
}

// activeWindowDays and activeCommitFloor define "actively developed":
// modified within the window AND more commits than the floor.
const (
	activeWindowDays  = 90
	activeCommitFloor = 5
)

// collectMetrics walks the project tree once and tallies file categories.
// Each file lands in at most one category; the rules run in a fixed order
// and the first match wins. Files matching no rule still count toward the
// total. Read failures on individual files are ignored.
func (s *Scanner) collectMetrics(projectDir string) models.ProjectMetrics {
	var m models.ProjectMetrics
	var latest time.Time

	_ = afero.Walk(s.fs, projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		m.TotalFiles++
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}

		base := filepath.Base(path)
		ext := filepath.Ext(base)
		switch {
		case codeExtensions[ext]:
			m.CodeFiles++
			if data, err := afero.ReadFile(s.fs, path); err == nil {
				m.LinesOfCode += analyze.CountLines(analyze.Decode(data))
			}
		case strings.Contains(strings.ToLower(base), "test"):
			m.TestFiles++
		case configBaseNames[base]:
			m.ConfigFiles++
		case docExtensions[ext]:
			m.DocumentationFiles++
		}
		return nil
	})

	if latest.IsZero() {
		latest = s.now()
	}
	m.LastModified = latest

	commits, err := s.commits(projectDir)
	if err != nil {
		s.log.Debug("commit count unavailable", "project", projectDir, "error", err)
		commits = 0
	}
	m.GitCommits = commits

	m.ComplexityScore = float64(m.LinesOfCode) / 10000
	if m.ComplexityScore > 1 {
		m.ComplexityScore = 1
	}

	daysSince := s.now().Sub(m.LastModified).Hours() / 24
	m.ActiveDevelopment = daysSince < activeWindowDays && m.GitCommits > activeCommitFloor

	return m
}
