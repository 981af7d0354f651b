package scout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/models"
)

var configIndicatorFiles = map[string]bool{
	"config.py": true, "settings.py": true, ".env.example": true, "config.json": true,
}

var ciIndicatorEntries = map[string]bool{
	".github": true, ".gitlab-ci.yml": true, ".travis.yml": true, "Jenkinsfile": true,
}

// assessQuality derives the coarse per-project quality flags. Tests,
// docs, and config indicators are looked for anywhere in the tree; git
// and CI markers only at the project root.
func (s *Scanner) assessQuality(projectDir string) models.QualityIndicators {
	var q models.QualityIndicators

	_ = afero.Walk(s.fs, projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.Contains(strings.ToLower(base), "test") {
			q.HasTests = true
		}
		switch filepath.Ext(base) {
		case ".md", ".rst":
			q.HasDocs = true
		}
		if configIndicatorFiles[base] {
			q.HasConfig = true
		}
		return nil
	})

	if ok, err := afero.DirExists(s.fs, filepath.Join(projectDir, ".git")); err == nil && ok {
		q.HasGit = true
	}

	entries, err := afero.ReadDir(s.fs, projectDir)
	if err == nil {
		for _, e := range entries {
			if ciIndicatorEntries[e.Name()] {
				q.HasCI = true
				break
			}
		}
	}
	return q
}
