package scout

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// StubFileName is the bridge script filename written into each project.
const StubFileName = "commit.py"

// bridgeStub routes a project's commit command to the shared toolkit.
// The body is fixed; projects that already carry the file are skipped.
const bridgeStub = `try:
    from linktools.cli.commit import main
except ImportError:
    print("linktools not found. Run: pip install linktools")
    raise SystemExit(1)

if __name__ == "__main__":
    main()
`

// InjectStubs writes the bridge stub into every discovered project that
// does not already have one. In dry-run mode nothing is written; the
// result map still reports what would happen. The returned map holds
// true for injected (or would-inject) projects and false for projects
// skipped because the stub exists or because the write failed. One
// project's failure never stops the batch.
func (s *Scanner) InjectStubs(dryRun bool) (map[string]bool, error) {
	s.log.Info("starting bridge stub injection", "dryRun", dryRun)

	projectDirs, err := s.DiscoverProjects()
	if err != nil {
		return nil, err
	}

	results := make(map[string]bool, len(projectDirs))
	for _, dir := range projectDirs {
		name := filepath.Base(dir)
		stubPath := filepath.Join(dir, StubFileName)

		exists, err := afero.Exists(s.fs, stubPath)
		if err != nil {
			s.log.Error("stub probe failed", "project", name, "error", err)
			results[name] = false
			continue
		}
		if exists {
			s.log.Info("stub already present", "project", name)
			results[name] = false
			continue
		}

		if dryRun {
			s.log.Info("would inject bridge stub", "project", name)
			results[name] = true
			continue
		}

		if err := afero.WriteFile(s.fs, stubPath, []byte(bridgeStub), 0o644); err != nil {
			s.log.Error("stub injection failed", "project", name, "error", err)
			results[name] = false
			continue
		}
		s.log.Info("injected bridge stub", "project", name)
		results[name] = true
	}

	injected := 0
	for _, ok := range results {
		if ok {
			injected++
		}
	}
	s.log.Info("bridge stub injection complete", "injected", injected, "projects", len(projectDirs))
	return results, nil
}
