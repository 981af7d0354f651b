package scout

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/models"
)

// pyproject is the subset of pyproject.toml we read for dependency names.
// Both PEP 621 [project] lists and poetry tables are recognized.
type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]interface{} `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// packageJSON is the subset of package.json we read.
type packageJSON struct {
	Dependencies map[string]string `json:"dependencies"`
}

// detectDependencies builds the project's declared dependency map
// (name -> version spec) from whichever dependency files its stack uses.
// Parse failures leave the map partial; they are never surfaced.
func (s *Scanner) detectDependencies(projectDir string, stack models.ProjectStack) map[string]string {
	deps := make(map[string]string)

	switch stack {
	case models.StackPython:
		s.readRequirementsTxt(filepath.Join(projectDir, "requirements.txt"), deps)
		s.readPyprojectToml(filepath.Join(projectDir, "pyproject.toml"), deps)
	case models.StackJavaScript, models.StackTypeScript:
		s.readPackageJSON(filepath.Join(projectDir, "package.json"), deps)
	}
	return deps
}

func (s *Scanner) readRequirementsTxt(path string, deps map[string]string) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := line
		for _, sep := range []string{"==", ">=", "<="} {
			if idx := strings.Index(name, sep); idx >= 0 {
				name = name[:idx]
			}
		}
		deps[strings.TrimSpace(name)] = line
	}
}

func (s *Scanner) readPyprojectToml(path string, deps map[string]string) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return
	}
	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		s.log.Debug("unparseable pyproject.toml", "path", path, "error", err)
		return
	}
	for _, spec := range pp.Project.Dependencies {
		name := spec
		for _, sep := range []string{"==", ">=", "<=", ">", "<", "~=", "["} {
			if idx := strings.Index(name, sep); idx >= 0 {
				name = name[:idx]
			}
		}
		deps[strings.TrimSpace(name)] = spec
	}
	for name, constraint := range pp.Tool.Poetry.Dependencies {
		if name == "python" {
			continue
		}
		deps[name] = fmt.Sprintf("%v", constraint)
	}
}

func (s *Scanner) readPackageJSON(path string, deps map[string]string) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		s.log.Debug("unparseable package.json", "path", path, "error", err)
		return
	}
	for name, spec := range pkg.Dependencies {
		deps[name] = spec
	}
}
