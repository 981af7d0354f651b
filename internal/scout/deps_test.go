package scout

import (
	"testing"

	"github.com/gleaner-dev/gleaner/models"
)

func TestDetectDependenciesPython(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/requirements.txt",
		"# pinned runtime deps\nrequests==2.31.0\n\npandas>=2.0\nnumpy\n")

	deps := s.detectDependencies("/eco/p", models.StackPython)
	want := map[string]string{
		"requests": "requests==2.31.0",
		"pandas":   "pandas>=2.0",
		"numpy":    "numpy",
	}
	for name, spec := range want {
		if deps[name] != spec {
			t.Errorf("deps[%s] = %q, want %q", name, deps[name], spec)
		}
	}
	if len(deps) != len(want) {
		t.Errorf("deps = %v, want %v", deps, want)
	}
}

func TestDetectDependenciesPyproject(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/pyproject.toml", `
[project]
dependencies = ["httpx>=0.27", "rich==13.7.0", "typer[all]>=0.12"]

[tool.poetry.dependencies]
python = "^3.11"
loguru = "^0.7"
`)

	deps := s.detectDependencies("/eco/p", models.StackPython)
	for _, name := range []string{"httpx", "rich", "typer", "loguru"} {
		if _, ok := deps[name]; !ok {
			t.Errorf("deps missing %s: %v", name, deps)
		}
	}
	if _, ok := deps["python"]; ok {
		t.Error("python interpreter constraint should be excluded")
	}
}

func TestDetectDependenciesJavaScript(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/package.json",
		`{"name": "p", "dependencies": {"axios": "^1.6.0", "lodash": "4.17.21"}}`)

	deps := s.detectDependencies("/eco/p", models.StackJavaScript)
	if deps["axios"] != "^1.6.0" || deps["lodash"] != "4.17.21" {
		t.Errorf("deps = %v", deps)
	}
}

func TestDetectDependenciesIgnoresParseFailures(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/requirements.txt", "requests==2.31.0\n")
	writeFile(t, fs, "/eco/p/pyproject.toml", "[project\nbroken")

	deps := s.detectDependencies("/eco/p", models.StackPython)
	if deps["requests"] != "requests==2.31.0" {
		t.Errorf("deps = %v, want requests kept despite broken pyproject", deps)
	}
}

func TestDetectDependenciesOtherStacks(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/manifest.json", `{"manifest_version": 3}`)

	deps := s.detectDependencies("/eco/p", models.StackChromeExtension)
	if len(deps) != 0 {
		t.Errorf("deps = %v, want empty for chrome_extension", deps)
	}
}
