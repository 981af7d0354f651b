package harvest

import (
	"testing"
	"time"

	"github.com/spf13/afero"
)

const clientSource = `import requests

def fetch(url):
    return requests.get(url)

def post(url, payload):
    return requests.post(url, json=payload)

class Client:
    def ping(self):
        return fetch("/ping")
`

func newTestEngine(t *testing.T) (*Engine, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	e := NewEngine(fs, "/registry", nil)
	e.workDir = "/work"
	e.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return e, fs
}

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHarvestSingleFile(t *testing.T) {
	e, fs := newTestEngine(t)
	write(t, fs, "/src/api_client.py", clientSource)

	if !e.Harvest("/src/api_client.py", "exchange-client", "clients", "Exchange REST client", false) {
		t.Fatal("Harvest() = false, want success")
	}

	// Verbatim copy lands under <registry>/<category>/<name>/.
	copied, err := afero.ReadFile(fs, "/registry/clients/exchange-client/api_client.py")
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(copied) != clientSource {
		t.Error("copied content differs from source")
	}

	store := NewStore(fs, "/registry", nil)
	m, err := store.Get("clients", "exchange-client")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.Name != "exchange-client" || m.Category != "clients" {
		t.Errorf("manifest key = %s/%s", m.Category, m.Name)
	}
	if m.Description != "Exchange REST client" {
		t.Errorf("Description = %q", m.Description)
	}
	if len(m.Files) != 1 || m.Files[0] != "api_client.py" {
		t.Errorf("Files = %v", m.Files)
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0] != "requests" {
		t.Errorf("Dependencies = %v", m.Dependencies)
	}
	if m.QualityScore != 1.0 {
		t.Errorf("QualityScore = %.2f, want 1.0 for imports+size+functions+classes", m.QualityScore)
	}
	if m.LinesOfCode == 0 {
		t.Error("LinesOfCode should be set for single-file harvests")
	}
	if m.ID == "" {
		t.Error("manifest should carry a generated id")
	}
	if m.HarvestedFrom != "/work" {
		t.Errorf("HarvestedFrom = %q", m.HarvestedFrom)
	}
}

func TestHarvestMissingSource(t *testing.T) {
	e, _ := newTestEngine(t)
	if e.Harvest("/src/nope.py", "ghost", "python", "", false) {
		t.Error("Harvest() of a missing source should fail")
	}
}

func TestHarvestConflict(t *testing.T) {
	e, fs := newTestEngine(t)
	write(t, fs, "/src/helpers.py", "def one():\n    pass\n")
	write(t, fs, "/src/helpers_v2.py", "def two():\n    pass\n")

	if !e.Harvest("/src/helpers.py", "helpers", "utils", "", false) {
		t.Fatal("first harvest should succeed")
	}
	if e.Harvest("/src/helpers_v2.py", "helpers", "utils", "", false) {
		t.Error("second harvest without overwrite should fail")
	}
	if !e.Harvest("/src/helpers_v2.py", "helpers", "utils", "", true) {
		t.Error("overwrite harvest should succeed")
	}
	if ok, _ := afero.Exists(fs, "/registry/utils/helpers/helpers_v2.py"); !ok {
		t.Error("overwrite should place the new source file")
	}
}

func TestHarvestDirectoryMergesMetadata(t *testing.T) {
	e, fs := newTestEngine(t)
	write(t, fs, "/src/ext/manifest.json", `{"manifest_version": 3, "permissions": ["tabs"]}`)
	write(t, fs, "/src/ext/background.js", "import 'polyfill'\nfunction boot() {}\n")
	write(t, fs, "/src/ext/icons/icon.png", "\x89PNG")

	if !e.Harvest("/src/ext", "tab-tools", "chrome", "", false) {
		t.Fatal("directory harvest should succeed")
	}

	store := NewStore(fs, "/registry", nil)
	m, err := store.Get("chrome", "tab-tools")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Files) != 3 {
		t.Errorf("Files = %v, want all three files", m.Files)
	}
	hasDep := func(want string) bool {
		for _, d := range m.Dependencies {
			if d == want {
				return true
			}
		}
		return false
	}
	if !hasDep("tabs") || !hasDep("polyfill") {
		t.Errorf("Dependencies = %v, want union of file deps", m.Dependencies)
	}
	if m.QualityScore != 0 || m.LinesOfCode != 0 {
		t.Errorf("directory harvest must not aggregate quality (%v) or lines (%d)",
			m.QualityScore, m.LinesOfCode)
	}
	// Tree structure survives the copy.
	if ok, _ := afero.Exists(fs, "/registry/chrome/tab-tools/ext/icons/icon.png"); !ok {
		t.Error("nested file missing after directory copy")
	}
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		source string
		hint   string
		want   string
	}{
		{"/p/anything.py", "clients", "clients"},
		{"/p/anything.py", "component", "python"},
		{"/p/widget.js", "", "chrome"},
		{"/p/manifest.json", "", "chrome"},
		{"/p/config.py", "", "config"},
		{"/p/settings.py", "", "config"},
		{"/p/data.csv", "", "shared"},
	}
	for _, tt := range tests {
		if got := resolveCategory(tt.source, tt.hint); got != tt.want {
			t.Errorf("resolveCategory(%s, %q) = %s, want %s", tt.source, tt.hint, got, tt.want)
		}
	}
}

func TestHarvestProject(t *testing.T) {
	e, fs := newTestEngine(t)
	write(t, fs, "/proj/utils/text.py", "def slug(s):\n    return s\n")
	write(t, fs, "/proj/exchange_client.py", clientSource)
	write(t, fs, "/proj/settings.py", "DEBUG = True\n")
	write(t, fs, "/proj/readme.md", "# proj\n")

	results, err := e.HarvestProject("/proj", nil, false)
	if err != nil {
		t.Fatalf("HarvestProject() error = %v", err)
	}

	for _, name := range []string{"utils_text", "clients_exchange_client", "config_settings"} {
		if !results[name] {
			t.Errorf("results[%s] = false, want harvested (results: %v)", name, results)
		}
	}
	if _, ok := results["shared_readme"]; ok {
		t.Error("readme.md matches no rule and must not be harvested")
	}

	store := NewStore(fs, "/registry", nil)
	if _, err := store.Get("utils", "utils_text"); err != nil {
		t.Errorf("utils_text not in registry: %v", err)
	}
}

func TestHarvestProjectCustomRuleCategory(t *testing.T) {
	e, fs := newTestEngine(t)
	write(t, fs, "/proj/report_helper.py", "def render(rows):\n    return rows\n")

	rules := map[string][]string{
		"tools": {"*_helper.py"},
	}
	results, err := e.HarvestProject("/proj", rules, false)
	if err != nil {
		t.Fatalf("HarvestProject() error = %v", err)
	}
	if !results["tools_report_helper"] {
		t.Errorf("results[tools_report_helper] = false, want harvested (results: %v)", results)
	}

	// An unrecognized rule category falls back to inference for storage.
	store := NewStore(fs, "/registry", nil)
	if _, err := store.Get("python", "tools_report_helper"); err != nil {
		t.Errorf("tools_report_helper not stored under python: %v", err)
	}
}

func TestHarvestProjectMissingDirectory(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.HarvestProject("/nowhere", nil, false); err == nil {
		t.Error("HarvestProject() on a missing directory should fail")
	}
}
