// Package analyze inspects single files and produces a language-aware
// signal bundle: inferred dependency references, structural tags, and a
// quality estimate. It is a pure function of file bytes and filename and
// is shared between the ecosystem scanner and the harvest engine.
package analyze

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
)

// Signals is the analysis result for one file. Scores degrade to zero for
// unrecognized or malformed content; analysis never fails for content
// reasons.
type Signals struct {
	Dependencies []string
	Tags         []string
	QualityScore float64
	LinesOfCode  int
}

var (
	pyImportRe = regexp.MustCompile(`(?m)^(?:import|from)\s+(\w+)`)
	pyDefRe    = regexp.MustCompile(`def\s+\w+`)
	pyClassRe  = regexp.MustCompile(`class\s+\w+`)
	pyTodoRe   = regexp.MustCompile(`(?i)#\s*(TODO|FIXME|NOTE)`)
	jsImportRe = regexp.MustCompile(`(?:import|require)\s+["']([^"']+)["']`)
	jsFuncRe   = regexp.MustCompile(`function\s+\w+`)
)

// chromeManifest is the subset of a chrome extension manifest we read.
type chromeManifest struct {
	ManifestVersion int      `json:"manifest_version"`
	Permissions     []string `json:"permissions"`
}

// Decode converts raw file bytes to text under the lossy-decode contract:
// invalid UTF-8 sequences are replaced rather than failing, so binary or
// mixed-encoding content still yields a usable (if degraded) string.
func Decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}

// CountLines counts lines the way text editors do: content with no
// trailing newline still counts its last line.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// PythonStructure counts function definitions, class definitions, and
// top-level import statements in python source.
func PythonStructure(content string) (functions, classes, imports int) {
	return len(pyDefRe.FindAllString(content, -1)),
		len(pyClassRe.FindAllString(content, -1)),
		len(pyImportRe.FindAllString(content, -1))
}

// File analyzes a single file's content. The filename selects the
// language rules; everything else is derived from the bytes.
func File(name string, data []byte) Signals {
	content := Decode(data)
	sig := Signals{LinesOfCode: CountLines(content)}

	base := filepath.Base(name)
	switch {
	case strings.HasSuffix(base, ".py"):
		analyzePython(content, &sig)
	case strings.HasSuffix(base, ".js"):
		analyzeJavaScript(content, &sig)
	case base == "manifest.json":
		analyzeChromeManifest(content, &sig)
	}
	return sig
}

func analyzePython(content string, sig *Signals) {
	for _, m := range pyImportRe.FindAllStringSubmatch(content, -1) {
		sig.Dependencies = appendUnique(sig.Dependencies, m[1])
	}
	if pyTodoRe.MatchString(content) {
		sig.Tags = append(sig.Tags, "has_todos")
	}
	hasFuncs := pyDefRe.MatchString(content)
	hasClasses := pyClassRe.MatchString(content)
	if hasFuncs {
		sig.Tags = append(sig.Tags, "has_functions")
	}
	if hasClasses {
		sig.Tags = append(sig.Tags, "has_classes")
	}

	score := 0.0
	if len(sig.Dependencies) > 0 {
		score += 0.2
	}
	if sig.LinesOfCode > 10 {
		score += 0.3
	}
	if hasFuncs {
		score += 0.3
	}
	if hasClasses {
		score += 0.2
	}
	sig.QualityScore = clamp01(score)
}

func analyzeJavaScript(content string, sig *Signals) {
	for _, m := range jsImportRe.FindAllStringSubmatch(content, -1) {
		sig.Dependencies = appendUnique(sig.Dependencies, m[1])
	}
	hasFuncs := jsFuncRe.MatchString(content)
	if hasFuncs {
		sig.Tags = append(sig.Tags, "has_functions")
	}

	score := 0.0
	if len(sig.Dependencies) > 0 {
		score += 0.3
	}
	if sig.LinesOfCode > 10 {
		score += 0.4
	}
	if hasFuncs {
		score += 0.3
	}
	sig.QualityScore = clamp01(score)
}

func analyzeChromeManifest(content string, sig *Signals) {
	sig.Tags = append(sig.Tags, "chrome_manifest")
	var m chromeManifest
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		// Unparseable manifest keeps the tag but scores nothing.
		return
	}
	if m.ManifestVersion == 3 {
		sig.Tags = append(sig.Tags, "manifest_v3")
	}
	sig.Dependencies = append(sig.Dependencies, m.Permissions...)
	sig.QualityScore = 0.8
}

func appendUnique(list []string, item string) []string {
	for _, v := range list {
		if v == item {
			return list
		}
	}
	return append(list, item)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
