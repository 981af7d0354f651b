package scout

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/internal/analyze"
	"github.com/gleaner-dev/gleaner/models"
)

// maxCandidatesPerProject caps the per-project candidate list.
const maxCandidatesPerProject = 10

// harvestThreshold: only files scoring strictly above this are kept.
const harvestThreshold = 0.5

// highValueSizeBytes: files over this size are considered regardless of name.
const highValueSizeBytes = 1000

// maxCandidateDependencies caps the inferred dependency names carried per candidate.
const maxCandidateDependencies = 5

// highValuePatterns select files worth scoring at all.
var highValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i).*\.py$`),
	regexp.MustCompile(`(?i).*\.js$`),
	regexp.MustCompile(`(?i)manifest\.json$`),
	regexp.MustCompile(`(?i).*config\..*$`),
	regexp.MustCompile(`(?i).*client\..*$`),
	regexp.MustCompile(`(?i).*scraper\..*$`),
}

// utilityCategory is one row of the utility signature table. The category
// name doubles as the tag attached to matching candidates.
type utilityCategory struct {
	name     string
	patterns []*regexp.Regexp
}

var utilityCategories = []utilityCategory{
	{"api_client", compileAll(`api.*client`, `client.*api`, `.*api\.py$`, `.*client\.py$`)},
	{"scraper", compileAll(`scrape`, `crawl`, `spider`, `.*scraper\.py$`)},
	{"config", compileAll(`config`, `settings`, `.*config\.py$`, `.*settings\.py$`)},
	{"utils", compileAll(`.*utils?\.py$`, `.*helpers?\.py$`)},
	{"data_processing", compileAll(`process`, `transform`, `parse`, `.*processor\.py$`)},
}

// utilityKeywords is the looser fallback check when no category matches.
var utilityKeywords = []string{"util", "helper", "tool", "service", "client", "api"}

// genericNames are filenames too common to earn uniqueness credit.
var genericNames = map[string]bool{
	"index.js": true, "main.py": true, "app.py": true, "utils.py": true, "config.py": true,
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// findHarvestCandidates walks the project, scores every high-value file
// on three independent axes, and keeps the top entries whose combined
// score clears the threshold. Per-file read failures zero the complexity
// term, which drops the file below the threshold; they never abort the walk.
func (s *Scanner) findHarvestCandidates(projectDir string) []models.HarvestCandidate {
	var candidates []models.HarvestCandidate

	_ = afero.Walk(s.fs, projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if !isHighValueFile(filepath.Base(path), info.Size()) {
			return nil
		}

		complexity := s.complexityScore(path)
		utility := utilityScore(filepath.Base(path))
		uniqueness := uniquenessScore(filepath.Base(path), info.Size())
		harvestScore := (complexity + utility + uniqueness) / 3

		if harvestScore <= harvestThreshold {
			return nil
		}

		rel, relErr := filepath.Rel(projectDir, path)
		if relErr != nil {
			rel = path
		}

		deps := s.fileDependencies(path)
		candidates = append(candidates, models.HarvestCandidate{
			FilePath:        rel,
			FileType:        filepath.Ext(path),
			ComplexityScore: complexity,
			UtilityScore:    utility,
			UniquenessScore: uniqueness,
			HarvestScore:    harvestScore,
			Tags:            fileTags(filepath.Base(path)),
			Dependencies:    deps,
		})
		return nil
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].HarvestScore > candidates[j].HarvestScore
	})
	if len(candidates) > maxCandidatesPerProject {
		candidates = candidates[:maxCandidatesPerProject]
	}
	return candidates
}

func isHighValueFile(base string, size int64) bool {
	for _, re := range highValuePatterns {
		if re.MatchString(base) {
			return true
		}
	}
	return size > highValueSizeBytes
}

// complexityScore estimates structural complexity. Python files get a
// weighted sum over definitions and imports; everything else falls back
// to a line-count proxy. Unreadable files score zero.
func (s *Scanner) complexityScore(path string) float64 {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return 0
	}
	content := analyze.Decode(data)
	lines := analyze.CountLines(content)

	if strings.HasSuffix(path, ".py") {
		functions, classes, imports := analyze.PythonStructure(content)
		score := float64(functions)*0.3 + float64(classes)*0.4 + float64(imports)*0.2 + float64(lines)/1000*0.1
		if score > 1 {
			score = 1
		}
		return score
	}

	score := float64(lines) / 500
	if score > 1 {
		score = 1
	}
	return score
}

// utilityScore rates how reusable a file looks from its name alone.
func utilityScore(base string) float64 {
	lower := strings.ToLower(base)
	for _, cat := range utilityCategories {
		for _, re := range cat.patterns {
			if re.MatchString(lower) {
				return 0.8
			}
		}
	}
	for _, kw := range utilityKeywords {
		if strings.Contains(lower, kw) {
			return 0.6
		}
	}
	return 0.3
}

// uniquenessScore uses size as a proxy and penalizes generic filenames.
func uniquenessScore(base string, size int64) float64 {
	score := float64(size) / 10000
	if score > 1 {
		score = 1
	}
	if genericNames[base] {
		score -= 0.3
	}
	if score < 0 {
		score = 0
	}
	return score
}

// fileTags returns the utility categories the filename matches.
func fileTags(base string) []string {
	var tags []string
	lower := strings.ToLower(base)
	for _, cat := range utilityCategories {
		for _, re := range cat.patterns {
			if re.MatchString(lower) {
				tags = append(tags, cat.name)
				break
			}
		}
	}
	return tags
}

// fileDependencies extracts up to maxCandidateDependencies import names.
func (s *Scanner) fileDependencies(path string) []string {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil
	}
	deps := analyze.File(path, data).Dependencies
	if len(deps) > maxCandidateDependencies {
		deps = deps[:maxCandidateDependencies]
	}
	return deps
}
