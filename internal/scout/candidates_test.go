package scout

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// clientAPISource builds a 40-line Python client with one function and
// one import, padded with comments so the file carries enough body to
// earn uniqueness credit.
func clientAPISource() string {
	var b strings.Builder
	b.WriteString("import requests\n")
	b.WriteString("\n")
	b.WriteString("def fetch_orders(session):\n")
	for i := 0; i < 37; i++ {
		b.WriteString("    # retry loop with exponential backoff and jitter tuning\n")
	}
	return b.String()
}

func TestFindHarvestCandidates(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/client_api.py", clientAPISource())
	writeFile(t, fs, "/eco/p/index.js", strings.Repeat("console.log('boot');\n", 5))

	candidates := s.findHarvestCandidates("/eco/p")
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want only client_api.py", len(candidates))
	}

	c := candidates[0]
	if c.FilePath != "client_api.py" {
		t.Errorf("FilePath = %s, want client_api.py", c.FilePath)
	}
	if c.UtilityScore < 0.8 {
		t.Errorf("UtilityScore = %.2f, want >= 0.8 for an api client name", c.UtilityScore)
	}
	if c.HarvestScore <= harvestThreshold {
		t.Errorf("HarvestScore = %.3f, want above %.1f", c.HarvestScore, harvestThreshold)
	}

	mean := (c.ComplexityScore + c.UtilityScore + c.UniquenessScore) / 3
	if math.Abs(c.HarvestScore-mean) > 1e-9 {
		t.Errorf("HarvestScore = %.4f, want mean of axes %.4f", c.HarvestScore, mean)
	}

	hasTag := false
	for _, tag := range c.Tags {
		if tag == "api_client" {
			hasTag = true
		}
	}
	if !hasTag {
		t.Errorf("Tags = %v, want api_client", c.Tags)
	}
	if len(c.Dependencies) == 0 || c.Dependencies[0] != "requests" {
		t.Errorf("Dependencies = %v, want requests", c.Dependencies)
	}
}

func TestFindHarvestCandidatesCap(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	src := clientAPISource()
	for i := 0; i < 12; i++ {
		writeFile(t, fs, fmt.Sprintf("/eco/p/api_client_%02d.py", i), src)
	}

	candidates := s.findHarvestCandidates("/eco/p")
	if len(candidates) != maxCandidatesPerProject {
		t.Fatalf("candidates = %d, want capped at %d", len(candidates), maxCandidatesPerProject)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].HarvestScore > candidates[i-1].HarvestScore {
			t.Errorf("candidates out of order at %d: %.3f > %.3f",
				i, candidates[i].HarvestScore, candidates[i-1].HarvestScore)
		}
	}
}

func TestFindHarvestCandidatesSortsByScore(t *testing.T) {
	s, fs := newTestScanner(t, "/eco")
	writeFile(t, fs, "/eco/p/order_client.py", clientAPISource())
	// Richer structure scores higher on complexity.
	rich := clientAPISource() + "\nclass OrderClient:\n    pass\n\ndef close_all(pool):\n    pass\n"
	writeFile(t, fs, "/eco/p/billing_client.py", rich)

	candidates := s.findHarvestCandidates("/eco/p")
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	if candidates[0].FilePath != "billing_client.py" {
		t.Errorf("top candidate = %s, want billing_client.py", candidates[0].FilePath)
	}
}

func TestUtilityScore(t *testing.T) {
	tests := []struct {
		base string
		want float64
	}{
		{"client_api.py", 0.8},
		{"price_scraper.py", 0.8},
		{"settings.py", 0.8},
		{"string_utils.py", 0.8},
		{"event_processor.py", 0.8},
		{"toolbox.js", 0.6},
		{"report.py", 0.3},
	}
	for _, tt := range tests {
		if got := utilityScore(tt.base); got != tt.want {
			t.Errorf("utilityScore(%s) = %.1f, want %.1f", tt.base, got, tt.want)
		}
	}
}

func TestUniquenessScore(t *testing.T) {
	tests := []struct {
		name string
		base string
		size int64
		want float64
	}{
		{"size proxy", "orders.py", 2500, 0.25},
		{"capped at one", "orders.py", 50000, 1.0},
		{"generic name penalty", "index.js", 6000, 0.3},
		{"penalty floors at zero", "utils.py", 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniquenessScore(tt.base, tt.size)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("uniquenessScore(%s, %d) = %.3f, want %.3f", tt.base, tt.size, got, tt.want)
			}
		})
	}
}

func TestIsHighValueFile(t *testing.T) {
	tests := []struct {
		base string
		size int64
		want bool
	}{
		{"anything.py", 10, true},
		{"widget.js", 10, true},
		{"manifest.json", 10, true},
		{"app.config.yaml", 10, true},
		{"notes.txt", 10, false},
		{"big_dataset.csv", 5000, true},
	}
	for _, tt := range tests {
		if got := isHighValueFile(tt.base, tt.size); got != tt.want {
			t.Errorf("isHighValueFile(%s, %d) = %v, want %v", tt.base, tt.size, got, tt.want)
		}
	}
}
