package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func project(name string, stack ProjectStack, family ProjectFamily, status DNAStatus) ProjectInventory {
	return ProjectInventory{
		Name:      name,
		Path:      "/eco/" + name,
		Stack:     stack,
		Family:    family,
		DNAStatus: status,
	}
}

func TestDistributions(t *testing.T) {
	inv := NewEcosystemInventory([]ProjectInventory{
		project("a", StackPython, FamilyTrading, DNAValid),
		project("b", StackPython, FamilyUtilities, DNAMissing),
		project("c", StackJavaScript, FamilyTrading, DNAInvalid),
	})

	if got := inv.StackDistribution()[StackPython]; got != 2 {
		t.Errorf("StackDistribution[python] = %d, want 2", got)
	}
	if got := inv.FamilyDistribution()[FamilyTrading]; got != 2 {
		t.Errorf("FamilyDistribution[trading] = %d, want 2", got)
	}
	dna := inv.DNAStatusDistribution()
	for status, want := range map[DNAStatus]int{DNAValid: 1, DNAMissing: 1, DNAInvalid: 1} {
		if dna[status] != want {
			t.Errorf("DNAStatusDistribution[%s] = %d, want %d", status, dna[status], want)
		}
	}
}

func TestTopHarvestCandidatesSorted(t *testing.T) {
	pa := project("a", StackPython, FamilyUnknown, DNAValid)
	pa.HarvestCandidates = []HarvestCandidate{
		{FilePath: "low.py", HarvestScore: 0.55},
		{FilePath: "high.py", HarvestScore: 0.9},
	}
	pb := project("b", StackPython, FamilyUnknown, DNAValid)
	pb.HarvestCandidates = []HarvestCandidate{
		{FilePath: "mid.py", HarvestScore: 0.7},
	}

	inv := NewEcosystemInventory([]ProjectInventory{pa, pb})
	top := inv.TopHarvestCandidates()
	if len(top) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].HarvestScore > top[i-1].HarvestScore {
			t.Errorf("candidates not sorted descending at index %d", i)
		}
	}
	if top[0].FilePath != "high.py" || top[0].Project != "a" {
		t.Errorf("top candidate = %s/%s, want a/high.py", top[0].Project, top[0].FilePath)
	}
}

func TestRetrofitCandidatesExcludeValid(t *testing.T) {
	inv := NewEcosystemInventory([]ProjectInventory{
		project("valid", StackPython, FamilyUnknown, DNAValid),
		project("missing", StackPython, FamilyUnknown, DNAMissing),
		project("invalid", StackPython, FamilyUnknown, DNAInvalid),
	})
	got := inv.RetrofitCandidates()
	if len(got) != 2 {
		t.Fatalf("expected 2 retrofit candidates, got %d", len(got))
	}
	for _, rc := range got {
		if rc.Project.DNAStatus == DNAValid {
			t.Errorf("project %s with valid descriptor ranked for retrofit", rc.Project.Name)
		}
	}
}

func TestRetrofitPriorityOrdering(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	recent := project("recent", StackPython, FamilyUnknown, DNAMissing)
	recent.Metrics.LastModified = now.AddDate(0, 0, -10)
	recent.Metrics.ComplexityScore = 0.5

	stale := project("stale", StackPython, FamilyUnknown, DNAMissing)
	stale.Metrics.LastModified = now.AddDate(-2, 0, 0)
	stale.Metrics.ComplexityScore = 0.5

	if recent.RetrofitPriority(now) <= stale.RetrofitPriority(now) {
		t.Error("more recently active project should rank higher")
	}

	big := project("big", StackPython, FamilyUnknown, DNAMissing)
	big.Metrics.LastModified = now.AddDate(0, 0, -10)
	big.Metrics.ComplexityScore = 0.9
	if big.RetrofitPriority(now) <= recent.RetrofitPriority(now) {
		t.Error("larger project with equal recency should rank higher")
	}

	// Priority stays within [0,1] even for long-dead projects.
	if p := stale.RetrofitPriority(now); p < 0 || p > 1 {
		t.Errorf("priority %f out of range", p)
	}
}

func TestComponentManifest_ValidateStruct(t *testing.T) {
	valid := ComponentManifest{
		ID:          uuid.New().String(),
		Name:        "api_client",
		Category:    "clients",
		SourcePath:  "/src/api_client.py",
		Files:       []string{"api_client.py"},
		HarvestedAt: time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(m *ComponentManifest)
		wantErr bool
	}{
		{name: "valid manifest", mutate: func(m *ComponentManifest) {}, wantErr: false},
		{name: "empty name", mutate: func(m *ComponentManifest) { m.Name = "" }, wantErr: true},
		{name: "unknown category", mutate: func(m *ComponentManifest) { m.Category = "rust" }, wantErr: true},
		{name: "quality above one", mutate: func(m *ComponentManifest) { m.QualityScore = 1.2 }, wantErr: true},
		{name: "bad id", mutate: func(m *ComponentManifest) { m.ID = "not-a-uuid" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := ValidateStruct(m)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
