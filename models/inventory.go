package models

import (
	"sort"
	"time"
)

// ProjectStack represents the detected technology stack of a project.
// Declaration order matters: stack detection breaks ties in favor of the
// earliest declared stack.
type ProjectStack string

const (
	StackPython          ProjectStack = "python"
	StackJavaScript      ProjectStack = "javascript"
	StackTypeScript      ProjectStack = "typescript"
	StackChromeExtension ProjectStack = "chrome_extension"
	StackUnknown         ProjectStack = "unknown"
)

// AllStacks lists every stack in declaration (tie-break) order.
var AllStacks = []ProjectStack{
	StackPython,
	StackJavaScript,
	StackTypeScript,
	StackChromeExtension,
	StackUnknown,
}

// ProjectFamily represents the functional family of a project.
type ProjectFamily string

const (
	FamilyTrading       ProjectFamily = "trading"
	FamilyExtensions    ProjectFamily = "extensions"
	FamilyAutomation    ProjectFamily = "automation"
	FamilyDataAnalytics ProjectFamily = "data_analytics"
	FamilyWebTools      ProjectFamily = "web_tools"
	FamilyUtilities     ProjectFamily = "utilities"
	FamilyUnknown       ProjectFamily = "unknown"
)

// AllFamilies lists every family in priority order.
var AllFamilies = []ProjectFamily{
	FamilyTrading,
	FamilyExtensions,
	FamilyAutomation,
	FamilyDataAnalytics,
	FamilyWebTools,
	FamilyUtilities,
	FamilyUnknown,
}

// DNAStatus represents the descriptor validation status of a project.
type DNAStatus string

const (
	DNAMissing DNAStatus = "missing"
	DNAInvalid DNAStatus = "invalid"
	DNAValid   DNAStatus = "valid"
)

// AllDNAStatuses lists every descriptor status.
var AllDNAStatuses = []DNAStatus{DNAMissing, DNAInvalid, DNAValid}

// ProjectMetrics holds file counts and derived activity signals for one project.
type ProjectMetrics struct {
	TotalFiles         int `json:"totalFiles"`
	CodeFiles          int `json:"codeFiles"`
	TestFiles          int `json:"testFiles"`
	ConfigFiles        int `json:"configFiles"`
	DocumentationFiles int `json:"documentationFiles"`
	// LinesOfCode counts lines in code files only.
	LinesOfCode int `json:"linesOfCode"`
	// ComplexityScore is min(LinesOfCode/10000, 1).
	ComplexityScore float64   `json:"complexityScore" validate:"min=0,max=1"`
	LastModified    time.Time `json:"lastModified"`
	GitCommits      int       `json:"gitCommits"`
	// ActiveDevelopment is true when the project was modified within the
	// last 90 days and has more than 5 commits.
	ActiveDevelopment bool `json:"activeDevelopment"`
}

// HarvestCandidate is a file judged worth extracting into the registry.
type HarvestCandidate struct {
	// FilePath is relative to the project root.
	FilePath        string  `json:"filePath" validate:"required"`
	FileType        string  `json:"fileType"`
	ComplexityScore float64 `json:"complexityScore" validate:"min=0,max=1"`
	UtilityScore    float64 `json:"utilityScore" validate:"min=0,max=1"`
	UniquenessScore float64 `json:"uniquenessScore" validate:"min=0,max=1"`
	// HarvestScore is the arithmetic mean of the three sub-scores.
	HarvestScore float64  `json:"harvestScore" validate:"min=0,max=1"`
	Tags         []string `json:"tags,omitempty"`
	// Dependencies holds up to five inferred dependency names.
	Dependencies []string `json:"dependencies,omitempty" validate:"max=5"`
}

// QualityIndicators are coarse per-project quality flags.
type QualityIndicators struct {
	HasTests  bool `json:"has_tests"`
	HasDocs   bool `json:"has_docs"`
	HasConfig bool `json:"has_config"`
	HasGit    bool `json:"has_git"`
	HasCI     bool `json:"has_ci"`
}

// ProjectInventory is the full analysis result for one discovered project.
// It is constructed once per scan and not mutated afterwards.
type ProjectInventory struct {
	Name              string             `json:"name" validate:"required"`
	Path              string             `json:"path" validate:"required"`
	Stack             ProjectStack       `json:"stack" validate:"required,oneof=python javascript typescript chrome_extension unknown"`
	Family            ProjectFamily      `json:"family" validate:"required,oneof=trading extensions automation data_analytics web_tools utilities unknown"`
	DNAStatus         DNAStatus          `json:"dnaStatus" validate:"required,oneof=missing invalid valid"`
	Metrics           ProjectMetrics     `json:"metrics"`
	HarvestCandidates []HarvestCandidate `json:"harvestCandidates,omitempty" validate:"max=10,dive"`
	// Dependencies maps dependency name to its version-spec string.
	Dependencies      map[string]string `json:"dependencies,omitempty"`
	QualityIndicators QualityIndicators `json:"qualityIndicators"`
}

// RetrofitPriority ranks a project for descriptor retrofit. It increases
// with recent activity and with code volume: 0.6*recency + 0.4*complexity,
// where recency decays linearly to zero over a year of inactivity.
func (p *ProjectInventory) RetrofitPriority(asOf time.Time) float64 {
	days := asOf.Sub(p.Metrics.LastModified).Hours() / 24
	recency := 1 - days/365
	if recency < 0 {
		recency = 0
	}
	return 0.6*recency + 0.4*p.Metrics.ComplexityScore
}

// RankedCandidate is a harvest candidate with its owning project attached,
// used for ecosystem-wide ranking.
type RankedCandidate struct {
	Project string `json:"project"`
	HarvestCandidate
}

// RetrofitCandidate is a project lacking a valid descriptor, with its
// computed retrofit priority.
type RetrofitCandidate struct {
	Project  ProjectInventory `json:"project"`
	Priority float64          `json:"priority"`
}

// EcosystemInventory is the aggregate result of a full ecosystem scan.
type EcosystemInventory struct {
	ScanDate      time.Time          `json:"scanDate"`
	TotalProjects int                `json:"totalProjects"`
	Projects      []ProjectInventory `json:"projects"`
}

// NewEcosystemInventory builds an inventory over the given projects,
// stamping it with the current UTC time.
func NewEcosystemInventory(projects []ProjectInventory) *EcosystemInventory {
	return &EcosystemInventory{
		ScanDate:      time.Now().UTC(),
		TotalProjects: len(projects),
		Projects:      projects,
	}
}

// StackDistribution counts projects per detected stack.
func (e *EcosystemInventory) StackDistribution() map[ProjectStack]int {
	dist := make(map[ProjectStack]int)
	for _, p := range e.Projects {
		dist[p.Stack]++
	}
	return dist
}

// FamilyDistribution counts projects per functional family.
func (e *EcosystemInventory) FamilyDistribution() map[ProjectFamily]int {
	dist := make(map[ProjectFamily]int)
	for _, p := range e.Projects {
		dist[p.Family]++
	}
	return dist
}

// DNAStatusDistribution counts projects per descriptor status.
func (e *EcosystemInventory) DNAStatusDistribution() map[DNAStatus]int {
	dist := make(map[DNAStatus]int)
	for _, p := range e.Projects {
		dist[p.DNAStatus]++
	}
	return dist
}

// TopHarvestCandidates flattens every project's candidate list and sorts
// it by descending harvest score. The sort is stable, so within equal
// scores discovery order is preserved.
func (e *EcosystemInventory) TopHarvestCandidates() []RankedCandidate {
	var all []RankedCandidate
	for _, p := range e.Projects {
		for _, c := range p.HarvestCandidates {
			all = append(all, RankedCandidate{Project: p.Name, HarvestCandidate: c})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].HarvestScore > all[j].HarvestScore
	})
	return all
}

// RetrofitCandidates returns projects without a valid descriptor, ranked
// by descending retrofit priority relative to the scan date.
func (e *EcosystemInventory) RetrofitCandidates() []RetrofitCandidate {
	var out []RetrofitCandidate
	for _, p := range e.Projects {
		if p.DNAStatus == DNAValid {
			continue
		}
		out = append(out, RetrofitCandidate{Project: p, Priority: p.RetrofitPriority(e.ScanDate)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
