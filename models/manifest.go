package models

import "time"

// ComponentCategories are the categories a harvested component may be
// filed under. A category hint outside this set falls back to inference
// from the source path.
var ComponentCategories = []string{"python", "chrome", "shared", "utils", "clients", "scrapers", "config"}

// IsComponentCategory reports whether c is a recognized registry category.
func IsComponentCategory(c string) bool {
	for _, v := range ComponentCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ComponentManifest is the metadata record persisted alongside every
// harvested component. The registry key is (Category, Name).
type ComponentManifest struct {
	ID          string `json:"id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=1"`
	Category    string `json:"category" validate:"required,oneof=python chrome shared utils clients scrapers config"`
	SourcePath  string `json:"sourcePath" validate:"required"`
	Description string `json:"description,omitempty"`
	// Files are paths relative to the copied source root, which lands
	// under the component directory as <component>/<source basename>.
	Files        []string `json:"files"`
	Dependencies []string `json:"dependencies,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	QualityScore float64  `json:"qualityScore" validate:"min=0,max=1"`
	// LinesOfCode is populated for single-file harvests only; directory
	// harvests merge dependency and tag sets but do not aggregate it.
	LinesOfCode int       `json:"linesOfCode,omitempty"`
	HarvestedAt time.Time `json:"harvestedAt" validate:"required"`
	// HarvestedFrom records the working directory the harvest ran in.
	HarvestedFrom string `json:"harvestedFrom,omitempty"`
}
