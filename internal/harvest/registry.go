package harvest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/gleaner-dev/gleaner/models"
	"github.com/gleaner-dev/gleaner/types"
)

// Store reads component manifests back out of a registry. It never
// mutates the registry; writes go through Engine.
type Store struct {
	fs           afero.Fs
	registryPath string
	log          *slog.Logger
}

// NewStore creates a read-only view over the registry root.
func NewStore(fs afero.Fs, registryPath string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{fs: fs, registryPath: registryPath, log: log}
}

// List groups every readable manifest by category. A missing registry
// is an empty listing, not an error. Unparseable manifests are logged
// and skipped so one corrupt component cannot hide the rest.
func (s *Store) List() (map[string][]models.ComponentManifest, error) {
	components := make(map[string][]models.ComponentManifest)

	if ok, err := afero.DirExists(s.fs, s.registryPath); err != nil || !ok {
		return components, nil
	}

	categories, err := afero.ReadDir(s.fs, s.registryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read registry %s: %v", types.ErrIO, s.registryPath, err)
	}

	for _, categoryEntry := range categories {
		if !categoryEntry.IsDir() {
			continue
		}
		category := categoryEntry.Name()
		components[category] = []models.ComponentManifest{}

		categoryDir := filepath.Join(s.registryPath, category)
		entries, err := afero.ReadDir(s.fs, categoryDir)
		if err != nil {
			s.log.Warn("unreadable category directory", "category", category, "error", err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			manifest, err := s.readManifest(filepath.Join(categoryDir, entry.Name()))
			if err != nil {
				s.log.Warn("skipping component with bad manifest", "category", category, "component", entry.Name(), "error", err)
				continue
			}
			components[category] = append(components[category], manifest)
		}
	}
	return components, nil
}

// Get loads one component's manifest by its registry key.
func (s *Store) Get(category, name string) (models.ComponentManifest, error) {
	componentDir := filepath.Join(s.registryPath, category, name)
	if ok, err := afero.Exists(s.fs, filepath.Join(componentDir, ManifestFileName)); err != nil || !ok {
		return models.ComponentManifest{}, fmt.Errorf("%w: component %s/%s", types.ErrNotFound, category, name)
	}
	return s.readManifest(componentDir)
}

// Search returns every component whose name, description, or tags
// contain the query, case-insensitively. Results carry their category
// in the manifest itself.
func (s *Store) Search(query string) ([]models.ComponentManifest, error) {
	components, err := s.List()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []models.ComponentManifest
	for _, category := range sortedKeys(components) {
		for _, m := range components[category] {
			if manifestMatches(m, q) {
				results = append(results, m)
			}
		}
	}
	return results, nil
}

func manifestMatches(m models.ComponentManifest, q string) bool {
	if strings.Contains(strings.ToLower(m.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Description), q) {
		return true
	}
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *Store) readManifest(componentDir string) (models.ComponentManifest, error) {
	path := filepath.Join(componentDir, ManifestFileName)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return models.ComponentManifest{}, fmt.Errorf("%w: read %s: %v", types.ErrIO, path, err)
	}
	var m models.ComponentManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return models.ComponentManifest{}, fmt.Errorf("%w: parse %s: %v", types.ErrValidation, path, err)
	}
	return m, nil
}

func sortedKeys(m map[string][]models.ComponentManifest) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
