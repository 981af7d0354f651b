// Package dna validates project descriptor files. A descriptor
// (gleaner.yaml at the project root) declares the project's identity and
// is the contract the retrofit tooling upgrades projects toward; the
// scanner only cares whether it parses and passes schema validation.
package dna

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/gleaner-dev/gleaner/models"
)

// DescriptorFile is the well-known descriptor filename at a project root.
const DescriptorFile = "gleaner.yaml"

// Descriptor is the project descriptor schema.
type Descriptor struct {
	Name        string `yaml:"name" validate:"required,min=1"`
	Version     string `yaml:"version" validate:"required,semver"`
	Description string `yaml:"description"`
	Stack       string `yaml:"stack" validate:"omitempty,oneof=python javascript typescript chrome_extension"`
	Family      string `yaml:"family" validate:"omitempty,oneof=trading extensions automation data_analytics web_tools utilities"`
}

// Validator checks descriptor files against the schema.
type Validator struct {
	fs       afero.Fs
	validate *validator.Validate
}

// NewValidator creates a descriptor validator over the given filesystem.
func NewValidator(fs afero.Fs) *Validator {
	return &Validator{
		fs:       fs,
		validate: validator.New(),
	}
}

// Load parses and validates the descriptor at path.
func (v *Validator) Load(path string) (*Descriptor, error) {
	data, err := afero.ReadFile(v.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", path, err)
	}
	if err := v.validate.Struct(&d); err != nil {
		return nil, fmt.Errorf("invalid descriptor %s: %w", path, err)
	}
	return &d, nil
}

// Status maps the descriptor at the given project root to a DNA status:
// missing when no descriptor file exists, invalid when it fails to parse
// or validate, valid otherwise. It never returns an error; the scanner
// treats the status as an advisory signal.
func (v *Validator) Status(projectDir string) models.DNAStatus {
	path := filepath.Join(projectDir, DescriptorFile)
	exists, err := afero.Exists(v.fs, path)
	if err != nil || !exists {
		return models.DNAMissing
	}
	if _, err := v.Load(path); err != nil {
		return models.DNAInvalid
	}
	return models.DNAValid
}
