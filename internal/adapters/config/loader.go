// Package config provides the configuration loader for nativ.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at the given path.
func (l *Loader) Load(path string) (*domain.Project, error) {
	return Load(path)
}

// Load reads a configuration file from the given path and returns the project
// description. The project root is the directory containing the file.
func Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}

	project := &domain.Project{
		Name: file.Project,
		Root: root,
		Repository: domain.RepositorySpec{
			Root: file.Repository.Root,
			Path: file.Repository.Path,
		},
		Toolchain: domain.ToolchainSpec{
			Paths: file.Toolchain.Paths,
		},
	}

	for _, name := range sortedKeys(file.Platforms) {
		dto := file.Platforms[name]
		project.Platforms = append(project.Platforms, domain.Platform{
			Name: name,
			Arch: dto.Arch,
			OS:   dto.OS,
		})
	}

	for _, name := range sortedKeys(file.Units) {
		unit, err := buildUnit(name, file.Units[name])
		if err != nil {
			return nil, err
		}
		project.Units = append(project.Units, unit)
	}

	return project, nil
}

func buildUnit(name string, dto UnitDTO) (*domain.BuildUnit, error) {
	kind := domain.UnitKind(dto.Kind)
	if !kind.Valid() {
		err := zerr.Wrap(domain.ErrUnknownUnitKind, "invalid unit declaration")
		err = zerr.With(err, "unit", name)
		return nil, zerr.With(err, "kind", dto.Kind)
	}

	unit := domain.NewBuildUnit(name, kind, dto.Platform)
	unit.Command = dto.Cmd
	unit.Environment = dto.Environment
	unit.OutputPath = dto.Output
	return unit, nil
}

// sortedKeys returns map keys in lexical order so unit and platform
// declaration order is stable across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
