package config

// File represents the structure of the nativ.yaml configuration file.
type File struct {
	Version    string             `yaml:"version"`
	Project    string             `yaml:"project"`
	Repository RepositoryDTO      `yaml:"repository"`
	Toolchain  ToolchainDTO       `yaml:"toolchain"`
	Platforms  map[string]PlatDTO `yaml:"platforms"`
	Units      map[string]UnitDTO `yaml:"units"`
}

// RepositoryDTO locates the external artifact repository.
type RepositoryDTO struct {
	Root string `yaml:"root"`
	Path string `yaml:"path"`
}

// ToolchainDTO lists candidate toolchain install directories per host OS.
type ToolchainDTO struct {
	Paths map[string][]string `yaml:"paths"`
}

// PlatDTO declares an additional target platform beyond the stock set.
type PlatDTO struct {
	Arch string `yaml:"arch"`
	OS   string `yaml:"os"`
}

// UnitDTO declares one build unit.
type UnitDTO struct {
	Kind        string            `yaml:"kind"`
	Platform    string            `yaml:"platform"`
	Output      string            `yaml:"output"`
	Cmd         []string          `yaml:"cmd"`
	Environment map[string]string `yaml:"environment"`
}
