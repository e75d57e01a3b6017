package domain

// Project is the fully loaded description of a native build project: where it
// lives, which platforms it adds beyond the stock set, which units it builds
// and where finished artifacts are staged.
type Project struct {
	Name       string
	Root       string
	Repository RepositorySpec
	Toolchain  ToolchainSpec
	Platforms  []Platform
	Units      []*BuildUnit
}

// RepositorySpec locates the external artifact repository that finished
// outputs are staged into.
type RepositorySpec struct {
	// Root is the repository root directory.
	Root string
	// Path is the project's relative path inside the repository.
	Path string
}

// ToolchainSpec carries the candidate install directories of the required
// native toolchain, keyed by host operating system (runtime.GOOS values).
// A host OS with no entry needs no toolchain check.
type ToolchainSpec struct {
	Paths map[string][]string
}
