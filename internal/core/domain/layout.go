package domain

import "path/filepath"

const (
	// BuildDirName is the name of the build output directory under the project root.
	BuildDirName = "build"

	// OSDirName is the per-platform sub-directory segment ("os") used both in
	// build output and in the artifact repository.
	OSDirName = "os"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "nativ.yaml"
)

// OutputDir returns the build output directory for a platform:
// <projectRoot>/build/os/<platform>.
func OutputDir(projectRoot, platform string) string {
	return filepath.Join(projectRoot, BuildDirName, OSDirName, platform)
}

// RelocatedPath rewrites a unit's output path into the platform's output
// directory, preserving the original file name and discarding any previously
// configured directory.
func RelocatedPath(projectRoot, platform, outputPath string) string {
	return filepath.Join(OutputDir(projectRoot, platform), filepath.Base(outputPath))
}

// RepoDir returns the staging destination for a platform:
// <repoRoot>/<projectRelPath>/os/<platform>.
func RepoDir(repoRoot, projectRelPath, platform string) string {
	return filepath.Join(repoRoot, projectRelPath, OSDirName, platform)
}
