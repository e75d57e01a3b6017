package domain

import "go.trai.ch/zerr"

var (
	// ErrPlatformNotFound is returned when a platform name is not present in the registry.
	ErrPlatformNotFound = zerr.New("platform not found")

	// ErrPlatformAlreadyExists is returned when registering a platform name twice.
	ErrPlatformAlreadyExists = zerr.New("platform already exists")

	// ErrRegistryFrozen is returned when registering a platform after the registry is frozen.
	ErrRegistryFrozen = zerr.New("platform registry is frozen")

	// ErrNodeAlreadyExists is returned when attempting to add a node with a name that already exists.
	ErrNodeAlreadyExists = zerr.New("node already exists")

	// ErrNodeNotFound is returned when a requested node is not present in the graph.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrMissingDependency is returned when a node references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the build graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrGraphFrozen is returned when mutating the graph after finalization.
	ErrGraphFrozen = zerr.New("build graph is frozen")

	// ErrUnknownUnitKind is returned for a build unit kind outside the known set.
	ErrUnknownUnitKind = zerr.New("unknown build unit kind")

	// ErrToolchainMissing is returned when the required native toolchain is not
	// installed on the host. The error metadata names the expected install
	// locations and the configuration key to correct.
	ErrToolchainMissing = zerr.New("native toolchain not found")

	// ErrStagingSourceMissing is returned when staging is requested for a
	// platform whose build output directory does not exist.
	ErrStagingSourceMissing = zerr.New("staging source directory missing")

	// ErrHostPlatformUnsupported is returned when the host OS/architecture maps
	// to no known platform name.
	ErrHostPlatformUnsupported = zerr.New("host platform not supported")

	// ErrBuildExecutionFailed indicates one or more build units failed.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
