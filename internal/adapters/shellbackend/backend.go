// Package shellbackend implements the native build backend using os/exec.
//
// The orchestrator treats the compiler and linker as opaque: each build unit
// carries the command that produces its artifact, and this backend runs it.
package shellbackend

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Backend = (*Backend)(nil)

// Backend implements ports.Backend by running each unit's configured command.
type Backend struct {
	logger ports.Logger
}

// NewBackend creates a new Backend.
func NewBackend(logger ports.Logger) *Backend {
	return &Backend{
		logger: logger,
	}
}

// Link runs the unit's build command.
// The environment is merged with the following priority (low to high):
// os.Environ(), env, unit.Environment. For link-producing units the output
// directory is created first so the linker can write into it. Command output
// is streamed line by line to the logger and raw to out.
func (b *Backend) Link(ctx context.Context, unit *domain.BuildUnit, env []string, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if len(unit.Command) == 0 {
		return nil
	}

	if unit.Kind.LinkProducing() && unit.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(unit.OutputPath), 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "unit", unit.Name.String())
		}
	}

	name := unit.Command[0]
	args := unit.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Env = resolveEnvironment(os.Environ(), env, unit.Environment)
	cmd.Stdout = io.MultiWriter(&logWriter{logger: b.logger, level: "info"}, out)
	cmd.Stderr = io.MultiWriter(&logWriter{logger: b.logger, level: "error"}, out)

	if err := cmd.Run(); err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1 // Unknown or signal
		}
		err = zerr.With(zerr.Wrap(err, "link command failed"), "unit", unit.Name.String())
		return zerr.With(err, "exit_code", exitCode)
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}

// resolveEnvironment merges environment variables with the defined priority.
// PATH entries from the extra environment are prepended to the system PATH
// rather than replacing it.
func resolveEnvironment(sysEnv, extraEnv []string, unitEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for _, entry := range extraEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}

	for k, v := range unitEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
