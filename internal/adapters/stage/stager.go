// Package stage implements the staging copy of finished build outputs into
// the external artifact repository.
package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// excludedExtensions are link-time-only artifacts that must not be staged:
// import libraries and linker export files.
var excludedExtensions = map[string]bool{
	".lib": true,
	".exp": true,
}

// manifestName is the checksum manifest written beside the staged files.
const manifestName = "manifest.json"

// copyConcurrency bounds the number of files copied in parallel.
const copyConcurrency = 4

var _ ports.Stager = (*Stager)(nil)

// Stager copies finished build outputs for a platform from the project's
// build directory into the external artifact repository.
type Stager struct {
	projectRoot string
	repo        domain.RepositorySpec
	logger      ports.Logger
}

// NewStager creates a new Stager.
func NewStager(projectRoot string, repo domain.RepositorySpec, logger ports.Logger) *Stager {
	return &Stager{
		projectRoot: projectRoot,
		repo:        repo,
		logger:      logger,
	}
}

// Stage copies every regular file from <projectRoot>/build/os/<platform> into
// <repoRoot>/<projectRelPath>/os/<platform>, excluding import-library and
// export-definition files, and writes a checksum manifest beside them.
//
// A missing or unreadable source directory is an error: staging must never
// succeed with zero files copied.
func (s *Stager) Stage(ctx context.Context, platform string) error {
	srcDir := domain.OutputDir(s.projectRoot, platform)
	destDir := domain.RepoDir(s.repo.Root, s.repo.Path, platform)

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		wrapped := zerr.Wrap(domain.ErrStagingSourceMissing, err.Error())
		wrapped = zerr.With(wrapped, "platform", platform)
		return zerr.With(wrapped, "source_dir", srcDir)
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staging directory"), "dest_dir", destDir)
	}

	var (
		mu        sync.Mutex
		checksums = make(map[string]string)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if excludedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := copyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name))
			if err != nil {
				return err
			}
			mu.Lock()
			checksums[name] = sum
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return zerr.With(zerr.Wrap(err, "staging copy failed"), "platform", platform)
	}

	if err := writeManifest(filepath.Join(destDir, manifestName), checksums); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("staged %d artifacts for %s into %s", len(checksums), platform, destDir))
	return nil
}

// copyFile copies src to dest, preserving the file mode, and returns the
// xxhash64 checksum of the copied content.
func copyFile(src, dest string) (string, error) {
	in, err := os.Open(src) //nolint:gosec // path derives from the build output directory
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", src)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // dest derives from the repository layout
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create staged file"), "path", dest)
	}

	hasher := xxhash.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), in); err != nil {
		_ = out.Close()
		return "", zerr.With(zerr.Wrap(err, "failed to copy staged file"), "path", dest)
	}

	if err := out.Close(); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to close staged file"), "path", dest)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// manifestEntry is one staged file with its content checksum.
type manifestEntry struct {
	Name   string `json:"name"`
	XXHash string `json:"xxhash64"`
}

func writeManifest(path string, checksums map[string]string) error {
	entries := make([]manifestEntry, 0, len(checksums))
	for name, sum := range checksums {
		entries = append(entries, manifestEntry{Name: name, XXHash: sum})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal staging manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // manifest holds no sensitive data
		return zerr.With(zerr.Wrap(err, "failed to write staging manifest"), "path", path)
	}
	return nil
}
