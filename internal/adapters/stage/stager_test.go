package stage_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativ/internal/adapters/stage"
	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestStager_Stage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectRoot := t.TempDir()
	repoRoot := t.TempDir()

	srcDir := domain.OutputDir(projectRoot, "win64")
	writeFile(t, filepath.Join(srcDir, "foo.dll"), "dll content")
	writeFile(t, filepath.Join(srcDir, "foo.pdb"), "pdb content")
	// Link-time-only artifacts must not be staged.
	writeFile(t, filepath.Join(srcDir, "foo.lib"), "import library")
	writeFile(t, filepath.Join(srcDir, "foo.exp"), "export file")

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Times(1)

	s := stage.NewStager(projectRoot, domain.RepositorySpec{Root: repoRoot, Path: "client/natives"}, logger)
	require.NoError(t, s.Stage(context.Background(), "win64"))

	destDir := domain.RepoDir(repoRoot, "client/natives", "win64")

	data, err := os.ReadFile(filepath.Join(destDir, "foo.dll"))
	require.NoError(t, err)
	assert.Equal(t, "dll content", string(data))

	_, err = os.Stat(filepath.Join(destDir, "foo.pdb"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(destDir, "foo.lib"))
	assert.True(t, os.IsNotExist(err), "expected foo.lib not to be staged")
	_, err = os.Stat(filepath.Join(destDir, "foo.exp"))
	assert.True(t, os.IsNotExist(err), "expected foo.exp not to be staged")
}

func TestStager_Manifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectRoot := t.TempDir()
	repoRoot := t.TempDir()

	srcDir := domain.OutputDir(projectRoot, "linux64")
	writeFile(t, filepath.Join(srcDir, "libfoo.so"), "so content")
	writeFile(t, filepath.Join(srcDir, "libbar.so"), "other content")

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Times(1)

	s := stage.NewStager(projectRoot, domain.RepositorySpec{Root: repoRoot, Path: "client/natives"}, logger)
	require.NoError(t, s.Stage(context.Background(), "linux64"))

	data, err := os.ReadFile(filepath.Join(domain.RepoDir(repoRoot, "client/natives", "linux64"), "manifest.json"))
	require.NoError(t, err)

	var entries []struct {
		Name   string `json:"name"`
		XXHash string `json:"xxhash64"`
	}
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)

	// Entries are sorted by file name.
	assert.Equal(t, "libbar.so", entries[0].Name)
	assert.Equal(t, "libfoo.so", entries[1].Name)
	for _, e := range entries {
		assert.Len(t, e.XXHash, 16)
	}
}

func TestStager_MissingSourceDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	projectRoot := t.TempDir()
	repoRoot := t.TempDir()

	s := stage.NewStager(projectRoot, domain.RepositorySpec{Root: repoRoot, Path: "client/natives"}, mocks.NewMockLogger(ctrl))

	// No build output exists for the platform; staging must fail rather than
	// succeed with zero files.
	err := s.Stage(context.Background(), "mac64")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStagingSourceMissing)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "mac64", zErr.Metadata()["platform"])
}
