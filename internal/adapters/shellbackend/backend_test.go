package shellbackend_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativ/internal/adapters/shellbackend"
	"go.trai.ch/nativ/internal/core/domain"
	"go.trai.ch/nativ/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestBackend_Link_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("line1").Times(1)
	mockLogger.EXPECT().Info("line2").Times(1)

	b := shellbackend.NewBackend(mockLogger)

	unit := domain.NewBuildUnit("linux64Make", domain.UnitMakeStep, "")
	unit.Command = []string{"sh", "-c", "echo line1; echo line2"}

	err := b.Link(context.Background(), unit, nil, io.Discard)
	require.NoError(t, err)
}

func TestBackend_Link_StreamsOutputToWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	b := shellbackend.NewBackend(mockLogger)

	unit := domain.NewBuildUnit("linux64Make", domain.UnitMakeStep, "")
	unit.Command = []string{"sh", "-c", "echo compiled; echo warned >&2"}

	var out bytes.Buffer
	require.NoError(t, b.Link(context.Background(), unit, nil, &out))

	assert.Contains(t, out.String(), "compiled")
	assert.Contains(t, out.String(), "warned")
}

func TestBackend_Link_CreatesOutputDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	b := shellbackend.NewBackend(mockLogger)

	outputPath := filepath.Join(t.TempDir(), "build", "os", "linux64", "libfoo.so")
	unit := domain.NewBuildUnit("libfoo", domain.UnitSharedLibrary, "linux64")
	unit.OutputPath = outputPath
	unit.Command = []string{"sh", "-c", "touch \"$OUT\""}
	unit.Environment = map[string]string{"OUT": outputPath}

	err := b.Link(context.Background(), unit, nil, io.Discard)
	require.NoError(t, err)

	_, err = os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestBackend_Link_UnitEnvironmentWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	// The unit's own environment overrides the extra environment.
	mockLogger.EXPECT().Info("from-unit").Times(1)

	b := shellbackend.NewBackend(mockLogger)

	unit := domain.NewBuildUnit("linux64Make", domain.UnitMakeStep, "")
	unit.Command = []string{"sh", "-c", "echo $MARKER"}
	unit.Environment = map[string]string{"MARKER": "from-unit"}

	err := b.Link(context.Background(), unit, []string{"MARKER=from-extra"}, io.Discard)
	require.NoError(t, err)
}

func TestBackend_Link_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	b := shellbackend.NewBackend(mockLogger)

	unit := domain.NewBuildUnit("linux64Make", domain.UnitMakeStep, "")
	unit.Command = []string{"sh", "-c", "exit 3"}

	err := b.Link(context.Background(), unit, nil, io.Discard)
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	meta := zErr.Metadata()
	assert.Equal(t, 3, meta["exit_code"])
	assert.Equal(t, "linux64Make", meta["unit"])
}

func TestBackend_Link_NoCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := shellbackend.NewBackend(mocks.NewMockLogger(ctrl))

	// A unit with no command is a pure placeholder and succeeds trivially.
	unit := domain.NewBuildUnit("placeholder", domain.UnitMakeStep, "")
	require.NoError(t, b.Link(context.Background(), unit, nil, io.Discard))
}
