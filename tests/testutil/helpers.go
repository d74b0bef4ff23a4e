// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"eol-check/internal/app"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// FixedNow is the reference date used by tests that classify fixtures.
var FixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

// NewService returns the production service writing reports to stdout
// with the clock pinned to FixedNow.
func NewService(stdout io.Writer) app.Service {
	service := app.NewService()
	service.Stdout = stdout
	service.Stderr = io.Discard
	service.Clock = func() time.Time { return FixedNow }
	return service
}

// ErrorMessage returns the errbuilder message of err, or err.Error().
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return builder.Msg
	}
	return err.Error()
}
