package app

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eol-check/internal/types"
)

func TestValidateApp(t *testing.T) {
	service, _ := newTestService(t)
	result, err := service.Validate(t.Context(), ValidateRequest{Root: filepath.Join(fixturesDir(t), "project")})
	require.NoError(t, err)
	require.Len(t, result.Targets, 2)
	assert.Equal(t, 4, result.Targets[0].Dependencies)
	assert.Equal(t, 3, result.Targets[1].Dependencies)
	assert.False(t, result.Targets[0].Skipped)
}

func TestValidateSkipsMissingDefaults(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Validate(t.Context(), ValidateRequest{Root: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestValidateConfiguredTargets(t *testing.T) {
	service, _ := newTestService(t)
	root := filepath.Join(fixturesDir(t), "project")
	result, err := service.Validate(t.Context(), ValidateRequest{
		Root:    root,
		Targets: []types.Target{{Name: "Python", Ecosystem: "python", Path: filepath.Join("python", "requirements.txt")}},
	})
	require.NoError(t, err)
	require.Len(t, result.Targets, 1)
	assert.Equal(t, types.EcosystemPip, result.Targets[0].Target.Ecosystem)
	assert.Equal(t, 2, result.Targets[0].Dependencies)

	_, err = service.Validate(t.Context(), ValidateRequest{
		Root:    root,
		Targets: []types.Target{{Name: "Gone", Ecosystem: types.EcosystemApt, Path: "apt.lock"}},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	_, err = service.Validate(t.Context(), ValidateRequest{
		Root:    root,
		Waivers: []types.Waiver{{Match: "a:b:c"}},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
