package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eol-check/internal/app"
	"eol-check/internal/core"
	"eol-check/internal/types"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"check", "gate", "schedule", "workflow", "products", "validate"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestCheckCommandFlags(t *testing.T) {
	cmd := newCheckCommand()
	flags := []string{
		"eol-url", "eol-file", "cache-dir", "cache-ttl", "no-cache",
		"http-timeout", "http-retries", "http-retry-delay-ms",
		"root", "target", "dev", "waive",
		"format", "report-file", "workers",
	}
	for _, name := range flags {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
}

func TestScheduleCommandFlags(t *testing.T) {
	cmd := newScheduleCommand()
	for _, name := range []string{"at", "run-now", "max-runs", "format", "eol-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
	assert.Equal(t, core.DefaultDailyOffset, cmd.Flags().Lookup("at").DefValue)
}

func TestWorkflowCommandFlags(t *testing.T) {
	cmd := newWorkflowCommand()
	for _, name := range []string{"name", "at", "go-version", "install-path", "check-arg", "output"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, resolveStrings(nil, []string{"a", "b"}, "test_key", "test-flag"))
	assert.Nil(t, resolveStrings(nil, nil, "test_key", "test-flag"))
}

func TestResolveScalars(t *testing.T) {
	assert.True(t, resolveBool(nil, true, "test_key", "test-flag"))
	assert.False(t, resolveBool(nil, false, "test_key", "test-flag"))
	assert.Equal(t, 42, resolveInt(nil, 42, "test_key", "test-flag"))
	assert.Equal(t, 90*time.Minute, resolveDuration(nil, 90*time.Minute, "test_key", "test-flag"))
}

func TestResolveUsesChangedFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var value string
	cmd.Flags().StringVar(&value, "myflag", "default", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "explicit"))
	assert.Equal(t, "explicit", resolveString(cmd, value, "unbound_key", "myflag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")

	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

func TestParseTargetFlag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    types.Target
		wantErr bool
	}{
		{
			name: "named target",
			raw:  "Frontend=npm:frontend/package.json",
			want: types.Target{Name: "Frontend", Ecosystem: types.EcosystemNpm, Path: "frontend/package.json"},
		},
		{
			name: "name defaults to path",
			raw:  "python:requirements.txt",
			want: types.Target{Name: "requirements.txt", Ecosystem: types.EcosystemPip, Path: "requirements.txt"},
		},
		{name: "missing path", raw: "maven:", wantErr: true},
		{name: "unknown ecosystem", raw: "cargo:Cargo.toml", wantErr: true},
		{name: "no separator", raw: "pom.xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTargetFlag(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected target (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name: "already exists",
			err: errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg("dup"),
			expected: 2,
		},
		{
			name: "end-of-life found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(app.EOLFoundMessage),
			expected: 3,
		},
		{
			name: "gate failed",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(gateFailedMessage),
			expected: 1,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("file missing"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// ---------- Command execution tests ----------

func fixturesDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "fixtures"))
	require.NoError(t, err)
	return dir
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), err
}

func TestCheckCommandExitsWithEOLCode(t *testing.T) {
	dir := fixturesDir(t)
	out, err := executeRoot(t, "check",
		"--eol-file", filepath.Join(dir, "endoflife.json"),
		"--root", filepath.Join(dir, "project"),
		"--format", "json",
	)
	require.Error(t, err)
	assert.Equal(t, 3, exitCodeForError(err))

	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, filepath.Join(dir, "endoflife.json"), report.Source)
	assert.True(t, report.HasEOL())
}

func TestCheckCommandPassesWithWaiver(t *testing.T) {
	dir := fixturesDir(t)
	out, err := executeRoot(t, "check",
		"--eol-file", filepath.Join(dir, "endoflife.json"),
		"--root", filepath.Join(dir, "project"),
		"--format", "table",
		"--waive", "*",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "=== Frontend ===")
	assert.Contains(t, out, "Waived dependencies:")
}

func TestGateCommand(t *testing.T) {
	_, err := executeRoot(t, "gate", "--", "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeForError(err))

	_, err = executeRoot(t, "gate", "--", "sh", "-c", "exit 0")
	require.NoError(t, err)
}

func TestWorkflowCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check-eol.yml")
	out, err := executeRoot(t, "workflow", "--at", "03:30", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "30 3 * * *")
	assert.Contains(t, string(content), core.GateFailureMessage)
}

func TestWorkflowCommandCheckArgsFromConfig(t *testing.T) {
	t.Setenv("EOL_CHECK_WORKFLOW_CHECK_ARGS", "--dev")

	out, err := executeRoot(t, "workflow")
	require.NoError(t, err)
	assert.Contains(t, out, "eol-check check --dev")

	out, err = executeRoot(t, "workflow", "--check-arg=--format=json")
	require.NoError(t, err)
	assert.Contains(t, out, "eol-check check --format=json")
	assert.NotContains(t, out, "--dev")
}

func TestProductsCommand(t *testing.T) {
	out, err := executeRoot(t, "products", "--eol-file", filepath.Join(fixturesDir(t), "endoflife.json"), "java")
	require.NoError(t, err)
	assert.Equal(t, "java                           21, 17\n", out)
}

func TestValidateCommand(t *testing.T) {
	out, err := executeRoot(t, "validate", "--root", filepath.Join(fixturesDir(t), "project"))
	require.NoError(t, err)
	assert.Contains(t, out, "validated: Frontend (npm, 4 dependencies)")
	assert.Contains(t, out, "validated: Backend (maven, 3 dependencies)")
}
