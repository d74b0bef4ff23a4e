package adapters

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"eol-check/internal/types"
)

func sampleReport() types.Report {
	return types.Report{
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Source:      DefaultEOLURL,
		Targets: []types.TargetReport{
			{
				Target: types.Target{Name: "Frontend", Ecosystem: types.EcosystemNpm, Path: "frontend/package.json"},
				EOL: []types.Finding{
					{Dependency: "vue", Used: "^3.3.0", Required: "3.5.13", Status: types.FindingStatusEOL},
				},
				UpToDate: []types.Finding{
					{Dependency: "axios", Used: "1.7.0", Status: types.FindingStatusUpToDate},
				},
			},
			{
				Target: types.Target{Name: "Backend", Ecosystem: types.EcosystemMaven, Path: "backend/pom.xml"},
				Unchecked: []types.Finding{
					{Dependency: "lombok", Used: "1.18.30", Status: types.FindingStatusUnchecked, Note: "Not checked"},
				},
			},
		},
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportWriter().WriteReport(&buf, sampleReport(), types.OutputFormatTable))

	want := "=== Frontend ===\n" +
		"End-of-life dependencies:\n" +
		"Dependency                     Used Version         Required Version    \n" +
		"----------------------------------------------------------------------\n" +
		"vue                            ^3.3.0               3.5.13              \n" +
		"\n" +
		"Up-to-date dependencies:\n" +
		"Dependency                     Used Version        \n" +
		"--------------------------------------------------\n" +
		"axios                          1.7.0               \n" +
		"\n" +
		"Unchecked dependencies:\n" +
		"None\n" +
		"\n" +
		"=== Backend ===\n" +
		"End-of-life dependencies:\n" +
		"None\n" +
		"\n" +
		"Up-to-date dependencies:\n" +
		"None\n" +
		"\n" +
		"Unchecked dependencies:\n" +
		"Dependency                     Used Version        \n" +
		"--------------------------------------------------\n" +
		"lombok                         1.18.30             \n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReportTableWaivedSection(t *testing.T) {
	report := types.Report{Targets: []types.TargetReport{{
		Target: types.Target{Name: "Python"},
		Waived: []types.Finding{{Dependency: "django", Used: "3.2", Status: types.FindingStatusWaived}},
	}}}
	var buf bytes.Buffer
	require.NoError(t, NewReportWriter().WriteReport(&buf, report, types.OutputFormatTable))
	assert.Contains(t, buf.String(), "\nWaived dependencies:\n")
	assert.Contains(t, buf.String(), "django")
}

func TestWriteReportTableColor(t *testing.T) {
	enabled := true
	writer := ReportWriter{Color: &enabled}
	var buf bytes.Buffer
	require.NoError(t, writer.WriteReport(&buf, sampleReport(), types.OutputFormatTable))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriteReportStructuredFormats(t *testing.T) {
	var jsonBuf bytes.Buffer
	require.NoError(t, NewReportWriter().WriteReport(&jsonBuf, sampleReport(), types.OutputFormatJSON))
	var decoded types.Report
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	require.Len(t, decoded.Targets, 2)
	assert.Equal(t, "3.5.13", decoded.Targets[0].EOL[0].Required)
	assert.Equal(t, 1, decoded.EOLCount())

	var yamlBuf bytes.Buffer
	require.NoError(t, NewReportWriter().WriteReport(&yamlBuf, sampleReport(), types.OutputFormatYAML))
	var generic map[string]interface{}
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &generic))
	assert.Equal(t, DefaultEOLURL, generic["source"])
}

func TestWriteReportRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewReportWriter().WriteReport(&buf, sampleReport(), types.OutputFormat("xml"))
	require.Error(t, err)
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "eol.json")
	require.NoError(t, NewReportWriter().WriteReportFile(path, sampleReport(), types.OutputFormatJSON))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"dependency": "vue"`)

	require.Error(t, NewReportWriter().WriteReportFile(" ", sampleReport(), types.OutputFormatJSON))
}
