package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

const (
	nameColumnWidth    = 30
	versionColumnWidth = 20
	wideRuler          = 70
	narrowRuler        = 50
)

// ReportWriter renders reports as a plain table, JSON or YAML. Colour is
// used for the table only when the destination is a terminal.
type ReportWriter struct {
	// Color forces colour on or off; nil means detect from the writer.
	Color *bool
}

func NewReportWriter() ReportWriter {
	return ReportWriter{}
}

func (w ReportWriter) WriteReport(out io.Writer, report types.Report, format types.OutputFormat) error {
	content, err := w.render(report, format, w.colorEnabled(out))
	if err != nil {
		return err
	}
	if _, err := out.Write(content); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}

func (w ReportWriter) WriteReportFile(path string, report types.Report, format types.OutputFormat) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report file path is required")
	}
	content, err := w.render(report, format, false)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report file").
			WithCause(err)
	}
	return nil
}

func (w ReportWriter) render(report types.Report, format types.OutputFormat, color bool) ([]byte, error) {
	switch format {
	case types.OutputFormatTable, "":
		return renderTable(report, aurora.NewAurora(color)), nil
	case types.OutputFormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode report").
				WithCause(err)
		}
		return append(data, '\n'), nil
	case types.OutputFormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode report").
				WithCause(err)
		}
		if err := encoder.Close(); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode report").
				WithCause(err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported report format %q", format))
	}
}

func (w ReportWriter) colorEnabled(out io.Writer) bool {
	if w.Color != nil {
		return *w.Color
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func renderTable(report types.Report, au aurora.Aurora) []byte {
	var b strings.Builder
	for i, target := range report.Targets {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", au.Bold(fmt.Sprintf("=== %s ===", target.Target.Name)))

		b.WriteString("End-of-life dependencies:\n")
		if len(target.EOL) == 0 {
			b.WriteString("None\n")
		} else {
			fmt.Fprintf(&b, "%s %s %s\n", padRight("Dependency", nameColumnWidth),
				padRight("Used Version", versionColumnWidth), padRight("Required Version", versionColumnWidth))
			b.WriteString(strings.Repeat("-", wideRuler) + "\n")
			for _, finding := range target.EOL {
				fmt.Fprintf(&b, "%s %s %s\n",
					au.Red(padRight(finding.Dependency, nameColumnWidth)),
					padRight(finding.Used, versionColumnWidth),
					au.Green(padRight(requiredOrDash(finding.Required), versionColumnWidth)))
			}
		}

		writeTwoColumnSection(&b, "Up-to-date dependencies:", target.UpToDate, au.Green)
		writeTwoColumnSection(&b, "Unchecked dependencies:", target.Unchecked, au.Faint)
		if len(target.Waived) > 0 {
			writeTwoColumnSection(&b, "Waived dependencies:", target.Waived, au.Yellow)
		}
	}
	return []byte(b.String())
}

func writeTwoColumnSection(b *strings.Builder, title string, findings []types.Finding, color func(interface{}) aurora.Value) {
	b.WriteString("\n" + title + "\n")
	if len(findings) == 0 {
		b.WriteString("None\n")
		return
	}
	fmt.Fprintf(b, "%s %s\n", padRight("Dependency", nameColumnWidth), padRight("Used Version", versionColumnWidth))
	b.WriteString(strings.Repeat("-", narrowRuler) + "\n")
	for _, finding := range findings {
		fmt.Fprintf(b, "%s %s\n", color(padRight(finding.Dependency, nameColumnWidth)), padRight(finding.Used, versionColumnWidth))
	}
}

func padRight(value string, width int) string {
	return fmt.Sprintf("%-*s", width, value)
}

func requiredOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

var _ ports.ReportWriterPort = ReportWriter{}
