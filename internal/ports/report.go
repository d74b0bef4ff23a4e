package ports

import (
	"io"

	"eol-check/internal/types"
)

type ReportWriterPort interface {
	WriteReport(w io.Writer, report types.Report, format types.OutputFormat) error
	WriteReportFile(path string, report types.Report, format types.OutputFormat) error
}
