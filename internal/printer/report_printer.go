package printer

import (
	"fmt"
	"io"

	"github.com/mcpscope/mcpscope/internal/cmd/output"
	"github.com/mcpscope/mcpscope/internal/validate"
)

var _ output.Printer[validate.FileReport] = (*FileReportPrinter)(nil)

// FileReportPrinter renders source file validation reports as text.
type FileReportPrinter struct {
	headerFunc output.WriteFunc[validate.FileReport]
	footerFunc output.WriteFunc[validate.FileReport]
}

// NewFileReportPrinter creates a text printer for validation reports.
func NewFileReportPrinter() *FileReportPrinter {
	return &FileReportPrinter{}
}

func (p *FileReportPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}
	fmt.Fprintf(w, "Checked %d source file(s):\n", count)
}

func (p *FileReportPrinter) SetHeader(fn output.WriteFunc[validate.FileReport]) {
	p.headerFunc = fn
}

func (p *FileReportPrinter) Item(w io.Writer, elem validate.FileReport) error {
	switch {
	case !elem.Present:
		fmt.Fprintf(w, "  - %s (absent)\n", elem.File)
	case elem.OK():
		fmt.Fprintf(w, "  ✓ %s\n", elem.File)
	default:
		fmt.Fprintf(w, "  ✗ %s\n", elem.File)
		for _, finding := range elem.Findings {
			if finding.Field != "" {
				fmt.Fprintf(w, "      [%s] %s: %s\n", finding.Severity, finding.Field, finding.Detail)
			} else {
				fmt.Fprintf(w, "      [%s] %s\n", finding.Severity, finding.Detail)
			}
		}
	}

	return nil
}

func (p *FileReportPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *FileReportPrinter) SetFooter(fn output.WriteFunc[validate.FileReport]) {
	p.footerFunc = fn
}
