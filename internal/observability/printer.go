package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/parity"
)

const (
	boxWidth       = 60
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// OutputFile is one file written by the render command.
type OutputFile struct {
	Path  string
	Bytes int
}

//nolint:errcheck // verbose output to a terminal
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		pad := boxWidth - 4 - utf8.RuneCountInString(line)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs the resolved layout: template, theme and blocks.
func (p *Printer) PrintDocument(doc *layout.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	template := doc.TemplateID
	if doc.Fallback {
		template += " (fallback)"
	}
	sb.WriteString(fmt.Sprintf("Template: %s\n", template))
	sb.WriteString(fmt.Sprintf("Variant:  %s\n", doc.Variant))
	sb.WriteString(fmt.Sprintf("Fonts:    %d/%d/%d pt, spacing %.2f\n",
		doc.Theme.HeaderFontSize, doc.Theme.SectionFontSize, doc.Theme.BodyFontSize, doc.Theme.Spacing))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Header.Name))

	writeBlocks := func(label string, blocks []layout.Block) {
		if len(blocks) == 0 {
			return
		}
		sb.WriteString("\n" + label + ":\n")
		for _, b := range blocks {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", b.Heading, len(b.Items)))
		}
	}
	writeBlocks("Main", doc.Main)
	writeBlocks("Sidebar", doc.Sidebar)

	p.printBox("LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParity outputs a parity report, listing at most a few mismatches.
func (p *Printer) PrintParity(report *parity.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	status := "OK"
	if !report.OK() {
		status = "MISMATCH"
	}
	sb.WriteString(fmt.Sprintf("Status:   %s\n", status))
	sb.WriteString(fmt.Sprintf("Sections: %s\n", strings.Join(report.Expected, ", ")))
	sb.WriteString(fmt.Sprintf("PDF pages: %d", report.PDFPages))

	if n := len(report.Mismatches); n > 0 {
		sb.WriteString("\n\n")
		count := min(n, maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.Mismatches[i]))
		}
		if n > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-maxItemsToShow))
		}
	}

	p.printBox("PARITY: "+strings.ToUpper(report.TemplateID), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOutputs lists the files written by a render.
func (p *Printer) PrintOutputs(files []OutputFile) {
	if len(files) == 0 {
		return
	}
	var sb strings.Builder
	for _, f := range files {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", f.Path, humanBytes(f.Bytes)))
	}
	p.printBox("OUTPUT FILES", strings.TrimSuffix(sb.String(), "\n"))
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
