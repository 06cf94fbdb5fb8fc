package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to HTML, PDF or DOCX",
	Long:  "Validates a resume document and writes the requested outputs to a directory. --format all renders every format from one layout.",
	RunE:  runRender,
}

var (
	renderInput    string
	renderTemplate string
	renderFormat   string
	renderOut      string
	renderVerbose  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (defaults to the resume's own template)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "pdf", "Output format: html, pdf, docx or all")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "Output directory")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print the layout summary")

	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

type renderOptions struct {
	Input    string
	Template string
	Format   string
	OutDir   string
	Verbose  bool
}

func runRender(cmd *cobra.Command, _ []string) error {
	return renderFile(cmd.Context(), renderOptions{
		Input:    renderInput,
		Template: renderTemplate,
		Format:   renderFormat,
		OutDir:   renderOut,
		Verbose:  renderVerbose,
	}, cmd.OutOrStdout())
}

// loadResume reads a resume file, checking the schema and struct rules.
func loadResume(path string) (*types.Resume, error) {
	data, err := schemas.ValidateResumeFile(path)
	if err != nil {
		return nil, err
	}
	var r types.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume: %w", err)
	}
	return &r, nil
}

func renderFile(ctx context.Context, opts renderOptions, out io.Writer) error {
	formats, err := parseFormats(opts.Format)
	if err != nil {
		return err
	}
	r, err := loadResume(opts.Input)
	if err != nil {
		return err
	}
	templateID := opts.Template
	if templateID == "" {
		templateID = r.Template
	}

	printer := observability.NewPrinter(out)
	if opts.Verbose {
		printer.PrintDocument(layout.Build(r, templateID))
	}

	rn := rendering.NewRenderer(nil)
	exp, err := rn.RenderAll(ctx, r, templateID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	written := make([]observability.OutputFile, 0, len(formats))
	for _, f := range formats {
		data := exp.Bytes(f)
		if f == rendering.FormatHTML {
			page, err := rn.Page(rendering.PageData{Title: r.Title, Fragment: exp.HTML})
			if err != nil {
				return err
			}
			data = []byte(page)
		}
		path := filepath.Join(opts.OutDir, rendering.Filename(r.Title, f))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, observability.OutputFile{Path: path, Bytes: len(data)})
	}

	if opts.Verbose {
		printer.PrintOutputs(written)
	} else {
		for _, f := range written {
			fmt.Fprintln(out, f.Path)
		}
	}
	return nil
}

func parseFormats(s string) ([]rendering.Format, error) {
	if s == "all" {
		return []rendering.Format{rendering.FormatHTML, rendering.FormatPDF, rendering.FormatDOCX}, nil
	}
	f, err := rendering.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return []rendering.Format{f}, nil
}
