package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parity"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that screen, PDF and DOCX outputs agree",
	Long:  "Renders the resume in every format and compares the section headings each output shows. Without --template every catalog template is checked.",
	RunE:  runVerify,
}

var (
	verifyInput    string
	verifyTemplate string
)

func init() {
	verifyCmd.Flags().StringVarP(&verifyInput, "input", "i", "", "Path to resume JSON file (required)")
	verifyCmd.Flags().StringVarP(&verifyTemplate, "template", "t", "", "Template id (default: all templates)")
	_ = verifyCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	return verifyFile(cmd.Context(), verifyInput, verifyTemplate, cmd.OutOrStdout())
}

func verifyFile(ctx context.Context, input, templateID string, out io.Writer) error {
	r, err := loadResume(input)
	if err != nil {
		return err
	}

	checker := parity.NewChecker(rendering.NewRenderer(nil))
	var reports []*parity.Report
	if templateID != "" {
		report, err := checker.Check(ctx, r, templateID)
		if err != nil {
			return err
		}
		reports = []*parity.Report{report}
	} else {
		reports, err = checker.CheckAll(ctx, r)
		if err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(out)
	failed := 0
	for _, report := range reports {
		printer.PrintParity(report)
		if !report.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates have mismatched outputs", failed, len(reports))
	}
	return nil
}
