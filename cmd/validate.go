package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/puzzleimg/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a puzzleimg report and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	reportPath := args[0]

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	baseDir := filepath.Dir(reportPath)
	problems := validateReport(&rep, baseDir)

	if len(problems) == 0 {
		fmt.Println("  report is valid")
		fmt.Printf("  %d photos — all output files present\n", rep.Stats.TotalImages)
		return nil
	}

	fmt.Printf("  report has %d error(s):\n", len(problems))
	for _, p := range problems {
		fmt.Printf("    - %s\n", p)
	}
	return fmt.Errorf("validation failed with %d errors", len(problems))
}

func validateReport(rep *report.Report, baseDir string) []string {
	var errs []string

	if rep.Version != report.SupportedReportVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", rep.Version))
	}

	for key, rec := range rep.Images {
		if rec.Output.Path == "" {
			errs = append(errs, fmt.Sprintf("photo %q has no output path", key))
			continue
		}
		outPath := filepath.Join(baseDir, filepath.FromSlash(rec.Output.Path))
		info, err := os.Stat(outPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("photo %q: output missing: %s", key, rec.Output.Path))
			continue
		}
		if info.Size() != rec.Output.Size {
			errs = append(errs, fmt.Sprintf("photo %q: output size %d, report says %d",
				key, info.Size(), rec.Output.Size))
		}
		if rec.Output.Width <= 0 || rec.Output.Height <= 0 {
			errs = append(errs, fmt.Sprintf("photo %q: non-positive output dimensions", key))
		}
	}

	return errs
}
