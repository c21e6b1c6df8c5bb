package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raceprep/raceprep/internal/distribution"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/pipeline"
)

func newValidateDistributionCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-distribution <athlete-id>",
		Short: "Re-measure a generated plan against its methodology's intensity targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packageDir := filepath.Join(root.dataDir, args[0], pipeline.PackageDir)

			sel, err := readSelection(packageDir)
			if err != nil {
				return err
			}
			report, err := distribution.ValidateDir(filepath.Join(packageDir, pipeline.WorkoutsDir), sel.Targets)
			if err != nil {
				return err
			}

			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Bucket", "Rides", "Actual", "Target", "Status"})
			for _, row := range []struct {
				name   string
				bucket distribution.BucketReport
			}{
				{"Z1-Z2", report.Z1Z2},
				{"Z3", report.Z3},
				{"Z4-Z5", report.Z4Z5},
			} {
				tw.Append([]string{
					row.name,
					strconv.Itoa(row.bucket.Count),
					fmt.Sprintf("%.1f%%", row.bucket.Share*100),
					fmt.Sprintf("%.1f%%", row.bucket.Target*100),
					string(row.bucket.Status),
				})
			}
			tw.Render()

			switch report.Status {
			case distribution.StatusFail:
				for _, p := range report.Problems {
					color.Red("problem: %s", p)
				}
				return errValidation
			case distribution.StatusWarn:
				for _, w := range report.Warnings {
					color.Yellow("warning: %s", w)
				}
				return nil
			default:
				color.Green("distribution within bounds (%d rides measured)", report.Total)
				return nil
			}
		},
	}
	return cmd
}

func readSelection(packageDir string) (*methodology.Selection, error) {
	raw, err := os.ReadFile(filepath.Join(packageDir, pipeline.MethodologyFile))
	if err != nil {
		return nil, fmt.Errorf("read methodology document: %w", err)
	}
	var sel methodology.Selection
	if err := yaml.Unmarshal(raw, &sel); err != nil {
		return nil, fmt.Errorf("parse methodology document: %w", err)
	}
	return &sel, nil
}
