package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/raceprep/raceprep/internal/guide"
	"github.com/raceprep/raceprep/internal/pipeline"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		author string
		pdf    bool
	)
	cmd := &cobra.Command{
		Use:   "generate-package <athlete-id>",
		Short: "Run the full generation pipeline for one athlete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			athleteID := args[0]
			var renderer guide.Renderer
			if pdf {
				renderer = guide.PlaywrightRenderer{}
			}
			pl, err := pipeline.New(root.logger(),
				pipeline.Config{BaseDir: root.dataDir, Author: author}, renderer, nil)
			if err != nil {
				return err
			}

			res, err := pl.Run(cmd.Context(), athleteID)
			if err != nil {
				color.Red("generation failed: %v", err)
				return errFatal
			}

			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Athlete", "Methodology", "Weeks", "Workouts", "Distribution"})
			tw.Append([]string{
				res.AthleteID,
				res.MethodologyID,
				strconv.Itoa(res.PlanWeeks),
				strconv.Itoa(res.WorkoutFiles),
				string(res.Distribution),
			})
			tw.Render()
			fmt.Fprintln(cmd.OutOrStdout(), "package:", res.Dir)

			for _, w := range res.Warnings {
				color.Yellow("warning: %s", w)
			}
			color.Green("package generated")
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "RacePrep", "Author stamped into workout files")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also render the guide to PDF (requires a browser install)")
	return cmd
}
