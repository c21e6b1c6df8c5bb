package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raceprep/raceprep/internal/distribution"
	"github.com/raceprep/raceprep/internal/fueling"
	"github.com/raceprep/raceprep/internal/pipeline"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
	"github.com/raceprep/raceprep/internal/store"
)

// checkResult is one checklist line.
type checkResult struct {
	name   string
	ok     bool
	detail string
	warn   bool
}

func newChecklistCmd(root *rootOptions) *cobra.Command {
	var dbURL string
	cmd := &cobra.Command{
		Use:   "pre-delivery-checklist <athlete-id>",
		Short: "Verify a generated package is complete before sending it to the athlete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			athleteDir := filepath.Join(root.dataDir, args[0])
			packageDir := filepath.Join(athleteDir, pipeline.PackageDir)

			checks := runChecklist(athleteDir, packageDir)

			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Check", "Result", "Detail"})
			failed, warned := false, false
			for _, c := range checks {
				mark := color.GreenString("ok")
				switch {
				case !c.ok:
					mark = color.RedString("FAIL")
					failed = true
				case c.warn:
					mark = color.YellowString("warn")
					warned = true
				}
				tw.Append([]string{c.name, mark, c.detail})
			}
			tw.Render()

			if dbURL != "" {
				if err := printRecentOrders(cmd, root, dbURL); err != nil {
					return err
				}
			}

			switch {
			case failed:
				return errValidation
			case warned:
				color.Yellow("ready for delivery, with warnings")
				return nil
			default:
				color.Green("ready for delivery")
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&dbURL, "db", "", "SQLite URL; when set, recent orders are listed for cross-checking")
	return cmd
}

//nolint:funlen // one block per checklist gate.
func runChecklist(athleteDir, packageDir string) []checkResult {
	var checks []checkResult
	add := func(name string, ok bool, detail string, warn bool) {
		checks = append(checks, checkResult{name: name, ok: ok, detail: detail, warn: warn})
	}

	var p profile.Profile
	raw, err := os.ReadFile(filepath.Join(athleteDir, pipeline.ProfileFile))
	if err == nil {
		err = yaml.Unmarshal(raw, &p)
	}
	switch {
	case err != nil:
		add("profile parses", false, err.Error(), false)
	default:
		validation := p.Validate(time.Now())
		add("profile parses", validation.IsValid(),
			fmt.Sprintf("%d errors, %d warnings", len(validation.Errors), len(validation.Warnings)),
			len(validation.Warnings) > 0)
	}

	var dates plandate.Plan
	raw, err = os.ReadFile(filepath.Join(packageDir, pipeline.PlanDatesFile))
	if err == nil {
		err = yaml.Unmarshal(raw, &dates)
	}
	switch {
	case err != nil:
		add("plan dates valid", false, err.Error(), false)
	default:
		problems := dates.Validate()
		add("plan dates valid", len(problems) == 0,
			fmt.Sprintf("%d weeks ending %s", len(dates.Weeks), dates.RaceDate.Format(time.DateOnly)), false)
	}

	workouts, err := distribution.WorkoutFiles(filepath.Join(packageDir, pipeline.WorkoutsDir))
	add("workout files present", err == nil && len(workouts) > 0,
		fmt.Sprintf("%d files", len(workouts)), false)

	sel, err := readSelection(packageDir)
	if err != nil {
		add("distribution within bounds", false, err.Error(), false)
	} else {
		report, err := distribution.ValidateDir(filepath.Join(packageDir, pipeline.WorkoutsDir), sel.Targets)
		if err != nil {
			add("distribution within bounds", false, err.Error(), false)
		} else {
			add("distribution within bounds", report.Status != distribution.StatusFail,
				string(report.Status), report.Status == distribution.StatusWarn)
		}
	}

	guideInfo, err := os.Stat(filepath.Join(packageDir, pipeline.GuideDir, pipeline.GuideHTMLFile))
	add("guide present", err == nil && guideInfo.Size() > 0, pipeline.GuideHTMLFile, false)

	var fuel fueling.Plan
	raw, err = os.ReadFile(filepath.Join(packageDir, pipeline.FuelingFile))
	if err == nil {
		err = yaml.Unmarshal(raw, &fuel)
	}
	add("fueling present", err == nil && len(fuel.PhaseTargets) > 0,
		fmt.Sprintf("%d phase targets", len(fuel.PhaseTargets)), false)

	return checks
}

const recentOrderCount = 10

func printRecentOrders(cmd *cobra.Command, root *rootOptions, dbURL string) error {
	st, err := store.New(cmd.Context(), dbURL, root.logger())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	orders, err := st.RecentOrders(cmd.Context(), recentOrderCount)
	if err != nil {
		return err
	}
	tw := tablewriter.NewWriter(cmd.OutOrStdout())
	tw.SetHeader([]string{"Created", "Email", "Product", "Amount"})
	for _, o := range orders {
		tw.Append([]string{
			o.CreatedAt.Format(time.DateOnly),
			o.Email,
			o.ProductType,
			strconv.FormatInt(o.AmountCents, 10) + " " + o.Currency,
		})
	}
	tw.Render()
	return nil
}
