package distribution

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raceprep/raceprep/internal/archetype"
	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/plan"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
	"github.com/raceprep/raceprep/internal/zwo"
)

// names builds n filenames of one workout type spread over the plan.
func names(t *testing.T, workoutType string, n int) []string {
	t.Helper()
	start, _ := time.Parse(time.DateOnly, "2026-04-06")
	out := make([]string, 0, n)
	for i := range n {
		week := i/7 + 1
		out = append(out, zwo.Filename(week, start.AddDate(0, 0, i), workoutType))
	}
	return out
}

func TestValidate_SkewedPlanFails(t *testing.T) {
	target := methodology.Distribution{Z1Z2: 0.72, Z3: 0.18, Z4Z5: 0.10}

	// Half the plan at threshold: z4_z5 lands at 50% against a 10% target.
	files := append(names(t, "Endurance", 10), names(t, "Threshold", 10)...)
	report, err := Validate(files, target)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Status != StatusFail {
		t.Fatalf("status = %s, want fail", report.Status)
	}
	if report.Z4Z5.Status != StatusFail {
		t.Errorf("z4_z5 status = %s, want fail (deviation %.2f)", report.Z4Z5.Status, report.Z4Z5.Deviation)
	}
	if report.Z1Z2.Status != StatusFail {
		t.Errorf("z1_z2 status = %s, want fail (deviation %.2f)", report.Z1Z2.Status, report.Z1Z2.Deviation)
	}
	if len(report.Problems) == 0 {
		t.Error("failing report carries no problems")
	}
}

func TestValidate_WarningBand(t *testing.T) {
	// 24 of 30 is 80% against a 76% target: past the 2-point warning
	// band, inside the 5-point error band.
	target := methodology.Distribution{Z1Z2: 0.76, Z3: 0.14, Z4Z5: 0.10}
	files := append(names(t, "Endurance", 24), names(t, "Sweet_Spot", 3)...)
	files = append(files, names(t, "VO2max", 3)...)

	report, err := Validate(files, target)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Status != StatusWarn {
		t.Fatalf("status = %s, want warn (z1_z2 deviation %.3f)", report.Status, report.Z1Z2.Deviation)
	}
	if len(report.Warnings) == 0 {
		t.Error("warning report carries no warnings")
	}
	if len(report.Problems) != 0 {
		t.Errorf("warning report carries problems: %v", report.Problems)
	}
}

func TestValidate_ExcludesTestsRaceAndStrength(t *testing.T) {
	target := methodology.Distribution{Z1Z2: 1.0}
	files := names(t, "Endurance", 8)
	files = append(files, names(t, "FTP_Test", 2)...)
	files = append(files, names(t, "RACE_DAY", 1)...)
	files = append(files, names(t, "Strength", 4)...)

	report, err := Validate(files, target)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Total != 8 {
		t.Errorf("total = %d, want 8 countable workouts", report.Total)
	}
	if report.Excluded != 7 {
		t.Errorf("excluded = %d, want 7", report.Excluded)
	}
	if report.Status != StatusPass {
		t.Errorf("status = %s, want pass", report.Status)
	}
}

func TestValidate_UnknownTypeFails(t *testing.T) {
	target := methodology.Distribution{Z1Z2: 1.0}
	files := append(names(t, "Endurance", 5), names(t, "Yoga", 1)...)

	report, err := Validate(files, target)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if report.Status != StatusFail {
		t.Fatalf("status = %s, want fail on unknown type", report.Status)
	}
	if len(report.Unknown) != 1 || report.Unknown[0] != "Yoga" {
		t.Errorf("unknown = %v, want [Yoga]", report.Unknown)
	}
}

func TestValidate_EmptyInput(t *testing.T) {
	if _, err := Validate(nil, methodology.Distribution{Z1Z2: 1.0}); err == nil {
		t.Fatal("expected an error for an empty plan")
	}
}

func TestValidate_RenderedPlanStaysWithinBands(t *testing.T) {
	for _, id := range []string{"traditional_pyramidal", "polarized_80_20"} {
		res, target := renderedPlan(t, id)

		var files []string
		for _, w := range res.Workouts {
			files = append(files, w.Filename)
		}
		report, err := Validate(files, target)
		if err != nil {
			t.Fatalf("%s: Validate: %v", id, err)
		}
		if report.Status == StatusFail {
			t.Errorf("%s: rendered plan fails its own methodology: %v", id, report.Problems)
		}
		for name, b := range map[string]BucketReport{
			"z1_z2": report.Z1Z2, "z3": report.Z3, "z4_z5": report.Z4Z5,
		} {
			if b.Deviation > ErrorThreshold || b.Deviation < -ErrorThreshold {
				t.Errorf("%s: %s deviation %.3f exceeds %.2f", id, name, b.Deviation, ErrorThreshold)
			}
		}
	}
}

func TestWorkoutFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"W01_Mon_Apr6_Endurance.xml",
		"W01_Tue_Apr7_Threshold.xml",
		"plan_summary.yaml",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "guide"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := WorkoutFiles(dir)
	if err != nil {
		t.Fatalf("WorkoutFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2: %v", len(files), files)
	}
	if files[0] != "W01_Mon_Apr6_Endurance.xml" {
		t.Errorf("files not sorted: %v", files)
	}
}

func renderedPlan(t *testing.T, methodologyID string) (*plan.Result, methodology.Distribution) {
	t.Helper()
	race, _ := time.Parse(time.DateOnly, "2026-06-28")
	p := profile.Profile{
		AthleteID: "jane-doe",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		WeightKg:  64,
		FTPWatts:  245,
		Race:      profile.RaceTarget{ID: "unbound_200", Name: "Unbound Gravel 200", Date: race},
		Week: profile.WeekPattern{
			{Status: profile.Available, MaxMinutes: 90, KeyOK: true},
			{Status: profile.Available, MaxMinutes: 90},
			{Status: profile.RestDay},
			{Status: profile.Available, MaxMinutes: 90, KeyOK: true},
			{Status: profile.Available, MaxMinutes: 60},
			{Status: profile.Available, MaxMinutes: 180, KeyOK: true},
			{Status: profile.Available, MaxMinutes: 300, KeyOK: true, LongDay: true},
		},
		History: profile.TrainingHistory{
			YearsStructured:    3,
			CurrentWeeklyHours: 9,
			HighestWeeklyHours: 11,
			StrengthBackground: true,
		},
		Health: profile.HealthFactors{SleepHours: 8, StressLevel: profile.LevelModerate},
	}
	now, _ := time.Parse(time.DateOnly, "2026-03-01")
	c := classify.Derive(&p, now)
	m, ok := methodology.NewRegistry().Get(methodologyID)
	if !ok {
		t.Fatalf("methodology %s not in registry", methodologyID)
	}
	dp, err := plandate.Calculate(plandate.Input{RaceDate: race, PlanWeeks: 12, Today: now})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	reg, err := archetype.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	res, err := plan.RenderPlan(&p, c, m, dp, reg, "raceprep")
	if err != nil {
		t.Fatalf("RenderPlan: %v", err)
	}
	return res, m.Targets
}
