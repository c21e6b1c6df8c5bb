package fueling_test

import (
	"testing"
	"time"

	"github.com/raceprep/raceprep/internal/fueling"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
)

func TestCalculate_PhaseTargetsScaleWithWeight(t *testing.T) {
	race, _ := time.Parse(time.DateOnly, "2026-06-28")
	p := profile.Profile{
		WeightKg: 70,
		FTPWatts: 250,
		Race:     profile.RaceTarget{ID: "unbound_200", Date: race},
		History:  profile.TrainingHistory{CurrentWeeklyHours: 10},
	}
	plan := fueling.Calculate(&p)

	targets := map[plandate.Phase]fueling.PhaseTarget{}
	for _, pt := range plan.PhaseTargets {
		targets[pt.Phase] = pt
	}
	if got := targets[plandate.PhaseBase].CarbsG; got != 350 {
		t.Errorf("base carbs = %d, want 350 (5 g/kg at 70 kg)", got)
	}
	if got := targets[plandate.PhasePeak].CarbsG; got != 490 {
		t.Errorf("peak carbs = %d, want 490 (7 g/kg at 70 kg)", got)
	}
	if got := targets[plandate.PhaseBase].ProteinG; got != 126 {
		t.Errorf("protein = %d, want 126 (1.8 g/kg at 70 kg)", got)
	}
	// Peak demands more than base.
	if targets[plandate.PhasePeak].CarbsG <= targets[plandate.PhaseBase].CarbsG {
		t.Error("peak carbs should exceed base carbs")
	}
}

func TestCalculate_LowVolumeDiscount(t *testing.T) {
	p := profile.Profile{
		WeightKg: 70,
		History:  profile.TrainingHistory{CurrentWeeklyHours: 4},
	}
	plan := fueling.Calculate(&p)
	if got := plan.PhaseTargets[0].CarbsG; got != 280 {
		t.Errorf("discounted base carbs = %d, want 280", got)
	}
	if len(plan.Notes) == 0 {
		t.Error("expected a low-volume note")
	}
}

func TestCalculate_RaceDayFuelingByDuration(t *testing.T) {
	race, _ := time.Parse(time.DateOnly, "2026-05-30")
	long := profile.Profile{
		WeightKg: 70,
		FTPWatts: 250,
		Race:     profile.RaceTarget{ID: "unbound_200", Date: race},
		History:  profile.TrainingHistory{CurrentWeeklyHours: 10},
	}
	plan := fueling.Calculate(&long)
	if plan.RaceDay.DurationHours < 9 {
		t.Errorf("unbound 200 duration = %.1f h, expected an all-day estimate", plan.RaceDay.DurationHours)
	}
	if plan.RaceDay.CarbsPerHourG != 100 {
		t.Errorf("ultra-distance carbs = %d g/h, want 100", plan.RaceDay.CarbsPerHourG)
	}

	short := long
	short.Race = profile.RaceTarget{ID: "crusher_tushar", Date: race}
	short.FTPWatts = 350
	plan = fueling.Calculate(&short)
	if plan.RaceDay.CarbsPerHourG != 90 {
		t.Errorf("sub-six-hour carbs = %d g/h, want 90", plan.RaceDay.CarbsPerHourG)
	}
}
