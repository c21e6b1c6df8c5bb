package plandate_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/raceprep/raceprep/internal/plandate"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func TestCalculate_StandardTwelveWeekPlan(t *testing.T) {
	plan, err := plandate.Calculate(plandate.Input{
		RaceDate:  date("2026-06-28"),
		PlanWeeks: 12,
		Today:     date("2026-04-01"),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	if got, want := plan.Weeks[0].Monday, date("2026-04-06"); !got.Equal(want) {
		t.Errorf("week 1 Monday = %s, want %s", got.Format(time.DateOnly), want.Format(time.DateOnly))
	}
	raceWeek := plan.RaceWeek()
	if !raceWeek.Monday.Equal(date("2026-06-22")) || !raceWeek.Sunday.Equal(date("2026-06-28")) {
		t.Errorf("race week = %s..%s, want 2026-06-22..2026-06-28",
			raceWeek.Monday.Format(time.DateOnly), raceWeek.Sunday.Format(time.DateOnly))
	}
	if !raceWeek.IsRaceWeek {
		t.Error("final week is not flagged as race week")
	}

	var phases []plandate.Phase
	for _, w := range plan.Weeks {
		phases = append(phases, w.Phase)
	}
	want := []plandate.Phase{
		plandate.PhaseBase, plandate.PhaseBase, plandate.PhaseBase,
		plandate.PhaseBase, plandate.PhaseBase, plandate.PhaseBase,
		plandate.PhaseBuild, plandate.PhaseBuild, plandate.PhaseBuild,
		plandate.PhasePeak,
		plandate.PhaseTaper, plandate.PhaseRace,
	}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Errorf("phase sequence mismatch (-want +got):\n%s", diff)
	}

	raceDays := 0
	for _, d := range raceWeek.Days {
		if d.IsRaceDay {
			raceDays++
			if d.Weekday != "Sun" {
				t.Errorf("race day weekday = %s, want Sun", d.Weekday)
			}
		}
	}
	if raceDays != 1 {
		t.Errorf("race week has %d race days, want exactly 1", raceDays)
	}

	if problems := plan.Validate(); len(problems) != 0 {
		t.Errorf("Validate() = %v, want no problems", problems)
	}
}

func TestCalculate_WeeksAreContiguous(t *testing.T) {
	plan, err := plandate.Calculate(plandate.Input{
		RaceDate:  date("2026-06-28"),
		PlanWeeks: 19,
		Today:     date("2026-02-01"),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	for i := 1; i < len(plan.Weeks); i++ {
		prev, cur := plan.Weeks[i-1], plan.Weeks[i]
		if gap := cur.Monday.Sub(prev.Sunday); gap != 24*time.Hour {
			t.Errorf("gap between week %d and %d = %s, want 24h", prev.Number, cur.Number, gap)
		}
		if cur.Number != prev.Number+1 {
			t.Errorf("week numbers %d -> %d are not sequential", prev.Number, cur.Number)
		}
	}
	for _, w := range plan.Weeks {
		if !w.Sunday.Equal(w.Monday.AddDate(0, 0, 6)) {
			t.Errorf("week %d spans %s..%s, want Monday..Sunday", w.Number,
				w.Monday.Format(time.DateOnly), w.Sunday.Format(time.DateOnly))
		}
	}
}

func TestCalculate_MaintenanceOverlay(t *testing.T) {
	plan, err := plandate.Calculate(plandate.Input{
		RaceDate:         date("2026-06-28"),
		PlanWeeks:        19,
		HeavyTrainingEnd: datePtr("2026-06-01"),
		Today:            date("2026-02-01"),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	var maintenanceWeek *plandate.Week
	for i := range plan.Weeks {
		if plan.Weeks[i].Monday.Equal(date("2026-06-01")) {
			maintenanceWeek = &plan.Weeks[i]
		}
	}
	if maintenanceWeek == nil {
		t.Fatal("no week starting 2026-06-01")
	}
	if maintenanceWeek.Phase != plandate.PhaseMaintenance {
		t.Errorf("week starting 2026-06-01 phase = %s, want maintenance", maintenanceWeek.Phase)
	}
	prior := plan.Weeks[maintenanceWeek.Number-2]
	if prior.Phase != plandate.PhaseBuild && prior.Phase != plandate.PhasePeak {
		t.Errorf("week before maintenance phase = %s, want build or peak", prior.Phase)
	}
	if got := plan.Weeks[len(plan.Weeks)-2].Phase; got != plandate.PhaseTaper {
		t.Errorf("penultimate week phase = %s, want taper", got)
	}
	if got := plan.RaceWeek().Phase; got != plandate.PhaseRace {
		t.Errorf("race week phase = %s, want race", got)
	}
}

func TestCalculate_BRaceOverlay(t *testing.T) {
	baseline, err := plandate.Calculate(plandate.Input{
		RaceDate:  date("2026-06-28"),
		PlanWeeks: 12,
		Today:     date("2026-04-01"),
	})
	if err != nil {
		t.Fatalf("Calculate() baseline error: %v", err)
	}

	plan, err := plandate.Calculate(plandate.Input{
		RaceDate:  date("2026-06-28"),
		PlanWeeks: 12,
		BEvents:   []time.Time{date("2026-05-16")},
		Today:     date("2026-04-01"),
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	var tagged *plandate.Week
	for i := range plan.Weeks {
		w := &plan.Weeks[i]
		if !date("2026-05-16").Before(w.Monday) && !date("2026-05-16").After(w.Sunday) {
			tagged = w
		}
	}
	if tagged == nil {
		t.Fatal("no week contains 2026-05-16")
	}
	if len(tagged.BRaceDates) != 1 || !tagged.BRaceDates[0].Equal(date("2026-05-16")) {
		t.Errorf("b_race tag = %v, want [2026-05-16]", tagged.BRaceDates)
	}
	// B overlays never alter phases.
	if got, want := tagged.Phase, baseline.Weeks[tagged.Number-1].Phase; got != want {
		t.Errorf("tagged week phase = %s, want baseline %s", got, want)
	}

	foundDay, foundOpener := false, false
	for _, w := range plan.Weeks {
		for _, d := range w.Days {
			if d.Date.Equal(date("2026-05-16")) && d.IsBRaceDay {
				foundDay = true
			}
			if d.Date.Equal(date("2026-05-15")) && d.IsBRaceOpener {
				foundOpener = true
			}
		}
	}
	if !foundDay {
		t.Error("2026-05-16 is not marked is_b_race_day")
	}
	if !foundOpener {
		t.Error("2026-05-15 is not marked is_b_race_opener")
	}
}

func TestCalculate_PhaseSequenceIsPrefixOrdered(t *testing.T) {
	order := map[plandate.Phase]int{
		plandate.PhaseBase:        0,
		plandate.PhaseBuild:       1,
		plandate.PhasePeak:        2,
		plandate.PhaseMaintenance: 3,
		plandate.PhaseTaper:       4,
		plandate.PhaseRace:        5,
	}
	for _, weeks := range []int{6, 8, 12, 16, 24} {
		plan, err := plandate.Calculate(plandate.Input{
			RaceDate:  date("2026-06-28"),
			PlanWeeks: weeks,
			Today:     date("2025-09-01"),
		})
		if err != nil {
			t.Fatalf("Calculate(%d weeks) error: %v", weeks, err)
		}
		prev := -1
		for _, w := range plan.Weeks {
			rank, ok := order[w.Phase]
			if !ok {
				t.Fatalf("unknown phase %q", w.Phase)
			}
			if rank < prev {
				t.Errorf("%d-week plan: phase %s regresses at week %d", weeks, w.Phase, w.Number)
			}
			prev = rank
		}
	}
}

func TestCalculate_Bounds(t *testing.T) {
	for _, weeks := range []int{3, 53, 0, -1} {
		_, err := plandate.Calculate(plandate.Input{
			RaceDate:  date("2026-06-28"),
			PlanWeeks: weeks,
			Today:     date("2026-01-01"),
		})
		if err == nil {
			t.Errorf("Calculate(%d weeks) succeeded, want bounds error", weeks)
		}
	}

	// Short but legal plans warn instead of failing.
	plan, err := plandate.Calculate(plandate.Input{
		RaceDate:  date("2026-06-28"),
		PlanWeeks: 5,
		Today:     date("2026-05-01"),
	})
	if err != nil {
		t.Fatalf("Calculate(5 weeks) error: %v", err)
	}
	if len(plan.Warnings) == 0 {
		t.Error("5-week plan has no warnings, want short-plan warning")
	}
}

func TestCalculate_PastStartRollsForward(t *testing.T) {
	plan, err := plandate.Calculate(plandate.Input{
		RaceDate:  date("2026-06-28"),
		PlanWeeks: 20,
		Today:     date("2026-04-08"), // Wednesday
	})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if got, want := plan.Weeks[0].Monday, date("2026-04-13"); !got.Equal(want) {
		t.Errorf("rolled start = %s, want %s", got.Format(time.DateOnly), want.Format(time.DateOnly))
	}
	if got := len(plan.Weeks); got != 11 {
		t.Errorf("recomputed plan weeks = %d, want 11", got)
	}
	if len(plan.Warnings) == 0 {
		t.Error("expected a warning for past start date")
	}
}
