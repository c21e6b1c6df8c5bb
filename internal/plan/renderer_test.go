package plan

import (
	"strings"
	"testing"
	"time"

	"github.com/raceprep/raceprep/internal/archetype"
	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
	"github.com/raceprep/raceprep/internal/zwo"
)

func fixtureProfile() profile.Profile {
	race, _ := time.Parse(time.DateOnly, "2026-06-28")
	return profile.Profile{
		AthleteID: "jane-doe",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		WeightKg:  64,
		FTPWatts:  245,
		GoalType:  "compete",
		Race:      profile.RaceTarget{ID: "unbound_200", Name: "Unbound Gravel 200", Date: race},
		Week: profile.WeekPattern{
			{Status: profile.Available, MaxMinutes: 90, KeyOK: true},
			{Status: profile.Available, MaxMinutes: 90},
			{Status: profile.RestDay},
			{Status: profile.Available, MaxMinutes: 90, KeyOK: true, Slots: []profile.Slot{profile.SlotPM}},
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
}

func fixture(t *testing.T, methodologyID string) (*profile.Profile, classify.Classification, methodology.Methodology, *plandate.Plan, *archetype.Registry) {
	t.Helper()
	p := fixtureProfile()
	now, _ := time.Parse(time.DateOnly, "2026-03-01")
	c := classify.Derive(&p, now)

	m, ok := methodology.NewRegistry().Get(methodologyID)
	if !ok {
		t.Fatalf("methodology %s not in registry", methodologyID)
	}

	dp, err := plandate.Calculate(plandate.Input{
		RaceDate:  p.Race.Date,
		PlanWeeks: 12,
		Today:     now,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	reg, err := archetype.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return &p, c, m, dp, reg
}

func renderFixture(t *testing.T, methodologyID string) *Result {
	t.Helper()
	p, c, m, dp, reg := fixture(t, methodologyID)
	res, err := RenderPlan(p, c, m, dp, reg, "raceprep")
	if err != nil {
		t.Fatalf("RenderPlan: %v", err)
	}
	return res
}

func TestRenderPlan_StandardPlanShape(t *testing.T) {
	res := renderFixture(t, "traditional_pyramidal")

	byWeek := map[int][]Workout{}
	for _, w := range res.Workouts {
		byWeek[w.Week] = append(byWeek[w.Week], w)
	}
	if len(byWeek) != 12 {
		t.Fatalf("workouts span %d weeks, want 12", len(byWeek))
	}

	// Six ride days per week in the fixture pattern.
	rides := 0
	for _, w := range res.Workouts {
		if w.Type != TypeStrength {
			rides++
		}
	}
	if rides != 12*6 {
		t.Errorf("ride workouts = %d, want 72", rides)
	}

	// FTP test on the week-1 Sunday, the key day with the most time.
	found := false
	for _, w := range byWeek[1] {
		if w.Type == TypeFTPTest {
			found = true
			if w.Date.Weekday() != time.Sunday {
				t.Errorf("week-1 FTP test on %s, want Sunday", w.Date.Weekday())
			}
			if w.Minutes != 60 {
				t.Errorf("FTP test is %d min, want exactly 60", w.Minutes)
			}
		}
	}
	if !found {
		t.Error("no FTP test in week 1")
	}

	// Race day file in the final week, openers the day before.
	race, _ := time.Parse(time.DateOnly, "2026-06-28")
	var raceDay, openers bool
	for _, w := range byWeek[12] {
		if w.Type == TypeRaceDay && w.Date.Equal(race) {
			raceDay = true
		}
		if w.Type == TypeOpeners && w.Date.Equal(race.AddDate(0, 0, -1)) {
			openers = true
		}
	}
	if !raceDay {
		t.Error("no RACE_DAY workout on the race date")
	}
	if !openers {
		t.Error("no openers the day before the race")
	}
}

func TestRenderPlan_SecondFTPTestClosesBasePhase(t *testing.T) {
	p, c, m, dp, reg := fixture(t, "traditional_pyramidal")
	res, err := RenderPlan(p, c, m, dp, reg, "raceprep")
	if err != nil {
		t.Fatal(err)
	}
	lastBase := 0
	for _, week := range dp.Weeks {
		if week.Phase == plandate.PhaseBase {
			lastBase = week.Number
		}
	}
	if lastBase < 3 {
		t.Skip("fixture base phase shorter than 3 weeks")
	}
	tests := 0
	for _, w := range res.Workouts {
		if w.Type == TypeFTPTest {
			tests++
		}
	}
	if tests != 2 {
		t.Errorf("plan has %d FTP tests, want 2 (week 1 and week %d)", tests, lastBase)
	}
}

func TestRenderPlan_NoConsecutiveHardDays(t *testing.T) {
	for _, id := range []string{"traditional_pyramidal", "polarized_80_20", "hiit_focused"} {
		res := renderFixture(t, id)
		byDate := map[string]Type{}
		for _, w := range res.Workouts {
			if w.Type == TypeStrength {
				continue
			}
			byDate[w.Date.Format(time.DateOnly)] = w.Type
		}
		for dateStr, typ := range byDate {
			if !IsHard(typ) {
				continue
			}
			date, _ := time.Parse(time.DateOnly, dateStr)
			next := date.AddDate(0, 0, 1).Format(time.DateOnly)
			if nextType, ok := byDate[next]; ok && IsHard(nextType) {
				t.Errorf("%s: consecutive hard days %s then %s (%s)", id, typ, nextType, dateStr)
			}
		}
	}
}

func TestRenderPlan_StrengthRespectsKeyDayBuffer(t *testing.T) {
	res := renderFixture(t, "traditional_pyramidal")
	// Every key-cardio type counts towards the buffer, Z3 sessions
	// included, not just the hard-day set.
	keyCardio := func(typ Type) bool {
		switch typ {
		case TypeTempo, TypeSweetSpot, TypeGSpot, TypeOverUnder, TypeRaceSim, TypeBlended:
			return true
		}
		return IsHard(typ)
	}
	keyOn := map[string]bool{}
	for _, w := range res.Workouts {
		if keyCardio(w.Type) {
			keyOn[w.Date.Format(time.DateOnly)] = true
		}
	}
	strengthDays := 0
	for _, w := range res.Workouts {
		if w.Type != TypeStrength {
			continue
		}
		strengthDays++
		// Each week is planned as a unit, so the buffer applies within
		// the Monday-to-Sunday window.
		dayIdx := (int(w.Date.Weekday()) + 6) % 7
		for offset := 1; offset <= 2 && dayIdx+offset <= 6; offset++ {
			next := w.Date.AddDate(0, 0, offset).Format(time.DateOnly)
			if keyOn[next] {
				t.Errorf("strength on %s with a key session %d later",
					w.Date.Format(time.DateOnly), offset)
			}
		}
	}
	if strengthDays == 0 {
		t.Fatal("no strength sessions scheduled; the buffer rule was not exercised")
	}
}

func TestRenderPlan_DurationsAreRounded(t *testing.T) {
	res := renderFixture(t, "traditional_pyramidal")
	for _, w := range res.Workouts {
		switch w.Type {
		case TypeFTPTest:
			if w.Minutes != 60 {
				t.Errorf("%s: FTP test %d min, want exactly 60", w.Filename, w.Minutes)
			}
		case TypeOpeners, TypeSprints, TypeStrength, TypeRaceDay:
			// Exact-duration types.
		default:
			if w.Minutes%10 != 0 {
				t.Errorf("%s: %d min is not a multiple of 10", w.Filename, w.Minutes)
			}
		}
	}
}

func TestRenderPlan_FilenamesRoundTrip(t *testing.T) {
	res := renderFixture(t, "polarized_80_20")
	for _, w := range res.Workouts {
		parsed, err := zwo.ParseFilename(w.Filename)
		if err != nil {
			t.Errorf("%s: %v", w.Filename, err)
			continue
		}
		if parsed.Week != w.Week {
			t.Errorf("%s: parsed week %d, workout week %d", w.Filename, parsed.Week, w.Week)
		}
		if parsed.Type != string(w.Type) {
			t.Errorf("%s: parsed type %s, workout type %s", w.Filename, parsed.Type, w.Type)
		}
		if w.Document.Name != strings.TrimSuffix(w.Filename, ".xml") {
			t.Errorf("%s: document name %q does not match", w.Filename, w.Document.Name)
		}
	}
}

func TestRenderPlan_DeterministicAcrossRuns(t *testing.T) {
	first := renderFixture(t, "polarized_80_20")
	second := renderFixture(t, "polarized_80_20")
	if len(first.Workouts) != len(second.Workouts) {
		t.Fatalf("runs produced %d and %d workouts", len(first.Workouts), len(second.Workouts))
	}
	for i := range first.Workouts {
		a, b := first.Workouts[i], second.Workouts[i]
		if a.Filename != b.Filename {
			t.Fatalf("workout %d differs: %s vs %s", i, a.Filename, b.Filename)
		}
		if string(a.Document.Marshal()) != string(b.Document.Marshal()) {
			t.Errorf("%s renders differently across runs", a.Filename)
		}
	}
}

func TestBuildStructures_AgreesWithRenderer(t *testing.T) {
	p, c, m, dp, reg := fixture(t, "traditional_pyramidal")
	structures := BuildStructures(p, c, m.Targets, dp)
	res, err := RenderPlan(p, c, m, dp, reg, "raceprep")
	if err != nil {
		t.Fatal(err)
	}
	if len(structures) != len(res.Structures) {
		t.Fatalf("structure counts differ: %d vs %d", len(structures), len(res.Structures))
	}
	for i := range structures {
		if structures[i] != res.Structures[i] {
			t.Errorf("week %d structure differs between BuildStructures and RenderPlan", i+1)
		}
	}
}

func TestRenderPlan_RestDaysProduceNoFiles(t *testing.T) {
	res := renderFixture(t, "traditional_pyramidal")
	for _, w := range res.Workouts {
		if w.Date.Weekday() == time.Wednesday {
			t.Errorf("workout %s scheduled on the declared rest day", w.Filename)
		}
	}
}

func TestRenderPlan_WorkoutsOrderedByWeek(t *testing.T) {
	res := renderFixture(t, "traditional_pyramidal")
	for i := 1; i < len(res.Workouts); i++ {
		if res.Workouts[i].Week < res.Workouts[i-1].Week {
			t.Fatalf("workouts not ordered by week at index %d", i)
		}
	}
}
