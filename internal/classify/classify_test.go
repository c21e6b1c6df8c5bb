package classify_test

import (
	"slices"
	"testing"
	"time"

	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/profile"
)

func baseProfile(hours float64) profile.Profile {
	race, _ := time.Parse(time.DateOnly, "2026-06-28")
	return profile.Profile{
		AthleteID: "test-athlete",
		Race:      profile.RaceTarget{Name: "Test Race", Date: race},
		Week: profile.WeekPattern{
			{Status: profile.Available, MaxMinutes: 60},
			{Status: profile.Available, MaxMinutes: 90, KeyOK: true},
			{Status: profile.RestDay},
			{Status: profile.Available, MaxMinutes: 90, KeyOK: true},
			{Status: profile.Available, MaxMinutes: 60},
			{Status: profile.Available, MaxMinutes: 180, KeyOK: true},
			{Status: profile.Available, MaxMinutes: 240, KeyOK: true, LongDay: true},
		},
		History: profile.TrainingHistory{
			YearsStructured:    2,
			HighestWeeklyHours: hours + 2,
			CurrentWeeklyHours: hours,
		},
		Health: profile.HealthFactors{SleepHours: 8, StressLevel: profile.LevelModerate},
	}
}

func classifyAt(t *testing.T, p profile.Profile, day string) classify.Classification {
	t.Helper()
	now, err := time.Parse(time.DateOnly, day)
	if err != nil {
		t.Fatalf("bad date: %v", err)
	}
	return classify.Derive(&p, now)
}

func TestDerive_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		years float64
		want  classify.Tier
	}{
		{name: "low volume", hours: 3, years: 2, want: classify.TierAyahuasca},
		{name: "finisher volume", hours: 6, years: 2, want: classify.TierFinisher},
		{name: "compete volume", hours: 9, years: 2, want: classify.TierCompete},
		{name: "podium volume", hours: 14, years: 2, want: classify.TierPodium},
		{name: "history bumps boundary", hours: 7.5, years: 5, want: classify.TierCompete},
		{name: "novice pulled down", hours: 5.5, years: 0.5, want: classify.TierAyahuasca},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile(tt.hours)
			p.History.YearsStructured = tt.years
			got := classifyAt(t, p, "2026-03-01").Tier
			if got != tt.want {
				t.Errorf("tier = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDerive_PlanWeeksClamped(t *testing.T) {
	tests := []struct {
		now  string
		want int
	}{
		{now: "2026-04-06", want: 11},
		{now: "2026-06-20", want: 6},  // closer than 6 weeks clamps up
		{now: "2025-06-28", want: 24}, // a year out clamps down
	}
	for _, tt := range tests {
		got := classifyAt(t, baseProfile(8), tt.now).PlanWeeks
		if got != tt.want {
			t.Errorf("plan weeks at %s = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestDerive_RiskFactors(t *testing.T) {
	p := baseProfile(8)
	p.Health.SleepHours = 5.5
	p.Health.StressLevel = profile.LevelVeryHigh
	p.Recent.ComingOffInjury = true
	p.Recent.DaysSinceRide = 30
	p.History.YearsStructured = 0.5
	c := classifyAt(t, p, "2026-03-01")

	for _, want := range []string{
		classify.RiskLowSleep,
		classify.RiskHighStress,
		classify.RiskReturningInjury,
		classify.RiskNewToStructure,
		classify.RiskDetrained,
	} {
		if !slices.Contains(c.RiskFactors, want) {
			t.Errorf("risk factors %v missing %s", c.RiskFactors, want)
		}
	}
}

func TestDerive_StrengthSessions(t *testing.T) {
	p := baseProfile(8)
	p.History.StrengthBackground = true
	if got := classifyAt(t, p, "2026-03-01").StrengthSessions; got != 2 {
		t.Errorf("strength sessions = %d, want 2", got)
	}

	p.Injuries = []profile.Injury{{Area: "shoulder", Severity: profile.LevelHigh, AffectsStrength: true}}
	if got := classifyAt(t, p, "2026-03-01").StrengthSessions; got != 0 {
		t.Errorf("strength sessions with severe injury = %d, want 0", got)
	}
}

func TestDerive_EquipmentTier(t *testing.T) {
	p := baseProfile(8)
	if got := classifyAt(t, p, "2026-03-01").EquipmentTier; got != classify.EquipmentMinimal {
		t.Errorf("equipment tier = %s, want minimal", got)
	}
	p.Equipment = []string{"power_meter"}
	if got := classifyAt(t, p, "2026-03-01").EquipmentTier; got != classify.EquipmentModerate {
		t.Errorf("equipment tier = %s, want moderate", got)
	}
	p.Equipment = []string{"power_meter", "smart_trainer", "barbell"}
	if got := classifyAt(t, p, "2026-03-01").EquipmentTier; got != classify.EquipmentFull {
		t.Errorf("equipment tier = %s, want full", got)
	}
}
