// Package fueling computes daily carbohydrate and protein targets per
// training phase plus a race-day fueling prescription.
package fueling

import (
	"math"

	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
)

// Grams of carbohydrate per kilogram of body mass per day, by phase.
//
//nolint:gochecknoglobals // static table, read-only after init.
var carbsPerKgByPhase = map[plandate.Phase]float64{
	plandate.PhaseBase:        5.0,
	plandate.PhaseBuild:       6.0,
	plandate.PhasePeak:        7.0,
	plandate.PhaseMaintenance: 5.0,
	plandate.PhaseTaper:       6.0,
	plandate.PhaseRace:        8.0,
}

const (
	proteinPerKg      = 1.8
	lowVolumeHours    = 6.0
	lowVolumeDiscount = 0.8
)

// PhaseTarget is the daily intake prescription for one phase.
type PhaseTarget struct {
	Phase    plandate.Phase `yaml:"phase"`
	CarbsG   int            `yaml:"carbs_g"`
	ProteinG int            `yaml:"protein_g"`
}

// RaceFueling is the in-race carbohydrate prescription.
type RaceFueling struct {
	DurationHours   float64 `yaml:"duration_hours"`
	CarbsPerHourG   int     `yaml:"carbs_per_hour_g"`
	FluidPerHourMl  int     `yaml:"fluid_per_hour_ml"`
	SodiumPerHourMg int     `yaml:"sodium_per_hour_mg"`
}

// Plan is the fueling document.
type Plan struct {
	WeightKg     float64       `yaml:"weight_kg"`
	PhaseTargets []PhaseTarget `yaml:"phase_targets"`
	RaceDay      RaceFueling   `yaml:"race_day"`
	Notes        []string      `yaml:"notes,omitempty"`
}

// Calculate builds the fueling plan from the profile. Race duration is
// estimated from the known-race distance when available, otherwise from a
// conservative default.
func Calculate(p *profile.Profile) Plan {
	plan := Plan{
		WeightKg: p.WeightKg,
	}

	volumeFactor := 1.0
	if p.History.CurrentWeeklyHours < lowVolumeHours {
		volumeFactor = lowVolumeDiscount
		plan.Notes = append(plan.Notes, "carb targets reduced for lower weekly volume")
	}

	for _, phase := range []plandate.Phase{
		plandate.PhaseBase, plandate.PhaseBuild, plandate.PhasePeak,
		plandate.PhaseMaintenance, plandate.PhaseTaper, plandate.PhaseRace,
	} {
		plan.PhaseTargets = append(plan.PhaseTargets, PhaseTarget{
			Phase:    phase,
			CarbsG:   int(math.Round(carbsPerKgByPhase[phase] * p.WeightKg * volumeFactor)),
			ProteinG: int(math.Round(proteinPerKg * p.WeightKg)),
		})
	}

	plan.RaceDay = raceFuelingFor(p)

	return plan
}

// raceFuelingFor scales in-race carbs to expected duration: short races
// tolerate less gut stress, long races demand trained high intake.
func raceFuelingFor(p *profile.Profile) RaceFueling {
	durationHours := 6.0
	if info, ok := profile.LookupRace(p.Race.ID); ok && p.FTPWatts > 0 {
		// Rough speed model: stronger riders cover fixed distance faster.
		speedMph := 14.0 + float64(p.FTPWatts-150)/25.0
		if speedMph < 12 {
			speedMph = 12
		}
		if speedMph > 22 {
			speedMph = 22
		}
		durationHours = info.DistanceMiles / speedMph
	}

	fueling := RaceFueling{
		DurationHours:   math.Round(durationHours*10) / 10,
		FluidPerHourMl:  700,
		SodiumPerHourMg: 600,
	}
	switch {
	case durationHours < 1.5:
		fueling.CarbsPerHourG = 45
	case durationHours < 3:
		fueling.CarbsPerHourG = 70
	case durationHours < 6:
		fueling.CarbsPerHourG = 90
	default:
		fueling.CarbsPerHourG = 100
	}
	return fueling
}
