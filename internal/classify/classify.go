// Package classify derives the athlete's capability classification from the
// normalized profile: tier, plan length, strength volume, equipment tier,
// exclusions, candidate days, and risk factors.
package classify

import (
	"slices"
	"time"

	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
)

// Tier is the athlete-capability classification.
type Tier string

const (
	TierAyahuasca Tier = "ayahuasca"
	TierFinisher  Tier = "finisher"
	TierCompete   Tier = "compete"
	TierPodium    Tier = "podium"
)

// EquipmentTier coarsely classifies the available equipment.
type EquipmentTier string

const (
	EquipmentMinimal  EquipmentTier = "minimal"
	EquipmentModerate EquipmentTier = "moderate"
	EquipmentFull     EquipmentTier = "full"
)

// Risk factors surfaced to methodology selection and the guide.
const (
	RiskLowSleep          = "low_sleep"
	RiskHighStress        = "high_stress"
	RiskReturningInjury   = "returning_from_injury"
	RiskNewToStructure    = "new_to_structured_training"
	RiskDetrained         = "extended_time_off_bike"
	RiskOvercommitted     = "hours_above_history"
)

// Weekly-hours boundaries between tiers.
const (
	finisherHours = 5.0
	competeHours  = 8.0
	podiumHours   = 12.0
)

const (
	minPlanWeeks = 6
	maxPlanWeeks = 24
)

// Classification is the derived athlete document.
type Classification struct {
	Tier             Tier           `yaml:"tier"`
	PlanWeeks        int            `yaml:"plan_weeks"`
	StartingPhase    plandate.Phase `yaml:"starting_phase"`
	StrengthSessions int            `yaml:"strength_sessions"`
	EquipmentTier    EquipmentTier  `yaml:"equipment_tier"`
	Exclusions       []string       `yaml:"exclusions,omitempty"`
	KeyDays          []int          `yaml:"key_days"`
	StrengthDays     []int          `yaml:"strength_days,omitempty"`
	RiskFactors      []string       `yaml:"risk_factors,omitempty"`
}

// Derive computes the classification. now is injected for reproducibility.
func Derive(p *profile.Profile, now time.Time) Classification {
	c := Classification{
		Tier:             tierFor(p),
		PlanWeeks:        planWeeksFor(p, now),
		StartingPhase:    startingPhaseFor(p),
		StrengthSessions: strengthSessionsFor(p),
		EquipmentTier:    equipmentTierFor(p),
		Exclusions:       exclusionsFor(p),
		KeyDays:          p.KeyOKDays(),
		StrengthDays:     strengthDaysFor(p),
		RiskFactors:      riskFactorsFor(p),
	}
	return c
}

// tierFor classifies by current weekly hours, with history modifiers: a deep
// training history earns the benefit of the doubt at a boundary, a thin one
// pulls the tier down.
func tierFor(p *profile.Profile) Tier {
	hours := p.History.CurrentWeeklyHours
	if p.History.YearsStructured >= 3 && p.History.HighestWeeklyHours > hours {
		hours += 1
	}
	if p.History.YearsStructured < 1 {
		hours -= 1
	}
	switch {
	case hours >= podiumHours:
		return TierPodium
	case hours >= competeHours:
		return TierCompete
	case hours >= finisherHours:
		return TierFinisher
	default:
		return TierAyahuasca
	}
}

func planWeeksFor(p *profile.Profile, now time.Time) int {
	if p.Race.Date.IsZero() {
		return minPlanWeeks
	}
	days := int(p.Race.Date.Sub(now).Hours() / 24)
	weeks := days / 7
	if weeks < minPlanWeeks {
		return minPlanWeeks
	}
	if weeks > maxPlanWeeks {
		return maxPlanWeeks
	}
	return weeks
}

func startingPhaseFor(p *profile.Profile) plandate.Phase {
	switch p.Recent.CurrentPhase {
	case "build":
		return plandate.PhaseBuild
	case "peak":
		return plandate.PhasePeak
	default:
		return plandate.PhaseBase
	}
}

func strengthSessionsFor(p *profile.Profile) int {
	sessions := 2
	if !p.History.StrengthBackground {
		sessions = 1
	}
	if p.History.CurrentWeeklyHours < finisherHours {
		sessions++
	}
	for _, injury := range p.Injuries {
		if injury.AffectsStrength && injury.Severity == profile.LevelHigh {
			sessions = 0
		}
	}
	if sessions > 3 {
		sessions = 3
	}
	return sessions
}

func equipmentTierFor(p *profile.Profile) EquipmentTier {
	has := func(name string) bool {
		return slices.Contains(p.Equipment, name)
	}
	switch {
	case has("power_meter") && has("smart_trainer") && (has("barbell") || has("squat_rack")):
		return EquipmentFull
	case has("power_meter") || has("smart_trainer"):
		return EquipmentModerate
	default:
		return EquipmentMinimal
	}
}

func exclusionsFor(p *profile.Profile) []string {
	var exclusions []string
	for _, injury := range p.Injuries {
		exclusions = append(exclusions, injury.AvoidExercises...)
	}
	exclusions = append(exclusions, p.Limitations...)
	slices.Sort(exclusions)
	return slices.Compact(exclusions)
}

func strengthDaysFor(p *profile.Profile) []int {
	var days []int
	for i, d := range p.Week {
		if d.Status == profile.Unavailable {
			continue
		}
		if slices.Contains(p.Constraints.StrengthOnlyDays, profile.Weekdays[i]) {
			days = append(days, i)
		}
	}
	if len(days) > 0 {
		return days
	}
	// Without explicit strength-only days, prefer non-key weekdays.
	for i, d := range p.Week {
		if d.Status == profile.Available && !d.KeyOK && !d.LongDay {
			days = append(days, i)
		}
	}
	return days
}

func riskFactorsFor(p *profile.Profile) []string {
	var risks []string
	if p.Health.SleepHours > 0 && p.Health.SleepHours < 7 {
		risks = append(risks, RiskLowSleep)
	}
	if p.Health.StressLevel == profile.LevelHigh || p.Health.StressLevel == profile.LevelVeryHigh {
		risks = append(risks, RiskHighStress)
	}
	if p.Recent.ComingOffInjury {
		risks = append(risks, RiskReturningInjury)
	}
	if p.History.YearsStructured < 1 {
		risks = append(risks, RiskNewToStructure)
	}
	if p.Recent.DaysSinceRide > 14 {
		risks = append(risks, RiskDetrained)
	}
	if p.History.CurrentWeeklyHours > p.History.HighestWeeklyHours && p.History.HighestWeeklyHours > 0 {
		risks = append(risks, RiskOvercommitted)
	}
	return risks
}
