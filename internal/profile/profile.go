// Package profile defines the normalized athlete document produced from the
// intake questionnaire and consumed by every later pipeline stage.
package profile

import (
	"time"
)

// Availability describes how usable a weekday is for training.
type Availability string

const (
	Available   Availability = "available"
	Limited     Availability = "limited"
	Unavailable Availability = "unavailable"
	RestDay     Availability = "rest"
)

// ValidAvailabilities contains all valid availability values.
var ValidAvailabilities = map[Availability]bool{
	Available:   true,
	Limited:     true,
	Unavailable: true,
	RestDay:     true,
}

// Slot is a time-of-day training window.
type Slot string

const (
	SlotAM Slot = "am"
	SlotPM Slot = "pm"
)

// Level models weakly-specified intake answers like stress or recovery
// capacity. Unknown is a first-class value so scoring has total coverage.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
	LevelUnknown  Level = "unknown"
)

// ParseLevel converts a free-text intake answer into a Level.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelLow, LevelModerate, LevelHigh, LevelVeryHigh:
		return Level(s)
	case LevelUnknown:
		return LevelUnknown
	default:
		return LevelUnknown
	}
}

// DayPlan is the athlete's declared pattern for one weekday.
type DayPlan struct {
	Status     Availability `yaml:"status" validate:"required"`
	Slots      []Slot       `yaml:"slots,omitempty" validate:"dive,oneof=am pm"`
	MaxMinutes int          `yaml:"max_minutes" validate:"min=0,max=720"`
	KeyOK      bool         `yaml:"key_ok"`
	LongDay    bool         `yaml:"long_day"`
}

// WeekPattern holds the seven weekday plans, Monday first.
type WeekPattern [7]DayPlan

// Weekday abbreviations in plan order, Monday first.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RaceTarget identifies the A race the plan builds towards.
type RaceTarget struct {
	Name string    `yaml:"name" validate:"required"`
	ID   string    `yaml:"id"`
	Date time.Time `yaml:"date" validate:"required"`
}

// BEvent is a secondary race inside the plan window.
type BEvent struct {
	Name string    `yaml:"name"`
	Date time.Time `yaml:"date" validate:"required"`
}

// ScheduleConstraints are hard calendar constraints from the intake.
type ScheduleConstraints struct {
	PreferredLongDay string     `yaml:"preferred_long_day,omitempty"`
	StrengthOnlyDays []string   `yaml:"strength_only_days,omitempty"`
	HeavyTrainingEnd *time.Time `yaml:"heavy_training_end,omitempty"`
	PreferredStart   *time.Time `yaml:"preferred_start,omitempty"`
}

// TrainingHistory summarizes the athlete's background.
type TrainingHistory struct {
	YearsStructured     float64 `yaml:"years_structured" validate:"min=0,max=60"`
	HighestWeeklyHours  float64 `yaml:"highest_weekly_hours" validate:"min=0,max=50"`
	CurrentWeeklyHours  float64 `yaml:"current_weekly_hours" validate:"min=0,max=50"`
	StrengthBackground  bool    `yaml:"strength_background"`
	IndoorTrainingShare float64 `yaml:"indoor_training_share" validate:"min=0,max=1"`
}

// RecentState captures where the athlete is right now.
type RecentState struct {
	CurrentPhase      string `yaml:"current_phase,omitempty"`
	DaysSinceRide     int    `yaml:"days_since_ride" validate:"min=0"`
	ComingOffInjury   bool   `yaml:"coming_off_injury"`
	TravelsFrequently bool   `yaml:"travels_frequently"`
	VariableSchedule  bool   `yaml:"variable_schedule"`
}

// HealthFactors are the recovery-relevant intake answers.
type HealthFactors struct {
	SleepHours       float64 `yaml:"sleep_hours" validate:"min=0,max=14"`
	StressLevel      Level   `yaml:"stress_level"`
	RecoveryCapacity Level   `yaml:"recovery_capacity"`
}

// Injury describes one reported injury.
type Injury struct {
	Area            string   `yaml:"area" validate:"required"`
	Severity        Level    `yaml:"severity"`
	AvoidExercises  []string `yaml:"avoid_exercises,omitempty"`
	AffectsCycling  bool     `yaml:"affects_cycling"`
	AffectsStrength bool     `yaml:"affects_strength"`
}

// MethodologyPreferences records what training systems worked before.
type MethodologyPreferences struct {
	PastSuccesses []string `yaml:"past_successes,omitempty"`
	PastFailures  []string `yaml:"past_failures,omitempty"`
}

// Profile is the normalized athlete document.
type Profile struct {
	AthleteID   string                 `yaml:"athlete_id" validate:"required,max=64"`
	Name        string                 `yaml:"name" validate:"required"`
	Email       string                 `yaml:"email" validate:"required,email"`
	Age         int                    `yaml:"age" validate:"min=0,max=100"`
	WeightKg    float64                `yaml:"weight_kg" validate:"required,min=30,max=200"`
	FTPWatts    int                    `yaml:"ftp_watts" validate:"required,min=50,max=500"`
	GoalType    string                 `yaml:"goal_type,omitempty"`
	Race        RaceTarget             `yaml:"race"`
	BEvents     []BEvent               `yaml:"b_events,omitempty"`
	Week        WeekPattern            `yaml:"week"`
	Constraints ScheduleConstraints    `yaml:"constraints"`
	History     TrainingHistory        `yaml:"history"`
	Recent      RecentState            `yaml:"recent"`
	Health      HealthFactors          `yaml:"health"`
	Injuries    []Injury               `yaml:"injuries,omitempty"`
	Limitations []string               `yaml:"limitations,omitempty"`
	Equipment   []string               `yaml:"equipment,omitempty"`
	Preferences MethodologyPreferences `yaml:"preferences"`
}

// KeyOKDays returns the indices (Monday=0) of days flagged eligible for key
// sessions, ordered by descending available minutes.
func (p *Profile) KeyOKDays() []int {
	var days []int
	for i, d := range p.Week {
		if d.KeyOK && d.Status != Unavailable && d.Status != RestDay {
			days = append(days, i)
		}
	}
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && p.Week[days[j]].MaxMinutes > p.Week[days[j-1]].MaxMinutes; j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

// TrainableMinutesPerWeek sums the declared daily maximums.
func (p *Profile) TrainableMinutesPerWeek() int {
	total := 0
	for _, d := range p.Week {
		if d.Status == Available || d.Status == Limited {
			total += d.MaxMinutes
		}
	}
	return total
}
