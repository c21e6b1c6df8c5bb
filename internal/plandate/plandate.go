// Package plandate turns a race date into a fully dated training plan
// skeleton: consecutive Monday-to-Sunday weeks, phase assignments, and
// per-day metadata such as workout filename prefixes and B-race overlays.
package plandate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/raceprep/raceprep/internal/errors"
)

// Phase labels a training week and determines which workouts are eligible.
type Phase string

const (
	PhaseBase        Phase = "base"
	PhaseBuild       Phase = "build"
	PhasePeak        Phase = "peak"
	PhaseMaintenance Phase = "maintenance"
	PhaseTaper       Phase = "taper"
	PhaseRace        Phase = "race"
)

// Plan length bounds. Below minRecommendedWeeks generation proceeds with a
// warning; outside the hard bounds the input is rejected.
const (
	MinPlanWeeks            = 4
	MaxPlanWeeks            = 52
	MinRecommendedPlanWeeks = 6
)

const (
	daysPerWeek   = 7
	buildProgress = 0.5
	peakProgress  = 0.75
)

var ErrPlanWeeksOutOfBounds = errors.NewSentinel("plan weeks out of bounds")

// Day is a single calendar day inside a training week.
type Day struct {
	Weekday       string    `yaml:"weekday"`
	Date          time.Time `yaml:"date"`
	Label         string    `yaml:"label"`
	FilePrefix    string    `yaml:"file_prefix"`
	IsRaceDay     bool      `yaml:"is_race_day,omitempty"`
	IsBRaceDay    bool      `yaml:"is_b_race_day,omitempty"`
	IsBRaceOpener bool      `yaml:"is_b_race_opener,omitempty"`
	IsBRaceEasy   bool      `yaml:"is_b_race_easy,omitempty"`
}

// Week is one Monday-to-Sunday training week.
type Week struct {
	Number     int              `yaml:"number"`
	Phase      Phase            `yaml:"phase"`
	Monday     time.Time        `yaml:"monday"`
	Sunday     time.Time        `yaml:"sunday"`
	IsRaceWeek bool             `yaml:"is_race_week,omitempty"`
	BRaceDates []time.Time      `yaml:"b_race,omitempty"`
	Days       [daysPerWeek]Day `yaml:"days"`
}

// Plan is the dated skeleton of the whole training block.
type Plan struct {
	RaceDate time.Time `yaml:"race_date"`
	Weeks    []Week    `yaml:"weeks"`
	Warnings []string  `yaml:"warnings,omitempty"`
}

// Input collects everything the calculator needs. Today is injected so tests
// are reproducible; callers pass time.Now() truncated to a date.
type Input struct {
	RaceDate         time.Time
	PlanWeeks        int
	HeavyTrainingEnd *time.Time
	PreferredStart   *time.Time
	BEvents          []time.Time
	Today            time.Time
}

// Calculate assigns dates and phases backwards from the race date.
func Calculate(in Input) (*Plan, error) {
	if in.PlanWeeks < MinPlanWeeks || in.PlanWeeks > MaxPlanWeeks {
		return nil, errors.Wrap(ErrPlanWeeksOutOfBounds, "calculate plan dates",
			slog.Int("plan_weeks", in.PlanWeeks))
	}

	var warnings []string

	raceDate := normalizeDate(in.RaceDate)
	raceWeekMonday := mondayOf(raceDate)
	planWeeks := in.PlanWeeks
	week1Monday := raceWeekMonday.AddDate(0, 0, -daysPerWeek*(planWeeks-1))

	// A later preferred start shrinks the plan instead of moving the race.
	if in.PreferredStart != nil {
		preferred := mondayOf(normalizeDate(*in.PreferredStart))
		if preferred.After(week1Monday) {
			fitWeeks := int(raceWeekMonday.Sub(preferred).Hours()/24/daysPerWeek) + 1
			if fitWeeks >= MinRecommendedPlanWeeks {
				planWeeks = fitWeeks
				week1Monday = preferred
			} else {
				warnings = append(warnings,
					fmt.Sprintf("preferred start %s leaves fewer than %d weeks; keeping full plan",
						preferred.Format(time.DateOnly), MinRecommendedPlanWeeks))
			}
		}
	}

	// Roll a past start forward to the next Monday and shorten the plan.
	if !in.Today.IsZero() {
		today := normalizeDate(in.Today)
		if week1Monday.Before(today) {
			next := nextMonday(today)
			if next.After(raceWeekMonday) {
				next = raceWeekMonday
			}
			planWeeks = int(raceWeekMonday.Sub(next).Hours()/24/daysPerWeek) + 1
			week1Monday = next
			warnings = append(warnings, fmt.Sprintf("plan start was in the past; starting %s with %d weeks",
				week1Monday.Format(time.DateOnly), planWeeks))
		}
	}

	if planWeeks < MinRecommendedPlanWeeks {
		warnings = append(warnings,
			fmt.Sprintf("plan is only %d weeks; %d or more is recommended", planWeeks, MinRecommendedPlanWeeks))
	}

	plan := &Plan{
		RaceDate: raceDate,
		Weeks:    make([]Week, 0, planWeeks),
		Warnings: warnings,
	}
	for w := 1; w <= planWeeks; w++ {
		monday := week1Monday.AddDate(0, 0, daysPerWeek*(w-1))
		week := Week{
			Number:     w,
			Phase:      phaseFor(w, planWeeks, monday, in.HeavyTrainingEnd),
			Monday:     monday,
			Sunday:     monday.AddDate(0, 0, daysPerWeek-1),
			IsRaceWeek: w == planWeeks,
		}
		for d := range daysPerWeek {
			date := monday.AddDate(0, 0, d)
			week.Days[d] = Day{
				Weekday:    date.Format("Mon"),
				Date:       date,
				Label:      dayLabel(date),
				FilePrefix: fmt.Sprintf("W%02d_%s_%s", w, date.Format("Mon"), fileDate(date)),
				IsRaceDay:  date.Equal(raceDate),
			}
		}
		plan.Weeks = append(plan.Weeks, week)
	}

	overlayBEvents(plan, in.BEvents)

	return plan, nil
}

// phaseFor assigns the phase by progress through the plan. The final two
// weeks are always taper then race; a heavy-training-end date forces
// maintenance from its Monday onwards.
func phaseFor(week, planWeeks int, monday time.Time, heavyTrainingEnd *time.Time) Phase {
	switch {
	case week == planWeeks:
		return PhaseRace
	case week >= planWeeks-1:
		return PhaseTaper
	}
	if heavyTrainingEnd != nil && !monday.Before(normalizeDate(*heavyTrainingEnd)) {
		return PhaseMaintenance
	}
	progress := float64(week-1) / float64(planWeeks)
	switch {
	case progress >= peakProgress:
		return PhasePeak
	case progress >= buildProgress:
		return PhaseBuild
	default:
		return PhaseBase
	}
}

// overlayBEvents marks B-race days and their opener/easy neighbours without
// touching phases.
func overlayBEvents(plan *Plan, events []time.Time) {
	for _, event := range events {
		date := normalizeDate(event)
		for wi := range plan.Weeks {
			week := &plan.Weeks[wi]
			if date.Before(week.Monday) || date.After(week.Sunday) {
				continue
			}
			week.BRaceDates = append(week.BRaceDates, date)
			for di := range week.Days {
				if week.Days[di].Date.Equal(date) {
					week.Days[di].IsBRaceDay = true
				}
			}
		}
		markDay(plan, date.AddDate(0, 0, -1), func(d *Day) { d.IsBRaceOpener = true }, nil)
		easyPhases := map[Phase]bool{PhaseBuild: true, PhasePeak: true}
		markDay(plan, date.AddDate(0, 0, -2), func(d *Day) { d.IsBRaceEasy = true }, easyPhases)
	}
}

// markDay applies fn to the day with the given date. When phases is non-nil
// the mark only applies inside those phases.
func markDay(plan *Plan, date time.Time, fn func(*Day), phases map[Phase]bool) {
	for wi := range plan.Weeks {
		week := &plan.Weeks[wi]
		if date.Before(week.Monday) || date.After(week.Sunday) {
			continue
		}
		if phases != nil && !phases[week.Phase] {
			return
		}
		for di := range week.Days {
			if week.Days[di].Date.Equal(date) {
				fn(&week.Days[di])
			}
		}
	}
}

// Validate checks the structural invariants of a computed plan. Violations
// are returned as error strings; an empty slice means the plan is sound.
func (p *Plan) Validate() []string {
	var problems []string
	if len(p.Weeks) == 0 {
		return []string{"plan has no weeks"}
	}
	last := p.Weeks[len(p.Weeks)-1]
	if p.RaceDate.Before(last.Monday) || p.RaceDate.After(last.Sunday) {
		problems = append(problems, "race date is outside the final week")
	}
	if !last.IsRaceWeek {
		problems = append(problems, "final week is not marked as race week")
	}
	if !p.Weeks[0].Monday.Before(p.RaceDate) {
		problems = append(problems, "plan start is not before the race")
	}
	for i, week := range p.Weeks {
		if week.Number != i+1 {
			problems = append(problems, fmt.Sprintf("week %d has number %d", i+1, week.Number))
		}
		if i > 0 {
			prev := p.Weeks[i-1]
			if !week.Monday.Equal(prev.Sunday.AddDate(0, 0, 1)) {
				problems = append(problems, fmt.Sprintf("week %d does not start the day after week %d ends",
					week.Number, prev.Number))
			}
		}
	}
	return problems
}

// RaceWeek returns the final week of the plan.
func (p *Plan) RaceWeek() Week {
	return p.Weeks[len(p.Weeks)-1]
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % daysPerWeek
	return normalizeDate(t).AddDate(0, 0, -offset)
}

func nextMonday(t time.Time) time.Time {
	monday := mondayOf(t)
	if monday.Before(normalizeDate(t)) || monday.Equal(normalizeDate(t)) {
		if t.Weekday() == time.Monday {
			return monday
		}
		return monday.AddDate(0, 0, daysPerWeek)
	}
	return monday
}

// dayLabel renders a short human-readable date like "Apr 6".
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
}

// fileDate renders the filename date component like "Apr6" (no leading zero).
func fileDate(t time.Time) string {
	return fmt.Sprintf("%s%d", t.Format("Jan"), t.Day())
}
