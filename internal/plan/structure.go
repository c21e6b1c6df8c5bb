package plan

import (
	"time"

	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
)

// Role is the semantic assignment of one slot in the weekly structure.
type Role string

const (
	RoleNone      Role = ""
	RoleKeyCardio Role = "key_cardio"
	RoleLongRide  Role = "long_ride"
	RoleEasyRide  Role = "easy_ride"
	RoleStrength  Role = "strength"
	RoleRecovery  Role = "recovery"
	RoleRest      Role = "rest"
)

// DaySlots holds the morning and evening assignments for one day.
type DaySlots struct {
	Morning Role `yaml:"morning,omitempty"`
	Evening Role `yaml:"evening,omitempty"`
}

// Ride returns the riding role of the day, preferring the morning slot.
func (d DaySlots) Ride() Role {
	for _, role := range []Role{d.Morning, d.Evening} {
		switch role {
		case RoleKeyCardio, RoleLongRide, RoleEasyRide, RoleRecovery:
			return role
		}
	}
	return RoleNone
}

// WeekStructure is the day-by-day slot plan for one training week,
// Monday first.
type WeekStructure struct {
	Number int         `yaml:"number"`
	Days   [7]DaySlots `yaml:"days"`
}

// bucket indexes the three intensity buckets the distribution validator
// measures.
type bucket int

const (
	bucketZ1Z2 bucket = iota
	bucketZ3
	bucketZ4Z5
)

// allocator steers day-by-day bucket choices towards the methodology's
// target distribution across the whole plan. It always picks the
// eligible bucket with the largest deficit, so actual ratios track the
// targets within one workout.
type allocator struct {
	target methodology.Distribution
	counts [3]int
	total  int
}

func (a *allocator) targetFor(b bucket) float64 {
	switch b {
	case bucketZ3:
		return a.target.Z3
	case bucketZ4Z5:
		return a.target.Z4Z5
	default:
		return a.target.Z1Z2
	}
}

// next assigns the next workout's bucket. When intensity is not allowed
// the day is Z1-Z2 regardless of deficit.
func (a *allocator) next(intensityOK bool) bucket {
	chosen := bucketZ1Z2
	if intensityOK {
		best := -1.0
		for _, b := range []bucket{bucketZ1Z2, bucketZ3, bucketZ4Z5} {
			if a.targetFor(b) == 0 {
				continue
			}
			deficit := a.targetFor(b)*float64(a.total+1) - float64(a.counts[b])
			if deficit > best {
				best = deficit
				chosen = b
			}
		}
	}
	a.counts[chosen]++
	a.total++
	return chosen
}

// record counts a workout whose bucket was pinned outside next, such as
// the long ride.
func (a *allocator) record(b bucket) {
	a.counts[b]++
	a.total++
}

// BuildStructures assigns slot roles for every week of the plan. The
// same deterministic allocation drives the workout renderer, so the
// structure document and the rendered workouts always agree.
func BuildStructures(p *profile.Profile, c classify.Classification, target methodology.Distribution, datePlan *plandate.Plan) []WeekStructure {
	alloc := &allocator{target: target}
	structures := make([]WeekStructure, 0, len(datePlan.Weeks))
	for _, week := range datePlan.Weeks {
		ws, _ := buildWeek(p, c, week, alloc)
		structures = append(structures, ws)
	}
	return structures
}

// buildWeek assigns one week's roles and reports each day's intensity
// bucket. Rest and unavailable days stay empty; the long day is pinned
// to Z1-Z2; key-eligible days receive intensity from the allocator; a
// hard day forces the next day easy.
func buildWeek(p *profile.Profile, c classify.Classification, week plandate.Week, alloc *allocator) (WeekStructure, [7]bucket) {
	ws := WeekStructure{Number: week.Number}
	var buckets [7]bucket

	longDay := longDayIndex(p)
	prevHard := false
	for d := range 7 {
		day := p.Week[d]
		planDay := week.Days[d]
		if day.Status == profile.Unavailable {
			continue
		}
		if day.Status == profile.RestDay {
			ws.Days[d] = assignSlot(day, RoleRest)
			continue
		}
		if planDay.IsRaceDay {
			ws.Days[d] = assignSlot(day, RoleKeyCardio)
			buckets[d] = bucketZ4Z5
			continue
		}
		if week.IsRaceWeek {
			// Race week is fixed: openers the day before, easy spins
			// otherwise. The allocator still records the choices so the
			// measured distribution reflects them.
			if planDay.Date.AddDate(0, 0, 1).Equal(raceDayDate(week)) {
				ws.Days[d] = assignSlot(day, RoleKeyCardio)
				buckets[d] = bucketZ4Z5
				alloc.record(bucketZ4Z5)
			} else {
				ws.Days[d] = assignSlot(day, RoleEasyRide)
				buckets[d] = bucketZ1Z2
				alloc.record(bucketZ1Z2)
			}
			continue
		}
		if d == longDay && week.Phase != plandate.PhaseTaper && week.Phase != plandate.PhaseRace {
			ws.Days[d] = assignSlot(day, RoleLongRide)
			buckets[d] = bucketZ1Z2
			alloc.record(bucketZ1Z2)
			prevHard = false
			continue
		}

		intensityOK := day.KeyOK && !prevHard && !planDay.IsBRaceEasy && !planDay.IsBRaceOpener
		b := alloc.next(intensityOK)
		buckets[d] = b
		switch b {
		case bucketZ4Z5:
			ws.Days[d] = assignSlot(day, RoleKeyCardio)
		case bucketZ3:
			ws.Days[d] = assignSlot(day, RoleKeyCardio)
		default:
			if prevHard {
				ws.Days[d] = assignSlot(day, RoleRecovery)
			} else {
				ws.Days[d] = assignSlot(day, RoleEasyRide)
			}
		}
		prevHard = b == bucketZ4Z5
	}

	placeStrength(c, week, &ws, buckets)
	return ws, buckets
}

// assignSlot puts a riding role in the athlete's preferred slot for the
// day, defaulting to morning.
func assignSlot(day profile.DayPlan, role Role) DaySlots {
	if len(day.Slots) > 0 && day.Slots[0] == profile.SlotPM {
		return DaySlots{Evening: role}
	}
	return DaySlots{Morning: role}
}

func raceDayDate(week plandate.Week) time.Time {
	for _, day := range week.Days {
		if day.IsRaceDay {
			return day.Date
		}
	}
	return time.Time{}
}

func longDayIndex(p *profile.Profile) int {
	for i, d := range p.Week {
		if d.LongDay && d.Status != profile.Unavailable && d.Status != profile.RestDay {
			return i
		}
	}
	for i, name := range profile.Weekdays {
		if name == p.Constraints.PreferredLongDay {
			return i
		}
	}
	return -1
}

// placeStrength schedules the classified number of strength sessions. A
// strength session never lands within the 48 hours before a key-cardio
// day; the only allowed same-day pairing is strength in the morning with
// the key session in the evening. Candidate days are tried first, then
// any day that satisfies the rule.
func placeStrength(c classify.Classification, week plandate.Week, ws *WeekStructure, buckets [7]bucket) {
	if c.StrengthSessions == 0 {
		return
	}
	switch week.Phase {
	case plandate.PhaseTaper, plandate.PhaseRace:
		return
	}

	keyCardioAt := func(d int) bool {
		if d < 0 || d > 6 {
			return false
		}
		return ws.Days[d].Morning == RoleKeyCardio || ws.Days[d].Evening == RoleKeyCardio
	}

	placed := 0
	tryDay := func(d int) {
		if placed == c.StrengthSessions {
			return
		}
		if keyCardioAt(d+1) || keyCardioAt(d+2) {
			return
		}
		slots := &ws.Days[d]
		if slots.Morning == RoleNone && slots.Evening == RoleNone {
			// Unavailable day.
			return
		}
		if slots.Morning == RoleRest || slots.Evening == RoleRest ||
			slots.Morning == RoleStrength || slots.Evening == RoleStrength {
			return
		}
		switch {
		case slots.Morning == RoleNone && slots.Evening != RoleKeyCardio:
			slots.Morning = RoleStrength
		case slots.Morning == RoleNone && slots.Evening == RoleKeyCardio && buckets[d] != bucketZ4Z5:
			// Same-day pairing: strength in the morning, key in the evening.
			slots.Morning = RoleStrength
		case slots.Evening == RoleNone && slots.Morning != RoleKeyCardio:
			slots.Evening = RoleStrength
		default:
			return
		}
		placed++
	}

	for _, d := range c.StrengthDays {
		tryDay(d)
	}
	for d := range 7 {
		tryDay(d)
	}
}
