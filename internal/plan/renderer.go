package plan

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raceprep/raceprep/internal/archetype"
	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
	"github.com/raceprep/raceprep/internal/zwo"
)

// Workout is one rendered session, ready to be written to disk.
type Workout struct {
	Week     int
	Date     time.Time
	Type     Type
	Filename string
	Minutes  int
	Document *zwo.Document
}

// Result carries everything the renderer produced for one plan.
type Result struct {
	Workouts   []Workout
	Structures []WeekStructure
	Warnings   []string
}

// strengthLibrary is the five-workout rotation for strength days.
var strengthLibrary = [5]string{
	"Foundation-A",
	"Foundation-B",
	"Power",
	"Cycling-Specific",
	"Mobility",
}

// Default template minutes per type; the scaler treats these as floors.
var templateMinutes = map[Type]int{
	TypeRecovery:  30,
	TypeEasy:      45,
	TypeEndurance: 60,
	TypeTempo:     60,
	TypeSweetSpot: 60,
	TypeGSpot:     60,
	TypeThreshold: 60,
	TypeVO2max:    60,
	TypeAnaerobic: 45,
	TypeSprints:   45,
	TypeOverUnder: 60,
	TypeBlended:   60,
	TypeLongRide:  120,
	TypeRaceSim:   90,
	TypeOpeners:   45,
	TypeFTPTest:   60,
	TypeShakeout:  30,
}

// Category choices per phase and bucket; weeks within a phase cycle
// through the list.
var z4Categories = map[plandate.Phase][]string{
	plandate.PhaseBase:        {"threshold"},
	plandate.PhaseBuild:       {"vo2max", "threshold", "over_under"},
	plandate.PhasePeak:        {"vo2max", "anaerobic", "race_sim"},
	plandate.PhaseMaintenance: {"threshold"},
	plandate.PhaseTaper:       {"openers"},
}

var z3Categories = map[plandate.Phase][]string{
	plandate.PhaseBase:        {"sweet_spot", "tempo"},
	plandate.PhaseBuild:       {"sweet_spot", "g_spot"},
	plandate.PhasePeak:        {"tempo"},
	plandate.PhaseMaintenance: {"sweet_spot"},
	plandate.PhaseTaper:       {"tempo"},
}

// z4Pool is the set of categories eligible to serve a Z4-Z5 day when a
// methodology names its own key categories.
var z4Pool = map[string]bool{
	"threshold": true, "vo2max": true, "over_under": true, "anaerobic": true,
	"sprints": true, "race_sim": true, "mixed_climbing": true, "tired_vo2": true,
	"chaos": true, "climbing": true, "sfr": true,
}

// RenderPlan produces every workout of the plan: one file per training
// day plus strength sessions, with FTP tests injected per the testing
// protocol. The allocation is deterministic, so re-rendering the same
// inputs yields byte-identical documents.
func RenderPlan(p *profile.Profile, c classify.Classification, m methodology.Methodology,
	datePlan *plandate.Plan, reg *archetype.Registry, author string) (*Result, error) {

	res := &Result{}
	alloc := &allocator{target: m.Targets}

	baseSpan, lastBaseWeek := basePhaseSpan(datePlan)
	ftpDay := firstKeyDay(p)

	phaseRun := map[plandate.Phase]int{}
	for _, week := range datePlan.Weeks {
		weekInPhase := phaseRun[week.Phase]
		phaseRun[week.Phase]++

		ws, buckets := buildWeek(p, c, week, alloc)
		res.Structures = append(res.Structures, ws)

		strengthIdx := 0
		for d := range 7 {
			day := p.Week[d]
			planDay := week.Days[d]
			slots := ws.Days[d]

			if slots.Morning == RoleStrength || slots.Evening == RoleStrength {
				res.Workouts = append(res.Workouts, strengthWorkout(week.Number, planDay.Date, strengthIdx, author))
				strengthIdx++
			}

			ride := slots.Ride()
			if ride == RoleNone {
				continue
			}

			if planDay.IsRaceDay {
				res.Workouts = append(res.Workouts, raceDayWorkout(week.Number, planDay.Date, p, author))
				continue
			}

			workoutType, category := chooseType(m, week, ride, buckets[d], weekInPhase)
			if ftpDay == d && (week.Number == 1 || (baseSpan >= 3 && week.Number == lastBaseWeek)) {
				workoutType, category = TypeFTPTest, "ftp_test"
			}

			slotMinutes := day.MaxMinutes
			if slotMinutes == 0 {
				slotMinutes = 60
			}
			tmpl := Scale(Template{Type: workoutType, Minutes: templateMinutes[workoutType]}, slotMinutes, week.Phase)

			w, err := renderDay(reg, m, c, week, planDay.Date, workoutType, category, tmpl.Minutes, weekInPhase, author)
			if err != nil {
				return nil, err
			}
			if w.Minutes > slotMinutes {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s runs %d min against a %d min window", w.Filename, w.Minutes, slotMinutes))
			}
			res.Workouts = append(res.Workouts, w)
		}
	}
	return res, nil
}

// chooseType resolves a day's workout type and archetype category from
// its role and intensity bucket.
func chooseType(m methodology.Methodology, week plandate.Week, ride Role, b bucket, weekInPhase int) (Type, string) {
	if week.IsRaceWeek {
		if b == bucketZ4Z5 {
			return TypeOpeners, "openers"
		}
		return TypeShakeout, "shakeout"
	}
	switch ride {
	case RoleLongRide:
		return TypeLongRide, ""
	case RoleRecovery:
		return TypeRecovery, ""
	case RoleEasyRide:
		return TypeEndurance, ""
	}
	// Key cardio: pick a category from the phase table, letting the
	// methodology's key categories take over where they fit the bucket.
	var list []string
	switch b {
	case bucketZ4Z5:
		list = z4Categories[week.Phase]
		if week.Phase == plandate.PhaseBuild || week.Phase == plandate.PhasePeak {
			if own := filterCategories(m.KeyCategories, z4Pool); len(own) > 0 {
				list = own
			}
		}
	default:
		list = z3Categories[week.Phase]
	}
	if len(list) == 0 {
		list = []string{"threshold"}
	}
	category := list[weekInPhase%len(list)]
	return TypeForCategory(category), category
}

func filterCategories(categories []string, pool map[string]bool) []string {
	var out []string
	for _, c := range categories {
		if pool[c] {
			out = append(out, c)
		}
	}
	return out
}

// renderDay builds the workout document for one day.
func renderDay(reg *archetype.Registry, m methodology.Methodology, c classify.Classification,
	week plandate.Week, date time.Time, workoutType Type, category string,
	minutes, weekInPhase int, author string) (Workout, error) {

	var blocks []zwo.Block
	description := string(workoutType)

	if category != "" {
		offset := m.CategoryOffsets[category]
		a, ok := reg.Select(category, offset, week.Number-1)
		if !ok {
			return Workout{}, errors.New("no archetype for category",
				slog.String("category", category))
		}
		level := levelFor(c.Tier, weekInPhase)
		rendered, err := archetype.Render(a, level, week.Number-1, minutes)
		if err != nil {
			return Workout{}, err
		}
		blocks = rendered
		description = fmt.Sprintf("%s (L%d): %s", a.Name, level, a.Structure)
	} else {
		blocks = steadyBlocks(minutes, steadyPower(workoutType))
	}

	filename := zwo.Filename(week.Number, date, string(workoutType))
	doc := &zwo.Document{
		Author:      author,
		Name:        strings.TrimSuffix(filename, ".xml"),
		Description: description,
		Blocks:      blocks,
	}
	return Workout{
		Week:     week.Number,
		Date:     date,
		Type:     workoutType,
		Filename: filename,
		Minutes:  doc.TotalSeconds() / 60,
		Document: doc,
	}, nil
}

// levelFor maps tier and progress through the phase onto a difficulty
// level.
func levelFor(tier classify.Tier, weekInPhase int) int {
	level := 1
	switch tier {
	case classify.TierFinisher:
		level = 2
	case classify.TierCompete:
		level = 3
	case classify.TierPodium:
		level = 4
	}
	level += weekInPhase / 3
	if level > archetype.Levels {
		level = archetype.Levels
	}
	return level
}

func steadyPower(t Type) float64 {
	switch t {
	case TypeRecovery:
		return 0.45
	case TypeEasy:
		return 0.55
	case TypeShakeout:
		return 0.5
	default:
		return 0.65
	}
}

// steadyBlocks composes the inline warmup-steady-cooldown shape used for
// non-interval days.
func steadyBlocks(minutes int, power float64) []zwo.Block {
	total := minutes * 60
	warm := total * 12 / 100
	if warm < 300 {
		warm = 300
	}
	cool := warm
	main := total - warm - cool
	if main < 300 {
		main = 300
	}
	return []zwo.Block{
		zwo.Warmup{Duration: warm, PowerLow: 0.4, PowerHigh: power},
		zwo.SteadyState{Duration: main, Power: power},
		zwo.Cooldown{Duration: cool, PowerLow: power, PowerHigh: 0.4},
	}
}

func strengthWorkout(week int, date time.Time, sessionIdx int, author string) Workout {
	routine := strengthLibrary[(week-1+sessionIdx)%len(strengthLibrary)]
	filename := zwo.Filename(week, date, string(TypeStrength))
	doc := &zwo.Document{
		Author:      author,
		Name:        strings.TrimSuffix(filename, ".xml"),
		Description: "Strength: " + routine,
		Blocks: []zwo.Block{
			zwo.FreeRide{Duration: 45 * 60, TextEvents: []zwo.TextEvent{
				{OffsetSeconds: 0, Message: "Strength session: " + routine},
			}},
		},
	}
	return Workout{
		Week: week, Date: date, Type: TypeStrength,
		Filename: filename, Minutes: 45, Document: doc,
	}
}

func raceDayWorkout(week int, date time.Time, p *profile.Profile, author string) Workout {
	filename := zwo.Filename(week, date, string(TypeRaceDay))
	doc := &zwo.Document{
		Author:      author,
		Name:        strings.TrimSuffix(filename, ".xml"),
		Description: "Race day: " + p.Race.Name,
		Blocks: []zwo.Block{
			zwo.FreeRide{Duration: 4 * 3600, TextEvents: []zwo.TextEvent{
				{OffsetSeconds: 0, Message: "Race day. Trust the training."},
			}},
		},
	}
	return Workout{
		Week: week, Date: date, Type: TypeRaceDay,
		Filename: filename, Minutes: 240, Document: doc,
	}
}

// basePhaseSpan reports how many weeks the base phase runs and the
// number of its final week.
func basePhaseSpan(datePlan *plandate.Plan) (span, lastWeek int) {
	for _, week := range datePlan.Weeks {
		if week.Phase == plandate.PhaseBase {
			span++
			lastWeek = week.Number
		}
	}
	return span, lastWeek
}

// firstKeyDay is the FTP-test day: the key-eligible day with the most
// available time.
func firstKeyDay(p *profile.Profile) int {
	days := p.KeyOKDays()
	if len(days) == 0 {
		return -1
	}
	return days[0]
}
