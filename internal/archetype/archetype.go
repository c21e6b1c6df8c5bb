// Package archetype holds the parameterized interval-workout catalog.
//
// Each archetype describes a main set in one of four shapes and scales to
// six difficulty levels. Rendering wraps the main set in a warmup and
// cooldown and emits workout blocks.
package archetype

import (
	"hash/fnv"
	"log/slog"
	"math/rand"
	"strconv"

	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/zwo"
)

const (
	// Levels is the number of difficulty levels each archetype exposes.
	Levels = 6

	// MinPower and MaxPower bound every prescribed power fraction.
	MinPower = 0.3
	MaxPower = 2.0

	// MinAveragePower and MaxAveragePower bound the average power of a
	// full rendered workout.
	MinAveragePower = 0.3
	MaxAveragePower = 1.2

	// MaxIntervalMinutes caps the main set of any interval workout.
	MaxIntervalMinutes = 120

	minBlockSeconds    = 5
	minCooldownSeconds = 300
	maxCooldownSeconds = 1200
	fillerPower        = 0.65
)

// IntervalSet is a repeated on/off effort.
type IntervalSet struct {
	Repeats    int
	OnSeconds  int
	OnPower    float64
	OffSeconds int
	OffPower   float64
}

func (s IntervalSet) seconds() int {
	return s.Repeats * (s.OnSeconds + s.OffSeconds)
}

// SegmentKind discriminates the entries of a segment-shaped archetype.
type SegmentKind int

const (
	SegmentSteady SegmentKind = iota
	SegmentIntervals
	SegmentFreeride
	SegmentRamp
)

// Segment is one entry in a segment-shaped main set.
type Segment struct {
	Kind      SegmentKind
	Seconds   int
	Power     float64
	PowerHigh float64     // ramp only
	Set       IntervalSet // intervals only
}

func (s Segment) seconds() int {
	if s.Kind == SegmentIntervals {
		return s.Set.seconds()
	}
	return s.Seconds
}

// Shape discriminates how an archetype stores its main set.
type Shape int

const (
	// ShapeIntervals is a single repeated on/off set.
	ShapeIntervals Shape = iota
	// ShapeSegments is an ordered sequence of segments.
	ShapeSegments
	// ShapeSingle is one sustained effort.
	ShapeSingle
	// ShapeTiredVO2 is an endurance lead-in followed by intervals,
	// simulating late-race efforts on tired legs.
	ShapeTiredVO2
	// ShapeChaos draws its interval sets from a seeded generator so
	// repeated renders of the same variation are identical.
	ShapeChaos
)

// Progression describes how levels 2..6 modify the level-1 main set.
type Progression struct {
	RepeatStep   int     // repeats added per level
	PowerStep    float64 // power fraction added per level
	DurationStep int     // seconds added per level to sustained efforts
}

// Archetype is one catalog entry.
type Archetype struct {
	Name      string
	Category  string
	Structure string
	Cues      []string
	Cadence   string
	Position  string

	Shape     Shape
	Intervals IntervalSet // ShapeIntervals; interval half of ShapeTiredVO2
	Segments  []Segment   // ShapeSegments
	Single    Segment     // ShapeSingle
	TiredBase Segment     // ShapeTiredVO2 lead-in

	Progression Progression
}

// atLevel returns a copy with the main set scaled to the given level.
// Level 1 is the base definition.
func (a Archetype) atLevel(level int) Archetype {
	steps := level - 1
	if steps <= 0 {
		return a
	}
	bump := func(set IntervalSet) IntervalSet {
		set.Repeats += a.Progression.RepeatStep * steps
		set.OnPower += a.Progression.PowerStep * float64(steps)
		return set
	}
	switch a.Shape {
	case ShapeIntervals, ShapeChaos:
		a.Intervals = bump(a.Intervals)
	case ShapeTiredVO2:
		a.Intervals = bump(a.Intervals)
	case ShapeSingle:
		a.Single.Seconds += a.Progression.DurationStep * steps
		a.Single.Power += a.Progression.PowerStep * float64(steps)
	case ShapeSegments:
		scaled := make([]Segment, len(a.Segments))
		for i, seg := range a.Segments {
			switch seg.Kind {
			case SegmentIntervals:
				seg.Set = bump(seg.Set)
			case SegmentSteady:
				seg.Seconds += a.Progression.DurationStep * steps
				seg.Power += a.Progression.PowerStep * float64(steps)
			case SegmentRamp:
				seg.Power += a.Progression.PowerStep * float64(steps)
				seg.PowerHigh += a.Progression.PowerStep * float64(steps)
			case SegmentFreeride:
			}
			scaled[i] = seg
		}
		a.Segments = scaled
	}
	return a
}

// mainSeconds is the duration of the leveled main set.
func (a Archetype) mainSeconds() int {
	switch a.Shape {
	case ShapeIntervals, ShapeChaos:
		return a.Intervals.seconds()
	case ShapeSingle:
		return a.Single.seconds()
	case ShapeTiredVO2:
		return a.TiredBase.seconds() + a.Intervals.seconds()
	case ShapeSegments:
		total := 0
		for _, seg := range a.Segments {
			total += seg.seconds()
		}
		return total
	}
	return 0
}

// IsIntervalShaped reports whether the archetype falls under the
// 120-minute interval cap.
func (a Archetype) IsIntervalShaped() bool {
	switch a.Shape {
	case ShapeIntervals, ShapeTiredVO2, ShapeChaos:
		return true
	}
	return false
}

// NaturalMinutes is the main-set duration at the given level plus the
// minimum warmup and cooldown, rounded up to whole minutes. The scaler
// uses it as the floor a slot must meet.
func (a Archetype) NaturalMinutes(level int) int {
	seconds := a.atLevel(level).mainSeconds() + 2*minCooldownSeconds
	return (seconds + 59) / 60
}

// Render emits the workout blocks for one archetype at a level and target
// duration. The variation index seeds the chaos generator; other shapes
// ignore it. Target minutes below the natural duration are raised to it,
// preserving the prescription.
func Render(a Archetype, level, variation, targetMinutes int) ([]zwo.Block, error) {
	if level < 1 || level > Levels {
		return nil, errors.New("archetype level out of range",
			slog.String("archetype", a.Name), slog.Int("level", level))
	}

	leveled := a.atLevel(level)
	if a.Shape == ShapeChaos {
		leveled.Intervals = chaosSet(a.Category, level, variation)
	}

	main := leveled.mainBlocks()
	mainSec := 0
	for _, b := range main {
		mainSec += b.DurationSeconds()
	}

	totalSec := targetMinutes * 60
	if floor := mainSec + 2*minCooldownSeconds; totalSec < floor {
		// The prescription wins over the slot; round the overflowed
		// session up to a clean 10-minute boundary.
		totalSec = (floor + 599) / 600 * 600
	}

	// Extra time splits 55/45 into warmup and cooldown; the main set
	// never absorbs it. Warmup is capped at 15% of the session, and any
	// time beyond the cooldown cap becomes a steady aerobic filler.
	extra := totalSec - mainSec
	warm := extra * 55 / 100
	if floor := totalSec * 10 / 100; warm < floor && extra-floor >= minCooldownSeconds {
		warm = floor
	}
	if warmCap := totalSec * 15 / 100; warm > warmCap {
		warm = warmCap
	}
	if warm < minCooldownSeconds {
		warm = minCooldownSeconds
	}
	if warm > extra-minCooldownSeconds {
		warm = extra - minCooldownSeconds
	}
	cool := extra - warm
	filler := 0
	if cool > maxCooldownSeconds {
		filler = cool - maxCooldownSeconds
		cool = maxCooldownSeconds
	}

	blocks := make([]zwo.Block, 0, len(main)+3)
	blocks = append(blocks, zwo.Warmup{Duration: warm, PowerLow: 0.45, PowerHigh: 0.75})
	blocks = append(blocks, main...)
	if filler >= 60 {
		blocks = append(blocks, zwo.SteadyState{Duration: filler, Power: fillerPower})
	} else {
		cool += filler
	}
	blocks = append(blocks, zwo.Cooldown{Duration: cool, PowerLow: 0.65, PowerHigh: 0.4})
	return blocks, nil
}

func (a Archetype) mainBlocks() []zwo.Block {
	var cue []zwo.TextEvent
	if len(a.Cues) > 0 {
		cue = []zwo.TextEvent{{OffsetSeconds: 0, Message: a.Cues[0]}}
	}
	switch a.Shape {
	case ShapeIntervals, ShapeChaos:
		return []zwo.Block{intervalBlock(a.Intervals, cue)}
	case ShapeSingle:
		return []zwo.Block{segmentBlock(a.Single, cue)}
	case ShapeTiredVO2:
		return []zwo.Block{
			segmentBlock(a.TiredBase, nil),
			intervalBlock(a.Intervals, cue),
		}
	case ShapeSegments:
		blocks := make([]zwo.Block, 0, len(a.Segments))
		for i, seg := range a.Segments {
			var events []zwo.TextEvent
			if i == 0 {
				events = cue
			}
			blocks = append(blocks, segmentBlock(seg, events))
		}
		return blocks
	}
	return nil
}

func intervalBlock(set IntervalSet, events []zwo.TextEvent) zwo.Block {
	return zwo.Intervals{
		Repeat:      set.Repeats,
		OnDuration:  set.OnSeconds,
		OnPower:     round2(set.OnPower),
		OffDuration: set.OffSeconds,
		OffPower:    round2(set.OffPower),
		TextEvents:  events,
	}
}

func segmentBlock(seg Segment, events []zwo.TextEvent) zwo.Block {
	switch seg.Kind {
	case SegmentIntervals:
		return intervalBlock(seg.Set, events)
	case SegmentFreeride:
		return zwo.FreeRide{Duration: seg.Seconds, TextEvents: events}
	case SegmentRamp:
		return zwo.Warmup{Duration: seg.Seconds, PowerLow: round2(seg.Power), PowerHigh: round2(seg.PowerHigh)}
	default:
		// Unknown kinds degrade to steady at the declared duration and
		// power rather than dropping time from the session.
		return zwo.SteadyState{Duration: seg.Seconds, Power: round2(seg.Power)}
	}
}

// chaosSet derives a reproducible interval set from (category, level,
// variation). Same inputs, same workout.
func chaosSet(category string, level, variation int) IntervalSet {
	h := fnv.New64a()
	h.Write([]byte(category + "|" + strconv.Itoa(level) + "|" + strconv.Itoa(variation)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	on := 30 + rng.Intn(6)*15                      // 30..105 s
	power := 1.0 + float64(rng.Intn(5))*0.05       // 1.00..1.20
	power += float64(level-1) * 0.03               // harder levels surge harder
	repeats := 6 + rng.Intn(5) + (level-1)/2       // 6..12
	off := on + 30 + rng.Intn(3)*15                // always longer than on
	if power > 1.5 {
		power = 1.5
	}
	return IntervalSet{
		Repeats:    repeats,
		OnSeconds:  on,
		OnPower:    round2(power),
		OffSeconds: off,
		OffPower:   0.5,
	}
}

func round2(p float64) float64 {
	return float64(int(p*100+0.5)) / 100
}
