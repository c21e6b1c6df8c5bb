package archetype

import (
	"log/slog"
	"sort"

	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/zwo"
)

// Registry is the merged, frozen archetype catalog. Loaded once at
// process start; read-only afterwards.
type Registry struct {
	categories map[string][]Archetype
	count      int
}

// NewRegistry builds the registry by merging the base, imported and
// advanced catalogs in that order. Within a category, archetypes dedup
// by name and the first definition wins; new categories are added whole.
// Every entry is validated at all six levels before the registry is
// returned.
func NewRegistry() (*Registry, error) {
	r := &Registry{categories: make(map[string][]Archetype)}
	for _, catalog := range [][]Archetype{baseCatalog(), importedCatalog(), advancedCatalog()} {
		for _, a := range catalog {
			if err := validate(a); err != nil {
				return nil, err
			}
			r.add(a)
		}
	}
	return r, nil
}

func (r *Registry) add(a Archetype) {
	for _, existing := range r.categories[a.Category] {
		if existing.Name == a.Name {
			return
		}
	}
	r.categories[a.Category] = append(r.categories[a.Category], a)
	r.count++
}

// Select picks an archetype from a category. The variation index wraps
// around the category so repeated weeks cycle through every archetype;
// the offset lets a methodology start the cycle elsewhere.
func (r *Registry) Select(category string, offset, variation int) (Archetype, bool) {
	list := r.categories[category]
	if len(list) == 0 {
		return Archetype{}, false
	}
	idx := (offset + variation) % len(list)
	if idx < 0 {
		idx += len(list)
	}
	return list[idx], true
}

// Count is the total number of archetypes.
func (r *Registry) Count() int { return r.count }

// CategoryCount is the number of distinct categories.
func (r *Registry) CategoryCount() int { return len(r.categories) }

// VariationCount is archetypes times levels.
func (r *Registry) VariationCount() int { return r.count * Levels }

// Categories returns the category names in sorted order.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InCategory returns the archetypes of one category in catalog order.
func (r *Registry) InCategory(category string) []Archetype {
	return r.categories[category]
}

func validate(a Archetype) error {
	for level := 1; level <= Levels; level++ {
		leveled := a.atLevel(level)
		if err := leveled.checkPowers(); err != nil {
			return errors.Wrap(err, "archetype fails power bounds",
				slog.String("archetype", a.Name), slog.Int("level", level))
		}
		if a.IsIntervalShaped() && leveled.mainSeconds() > MaxIntervalMinutes*60 {
			return errors.New("interval archetype exceeds duration cap",
				slog.String("archetype", a.Name), slog.Int("level", level),
				slog.Int("main_seconds", leveled.mainSeconds()))
		}
		blocks, err := Render(a, level, 0, a.NaturalMinutes(level))
		if err != nil {
			return errors.Wrap(err, "archetype fails to render",
				slog.String("archetype", a.Name), slog.Int("level", level))
		}
		doc := zwo.Document{Blocks: blocks}
		if avg := doc.AveragePower(); avg < MinAveragePower || avg > MaxAveragePower {
			return errors.New("archetype average power outside bounds",
				slog.String("archetype", a.Name), slog.Int("level", level),
				slog.Float64("average", avg))
		}
	}
	return nil
}

func (a Archetype) checkPowers() error {
	checkPower := func(p float64) error {
		if p < MinPower || p > MaxPower {
			return errors.New("power outside bounds", slog.Float64("power", p))
		}
		return nil
	}
	checkSet := func(set IntervalSet) error {
		if set.Repeats < 1 || set.OnSeconds < minBlockSeconds || set.OffSeconds < minBlockSeconds {
			return errors.New("interval set too short",
				slog.Int("repeats", set.Repeats),
				slog.Int("on_seconds", set.OnSeconds),
				slog.Int("off_seconds", set.OffSeconds))
		}
		if err := checkPower(set.OnPower); err != nil {
			return err
		}
		return checkPower(set.OffPower)
	}
	checkSegment := func(seg Segment) error {
		switch seg.Kind {
		case SegmentIntervals:
			return checkSet(seg.Set)
		case SegmentFreeride:
			if seg.Seconds < minBlockSeconds {
				return errors.New("freeride segment too short", slog.Int("seconds", seg.Seconds))
			}
			return nil
		case SegmentRamp:
			if seg.Seconds < minBlockSeconds {
				return errors.New("ramp segment too short", slog.Int("seconds", seg.Seconds))
			}
			if err := checkPower(seg.Power); err != nil {
				return err
			}
			return checkPower(seg.PowerHigh)
		default:
			if seg.Seconds < minBlockSeconds {
				return errors.New("steady segment too short", slog.Int("seconds", seg.Seconds))
			}
			return checkPower(seg.Power)
		}
	}

	switch a.Shape {
	case ShapeIntervals, ShapeChaos:
		return checkSet(a.Intervals)
	case ShapeSingle:
		return checkSegment(a.Single)
	case ShapeTiredVO2:
		if err := checkSegment(a.TiredBase); err != nil {
			return err
		}
		return checkSet(a.Intervals)
	case ShapeSegments:
		if len(a.Segments) == 0 {
			return errors.New("segment archetype has no segments")
		}
		for _, seg := range a.Segments {
			if err := checkSegment(seg); err != nil {
				return err
			}
		}
	}
	return nil
}
