// Package methodology holds the registry of training systems and scores
// them against an athlete to select the best fit.
package methodology

import (
	"github.com/raceprep/raceprep/internal/profile"
)

// Distribution is the target time-in-zone split. The three fractions sum
// to 1 and use the validator's buckets: Z1-Z2, Z3, Z4-Z5.
type Distribution struct {
	Z1Z2 float64 `yaml:"z1_z2"`
	Z3   float64 `yaml:"z3"`
	Z4Z5 float64 `yaml:"z4_z5"`
}

// Methodology describes one training system in the registry.
type Methodology struct {
	ID                   string        `yaml:"id"`
	Name                 string        `yaml:"name"`
	IdealHoursMin        float64       `yaml:"ideal_hours_min"`
	IdealHoursMax        float64       `yaml:"ideal_hours_max"`
	MinYearsStructured   float64       `yaml:"min_years_structured"`
	StressTolerance      profile.Level `yaml:"stress_tolerance"`
	FlexibilityTolerance profile.Level `yaml:"flexibility_tolerance"`
	Targets              Distribution  `yaml:"targets"`
	StrengthPolicy       string        `yaml:"strength_policy"`
	KeyCategories        []string      `yaml:"key_categories"`
	ProgressionStyle     string        `yaml:"progression_style"`
	TestingWeeks         int           `yaml:"testing_weeks"`
	// CategoryOffsets lets a methodology prefer different archetypes from a
	// shared category; the archetype engine adds the offset to the variation
	// index before selecting.
	CategoryOffsets map[string]int `yaml:"category_offsets,omitempty"`
	// NotesMarkdown is rendered into the athlete guide.
	NotesMarkdown string `yaml:"notes_markdown,omitempty"`
}

// Registry is the frozen set of selectable methodologies.
type Registry struct {
	entries map[string]Methodology
	order   []string
}

// Get returns the methodology with the given id.
func (r *Registry) Get(id string) (Methodology, bool) {
	m, ok := r.entries[id]
	return m, ok
}

// All returns every methodology in stable registration order.
func (r *Registry) All() []Methodology {
	all := make([]Methodology, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.entries[id])
	}
	return all
}

// Len returns the number of registered methodologies.
func (r *Registry) Len() int {
	return len(r.order)
}

// NewRegistry constructs the full 13-system registry.
func NewRegistry() *Registry {
	r := &Registry{entries: map[string]Methodology{}}
	for _, m := range builtinMethodologies() {
		if _, exists := r.entries[m.ID]; exists {
			continue
		}
		r.entries[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r
}

//nolint:funlen // flat data table.
func builtinMethodologies() []Methodology {
	return []Methodology{
		{
			ID:                   "traditional_pyramidal",
			Name:                 "Traditional Pyramidal",
			IdealHoursMin:        6,
			IdealHoursMax:        14,
			MinYearsStructured:   0,
			StressTolerance:      profile.LevelModerate,
			FlexibilityTolerance: profile.LevelModerate,
			Targets:              Distribution{Z1Z2: 0.72, Z3: 0.18, Z4Z5: 0.10},
			StrengthPolicy:       "concurrent",
			KeyCategories:        []string{"tempo", "threshold", "long_ride"},
			ProgressionStyle:     "linear_volume",
			TestingWeeks:         6,
			NotesMarkdown: "The classic distribution: a broad aerobic base, a solid slice of tempo " +
				"and threshold, and a small sharp top. It tolerates interruptions well and suits " +
				"athletes who like most rides to feel *productive*.",
		},
		{
			ID:                   "polarized_80_20",
			Name:                 "Polarized 80/20",
			IdealHoursMin:        8,
			IdealHoursMax:        20,
			MinYearsStructured:   1,
			StressTolerance:      profile.LevelModerate,
			FlexibilityTolerance: profile.LevelModerate,
			Targets:              Distribution{Z1Z2: 0.80, Z3: 0.00, Z4Z5: 0.20},
			StrengthPolicy:       "maintenance_only",
			KeyCategories:        []string{"vo2max", "long_ride"},
			ProgressionStyle:     "intensity_blocks",
			TestingWeeks:         8,
			NotesMarkdown: "Nearly everything is genuinely easy; the rest is genuinely hard. " +
				"The middle is deliberately avoided. Requires the discipline to ride slow and " +
				"enough weekly hours for the easy volume to mean something.",
		},
		{
			ID:                   "sweet_spot_threshold",
			Name:                 "Sweet Spot / Threshold",
			IdealHoursMin:        4,
			IdealHoursMax:        10,
			MinYearsStructured:   0,
			StressTolerance:      profile.LevelHigh,
			FlexibilityTolerance: profile.LevelHigh,
			Targets:              Distribution{Z1Z2: 0.55, Z3: 0.30, Z4Z5: 0.15},
			StrengthPolicy:       "concurrent",
			KeyCategories:        []string{"sweet_spot", "threshold", "over_under"},
			ProgressionStyle:     "progressive_tss",
			TestingWeeks:         6,
			NotesMarkdown: "Time-efficient aerobic work at 88-94% of FTP. The workhorse plan for " +
				"athletes with under ten hours a week who still want race-ready fitness.",
		},
		{
			ID:                   "hiit_focused",
			Name:                 "HIIT Focused",
			IdealHoursMin:        3,
			IdealHoursMax:        7,
			MinYearsStructured:   1,
			StressTolerance:      profile.LevelModerate,
			FlexibilityTolerance: profile.LevelHigh,
			Targets:              Distribution{Z1Z2: 0.60, Z3: 0.10, Z4Z5: 0.30},
			StrengthPolicy:       "separate_days",
			KeyCategories:        []string{"vo2max", "anaerobic", "sprints"},
			ProgressionStyle:     "interval_density",
			TestingWeeks:         4,
			NotesMarkdown: "Short, savage, effective. For the time-crunched athlete who recovers " +
				"well and doesn't mind hurting three times a week.",
		},
		{
			ID:                   "block_periodization",
			Name:                 "Block Periodization",
			IdealHoursMin:        8,
			IdealHoursMax:        18,
			MinYearsStructured:   3,
			StressTolerance:      profile.LevelLow,
			FlexibilityTolerance: profile.LevelLow,
			Targets:              Distribution{Z1Z2: 0.70, Z3: 0.12, Z4Z5: 0.18},
			StrengthPolicy:       "block_sequenced",
			KeyCategories:        []string{"vo2max", "threshold", "long_ride"},
			ProgressionStyle:     "concentrated_blocks",
			TestingWeeks:         8,
			NotesMarkdown: "Concentrated overload: several consecutive days hammering one system, " +
				"then long recovery. Powerful for experienced riders, punishing for everyone else.",
		},
		{
			ID:                   "reverse_periodization",
			Name:                 "Reverse Periodization",
			IdealHoursMin:        6,
			IdealHoursMax:        14,
			MinYearsStructured:   2,
			StressTolerance:      profile.LevelModerate,
			FlexibilityTolerance: profile.LevelModerate,
			Targets:              Distribution{Z1Z2: 0.70, Z3: 0.15, Z4Z5: 0.15},
			StrengthPolicy:       "front_loaded",
			KeyCategories:        []string{"threshold", "tempo", "long_ride"},
			ProgressionStyle:     "intensity_first",
			TestingWeeks:         6,
			NotesMarkdown: "Intensity in winter, volume in spring. Suits indoor-heavy winters and " +
				"long summer target races where late-season durability decides the result.",
		},
		{
			ID:                   "autoregulated_hrv",
			Name:                 "Autoregulated (HRV-guided)",
			IdealHoursMin:        5,
			IdealHoursMax:        15,
			MinYearsStructured:   2,
			StressTolerance:      profile.LevelVeryHigh,
			FlexibilityTolerance: profile.LevelVeryHigh,
			Targets:              Distribution{Z1Z2: 0.75, Z3: 0.10, Z4Z5: 0.15},
			StrengthPolicy:       "autoregulated",
			KeyCategories:        []string{"threshold", "vo2max", "endurance"},
			ProgressionStyle:     "readiness_gated",
			TestingWeeks:         8,
			NotesMarkdown: "The plan bends around your life. Hard days happen when you're ready " +
				"for them. Best for high-stress lives and unpredictable schedules.",
		},
		{
			ID:                   "maf_low_hr",
			Name:                 "MAF Low Heart Rate",
			IdealHoursMin:        8,
			IdealHoursMax:        20,
			MinYearsStructured:   0,
			StressTolerance:      profile.LevelVeryHigh,
			FlexibilityTolerance: profile.LevelHigh,
			Targets:              Distribution{Z1Z2: 0.90, Z3: 0.05, Z4Z5: 0.05},
			StrengthPolicy:       "concurrent",
			KeyCategories:        []string{"endurance", "long_ride"},
			ProgressionStyle:     "aerobic_speed",
			TestingWeeks:         12,
			NotesMarkdown: "Almost everything below the aerobic ceiling. Rebuilds broken aerobic " +
				"engines and suits returning or chronically-overreached athletes.",
		},
		{
			ID:                   "goat_composite",
			Name:                 "GOAT Composite",
			IdealHoursMin:        10,
			IdealHoursMax:        25,
			MinYearsStructured:   4,
			StressTolerance:      profile.LevelLow,
			FlexibilityTolerance: profile.LevelLow,
			Targets:              Distribution{Z1Z2: 0.70, Z3: 0.15, Z4Z5: 0.15},
			StrengthPolicy:       "periodized",
			KeyCategories:        []string{"tired_vo2", "mixed_climbing", "long_ride", "race_sim"},
			ProgressionStyle:     "composite",
			TestingWeeks:         4,
			CategoryOffsets:      map[string]int{"vo2max": 2, "long_ride": 1},
			NotesMarkdown: "Everything, everywhere: big volume, tired-legs intervals, race " +
				"simulation. For podium-tier athletes with the calendar of a professional.",
		},
		{
			ID:                   "polarized_strict",
			Name:                 "Polarized (Strict)",
			IdealHoursMin:        10,
			IdealHoursMax:        22,
			MinYearsStructured:   2,
			StressTolerance:      profile.LevelLow,
			FlexibilityTolerance: profile.LevelLow,
			Targets:              Distribution{Z1Z2: 0.85, Z3: 0.00, Z4Z5: 0.15},
			StrengthPolicy:       "maintenance_only",
			KeyCategories:        []string{"vo2max", "long_ride"},
			ProgressionStyle:     "intensity_blocks",
			TestingWeeks:         8,
			CategoryOffsets:      map[string]int{"vo2max": 1},
			NotesMarkdown: "The polarized model taken literally: 85% easy, zero middle, and a " +
				"small dose of very hard work.",
		},
		{
			ID:                   "pyramidal_moderate",
			Name:                 "Pyramidal (Moderate)",
			IdealHoursMin:        5,
			IdealHoursMax:        10,
			MinYearsStructured:   0,
			StressTolerance:      profile.LevelHigh,
			FlexibilityTolerance: profile.LevelHigh,
			Targets:              Distribution{Z1Z2: 0.68, Z3: 0.22, Z4Z5: 0.10},
			StrengthPolicy:       "concurrent",
			KeyCategories:        []string{"tempo", "sweet_spot", "long_ride"},
			ProgressionStyle:     "linear_volume",
			TestingWeeks:         6,
			CategoryOffsets:      map[string]int{"tempo": 1},
			NotesMarkdown: "A gentler pyramid with more tempo for athletes who thrive on " +
				"steady, repeatable work.",
		},
		{
			ID:                   "threshold_build",
			Name:                 "Threshold Build",
			IdealHoursMin:        5,
			IdealHoursMax:        12,
			MinYearsStructured:   1,
			StressTolerance:      profile.LevelModerate,
			FlexibilityTolerance: profile.LevelModerate,
			Targets:              Distribution{Z1Z2: 0.50, Z3: 0.35, Z4Z5: 0.15},
			StrengthPolicy:       "separate_days",
			KeyCategories:        []string{"threshold", "over_under", "sweet_spot"},
			ProgressionStyle:     "progressive_tss",
			TestingWeeks:         4,
			CategoryOffsets:      map[string]int{"threshold": 2},
			NotesMarkdown: "FTP is the product. Heavy threshold and over-under emphasis for " +
				"sustained-power events like gravel and time trials.",
		},
		{
			ID:                   "hiit_crit",
			Name:                 "HIIT Crit Variant",
			IdealHoursMin:        4,
			IdealHoursMax:        8,
			MinYearsStructured:   2,
			StressTolerance:      profile.LevelLow,
			FlexibilityTolerance: profile.LevelModerate,
			Targets:              Distribution{Z1Z2: 0.55, Z3: 0.10, Z4Z5: 0.35},
			StrengthPolicy:       "separate_days",
			KeyCategories:        []string{"anaerobic", "sprints", "race_sim"},
			ProgressionStyle:     "interval_density",
			TestingWeeks:         4,
			CategoryOffsets:      map[string]int{"sprints": 1},
			NotesMarkdown: "Surge, recover, surge again. Built around the repeated-sprint " +
				"demands of criterium and short circuit racing.",
		},
	}
}
