package methodology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/profile"
)

// Confidence tiers for a selection.
const (
	ConfidenceHigh     = "high"
	ConfidenceModerate = "moderate"
	ConfidenceLow      = "low"

	confidenceHighScore     = 75
	confidenceModerateScore = 60
)

const baseScore = 50

// Alternative is a runner-up methodology.
type Alternative struct {
	ID    string `yaml:"id"`
	Score int    `yaml:"score"`
}

// Selection is the methodology document persisted by the pipeline.
type Selection struct {
	MethodologyID    string         `yaml:"methodology_id"`
	Name             string         `yaml:"name"`
	Score            int            `yaml:"score"`
	Confidence       string         `yaml:"confidence"`
	Reasons          []string       `yaml:"reasons,omitempty"`
	Warnings         []string       `yaml:"warnings,omitempty"`
	Alternatives     []Alternative  `yaml:"alternatives,omitempty"`
	Targets          Distribution   `yaml:"targets"`
	StrengthPolicy   string         `yaml:"strength_policy"`
	KeyCategories    []string       `yaml:"key_categories"`
	ProgressionStyle string         `yaml:"progression_style"`
	TestingWeeks     int            `yaml:"testing_weeks"`
	CategoryOffsets  map[string]int `yaml:"category_offsets,omitempty"`
}

type scored struct {
	methodology Methodology
	score       int
	reasons     []string
	warnings    []string
}

// Select scores every registered methodology against the athlete and returns
// the winner with the next three as alternatives.
func Select(reg *Registry, p *profile.Profile, c classify.Classification) Selection {
	candidates := make([]scored, 0, reg.Len())
	for _, m := range reg.All() {
		candidates = append(candidates, scoreCandidate(m, p, c))
	}

	// Stable sort keeps registry order on ties, which makes selection
	// deterministic across runs.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	winner := candidates[0]
	selection := Selection{
		MethodologyID:    winner.methodology.ID,
		Name:             winner.methodology.Name,
		Score:            winner.score,
		Confidence:       confidenceFor(winner.score),
		Reasons:          winner.reasons,
		Warnings:         winner.warnings,
		Targets:          winner.methodology.Targets,
		StrengthPolicy:   winner.methodology.StrengthPolicy,
		KeyCategories:    winner.methodology.KeyCategories,
		ProgressionStyle: winner.methodology.ProgressionStyle,
		TestingWeeks:     winner.methodology.TestingWeeks,
		CategoryOffsets:  winner.methodology.CategoryOffsets,
	}
	for _, alt := range candidates[1:4] {
		selection.Alternatives = append(selection.Alternatives, Alternative{
			ID:    alt.methodology.ID,
			Score: alt.score,
		})
	}
	return selection
}

func confidenceFor(score int) string {
	switch {
	case score >= confidenceHighScore:
		return ConfidenceHigh
	case score >= confidenceModerateScore:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

//nolint:gochecknoglobals // static rank table.
var levelRank = map[profile.Level]int{
	profile.LevelLow:      0,
	profile.LevelModerate: 1,
	profile.LevelHigh:     2,
	profile.LevelVeryHigh: 3,
}

func scoreCandidate(m Methodology, p *profile.Profile, c classify.Classification) scored {
	s := scored{methodology: m, score: baseScore}

	s.applyHours(p.History.CurrentWeeklyHours)
	s.applyExperience(p.History.YearsStructured)
	s.applyStress(p.Health.StressLevel)
	s.applyFlexibility(p)
	s.applyRaceDemand(p)
	s.applyGoal(p.GoalType, c.Tier)
	s.applyPreferenceKeywords(p.Preferences)
	s.applySpecialConditions(p, c)

	if s.score > 100 {
		s.score = 100
	}
	if s.score < 0 {
		s.score = 0
	}
	return s
}

// applyHours compares weekly hours against the methodology band: up to -30
// outside it, +10 inside, +20 in the central half of the band.
func (s *scored) applyHours(hours float64) {
	m := s.methodology
	span := m.IdealHoursMax - m.IdealHoursMin
	switch {
	case hours < m.IdealHoursMin:
		deficit := m.IdealHoursMin - hours
		penalty := int(deficit * 6)
		if penalty > 30 {
			penalty = 30
		}
		s.score -= penalty
		s.warnings = append(s.warnings, fmt.Sprintf("%.1f weekly hours is below the %s band (%.0f-%.0f)",
			hours, m.Name, m.IdealHoursMin, m.IdealHoursMax))
	case hours > m.IdealHoursMax:
		excess := hours - m.IdealHoursMax
		penalty := int(excess * 4)
		if penalty > 20 {
			penalty = 20
		}
		s.score -= penalty
	case hours >= m.IdealHoursMin+span/4 && hours <= m.IdealHoursMax-span/4:
		s.score += 20
		s.reasons = append(s.reasons, fmt.Sprintf("weekly hours sit in the ideal %s range", m.Name))
	default:
		s.score += 10
	}
}

func (s *scored) applyExperience(years float64) {
	required := s.methodology.MinYearsStructured
	switch {
	case years >= required+2:
		s.score += 15
	case years >= required:
		s.score += 8
	case required-years >= 2:
		s.score -= 15
		s.warnings = append(s.warnings, fmt.Sprintf("%s expects %.0f+ years of structured training",
			s.methodology.Name, required))
	default:
		s.score -= 8
	}
}

// applyStress rewards systems that accommodate at least the athlete's life
// stress and penalizes rigid systems for stressed athletes.
func (s *scored) applyStress(stress profile.Level) {
	stressRank, known := levelRank[stress]
	if !known {
		return
	}
	delta := levelRank[s.methodology.StressTolerance] - stressRank
	switch {
	case delta >= 1:
		s.score += 10
	case delta == 0:
		s.score += 5
	case delta == -1:
		s.score -= 8
	default:
		s.score -= 15
		s.warnings = append(s.warnings,
			fmt.Sprintf("%s copes poorly with %s life stress", s.methodology.Name, stress))
	}
}

func (s *scored) applyFlexibility(p *profile.Profile) {
	needsFlexibility := p.Recent.TravelsFrequently || p.Recent.VariableSchedule
	flexRank := levelRank[s.methodology.FlexibilityTolerance]
	switch {
	case needsFlexibility && flexRank >= levelRank[profile.LevelHigh]:
		s.score += 10
		s.reasons = append(s.reasons, "handles an unpredictable schedule")
	case needsFlexibility && flexRank <= levelRank[profile.LevelLow]:
		s.score -= 10
		s.warnings = append(s.warnings, fmt.Sprintf("%s needs a stable weekly routine", s.methodology.Name))
	case !needsFlexibility && flexRank <= levelRank[profile.LevelModerate]:
		s.score += 4
	}
}

// applyRaceDemand matches the target race's duration profile: all-day
// events reward aerobic-heavy systems, short events reward surge-capable
// ones.
func (s *scored) applyRaceDemand(p *profile.Profile) {
	info, known := profile.LookupRace(p.Race.ID)
	if !known {
		info, known = profile.LookupRace(p.Race.Name)
	}
	if !known {
		return
	}
	m := s.methodology
	longRace := info.DistanceMiles >= 90
	switch {
	case longRace && m.Targets.Z1Z2 >= 0.70:
		s.score += 15
		s.reasons = append(s.reasons, fmt.Sprintf("aerobic emphasis suits %s", info.CanonicalName))
	case longRace && m.Targets.Z4Z5 >= 0.30:
		s.score -= 10
		s.warnings = append(s.warnings, "interval-heavy plans underprepare all-day events")
	case !longRace && m.Targets.Z4Z5 >= 0.25:
		s.score += 15
		s.reasons = append(s.reasons, "surge capacity matches a short, punchy race")
	case !longRace && m.Targets.Z1Z2 >= 0.85:
		s.score -= 8
	}
}

func (s *scored) applyGoal(goal string, tier classify.Tier) {
	m := s.methodology
	switch goal {
	case "finish":
		if m.Targets.Z1Z2 >= 0.72 {
			s.score += 10
			s.reasons = append(s.reasons, "steady aerobic focus fits a finish goal")
		}
	case "compete":
		if m.Targets.Z3 >= 0.2 || strings.Contains(m.ID, "threshold") {
			s.score += 8
		}
	case "podium":
		if m.MinYearsStructured >= 3 || tier == classify.TierPodium {
			s.score += 10
		} else {
			s.score -= 5
		}
	}
}

func (s *scored) applyPreferenceKeywords(prefs profile.MethodologyPreferences) {
	for _, keyword := range prefs.PastSuccesses {
		if matchesMethodology(s.methodology, keyword) {
			s.score += 10
			s.reasons = append(s.reasons, fmt.Sprintf("worked for this athlete before (%q)", keyword))
		}
	}
	for _, keyword := range prefs.PastFailures {
		if matchesMethodology(s.methodology, keyword) {
			s.score -= 10
			s.warnings = append(s.warnings, fmt.Sprintf("failed for this athlete before (%q)", keyword))
		}
	}
}

func matchesMethodology(m Methodology, keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return false
	}
	return strings.Contains(m.ID, strings.ReplaceAll(k, " ", "_")) ||
		strings.Contains(strings.ToLower(m.Name), k)
}

func (s *scored) applySpecialConditions(p *profile.Profile, c classify.Classification) {
	m := s.methodology
	if p.Age >= 50 {
		if m.Targets.Z1Z2 >= 0.75 || m.ID == "autoregulated_hrv" {
			s.score += 8
		}
		if m.Targets.Z4Z5 >= 0.30 {
			s.score -= 8
		}
	}
	for _, risk := range c.RiskFactors {
		switch risk {
		case classify.RiskReturningInjury:
			if m.ID == "maf_low_hr" || m.ID == "autoregulated_hrv" {
				s.score += 10
				s.reasons = append(s.reasons, "gentle reintroduction after injury")
			}
			if m.ProgressionStyle == "concentrated_blocks" || m.Targets.Z4Z5 >= 0.30 {
				s.score -= 10
			}
		case classify.RiskLowSleep, classify.RiskHighStress:
			if levelRank[m.StressTolerance] >= levelRank[profile.LevelHigh] {
				s.score += 5
			}
		}
	}
	if p.History.IndoorTrainingShare >= 0.6 {
		switch m.ID {
		case "sweet_spot_threshold", "threshold_build", "hiit_focused":
			s.score += 8
			s.reasons = append(s.reasons, "structured indoor sessions are this system's bread and butter")
		case "maf_low_hr":
			s.score -= 5
		}
	}
}
