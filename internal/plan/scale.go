package plan

import (
	"github.com/raceprep/raceprep/internal/plandate"
)

// Slot-utilization ratios for endurance and tempo style workouts. The
// closer to the race, the smaller the share of a free slot that gets used.
var phaseRatios = map[plandate.Phase]float64{
	plandate.PhaseBase:        0.70,
	plandate.PhaseBuild:       0.75,
	plandate.PhasePeak:        0.80,
	plandate.PhaseMaintenance: 0.60,
	plandate.PhaseTaper:       0.50,
	plandate.PhaseRace:        0.40,
}

const (
	intervalRatio      = 0.90
	maxIntervalMinutes = 120
	roundToMinutes     = 10
	minScaledMinutes   = 10
)

// neverScaled workouts keep their template duration: a test is a test,
// openers are openers.
var neverScaled = map[Type]bool{
	TypeFTPTest: true,
	TypeOpeners: true,
	TypeRest:    true,
	TypeRaceSim: true,
}

// intervalTypes use the interval ratio and the hard duration cap instead
// of the phase ratio.
var intervalTypes = map[Type]bool{
	TypeVO2max:    true,
	TypeThreshold: true,
	TypeAnaerobic: true,
	TypeSprints:   true,
	TypeOverUnder: true,
	TypeBlended:   true,
	TypeGSpot:     true,
}

// Scale fits a template into a day's slot. The returned template keeps
// the type, description and power; only minutes change.
func Scale(tmpl Template, slotMinutes int, phase plandate.Phase) Template {
	if neverScaled[tmpl.Type] || tmpl.Minutes == 0 || slotMinutes <= 0 {
		return tmpl
	}

	var target float64
	if intervalTypes[tmpl.Type] {
		target = float64(slotMinutes) * intervalRatio
		if target > maxIntervalMinutes {
			target = maxIntervalMinutes
		}
	} else {
		target = float64(slotMinutes) * phaseRatios[phase]
		if target < float64(tmpl.Minutes) {
			target = float64(tmpl.Minutes)
		}
		if target > float64(slotMinutes) {
			target = float64(slotMinutes)
		}
	}

	minutes := roundMinutes(tmpl.Type, target)
	if minutes < minScaledMinutes {
		minutes = minScaledMinutes
	}
	tmpl.Minutes = minutes
	return tmpl
}

// roundMinutes rounds to the nearest 10 minutes. FTP tests and sprints
// keep their exact duration.
func roundMinutes(t Type, minutes float64) int {
	if t == TypeFTPTest || t == TypeSprints {
		return int(minutes + 0.5)
	}
	return int((minutes+float64(roundToMinutes)/2)/roundToMinutes) * roundToMinutes
}

// SplitExtra distributes spare minutes between warmup and cooldown in the
// 55/45 ratio used when a prescription must stay verbatim.
func SplitExtra(extraMinutes int) (warmup, cooldown int) {
	warmup = extraMinutes * 55 / 100
	return warmup, extraMinutes - warmup
}
