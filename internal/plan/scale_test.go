package plan

import (
	"testing"

	"github.com/raceprep/raceprep/internal/plandate"
)

func TestScale_PhaseRatios(t *testing.T) {
	endurance := Template{Type: TypeEndurance, Minutes: 60}
	tests := []struct {
		name  string
		phase plandate.Phase
		slot  int
		want  int
	}{
		{name: "base uses 70% of the slot", phase: plandate.PhaseBase, slot: 120, want: 80},
		{name: "build uses 75%", phase: plandate.PhaseBuild, slot: 120, want: 90},
		{name: "peak uses 80%", phase: plandate.PhasePeak, slot: 120, want: 100},
		{name: "taper halves the slot", phase: plandate.PhaseTaper, slot: 120, want: 60},
		{name: "race week uses 40%", phase: plandate.PhaseRace, slot: 120, want: 50},
		{name: "template minutes are the floor", phase: plandate.PhaseBase, slot: 70, want: 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(endurance, tt.slot, tt.phase)
			if got.Minutes != tt.want {
				t.Errorf("Scale(%d min slot, %s) = %d min, want %d", tt.slot, tt.phase, got.Minutes, tt.want)
			}
		})
	}
}

func TestScale_IntervalWorkoutsCapAt120(t *testing.T) {
	threshold := Template{Type: TypeThreshold, Minutes: 60}
	if got := Scale(threshold, 90, plandate.PhaseBuild); got.Minutes != 80 {
		t.Errorf("90 min slot = %d min, want 80 (90%% rounded)", got.Minutes)
	}
	if got := Scale(threshold, 300, plandate.PhaseBuild); got.Minutes != 120 {
		t.Errorf("300 min slot = %d min, want the 120 min cap", got.Minutes)
	}
}

func TestScale_NeverScaledTypes(t *testing.T) {
	for _, tmpl := range []Template{
		{Type: TypeFTPTest, Minutes: 60},
		{Type: TypeOpeners, Minutes: 45},
		{Type: TypeRaceSim, Minutes: 90},
		{Type: TypeRest, Minutes: 0},
	} {
		if got := Scale(tmpl, 300, plandate.PhasePeak); got.Minutes != tmpl.Minutes {
			t.Errorf("%s scaled from %d to %d, want unchanged", tmpl.Type, tmpl.Minutes, got.Minutes)
		}
	}
}

func TestScale_SprintsKeepExactMinutes(t *testing.T) {
	sprints := Template{Type: TypeSprints, Minutes: 45}
	got := Scale(sprints, 50, plandate.PhaseBuild)
	if got.Minutes != 45 {
		t.Errorf("sprints in a 50 min slot = %d min, want 45 (90%%, unrounded)", got.Minutes)
	}
}

func TestScale_RoundsToTens(t *testing.T) {
	for slot := 40; slot <= 240; slot += 17 {
		got := Scale(Template{Type: TypeEndurance, Minutes: 30}, slot, plandate.PhaseBuild)
		if got.Minutes%10 != 0 {
			t.Errorf("slot %d: scaled minutes %d not a multiple of 10", slot, got.Minutes)
		}
	}
}

func TestSplitExtra(t *testing.T) {
	warm, cool := SplitExtra(20)
	if warm != 11 || cool != 9 {
		t.Errorf("SplitExtra(20) = (%d, %d), want (11, 9)", warm, cool)
	}
	warm, cool = SplitExtra(0)
	if warm != 0 || cool != 0 {
		t.Errorf("SplitExtra(0) = (%d, %d), want zeros", warm, cool)
	}
}
