package archetype

// importedCatalog is the second wave: 34 archetypes in 12 categories.
// Six categories are new (sfr, mixed_climbing, tired_vo2, g_spot, chaos,
// shakeout); the rest augment base categories.
func importedCatalog() []Archetype {
	tired := func(name, structure, cue string, base Segment, set IntervalSet, p Progression) Archetype {
		return Archetype{
			Name: name, Category: "tired_vo2", Structure: structure, Cues: []string{cue},
			Shape: ShapeTiredVO2, TiredBase: base, Intervals: set, Progression: p,
		}
	}
	chaos := func(name, structure, cue string) Archetype {
		return Archetype{
			Name: name, Category: "chaos", Structure: structure, Cues: []string{cue},
			Shape: ShapeChaos,
			// Fallback set; the seeded generator replaces it at render.
			Intervals:   IntervalSet{Repeats: 6, OnSeconds: 60, OnPower: 1.1, OffSeconds: 120, OffPower: 0.5},
			Progression: Progression{},
		}
	}

	out := []Archetype{
		// sfr (slow frequency revolutions)
		ivl("sfr", "SFR Classic", "6 min big-gear grinds at 85%",
			"Grind the gear, keep the upper body still",
			IntervalSet{Repeats: 4, OnSeconds: 360, OnPower: 0.85, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		seq("sfr", "SFR Pyramid", "Ascending big-gear blocks",
			"Longer blocks, same torque",
			[]Segment{
				reps(IntervalSet{Repeats: 2, OnSeconds: 300, OnPower: 0.82, OffSeconds: 150, OffPower: 0.5}),
				reps(IntervalSet{Repeats: 2, OnSeconds: 420, OnPower: 0.85, OffSeconds: 210, OffPower: 0.5}),
			},
			Progression{PowerStep: 0.005}),
		seq("sfr", "SFR Plus Spin", "Big-gear blocks then fast spin-outs",
			"Torque first, leg speed after",
			[]Segment{
				reps(IntervalSet{Repeats: 3, OnSeconds: 300, OnPower: 0.85, OffSeconds: 180, OffPower: 0.5}),
				reps(IntervalSet{Repeats: 3, OnSeconds: 60, OnPower: 0.7, OffSeconds: 60, OffPower: 0.55}),
			},
			Progression{RepeatStep: 1}),

		// mixed_climbing
		seq("mixed_climbing", "Mixed Grade Repeats", "Climbs with ramped approaches",
			"Carry speed into the steep part",
			[]Segment{
				ramp(300, 0.75, 0.95),
				reps(IntervalSet{Repeats: 3, OnSeconds: 300, OnPower: 0.95, OffSeconds: 180, OffPower: 0.55}),
				ramp(300, 0.95, 0.75),
			},
			Progression{RepeatStep: 1}),
		ivl("mixed_climbing", "Punchy Climbs", "90 s punches over short walls",
			"Over the top before you sit down",
			IntervalSet{Repeats: 6, OnSeconds: 90, OnPower: 1.15, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.01}),
		seq("mixed_climbing", "Climb Surge Climb", "Sustained climbs with surges",
			"The surge is where races split",
			[]Segment{
				reps(IntervalSet{Repeats: 4, OnSeconds: 240, OnPower: 0.92, OffSeconds: 120, OffPower: 0.6}),
				reps(IntervalSet{Repeats: 4, OnSeconds: 30, OnPower: 1.3, OffSeconds: 150, OffPower: 0.5}),
			},
			Progression{RepeatStep: 1}),

		// tired_vo2
		tired("Tired 30/30s", "Hour of zone 2 then 30/30s",
			"The intervals only count because of the hour before",
			steady(3600, 0.68),
			IntervalSet{Repeats: 8, OnSeconds: 30, OnPower: 1.2, OffSeconds: 30, OffPower: 0.55},
			Progression{RepeatStep: 2, PowerStep: 0.01}),
		tired("Tired 3x3", "Long zone 2 then 3-minute efforts",
			"Hold target power when the legs argue",
			steady(4200, 0.65),
			IntervalSet{Repeats: 3, OnSeconds: 180, OnPower: 1.12, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.005}),
		tired("Fatigue Resistance Finale", "Tempo-ish base then 2-minute reps",
			"Late-race legs, late-race efforts",
			steady(3000, 0.7),
			IntervalSet{Repeats: 4, OnSeconds: 120, OnPower: 1.15, OffSeconds: 240, OffPower: 0.5},
			Progression{RepeatStep: 1}),

		// g_spot (just below threshold)
		ivl("g_spot", "G Spot Steady", "2x20 min just under threshold",
			"The uncomfortable gap between sweet spot and threshold",
			IntervalSet{Repeats: 2, OnSeconds: 1200, OnPower: 0.93, OffSeconds: 300, OffPower: 0.55},
			Progression{PowerStep: 0.005}),
		ivl("g_spot", "G Spot Float", "10 min reps with tempo floats",
			"Float, do not rest, between reps",
			IntervalSet{Repeats: 3, OnSeconds: 600, OnPower: 0.92, OffSeconds: 120, OffPower: 0.75},
			Progression{RepeatStep: 1}),

		// chaos
		chaos("Chaos Reigns", "Randomized surge set, reproducible per variation",
			"No pattern to settle into, respond to each rep"),
		chaos("Unstructured Structure", "Randomized surge set, different draw",
			"Ride what the workout gives you"),

		// shakeout
		sus("shakeout", "Pre-Race Shakeout", "20-30 min very easy with leg speed",
			"Blow out the travel legs, nothing more",
			1200, 0.5, Progression{DurationStep: 120}),
		seq("shakeout", "Travel Day Legs", "Short spin with three spin-ups",
			"Easy spin, three short spin-ups, done",
			[]Segment{
				steady(600, 0.5),
				reps(IntervalSet{Repeats: 3, OnSeconds: 30, OnPower: 0.9, OffSeconds: 150, OffPower: 0.5}),
				steady(300, 0.45),
			},
			Progression{}),

		// endurance additions
		sus("endurance", "Depleted Endurance", "Steady zone 2, low-carb start",
			"Breakfast after, not before",
			5400, 0.62, Progression{DurationStep: 600}),
		seq("endurance", "Endurance Cadence Mix", "Zone 2 alternating cadence bands",
			"Same power, different legs",
			[]Segment{
				steady(1800, 0.65),
				reps(IntervalSet{Repeats: 4, OnSeconds: 120, OnPower: 0.68, OffSeconds: 180, OffPower: 0.65}),
			},
			Progression{DurationStep: 300}),
		sus("endurance", "Steady State Builder", "Upper zone 2 block",
			"The top of easy, not the bottom of moderate",
			3000, 0.7, Progression{DurationStep: 600, PowerStep: 0.003}),

		// sweet_spot additions
		ivl("sweet_spot", "Sweet Spot Progression", "3x12 min at 89%",
			"Each week this gets one rep longer",
			IntervalSet{Repeats: 3, OnSeconds: 720, OnPower: 0.89, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		seq("sweet_spot", "Sweet Spot with Surges", "Sweet spot base with surges on top",
			"Surge, then land back on sweet spot, not below it",
			[]Segment{
				reps(IntervalSet{Repeats: 3, OnSeconds: 540, OnPower: 0.9, OffSeconds: 240, OffPower: 0.55}),
				reps(IntervalSet{Repeats: 6, OnSeconds: 15, OnPower: 1.15, OffSeconds: 165, OffPower: 0.88}),
			},
			Progression{PowerStep: 0.006}),
		ivl("sweet_spot", "Extensive Sweet Spot", "2x25 min at 88%",
			"Time in zone is the whole point",
			IntervalSet{Repeats: 2, OnSeconds: 1500, OnPower: 0.88, OffSeconds: 360, OffPower: 0.5},
			Progression{PowerStep: 0.008}),

		// threshold additions
		ivl("threshold", "Threshold 3x10", "3x10 min at 96%",
			"Start conservative, finish honest",
			IntervalSet{Repeats: 3, OnSeconds: 600, OnPower: 0.96, OffSeconds: 300, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		ivl("threshold", "Suprathreshold 5x5", "5x5 min just over FTP",
			"A little over the line on purpose",
			IntervalSet{Repeats: 5, OnSeconds: 300, OnPower: 1.03, OffSeconds: 300, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.004}),
		ivl("threshold", "Threshold Floaters", "8 min reps with tempo floats",
			"Recovery at tempo keeps the system loaded",
			IntervalSet{Repeats: 4, OnSeconds: 480, OnPower: 0.97, OffSeconds: 120, OffPower: 0.7},
			Progression{RepeatStep: 1}),
		seq("threshold", "Broken Threshold", "Long reps then short reps",
			"Same zone, two textures",
			[]Segment{
				reps(IntervalSet{Repeats: 2, OnSeconds: 600, OnPower: 0.98, OffSeconds: 180, OffPower: 0.5}),
				reps(IntervalSet{Repeats: 4, OnSeconds: 300, OnPower: 1.0, OffSeconds: 180, OffPower: 0.5}),
			},
			Progression{PowerStep: 0.005}),

		// vo2max additions
		ivl("vo2max", "VO2 40/20s", "40 s on, 20 s off",
			"The 20 seconds is a pause, not a recovery",
			IntervalSet{Repeats: 10, OnSeconds: 40, OnPower: 1.18, OffSeconds: 20, OffPower: 0.6},
			Progression{RepeatStep: 2, PowerStep: 0.01}),
		seq("vo2max", "VO2 Descending", "5-3-1 minute descending reps",
			"Shorter means harder, not easier",
			[]Segment{
				reps(IntervalSet{Repeats: 2, OnSeconds: 300, OnPower: 1.08, OffSeconds: 300, OffPower: 0.5}),
				reps(IntervalSet{Repeats: 3, OnSeconds: 180, OnPower: 1.15, OffSeconds: 180, OffPower: 0.5}),
				reps(IntervalSet{Repeats: 4, OnSeconds: 60, OnPower: 1.25, OffSeconds: 120, OffPower: 0.5}),
			},
			Progression{PowerStep: 0.008}),
		ivl("vo2max", "VO2 5x5", "5 min reps at 108%",
			"Long for VO2, pace the first minute",
			IntervalSet{Repeats: 3, OnSeconds: 300, OnPower: 1.08, OffSeconds: 300, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.004}),
		ivl("vo2max", "Microburst Madness", "15/15s in big sets",
			"On-off-on-off until the off disappears",
			IntervalSet{Repeats: 15, OnSeconds: 15, OnPower: 1.3, OffSeconds: 15, OffPower: 0.6},
			Progression{RepeatStep: 5, PowerStep: 0.01}),

		// over_under additions
		ivl("over_under", "Over-Under Long Blocks", "3 min over, 4 min under",
			"Long overs teach lactate patience",
			IntervalSet{Repeats: 3, OnSeconds: 180, OnPower: 1.05, OffSeconds: 240, OffPower: 0.92},
			Progression{RepeatStep: 1}),
		ivl("over_under", "Surge and Settle", "30 s surges off a high floor",
			"Settle means 90%, not easy",
			IntervalSet{Repeats: 6, OnSeconds: 30, OnPower: 1.25, OffSeconds: 210, OffPower: 0.9},
			Progression{RepeatStep: 1, PowerStep: 0.01}),
		ivl("over_under", "Race Winning Over-Unders", "2.5 min alternations",
			"This is what a selection feels like",
			IntervalSet{Repeats: 4, OnSeconds: 150, OnPower: 1.1, OffSeconds: 150, OffPower: 0.9},
			Progression{RepeatStep: 1}),

		// race_sim additions
		seq("race_sim", "Gravel Race Sim", "Surgy start, long grind, free finish",
			"Eat on the grind, not after it",
			[]Segment{
				free(900),
				reps(IntervalSet{Repeats: 6, OnSeconds: 60, OnPower: 1.2, OffSeconds: 240, OffPower: 0.65}),
				steady(2400, 0.72),
				free(600),
			},
			Progression{}),
		seq("race_sim", "Closing Kilometers", "Tempo grind into attacks into a sprint",
			"Practice having a sprint after three hours of racing",
			[]Segment{
				steady(1800, 0.75),
				reps(IntervalSet{Repeats: 3, OnSeconds: 120, OnPower: 1.15, OffSeconds: 180, OffPower: 0.6}),
				reps(IntervalSet{Repeats: 1, OnSeconds: 20, OnPower: 1.7, OffSeconds: 280, OffPower: 0.4}),
			},
			Progression{}),
	}

	annotate(out, "SFR Classic", "50-60 rpm", "seated, hands on tops")
	annotate(out, "SFR Pyramid", "50-60 rpm", "seated")
	annotate(out, "Punchy Climbs", "", "standing over the top")
	return out
}
