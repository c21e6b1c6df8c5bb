package archetype

// advancedCatalog is the third wave: 16 archetypes across 8 existing
// categories, aimed at experienced athletes in build and peak phases.
func advancedCatalog() []Archetype {
	out := []Archetype{
		// vo2max
		ivl("vo2max", "Bitterman 30/15s", "30 s on, 15 s off in a long set",
			"The 15 seconds exists only on paper",
			IntervalSet{Repeats: 13, OnSeconds: 30, OnPower: 1.22, OffSeconds: 15, OffPower: 0.6},
			Progression{RepeatStep: 3, PowerStep: 0.008}),
		ivl("vo2max", "VO2 Resistance Reps", "3 min reps in a big gear",
			"Low cadence makes the same watts cost more",
			IntervalSet{Repeats: 5, OnSeconds: 180, OnPower: 1.1, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		seq("vo2max", "Double Day Sim", "Two VO2 sets split by zone 2",
			"The second set is the one you are buying",
			[]Segment{
				reps(IntervalSet{Repeats: 4, OnSeconds: 120, OnPower: 1.15, OffSeconds: 180, OffPower: 0.5}),
				steady(1200, 0.65),
				reps(IntervalSet{Repeats: 4, OnSeconds: 120, OnPower: 1.15, OffSeconds: 180, OffPower: 0.5}),
			},
			Progression{RepeatStep: 1}),

		// threshold
		ivl("threshold", "TTE Extension", "2x30 min at 95%",
			"Extending time-to-exhaustion at threshold",
			IntervalSet{Repeats: 2, OnSeconds: 1800, OnPower: 0.95, OffSeconds: 420, OffPower: 0.5},
			Progression{PowerStep: 0.005}),
		seq("threshold", "Threshold Under Fatigue", "45 min of zone 2 then threshold reps",
			"Threshold when fresh is a different sport",
			[]Segment{
				steady(2700, 0.68),
				reps(IntervalSet{Repeats: 3, OnSeconds: 480, OnPower: 0.96, OffSeconds: 240, OffPower: 0.5}),
			},
			Progression{RepeatStep: 1}),

		// anaerobic
		ivl("anaerobic", "Dynamite 15s", "15 s max efforts on short rest",
			"Every rep from a dead stop in the legs",
			IntervalSet{Repeats: 10, OnSeconds: 15, OnPower: 1.7, OffSeconds: 165, OffPower: 0.4},
			Progression{RepeatStep: 2, PowerStep: 0.04}),
		seq("anaerobic", "Anaerobic Ladders", "30-45-60 s ascending efforts",
			"Longer rungs, managed fury",
			[]Segment{
				reps(IntervalSet{Repeats: 3, OnSeconds: 30, OnPower: 1.5, OffSeconds: 150, OffPower: 0.4}),
				reps(IntervalSet{Repeats: 3, OnSeconds: 45, OnPower: 1.4, OffSeconds: 195, OffPower: 0.4}),
				reps(IntervalSet{Repeats: 3, OnSeconds: 60, OnPower: 1.3, OffSeconds: 240, OffPower: 0.4}),
			},
			Progression{PowerStep: 0.02}),

		// sprints
		ivl("sprints", "Track Stand Starts", "10 s standing starts from near-zero speed",
			"First three pedal strokes win or lose it",
			IntervalSet{Repeats: 8, OnSeconds: 10, OnPower: 1.9, OffSeconds: 290, OffPower: 0.35},
			Progression{PowerStep: 0.02}),
		seq("sprints", "Leadout Sim", "Tempo leadout into short sprints",
			"Come off the wheel at full speed, not from it",
			[]Segment{
				steady(600, 0.8),
				reps(IntervalSet{Repeats: 3, OnSeconds: 20, OnPower: 1.8, OffSeconds: 280, OffPower: 0.45}),
			},
			Progression{RepeatStep: 1, PowerStep: 0.03}),

		// climbing
		sus("climbing", "Hors Categorie", "45+ min continuous climb effort",
			"Settle in, this is about the hour mark",
			2700, 0.82, Progression{DurationStep: 300, PowerStep: 0.004}),
		ivl("climbing", "Attack the Grade", "3 min climb attacks",
			"Attack the steep pitch, recover on the false flat",
			IntervalSet{Repeats: 5, OnSeconds: 180, OnPower: 1.0, OffSeconds: 180, OffPower: 0.55},
			Progression{RepeatStep: 1, PowerStep: 0.01}),

		// sweet_spot
		ivl("sweet_spot", "Sweet Spot Monster", "3x20 min at 90%",
			"An hour in zone, bring two bottles",
			IntervalSet{Repeats: 3, OnSeconds: 1200, OnPower: 0.9, OffSeconds: 300, OffPower: 0.5},
			Progression{PowerStep: 0.005}),
		seq("sweet_spot", "SS Race Weight", "Sweet spot reps then tempo cruise",
			"Big aerobic cost, controlled intensity",
			[]Segment{
				reps(IntervalSet{Repeats: 2, OnSeconds: 900, OnPower: 0.9, OffSeconds: 300, OffPower: 0.55}),
				steady(1500, 0.7),
			},
			Progression{PowerStep: 0.004}),

		// over_under
		ivl("over_under", "Sawtooth", "1 min over, 1 min under, no exits",
			"The floor never drops below 85%",
			IntervalSet{Repeats: 8, OnSeconds: 60, OnPower: 1.15, OffSeconds: 60, OffPower: 0.85},
			Progression{RepeatStep: 2, PowerStep: 0.005}),
		ivl("over_under", "Over-Under TT", "10 min blocks riding over and back",
			"Time-trial discipline with surges baked in",
			IntervalSet{Repeats: 2, OnSeconds: 600, OnPower: 1.02, OffSeconds: 300, OffPower: 0.9},
			Progression{RepeatStep: 1}),
	}

	// tired_vo2
	out = append(out, Archetype{
		Name:     "Everything Hurts",
		Category: "tired_vo2",
		Structure: "Hour of endurance then a long 30/30 set",
		Cues:      []string{"Name says it all, hold the numbers anyway"},
		Shape:     ShapeTiredVO2,
		TiredBase: steady(3600, 0.66),
		Intervals: IntervalSet{Repeats: 10, OnSeconds: 30, OnPower: 1.25, OffSeconds: 30, OffPower: 0.6},
		Progression: Progression{RepeatStep: 2, PowerStep: 0.01},
	})

	annotate(out, "VO2 Resistance Reps", "60-70 rpm", "seated")
	annotate(out, "Track Stand Starts", "", "standing start")
	return out
}
