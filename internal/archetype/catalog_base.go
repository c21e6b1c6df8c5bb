package archetype

// Catalog constructors. Keeping these tiny makes the catalogs readable
// as tables.

func ivl(category, name, structure, cue string, set IntervalSet, p Progression) Archetype {
	return Archetype{
		Name: name, Category: category, Structure: structure, Cues: []string{cue},
		Shape: ShapeIntervals, Intervals: set, Progression: p,
	}
}

func sus(category, name, structure, cue string, seconds int, power float64, p Progression) Archetype {
	return Archetype{
		Name: name, Category: category, Structure: structure, Cues: []string{cue},
		Shape: ShapeSingle, Single: Segment{Kind: SegmentSteady, Seconds: seconds, Power: power},
		Progression: p,
	}
}

func seq(category, name, structure, cue string, segments []Segment, p Progression) Archetype {
	return Archetype{
		Name: name, Category: category, Structure: structure, Cues: []string{cue},
		Shape: ShapeSegments, Segments: segments, Progression: p,
	}
}

func steady(seconds int, power float64) Segment {
	return Segment{Kind: SegmentSteady, Seconds: seconds, Power: power}
}

func free(seconds int) Segment {
	return Segment{Kind: SegmentFreeride, Seconds: seconds}
}

func ramp(seconds int, low, high float64) Segment {
	return Segment{Kind: SegmentRamp, Seconds: seconds, Power: low, PowerHigh: high}
}

func reps(set IntervalSet) Segment {
	return Segment{Kind: SegmentIntervals, Set: set}
}

// baseCatalog is the founding catalog: 45 archetypes in 16 categories.
func baseCatalog() []Archetype {
	out := []Archetype{
		// recovery
		sus("recovery", "Spin Out", "30-55 min very easy spinning",
			"Legs light, conversation easy the whole way",
			1800, 0.45, Progression{DurationStep: 300}),
		seq("recovery", "Coffee Legs", "Easy spin with a free-ride middle",
			"If anything feels like work, back off",
			[]Segment{steady(900, 0.45), free(600), steady(900, 0.5)},
			Progression{DurationStep: 120}),

		// endurance
		sus("endurance", "Aerobic Builder", "Steady zone 2",
			"Nose-breathing pace, hold it honest",
			3600, 0.65, Progression{DurationStep: 600}),
		sus("endurance", "Zone 2 Classic", "Longer steady zone 2",
			"Fuel every 45 minutes",
			4500, 0.68, Progression{DurationStep: 600}),
		seq("endurance", "Endurance with Bursts", "Zone 2 with 15 s bursts every 5 min",
			"Bursts are snappy, recovery stays zone 2",
			[]Segment{
				steady(1800, 0.65),
				reps(IntervalSet{Repeats: 6, OnSeconds: 15, OnPower: 1.2, OffSeconds: 285, OffPower: 0.65}),
			},
			Progression{RepeatStep: 1, PowerStep: 0.02}),
		seq("endurance", "Tempo-Touch Endurance", "Zone 2 with one tempo visit",
			"The tempo block is a tease, not a workout",
			[]Segment{steady(2400, 0.65), steady(600, 0.78), steady(1200, 0.65)},
			Progression{DurationStep: 180}),

		// tempo
		sus("tempo", "Sustained Tempo", "One continuous tempo block",
			"Strong but sustainable, breathing deepens",
			2400, 0.8, Progression{DurationStep: 300, PowerStep: 0.01}),
		ivl("tempo", "Tempo Blocks", "3x15 min tempo",
			"Settle in the first two minutes of each block",
			IntervalSet{Repeats: 3, OnSeconds: 900, OnPower: 0.8, OffSeconds: 300, OffPower: 0.55},
			Progression{PowerStep: 0.015}),
		ivl("tempo", "Cruise Tempo", "2x20 min upper tempo",
			"Smooth pedaling, quiet upper body",
			IntervalSet{Repeats: 2, OnSeconds: 1200, OnPower: 0.78, OffSeconds: 360, OffPower: 0.55},
			Progression{PowerStep: 0.012}),

		// sweet_spot
		ivl("sweet_spot", "Sweet Spot Foundation", "3x10 min at 88%",
			"Comfortably hard, you could speak in short sentences",
			IntervalSet{Repeats: 3, OnSeconds: 600, OnPower: 0.88, OffSeconds: 300, OffPower: 0.55},
			Progression{RepeatStep: 1, PowerStep: 0.005}),
		ivl("sweet_spot", "Sweet Spot 2x20", "2x20 min at 90%",
			"Classic builder, pace the first interval",
			IntervalSet{Repeats: 2, OnSeconds: 1200, OnPower: 0.9, OffSeconds: 420, OffPower: 0.55},
			Progression{PowerStep: 0.008}),
		seq("sweet_spot", "Sweet Spot Over Cruise", "Sweet spot reps then a tempo cruise",
			"Cruise on tired legs without the power sagging",
			[]Segment{
				reps(IntervalSet{Repeats: 3, OnSeconds: 480, OnPower: 0.92, OffSeconds: 240, OffPower: 0.6}),
				steady(900, 0.7),
			},
			Progression{RepeatStep: 1}),
		ivl("sweet_spot", "Sweet Spot Burst", "4x7 min at 90% with short floats",
			"Keep the floats honest, no coasting",
			IntervalSet{Repeats: 4, OnSeconds: 420, OnPower: 0.9, OffSeconds: 180, OffPower: 0.55},
			Progression{RepeatStep: 1}),

		// threshold
		ivl("threshold", "Threshold 2x12", "2x12 min at 97%",
			"The second one is the workout",
			IntervalSet{Repeats: 2, OnSeconds: 720, OnPower: 0.97, OffSeconds: 300, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		ivl("threshold", "Threshold 4x8", "4x8 min at 98%",
			"Even pacing, no hero first rep",
			IntervalSet{Repeats: 4, OnSeconds: 480, OnPower: 0.98, OffSeconds: 240, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		ivl("threshold", "Cracked Threshold", "5x5 min at 100%",
			"Right at the line, hold form when it bites",
			IntervalSet{Repeats: 5, OnSeconds: 300, OnPower: 1.0, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.005}),
		seq("threshold", "Threshold Ladder", "Ramp in, threshold reps, ramp out",
			"Use the ramps to find the effort before committing",
			[]Segment{
				ramp(300, 0.9, 1.0),
				reps(IntervalSet{Repeats: 3, OnSeconds: 600, OnPower: 0.98, OffSeconds: 300, OffPower: 0.5}),
				ramp(300, 1.0, 0.9),
			},
			Progression{RepeatStep: 1}),

		// vo2max
		ivl("vo2max", "VO2 3x3", "3x3 min at 115%",
			"Big gear up, big breathing, count pedal strokes",
			IntervalSet{Repeats: 3, OnSeconds: 180, OnPower: 1.15, OffSeconds: 180, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.01}),
		ivl("vo2max", "VO2 4x4", "4x4 min at 112%",
			"Settle into a rhythm you can barely hold",
			IntervalSet{Repeats: 4, OnSeconds: 240, OnPower: 1.12, OffSeconds: 240, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.006}),
		ivl("vo2max", "VO2 30/30s", "30 s on, 30 s off",
			"Attack each rep from the front",
			IntervalSet{Repeats: 10, OnSeconds: 30, OnPower: 1.25, OffSeconds: 30, OffPower: 0.55},
			Progression{RepeatStep: 2, PowerStep: 0.01}),
		ivl("vo2max", "VO2 Hard Starts", "2 min reps with a hard first 30 s",
			"First 30 seconds out of the saddle",
			IntervalSet{Repeats: 5, OnSeconds: 120, OnPower: 1.2, OffSeconds: 240, OffPower: 0.5},
			Progression{RepeatStep: 1, PowerStep: 0.01}),

		// anaerobic
		ivl("anaerobic", "Anaerobic 8x30", "8x30 s at 150%",
			"Full commitment, full recovery",
			IntervalSet{Repeats: 8, OnSeconds: 30, OnPower: 1.5, OffSeconds: 120, OffPower: 0.4},
			Progression{RepeatStep: 1, PowerStep: 0.02}),
		ivl("anaerobic", "Attack Repeats", "45 s attacks with long recovery",
			"Simulate covering a move, then hide in the wheels",
			IntervalSet{Repeats: 6, OnSeconds: 45, OnPower: 1.45, OffSeconds: 195, OffPower: 0.45},
			Progression{RepeatStep: 1, PowerStep: 0.03}),
		ivl("anaerobic", "Capacity 60s", "1 min max-sustainable reps",
			"These should hurt by second 40",
			IntervalSet{Repeats: 5, OnSeconds: 60, OnPower: 1.35, OffSeconds: 240, OffPower: 0.45},
			Progression{RepeatStep: 1, PowerStep: 0.02}),

		// sprints
		ivl("sprints", "Standing Sprints", "15 s standing starts",
			"Wind it up out of the saddle, all the way through",
			IntervalSet{Repeats: 6, OnSeconds: 15, OnPower: 1.7, OffSeconds: 285, OffPower: 0.4},
			Progression{RepeatStep: 1, PowerStep: 0.06}),
		ivl("sprints", "Rolling Sprints", "12 s sprints from speed",
			"Jump hard from 30 km/h, stay seated until top cadence",
			IntervalSet{Repeats: 6, OnSeconds: 12, OnPower: 1.6, OffSeconds: 288, OffPower: 0.4},
			Progression{RepeatStep: 1, PowerStep: 0.05}),
		seq("sprints", "Sprint Finishers", "Endurance ride closed by sprints",
			"Sprints on tired legs, like the end of a race",
			[]Segment{
				steady(1800, 0.65),
				reps(IntervalSet{Repeats: 4, OnSeconds: 15, OnPower: 1.8, OffSeconds: 345, OffPower: 0.4}),
			},
			Progression{RepeatStep: 1}),

		// over_under
		ivl("over_under", "Over-Under 95/105", "2 min over, 3 min under",
			"Never fully recover, that is the point",
			IntervalSet{Repeats: 4, OnSeconds: 120, OnPower: 1.05, OffSeconds: 180, OffPower: 0.95},
			Progression{RepeatStep: 1}),
		ivl("over_under", "Minute Overs", "1 min over, 2 min under",
			"Shift, surge, settle, repeat",
			IntervalSet{Repeats: 6, OnSeconds: 60, OnPower: 1.1, OffSeconds: 120, OffPower: 0.9},
			Progression{RepeatStep: 1}),
		ivl("over_under", "Criss-Cross", "90 s alternations around threshold",
			"Work the transitions, not just the overs",
			IntervalSet{Repeats: 5, OnSeconds: 90, OnPower: 1.05, OffSeconds: 90, OffPower: 0.88},
			Progression{RepeatStep: 1, PowerStep: 0.005}),

		// long_ride
		sus("long_ride", "Long Steady Distance", "The long one, steady zone 2",
			"Start eating in hour one, not when hungry",
			7200, 0.65, Progression{DurationStep: 900}),
		seq("long_ride", "Long Ride with Tempo", "Long ride carrying a tempo block",
			"Tempo in the middle third, then settle back down",
			[]Segment{steady(3600, 0.65), steady(1200, 0.78), steady(1800, 0.62)},
			Progression{DurationStep: 300}),
		seq("long_ride", "Kitchen Sink", "Long ride with sweet spot and free-ride",
			"A bit of everything, pace the whole not the parts",
			[]Segment{
				steady(2400, 0.65),
				reps(IntervalSet{Repeats: 3, OnSeconds: 480, OnPower: 0.88, OffSeconds: 240, OffPower: 0.6}),
				steady(1800, 0.65),
				free(900),
			},
			Progression{RepeatStep: 1}),

		// openers
		seq("openers", "Race Openers", "Short ride with 30 s openers",
			"Wake the legs, do not dig a hole",
			[]Segment{
				steady(600, 0.6),
				reps(IntervalSet{Repeats: 4, OnSeconds: 30, OnPower: 1.2, OffSeconds: 270, OffPower: 0.5}),
				steady(300, 0.55),
			},
			Progression{}),
		ivl("openers", "Sharpener", "3x1 min just above threshold",
			"Crisp, controlled, done",
			IntervalSet{Repeats: 3, OnSeconds: 60, OnPower: 1.1, OffSeconds: 240, OffPower: 0.55},
			Progression{PowerStep: 0.01}),

		// ftp_test
		seq("ftp_test", "FTP Test 20min", "Classic 20-minute test protocol",
			"All out but even, your 20-min power times 0.95 is the new FTP",
			[]Segment{steady(300, 0.7), free(1200), steady(300, 0.55)},
			Progression{}),
		seq("ftp_test", "Ramp Test", "Step ramp to exhaustion",
			"Hold each step until you cannot, no pacing",
			[]Segment{ramp(1500, 0.5, 1.5)},
			Progression{}),

		// race_sim
		seq("race_sim", "Race Simulation", "Surges, a long grind, free-ride finish",
			"Ride it like the real thing, fueling included",
			[]Segment{
				free(600),
				reps(IntervalSet{Repeats: 5, OnSeconds: 60, OnPower: 1.3, OffSeconds: 240, OffPower: 0.6}),
				steady(1800, 0.75),
				free(600),
			},
			Progression{RepeatStep: 1}),
		seq("race_sim", "Start Gun Sim", "Hard start, settle, late attacks",
			"The first five minutes decide your group for the day",
			[]Segment{
				steady(300, 1.1),
				steady(2400, 0.7),
				reps(IntervalSet{Repeats: 4, OnSeconds: 30, OnPower: 1.5, OffSeconds: 270, OffPower: 0.5}),
			},
			Progression{}),

		// climbing
		ivl("climbing", "Seated Climb Repeats", "8 min seated climbs",
			"Stay seated, drive from the hips",
			IntervalSet{Repeats: 3, OnSeconds: 480, OnPower: 0.9, OffSeconds: 240, OffPower: 0.55},
			Progression{RepeatStep: 1, PowerStep: 0.005}),
		ivl("climbing", "Stand-Sit Climbs", "5 min climbs alternating position",
			"Stand 30 seconds of every 2 minutes",
			IntervalSet{Repeats: 4, OnSeconds: 300, OnPower: 0.95, OffSeconds: 240, OffPower: 0.5},
			Progression{RepeatStep: 1}),
		sus("climbing", "Long Climb Sim", "One sustained climb effort",
			"Find a gear and a breathing rhythm that lasts",
			1800, 0.85, Progression{DurationStep: 300, PowerStep: 0.005}),

		// cadence_work
		ivl("cadence_work", "High-Cadence Spin-Ups", "1 min spin-ups",
			"No bouncing in the saddle",
			IntervalSet{Repeats: 6, OnSeconds: 60, OnPower: 0.7, OffSeconds: 120, OffPower: 0.55},
			Progression{RepeatStep: 1}),
		ivl("cadence_work", "Low-Cadence Strength", "5 min big-gear grinds",
			"Torque, not power, is the target",
			IntervalSet{Repeats: 4, OnSeconds: 300, OnPower: 0.8, OffSeconds: 180, OffPower: 0.55},
			Progression{RepeatStep: 1}),

		// group_ride
		seq("group_ride", "Spirited Group Ride", "Free-ride with a structured bookend",
			"Let the ride happen, cap the stupidity",
			[]Segment{steady(600, 0.6), free(2700), steady(600, 0.55)},
			Progression{}),
	}

	// Cadence and position cues on the entries that prescribe them.
	annotate(out, "VO2 3x3", "90-100 rpm", "")
	annotate(out, "High-Cadence Spin-Ups", "110+ rpm", "seated")
	annotate(out, "Low-Cadence Strength", "55-65 rpm", "seated, hands on tops")
	annotate(out, "Seated Climb Repeats", "60-70 rpm", "seated")
	annotate(out, "Stand-Sit Climbs", "65-80 rpm", "alternate standing and seated")
	annotate(out, "Standing Sprints", "", "standing start")
	return out
}

func annotate(list []Archetype, name, cadence, position string) {
	for i := range list {
		if list[i].Name == name {
			list[i].Cadence = cadence
			list[i].Position = position
			return
		}
	}
}
