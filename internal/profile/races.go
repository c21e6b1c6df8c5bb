package profile

import (
	"strings"
	"time"
)

// RaceInfo is a row in the known-race table used to fill intake defaults.
type RaceInfo struct {
	ID            string
	CanonicalName string
	Date          time.Time
	DistanceMiles float64
	ElevationFeet int
}

func raceDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic("races: bad date literal " + s)
	}
	return t
}

//nolint:gochecknoglobals // static lookup table, read-only after init.
var knownRaces = map[string]RaceInfo{
	"unbound_200":    {ID: "unbound_200", CanonicalName: "Unbound Gravel 200", Date: raceDate("2026-05-30"), DistanceMiles: 200, ElevationFeet: 11000},
	"unbound_100":    {ID: "unbound_100", CanonicalName: "Unbound Gravel 100", Date: raceDate("2026-05-30"), DistanceMiles: 100, ElevationFeet: 5500},
	"sbt_grvl":       {ID: "sbt_grvl", CanonicalName: "SBT GRVL Black", Date: raceDate("2026-08-16"), DistanceMiles: 142, ElevationFeet: 9200},
	"leadville_100":  {ID: "leadville_100", CanonicalName: "Leadville Trail 100 MTB", Date: raceDate("2026-08-08"), DistanceMiles: 104, ElevationFeet: 12600},
	"bwr_california": {ID: "bwr_california", CanonicalName: "Belgian Waffle Ride California", Date: raceDate("2026-04-26"), DistanceMiles: 137, ElevationFeet: 11000},
	"mid_south":      {ID: "mid_south", CanonicalName: "The Mid South 100", Date: raceDate("2026-03-14"), DistanceMiles: 100, ElevationFeet: 6000},
	"gravel_worlds":  {ID: "gravel_worlds", CanonicalName: "Gravel Worlds Long Voyage", Date: raceDate("2026-08-22"), DistanceMiles: 150, ElevationFeet: 8700},
	"crusher_tushar": {ID: "crusher_tushar", CanonicalName: "Crusher in the Tushar", Date: raceDate("2026-07-11"), DistanceMiles: 69, ElevationFeet: 10500},
	"barry_roubaix":  {ID: "barry_roubaix", CanonicalName: "Barry-Roubaix Psycho Killer", Date: raceDate("2026-04-18"), DistanceMiles: 100, ElevationFeet: 5200},
	"big_sugar":      {ID: "big_sugar", CanonicalName: "Big Sugar Gravel", Date: raceDate("2026-10-24"), DistanceMiles: 107, ElevationFeet: 7600},
}

//nolint:gochecknoglobals // static lookup table, read-only after init.
var raceAliases = map[string]string{
	"unbound":            "unbound_200",
	"unbound gravel":     "unbound_200",
	"unbound 200":        "unbound_200",
	"dirty kanza":        "unbound_200",
	"unbound 100":        "unbound_100",
	"sbt":                "sbt_grvl",
	"sbt grvl":           "sbt_grvl",
	"steamboat gravel":   "sbt_grvl",
	"steamboat":          "sbt_grvl",
	"leadville":          "leadville_100",
	"leadville 100":      "leadville_100",
	"lt100":              "leadville_100",
	"bwr":                "bwr_california",
	"belgian waffle":     "bwr_california",
	"waffle ride":        "bwr_california",
	"midsouth":           "mid_south",
	"mid south":          "mid_south",
	"the mid south":      "mid_south",
	"land run":           "mid_south",
	"gravel worlds":      "gravel_worlds",
	"crusher":            "crusher_tushar",
	"the crusher":        "crusher_tushar",
	"barry roubaix":      "barry_roubaix",
	"killer gravel race": "barry_roubaix",
	"big sugar":          "big_sugar",
}

// LookupRace resolves a race id or free-text alias to its table entry.
func LookupRace(nameOrID string) (RaceInfo, bool) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if info, ok := knownRaces[key]; ok {
		return info, true
	}
	if id, ok := raceAliases[key]; ok {
		return knownRaces[id], true
	}
	return RaceInfo{}, false
}

// FillRaceDefaults completes a race target from the known-race table when the
// athlete typed a recognizable name. Explicit intake values win.
func (p *Profile) FillRaceDefaults() {
	lookupKey := p.Race.ID
	if lookupKey == "" {
		lookupKey = p.Race.Name
	}
	info, ok := LookupRace(lookupKey)
	if !ok {
		return
	}
	if p.Race.ID == "" {
		p.Race.ID = info.ID
	}
	if p.Race.Name == "" {
		p.Race.Name = info.CanonicalName
	}
	if p.Race.Date.IsZero() {
		p.Race.Date = info.Date
	}
}
