// Package plan turns the dated skeleton, classification and methodology
// into concrete workouts: weekly slot structures, duration scaling, and
// rendered workout documents.
package plan

// Type is the workout type carried in filenames and the guide.
type Type string

const (
	TypeRecovery  Type = "Recovery"
	TypeEasy      Type = "Easy"
	TypeEndurance Type = "Endurance"
	TypeTempo     Type = "Tempo"
	TypeSweetSpot Type = "Sweet_Spot"
	TypeGSpot     Type = "G_Spot"
	TypeThreshold Type = "Threshold"
	TypeVO2max    Type = "VO2max"
	TypeAnaerobic Type = "Anaerobic"
	TypeSprints   Type = "Sprints"
	TypeOverUnder Type = "Over_Under"
	TypeBlended   Type = "Blended"
	TypeLongRide  Type = "Long_Ride"
	TypeRaceSim   Type = "Race_Sim"
	TypeOpeners   Type = "Openers"
	TypeFTPTest   Type = "FTP_Test"
	TypeShakeout  Type = "Shakeout"
	TypeStrength  Type = "Strength"
	TypeRaceDay   Type = "RACE_DAY"
	TypeRest      Type = "Rest"
)

// Template is the four-tuple the scaler works on.
type Template struct {
	Type        Type    `yaml:"type"`
	Description string  `yaml:"description"`
	Minutes     int     `yaml:"minutes"`
	Power       float64 `yaml:"power"`
}

// categoryTypes maps archetype categories onto workout types. Categories
// without a dedicated type render as Blended.
var categoryTypes = map[string]Type{
	"recovery":   TypeRecovery,
	"endurance":  TypeEndurance,
	"tempo":      TypeTempo,
	"sweet_spot": TypeSweetSpot,
	"g_spot":     TypeGSpot,
	"threshold":  TypeThreshold,
	"vo2max":     TypeVO2max,
	"anaerobic":  TypeAnaerobic,
	"sprints":    TypeSprints,
	"over_under": TypeOverUnder,
	"long_ride":  TypeLongRide,
	"race_sim":   TypeRaceSim,
	"openers":    TypeOpeners,
	"ftp_test":   TypeFTPTest,
	"shakeout":   TypeShakeout,
}

// TypeForCategory returns the workout type for an archetype category.
func TypeForCategory(category string) Type {
	if t, ok := categoryTypes[category]; ok {
		return t
	}
	return TypeBlended
}

// HardTypes are the types the hard/easy tracker refuses to schedule on
// consecutive days.
var HardTypes = map[Type]bool{
	TypeThreshold: true,
	TypeVO2max:    true,
	TypeAnaerobic: true,
	TypeSprints:   true,
}

// IsHard reports whether a type counts as a hard day.
func IsHard(t Type) bool { return HardTypes[t] }
