package zwo

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/raceprep/raceprep/internal/errors"
)

var ErrBadFilename = errors.NewSentinel("workout filename does not match W{ww}_{Day}_{MonDD}_{Type}.xml")

//nolint:gochecknoglobals // static lookup tables, read-only.
var (
	dayAbbrs = map[string]bool{
		"Mon": true, "Tue": true, "Wed": true, "Thu": true, "Fri": true, "Sat": true, "Sun": true,
	}
	monthAbbrs = map[string]bool{
		"Jan": true, "Feb": true, "Mar": true, "Apr": true, "May": true, "Jun": true,
		"Jul": true, "Aug": true, "Sep": true, "Oct": true, "Nov": true, "Dec": true,
	}
)

// Filename builds the canonical workout filename, e.g.
// W03_Sat_Apr25_Sweet_Spot.xml. Spaces in the type become underscores.
func Filename(week int, date time.Time, workoutType string) string {
	return fmt.Sprintf("W%02d_%s_%s%d_%s.xml",
		week, date.Format("Mon"), date.Format("Jan"), date.Day(),
		strings.ReplaceAll(workoutType, " ", "_"))
}

// ParsedFilename is the metadata recovered from a workout filename.
type ParsedFilename struct {
	Week    int
	DayAbbr string
	Month   string
	Day     int
	Type    string
}

// ParseFilename inverts Filename. The type component may itself contain
// underscores, so only the first three components are positional.
func ParseFilename(name string) (ParsedFilename, error) {
	base := strings.TrimSuffix(name, ".xml")
	if base == name {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "missing .xml suffix", slog.String("name", name))
	}
	parts := strings.SplitN(base, "_", 4)
	if len(parts) != 4 {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "too few components", slog.String("name", name))
	}

	var parsed ParsedFilename
	if len(parts[0]) != 3 || parts[0][0] != 'W' {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "bad week component", slog.String("name", name))
	}
	week, err := strconv.Atoi(parts[0][1:])
	if err != nil || week < 1 {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "bad week number", slog.String("name", name))
	}
	parsed.Week = week

	if !dayAbbrs[parts[1]] {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "bad day abbreviation", slog.String("name", name))
	}
	parsed.DayAbbr = parts[1]

	if len(parts[2]) < 4 || !monthAbbrs[parts[2][:3]] {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "bad date component", slog.String("name", name))
	}
	parsed.Month = parts[2][:3]
	day, err := strconv.Atoi(parts[2][3:])
	if err != nil || day < 1 || day > 31 {
		return ParsedFilename{}, errors.Wrap(ErrBadFilename, "bad day of month", slog.String("name", name))
	}
	parsed.Day = day

	parsed.Type = parts[3]
	return parsed, nil
}
