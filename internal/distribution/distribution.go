// Package distribution measures how a rendered plan's workouts spread
// across the three intensity buckets and validates the spread against a
// methodology's targets. The packager refuses to ship a plan that fails.
package distribution

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/zwo"
)

// Deviation bands. Beyond the error threshold the plan fails validation;
// beyond the warning threshold it ships with a warning.
const (
	ErrorThreshold   = 0.05
	WarningThreshold = 0.02
)

var ErrNoWorkouts = errors.NewSentinel("no countable workouts")

// Bucket is one of the three intensity bands the validator measures.
type Bucket string

const (
	BucketZ1Z2 Bucket = "z1_z2"
	BucketZ3   Bucket = "z3"
	BucketZ4Z5 Bucket = "z4_z5"
)

// typeBuckets maps filename workout types onto buckets. Types absent from
// the map and from excludedTypes are reported as unknown.
var typeBuckets = map[string]Bucket{
	"Recovery":  BucketZ1Z2,
	"Easy":      BucketZ1Z2,
	"Endurance": BucketZ1Z2,
	"Long_Ride": BucketZ1Z2,
	"Shakeout":  BucketZ1Z2,
	"Rest":      BucketZ1Z2,

	"Tempo":      BucketZ3,
	"Sweet_Spot": BucketZ3,
	"G_Spot":     BucketZ3,

	"Threshold":  BucketZ4Z5,
	"VO2max":     BucketZ4Z5,
	"Over_Under": BucketZ4Z5,
	"Anaerobic":  BucketZ4Z5,
	"Sprints":    BucketZ4Z5,
	"Openers":    BucketZ4Z5,
	"Race_Sim":   BucketZ4Z5,
	"Blended":    BucketZ4Z5,
}

// excludedTypes do not count towards the distribution: tests and the race
// itself are not training stimulus, strength is not riding.
var excludedTypes = map[string]bool{
	"FTP_Test": true,
	"RACE_DAY": true,
	"Strength": true,
}

// Status summarizes one bucket or the whole report.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// BucketReport is the measured outcome for one intensity bucket.
type BucketReport struct {
	Count     int     `yaml:"count"`
	Share     float64 `yaml:"share"`
	Target    float64 `yaml:"target"`
	Deviation float64 `yaml:"deviation"`
	Status    Status  `yaml:"status"`
}

// Report is the full validation outcome, written alongside the plan so an
// operator can inspect why a package was held back.
type Report struct {
	Total    int          `yaml:"total"`
	Excluded int          `yaml:"excluded"`
	Z1Z2     BucketReport `yaml:"z1_z2"`
	Z3       BucketReport `yaml:"z3"`
	Z4Z5     BucketReport `yaml:"z4_z5"`
	Unknown  []string     `yaml:"unknown_types,omitempty"`
	Status   Status       `yaml:"status"`
	Problems []string     `yaml:"problems,omitempty"`
	Warnings []string     `yaml:"warnings,omitempty"`
}

// BucketForType resolves a filename workout type to its bucket.
func BucketForType(workoutType string) (Bucket, bool) {
	b, ok := typeBuckets[workoutType]
	return b, ok
}

// Validate measures the workout filenames against the target distribution.
// Unmappable types fail the report rather than silently skewing it.
func Validate(filenames []string, target methodology.Distribution) (*Report, error) {
	counts := map[Bucket]int{}
	excluded := 0
	unknownSet := map[string]bool{}

	for _, name := range filenames {
		parsed, err := zwo.ParseFilename(filepath.Base(name))
		if err != nil {
			return nil, errors.Wrap(err, "validate distribution", slog.String("file", name))
		}
		if excludedTypes[parsed.Type] {
			excluded++
			continue
		}
		b, ok := typeBuckets[parsed.Type]
		if !ok {
			unknownSet[parsed.Type] = true
			continue
		}
		counts[b]++
	}

	total := counts[BucketZ1Z2] + counts[BucketZ3] + counts[BucketZ4Z5]
	if total == 0 {
		return nil, errors.Wrap(ErrNoWorkouts, "validate distribution",
			slog.Int("files", len(filenames)))
	}

	report := &Report{
		Total:    total,
		Excluded: excluded,
		Z1Z2:     bucketReport(counts[BucketZ1Z2], total, target.Z1Z2),
		Z3:       bucketReport(counts[BucketZ3], total, target.Z3),
		Z4Z5:     bucketReport(counts[BucketZ4Z5], total, target.Z4Z5),
		Unknown:  sortedKeys(unknownSet),
		Status:   StatusPass,
	}

	for _, entry := range []struct {
		name   string
		bucket BucketReport
	}{
		{"z1_z2", report.Z1Z2}, {"z3", report.Z3}, {"z4_z5", report.Z4Z5},
	} {
		switch entry.bucket.Status {
		case StatusFail:
			report.Problems = append(report.Problems, fmt.Sprintf(
				"%s at %.0f%% misses the %.0f%% target by more than %.0f points",
				entry.name, entry.bucket.Share*100, entry.bucket.Target*100, ErrorThreshold*100))
		case StatusWarn:
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s at %.0f%% drifts from the %.0f%% target",
				entry.name, entry.bucket.Share*100, entry.bucket.Target*100))
		}
	}
	for _, t := range report.Unknown {
		report.Problems = append(report.Problems, "unknown workout type "+t)
	}

	switch {
	case len(report.Problems) > 0:
		report.Status = StatusFail
	case len(report.Warnings) > 0:
		report.Status = StatusWarn
	}
	return report, nil
}

// ValidateDir runs Validate over every workout file in a directory.
func ValidateDir(dir string, target methodology.Distribution) (*Report, error) {
	names, err := WorkoutFiles(dir)
	if err != nil {
		return nil, err
	}
	return Validate(names, target)
}

// WorkoutFiles lists the workout filenames in a directory, sorted.
func WorkoutFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "list workout files", slog.String("dir", dir))
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func bucketReport(count, total int, target float64) BucketReport {
	share := float64(count) / float64(total)
	deviation := share - target
	status := StatusPass
	abs := deviation
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > ErrorThreshold:
		status = StatusFail
	case abs > WarningThreshold:
		status = StatusWarn
	}
	return BucketReport{
		Count:     count,
		Share:     share,
		Target:    target,
		Deviation: deviation,
		Status:    status,
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
