// Package guide renders the athlete-facing HTML guide that ships with
// every training package, and optionally a PDF rendition of it.
package guide

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/distribution"
	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/fueling"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/plan"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
)

//go:embed guide.tmpl.html
var guideTemplate string

// Data aggregates every pipeline document the guide presents.
type Data struct {
	Profile        *profile.Profile
	Classification classify.Classification
	Selection      methodology.Selection
	Methodology    methodology.Methodology
	Fueling        fueling.Plan
	Dates          *plandate.Plan
	Workouts       []plan.Workout
	Distribution   *distribution.Report
	GeneratedAt    time.Time
}

// weekView joins a dated week with its rendered workouts for the
// calendar section.
type weekView struct {
	Number   int
	Phase    plandate.Phase
	Monday   time.Time
	Sunday   time.Time
	RaceWeek bool
	Workouts []workoutView
}

type workoutView struct {
	Date     time.Time
	Type     string
	Minutes  int
	Filename string
}

type viewModel struct {
	Data
	Weeks    []weekView
	Warnings []string
}

//nolint:gochecknoglobals // parsed once at startup.
var tmpl = template.Must(template.New("guide").Funcs(template.FuncMap{
	"markdown": renderMarkdown,
	"pct":      func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"date":     func(t time.Time) string { return t.Format("Mon, Jan 2") },
	"dateonly": func(t time.Time) string { return t.Format(time.DateOnly) },
}).Parse(guideTemplate))

// Generate renders the guide HTML.
func Generate(d Data) ([]byte, error) {
	vm := viewModel{
		Data:  d,
		Weeks: buildWeeks(d),
	}
	if d.Dates != nil {
		vm.Warnings = append(vm.Warnings, d.Dates.Warnings...)
	}
	vm.Warnings = append(vm.Warnings, d.Selection.Warnings...)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vm); err != nil {
		return nil, errors.Wrap(err, "render guide template")
	}
	return buf.Bytes(), nil
}

// renderMarkdown converts methodology notes to inline HTML. The source
// is the frozen registry, not user input, so the output is trusted.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "render markdown")
	}
	//nolint:gosec // registry-authored markdown, not user input.
	return template.HTML(buf.String()), nil
}

func buildWeeks(d Data) []weekView {
	if d.Dates == nil {
		return nil
	}
	byWeek := map[int][]workoutView{}
	for _, w := range d.Workouts {
		byWeek[w.Week] = append(byWeek[w.Week], workoutView{
			Date:     w.Date,
			Type:     string(w.Type),
			Minutes:  w.Minutes,
			Filename: w.Filename,
		})
	}
	views := make([]weekView, 0, len(d.Dates.Weeks))
	for _, week := range d.Dates.Weeks {
		views = append(views, weekView{
			Number:   week.Number,
			Phase:    week.Phase,
			Monday:   week.Monday,
			Sunday:   week.Sunday,
			RaceWeek: week.IsRaceWeek,
			Workouts: byWeek[week.Number],
		})
	}
	return views
}
