// Package pipeline orchestrates a full package generation run: athlete
// profile in, dated and rendered training package out. Each stage's
// output is written atomically into a staging directory as the stage
// completes, and the finished package becomes visible in one rename, so
// a failed run leaves any previously delivered package untouched while
// keeping the completed stages' documents on disk for inspection.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/raceprep/raceprep/internal/archetype"
	"github.com/raceprep/raceprep/internal/atomicfile"
	"github.com/raceprep/raceprep/internal/classify"
	"github.com/raceprep/raceprep/internal/distribution"
	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/fueling"
	"github.com/raceprep/raceprep/internal/guide"
	"github.com/raceprep/raceprep/internal/methodology"
	"github.com/raceprep/raceprep/internal/plan"
	"github.com/raceprep/raceprep/internal/plandate"
	"github.com/raceprep/raceprep/internal/profile"
)

// Filenames inside the athlete directory and the package directory.
const (
	ProfileFile      = "profile.yaml"
	PackageDir       = "package"
	StagingDir       = "staging"
	DerivedFile      = "derived.yaml"
	MethodologyFile  = "methodology.yaml"
	PlanDatesFile    = "plan_dates.yaml"
	FuelingFile      = "fueling.yaml"
	StructureFile    = "weekly_structure.yaml"
	DistributionFile = "distribution_report.yaml"
	SummaryFile      = "plan_summary.yaml"
	WorkoutsDir      = "workouts"
	GuideDir         = "guide"
	GuideHTMLFile    = "guide.html"
	GuidePDFFile     = "guide.pdf"
)

const workoutWriters = 8

// Config locates athlete directories and brands the generated files.
type Config struct {
	BaseDir string
	Author  string
}

// Pipeline runs generation for one athlete at a time. The registries
// are built once and shared across runs.
type Pipeline struct {
	logger        *slog.Logger
	cfg           Config
	methodologies *methodology.Registry
	archetypes    *archetype.Registry
	renderer      guide.Renderer
	now           func() time.Time
}

// New constructs the pipeline. renderer may be nil to skip PDFs; now is
// injected for reproducible tests.
func New(logger *slog.Logger, cfg Config, renderer guide.Renderer, now func() time.Time) (*Pipeline, error) {
	archetypes, err := archetype.NewRegistry()
	if err != nil {
		return nil, errors.Wrap(err, "build archetype registry")
	}
	if renderer == nil {
		renderer = guide.NoopRenderer{}
	}
	if now == nil {
		now = time.Now
	}
	if cfg.Author == "" {
		cfg.Author = "RacePrep"
	}
	return &Pipeline{
		logger:        logger,
		cfg:           cfg,
		methodologies: methodology.NewRegistry(),
		archetypes:    archetypes,
		renderer:      renderer,
		now:           now,
	}, nil
}

// PhaseRun is one contiguous run of same-phase weeks in the summary.
type PhaseRun struct {
	Phase plandate.Phase `yaml:"phase"`
	Weeks int            `yaml:"weeks"`
}

// Summary is the top-level manifest written last, so its presence marks
// a complete package.
type Summary struct {
	AthleteID    string              `yaml:"athlete_id"`
	GeneratedAt  time.Time           `yaml:"generated_at"`
	Methodology  string              `yaml:"methodology"`
	Tier         classify.Tier       `yaml:"tier"`
	PlanWeeks    int                 `yaml:"plan_weeks"`
	Phases       []PhaseRun          `yaml:"phases"`
	WorkoutFiles int                 `yaml:"workout_files"`
	Distribution distribution.Status `yaml:"distribution"`
	Warnings     []string            `yaml:"warnings,omitempty"`
}

// Result reports what a successful run produced.
type Result struct {
	AthleteID     string
	AthleteName   string
	Email         string
	RaceName      string
	Dir           string
	MethodologyID string
	PlanWeeks     int
	WorkoutFiles  int
	Distribution  distribution.Status
	Warnings      []string
}

// stageErr tags an error with the stage it came from.
func stageErr(stage string, err error) error {
	return errors.Wrap(err, "pipeline stage failed", slog.String("stage", stage))
}

// Run executes every stage for one athlete. Stage documents land in the
// staging directory as each stage completes; the final stage renames the
// whole directory into place as the package.
//
//nolint:funlen // the stage sequence reads best as one linear function.
func (pl *Pipeline) Run(ctx context.Context, athleteID string) (*Result, error) {
	started := pl.now()
	athleteDir := filepath.Join(pl.cfg.BaseDir, athleteID)

	p, err := pl.loadProfile(athleteDir, athleteID)
	if err != nil {
		return nil, stageErr("load-profile", err)
	}

	validation := p.Validate(started)
	if !validation.IsValid() {
		return nil, stageErr("validate-profile", errors.New("profile rejected",
			slog.String("problems", strings.Join(validation.Errors, "; "))))
	}
	warnings := validation.Warnings

	st, err := newStaging(athleteDir)
	if err != nil {
		return nil, stageErr("package", err)
	}

	c := classify.Derive(p, started)
	if err := st.writeDoc(DerivedFile, c); err != nil {
		return nil, stageErr("classify", err)
	}

	sel := methodology.Select(pl.methodologies, p, c)
	m, ok := pl.methodologies.Get(sel.MethodologyID)
	if !ok {
		return nil, stageErr("select-methodology", errors.New("selected methodology missing",
			slog.String("methodology_id", sel.MethodologyID)))
	}
	warnings = append(warnings, sel.Warnings...)
	if err := st.writeDoc(MethodologyFile, sel); err != nil {
		return nil, stageErr("select-methodology", err)
	}

	dates, err := plandate.Calculate(plandate.Input{
		RaceDate:         p.Race.Date,
		PlanWeeks:        c.PlanWeeks,
		HeavyTrainingEnd: p.Constraints.HeavyTrainingEnd,
		PreferredStart:   p.Constraints.PreferredStart,
		BEvents:          bEventDates(p),
		Today:            started,
	})
	if err != nil {
		return nil, stageErr("calculate-plan-dates", err)
	}
	if problems := dates.Validate(); len(problems) > 0 {
		return nil, stageErr("calculate-plan-dates", errors.New("plan skeleton invalid",
			slog.String("problems", strings.Join(problems, "; "))))
	}
	warnings = append(warnings, dates.Warnings...)
	if err := st.writeDoc(PlanDatesFile, dates); err != nil {
		return nil, stageErr("calculate-plan-dates", err)
	}

	fuel := fueling.Calculate(p)
	if err := st.writeDoc(FuelingFile, fuel); err != nil {
		return nil, stageErr("calculate-fueling", err)
	}

	rendered, err := plan.RenderPlan(p, c, m, dates, pl.archetypes, pl.cfg.Author)
	if err != nil {
		return nil, stageErr("render-workouts", err)
	}
	warnings = append(warnings, rendered.Warnings...)
	if err := st.writeDoc(StructureFile, rendered.Structures); err != nil {
		return nil, stageErr("render-workouts", err)
	}
	if err := st.writeWorkouts(ctx, rendered.Workouts); err != nil {
		return nil, stageErr("render-workouts", err)
	}

	report, err := distribution.Validate(workoutFilenames(rendered.Workouts), m.Targets)
	if err != nil {
		return nil, stageErr("validate-distribution", err)
	}
	// The report goes to disk before the gate, so a refused plan leaves
	// the operator something to inspect.
	if err := st.writeDoc(DistributionFile, report); err != nil {
		return nil, stageErr("validate-distribution", err)
	}
	if report.Status == distribution.StatusFail {
		// The packager gate: a plan that misses its own methodology's
		// distribution never ships.
		return nil, stageErr("validate-distribution", errors.New("distribution out of bounds",
			slog.String("problems", strings.Join(report.Problems, "; "))))
	}
	warnings = append(warnings, report.Warnings...)

	guideHTML, err := guide.Generate(guide.Data{
		Profile:        p,
		Classification: c,
		Selection:      sel,
		Methodology:    m,
		Fueling:        fuel,
		Dates:          dates,
		Workouts:       rendered.Workouts,
		Distribution:   report,
		GeneratedAt:    started,
	})
	if err != nil {
		return nil, stageErr("render-guide", err)
	}
	guidePDF, err := pl.renderer.RenderPDF(ctx, guideHTML)
	if err != nil {
		// The HTML guide still ships; the PDF is a nicety.
		pl.logger.LogAttrs(ctx, slog.LevelWarn, "guide pdf skipped", errors.SlogError(err))
		warnings = append(warnings, "guide PDF rendering failed; HTML guide only")
		guidePDF = nil
	}
	if err := st.writeGuide(guideHTML, guidePDF); err != nil {
		return nil, stageErr("render-guide", err)
	}

	summary := Summary{
		AthleteID:    athleteID,
		GeneratedAt:  started,
		Methodology:  sel.MethodologyID,
		Tier:         c.Tier,
		PlanWeeks:    len(dates.Weeks),
		Phases:       phaseRuns(dates),
		WorkoutFiles: len(rendered.Workouts),
		Distribution: report.Status,
		Warnings:     warnings,
	}
	if err := st.writeDoc(SummaryFile, summary); err != nil {
		return nil, stageErr("package", err)
	}
	if err := st.promote(filepath.Join(athleteDir, PackageDir)); err != nil {
		return nil, stageErr("package", err)
	}

	res := &Result{
		AthleteID:     athleteID,
		AthleteName:   p.Name,
		Email:         p.Email,
		RaceName:      p.Race.Name,
		Dir:           filepath.Join(athleteDir, PackageDir),
		MethodologyID: sel.MethodologyID,
		PlanWeeks:     len(dates.Weeks),
		WorkoutFiles:  len(rendered.Workouts),
		Distribution:  report.Status,
		Warnings:      warnings,
	}
	pl.logger.LogAttrs(ctx, slog.LevelInfo, "package generated",
		slog.String("athlete_id", athleteID),
		slog.String("methodology", res.MethodologyID),
		slog.Int("weeks", res.PlanWeeks),
		slog.Int("workouts", res.WorkoutFiles),
		slog.String("distribution", string(res.Distribution)),
		slog.Duration("elapsed", pl.now().Sub(started)))
	return res, nil
}

func (pl *Pipeline) loadProfile(athleteDir, athleteID string) (*profile.Profile, error) {
	raw, err := os.ReadFile(filepath.Join(athleteDir, ProfileFile))
	if err != nil {
		return nil, errors.Wrap(err, "read profile", slog.String("athlete_id", athleteID))
	}
	var p profile.Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(err, "parse profile", slog.String("athlete_id", athleteID))
	}
	if p.AthleteID == "" {
		p.AthleteID = athleteID
	}
	if p.AthleteID != athleteID {
		return nil, errors.New("profile athlete_id does not match directory",
			slog.String("athlete_id", athleteID), slog.String("profile_athlete_id", p.AthleteID))
	}
	p.FillRaceDefaults()
	return &p, nil
}

// staging collects stage outputs under the athlete directory. Each
// document is written atomically as its stage completes; a failed run
// leaves the directory in place, and promote renames it away as the
// finished package.
type staging struct {
	dir string
}

func newStaging(athleteDir string) (*staging, error) {
	dir := filepath.Join(athleteDir, StagingDir)
	if err := os.RemoveAll(dir); err != nil {
		return nil, errors.Wrap(err, "clear staging directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create staging directory")
	}
	return &staging{dir: dir}, nil
}

func (s *staging) writeDoc(name string, doc any) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshal document", slog.String("file", name))
	}
	if err := atomicfile.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return errors.Wrap(err, "write document", slog.String("file", name))
	}
	return nil
}

// writeWorkouts marshals and writes every workout file concurrently.
func (s *staging) writeWorkouts(ctx context.Context, workouts []plan.Workout) error {
	dir := filepath.Join(s.dir, WorkoutsDir)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return errors.Wrap(err, "create workouts directory")
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workoutWriters)
	for _, w := range workouts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := atomicfile.WriteFile(filepath.Join(dir, w.Filename), w.Document.Marshal(), 0o644); err != nil {
				return errors.Wrap(err, "write workout", slog.String("file", w.Filename))
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *staging) writeGuide(html, pdf []byte) error {
	dir := filepath.Join(s.dir, GuideDir)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return errors.Wrap(err, "create guide directory")
	}
	if err := atomicfile.WriteFile(filepath.Join(dir, GuideHTMLFile), html, 0o644); err != nil {
		return errors.Wrap(err, "write guide html")
	}
	if len(pdf) > 0 {
		if err := atomicfile.WriteFile(filepath.Join(dir, GuidePDFFile), pdf, 0o644); err != nil {
			return errors.Wrap(err, "write guide pdf")
		}
	}
	return nil
}

// promote renames the staging directory into place as the package.
func (s *staging) promote(dst string) error {
	return atomicfile.ReplaceDir(s.dir, dst)
}

func bEventDates(p *profile.Profile) []time.Time {
	var dates []time.Time
	for _, e := range p.BEvents {
		dates = append(dates, e.Date)
	}
	return dates
}

func workoutFilenames(workouts []plan.Workout) []string {
	names := make([]string, 0, len(workouts))
	for _, w := range workouts {
		names = append(names, w.Filename)
	}
	return names
}

// phaseRuns compresses the week list into contiguous phase runs.
func phaseRuns(dates *plandate.Plan) []PhaseRun {
	var runs []PhaseRun
	for _, w := range dates.Weeks {
		if n := len(runs); n > 0 && runs[n-1].Phase == w.Phase {
			runs[n-1].Weeks++
			continue
		}
		runs = append(runs, PhaseRun{Phase: w.Phase, Weeks: 1})
	}
	return runs
}
