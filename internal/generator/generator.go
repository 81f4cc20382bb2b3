// Package generator runs a complete seating job: parse the uploaded tables,
// seat every session, export the assignment table and render attendance sheets.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rhyrak/go-seating/internal/attendance"
	"github.com/rhyrak/go-seating/internal/cache"
	"github.com/rhyrak/go-seating/internal/csvio"
	"github.com/rhyrak/go-seating/internal/scheduler"
	"github.com/rhyrak/go-seating/internal/sheet"
	"github.com/rhyrak/go-seating/pkg/model"
)

// Request carries the raw input tables of one job. Names may be empty.
type Request struct {
	Students  []byte
	Timetable []byte
	Rooms     []byte
	Names     []byte
	Buffer    int
	Sparse    bool
	// OutputDir receives the assignment table and the sheet directories.
	OutputDir string
	// SkipSheets stops after the assignment table.
	SkipSheets bool
}

type Report struct {
	Results    []*model.SessionResult
	Table      string
	TablePath  string
	Sheets     []string
	Shortfalls []scheduler.SessionShortfall
	Unknown    []*attendance.UnknownRollNumber
	Valid      bool
	Validation string
	Cached     bool
}

type Generator struct {
	fs         afero.Fs
	format     csvio.Format
	exportFile string
	cache      cache.Cache
	font       []byte
	log        *zap.Logger
}

// New builds a generator writing onto fs. A nil cache disables caching.
func New(fs afero.Fs, format csvio.Format, exportFile string, c cache.Cache, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{fs: fs, format: format, exportFile: exportFile, cache: c, log: log}
}

// WithFont sets the UTF-8 TrueType font used for attendance sheets.
func (g *Generator) WithFont(ttf []byte) *Generator {
	g.font = ttf
	return g
}

// Generate runs the job. Shortfalls and unknown roll numbers are reported, not
// returned as errors; attendance material is still produced for seated courses.
func (g *Generator) Generate(ctx context.Context, req Request) (*Report, error) {
	inputs, err := g.parse(req)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	key := cache.Key(req.Students, req.Timetable, req.Rooms, g.format.Delimiter, g.format.TitleRows, req.Buffer, req.Sparse)
	if g.cache != nil {
		results, ok, err := g.cache.Get(ctx, key)
		if err != nil {
			g.log.Warn("cache lookup failed", zap.Error(err))
		}
		if ok {
			report.Results = results
			report.Cached = true
		}
	}

	if !report.Cached {
		report.Results, err = scheduler.Run(inputs.Timetable, inputs.Roster, inputs.Rooms, req.Buffer, req.Sparse)
		if err != nil {
			return nil, err
		}
		if g.cache != nil {
			if err := g.cache.Set(ctx, key, report.Results); err != nil {
				g.log.Warn("cache store failed", zap.Error(err))
			}
		}
	}

	report.Valid, report.Validation = scheduler.Validate(report.Results, inputs.Roster, inputs.Rooms, req.Buffer, req.Sparse)
	report.Shortfalls = scheduler.Shortfalls(report.Results)
	for _, s := range report.Shortfalls {
		g.log.Warn("not enough rooms for course",
			zap.String("course", s.Course),
			zap.String("date", s.Date),
			zap.String("session", string(s.Session)),
			zap.Int("unplaced", s.Unplaced))
	}

	report.Table, err = csvio.ExportAssignmentsString(report.Results)
	if err != nil {
		return nil, err
	}
	report.TablePath, err = csvio.ExportAssignments(g.fs, report.Results, filepath.Join(req.OutputDir, g.exportFile))
	if err != nil {
		return nil, err
	}

	sheets, unknown := attendance.Resolve(report.Results, inputs.Names)
	report.Unknown = unknown
	if len(unknown) > 0 {
		g.log.Warn("roll numbers without a name", zap.Int("count", len(unknown)), zap.String("first", unknown[0].RollNo))
	}

	if !req.SkipSheets {
		report.Sheets, err = sheet.NewRenderer(g.fs, req.OutputDir).WithFont(g.font).WithLogger(g.log).RenderAll(sheets)
		if err != nil {
			return nil, err
		}
	}

	g.log.Info("seating generated",
		zap.Int("sessions", len(report.Results)),
		zap.Int("sheets", len(report.Sheets)),
		zap.Int("shortfalls", len(report.Shortfalls)),
		zap.Bool("cached", report.Cached))
	return report, nil
}

func (g *Generator) parse(req Request) (*csvio.Inputs, error) {
	inputs := &csvio.Inputs{Names: model.Directory{}}
	var err error
	if inputs.Roster, err = csvio.LoadRoster(bytes.NewReader(req.Students), g.format); err != nil {
		return nil, fmt.Errorf("students: %w", err)
	}
	if inputs.Timetable, err = csvio.LoadTimetable(bytes.NewReader(req.Timetable), g.format); err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}
	if inputs.Rooms, err = csvio.LoadRooms(bytes.NewReader(req.Rooms), g.format); err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}
	if len(req.Names) > 0 {
		if inputs.Names, err = csvio.LoadNames(bytes.NewReader(req.Names), g.format); err != nil {
			return nil, fmt.Errorf("names: %w", err)
		}
	}
	return inputs, nil
}

// ReadRequest loads the input files named in files from fs.
func ReadRequest(fs afero.Fs, files csvio.Files) (Request, error) {
	var req Request
	var err error
	if req.Students, err = afero.ReadFile(fs, files.Students); err != nil {
		return req, err
	}
	if req.Timetable, err = afero.ReadFile(fs, files.Timetable); err != nil {
		return req, err
	}
	if req.Rooms, err = afero.ReadFile(fs, files.Rooms); err != nil {
		return req, err
	}
	if files.Names != "" {
		if req.Names, err = afero.ReadFile(fs, files.Names); err != nil {
			return req, err
		}
	}
	return req, nil
}
