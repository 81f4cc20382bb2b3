package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/rhyrak/go-seating/pkg/model"
)

// ErrMalformedRow is returned for rows that parse but miss required data.
var ErrMalformedRow = errors.New("malformed row")

// Files names the four input tables of a seating run.
type Files struct {
	Students  string
	Timetable string
	Rooms     string
	Names     string
}

// Inputs holds the parsed tables handed to the scheduler.
type Inputs struct {
	Roster    model.Roster
	Rooms     []*model.Room
	Timetable []*model.TimetableRow
	Names     model.Directory
}

// Format describes how input tables are laid out. TitleRows lines are skipped
// before the header of the students and timetable files.
type Format struct {
	Delimiter rune
	TitleRows int
}

func DefaultFormat() Format {
	return Format{Delimiter: ',', TitleRows: 1}
}

// newReader builds a csv reader positioned on the header line.
func newReader(in io.Reader, delim rune, skip int) (*csv.Reader, error) {
	r := csv.NewReader(in)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	for i := 0; i < skip; i++ {
		if _, err := r.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: missing header after %d title rows", ErrMalformedRow, skip)
			}
			return nil, err
		}
	}
	return r, nil
}

// table replays a checked header to gocsv and rejects data rows with a blank
// required cell. gocsv alone zero-fills missing columns and empty numbers.
type table struct {
	name     string
	r        *csv.Reader
	header   []string
	pending  bool
	nonBlank []int
	row      int
}

// openTable reads the header and fails with ErrMalformedRow if one of columns is missing.
func openTable(r *csv.Reader, name string, columns []string, nonBlank ...string) (*table, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header", ErrMalformedRow, name)
	}
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if _, dup := index[header[i]]; !dup {
			index[header[i]] = i
		}
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: %s has no %q column", ErrMalformedRow, name, c)
		}
	}
	t := &table{name: name, r: r, header: header, pending: true}
	for _, c := range nonBlank {
		t.nonBlank = append(t.nonBlank, index[c])
	}
	return t, nil
}

func (t *table) Read() ([]string, error) {
	if t.pending {
		t.pending = false
		return t.header, nil
	}
	record, err := t.r.Read()
	if err != nil {
		return nil, err
	}
	t.row++
	for _, i := range t.nonBlank {
		if i >= len(record) || strings.TrimSpace(record[i]) == "" {
			return nil, fmt.Errorf("%w: %s row %d has a blank %s", ErrMalformedRow, t.name, t.row, t.header[i])
		}
	}
	return record, nil
}

func (t *table) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := t.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// LoadRoster reads course_code,rollno rows into a roster.
func LoadRoster(in io.Reader, f Format) (model.Roster, error) {
	r, err := newReader(in, f.Delimiter, f.TitleRows)
	if err != nil {
		return nil, err
	}
	enrollments := []*model.Enrollment{}
	t, err := openTable(r, "students", []string{"course_code", "rollno"})
	if err != nil {
		return nil, err
	}
	if err := gocsv.UnmarshalCSV(t, &enrollments); err != nil {
		return nil, err
	}
	for i, e := range enrollments {
		e.CourseCode = strings.TrimSpace(e.CourseCode)
		e.RollNo = strings.TrimSpace(e.RollNo)
		if e.CourseCode == "" || e.RollNo == "" {
			return nil, fmt.Errorf("%w: students row %d needs course_code and rollno", ErrMalformedRow, i+1)
		}
	}
	return model.NewRoster(enrollments), nil
}

// LoadRooms reads the room inventory keeping file order.
func LoadRooms(in io.Reader, f Format) ([]*model.Room, error) {
	r, err := newReader(in, f.Delimiter, 0)
	if err != nil {
		return nil, err
	}
	rooms := []*model.Room{}
	t, err := openTable(r, "rooms", []string{"Room No.", "Block", "Exam Capacity"}, "Exam Capacity")
	if err != nil {
		return nil, err
	}
	if err := gocsv.UnmarshalCSV(t, &rooms); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(rooms))
	for i, room := range rooms {
		room.ID = strings.TrimSpace(room.ID)
		room.Block = strings.TrimSpace(room.Block)
		switch {
		case room.ID == "":
			return nil, fmt.Errorf("%w: rooms row %d has no Room No.", ErrMalformedRow, i+1)
		case room.Capacity < 0:
			return nil, fmt.Errorf("%w: room %s has negative capacity %d", ErrMalformedRow, room.ID, room.Capacity)
		case seen[room.ID]:
			return nil, fmt.Errorf("%w: room %s listed twice", ErrMalformedRow, room.ID)
		}
		seen[room.ID] = true
	}
	return rooms, nil
}

// LoadTimetable reads Date,Day,Morning,Evening rows and splits the course lists.
func LoadTimetable(in io.Reader, f Format) ([]*model.TimetableRow, error) {
	r, err := newReader(in, f.Delimiter, f.TitleRows)
	if err != nil {
		return nil, err
	}
	_rows := []*model.TimetableCSVRow{}
	t, err := openTable(r, "timetable", []string{"Date", "Day", "Morning", "Evening"})
	if err != nil {
		return nil, err
	}
	if err := gocsv.UnmarshalCSV(t, &_rows); err != nil {
		return nil, err
	}
	timetable := make([]*model.TimetableRow, 0, len(_rows))
	for i, row := range _rows {
		if strings.TrimSpace(row.Date) == "" {
			return nil, fmt.Errorf("%w: timetable row %d has no Date", ErrMalformedRow, i+1)
		}
		timetable = append(timetable, &model.TimetableRow{
			Date:    strings.TrimSpace(row.Date),
			Day:     strings.TrimSpace(row.Day),
			Morning: model.SplitCourses(row.Morning),
			Evening: model.SplitCourses(row.Evening),
		})
	}
	return timetable, nil
}

// LoadNames reads the Roll,Name mapping used for attendance sheets.
func LoadNames(in io.Reader, f Format) (model.Directory, error) {
	r, err := newReader(in, f.Delimiter, 0)
	if err != nil {
		return nil, err
	}
	rows := []*model.NameCSVRow{}
	t, err := openTable(r, "names", []string{"Roll", "Name"})
	if err != nil {
		return nil, err
	}
	if err := gocsv.UnmarshalCSV(t, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.RollNo = strings.TrimSpace(row.RollNo)
	}
	return model.NewDirectory(rows), nil
}

// LoadFiles opens and parses all input tables. Every failing file is reported,
// not only the first one.
func LoadFiles(fs afero.Fs, files Files, f Format) (*Inputs, error) {
	inputs := &Inputs{}
	var errs error

	load := func(path string, parse func(io.Reader) error) {
		file, err := fs.Open(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to open %s: %w", path, err))
			return
		}
		defer file.Close()
		if err := parse(file); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to parse %s: %w", path, err))
		}
	}

	load(files.Students, func(in io.Reader) (err error) {
		inputs.Roster, err = LoadRoster(in, f)
		return err
	})
	load(files.Rooms, func(in io.Reader) (err error) {
		inputs.Rooms, err = LoadRooms(in, f)
		return err
	})
	load(files.Timetable, func(in io.Reader) (err error) {
		inputs.Timetable, err = LoadTimetable(in, f)
		return err
	})
	if files.Names != "" {
		load(files.Names, func(in io.Reader) (err error) {
			inputs.Names, err = LoadNames(in, f)
			return err
		})
	} else {
		inputs.Names = model.Directory{}
	}

	if errs != nil {
		return nil, errs
	}
	return inputs, nil
}
