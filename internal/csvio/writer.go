package csvio

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"

	"github.com/rhyrak/go-seating/pkg/model"
)

// ExportAssignments flattens the session results into AssignmentCSVRow structs
// and writes them to the CSV file at path, replacing any previous file.
func ExportAssignments(fs afero.Fs, results []*model.SessionResult, path string) (string, error) {
	rows := formatAssignments(results)

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	out, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.Marshal(&rows, out); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportAssignmentsString returns the flat assignment table as CSV text.
func ExportAssignmentsString(results []*model.SessionResult) (string, error) {
	rows := formatAssignments(results)
	return gocsv.MarshalString(&rows)
}

// PrintAssignments prints one line per room and session, without roll numbers.
func PrintAssignments(w io.Writer, results []*model.SessionResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Day", "Session", "Room", "Block", "Courses", "Assigned", "Vacant", "Buffer"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoMergeCellsByColumnIndex([]int{0, 1, 2})
	table.SetRowLine(false)

	for _, r := range formatAssignments(results) {
		table.Append([]string{
			r.Date,
			r.Day,
			r.Session,
			r.Room,
			r.Block,
			r.Courses,
			strconv.Itoa(r.Assigned),
			strconv.Itoa(r.Vacant),
			strconv.Itoa(r.Buffer),
		})
	}
	table.Render()
}

// PrintShortfalls lists courses that could not be fully seated.
func PrintShortfalls(w io.Writer, results []*model.SessionResult) {
	for _, r := range results {
		for _, s := range r.Shortfalls {
			fmt.Fprintf(w, "Warning: Not enough rooms for course %s on %s %s with %d students remaining.\n",
				s.Course, r.Date, strings.ToLower(string(r.Session)), s.Unplaced)
		}
	}
}

func formatAssignments(results []*model.SessionResult) []*model.AssignmentCSVRow {
	formatted := []*model.AssignmentCSVRow{}
	for _, s := range results {
		for _, a := range s.Assignments {
			formatted = append(formatted, model.NewAssignmentCSVRow(s, a))
		}
	}
	return formatted
}
