package model

import "strings"

type CourseAllotment struct {
	Course  string   `json:"course"`
	Count   int      `json:"count"`
	RollNos []string `json:"roll_numbers"`
}

type RoomAssignment struct {
	Room       string             `json:"room"`
	Block      string             `json:"block"`
	Allotments []*CourseAllotment `json:"allotments"`
	Vacant     int                `json:"vacant"`
	Buffer     int                `json:"buffer"`
}

// Assigned returns the number of students seated in the room.
func (a *RoomAssignment) Assigned() int {
	total := 0
	for _, c := range a.Allotments {
		total += c.Count
	}
	return total
}

func (a *RoomAssignment) Courses() []string {
	courses := make([]string, 0, len(a.Allotments))
	for _, c := range a.Allotments {
		courses = append(courses, c.Course)
	}
	return courses
}

// RollNumbers returns every seated roll number, course by course.
func (a *RoomAssignment) RollNumbers() []string {
	var rolls []string
	for _, c := range a.Allotments {
		rolls = append(rolls, c.RollNos...)
	}
	return rolls
}

// Shortfall counts the candidates of a course left without a seat.
type Shortfall struct {
	Course   string `json:"course"`
	Unplaced int    `json:"unplaced"`
}

type SessionResult struct {
	Date        string            `json:"date"`
	Day         string            `json:"day"`
	Session     Session           `json:"session"`
	Assignments []*RoomAssignment `json:"assignments"`
	Shortfalls  []Shortfall       `json:"shortfalls,omitempty"`
}

type AssignmentCSVRow struct {
	Date        string `csv:"Date"`
	Day         string `csv:"Day"`
	Session     string `csv:"Session"`
	Room        string `csv:"Room"`
	Block       string `csv:"Block"`
	Courses     string `csv:"Courses"`
	Assigned    int    `csv:"Students Assigned"`
	Vacant      int    `csv:"Vacant Seats"`
	Buffer      int    `csv:"Buffer Seats"`
	RollNumbers string `csv:"Roll Numbers"`
}

// NewAssignmentCSVRow flattens a room assignment into one output table row.
func NewAssignmentCSVRow(s *SessionResult, a *RoomAssignment) *AssignmentCSVRow {
	return &AssignmentCSVRow{
		Date:        s.Date,
		Day:         s.Day,
		Session:     string(s.Session),
		Room:        a.Room,
		Block:       a.Block,
		Courses:     strings.Join(a.Courses(), ", "),
		Assigned:    a.Assigned(),
		Vacant:      a.Vacant,
		Buffer:      a.Buffer,
		RollNumbers: strings.Join(a.RollNumbers(), ", "),
	}
}
