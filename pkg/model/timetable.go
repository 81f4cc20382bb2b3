package model

import "strings"

// CourseListSeparator splits the course lists of a timetable cell.
const CourseListSeparator = "; "

type Session string

const (
	Morning Session = "Morning"
	Evening Session = "Evening"
)

type TimetableCSVRow struct {
	Date    string `csv:"Date"`
	Day     string `csv:"Day"`
	Morning string `csv:"Morning"`
	Evening string `csv:"Evening"`
}

type TimetableRow struct {
	Date    string
	Day     string
	Morning []string
	Evening []string
}

// Courses returns the course list of the given session.
func (t *TimetableRow) Courses(session Session) []string {
	if session == Evening {
		return t.Evening
	}
	return t.Morning
}

// SplitCourses turns a "; " delimited cell into course codes. Blank cells mean no exam.
func SplitCourses(cell string) []string {
	var courses []string
	for _, c := range strings.Split(cell, CourseListSeparator) {
		c = strings.TrimSpace(c)
		if c != "" {
			courses = append(courses, c)
		}
	}
	return courses
}
