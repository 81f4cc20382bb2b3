package model

type Enrollment struct {
	CourseCode string `csv:"course_code"`
	RollNo     string `csv:"rollno"`
}

// Roster maps a course code to its roll numbers in enrollment file order.
type Roster map[string][]string

// NewRoster groups enrollments by course while keeping the file order.
func NewRoster(enrollments []*Enrollment) Roster {
	roster := make(Roster)
	for _, e := range enrollments {
		roster[e.CourseCode] = append(roster[e.CourseCode], e.RollNo)
	}
	return roster
}

// Students returns the ordered roll numbers of a course, nil for unknown courses.
func (r Roster) Students(course string) []string {
	return r[course]
}

func (r Roster) Size(course string) int {
	return len(r[course])
}
