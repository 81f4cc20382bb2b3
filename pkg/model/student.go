package model

type NameCSVRow struct {
	RollNo string `csv:"Roll"`
	Name   string `csv:"Name"`
}

// Directory maps roll numbers to display names.
type Directory map[string]string

// NewDirectory keeps the first name seen for every roll number.
func NewDirectory(rows []*NameCSVRow) Directory {
	dir := make(Directory, len(rows))
	for _, r := range rows {
		if _, seen := dir[r.RollNo]; !seen {
			dir[r.RollNo] = r.Name
		}
	}
	return dir
}

type Student struct {
	Name   string
	RollNo string
}

// RoomSheet is the candidate list of one room in one session.
type RoomSheet struct {
	Date     string
	Day      string
	Session  Session
	Room     string
	Block    string
	Students []Student
}
