// Package attendance joins seated roll numbers with candidate names and groups
// them into one sheet per room and session.
package attendance

import (
	"errors"
	"fmt"

	"github.com/rhyrak/go-seating/pkg/model"
)

var ErrUnknownRollNumber = errors.New("unknown roll number")

// UnknownRollNumber reports a seated candidate missing from the name map. The
// candidate still appears on the sheet with a blank name.
type UnknownRollNumber struct {
	RollNo  string
	Date    string
	Session model.Session
	Room    string
}

func (u *UnknownRollNumber) Error() string {
	return fmt.Sprintf("%s: %s in room %s on %s %s", ErrUnknownRollNumber, u.RollNo, u.Room, u.Date, u.Session)
}

func (u *UnknownRollNumber) Unwrap() error {
	return ErrUnknownRollNumber
}

// Resolve builds the room sheets of every session in result order. Students
// keep their seating order inside a room.
func Resolve(results []*model.SessionResult, names model.Directory) ([]*model.RoomSheet, []*UnknownRollNumber) {
	var sheets []*model.RoomSheet
	var unknown []*UnknownRollNumber

	for _, s := range results {
		for _, a := range s.Assignments {
			sheet := &model.RoomSheet{
				Date:    s.Date,
				Day:     s.Day,
				Session: s.Session,
				Room:    a.Room,
				Block:   a.Block,
			}
			for _, roll := range a.RollNumbers() {
				name, ok := names[roll]
				if !ok {
					unknown = append(unknown, &UnknownRollNumber{RollNo: roll, Date: s.Date, Session: s.Session, Room: a.Room})
				}
				sheet.Students = append(sheet.Students, model.Student{Name: name, RollNo: roll})
			}
			sheets = append(sheets, sheet)
		}
	}
	return sheets, unknown
}
