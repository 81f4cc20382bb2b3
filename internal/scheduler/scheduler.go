package scheduler

import (
	"fmt"

	"github.com/rhyrak/go-seating/pkg/model"
)

// Run seats every session of the timetable. Each session starts from a fresh
// ledger so capacity never carries over. Results follow timetable order with
// Morning before Evening.
func Run(timetable []*model.TimetableRow, roster model.Roster, rooms []*model.Room, buffer int, sparse bool) ([]*model.SessionResult, error) {
	if buffer < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBuffer, buffer)
	}

	results := make([]*model.SessionResult, 0, len(timetable)*len(Sessions))
	for _, row := range timetable {
		for _, session := range Sessions {
			alloc, err := Allocate(row.Courses(session), roster, NewLedger(rooms, buffer), sparse)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", row.Date, session, err)
			}
			results = append(results, &model.SessionResult{
				Date:        row.Date,
				Day:         row.Day,
				Session:     session,
				Assignments: alloc.Assignments,
				Shortfalls:  alloc.Shortfalls,
			})
		}
	}
	return results, nil
}
