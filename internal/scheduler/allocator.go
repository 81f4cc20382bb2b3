package scheduler

import (
	"slices"

	"github.com/rhyrak/go-seating/pkg/model"
)

// Allocation is the outcome of seating one session.
type Allocation struct {
	Assignments []*model.RoomAssignment
	Shortfalls  []model.Shortfall
}

// Allocate seats the courses of one session first-fit. Courses claim rooms in
// the given order and rooms are filled in inventory order. The ledger is
// consumed in place. A course listed twice in the same session is seated once.
func Allocate(courses []string, roster model.Roster, ledger *Ledger, sparse bool) (*Allocation, error) {
	alloc := &Allocation{}
	byRoom := make(map[string]*model.RoomAssignment)
	seen := make(map[string]bool, len(courses))

	for _, course := range courses {
		if seen[course] {
			continue
		}
		seen[course] = true

		students := roster.Students(course)
		for _, room := range ledger.Rooms() {
			if len(students) == 0 {
				break
			}
			take := min(freeSeats(ledger, room, sparse), len(students))
			if take <= 0 {
				continue
			}
			if err := ledger.Consume(room.ID, take); err != nil {
				return nil, err
			}

			a, ok := byRoom[room.ID]
			if !ok {
				a = &model.RoomAssignment{Room: room.ID, Block: room.Block, Buffer: ledger.Buffer()}
				byRoom[room.ID] = a
				alloc.Assignments = append(alloc.Assignments, a)
			}
			a.Allotments = append(a.Allotments, &model.CourseAllotment{
				Course:  course,
				Count:   take,
				RollNos: slices.Clone(students[:take]),
			})
			a.Vacant = ledger.Remaining(room.ID)

			students = students[take:]
		}

		if len(students) > 0 {
			alloc.Shortfalls = append(alloc.Shortfalls, model.Shortfall{Course: course, Unplaced: len(students)})
		}
	}
	return alloc, nil
}

// Seats a course may still take in a room. In sparse mode the room never holds
// more than half its raw capacity, whatever the buffer. The half is shared by
// every course seated there, unlike a per-course cap where two courses could
// each take half of the same room.
func freeSeats(ledger *Ledger, room *model.Room, sparse bool) int {
	free := ledger.Remaining(room.ID)
	if free <= 0 {
		return 0
	}
	if sparse {
		free = min(free, room.SparseLimit()-ledger.Consumed(room.ID))
	}
	return free
}
