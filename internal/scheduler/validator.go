package scheduler

import (
	"fmt"
	"sort"

	"github.com/rhyrak/go-seating/pkg/model"
)

// Validate checks seating results for overfull rooms, rooms listed twice in a
// session and courses that lost or gained students.
// Returns false and a message for invalid results.
func Validate(results []*model.SessionResult, roster model.Roster, rooms []*model.Room, buffer int, sparse bool) (bool, string) {
	var message string
	var valid bool = true
	var hasShortfall bool = false
	var hasRoomCollision bool = false
	var hasOverfullRoom bool = false
	var hasCountMismatch bool = false

	capacity := make(map[string]*model.Room, len(rooms))
	for _, r := range rooms {
		capacity[r.ID] = r
	}

	shortfalls := Shortfalls(results)
	if len(shortfalls) > 0 {
		valid = false
		hasShortfall = true
		message = fmt.Sprintf("- There are %d courses without enough seats:\n", len(shortfalls))
		for _, s := range shortfalls {
			message += fmt.Sprintf("    %s %s %s %d unplaced\n", s.Date, s.Session, s.Course, s.Unplaced)
		}
	}

	for _, result := range results {
		usedRooms := make(map[string]bool)
		for _, a := range result.Assignments {
			if usedRooms[a.Room] {
				valid = false
				hasRoomCollision = true
				message += fmt.Sprintf("- Room %s listed multiple times on %s %s\n", a.Room, result.Date, result.Session)
			}
			usedRooms[a.Room] = true

			room, ok := capacity[a.Room]
			if !ok {
				valid = false
				hasOverfullRoom = true
				message += fmt.Sprintf("- Room %s is not in the inventory\n", a.Room)
				continue
			}
			limit := room.Capacity - buffer
			if sparse {
				limit = min(limit, room.SparseLimit())
			}
			if a.Assigned() > limit {
				valid = false
				hasOverfullRoom = true
				message += fmt.Sprintf("- Room %s holds %d students on %s %s, limit is %d\n", a.Room, a.Assigned(), result.Date, result.Session, limit)
			}
		}

		unplaced := make(map[string]int, len(result.Shortfalls))
		for _, s := range result.Shortfalls {
			unplaced[s.Course] += s.Unplaced
		}
		seated := Seated(result)
		courses := make([]string, 0, len(seated))
		for course := range seated {
			courses = append(courses, course)
		}
		sort.Strings(courses)
		for _, course := range courses {
			if seated[course]+unplaced[course] != roster.Size(course) {
				valid = false
				hasCountMismatch = true
				message += fmt.Sprintf("- Course %s seats %d of %d students on %s %s\n", course, seated[course], roster.Size(course), result.Date, result.Session)
			}
		}
	}

	if hasCountMismatch {
		message = "[FAIL]: Course headcount check.\n" + message
	} else {
		message = "[  OK]: Course headcount check.\n" + message
	}
	if hasOverfullRoom {
		message = "[FAIL]: Room capacity check.\n" + message
	} else {
		message = "[  OK]: Room capacity check.\n" + message
	}
	if hasRoomCollision {
		message = "[FAIL]: Room collision check.\n" + message
	} else {
		message = "[  OK]: Room collision check.\n" + message
	}
	if hasShortfall {
		message = "[FAIL]: Course has seats check.\n" + message
	} else {
		message = "[  OK]: Course has seats check.\n" + message
	}

	return valid, message
}
