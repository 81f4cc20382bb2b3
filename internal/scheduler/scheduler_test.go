package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-seating/pkg/model"
)

func sampleRooms() []*model.Room {
	return []*model.Room{
		{ID: "101", Block: "A", Capacity: 30},
		{ID: "102", Block: "A", Capacity: 25},
		{ID: "201", Block: "B", Capacity: 41},
		{ID: "202", Block: "B", Capacity: 12},
	}
}

func sampleRoster() model.Roster {
	return model.Roster{
		"CS101": rollNumbers("CS", 45),
		"MA101": rollNumbers("MA", 33),
		"PH101": rollNumbers("PH", 20),
		"EE201": rollNumbers("EE", 17),
		"ME301": rollNumbers("ME", 60),
	}
}

func sampleTimetable() []*model.TimetableRow {
	return []*model.TimetableRow{
		{Date: "01/05/2024", Day: "Monday", Morning: []string{"CS101", "MA101"}, Evening: []string{"PH101", "EE201"}},
		{Date: "02/05/2024", Day: "Tuesday", Morning: []string{"ME301", "CS101"}},
		{Date: "03/05/2024", Day: "Wednesday", Evening: []string{"MA101", "PH101", "EE201"}},
	}
}

func TestRunSessionOrder(t *testing.T) {
	results, err := Run(sampleTimetable(), sampleRoster(), sampleRooms(), 2, false)
	require.NoError(t, err)
	require.Len(t, results, 6)

	var labels []string
	for _, r := range results {
		labels = append(labels, fmt.Sprintf("%s %s %s", r.Date, r.Day, r.Session))
	}
	assert.Equal(t, []string{
		"01/05/2024 Monday Morning",
		"01/05/2024 Monday Evening",
		"02/05/2024 Tuesday Morning",
		"02/05/2024 Tuesday Evening",
		"03/05/2024 Wednesday Morning",
		"03/05/2024 Wednesday Evening",
	}, labels)

	assert.Empty(t, results[3].Assignments)
	assert.Empty(t, results[4].Assignments)
}

func TestRunResetsCapacityBetweenSessions(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Block: "X", Capacity: 10}}
	roster := model.Roster{"M": rollNumbers("M", 8), "E": rollNumbers("E", 8)}
	timetable := []*model.TimetableRow{
		{Date: "d1", Day: "Mon", Morning: []string{"M"}, Evening: []string{"E"}},
		{Date: "d2", Day: "Tue", Morning: []string{"E"}},
	}

	results, err := Run(timetable, roster, rooms, 2, false)
	require.NoError(t, err)
	for _, i := range []int{0, 1, 2} {
		require.Len(t, results[i].Assignments, 1)
		assert.Equal(t, 8, results[i].Assignments[0].Assigned())
		assert.Equal(t, 0, results[i].Assignments[0].Vacant)
		assert.Empty(t, results[i].Shortfalls)
	}
}

func TestRunProperties(t *testing.T) {
	rooms := sampleRooms()
	roster := sampleRoster()

	for _, sparse := range []bool{false, true} {
		for _, buffer := range []int{0, 3, 13} {
			results, err := Run(sampleTimetable(), roster, rooms, buffer, sparse)
			require.NoError(t, err)

			for _, r := range results {
				seated := Seated(r)
				unplaced := map[string]int{}
				for _, s := range r.Shortfalls {
					unplaced[s.Course] = s.Unplaced
				}
				for course, n := range seated {
					assert.LessOrEqual(t, n, roster.Size(course))
					assert.Equal(t, roster.Size(course), n+unplaced[course])
				}

				for _, a := range r.Assignments {
					var room *model.Room
					for _, candidate := range rooms {
						if candidate.ID == a.Room {
							room = candidate
						}
					}
					require.NotNil(t, room)
					assert.LessOrEqual(t, a.Assigned(), room.Capacity-buffer)
					assert.Equal(t, room.Capacity-buffer-a.Assigned(), a.Vacant)
					if sparse {
						assert.LessOrEqual(t, a.Assigned(), room.Capacity/2)
					}
					for _, c := range a.Allotments {
						assert.Equal(t, c.Count, len(c.RollNos))
					}
				}
			}

			valid, msg := Validate(results, roster, rooms, buffer, sparse)
			assert.Equal(t, len(Shortfalls(results)) == 0, valid, msg)
		}
	}
}

func TestRunPreservesRosterOrder(t *testing.T) {
	roster := sampleRoster()
	results, err := Run(sampleTimetable(), roster, sampleRooms(), 0, false)
	require.NoError(t, err)

	var cs101 []string
	for _, a := range results[0].Assignments {
		for _, c := range a.Allotments {
			if c.Course == "CS101" {
				cs101 = append(cs101, c.RollNos...)
			}
		}
	}
	assert.Equal(t, roster["CS101"], cs101)
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := Run(sampleTimetable(), sampleRoster(), sampleRooms(), 1, true)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Run(sampleTimetable(), sampleRoster(), sampleRooms(), 1, true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRunRejectsNegativeBuffer(t *testing.T) {
	_, err := Run(sampleTimetable(), sampleRoster(), sampleRooms(), -1, false)
	assert.ErrorIs(t, err, ErrNegativeBuffer)
}

func TestShortfallsAreTaggedWithSession(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 10}}
	roster := model.Roster{"X": rollNumbers("X", 8)}
	timetable := []*model.TimetableRow{{Date: "d1", Day: "Mon", Evening: []string{"X"}}}

	results, err := Run(timetable, roster, rooms, 0, true)
	require.NoError(t, err)
	assert.Equal(t, []SessionShortfall{{
		Date:      "d1",
		Day:       "Mon",
		Session:   model.Evening,
		Shortfall: model.Shortfall{Course: "X", Unplaced: 3},
	}}, Shortfalls(results))
}
