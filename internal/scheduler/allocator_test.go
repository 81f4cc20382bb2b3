package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-seating/pkg/model"
)

func rollNumbers(prefix string, n int) []string {
	rolls := make([]string, n)
	for i := range rolls {
		rolls[i] = fmt.Sprintf("%s%03d", prefix, i+1)
	}
	return rolls
}

func TestAllocateMergesCoursesIntoSharedRoom(t *testing.T) {
	rooms := []*model.Room{
		{ID: "A", Block: "North", Capacity: 10},
		{ID: "B", Block: "South", Capacity: 10},
	}
	roster := model.Roster{"X": rollNumbers("X", 5), "Y": rollNumbers("Y", 5)}
	ledger := NewLedger(rooms, 2)

	alloc, err := Allocate([]string{"X", "Y"}, roster, ledger, false)
	require.NoError(t, err)
	require.Len(t, alloc.Assignments, 2)
	assert.Empty(t, alloc.Shortfalls)

	a := alloc.Assignments[0]
	assert.Equal(t, "A", a.Room)
	assert.Equal(t, "North", a.Block)
	assert.Equal(t, []string{"X", "Y"}, a.Courses())
	assert.Equal(t, 8, a.Assigned())
	assert.Equal(t, 0, a.Vacant)
	assert.Equal(t, 2, a.Buffer)
	assert.Equal(t, roster["X"], a.Allotments[0].RollNos)
	assert.Equal(t, []string{"Y001", "Y002", "Y003"}, a.Allotments[1].RollNos)

	b := alloc.Assignments[1]
	assert.Equal(t, "B", b.Room)
	assert.Equal(t, []string{"Y"}, b.Courses())
	assert.Equal(t, 2, b.Assigned())
	assert.Equal(t, 6, b.Vacant)
	assert.Equal(t, []string{"Y004", "Y005"}, b.RollNumbers())

	assert.Equal(t, 0, ledger.Remaining("A"))
	assert.Equal(t, 6, ledger.Remaining("B"))
}

func TestAllocateSparseCapsAtHalfCapacity(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Block: "North", Capacity: 10}}
	roster := model.Roster{"X": rollNumbers("X", 8)}

	alloc, err := Allocate([]string{"X"}, roster, NewLedger(rooms, 0), true)
	require.NoError(t, err)
	require.Len(t, alloc.Assignments, 1)
	assert.Equal(t, 5, alloc.Assignments[0].Assigned())
	assert.Equal(t, 5, alloc.Assignments[0].Vacant)
	assert.Equal(t, []model.Shortfall{{Course: "X", Unplaced: 3}}, alloc.Shortfalls)
}

func TestAllocateSparseCapIsPerRoomAcrossCourses(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 11}, {ID: "B", Capacity: 20}}
	roster := model.Roster{"X": rollNumbers("X", 3), "Y": rollNumbers("Y", 6)}
	ledger := NewLedger(rooms, 1)

	alloc, err := Allocate([]string{"X", "Y"}, roster, ledger, true)
	require.NoError(t, err)
	require.Len(t, alloc.Assignments, 2)

	// room A: capacity 11 floors to 5 seats, X takes 3 and leaves 2 for Y
	assert.Equal(t, 5, alloc.Assignments[0].Assigned())
	assert.Equal(t, []string{"X", "Y"}, alloc.Assignments[0].Courses())
	assert.Equal(t, 4, alloc.Assignments[1].Assigned())
	assert.Equal(t, 5, ledger.Consumed("A"))
	assert.Empty(t, alloc.Shortfalls)
}

func TestAllocateSparseIgnoresBuffer(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 10}}
	roster := model.Roster{"X": rollNumbers("X", 10)}

	// buffer leaves 7 seats, which is already above the sparse ceiling of 5
	alloc, err := Allocate([]string{"X"}, roster, NewLedger(rooms, 3), true)
	require.NoError(t, err)
	assert.Equal(t, 5, alloc.Assignments[0].Assigned())
	assert.Equal(t, 2, alloc.Assignments[0].Vacant)

	// buffer leaves 2 seats, below the sparse ceiling
	alloc, err = Allocate([]string{"X"}, roster, NewLedger(rooms, 8), true)
	require.NoError(t, err)
	assert.Equal(t, 2, alloc.Assignments[0].Assigned())
}

func TestAllocateEmptyCourse(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 10}}
	roster := model.Roster{"X": {}}

	alloc, err := Allocate([]string{"X", "UNKNOWN"}, roster, NewLedger(rooms, 0), false)
	require.NoError(t, err)
	assert.Empty(t, alloc.Assignments)
	assert.Empty(t, alloc.Shortfalls)
}

func TestAllocateSkipsUnusableRooms(t *testing.T) {
	rooms := []*model.Room{
		{ID: "tiny", Capacity: 2},
		{ID: "single", Capacity: 1},
		{ID: "hall", Capacity: 30},
	}
	roster := model.Roster{"X": rollNumbers("X", 4)}

	alloc, err := Allocate([]string{"X"}, roster, NewLedger(rooms, 2), false)
	require.NoError(t, err)
	require.Len(t, alloc.Assignments, 1)
	assert.Equal(t, "hall", alloc.Assignments[0].Room)

	// a room of one seat has a sparse ceiling of zero
	alloc, err = Allocate([]string{"X"}, roster, NewLedger(rooms, 0), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny", "hall"}, []string{alloc.Assignments[0].Room, alloc.Assignments[1].Room})
	assert.Equal(t, 1, alloc.Assignments[0].Assigned())
	assert.Equal(t, 3, alloc.Assignments[1].Assigned())
}

func TestAllocateShortfallDoesNotStopLaterCourses(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 4}, {ID: "B", Capacity: 4}}
	roster := model.Roster{"BIG": rollNumbers("B", 10), "SMALL": rollNumbers("S", 2)}

	alloc, err := Allocate([]string{"BIG", "SMALL"}, roster, NewLedger(rooms, 0), false)
	require.NoError(t, err)
	assert.Equal(t, []model.Shortfall{{Course: "BIG", Unplaced: 2}, {Course: "SMALL", Unplaced: 2}}, alloc.Shortfalls)

	alloc, err = Allocate([]string{"SMALL", "BIG"}, roster, NewLedger(rooms, 0), false)
	require.NoError(t, err)
	assert.Equal(t, []model.Shortfall{{Course: "BIG", Unplaced: 4}}, alloc.Shortfalls)
	assert.Equal(t, []string{"SMALL", "BIG"}, alloc.Assignments[0].Courses())
}

func TestAllocateSeatsRepeatedCourseOnce(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 40}}
	roster := model.Roster{"X": rollNumbers("X", 6)}

	alloc, err := Allocate([]string{"X", "X"}, roster, NewLedger(rooms, 0), false)
	require.NoError(t, err)
	require.Len(t, alloc.Assignments, 1)
	assert.Equal(t, 6, alloc.Assignments[0].Assigned())
}

func TestAllocateDoesNotAliasRoster(t *testing.T) {
	rooms := []*model.Room{{ID: "A", Capacity: 40}}
	roster := model.Roster{"X": rollNumbers("X", 3)}

	alloc, err := Allocate([]string{"X"}, roster, NewLedger(rooms, 0), false)
	require.NoError(t, err)
	alloc.Assignments[0].Allotments[0].RollNos[0] = "changed"
	assert.Equal(t, "X001", roster["X"][0])
}
