package scheduler

import (
	"fmt"

	"github.com/rhyrak/go-seating/pkg/model"
)

// Ledger tracks the seats left in every room during one session.
type Ledger struct {
	rooms     []*model.Room
	index     map[string]int
	remaining []int
	consumed  []int
	buffer    int
}

// NewLedger withholds buffer seats from every room. A room whose capacity does
// not exceed the buffer starts at zero or below and is never used.
func NewLedger(rooms []*model.Room, buffer int) *Ledger {
	l := &Ledger{
		rooms:     rooms,
		index:     make(map[string]int, len(rooms)),
		remaining: make([]int, len(rooms)),
		consumed:  make([]int, len(rooms)),
		buffer:    buffer,
	}
	for i, r := range rooms {
		l.index[r.ID] = i
		l.remaining[i] = r.Capacity - buffer
	}
	return l
}

// Rooms returns the inventory in listing order.
func (l *Ledger) Rooms() []*model.Room {
	return l.rooms
}

func (l *Ledger) Buffer() int {
	return l.buffer
}

// Remaining returns the seats still free in a room. Unknown rooms have none.
func (l *Ledger) Remaining(room string) int {
	i, ok := l.index[room]
	if !ok {
		return 0
	}
	return l.remaining[i]
}

// Consumed returns the seats taken in a room so far.
func (l *Ledger) Consumed(room string) int {
	i, ok := l.index[room]
	if !ok {
		return 0
	}
	return l.consumed[i]
}

// Consume takes n seats from a room. Asking for more than Remaining is an error,
// nothing is clamped.
func (l *Ledger) Consume(room string, n int) error {
	i, ok := l.index[room]
	if !ok {
		return fmt.Errorf("%w: unknown room %q", ErrInvalidAllocation, room)
	}
	if n < 0 || n > l.remaining[i] {
		return fmt.Errorf("%w: %d seats requested in room %s, %d left", ErrInvalidAllocation, n, room, l.remaining[i])
	}
	l.remaining[i] -= n
	l.consumed[i] += n
	return nil
}
