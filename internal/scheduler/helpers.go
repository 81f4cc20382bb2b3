package scheduler

import (
	"errors"

	"github.com/rhyrak/go-seating/pkg/model"
)

var (
	// ErrInvalidAllocation means a room was asked for more seats than it has left.
	// It is a broken contract and aborts the run.
	ErrInvalidAllocation = errors.New("invalid allocation")
	ErrNegativeBuffer    = errors.New("buffer must not be negative")
)

// Sessions lists the exam slots of a day in allocation order.
var Sessions = []model.Session{model.Morning, model.Evening}

// SessionShortfall is a shortfall tagged with the session it happened in.
type SessionShortfall struct {
	Date    string
	Day     string
	Session model.Session
	model.Shortfall
}

// Shortfalls lists the unplaced courses of every session in result order.
func Shortfalls(results []*model.SessionResult) []SessionShortfall {
	var out []SessionShortfall
	for _, r := range results {
		for _, s := range r.Shortfalls {
			out = append(out, SessionShortfall{Date: r.Date, Day: r.Day, Session: r.Session, Shortfall: s})
		}
	}
	return out
}

// Seated counts the students placed per course within one session.
func Seated(result *model.SessionResult) map[string]int {
	seated := make(map[string]int)
	for _, a := range result.Assignments {
		for _, c := range a.Allotments {
			seated[c.Course] += c.Count
		}
	}
	return seated
}
