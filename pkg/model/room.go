package model

type Room struct {
	ID       string `csv:"Room No." json:"room"`
	Block    string `csv:"Block" json:"block"`
	Capacity int    `csv:"Exam Capacity" json:"capacity"`
}

// SparseLimit is the most seats a room may hold when alternate-seat spacing is on.
func (r *Room) SparseLimit() int {
	return r.Capacity / 2
}
