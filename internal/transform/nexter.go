package transform

import "sync/atomic"

// Nexter is a threadsafe monotonic id generator used to assign
// songplay ids. Ids start at 0.
type Nexter struct {
	id int64
}

// Next allocates the next id
func (n *Nexter) Next() int64 {
	return atomic.AddInt64(&n.id, 1) - 1
}

// Last returns the most recently allocated id, -1 if none yet
func (n *Nexter) Last() int64 {
	return atomic.LoadInt64(&n.id) - 1
}
