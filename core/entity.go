// Package core holds identifiers and process helpers shared by every layer
package core

import "strconv"

// Entity identifies an actor in the arena
// Zero is never assigned and means "no entity"
type Entity uint64

// Valid reports whether e refers to an assigned entity
func (e Entity) Valid() bool {
	return e != 0
}

func (e Entity) String() string {
	return "e" + strconv.FormatUint(uint64(e), 10)
}

// EntityAllocator hands out increasing entity ids starting at 1
type EntityAllocator struct {
	next Entity
}

// Next returns a fresh entity id
func (a *EntityAllocator) Next() Entity {
	a.next++
	return a.next
}

// Reset restarts numbering, used when the arena is restarted
func (a *EntityAllocator) Reset() {
	a.next = 0
}
