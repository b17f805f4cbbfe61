// Package landmark maintains the user-selected correspondence points for a
// single calibration session.
package landmark

import (
	"fmt"
	"sort"

	"landmark-calib/pkg/geometry"
)

// DefaultCapacity is the per-set landmark limit. This is a usability limit,
// not a mathematical one.
const DefaultCapacity = 12

// Set identifies which point set a landmark belongs to.
type Set int

const (
	// SetReference holds points picked on the reference image.
	SetReference Set = iota
	// SetSource holds points picked on the data visualization.
	SetSource
)

func (s Set) String() string {
	switch s {
	case SetReference:
		return "reference"
	case SetSource:
		return "source"
	default:
		return "unknown"
	}
}

// CapacityExceededError indicates an add beyond the per-set limit. It is
// informational: the registry state is unchanged and remains usable.
type CapacityExceededError struct {
	Set      Set
	Capacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("maximum number of %s landmarks (%d) reached", e.Set, e.Capacity)
}

// Landmark is one recorded point with its 1-based id. The id doubles as the
// display number and as the pairing key across the two sets.
type Landmark struct {
	ID    int              `json:"id"`
	Point geometry.Point2D `json:"point"`
}

// action is one undo log entry.
type action struct {
	set Set
	id  int
}

// Registry stores the two landmark tables keyed by id, with a joint LIFO
// undo log. Pairing is explicit: id N is paired when both tables contain it.
// A Registry belongs to exactly one session and is not safe for concurrent
// use.
type Registry struct {
	capacity int
	points   [2]map[int]geometry.Point2D
	nextID   [2]int
	log      []action
}

// NewRegistry creates an empty registry with the given per-set capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Registry{capacity: capacity}
	r.reset()
	return r
}

func (r *Registry) reset() {
	r.points[SetReference] = make(map[int]geometry.Point2D)
	r.points[SetSource] = make(map[int]geometry.Point2D)
	r.nextID[SetReference] = 1
	r.nextID[SetSource] = 1
	r.log = r.log[:0]
}

// Capacity returns the per-set landmark limit.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Add appends a point to the given set and returns its assigned id.
// Returns a CapacityExceededError when the set is full.
func (r *Registry) Add(set Set, p geometry.Point2D) (int, error) {
	if len(r.points[set]) >= r.capacity {
		return 0, &CapacityExceededError{Set: set, Capacity: r.capacity}
	}

	id := r.nextID[set]
	r.nextID[set]++
	r.points[set][id] = p
	r.log = append(r.log, action{set: set, id: id})
	return id, nil
}

// Undo removes the most recently added landmark across both sets. It is a
// no-op when the log is empty.
func (r *Registry) Undo() {
	if len(r.log) == 0 {
		return
	}

	last := r.log[len(r.log)-1]
	r.log = r.log[:len(r.log)-1]
	delete(r.points[last.set], last.id)
	// Reuse the id so add-undo-add keeps numbering contiguous.
	if last.id == r.nextID[last.set]-1 {
		r.nextID[last.set] = last.id
	}
}

// Delete removes the landmark with the given id from one set. Any
// correspondence using that id is invalidated. Returns false when the id
// does not exist.
func (r *Registry) Delete(set Set, id int) bool {
	if _, ok := r.points[set][id]; !ok {
		return false
	}
	delete(r.points[set], id)
	// Drop the matching log entry so Undo never resurrects a deleted point.
	for i := len(r.log) - 1; i >= 0; i-- {
		if r.log[i].set == set && r.log[i].id == id {
			r.log = append(r.log[:i], r.log[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties both sets and the undo log atomically.
func (r *Registry) Clear() {
	r.reset()
}

// Len returns the number of landmarks in a set, paired or not.
func (r *Registry) Len(set Set) int {
	return len(r.points[set])
}

// Points returns the landmarks of one set ordered by id, including unpaired
// entries. The result is a fresh slice.
func (r *Registry) Points(set Set) []Landmark {
	out := make([]Landmark, 0, len(r.points[set]))
	for id, p := range r.points[set] {
		out = append(out, Landmark{ID: id, Point: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PairIDs returns the ids present in both sets, ascending.
func (r *Registry) PairIDs() []int {
	ids := make([]int, 0, len(r.points[SetReference]))
	for id := range r.points[SetReference] {
		if _, ok := r.points[SetSource][id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Pairs returns the paired landmarks as parallel arrays, ordered by id.
// Only these points are eligible for estimation; unpaired trailing entries
// are excluded. The returned slices are fresh on every call.
func (r *Registry) Pairs() (reference, source []geometry.Point2D) {
	ids := r.PairIDs()
	reference = make([]geometry.Point2D, len(ids))
	source = make([]geometry.Point2D, len(ids))
	for i, id := range ids {
		reference[i] = r.points[SetReference][id]
		source[i] = r.points[SetSource][id]
	}
	return reference, source
}

// NumPairs returns the number of complete correspondences.
func (r *Registry) NumPairs() int {
	return len(r.PairIDs())
}
