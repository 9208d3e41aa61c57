package todo

import (
	"slices"
	"strconv"
)

// ID identifies a task within the List that created it. IDs are indexes into
// the list's arena: they are never reused while the list is alive and become
// permanently invalid once their task is removed.
type ID int

// String returns the numeric form of the ID.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// TaskSet is an unordered collection of task IDs.
type TaskSet struct {
	ids map[ID]struct{}
}

// NewTaskSet returns a set holding ids.
func NewTaskSet(ids ...ID) TaskSet {
	set := TaskSet{ids: make(map[ID]struct{}, len(ids))}
	for _, id := range ids {
		set.ids[id] = struct{}{}
	}
	return set
}

// Add inserts id into the set.
func (s *TaskSet) Add(id ID) {
	if s.ids == nil {
		s.ids = make(map[ID]struct{})
	}
	s.ids[id] = struct{}{}
}

// Remove deletes id from the set.
func (s *TaskSet) Remove(id ID) {
	delete(s.ids, id)
}

// Contains reports whether id is in the set.
func (s TaskSet) Contains(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s TaskSet) Len() int {
	return len(s.ids)
}

// Union returns a new set holding the IDs of both sets.
func (s TaskSet) Union(other TaskSet) TaskSet {
	out := NewTaskSet()
	for id := range s.ids {
		out.Add(id)
	}
	for id := range other.ids {
		out.Add(id)
	}
	return out
}

// Slice returns the IDs sorted by ID. Use List.Ordered for display order.
func (s TaskSet) Slice() []ID {
	out := make([]ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
