// Package job holds the shell's job-control state: the job table, the
// foreground bookkeeping, and the tagged event/outcome types produced when
// child processes change state. It performs no syscalls and is safe to
// exercise in tests with synthetic pids.
package job

import (
	"fmt"
	"sort"

	"jobshell/internal/apperrors"
)

// State is the tracked state of a job. Jobs that exited or died by signal are
// removed from the table, never state-updated.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "Suspended"
	}
	return "Running"
}

// Entry is one tracked job: a background or stopped process group leader.
type Entry struct {
	ID    int
	PID   int
	State State
	Name  string
}

// Table is the authoritative record of all background and stopped jobs,
// indexed by pid and by job id. Capacity is fixed at construction; the shell
// is single-threaded so no locking is needed.
type Table struct {
	capacity int
	byPID    map[int]*Entry
	byID     map[int]*Entry
}

// NewTable creates an empty table holding at most capacity jobs.
func NewTable(capacity int) *Table {
	return &Table{
		capacity: capacity,
		byPID:    make(map[int]*Entry, capacity),
		byID:     make(map[int]*Entry, capacity),
	}
}

// Add inserts a new job. It fails if the pid or job id is already tracked or
// the table is full; the entry is not inserted in that case.
func (t *Table) Add(id, pid int, state State, name string) error {
	if _, ok := t.byPID[pid]; ok {
		return apperrors.Resource("job.add", fmt.Errorf("pid %d already tracked", pid))
	}
	if _, ok := t.byID[id]; ok {
		return apperrors.Resource("job.add", fmt.Errorf("job id %d already tracked", id))
	}
	if len(t.byPID) >= t.capacity {
		return apperrors.Resource("job.add", fmt.Errorf("job table full (%d jobs)", t.capacity))
	}
	e := &Entry{ID: id, PID: pid, State: state, Name: name}
	t.byPID[pid] = e
	t.byID[id] = e
	return nil
}

// RemoveByPID removes the job tracking pid, returning its job id. A missing
// pid is a no-op.
func (t *Table) RemoveByPID(pid int) (int, bool) {
	e, ok := t.byPID[pid]
	if !ok {
		return 0, false
	}
	delete(t.byPID, pid)
	delete(t.byID, e.ID)
	return e.ID, true
}

// RemoveByID removes the job with the given job id, returning its pid. A
// missing id is a no-op.
func (t *Table) RemoveByID(id int) (int, bool) {
	e, ok := t.byID[id]
	if !ok {
		return 0, false
	}
	delete(t.byPID, e.PID)
	delete(t.byID, id)
	return e.PID, true
}

// Find looks up a job by job id.
func (t *Table) Find(id int) (Entry, bool) {
	e, ok := t.byID[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// JobID returns the job id tracking pid, or 0 if untracked.
func (t *Table) JobID(pid int) int {
	if e, ok := t.byPID[pid]; ok {
		return e.ID
	}
	return 0
}

// SetState transitions the job tracking pid to state. It fails if the pid is
// not tracked.
func (t *Table) SetState(pid int, state State) error {
	e, ok := t.byPID[pid]
	if !ok {
		return apperrors.Resource("job.setstate", fmt.Errorf("pid %d not tracked", pid))
	}
	e.State = state
	return nil
}

// List returns all jobs ordered by ascending job id.
func (t *Table) List() []Entry {
	entries := make([]Entry, 0, len(t.byID))
	for _, e := range t.byID {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Len returns the number of tracked jobs.
func (t *Table) Len() int {
	return len(t.byPID)
}
