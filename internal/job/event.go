package job

import "fmt"

// EventKind discriminates the child state changes observed by the reaper.
type EventKind int

const (
	EventExited EventKind = iota
	EventSignaled
	EventStopped
	EventContinued
)

// Event is one reaped child state change, already applied to the job table.
// JobID is 0 only for a Signaled foreground process that was never admitted
// to the table.
type Event struct {
	Kind   EventKind
	PID    int
	JobID  int
	Code   int // exit status, Exited only
	Signal int // signal number, Signaled and Stopped
}

// String renders the status line announced to the user.
func (e Event) String() string {
	switch e.Kind {
	case EventExited:
		return fmt.Sprintf("[%d] (%d) terminated with exit status %d", e.JobID, e.PID, e.Code)
	case EventSignaled:
		if e.JobID > 0 {
			return fmt.Sprintf("[%d] (%d) terminated by signal %d", e.JobID, e.PID, e.Signal)
		}
		return fmt.Sprintf("(%d) terminated by signal %d", e.PID, e.Signal)
	case EventStopped:
		return fmt.Sprintf("[%d] (%d) suspended by signal %d", e.JobID, e.PID, e.Signal)
	case EventContinued:
		return fmt.Sprintf("[%d] (%d) resumed", e.JobID, e.PID)
	}
	return fmt.Sprintf("(%d) unknown state change", e.PID)
}

// OutcomeKind discriminates how a foreground wait ended.
type OutcomeKind int

const (
	OutcomeExited OutcomeKind = iota
	OutcomeSignaled
	OutcomeStopped
)

// Outcome is the first state change of a foreground process, returned by the
// foreground runner and the fg built-in.
type Outcome struct {
	Kind   OutcomeKind
	Code   int
	Signal int
}

// Announce renders the line printed when a background job is admitted.
func Announce(jobID, pid int) string {
	return fmt.Sprintf("[%d] (%d)", jobID, pid)
}
