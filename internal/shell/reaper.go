package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sys/unix"

	"jobshell/internal/job"
)

// waitFunc is the wait4 seam. Tests substitute scripted statuses; the real
// implementation is defaultWait.
type waitFunc func(pid int, ws *unix.WaitStatus, options int) (int, error)

func defaultWait(pid int, ws *unix.WaitStatus, options int) (int, error) {
	return unix.Wait4(pid, ws, options, nil)
}

// Reaper drains pending child state changes without blocking and applies the
// resulting transitions to the job table. It is called once per prompt so
// finished background jobs are reported before the next command runs.
type Reaper struct {
	table  *job.Table
	state  *job.ControlState
	wait   waitFunc
	errOut io.Writer
}

func NewReaper(table *job.Table, state *job.ControlState, errOut io.Writer) *Reaper {
	return &Reaper{
		table:  table,
		state:  state,
		wait:   defaultWait,
		errOut: errOut,
	}
}

// Drain polls for any child whose state changed until none remain, returning
// one event per change the caller should announce. An empty drain leaves the
// table untouched.
func (r *Reaper) Drain() []job.Event {
	var events []job.Event
	for {
		var ws unix.WaitStatus
		pid, err := r.wait(-1, &ws, unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED)
		if err != nil {
			if !errors.Is(err, unix.ECHILD) {
				slog.Warn("reap failed", "error", err)
			}
			return events
		}
		if pid <= 0 {
			return events
		}
		if ev, ok := r.apply(pid, ws); ok {
			events = append(events, ev)
		}
	}
}

// apply classifies one wait status and updates the table. ok is false when
// the change concerns nobody the shell tracks.
func (r *Reaper) apply(pid int, ws unix.WaitStatus) (job.Event, bool) {
	jid := r.table.JobID(pid)
	if jid == 0 && pid != r.state.ForegroundPID {
		slog.Debug("dropping state change for untracked pid", "pid", pid)
		return job.Event{}, false
	}

	switch {
	case ws.Exited():
		if jid == 0 {
			return job.Event{}, false
		}
		r.table.RemoveByPID(pid)
		return job.Event{Kind: job.EventExited, PID: pid, JobID: jid, Code: ws.ExitStatus()}, true

	case ws.Signaled():
		if jid > 0 {
			r.table.RemoveByPID(pid)
		}
		return job.Event{Kind: job.EventSignaled, PID: pid, JobID: jid, Signal: int(ws.Signal())}, true

	case ws.Stopped():
		sig := int(ws.StopSignal())
		if jid == 0 {
			name := r.state.ForegroundName
			if name == "" {
				name = "fg_command"
			}
			id, err := r.state.Admit(r.table, pid, job.Stopped, name)
			if err != nil {
				fmt.Fprintln(r.errOut, "Error: Failed to add job to job list")
				return job.Event{}, false
			}
			jid = id
		} else {
			r.table.SetState(pid, job.Stopped)
		}
		return job.Event{Kind: job.EventStopped, PID: pid, JobID: jid, Signal: sig}, true

	case ws.Continued():
		if jid == 0 {
			return job.Event{}, false
		}
		r.table.SetState(pid, job.Running)
		return job.Event{Kind: job.EventContinued, PID: pid, JobID: jid}, true
	}

	return job.Event{}, false
}
