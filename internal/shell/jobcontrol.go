package shell

import (
	"fmt"

	"golang.org/x/sys/unix"

	"jobshell/internal/apperrors"
	"jobshell/internal/job"
)

// foreground implements `fg %N`: resume the job's group, hand it the
// terminal, and wait exactly as a fresh foreground launch would. Works for
// stopped and running jobs alike.
func (s *Shell) foreground(jobID int) error {
	entry, ok := s.table.Find(jobID)
	if !ok {
		return apperrors.User("ERROR: No such job")
	}

	if err := s.term.Grant(entry.PID); err != nil {
		s.term.Reclaim()
		return err
	}
	if err := s.term.SignalGroup(entry.PID, unix.SIGCONT); err != nil {
		s.term.Reclaim()
		return err
	}
	s.table.SetState(entry.PID, job.Running)

	_, err := s.waitForeground(entry.PID, jobID, entry.Name)
	return err
}

// background implements `bg %N`: resume a stopped job without waiting.
// Confirmation of the continue is left to the next reaper pass.
func (s *Shell) background(jobID int) error {
	entry, ok := s.table.Find(jobID)
	if !ok {
		return apperrors.User("ERROR: No such job")
	}
	if entry.State != job.Stopped {
		return apperrors.User("ERROR: Job is already running")
	}

	if err := s.term.SignalGroup(entry.PID, unix.SIGCONT); err != nil {
		return err
	}
	return s.table.SetState(entry.PID, job.Running)
}

// listJobs prints the table, ascending job id.
func (s *Shell) listJobs() {
	for _, e := range s.table.List() {
		fmt.Fprintf(s.out, "[%d] (%d) %s %s\n", e.ID, e.PID, e.State, e.Name)
	}
}
