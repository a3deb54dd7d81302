package shell

import (
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"jobshell/internal/apperrors"
)

// TermController arbitrates terminal ownership between the shell's process
// group and a job's process group, and delivers signals to whole groups.
type TermController interface {
	// Grant gives terminal control to the named process group.
	Grant(pgid int) error
	// Reclaim returns terminal control to the shell's own process group.
	Reclaim() error
	// SignalGroup sends sig to every process in the group.
	SignalGroup(pgid int, sig unix.Signal) error
}

// ttyController drives a real controlling terminal.
type ttyController struct {
	fd        int
	shellPgid int
}

// NewTermController returns a controller for the terminal on fd, remembering
// the shell's own process group as the reclaim target.
func NewTermController(fd int) TermController {
	return &ttyController{fd: fd, shellPgid: unix.Getpgrp()}
}

func (t *ttyController) Grant(pgid int) error {
	if err := t.setForeground(pgid); err != nil {
		return apperrors.Resource("terminal.grant", err)
	}
	return nil
}

func (t *ttyController) Reclaim() error {
	if err := t.setForeground(t.shellPgid); err != nil {
		return apperrors.Resource("terminal.reclaim", err)
	}
	return nil
}

func (t *ttyController) SignalGroup(pgid int, sig unix.Signal) error {
	if err := unix.Kill(-pgid, sig); err != nil {
		return apperrors.Resource("signal.group", err)
	}
	return nil
}

// setForeground changes the terminal's foreground process group. The shell is
// usually not in that group at this point, so TIOCSPGRP would raise SIGTTOU;
// the signal is ignored only for the duration of the call so that children
// forked later still exec with the default disposition.
func (t *ttyController) setForeground(pgid int) error {
	signal.Ignore(syscall.SIGTTOU)
	defer signal.Reset(syscall.SIGTTOU)
	return unix.IoctlSetPointerInt(t.fd, unix.TIOCSPGRP, pgid)
}

// pipeController serves non-interactive sessions. There is no controlling
// terminal to hand over, so ownership transfers are no-ops; group signalling
// still works.
type pipeController struct{}

// NewPipeController returns the controller used when stdin is not a terminal.
func NewPipeController() TermController {
	return pipeController{}
}

func (pipeController) Grant(int) error { return nil }

func (pipeController) Reclaim() error { return nil }

func (pipeController) SignalGroup(pgid int, sig unix.Signal) error {
	if err := unix.Kill(-pgid, sig); err != nil {
		return apperrors.Resource("signal.group", err)
	}
	return nil
}
