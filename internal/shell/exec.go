package shell

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"jobshell/internal/apperrors"
	"jobshell/internal/job"
	"jobshell/internal/parser"
)

// runRegular launches one external command in its own process group and
// either waits on it (foreground) or admits it to the job table (background).
func (s *Shell) runRegular(cmd *parser.Command) error {
	c := exec.Command(cmd.Path)
	c.Args = cmd.Argv
	c.Stderr = os.Stderr

	closers, err := s.wireStdio(c, cmd)
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()
	if err != nil {
		return err
	}

	// The child must be its own group leader before any control signal can
	// reach it. Setpgid happens in the child between fork and exec with
	// signals masked; Foreground additionally performs the TIOCSPGRP handoff
	// in the same window, so there is no gap where a terminal-driven signal
	// could hit the child under the shell's group.
	attr := &syscall.SysProcAttr{Setpgid: true}
	if !cmd.Background && s.interactive {
		attr.Foreground = true
		attr.Ctty = s.ttyFd
	}
	c.SysProcAttr = attr

	if err := c.Start(); err != nil {
		return apperrors.Resource("exec "+cmd.Path, err)
	}
	pid := c.Process.Pid

	// Belt and braces on the parent side, same as the child-side Setpgid.
	// EACCES means the child already exec'd with the group set.
	if err := unix.Setpgid(pid, pid); err != nil && err != unix.EACCES {
		slog.Debug("parent setpgid", "pid", pid, "error", err)
	}

	slog.Debug("launched", "path", cmd.Path, "pid", pid, "background", cmd.Background)

	if cmd.Background {
		id, err := s.state.Admit(s.table, pid, job.Running, cmd.Path)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, job.Announce(id, pid))
		return nil
	}

	if err := s.term.Grant(pid); err != nil {
		s.term.Reclaim()
		return err
	}
	_, err = s.waitForeground(pid, 0, cmd.Path)
	return err
}

// wireStdio applies redirections to c and returns files the parent must close
// after the fork. Background children read from /dev/null so they cannot
// steal the terminal's input.
func (s *Shell) wireStdio(c *exec.Cmd, cmd *parser.Command) ([]*os.File, error) {
	var closers []*os.File

	switch {
	case cmd.InputFile != "":
		f, err := os.Open(cmd.InputFile)
		if err != nil {
			return nil, apperrors.Resource("open "+cmd.InputFile, err)
		}
		c.Stdin = f
		closers = append(closers, f)
	case cmd.Background:
		f, err := os.Open(os.DevNull)
		if err != nil {
			return closers, apperrors.Resource("open "+os.DevNull, err)
		}
		c.Stdin = f
		closers = append(closers, f)
	default:
		c.Stdin = os.Stdin
	}

	if cmd.OutputFile != "" {
		flags := os.O_WRONLY | os.O_CREATE
		if cmd.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(cmd.OutputFile, flags, 0644)
		if err != nil {
			return closers, apperrors.Resource("open "+cmd.OutputFile, err)
		}
		c.Stdout = f
		closers = append(closers, f)
	} else {
		c.Stdout = os.Stdout
	}

	return closers, nil
}

// waitForeground blocks for the first state change of the foreground process
// and settles the job table accordingly. Terminal ownership always returns to
// the shell, whatever path is taken out of here.
func (s *Shell) waitForeground(pid, jobID int, name string) (job.Outcome, error) {
	s.state.SetForeground(pid, jobID, name)
	defer func() {
		s.state.ClearForeground()
		if err := s.term.Reclaim(); err != nil {
			slog.Warn("terminal reclaim failed", "error", err)
		}
	}()

	var ws unix.WaitStatus
	if _, err := s.wait(pid, &ws, unix.WUNTRACED); err != nil {
		return job.Outcome{}, apperrors.Resource("wait", err)
	}

	switch {
	case ws.Stopped():
		sig := int(ws.StopSignal())
		if jobID > 0 {
			s.table.SetState(pid, job.Stopped)
		} else {
			id, err := s.state.Admit(s.table, pid, job.Stopped, name)
			if err != nil {
				fmt.Fprintln(s.errOut, "Error: Failed to add job to job list")
				return job.Outcome{Kind: job.OutcomeStopped, Signal: sig}, nil
			}
			jobID = id
		}
		fmt.Fprintln(s.out, job.Event{Kind: job.EventStopped, PID: pid, JobID: jobID, Signal: sig})
		return job.Outcome{Kind: job.OutcomeStopped, Signal: sig}, nil

	case ws.Signaled():
		sig := int(ws.Signal())
		s.table.RemoveByPID(pid)
		fmt.Fprintln(s.out, job.Event{Kind: job.EventSignaled, PID: pid, Signal: sig})
		return job.Outcome{Kind: job.OutcomeSignaled, Signal: sig}, nil

	default:
		// A plain foreground exit is silent; only table entries get notices.
		s.table.RemoveByPID(pid)
		return job.Outcome{Kind: job.OutcomeExited, Code: ws.ExitStatus()}, nil
	}
}
