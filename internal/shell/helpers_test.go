package shell

import (
	"bytes"
	"testing"

	"golang.org/x/sys/unix"

	"jobshell/internal/job"
)

// fakeTerm records terminal-ownership transfers and group signals so tests
// can assert the shell always ends up owning the terminal again.
type fakeTerm struct {
	shellPgid int
	owner     int
	grants    []int
	reclaims  int
	signals   []fakeSignal

	grantErr  error
	signalErr error
}

type fakeSignal struct {
	pgid int
	sig  unix.Signal
}

func newFakeTerm() *fakeTerm {
	return &fakeTerm{shellPgid: 999, owner: 999}
}

func (f *fakeTerm) Grant(pgid int) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.owner = pgid
	f.grants = append(f.grants, pgid)
	return nil
}

func (f *fakeTerm) Reclaim() error {
	f.reclaims++
	f.owner = f.shellPgid
	return nil
}

func (f *fakeTerm) SignalGroup(pgid int, sig unix.Signal) error {
	if f.signalErr != nil {
		return f.signalErr
	}
	f.signals = append(f.signals, fakeSignal{pgid: pgid, sig: sig})
	return nil
}

// scriptedWait replays a fixed sequence of wait results; once exhausted it
// reports "no pending changes".
type scriptedWait struct {
	calls []waitResult
}

type waitResult struct {
	pid int
	ws  unix.WaitStatus
	err error
}

func (s *scriptedWait) fn(pid int, ws *unix.WaitStatus, options int) (int, error) {
	if len(s.calls) == 0 {
		return 0, nil
	}
	head := s.calls[0]
	s.calls = s.calls[1:]
	*ws = head.ws
	return head.pid, head.err
}

// newTestShell builds a shell wired to fakes: no readline, no tty, captured
// output.
func newTestShell(t *testing.T, capacity int) (*Shell, *fakeTerm, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	ft := newFakeTerm()
	s := &Shell{
		table:  job.NewTable(capacity),
		state:  job.NewControlState(),
		term:   ft,
		wait:   (&scriptedWait{}).fn,
		out:    out,
		errOut: errOut,
	}
	s.reaper = NewReaper(s.table, s.state, errOut)
	return s, ft, out, errOut
}
