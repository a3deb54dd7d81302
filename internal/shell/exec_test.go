package shell

import (
	"fmt"
	"testing"
	"time"

	"jobshell/internal/job"
	"jobshell/internal/parser"
)

// Launches a real child in the background and reaps it, covering the
// announce format and the admit-then-remove conservation path end to end.
func TestRunRegularBackgroundLifecycle(t *testing.T) {
	s, _, out, _ := newTestShell(t, 8)
	s.wait = defaultWait
	s.reaper.wait = defaultWait

	cmd, err := parser.Parse("sh -c true &")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.runRegular(cmd); err != nil {
		t.Fatalf("runRegular: %v", err)
	}

	e, ok := s.table.Find(1)
	if !ok || e.State != job.Running {
		t.Fatalf("entry = %+v, %v", e, ok)
	}
	if want := fmt.Sprintf("[1] (%d)\n", e.PID); out.String() != want {
		t.Errorf("announce = %q, want %q", out.String(), want)
	}
	out.Reset()

	var events []job.Event
	for i := 0; i < 200 && len(events) == 0; i++ {
		events = s.reaper.Drain()
		time.Sleep(10 * time.Millisecond)
	}
	if len(events) != 1 {
		t.Fatalf("events = %v", events)
	}
	want := fmt.Sprintf("[1] (%d) terminated with exit status 0", e.PID)
	if events[0].String() != want {
		t.Errorf("event = %q, want %q", events[0], want)
	}
	if s.table.Len() != 0 {
		t.Error("exited job left in table")
	}
}

func TestRunRegularBackgroundTableFull(t *testing.T) {
	s, _, out, _ := newTestShell(t, 0)
	s.wait = defaultWait
	s.reaper.wait = defaultWait

	cmd, err := parser.Parse("sh -c true &")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = s.runRegular(cmd)
	if err == nil {
		t.Fatal("launch into a full table reported no error")
	}
	if out.Len() != 0 {
		t.Errorf("untracked launch announced %q", out.String())
	}

	// The child is untracked; its exit is silently reaped.
	for i := 0; i < 20; i++ {
		if events := s.reaper.Drain(); len(events) != 0 {
			t.Fatalf("untracked child produced events %v", events)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunRegularMissingRedirectTarget(t *testing.T) {
	t.Parallel()
	s, _, _, _ := newTestShell(t, 8)

	cmd, err := parser.Parse("cat < /nonexistent/input")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.runRegular(cmd); err == nil {
		t.Fatal("missing redirect target not reported")
	}
	if s.state.ForegroundPID != 0 {
		t.Error("failed launch left foreground state behind")
	}
}

func TestDispatchBuiltinErrors(t *testing.T) {
	t.Parallel()
	s, _, _, _ := newTestShell(t, 8)

	tests := []struct {
		line string
		want string
	}{
		{"exit now", "ERROR: exit command takes no arguments"},
		{"cd", "ERROR: cd requires a directory argument"},
		{"cd a b", "ERROR: cd takes only one argument"},
		{"ln onlyone", "ERROR: ln requires source and destination arguments"},
		{"ln a b c", "ERROR: ln takes exactly two arguments"},
		{"rm", "ERROR: rm requires a file argument"},
		{"rm a b", "ERROR: rm takes only one argument"},
	}
	for _, tt := range tests {
		cmd, err := parser.Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.line, err)
		}
		err = s.dispatch(cmd)
		if err == nil || err.Error() != tt.want {
			t.Errorf("dispatch(%q) = %v, want %q", tt.line, err, tt.want)
		}
	}
	if s.quit {
		t.Error("invalid exit arguments terminated the shell")
	}
}
