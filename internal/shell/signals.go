package shell

import (
	"log/slog"
	"os/signal"
	"syscall"
)

// setupSignalHandling shields the shell from terminal-stopping signals.
// SIGINT and SIGTSTP are caught and discarded: while a foreground child
// runs, the terminal delivers them to the child's group, not ours; at the
// prompt they must not interrupt or stop the shell itself. Catching (rather
// than ignoring) means children exec with default dispositions restored.
// SIGQUIT keeps its default for core-dump diagnostics.
func (s *Shell) setupSignalHandling() {
	signal.Notify(s.signalChan, syscall.SIGINT, syscall.SIGTSTP)
	go s.handleSignals()
}

func (s *Shell) handleSignals() {
	for sig := range s.signalChan {
		slog.Debug("discarding signal", "signal", sig)
	}
}

func (s *Shell) stopSignalHandling() {
	signal.Stop(s.signalChan)
	close(s.signalChan)
}
