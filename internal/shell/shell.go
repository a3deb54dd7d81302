// Package shell runs the read-eval loop and owns the job-control core: the
// reaper, the terminal controller, the foreground wait, and the fg/bg/jobs
// built-ins. The shell itself is single-threaded; all coordination with
// children goes through explicit wait calls.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"jobshell/internal/apperrors"
	"jobshell/internal/config"
	"jobshell/internal/history"
	"jobshell/internal/job"
	"jobshell/internal/parser"
)

type Shell struct {
	config  *config.Config
	history *history.History
	table   *job.Table
	state   *job.ControlState
	term    TermController
	reaper  *Reaper

	reader      *readline.Instance // interactive input, nil when piped
	plainReader *bufio.Reader      // non-interactive input
	interactive bool
	ttyFd       int

	wait       waitFunc
	signalChan chan os.Signal
	out        io.Writer
	errOut     io.Writer
	quit       bool
}

// New builds a shell for the given configuration. Stdin decides the mode:
// a real terminal gets readline and terminal-ownership handoffs, anything
// else gets a plain line reader and no-op terminal control.
func New(cfg *config.Config) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile)
	if err != nil {
		return nil, apperrors.Fatal("history.load", err)
	}

	s := &Shell{
		config:     cfg,
		history:    hist,
		table:      job.NewTable(cfg.MaxJobs),
		state:      job.NewControlState(),
		wait:       defaultWait,
		signalChan: make(chan os.Signal, 1),
		out:        os.Stdout,
		errOut:     os.Stderr,
		ttyFd:      int(os.Stdin.Fd()),
	}
	s.reaper = NewReaper(s.table, s.state, s.errOut)

	s.interactive = term.IsTerminal(s.ttyFd)
	if s.interactive {
		s.term = NewTermController(s.ttyFd)
		rl, err := readline.NewEx(&readline.Config{
			Prompt:      cfg.Prompt,
			HistoryFile: cfg.HistoryFile,
		})
		if err != nil {
			return nil, apperrors.Fatal("readline.init", err)
		}
		s.reader = rl
	} else {
		s.term = NewPipeController()
		s.plainReader = bufio.NewReader(os.Stdin)
	}

	return s, nil
}

// Run is the read-eval loop: reap, read one line, dispatch. It returns on
// EOF or the exit built-in; the job table is simply released, no tracked
// process is killed.
func (s *Shell) Run() error {
	s.setupSignalHandling()
	defer s.stopSignalHandling()
	if s.reader != nil {
		defer s.reader.Close()
	}
	defer func() {
		if err := s.history.Save(); err != nil {
			slog.Warn("saving history failed", "error", err)
		}
	}()

	for !s.quit {
		for _, ev := range s.reaper.Drain() {
			fmt.Fprintln(s.out, ev)
		}

		line, err := s.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.history.Add(line)

		cmd, err := parser.Parse(line)
		if err != nil {
			s.reportError(err)
			continue
		}
		if cmd == nil {
			continue
		}

		if err := s.dispatch(cmd); err != nil {
			s.reportError(err)
		}
	}
	return nil
}

func (s *Shell) readLine() (string, error) {
	if s.reader != nil {
		line, err := s.reader.Readline()
		if err == readline.ErrInterrupt {
			return "", errors.New("interrupted")
		}
		return line, err
	}
	line, err := s.plainReader.ReadString('\n')
	if err != nil && line == "" {
		return "", io.EOF
	}
	return line, nil
}

func (s *Shell) dispatch(cmd *parser.Command) error {
	switch cmd.Kind {
	case parser.Fg:
		return s.foreground(cmd.JobID)
	case parser.Bg:
		return s.background(cmd.JobID)
	case parser.Jobs:
		s.listJobs()
		return nil
	case parser.Exit:
		return s.builtinExit(cmd)
	case parser.Cd:
		return s.builtinCd(cmd)
	case parser.Ln:
		return s.builtinLn(cmd)
	case parser.Rm:
		return s.builtinRm(cmd)
	default:
		return s.runRegular(cmd)
	}
}

// reportError prints user errors verbatim (they carry their exact wording)
// and prefixes everything else. Errors never terminate the loop.
func (s *Shell) reportError(err error) {
	if errors.Is(err, apperrors.ErrUser) {
		fmt.Fprintln(s.errOut, err)
		return
	}
	fmt.Fprintf(s.errOut, "jobshell: %v\n", err)
}
