package shell

import (
	"os"

	"jobshell/internal/apperrors"
	"jobshell/internal/parser"
)

// The file-system built-ins perform one syscall each. Argument counts are
// validated here; the parser already stripped redirections and classified
// the command.

func (s *Shell) builtinExit(cmd *parser.Command) error {
	if len(cmd.Argv) > 1 {
		return apperrors.User("ERROR: exit command takes no arguments")
	}
	s.quit = true
	return nil
}

func (s *Shell) builtinCd(cmd *parser.Command) error {
	if len(cmd.Argv) < 2 {
		return apperrors.User("ERROR: cd requires a directory argument")
	}
	if len(cmd.Argv) > 2 {
		return apperrors.User("ERROR: cd takes only one argument")
	}
	if err := os.Chdir(cmd.Argv[1]); err != nil {
		return apperrors.Resource("cd", err)
	}
	return nil
}

func (s *Shell) builtinLn(cmd *parser.Command) error {
	if len(cmd.Argv) < 3 {
		return apperrors.User("ERROR: ln requires source and destination arguments")
	}
	if len(cmd.Argv) > 3 {
		return apperrors.User("ERROR: ln takes exactly two arguments")
	}
	if err := os.Link(cmd.Argv[1], cmd.Argv[2]); err != nil {
		return apperrors.Resource("ln", err)
	}
	return nil
}

func (s *Shell) builtinRm(cmd *parser.Command) error {
	if len(cmd.Argv) < 2 {
		return apperrors.User("ERROR: rm requires a file argument")
	}
	if len(cmd.Argv) > 2 {
		return apperrors.User("ERROR: rm takes only one argument")
	}
	if err := os.Remove(cmd.Argv[1]); err != nil {
		return apperrors.Resource("rm", err)
	}
	return nil
}
