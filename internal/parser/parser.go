// Package parser turns one input line into a tagged Command. Classification
// happens once here so the dispatcher switches on a variant instead of
// re-matching strings.
package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"jobshell/internal/apperrors"
)

// Kind discriminates the parsed command variants.
type Kind int

const (
	Regular Kind = iota
	Fg
	Bg
	Jobs
	Exit
	Cd
	Ln
	Rm
)

// Command is one parsed input line.
type Command struct {
	Kind       Kind
	Path       string   // executable path, Regular only
	Argv       []string // argv[0] is the basename of Path
	InputFile  string
	OutputFile string
	Append     bool
	Background bool
	JobID      int // fg/bg target
}

// builtins maps builtin names to their variants. A path containing '/' is
// never a builtin.
var builtins = map[string]Kind{
	"jobs": Jobs,
	"exit": Exit,
	"cd":   Cd,
	"ln":   Ln,
	"rm":   Rm,
}

// Parse splits, classifies and validates one line. It returns nil for a
// blank line and a user error for malformed input.
func Parse(line string) (*Command, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return nil, apperrors.User("ERROR: Invalid command line")
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	if tokens[0] == "fg" || tokens[0] == "bg" {
		return parseJobControl(tokens)
	}

	cmd := &Command{}

	if tokens[len(tokens)-1] == "&" {
		cmd.Background = true
		tokens = tokens[:len(tokens)-1]
	}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "<":
			if cmd.InputFile != "" || i+1 >= len(tokens) {
				return nil, apperrors.User("ERROR: Invalid input redirection")
			}
			i++
			cmd.InputFile = tokens[i]
		case ">", ">>":
			if cmd.OutputFile != "" || i+1 >= len(tokens) {
				return nil, apperrors.User("ERROR: Invalid output redirection")
			}
			cmd.Append = tokens[i] == ">>"
			i++
			cmd.OutputFile = tokens[i]
		default:
			if cmd.Path == "" {
				cmd.Path = tokens[i]
				cmd.Argv = append(cmd.Argv, filepath.Base(tokens[i]))
			} else {
				cmd.Argv = append(cmd.Argv, tokens[i])
			}
		}
	}

	if cmd.Path == "" {
		return nil, apperrors.User("ERROR: No command specified")
	}

	cmd.Kind = Regular
	if !strings.Contains(cmd.Path, "/") {
		if kind, ok := builtins[cmd.Path]; ok {
			cmd.Kind = kind
		}
	}
	return cmd, nil
}

// parseJobControl validates "fg %N" / "bg %N".
func parseJobControl(tokens []string) (*Command, error) {
	kind := Fg
	if tokens[0] == "bg" {
		kind = Bg
	}

	if len(tokens) < 2 || !strings.HasPrefix(tokens[1], "%") {
		return nil, apperrors.User("ERROR: Expected %<job-id>")
	}
	id, err := strconv.Atoi(tokens[1][1:])
	if err != nil || id < 0 {
		return nil, apperrors.User("ERROR: Invalid job ID")
	}
	if len(tokens) > 2 {
		return nil, apperrors.User("ERROR: Too many arguments")
	}

	return &Command{
		Kind:  kind,
		Path:  tokens[0],
		Argv:  []string{tokens[0]},
		JobID: id,
	}, nil
}
