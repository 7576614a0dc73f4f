package command

import (
	"context"
	"strings"

	"github.com/ManouchehrRasoulli/fscommander/pkg/logger"
	"github.com/spf13/afero"
)

type DispatcherOptions struct {
	Grammar Grammar
	// DedupeAppends skips an append whose content equals the previous
	// successful append.
	DedupeAppends bool
}

// Dispatcher parses command lines and runs them, one command at a time, in
// the order they appear.
type Dispatcher struct {
	grammar Grammar
	guard   *AppendGuard
	exec    *Executor
	logger  *logger.ColorLogger
}

func NewDispatcher(fsys afero.Fs, opts DispatcherOptions, logger *logger.ColorLogger) *Dispatcher {
	d := &Dispatcher{
		grammar: opts.Grammar,
		logger:  logger,
	}
	if d.grammar == "" {
		d.grammar = GrammarStrict
	}
	if opts.DedupeAppends {
		d.guard = &AppendGuard{}
	}
	d.exec = NewExecutor(fsys, d.guard, logger)
	return d
}

func (d *Dispatcher) Grammar() Grammar { return d.grammar }

// Dispatch runs every command parsed from line. Blank and unrecognized
// lines produce no outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) []Outcome {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	cmds := d.grammar.Parse(line)
	if len(cmds) == 0 {
		if d.logger != nil {
			d.logger.Debugf("dispatcher :: ignore unrecognized line %q", line)
		}
		return nil
	}

	outcomes := make([]Outcome, 0, len(cmds))
	for _, c := range cmds {
		if ctx.Err() != nil {
			break
		}
		if d.logger != nil {
			d.logger.Debugf("dispatcher :: run %s", c)
		}
		outcomes = append(outcomes, d.exec.Execute(c))
	}
	return outcomes
}

// DispatchAll dispatches lines in order and stops early once ctx is done.
func (d *Dispatcher) DispatchAll(ctx context.Context, lines []string) []Outcome {
	var outcomes []Outcome
	for _, line := range lines {
		if ctx.Err() != nil {
			if d.logger != nil {
				d.logger.Warnf("dispatcher :: dropping remaining lines, %v", ctx.Err())
			}
			break
		}
		outcomes = append(outcomes, d.Dispatch(ctx, line)...)
	}
	return outcomes
}
