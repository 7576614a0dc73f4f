package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ManouchehrRasoulli/fscommander/pkg/logger"
	"github.com/spf13/afero"
)

type Status int

const (
	Done Status = iota
	AlreadyExists
	NotFound
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case AlreadyExists:
		return "already-exists"
	case NotFound:
		return "not-found"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

type Outcome struct {
	Kind    Kind
	Status  Status
	Path    string
	NewPath string
	Err     error
}

// Message is the human readable status line for the outcome.
func (o Outcome) Message() string {
	switch o.Status {
	case AlreadyExists:
		return "The file already exists"
	case NotFound:
		return "The file doesn't exist"
	case Skipped:
		return "The content was already added"
	case Failed:
		return fmt.Sprintf("Error occurred! %v", o.Err)
	}

	switch o.Kind {
	case Create:
		return "The file was created successfully"
	case Delete:
		return "The file was successfully removed"
	case Rename:
		return "The file was successfully renamed"
	case Append:
		return "The content was added successfully"
	default:
		return "Unknown command"
	}
}

// Executor performs commands against a filesystem.
type Executor struct {
	fs     afero.Fs
	guard  *AppendGuard
	logger *logger.ColorLogger
}

// NewExecutor returns an executor over fsys. A nil guard disables append
// deduplication.
func NewExecutor(fsys afero.Fs, guard *AppendGuard, logger *logger.ColorLogger) *Executor {
	return &Executor{
		fs:     fsys,
		guard:  guard,
		logger: logger,
	}
}

func (x *Executor) Execute(c Command) Outcome {
	switch c.Kind {
	case Create:
		return x.CreateFile(c.Path)
	case Delete:
		return x.DeleteFile(c.Path)
	case Rename:
		return x.RenameFile(c.Path, c.NewPath)
	case Append:
		return x.AppendFile(c.Path, c.Content)
	default:
		return Outcome{Kind: Unrecognized, Status: Failed, Err: fmt.Errorf("%w: %q", ErrUnrecognized, c.Line)}
	}
}

// CreateFile creates an empty file unless path can already be opened. Any
// open failure, not only a missing file, leads to the create attempt.
func (x *Executor) CreateFile(path string) Outcome {
	o := Outcome{Kind: Create, Path: path}

	if f, err := x.fs.Open(path); err == nil {
		_ = f.Close()
		o.Status = AlreadyExists
		return x.report(o)
	}

	f, err := x.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		o.Status, o.Err = Failed, err
		return x.report(o)
	}
	if err = f.Close(); err != nil {
		o.Status, o.Err = Failed, err
	}
	return x.report(o)
}

func (x *Executor) DeleteFile(path string) Outcome {
	o := Outcome{Kind: Delete, Path: path}
	o.Status, o.Err = classify(x.fs.Remove(path))
	return x.report(o)
}

func (x *Executor) RenameFile(path, newPath string) Outcome {
	o := Outcome{Kind: Rename, Path: path, NewPath: newPath}
	o.Status, o.Err = classify(x.fs.Rename(path, newPath))
	return x.report(o)
}

// AppendFile appends content to path, creating the file when it is missing.
// Content equal to the last successful append is skipped, and only logged
// in verbose mode.
func (x *Executor) AppendFile(path, content string) Outcome {
	o := Outcome{Kind: Append, Path: path}
	if x.guard != nil && x.guard.Seen(content) {
		o.Status = Skipped
		return x.report(o)
	}

	o.Status, o.Err = classify(x.appendFile(path, content))
	if o.Status == Done && x.guard != nil {
		x.guard.Remember(content)
	}
	return x.report(o)
}

func (x *Executor) appendFile(path, content string) error {
	f, err := x.fs.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}

	n, err := f.WriteString(content)
	if err == nil && n != len(content) {
		err = fmt.Errorf("inconsistent write into %s, %d != %d", path, n, len(content))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func classify(err error) (Status, error) {
	switch {
	case err == nil:
		return Done, nil
	case errors.Is(err, fs.ErrNotExist):
		return NotFound, err
	default:
		return Failed, err
	}
}

func (x *Executor) report(o Outcome) Outcome {
	if x.logger == nil {
		return o
	}

	target := o.Path
	if o.Kind == Rename {
		target = fmt.Sprintf("%s -> %s", o.Path, o.NewPath)
	}

	switch o.Status {
	case Done:
		x.logger.Infof("executor :: %s, %s", o.Message(), target)
	case Skipped:
		x.logger.Debugf("executor :: %s, %s", o.Message(), target)
	case Failed:
		x.logger.Errorf("executor :: %s, on %s %s", o.Message(), o.Kind, target)
	default:
		x.logger.Warnf("executor :: %s, %s", o.Message(), target)
	}
	return o
}
