/*
Package command turns lines of the command file into filesystem actions.

	create a file <path>
	delete the file <path>
	rename the file <path> to <new-path>
	add to the file <path> the content <content>

A line is parsed into a Command, executed by an Executor and reported as an
Outcome. The Dispatcher ties both together and owns the AppendGuard.
*/
package command

import "fmt"

const (
	CreateVerb = "create a file"
	DeleteVerb = "delete the file"
	RenameVerb = "rename the file"
	AppendVerb = "add to the file"

	renameSep  = " to "
	contentSep = " the content "
)

type Kind int

const (
	Unrecognized Kind = iota
	Create
	Delete
	Rename
	Append
)

func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Delete:
		return "delete"
	case Rename:
		return "rename"
	case Append:
		return "append"
	default:
		return "unrecognized"
	}
}

type Command struct {
	Kind    Kind
	Path    string
	NewPath string
	Content string
	// Line is the raw text the command was parsed from.
	Line string
}

func (c Command) String() string {
	switch c.Kind {
	case Rename:
		return fmt.Sprintf("%s %q -> %q", c.Kind, c.Path, c.NewPath)
	case Append:
		return fmt.Sprintf("%s %q (%d bytes)", c.Kind, c.Path, len(c.Content))
	case Unrecognized:
		return fmt.Sprintf("%s %q", c.Kind, c.Line)
	default:
		return fmt.Sprintf("%s %q", c.Kind, c.Path)
	}
}
