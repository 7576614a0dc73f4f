package watcher

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// ExitName is the Name carried by the final event a subscriber receives.
const ExitName string = "exit"

type Op uint32

// Create..Chmod share their bit values with fsnotify.Op.
const (
	Create Op = 1 << iota
	Write
	Remove
	Rename
	Chmod
	Exit
)

type Event struct {
	Name string
	Op   Op
}

func fromFsnotify(e fsnotify.Event) Event {
	return Event{Name: e.Name, Op: Op(e.Op)}
}

func (op Op) String() string {
	var b strings.Builder
	for _, f := range []struct {
		op   Op
		name string
	}{
		{Exit, "EXIT_DAEMON"},
		{Create, "CREATE"},
		{Remove, "REMOVE"},
		{Write, "WRITE"},
		{Rename, "RENAME"},
		{Chmod, "CHMOD"},
	} {
		if op.Has(f.op) {
			b.WriteString("|" + f.name)
		}
	}
	if b.Len() == 0 {
		return "[no events]"
	}
	return b.String()[1:]
}

func (op Op) Has(h Op) bool { return op&h == h }

func (e Event) Has(op Op) bool { return e.Op.Has(op) }

// Changed reports whether the event may have altered the file content.
func (e Event) Changed() bool { return e.Has(Write) || e.Has(Create) }

// Gone reports whether the watched name no longer points at the same file.
func (e Event) Gone() bool { return e.Has(Remove) || e.Has(Rename) }

func (e Event) String() string {
	return fmt.Sprintf("%-13s %q", e.Op.String(), e.Name)
}
