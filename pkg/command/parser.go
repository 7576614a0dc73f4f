package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnrecognized   = errors.New("unrecognized command")
	ErrInvalidGrammar = errors.New("invalid grammar")
)

type Grammar string

const (
	// GrammarStrict requires the verb phrase at the start of the line and
	// yields at most one command.
	GrammarStrict Grammar = "strict"
	// GrammarLegacy checks every verb phrase by containment, anywhere in the
	// line, and may yield several commands for one line.
	GrammarLegacy Grammar = "legacy"
)

func ParseGrammar(s string) (Grammar, error) {
	switch g := Grammar(strings.ToLower(strings.TrimSpace(s))); g {
	case GrammarStrict, GrammarLegacy:
		return g, nil
	case "":
		return GrammarStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGrammar, s)
	}
}

// Parse splits line into commands according to g. Unrecognized lines give
// nil.
func (g Grammar) Parse(line string) []Command {
	if g == GrammarLegacy {
		return ParseLegacy(line)
	}
	c, err := Parse(line)
	if err != nil {
		return nil
	}
	return []Command{c}
}

// Parse matches line against the verbs in priority order create, delete,
// rename, append. The verb must open the line, after any leading blanks,
// and be followed by a space.
func Parse(line string) (Command, error) {
	l := strings.TrimLeft(strings.TrimSuffix(line, "\r"), " \t")
	c := Command{Line: line}

	switch {
	case strings.HasPrefix(l, CreateVerb+" "):
		c.Kind, c.Path = Create, l[len(CreateVerb)+1:]
	case strings.HasPrefix(l, DeleteVerb+" "):
		c.Kind, c.Path = Delete, l[len(DeleteVerb)+1:]
	case strings.HasPrefix(l, RenameVerb+" "):
		rest := l[len(RenameVerb)+1:]
		i := strings.Index(rest, renameSep)
		if i < 0 {
			break
		}
		c.Kind, c.Path, c.NewPath = Rename, rest[:i], rest[i+len(renameSep):]
		if c.NewPath == "" {
			c.Kind = Unrecognized
		}
	case strings.HasPrefix(l, AppendVerb+" "):
		rest := l[len(AppendVerb)+1:]
		i := strings.Index(rest, contentSep)
		if i < 0 {
			break
		}
		c.Kind, c.Path, c.Content = Append, rest[:i], rest[i+len(contentSep):]
	}

	if c.Kind == Unrecognized || c.Path == "" {
		return Command{Kind: Unrecognized, Line: line}, fmt.Errorf("%w: %q", ErrUnrecognized, line)
	}
	return c, nil
}

// ParseLegacy matches by containment: every verb found anywhere in line
// produces a command, with arguments sliced at fixed offsets from the start
// of the line. Slices that fall outside the line are dropped.
func ParseLegacy(line string) []Command {
	line = strings.TrimSuffix(line, "\r")
	var cmds []Command

	if strings.Contains(line, CreateVerb) {
		if p, ok := sliceFrom(line, len(CreateVerb)+1); ok {
			cmds = append(cmds, Command{Kind: Create, Path: p, Line: line})
		}
	}

	if strings.Contains(line, DeleteVerb) {
		if p, ok := sliceFrom(line, len(DeleteVerb)+1); ok {
			cmds = append(cmds, Command{Kind: Delete, Path: p, Line: line})
		}
	}

	if strings.Contains(line, RenameVerb) {
		end := strings.Index(line, renameSep)
		if p, ok := sliceBetween(line, len(RenameVerb)+1, end); ok {
			if np, ok := sliceFrom(line, end+len(renameSep)); ok {
				cmds = append(cmds, Command{Kind: Rename, Path: p, NewPath: np, Line: line})
			}
		}
	}

	if strings.Contains(line, AppendVerb) {
		end := strings.Index(line, contentSep)
		if p, ok := sliceBetween(line, len(AppendVerb)+1, end); ok {
			content := line[end+len(contentSep):]
			cmds = append(cmds, Command{Kind: Append, Path: p, Content: content, Line: line})
		}
	}

	return cmds
}

func sliceFrom(s string, start int) (string, bool) {
	if start >= len(s) {
		return "", false
	}
	return s[start:], true
}

func sliceBetween(s string, start, end int) (string, bool) {
	if end <= start || end > len(s) {
		return "", false
	}
	return s[start:end], true
}
