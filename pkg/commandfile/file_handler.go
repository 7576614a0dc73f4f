package commandfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ManouchehrRasoulli/fscommander/pkg/logger"
	"github.com/ManouchehrRasoulli/fscommander/pkg/watcher"
	"github.com/spf13/afero"
)

var (
	ErrNotRegular  = errors.New("command file is not a regular file")
	ErrInvalidMode = errors.New("invalid read mode")
)

type Mode string

const (
	// ModeTail hands over only complete lines appended since the last read.
	ModeTail Mode = "tail"
	// ModeReplay hands over every line of the file on every change.
	ModeReplay Mode = "replay"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeTail, ModeReplay:
		return m, nil
	case "":
		return ModeTail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

type Options struct {
	Mode Mode
	// SkipExisting starts a tail reader after the last complete line already
	// in the file.
	SkipExisting bool
}

// Sink receives the lines read after a change of the command file.
type Sink func(lines []string)

type Handler struct {
	fs     afero.Fs
	path   string
	mode   Mode
	sink   Sink
	logger *logger.ColorLogger

	mu     sync.Mutex
	offset int64
}

func NewHandler(fsys afero.Fs, path string, opts Options, logger *logger.ColorLogger, sink Sink) (*Handler, error) {
	logger.Printf("NEW handler :: on command file %s, mode %s\n", path, opts.Mode)

	h := Handler{
		fs:     fsys,
		path:   path,
		mode:   opts.Mode,
		sink:   sink,
		logger: logger,
	}
	if h.mode == "" {
		h.mode = ModeTail
	}

	data, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	if h.mode == ModeTail && opts.SkipExisting {
		h.offset = int64(bytes.LastIndexByte(data, '\n') + 1)
		h.logger.Printf("handler :: skip %d bytes of existing commands\n", h.offset)
	}

	return &h, nil
}

func (h *Handler) Mode() Mode { return h.mode }

func (h *Handler) Offset() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offset
}

// Reset makes the next read start from the beginning of the file.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.offset = 0
}

// snapshot reads the whole file from offset 0 into a buffer sized after
// its current length.
func (h *Handler) snapshot() ([]byte, error) {
	f, err := h.fs.Open(h.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, h.path)
	}

	buf := make([]byte, fi.Size())
	n, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	// the file may have shrunk between stat and read
	return buf[:n], nil
}

// ReadLines returns the lines to dispatch for the current file content.
func (h *Handler) ReadLines() ([]string, error) {
	data, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	if h.mode == ModeReplay {
		return splitLines(data), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if int64(len(data)) < h.offset {
		h.logger.Printf("handler :: command file shrank from %d to %d bytes, reading from start\n", h.offset, len(data))
		h.offset = 0
	}

	chunk := data[h.offset:]
	end := bytes.LastIndexByte(chunk, '\n')
	if rest := len(chunk) - end - 1; rest > 0 {
		h.logger.Debugf("handler :: holding %d byte(s) after the last newline until the line is complete", rest)
	}
	if end < 0 {
		return nil, nil
	}

	h.offset += int64(end + 1)
	return splitLines(chunk[:end]), nil
}

func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// EventHook
// handler callback function for the watcher
func (h *Handler) EventHook(e watcher.Event, err error) {
	if err != nil {
		h.logger.Errorf("ERROR handler :: got error %v on hook", err)
		return
	}

	if e.Has(watcher.Exit) {
		h.logger.Printf("handler :: watcher closed, event %s\n", e)
		return
	}

	if e.Gone() {
		h.logger.Warnf("handler :: command file went away, event %s", e)
		h.Reset()
		return
	}

	if !e.Changed() {
		return
	}

	lines, err := h.ReadLines()
	if err != nil {
		h.logger.Errorf("ERROR handler :: got error %v, on event %s, skipping", err, e)
		return
	}

	if len(lines) == 0 || h.sink == nil {
		return
	}

	h.logger.Debugf("handler :: %d line(s) on event %s", len(lines), e)
	h.sink(lines)
}
