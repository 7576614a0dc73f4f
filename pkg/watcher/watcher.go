package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/tomb.v2"
)

var ErrNotRegular = errors.New("watched path is not a regular file")

// Hook receives events for the watched file, or an error reported by the
// underlying notifier. The last call a hook gets is an Exit event.
type Hook func(e Event, err error)

type Option func(w *Watcher)

func WithCallbackFunction(hook Hook) Option {
	return func(w *Watcher) {
		w.hooks = append(w.hooks, hook)
	}
}

func WithBufferSize(size int32) Option {
	return func(w *Watcher) {
		if size > 0 {
			w.bufferSize = size
		}
	}
}

type message struct {
	e   Event
	err error
}

// Watcher observes a single file. fsnotify watches the parent directory so
// that editors replacing the file through a rename are still seen; events
// for other names in that directory are dropped.
type Watcher struct {
	fw         *fsnotify.Watcher
	t          tomb.Tomb
	hooks      []Hook
	subs       []chan message
	bufferSize int32
	path       string
}

func NewWatcher(path string, options ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, abs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create new watcher: %w", err)
	}

	if err = fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:         fw,
		bufferSize: 25,
		path:       abs,
	}

	for _, op := range options {
		op(w)
	}

	for _, hook := range w.hooks {
		ch := make(chan message, w.bufferSize)
		w.subs = append(w.subs, ch)

		hook := hook
		w.t.Go(func() error {
			for m := range ch {
				hook(m.e, m.err)
			}
			return nil
		})
	}

	w.t.Go(w.run)

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

func (w *Watcher) fanOut(m message) {
	for i := range w.subs {
		w.subs[i] <- m
	}
}

func (w *Watcher) run() error {
	defer func() {
		w.fanOut(message{e: Event{Name: ExitName, Op: Exit}})
		for i := range w.subs {
			close(w.subs[i])
		}
	}()

	events, errs := w.fw.Events, w.fw.Errors
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if len(e.Name) == 0 || filepath.Clean(e.Name) != w.path {
				continue
			}
			w.fanOut(message{e: fromFsnotify(e)})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.fanOut(message{err: err})
		case <-w.t.Dying():
			return nil
		}
	}
}

// Close stops the notifier, delivers Exit to every hook and waits until all
// hooks have returned.
func (w *Watcher) Close() {
	_ = w.fw.Close()
	w.t.Kill(nil)
	_ = w.t.Wait()
}
