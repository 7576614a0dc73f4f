package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func tempCommandFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "command.txt")
	require.NoError(t, os.WriteFile(p, nil, 0o644), "create command file.")
	return p
}

func TestWatcher_WithFastExit(t *testing.T) {
	defer goleak.VerifyNone(t)
	testPath := tempCommandFile(t)
	var run int64

	c := func(e Event, err error) {
		t.Log(e)
		require.NoError(t, err)
		require.Equal(t, ExitName, e.Name)
		require.Equal(t, Exit, e.Op)
		atomic.AddInt64(&run, 1)
	}

	w, e := NewWatcher(testPath, WithCallbackFunction(c))
	require.NoError(t, e, "create watcher on test path.")

	w.Close()
	require.Equal(t, int64(1), atomic.LoadInt64(&run))
}

func TestWatcher_WithFastExitForTwoHooks(t *testing.T) {
	defer goleak.VerifyNone(t)
	testPath := tempCommandFile(t)
	var run int64

	hook := func(name string) Hook {
		return func(e Event, err error) {
			t.Log(name, " : ", e)
			require.Equal(t, ExitName, e.Name)
			require.Equal(t, Exit, e.Op)
			atomic.AddInt64(&run, 1)
		}
	}

	w, e := NewWatcher(testPath,
		WithCallbackFunction(hook("hook-1")),
		WithCallbackFunction(hook("hook-2")),
		WithBufferSize(1))
	require.NoError(t, e, "create watcher on test path.")

	w.Close()
	require.Equal(t, int64(2), atomic.LoadInt64(&run))
}

func TestWatcher_RejectsMissingAndDirectory(t *testing.T) {
	dir := t.TempDir()

	_, err := NewWatcher(filepath.Join(dir, "absent.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewWatcher(dir)
	require.ErrorIs(t, err, ErrNotRegular)
}

func TestWatcher_OnlyWatchedFile(t *testing.T) {
	defer goleak.VerifyNone(t)
	testPath := tempCommandFile(t)
	siblingPath := filepath.Join(filepath.Dir(testPath), "sibling.txt")

	var mu sync.Mutex
	var got []Event
	c := func(e Event, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	}

	w, err := NewWatcher(testPath, WithCallbackFunction(c))
	require.NoError(t, err, "create watcher on test path.")

	require.NoError(t, os.WriteFile(siblingPath, []byte("noise"), 0o644), "write sibling.")

	f, err := os.OpenFile(testPath, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err, "open command file.")
	_, err = f.WriteString("create a file out.txt\n")
	require.NoError(t, err, "write into command file.")
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range got {
			if e.Has(Write) {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "write event on command file.")

	w.Close()

	mu.Lock()
	defer mu.Unlock()
	for _, e := range got[:len(got)-1] {
		require.Equal(t, w.Path(), e.Name)
	}
	last := got[len(got)-1]
	require.Equal(t, Exit, last.Op)
}

func TestOp_String(t *testing.T) {
	require.Equal(t, "[no events]", Op(0).String())
	require.Equal(t, "WRITE", Write.String())
	require.Equal(t, "CREATE|WRITE", (Create | Write).String())
	require.Equal(t, "EXIT_DAEMON", Exit.String())

	e := Event{Name: "command.txt", Op: Remove}
	require.True(t, e.Gone())
	require.False(t, e.Changed())
}
