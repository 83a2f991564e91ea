package reactive

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Dependency tracking is goroutine-scoped. Each effect run installs its
// listener under the id of the goroutine it runs on, so effects created
// or re-run concurrently (one per live connection, for example) never
// observe each other's reads, and a read outside any effect subscribes
// nothing even while another goroutine's effect is mid-run.
var (
	trackingMu sync.Mutex
	tracking   = map[uint64]Listener{}
)

// setCurrentListener installs l as the tracking listener for the calling
// goroutine and returns the previous one so callers can restore it.
func setCurrentListener(l Listener) Listener {
	gid := goroutineID()

	trackingMu.Lock()
	defer trackingMu.Unlock()

	old := tracking[gid]
	if l == nil {
		delete(tracking, gid)
	} else {
		tracking[gid] = l
	}
	return old
}

// getCurrentListener returns the listener the calling goroutine is
// tracking for, if any.
func getCurrentListener() Listener {
	gid := goroutineID()

	trackingMu.Lock()
	defer trackingMu.Unlock()
	return tracking[gid]
}

// Untrack runs fn without dependency tracking and returns its result.
func Untrack[T any](fn func() T) T {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	return fn()
}

// goroutineID extracts the calling goroutine's id from its stack header,
// "goroutine N [running]:". The runtime exposes no API for this; the
// header format has been stable since Go 1.4.
func goroutineID() uint64 {
	var buf [32]byte
	header := buf[:runtime.Stack(buf[:], false)]
	header = bytes.TrimPrefix(header, []byte("goroutine "))
	if i := bytes.IndexByte(header, ' '); i >= 0 {
		header = header[:i]
	}
	id, _ := strconv.ParseUint(string(header), 10, 64)
	return id
}
