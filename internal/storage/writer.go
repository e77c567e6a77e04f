package storage

import (
	"sync"

	"github.com/nestlingapp/nestling/internal/logging"
)

// BlobWriter persists snapshots of one store's document asynchronously.
//
// Every mutation enqueues the full serialized state; the writer keeps
// only the newest pending snapshot and writes snapshots one at a time,
// so the storage layer always converges on last-write-wins without two
// writes for the same key ever racing. Write failures are logged and
// swallowed: in-memory state stays authoritative for the session.
type BlobWriter struct {
	db  *DB
	key string

	mu      sync.Mutex
	cond    *sync.Cond
	pending []byte
	hasWork bool
	writing bool
	closed  bool
}

// NewBlobWriter creates a writer for the given storage key and starts
// its background loop.
func NewBlobWriter(db *DB, key string) *BlobWriter {
	w := &BlobWriter{db: db, key: key}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// Enqueue schedules a snapshot for persistence, replacing any snapshot
// still waiting to be written. It never blocks on I/O.
func (w *BlobWriter) Enqueue(data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = data
	w.hasWork = true
	w.cond.Broadcast()
}

// Flush blocks until every enqueued snapshot has been written.
func (w *BlobWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.hasWork || w.writing {
		w.cond.Wait()
	}
}

// Close drains pending work and stops the background loop.
func (w *BlobWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.cond.Broadcast()
	for w.hasWork || w.writing {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

func (w *BlobWriter) loop() {
	for {
		w.mu.Lock()
		for !w.hasWork {
			if w.closed {
				w.mu.Unlock()
				return
			}
			w.cond.Wait()
		}
		data := w.pending
		w.pending = nil
		w.hasWork = false
		w.writing = true
		w.mu.Unlock()

		if err := w.db.SetBlob(w.key, data); err != nil {
			// Best-effort persistence: the session's in-memory state
			// is the source of truth.
			logging.Warn("persist failed",
				logging.KeyStorageKey, w.key,
				logging.KeyError, err)
		}

		w.mu.Lock()
		w.writing = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}
