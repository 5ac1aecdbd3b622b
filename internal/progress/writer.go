package progress

import (
	"context"
	"log"
	"sync"
	"time"
)

const writeTimeout = 10 * time.Second

// writeBehind applies storage writes on a single goroutine. Values are whole
// blobs, so only the latest pending value per key is kept: queuing never
// blocks on storage, however slow it is. Failures are logged and dropped.
type writeBehind struct {
	storage Storage
	wake    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	pending map[string]*string // nil removes the key
	order   []string
	queued  uint64
	applied uint64
	// progress is closed and replaced after every applied batch.
	progress chan struct{}
	closed   bool
}

func newWriteBehind(storage Storage) *writeBehind {
	w := &writeBehind{
		storage:  storage,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		pending:  make(map[string]*string),
		progress: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writeBehind) run() {
	defer close(w.done)
	for {
		_, open := <-w.wake
		w.drain()
		if !open {
			return
		}
	}
}

// drain applies pending batches until none is left.
func (w *writeBehind) drain() {
	for {
		w.mu.Lock()
		if len(w.order) == 0 {
			w.mu.Unlock()
			return
		}
		order, pending, target := w.order, w.pending, w.queued
		w.order = nil
		w.pending = make(map[string]*string)
		w.mu.Unlock()

		for _, key := range order {
			w.apply(key, pending[key])
		}

		w.mu.Lock()
		w.applied = target
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

func (w *writeBehind) apply(key string, value *string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	if value == nil {
		err = w.storage.RemoveItem(ctx, key)
	} else {
		err = w.storage.SetItem(ctx, key, *value)
	}
	if err != nil {
		log.Printf("[STORE] Failed to persist %s: %v", key, err)
	}
}

func (w *writeBehind) enqueue(key string, value *string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		log.Printf("[STORE] Writer closed, %s not persisted", key)
		return
	}
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
	w.queued++
	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()
}

func (w *writeBehind) set(key, value string) {
	w.enqueue(key, &value)
}

func (w *writeBehind) remove(key string) {
	w.enqueue(key, nil)
}

// flush blocks until every write queued before the call has been applied.
func (w *writeBehind) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.queued
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if w.applied >= target {
			w.mu.Unlock()
			return nil
		}
		progress := w.progress
		w.mu.Unlock()

		select {
		case <-progress:
		case <-w.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// close drains pending writes and stops the goroutine.
func (w *writeBehind) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.wake)
	}
	w.mu.Unlock()
	<-w.done
}
