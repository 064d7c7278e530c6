// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob

import (
	"log/slog"
	"sync"
)

// RecordKind classifies a world record.
type RecordKind string

// Record kinds.
const (
	RecordPrint     RecordKind = "print"
	RecordMessage   RecordKind = "message"
	RecordSound     RecordKind = "sound"
	RecordParticles RecordKind = "particles"
	RecordSpawn     RecordKind = "spawn"
	RecordState     RecordKind = "state"
	RecordDeath     RecordKind = "death"
)

// Record is one observable side effect of a script: printed text, a
// played sound, a state change.
type Record struct {
	Kind RecordKind
	Mob  *Mob
	Text string
}

// Feed distributes world records to subscribers. Channel subscribers may
// miss records when their buffer is full; handlers see every record.
type Feed struct {
	mu       sync.RWMutex
	subs     []chan Record
	handlers []feedHandler
	nextID   int
}

type feedHandler struct {
	id int
	fn func(Record)
}

// NewFeed creates a new feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe creates a channel for receiving records.
func (f *Feed) Subscribe() chan Record {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan Record, 100)
	f.subs = append(f.subs, ch)
	return ch
}

// Unsubscribe removes and closes a channel.
func (f *Feed) Unsubscribe(ch chan Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, sub := range f.subs {
		if sub == ch {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Handle calls fn synchronously for every record published until the
// returned cancel function runs. fn runs on the publishing goroutine.
func (f *Feed) Handle(fn func(Record)) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.handlers = append(f.handlers, feedHandler{id: id, fn: fn})
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, h := range f.handlers {
			if h.id == id {
				f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends a record to every subscriber without blocking the
// simulation; a full subscriber misses the record. Handlers run after the
// channel subscribers, outside the lock.
func (f *Feed) Publish(rec Record) {
	f.mu.RLock()
	for _, ch := range f.subs {
		select {
		case ch <- rec:
		default:
			slog.Debug("feed subscriber full, dropping record", "kind", string(rec.Kind))
		}
	}
	handlers := make([]func(Record), len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.fn
	}
	f.mu.RUnlock()

	for _, fn := range handlers {
		fn(rec)
	}
}
