package registry

import (
	"context"
	"sync"
)

// LanguageEventType enumerates language registry change events.
type LanguageEventType string

const (
	// LanguageRegistered indicates a new language was persisted.
	LanguageRegistered LanguageEventType = "registered"
	// LanguageRemoved indicates a language was deleted.
	LanguageRemoved LanguageEventType = "removed"
)

// LanguageEvent reports language registry mutations to interested subscribers,
// typically a host deciding when to run a translation backfill.
type LanguageEvent struct {
	Type     LanguageEventType
	Language Language
}

type languageBroadcaster struct {
	mu       sync.Mutex
	watchers map[uint64]chan LanguageEvent
	nextID   uint64
}

func newLanguageBroadcaster() *languageBroadcaster {
	return &languageBroadcaster{
		watchers: make(map[uint64]chan LanguageEvent),
	}
}

func (b *languageBroadcaster) Subscribe(ctx context.Context) (<-chan LanguageEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		ch := make(chan LanguageEvent)
		close(ch)
		return ch, nil
	}
	ch := make(chan LanguageEvent, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

// Broadcast delivers the event to every live subscriber. Sends happen under
// the lock so a subscriber shutdown can never close a channel mid-send; the
// sends are non-blocking, so the lock is never held on a full buffer.
func (b *languageBroadcaster) Broadcast(evt LanguageEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
