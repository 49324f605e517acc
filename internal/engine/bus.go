package engine

import (
	"slices"
	"sync"

	"codeberg.org/mutker/vitalstats/internal/binding"
)

// EventType represents the type of event published by the engine
type EventType int

const (
	StartUp EventType = iota
	NewLoopPacket
	NewArchiveRecord
	ShutDown
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	switch et {
	case StartUp:
		return "StartUp"
	case NewLoopPacket:
		return "NewLoopPacket"
	case NewArchiveRecord:
		return "NewArchiveRecord"
	case ShutDown:
		return "ShutDown"
	default:
		return "Unknown"
	}
}

// EventTypeFor returns the record event that carries records of ctx.
func EventTypeFor(ctx binding.Context) (EventType, bool) {
	switch ctx {
	case binding.Loop:
		return NewLoopPacket, true
	case binding.Archive:
		return NewArchiveRecord, true
	default:
		return 0, false
	}
}

type Event interface{ EventType() EventType }

// RecordEvent carries a record to subscribers, who may add values to it.
type RecordEvent struct {
	Type   EventType
	Record *Record
}

func (e RecordEvent) EventType() EventType { return e.Type }

// LifecycleEvent marks engine start up and shut down.
type LifecycleEvent struct{ Type EventType }

func (e LifecycleEvent) EventType() EventType { return e.Type }

type Handler func(Event)

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	h  Handler
}

// Bus delivers events synchronously to subscribers in subscription order.
// Handlers may subscribe or unsubscribe while an event is being delivered;
// the change applies from the next Publish.
type Bus struct {
	mu     sync.RWMutex
	subs   map[EventType][]subscription
	nextID SubscriptionID
}

func NewBus() *Bus { return &Bus{subs: map[EventType][]subscription{}} }

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs[e.EventType()])
	b.mu.RUnlock()

	for _, s := range subs {
		s.h(e)
	}
}

func (b *Bus) Subscribe(evt EventType, h Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[evt] = append(b.subs[evt], subscription{id: b.nextID, h: h})
	return b.nextID
}

// Unsubscribe removes a subscription. It reports whether id was subscribed.
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for evt, subs := range b.subs {
		for i, s := range subs {
			if s.id == id {
				b.subs[evt] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Subscribers returns the number of handlers subscribed to evt.
func (b *Bus) Subscribers(evt EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs[evt])
}
