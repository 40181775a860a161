package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"sage/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserReclaimed    EventType = "user_reclaimed"
	EventTypeGuildRelationAdd EventType = "guild_relation_added"
	EventTypeGuildRelationDel EventType = "guild_relation_removed"
	EventTypeFavouriteAdded   EventType = "favourite_added"
	EventTypeFavouriteRemoved EventType = "favourite_removed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserReclaimedEvent records a user deleted by the orphan reclamation
// sweep. Emitted once per reclaimed user, after the transaction that
// removed them commits.
type UserReclaimedEvent struct {
	UserID      int64
	DisplayName string
}

func (e UserReclaimedEvent) Type() EventType {
	return EventTypeUserReclaimed
}

// GuildRelationAddEvent records a user added to one of a guild's three
// reference sets (members, admins, blacklist).
type GuildRelationAddEvent struct {
	GuildID  int64
	UserID   int64
	Relation models.GuildRelation
}

func (e GuildRelationAddEvent) Type() EventType {
	return EventTypeGuildRelationAdd
}

// GuildRelationRemoveEvent records a user removed from one of a guild's
// three reference sets.
type GuildRelationRemoveEvent struct {
	GuildID  int64
	UserID   int64
	Relation models.GuildRelation
}

func (e GuildRelationRemoveEvent) Type() EventType {
	return EventTypeGuildRelationDel
}

// FavouriteKind distinguishes track and playlist favourites in events.
type FavouriteKind string

const (
	FavouriteKindTrack    FavouriteKind = "track"
	FavouriteKindPlaylist FavouriteKind = "playlist"
)

// FavouriteAddedEvent records a favourite saved by a user.
type FavouriteAddedEvent struct {
	UserID int64
	Kind   FavouriteKind
	URL    string
}

func (e FavouriteAddedEvent) Type() EventType {
	return EventTypeFavouriteAdded
}

// FavouriteRemovedEvent records a favourite deleted by a user.
type FavouriteRemovedEvent struct {
	UserID int64
	Kind   FavouriteKind
	URL    string
}

func (e FavouriteRemovedEvent) Type() EventType {
	return EventTypeFavouriteRemoved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the caller
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// forwards them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus over the given bus.
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush.
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush forwards all pending events to the underlying bus. Called after a
// successful commit. Events are emitted on a background context so they
// outlive the transaction's context.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops all pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
