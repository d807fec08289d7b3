/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package rooms

import (
	"sync"

	"github.com/rs/zerolog"
)

// Conn is the sending half of a client connection.
//
// Send must not block: it either queues ev and returns true, or gives up and
// returns false.
type Conn interface {
	ID() string
	Send(ev Event) bool
}

// Broadcaster delivers events to connections and tracks which connections
// belong to which room's group.
type Broadcaster interface {
	Subscribe(code, id string)
	Unsubscribe(code, id string)
	ToRoom(code string, ev Event)
	ToRoomExcept(code string, ev Event, except string)
	ToConnection(id string, ev Event)
}

// Hub is the in-process Broadcaster. Delivery is fire-and-forget.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]Conn
	groups map[string]map[string]struct{}

	log zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]Conn),
		groups: make(map[string]map[string]struct{}),
		log:    logger,
	}
}

// Register makes c addressable by its id.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
}

// Unregister forgets the connection and removes it from every group.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, id)
	for code, members := range h.groups {
		delete(members, id)
		if len(members) == 0 {
			delete(h.groups, code)
		}
	}
}

func (h *Hub) Subscribe(code, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[code]
	if !ok {
		members = make(map[string]struct{})
		h.groups[code] = members
	}
	members[id] = struct{}{}
}

func (h *Hub) Unsubscribe(code, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[code]
	if !ok {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(h.groups, code)
	}
}

func (h *Hub) ToRoom(code string, ev Event) {
	h.ToRoomExcept(code, ev, "")
}

func (h *Hub) ToRoomExcept(code string, ev Event, except string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id := range h.groups[code] {
		if id == except {
			continue
		}
		h.deliver(h.conns[id], ev)
	}
}

func (h *Hub) ToConnection(id string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.deliver(h.conns[id], ev)
}

// Len is the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

func (h *Hub) deliver(c Conn, ev Event) {
	if c == nil {
		return
	}

	if !c.Send(ev) {
		eventsDropped.WithLabelValues(ev.Name()).Inc()
		h.log.Debug().Str("conn", c.ID()).Str("event", ev.Name()).Msg("event dropped")

		return
	}

	eventsDelivered.WithLabelValues(ev.Name()).Inc()
}
