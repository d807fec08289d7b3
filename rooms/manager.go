/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package rooms coordinates multiplayer word-guessing rooms: the registry of
// live rooms, the per-room state machine and the event protocol spoken with
// clients.
package rooms

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	maxCodeLength     = 64
	maxUsernameLength = 24
)

// SolutionSource draws solutions for new rounds. It must be safe for
// concurrent use.
type SolutionSource interface {
	Random() string
}

// Manager owns every live room, keyed by code. A room exists exactly while
// at least one player is joined to it.
//
// Join and Leave take the registry lock and then the room lock; every other
// transition takes only the room lock.
type Manager struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	members map[string]string // connection id -> room code

	words SolutionSource
	out   Broadcaster
	log   zerolog.Logger

	now         func() time.Time
	trustClient bool
}

type Option func(*Manager)

// WithClock replaces time.Now for start times.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// TrustClientVerdict makes guesses count as correct when the client says so,
// instead of when the judge does.
func TrustClientVerdict(trust bool) Option {
	return func(m *Manager) { m.trustClient = trust }
}

func NewManager(src SolutionSource, out Broadcaster, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		rooms:   make(map[string]*Room),
		members: make(map[string]string),
		words:   src,
		out:     out,
		log:     logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dispatch routes a decoded command from connection id.
func (m *Manager) Dispatch(id string, cmd Command) {
	commandsTotal.WithLabelValues(cmd.Name()).Inc()

	switch c := cmd.(type) {
	case JoinRoom:
		m.Join(id, c)
	case SubmitGuess:
		m.SubmitGuess(id, c)
	case SendMessage:
		m.SendMessage(id, c)
	case PlayAgain:
		m.Rematch(id, c.RoomID)
	default:
		m.log.Warn().Str("conn", id).Str("event", cmd.Name()).Msg("unhandled command")
	}
}

// Join adds connection id to the room named in req, creating the room on
// first use. A connection belongs to at most one room; joining another room
// leaves the current one.
func (m *Manager) Join(id string, req JoinRoom) {
	code := strings.TrimSpace(req.RoomID)
	username := truncate(strings.TrimSpace(req.Username), maxUsernameLength)
	if code == "" || username == "" {
		m.out.ToConnection(id, BadRequest{Message: "roomId and username are required"})

		return
	}
	if len(code) > maxCodeLength {
		m.out.ToConnection(id, BadRequest{Message: "roomId is too long"})

		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if room, ok := m.rooms[code]; ok && !room.admits(id) {
		m.out.ToConnection(id, ErrorFull{Message: "Room is full"})
		m.log.Debug().Err(ErrRoomFull).Str("room", code).Str("conn", id).Msg("join rejected")

		return
	}

	if current, ok := m.members[id]; ok && current != code {
		m.leaveLocked(id)
	}

	room := m.getOrCreateLocked(code, ParseMode(req.Mode))
	if err := room.join(id, username, m.now(), m.out, m.log); err != nil {
		m.log.Debug().Err(err).Str("room", code).Str("conn", id).Msg("join rejected")

		return
	}

	m.members[id] = code
}

// SubmitGuess applies a guess. Unknown rooms are ignored.
func (m *Manager) SubmitGuess(id string, req SubmitGuess) {
	room, ok := m.Get(strings.TrimSpace(req.RoomID))
	if !ok {
		return
	}

	room.submit(id, req, m.trustClient, m.out, m.log)
}

// SendMessage relays chat to the sender's room, sender included.
func (m *Manager) SendMessage(id string, req SendMessage) {
	room, ok := m.Get(strings.TrimSpace(req.RoomID))
	if !ok {
		return
	}

	room.chat(id, req, m.out)
}

// Rematch starts a new round with a fresh solution for the whole room.
func (m *Manager) Rematch(id, code string) {
	room, ok := m.Get(strings.TrimSpace(code))
	if !ok {
		return
	}

	room.rematch(id, m.words.Random(), m.now(), m.out, m.log)
}

// Leave removes connection id from every room it is in, destroying rooms
// that become empty.
func (m *Manager) Leave(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaveLocked(id)
}

func (m *Manager) leaveLocked(id string) {
	for code, room := range m.rooms {
		removed, empty := room.leave(id, m.out, m.log)
		if !removed {
			continue
		}

		m.log.Info().Str("room", code).Str("conn", id).Msg("player left")

		if empty {
			m.deleteLocked(code)
		}
	}

	delete(m.members, id)
}

func (m *Manager) getOrCreateLocked(code string, mode Mode) *Room {
	if room, ok := m.rooms[code]; ok {
		return room
	}

	room := newRoom(code, mode, m.words.Random())
	m.rooms[code] = room
	roomsActive.Inc()

	m.log.Info().Str("room", code).Str("mode", string(mode)).Msg("room created")

	return room
}

func (m *Manager) deleteLocked(code string) {
	if _, ok := m.rooms[code]; !ok {
		return
	}

	delete(m.rooms, code)
	roomsActive.Dec()

	m.log.Info().Str("room", code).Msg("room destroyed")
}

// Get looks up a live room without creating it.
func (m *Manager) Get(code string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	return room, ok
}

// Remove destroys a room regardless of its roster. Its members are detached
// silently. The server never calls it; rooms normally die with their last
// player.
func (m *Manager) Remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok {
		return
	}

	for _, id := range room.close(m.out) {
		delete(m.members, id)
	}
	m.deleteLocked(code)
}

// Len is the number of live rooms.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rooms)
}

// Connections is the number of connections joined to a room.
func (m *Manager) Connections() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.members)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
