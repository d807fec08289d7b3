/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package rooms

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Seednode/wordrooms/words"
)

// MaxTurns is the number of guesses a board holds.
const MaxTurns = 6

var (
	ErrRoomFull   = errors.New("room is full")
	ErrRoomClosed = errors.New("room is closed")
)

// Mode selects the rules of a room. It is fixed when the room is created.
type Mode string

const (
	Competitive Mode = "competitive"
	Cooperative Mode = "coop"
)

// ParseMode maps a requested mode to a Mode; anything unrecognised is
// Competitive.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coop", "cooperative":
		return Cooperative
	}
	return Competitive
}

// Capacity is the maximum roster size for the mode.
func (m Mode) Capacity() int {
	if m == Cooperative {
		return 4
	}
	return 2
}

type State string

const (
	Waiting State = "waiting"
	Playing State = "playing"
)

// Player is a roster entry. ID is the connection id.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Room holds the state of one game session. All fields are guarded by mu and
// every transition delivers its events before releasing it.
type Room struct {
	mu sync.Mutex

	code     string
	mode     Mode
	state    State
	solution string
	players  []Player

	sharedGuesses []string
	turns         map[string]int

	startTime time.Time
	round     int
	over      bool
	closed    bool
}

func newRoom(code string, mode Mode, solution string) *Room {
	return &Room{
		code:     code,
		mode:     mode,
		state:    Waiting,
		solution: solution,
		turns:    make(map[string]int),
	}
}

func (r *Room) indexOf(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) roster() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Room) gameStart() GameStart {
	initial := []string{}
	if r.mode == Cooperative {
		initial = append(initial, r.sharedGuesses...)
	}
	return GameStart{
		Solution:       r.solution,
		InitialGuesses: initial,
		StartTime:      r.startTime.UnixMilli(),
		Round:          r.round,
	}
}

// start begins a new round with the current solution.
func (r *Room) start(now time.Time) {
	r.state = Playing
	r.startTime = now
	r.round++
	r.over = false
	r.turns = make(map[string]int)
}

// admits reports whether id could join without exceeding capacity.
func (r *Room) admits(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.indexOf(id) >= 0 || len(r.players) < r.mode.Capacity()
}

// join adds id to the roster, or refreshes an existing member. On error id
// is not a member.
func (r *Room) join(id, username string, now time.Time, out Broadcaster, log zerolog.Logger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomClosed
	}

	if r.indexOf(id) < 0 {
		if len(r.players) >= r.mode.Capacity() {
			out.ToConnection(id, ErrorFull{Message: "Room is full"})

			return ErrRoomFull
		}

		r.players = append(r.players, Player{ID: id, Username: username})
		out.Subscribe(r.code, id)
		playersActive.Inc()

		log.Info().Str("room", r.code).Str("conn", id).Str("username", username).Msg("player joined")
	}

	out.ToRoom(r.code, PlayerJoined{Players: r.roster(), RoomID: r.code, Mode: r.mode})

	switch {
	case r.state == Playing:
		out.ToConnection(id, r.gameStart())
	case r.mode == Cooperative || len(r.players) >= 2:
		r.start(now)
		out.ToRoom(r.code, r.gameStart())

		log.Info().Str("room", r.code).Int("round", r.round).Msg("game started")
	}

	return nil
}

// submit applies a guess from id.
func (r *Room) submit(id string, req SubmitGuess, trustClient bool, out Broadcaster, log zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.indexOf(id) < 0 {
		return
	}

	if req.Round != 0 && req.Round != r.round {
		log.Debug().Str("room", r.code).Str("conn", id).Int("round", req.Round).Msg("stale guess dropped")

		return
	}

	if r.state != Playing || r.over {
		out.ToConnection(id, BadRequest{Message: "no game in progress"})

		return
	}

	guess := words.Normalize(req.Guess)
	if !words.Valid(guess) {
		out.ToConnection(id, BadRequest{Message: "guess must be five letters"})

		return
	}

	expected := r.turns[id] + 1
	if r.mode == Cooperative {
		expected = len(r.sharedGuesses) + 1
	}
	if expected > MaxTurns {
		out.ToConnection(id, BadRequest{Message: "no turns left"})

		return
	}
	if req.Turn != expected {
		out.ToConnection(id, BadRequest{Message: fmt.Sprintf("expected turn %d, got %d", expected, req.Turn)})

		return
	}

	result := words.Judge(guess, r.solution)
	correct := words.Solved(result)
	if req.IsCorrect != correct {
		log.Warn().
			Str("room", r.code).
			Str("conn", id).
			Bool("claimed", req.IsCorrect).
			Bool("judged", correct).
			Msg("client verdict disagrees with judge")
	}
	if trustClient {
		correct = req.IsCorrect
	}

	if r.mode == Cooperative {
		r.sharedGuesses = append(r.sharedGuesses, guess)
		out.ToRoom(r.code, SharedGuess{Guess: guess, Turn: req.Turn, IsCorrect: correct, Result: result})

		switch {
		case correct:
			for i := range r.players {
				r.players[i].Score++
			}
			r.finish(WinnerTeam, out, log)
		case len(r.sharedGuesses) >= MaxTurns:
			r.finish(WinnerNone, out, log)
		}

		return
	}

	r.turns[id]++
	out.ToRoomExcept(r.code, OpponentGuess{Guess: guess, Turn: req.Turn, IsCorrect: correct, Result: result}, id)

	switch {
	case correct:
		r.players[r.indexOf(id)].Score++
		r.finish(id, out, log)
	case r.exhausted():
		r.finish(WinnerNone, out, log)
	}
}

func (r *Room) exhausted() bool {
	for _, p := range r.players {
		if r.turns[p.ID] < MaxTurns {
			return false
		}
	}
	return true
}

func (r *Room) finish(winner string, out Broadcaster, log zerolog.Logger) {
	r.over = true
	out.ToRoom(r.code, GameOver{Winner: winner, Solution: r.solution})

	log.Info().Str("room", r.code).Int("round", r.round).Str("winner", winner).Msg("game over")
}

// rematch starts a fresh round with solution on behalf of member id.
func (r *Room) rematch(id, solution string, now time.Time, out Broadcaster, log zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.indexOf(id) < 0 {
		return
	}

	r.solution = solution
	r.sharedGuesses = nil
	r.start(now)
	out.ToRoom(r.code, r.gameStart())

	log.Info().Str("room", r.code).Str("conn", id).Int("round", r.round).Msg("rematch started")
}

func (r *Room) chat(id string, msg SendMessage, out Broadcaster) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if r.closed || idx < 0 {
		return
	}

	username := msg.Username
	if username == "" {
		username = r.players[idx].Username
	}

	out.ToRoom(r.code, ReceiveMessage{Username: username, Message: msg.Message, Type: msg.Type})
}

// leave removes id from the roster. It reports whether id was a member and
// whether the room is now empty, in which case the room is closed.
func (r *Room) leave(id string, out Broadcaster, log zerolog.Logger) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, false
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.turns, id)
	out.Unsubscribe(r.code, id)
	playersActive.Dec()

	out.ToRoom(r.code, PlayerLeft{ID: id})

	if len(r.players) == 0 {
		r.closed = true
	} else if r.mode == Competitive && r.state == Playing && !r.over && r.exhausted() {
		r.finish(WinnerNone, out, log)
	}

	return true, r.closed
}

// close empties the roster without notifying anyone and returns the ids that
// were removed.
func (r *Room) close(out Broadcaster) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		out.Unsubscribe(r.code, p.ID)
		ids = append(ids, p.ID)
	}
	playersActive.Sub(float64(len(r.players)))

	r.players = nil
	r.closed = true

	return ids
}

func (r *Room) Code() string { return r.code }

func (r *Room) Mode() Mode { return r.mode }

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *Room) Solution() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.solution
}

func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.roster()
}

func (r *Room) SharedGuesses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.sharedGuesses...)
}

func (r *Room) StartTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.startTime
}

func (r *Room) Round() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.round
}

// Over reports whether the current round has produced its GameOver.
func (r *Room) Over() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.over
}
