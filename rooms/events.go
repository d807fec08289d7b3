/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package rooms

import (
	"encoding/json"

	"github.com/Seednode/wordrooms/words"
)

// Event is a message sent from the server to one or more connections.
// The set of events is closed; every implementation lives in this file.
type Event interface {
	Name() string
	event()
}

// Connected is sent once, right after the websocket is accepted.
type Connected struct {
	ID string `json:"id"`
}

type PlayerJoined struct {
	Players []Player `json:"players"`
	RoomID  string   `json:"roomId"`
	Mode    Mode     `json:"mode"`
}

type PlayerLeft struct {
	ID string `json:"id"`
}

// GameStart reveals the solution to the clients, which judge locally.
// StartTime is in unix milliseconds.
type GameStart struct {
	Solution       string   `json:"solution"`
	InitialGuesses []string `json:"initialGuesses"`
	StartTime      int64    `json:"startTime"`
	Round          int      `json:"round"`
}

type OpponentGuess struct {
	Guess     string         `json:"guess"`
	Turn      int            `json:"turn"`
	IsCorrect bool           `json:"isCorrect"`
	Result    []words.Status `json:"result"`
}

type SharedGuess struct {
	Guess     string         `json:"guess"`
	Turn      int            `json:"turn"`
	IsCorrect bool           `json:"isCorrect"`
	Result    []words.Status `json:"result"`
}

// GameOver names the winner: a connection id, WinnerTeam or WinnerNone.
type GameOver struct {
	Winner   string `json:"winner"`
	Solution string `json:"solution"`
}

type ErrorFull struct {
	Message string `json:"message"`
}

type ReceiveMessage struct {
	Username string      `json:"username"`
	Message  string      `json:"message"`
	Type     MessageKind `json:"type"`
}

type BadRequest struct {
	Message string `json:"message"`
}

const (
	WinnerTeam = "Team"
	WinnerNone = "None"
)

func (Connected) Name() string      { return "connected" }
func (PlayerJoined) Name() string   { return "player_joined" }
func (PlayerLeft) Name() string     { return "player_left" }
func (GameStart) Name() string      { return "game_start" }
func (OpponentGuess) Name() string  { return "opponent_guess" }
func (SharedGuess) Name() string    { return "shared_guess" }
func (GameOver) Name() string       { return "game_over" }
func (ErrorFull) Name() string      { return "error_full" }
func (ReceiveMessage) Name() string { return "receive_message" }
func (BadRequest) Name() string     { return "bad_request" }

func (Connected) event()      {}
func (PlayerJoined) event()   {}
func (PlayerLeft) event()     {}
func (GameStart) event()      {}
func (OpponentGuess) event()  {}
func (SharedGuess) event()    {}
func (GameOver) event()       {}
func (ErrorFull) event()      {}
func (ReceiveMessage) event() {}
func (BadRequest) event()     {}

type outbound struct {
	Event string `json:"event"`
	Data  Event  `json:"data"`
}

// Encode wraps ev in the wire envelope {"event": name, "data": ev}.
func Encode(ev Event) ([]byte, error) {
	return json.Marshal(outbound{Event: ev.Name(), Data: ev})
}
