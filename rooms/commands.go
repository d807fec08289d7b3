/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package rooms

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed wraps every decoding failure of an inbound message.
var ErrMalformed = errors.New("malformed message")

// Command is a message sent by a client. The set is closed; see DecodeCommand.
type Command interface {
	Name() string
	command()
}

type JoinRoom struct {
	RoomID   string
	Username string
	Mode     string
}

// SubmitGuess carries the client's own verdict in IsCorrect. Round is
// optional; zero means the sender did not say which round it is guessing in.
type SubmitGuess struct {
	RoomID    string
	Guess     string
	Turn      int
	IsCorrect bool
	Round     int
}

type SendMessage struct {
	RoomID   string
	Username string
	Message  string
	Type     MessageKind
}

type PlayAgain struct {
	RoomID string
}

func (JoinRoom) Name() string    { return "join_room" }
func (SubmitGuess) Name() string { return "submit_guess" }
func (SendMessage) Name() string { return "send_message" }
func (PlayAgain) Name() string   { return "play_again" }

func (JoinRoom) command()    {}
func (SubmitGuess) command() {}
func (SendMessage) command() {}
func (PlayAgain) command()   {}

// MessageKind distinguishes plain chat text from sticker references.
type MessageKind string

const (
	KindText    MessageKind = "text"
	KindSticker MessageKind = "sticker"
)

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// DecodeCommand parses a wire envelope into its Command. Any failure wraps
// ErrMalformed.
func DecodeCommand(raw []byte) (Command, error) {
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch in.Event {
	case "join_room":
		var p struct {
			RoomID   *string `json:"roomId"`
			Username *string `json:"username"`
			Mode     string  `json:"mode"`
		}
		if err := decodeData(in, &p); err != nil {
			return nil, err
		}
		if p.RoomID == nil || p.Username == nil {
			return nil, missing(in.Event, "roomId", "username")
		}
		return JoinRoom{RoomID: *p.RoomID, Username: *p.Username, Mode: p.Mode}, nil

	case "submit_guess":
		var p struct {
			RoomID    *string `json:"roomId"`
			Guess     *string `json:"guess"`
			Turn      *int    `json:"turn"`
			IsCorrect bool    `json:"isCorrect"`
			Round     int     `json:"round"`
		}
		if err := decodeData(in, &p); err != nil {
			return nil, err
		}
		if p.RoomID == nil || p.Guess == nil || p.Turn == nil {
			return nil, missing(in.Event, "roomId", "guess", "turn")
		}
		return SubmitGuess{
			RoomID:    *p.RoomID,
			Guess:     *p.Guess,
			Turn:      *p.Turn,
			IsCorrect: p.IsCorrect,
			Round:     p.Round,
		}, nil

	case "send_message":
		var p struct {
			RoomID   *string     `json:"roomId"`
			Username string      `json:"username"`
			Message  *string     `json:"message"`
			Type     MessageKind `json:"type"`
		}
		if err := decodeData(in, &p); err != nil {
			return nil, err
		}
		if p.RoomID == nil || p.Message == nil {
			return nil, missing(in.Event, "roomId", "message")
		}
		switch p.Type {
		case "":
			p.Type = KindText
		case KindText, KindSticker:
		default:
			return nil, fmt.Errorf("%w: send_message: unknown type %q", ErrMalformed, p.Type)
		}
		return SendMessage{RoomID: *p.RoomID, Username: p.Username, Message: *p.Message, Type: p.Type}, nil

	case "play_again":
		var p struct {
			RoomID *string `json:"roomId"`
		}
		if err := decodeData(in, &p); err != nil {
			return nil, err
		}
		if p.RoomID == nil {
			return nil, missing(in.Event, "roomId")
		}
		return PlayAgain{RoomID: *p.RoomID}, nil

	case "":
		return nil, fmt.Errorf("%w: missing event name", ErrMalformed)
	}

	return nil, fmt.Errorf("%w: unknown event %q", ErrMalformed, in.Event)
}

func decodeData(in inbound, v any) error {
	if len(in.Data) == 0 {
		return fmt.Errorf("%w: %s: missing data", ErrMalformed, in.Event)
	}
	if err := json.Unmarshal(in.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, in.Event, err)
	}
	return nil
}

func missing(event string, fields ...string) error {
	return fmt.Errorf("%w: %s requires %v", ErrMalformed, event, fields)
}
