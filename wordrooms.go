/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/wordrooms/rooms"
	"github.com/Seednode/wordrooms/words"
)

const qrSize = 320

// server bundles what the HTTP handlers share.
type server struct {
	cfg   *Config
	log   zerolog.Logger
	words *words.Dictionary
	hub   *rooms.Hub
	rooms *rooms.Manager
}

func newServer(cfg *Config, logger zerolog.Logger) (*server, error) {
	dict, err := loadDictionary(cfg)
	if err != nil {
		return nil, err
	}

	hub := rooms.NewHub(logger)

	return &server{
		cfg:   cfg,
		log:   logger,
		words: dict,
		hub:   hub,
		rooms: rooms.NewManager(dict, hub, logger, rooms.TrustClientVerdict(cfg.trustClientVerdict)),
	}, nil
}

func loadDictionary(cfg *Config) (*words.Dictionary, error) {
	if cfg.wordsFile == "" {
		return words.Default()
	}
	return words.Open(cfg.wordsFile)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *server) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Debug().Err(err).Str("remote", realIP(r)).Msg("websocket upgrade failed")

			return
		}

		c := newClient(conn, s.cfg.sendBuffer, s.log)

		s.hub.Register(c)
		s.hub.ToConnection(c.ID(), rooms.Connected{ID: c.ID()})

		s.log.Info().Str("conn", c.ID()).Str("remote", realIP(r)).Msg("connection opened")

		go c.writePump()
		c.readPump(s.rooms, s.hub)

		s.log.Info().Str("conn", c.ID()).Msg("connection closed")
	}
}

// shareLink is the URL a room code is shared as.
func (s *server) shareLink(r *http.Request, code string) string {
	base := strings.TrimSuffix(s.cfg.publicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}

	return base + s.cfg.prefix + "/room/" + url.PathEscape(code)
}

func (s *server) serveQR() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.TrimSpace(ps.ByName("code"))
		if code == "" || len(code) > 64 {
			http.Error(w, "invalid room code", http.StatusBadRequest)

			return
		}

		png, err := qrcode.Encode(s.shareLink(r, code), qrcode.Medium, qrSize)
		if err != nil {
			s.log.Error().Err(err).Str("room", code).Msg("qr generation failed")
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(s.cfg, w)

		_, _ = w.Write(png)
	}
}

// registerRooms sets up routes so that:
//   - $prefix/ws               → WebSocket for every room
//   - $prefix/room/:code/qr    → PNG QR code for the room's share link
func registerRooms(s *server, mux *httprouter.Router) {
	mux.GET(s.cfg.prefix+"/ws", s.serveWS())
	mux.GET(s.cfg.prefix+"/room/:code/qr", s.serveQR())
}
