/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// startStats schedules the periodic room statistics log line. It returns nil
// when no interval is configured.
func startStats(s *server) (*cron.Cron, error) {
	if s.cfg.statsInterval <= 0 {
		return nil, nil
	}

	c := cron.New()

	_, err := c.AddFunc("@every "+s.cfg.statsInterval.String(), s.logStats)
	if err != nil {
		return nil, fmt.Errorf("scheduling stats: %w", err)
	}

	c.Start()

	return c, nil
}

func (s *server) logStats() {
	s.log.Info().
		Int("rooms", s.rooms.Len()).
		Int("players", s.rooms.Connections()).
		Int("connections", s.hub.Len()).
		Msg("stats")
}
