/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{port: 8080, sendBuffer: 32}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, true},
		{"lone cert", func(c *Config) { c.tlsCert = "cert.pem" }, false},
		{"port zero", func(c *Config) { c.port = 0 }, false},
		{"port too high", func(c *Config) { c.port = 70000 }, false},
		{"no buffer", func(c *Config) { c.sendBuffer = 0 }, false},
		{"negative interval", func(c *Config) { c.statsInterval = -time.Second }, false},
		{"public url", func(c *Config) { c.publicURL = "https://play.example.org" }, true},
		{"relative public url", func(c *Config) { c.publicURL = "play.example.org" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.validate()
			if (err == nil) != tt.ok {
				t.Fatalf("validate() = %v, ok = %v", err, tt.ok)
			}
		})
	}
}

func TestScheme(t *testing.T) {
	cfg := &Config{}
	if cfg.scheme() != "http" {
		t.Fatal("plain config should be http")
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if cfg.scheme() != "https" {
		t.Fatal("tls config should be https")
	}
}

func TestFlagDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	if cfg.port != 8080 || cfg.bind != "0.0.0.0" || cfg.sendBuffer != 32 || cfg.trustClientVerdict {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("WORDROOMS_PORT", "9090")
	t.Setenv("WORDROOMS_TRUST_CLIENT_VERDICT", "true")
	t.Setenv("WORDROOMS_STATS_INTERVAL", "30s")

	cfg := &Config{}
	cmd := newCmd(cfg)

	if err := cmd.ParseFlags([]string{"--send-buffer", "4"}); err != nil {
		t.Fatal(err)
	}

	if cfg.port != 9090 || !cfg.trustClientVerdict || cfg.statsInterval != 30*time.Second || cfg.sendBuffer != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	if err := loadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("WORDROOMS_DOTENV_TEST=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("WORDROOMS_DOTENV_TEST") })

	if err := loadEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("WORDROOMS_DOTENV_TEST"); got != "loaded" {
		t.Fatalf("WORDROOMS_DOTENV_TEST = %q", got)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&Config{jsonLogs: true}, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("hidden")
	logger.Warn().Str("room", "ab12").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("debug or info line logged without --verbose")
	}
	if !strings.Contains(out, `"room":"ab12"`) {
		t.Fatalf("json line missing field: %s", out)
	}

	buf.Reset()
	verbose := newLogger(&Config{jsonLogs: true, verbose: true}, &buf)
	verbose.Info().Msg("shown")
	verbose.Debug().Msg("shown")
	if !strings.Contains(buf.String(), `"level":"info"`) || !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Fatalf("verbose logger dropped debug line: %s", buf.String())
	}
}

func TestStatsJob(t *testing.T) {
	s, _ := newTestServer(t)

	c, err := startStats(s)
	if err != nil || c != nil {
		t.Fatalf("disabled stats = %v, %v", c, err)
	}

	var buf bytes.Buffer
	s.log = zerolog.New(&buf)
	s.cfg.statsInterval = time.Hour

	c, err = startStats(s)
	if err != nil || c == nil {
		t.Fatalf("startStats: %v", err)
	}
	defer c.Stop()

	if n := len(c.Entries()); n != 1 {
		t.Fatalf("entries = %d", n)
	}

	s.logStats()
	if !strings.Contains(buf.String(), `"rooms":0`) {
		t.Fatalf("stats line = %s", buf.String())
	}
}
