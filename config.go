/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind               string
	jsonLogs           bool
	metrics            bool
	port               int
	prefix             string
	profile            bool
	publicURL          string
	sendBuffer         int
	statsInterval      time.Duration
	tlsCert            string
	tlsKey             string
	trustClientVerdict bool
	verbose            bool
	version            bool
	wordsFile          string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.sendBuffer < 1 {
		return fmt.Errorf("invalid send buffer (must be at least 1): %d", c.sendBuffer)
	}
	if c.statsInterval < 0 {
		return fmt.Errorf("invalid stats interval: %s", c.statsInterval)
	}
	if c.publicURL != "" {
		u, err := url.Parse(c.publicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid public url (must be absolute): %q", c.publicURL)
		}
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// loadEnv copies variables from a dotenv file into the environment. A missing
// file is not an error; variables already set win.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDROOMS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "wordrooms",
		Short:         "Realtime rooms for competitive and cooperative five-letter word games.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: WORDROOMS_BIND)")
	fs.BoolVar(&cfg.jsonLogs, "json-logs", false, "write log lines as json (env: WORDROOMS_JSON_LOGS)")
	fs.BoolVar(&cfg.metrics, "metrics", false, "expose prometheus metrics at /metrics (env: WORDROOMS_METRICS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: WORDROOMS_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: WORDROOMS_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: WORDROOMS_PROFILE)")
	fs.StringVar(&cfg.publicURL, "public-url", "", "base URL used in room share links (env: WORDROOMS_PUBLIC_URL)")
	fs.IntVar(&cfg.sendBuffer, "send-buffer", 32, "outbound events queued per connection before it is dropped (env: WORDROOMS_SEND_BUFFER)")
	fs.DurationVar(&cfg.statsInterval, "stats-interval", 0, "log room statistics at this interval, 0 to disable (env: WORDROOMS_STATS_INTERVAL)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: WORDROOMS_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: WORDROOMS_TLS_KEY)")
	fs.BoolVar(&cfg.trustClientVerdict, "trust-client-verdict", false, "accept the client's isCorrect instead of judging guesses (env: WORDROOMS_TRUST_CLIENT_VERDICT)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: WORDROOMS_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: WORDROOMS_VERSION)")
	fs.StringVar(&cfg.wordsFile, "words-file", "", "file of solution words, one per line; built-in list if empty (env: WORDROOMS_WORDS_FILE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("wordrooms v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
