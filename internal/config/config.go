package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Defaults documented once; everything is overridable through the
// environment.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = "9090"
	DefaultAssetDir      = "temp"
	DefaultSessionTTL    = 300 * time.Second
	DefaultSweepInterval = 60 * time.Second
)

type Config struct {
	Host     string
	Port     string
	AssetDir string

	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Public URL inputs, consumed by PublicBaseURL.
	ServerURL      string // full base URL override
	ServerHostname string // hostname override, port appended

	// Platform-provided hostname pieces (Replit deployments).
	ReplID    string
	ReplSlug  string
	ReplOwner string

	warnOnce sync.Once
}

func Load() *Config {

	cfg := &Config{
		Host:     envOr("APP_HOST", DefaultHost),
		Port:     envOr("APP_PORT", DefaultPort),
		AssetDir: envOr("ASSET_DIR", DefaultAssetDir),

		SessionTTL:    envSecondsOr("SESSION_TTL_SECONDS", DefaultSessionTTL),
		SweepInterval: envSecondsOr("SWEEP_INTERVAL_SECONDS", DefaultSweepInterval),

		ServerURL:      os.Getenv("SERVER_URL"),
		ServerHostname: os.Getenv("SERVER_HOSTNAME"),

		ReplID:    os.Getenv("REPL_ID"),
		ReplSlug:  os.Getenv("REPL_SLUG"),
		ReplOwner: os.Getenv("REPL_OWNER"),
	}

	return cfg

}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// PublicBaseURL resolves the externally reachable base URL used to build
// shareable session links. Resolution order: explicit SERVER_URL, explicit
// SERVER_HOSTNAME, platform-provided hostname, loopback as a last resort
// (with a one-time warning, since shared links will not work off-box).
func (c *Config) PublicBaseURL() string {
	if c.ServerURL != "" {
		return c.normalizeServerURL(c.ServerURL)
	}

	if c.ServerHostname != "" {
		host := stripScheme(c.ServerHostname)
		// Drop any port baked into the hostname; ours wins.
		if i := strings.Index(host, ":"); i >= 0 {
			host = host[:i]
		}
		return fmt.Sprintf("http://%s:%s", host, c.Port)
	}

	if c.ReplID != "" && c.ReplSlug != "" && c.ReplOwner != "" {
		return fmt.Sprintf("https://%s.%s.repl.co", c.ReplSlug, c.ReplOwner)
	}

	c.warnOnce.Do(func() {
		log.Warn("SERVER_HOSTNAME or SERVER_URL not set; session URLs will only work locally")
	})
	return fmt.Sprintf("http://127.0.0.1:%s", c.Port)
}

// normalizeServerURL ensures a scheme is present, appends the port when the
// URL carries none and isn't https, and trims any trailing slash.
func (c *Config) normalizeServerURL(raw string) string {
	u := raw
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "http://" + u
	}
	last := u[strings.LastIndex(u, "/")+1:]
	if !strings.Contains(last, ":") && !strings.HasPrefix(u, "https") {
		u = u + ":" + c.Port
	}
	return strings.TrimRight(u, "/")
}

func stripScheme(host string) string {
	if i := strings.Index(host, "//"); i >= 0 {
		return host[i+2:]
	}
	return host
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSecondsOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		log.WithFields(log.Fields{
			"var":   key,
			"value": v,
		}).Warn("ignoring invalid duration override")
		return fallback
	}
	return time.Duration(secs) * time.Second
}
