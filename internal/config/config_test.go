package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_HOST", "APP_PORT", "SESSION_TTL_SECONDS", "SWEEP_INTERVAL_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, DefaultSweepInterval, cfg.SweepInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8123")
	t.Setenv("SESSION_TTL_SECONDS", "120")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "bogus")

	cfg := Load()
	assert.Equal(t, "8123", cfg.Port)
	assert.Equal(t, 120*time.Second, cfg.SessionTTL)
	// Invalid values fall back rather than failing startup.
	assert.Equal(t, DefaultSweepInterval, cfg.SweepInterval)
}

func TestPublicBaseURLFromServerURL(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare host gets scheme and port", "example.com", "http://example.com:9090"},
		{"http without port gets port", "http://example.com", "http://example.com:9090"},
		{"existing port kept", "http://example.com:8080", "http://example.com:8080"},
		{"https never gets port", "https://benny.example.com", "https://benny.example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Port: "9090", ServerURL: tc.raw}
			assert.Equal(t, tc.want, cfg.PublicBaseURL())
		})
	}
}

func TestPublicBaseURLFromHostname(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain hostname", "benny.example.com", "http://benny.example.com:9090"},
		{"scheme stripped", "https://benny.example.com", "http://benny.example.com:9090"},
		{"embedded port replaced", "benny.example.com:1234", "http://benny.example.com:9090"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Port: "9090", ServerHostname: tc.raw}
			assert.Equal(t, tc.want, cfg.PublicBaseURL())
		})
	}
}

func TestPublicBaseURLFromPlatform(t *testing.T) {
	cfg := &Config{
		Port:      "9090",
		ReplID:    "id",
		ReplSlug:  "benny",
		ReplOwner: "n0troot",
	}
	assert.Equal(t, "https://benny.n0troot.repl.co", cfg.PublicBaseURL())
}

func TestPublicBaseURLLoopbackFallback(t *testing.T) {
	cfg := &Config{Port: "9090"}
	assert.Equal(t, "http://127.0.0.1:9090", cfg.PublicBaseURL())
	// Second call must not warn again; just exercise the path.
	assert.Equal(t, "http://127.0.0.1:9090", cfg.PublicBaseURL())
}

func TestServerURLTakesPrecedenceOverHostname(t *testing.T) {
	cfg := &Config{
		Port:           "9090",
		ServerURL:      "https://game.example.com",
		ServerHostname: "other.example.com",
	}
	assert.Equal(t, "https://game.example.com", cfg.PublicBaseURL())
}
