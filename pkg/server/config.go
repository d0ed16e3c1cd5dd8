package server

import (
	"net/http"
	"net/url"
	"time"
)

// Config holds configuration for the HTTP/WebSocket server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080").
	// Default: ":8080".
	Address string

	// StreamTimeout bounds how long a response stays open waiting for
	// deferred fragments. When it expires the document is closed with
	// fallbacks still in place.
	// Default: 10 seconds.
	StreamTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate WebSocket request origins.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// HeartbeatInterval is the time between WebSocket pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// ReadTimeout is the maximum time to wait for a WebSocket message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// Page defaults applied to every rendered document. Per-route
	// options override them.

	// Title is the default page title.
	Title string

	// StyleSheets are stylesheet paths included on every page.
	StyleSheets []string

	// ClientScript is the hydration client path. Empty disables script
	// injection.
	ClientScript string

	// Lang is the html lang attribute. Default: "en".
	Lang string
}

// DefaultConfig returns a Config with sensible defaults.
// SECURITY: CheckOrigin enforces same-origin by default.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		StreamTimeout:     10 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		HeartbeatInterval: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		Lang:              "en",
	}
}

// SameOriginCheck validates that the WebSocket request origin matches the
// host. This is the secure default for CheckOrigin.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (same-origin request or curl).
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}

	return originURL.Host == host
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.StyleSheets != nil {
		clone.StyleSheets = append([]string(nil), c.StyleSheets...)
	}
	return &clone
}

// WithAddress sets the server address and returns the config for chaining.
func (c *Config) WithAddress(addr string) *Config {
	c.Address = addr
	return c
}

// WithStreamTimeout sets the fragment streaming deadline and returns the
// config for chaining.
func (c *Config) WithStreamTimeout(d time.Duration) *Config {
	c.StreamTimeout = d
	return c
}

// WithTitle sets the default page title and returns the config for
// chaining.
func (c *Config) WithTitle(title string) *Config {
	c.Title = title
	return c
}

// WithClientScript sets the hydration client path and returns the config
// for chaining.
func (c *Config) WithClientScript(path string) *Config {
	c.ClientScript = path
	return c
}
