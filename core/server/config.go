package server

// DefaultBodyLimitMB is the request body cap applied when no explicit
// limit is configured.
const DefaultBodyLimitMB = 32

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// BodyLimitMB caps the accepted request body size in megabytes.
	// Master access exports can run to a few hundred thousand rows, so the
	// default sits well above Fiber's 4MB.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
}

// BodyLimitBytes returns the request body cap in bytes. Non-positive
// configured values fall back to DefaultBodyLimitMB.
func (c Config) BodyLimitBytes() int {
	mb := c.BodyLimitMB
	if mb <= 0 {
		mb = DefaultBodyLimitMB
	}
	return mb * 1024 * 1024
}
