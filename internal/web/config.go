package web

// Config represents the web server configuration.
type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Search SearchConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
}

// CORSConfig contains cross-origin settings for browser frontends.
type CORSConfig struct {
	AllowOrigin string
}

// SearchConfig contains search endpoint limits.
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5003,
		},
		CORS: CORSConfig{
			AllowOrigin: "*",
		},
		Search: SearchConfig{
			DefaultLimit: 100,
			MaxLimit:     1000,
		},
	}
}
