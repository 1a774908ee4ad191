package configs

// HTTP holds the listener settings for the API server.
type HTTP struct {
	// Port is the TCP port the server binds to.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
