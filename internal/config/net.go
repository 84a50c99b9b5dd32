package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/lgbarn/checkers-go/internal/errors"
)

// DefaultPort is the TCP port a host listens on.
const DefaultPort = 22222

// NetConfig holds settings for host/join network play.
type NetConfig struct {
	// Host is the address to listen on (host) or connect to (join).
	Host string

	// Port is the TCP port.
	Port int

	// DialTimeout bounds connecting to a host. Turns themselves are not timed.
	DialTimeout time.Duration
}

// NewNetConfig creates a NetConfig with default values.
func NewNetConfig() *NetConfig {
	return &NetConfig{
		Host:        "localhost",
		Port:        DefaultPort,
		DialTimeout: 10 * time.Second,
	}
}

// Address returns host:port.
func (n *NetConfig) Address() string {
	return net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
}

// Validate checks that the network configuration is valid.
func (n *NetConfig) Validate() error {
	if n.Port < 1 || n.Port > 65535 {
		return fmt.Errorf("port %d out of range: %w", n.Port, errors.ErrInvalidConfig)
	}
	if n.DialTimeout <= 0 {
		return fmt.Errorf("dial timeout must be positive: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// RequestTimeout bounds each handler.
	RequestTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:           ":8080",
		RequestTimeout: 10 * time.Second,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("listen address is empty: %w", errors.ErrInvalidConfig)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %w", errors.ErrInvalidConfig)
	}
	return nil
}
