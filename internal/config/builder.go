package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithBoardSize sets the board side length.
func (b *ConfigBuilder) WithBoardSize(size int) *ConfigBuilder {
	b.cfg.Game.BoardSize = size
	return b
}

// WithInvert sets the board orientation.
func (b *ConfigBuilder) WithInvert(invert bool) *ConfigBuilder {
	b.cfg.Game.Invert = invert
	return b
}

// WithTurnLimit sets the draw turn limit.
func (b *ConfigBuilder) WithTurnLimit(limit int) *ConfigBuilder {
	b.cfg.Game.TurnLimit = limit
	return b
}

// WithPlayers sets the number of human players.
func (b *ConfigBuilder) WithPlayers(n int) *ConfigBuilder {
	b.cfg.Play.Players = n
	return b
}

// WithCPUDelay sets the CPU pacing delay.
func (b *ConfigBuilder) WithCPUDelay(d time.Duration) *ConfigBuilder {
	b.cfg.Play.CPUDelay = d
	return b
}

// WithSimulations sets the number of simulated games.
func (b *ConfigBuilder) WithSimulations(games int) *ConfigBuilder {
	b.cfg.Sim.Games = games
	return b
}

// WithWorkers sets the number of simulation workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Sim.Workers = n
	return b
}

// WithSeed sets the simulation seed.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.Sim.Seed = seed
	return b
}

// WithPeer sets the network host and port.
func (b *ConfigBuilder) WithPeer(host string, port int) *ConfigBuilder {
	b.cfg.Net.Host = host
	b.cfg.Net.Port = port
	return b
}

// WithHTTPAddr sets the HTTP listen address.
func (b *ConfigBuilder) WithHTTPAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogOutput sets the log writer.
func (b *ConfigBuilder) WithLogOutput(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
