// Package config provides configuration for the checkers engine and its
// front ends.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration, grouped by concern.
type Config struct {
	Game   *GameConfig
	Play   *PlayConfig
	Sim    *SimConfig
	Net    *NetConfig
	Server *ServerConfig
	Log    *LogConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Game:       NewGameConfig(),
		Play:       NewPlayConfig(),
		Sim:        NewSimConfig(),
		Net:        NewNetConfig(),
		Server:     NewServerConfig(),
		Log:        NewLogConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Validate checks every sub-configuration and returns the first error.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		c.Game, c.Play, c.Sim, c.Net, c.Server, c.Log,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
