package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lgbarn/checkers-go/internal/errors"
)

// Environment variables read by LoadEnv.
const (
	EnvBoardSize   = "CHECKERS_BOARD_SIZE"
	EnvInvert      = "CHECKERS_INVERT"
	EnvTurnLimit   = "CHECKERS_TURN_LIMIT"
	EnvCPUDelay    = "CHECKERS_CPU_DELAY"
	EnvSimGames    = "CHECKERS_SIM_GAMES"
	EnvSimWorkers  = "CHECKERS_SIM_WORKERS"
	EnvSimSeed     = "CHECKERS_SIM_SEED"
	EnvHost        = "CHECKERS_HOST"
	EnvPort        = "CHECKERS_PORT"
	EnvDialTimeout = "CHECKERS_DIAL_TIMEOUT"
	EnvHTTPAddr    = "CHECKERS_HTTP_ADDR"
	EnvLogLevel    = "CHECKERS_LOG_LEVEL"
	EnvLogPretty   = "CHECKERS_LOG_PRETTY"
)

// LoadEnv loads .env files (missing files are ignored) into the process
// environment and applies any CHECKERS_* overrides to c. Variables already
// set in the environment win over file values.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return c.ApplyEnv(os.Getenv)
}

// ApplyEnv applies CHECKERS_* overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var err error
	setInt := func(key string, dst *int) {
		if v := getenv(key); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = fmt.Errorf("%s=%q: %w", key, v, errors.ErrInvalidConfig)
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v := getenv(key); v != "" && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = fmt.Errorf("%s=%q: %w", key, v, errors.ErrInvalidConfig)
				return
			}
			*dst = b
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" && err == nil {
			d, perr := time.ParseDuration(v)
			if perr != nil {
				err = fmt.Errorf("%s=%q: %w", key, v, errors.ErrInvalidConfig)
				return
			}
			*dst = d
		}
	}
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setInt(EnvBoardSize, &c.Game.BoardSize)
	setBool(EnvInvert, &c.Game.Invert)
	setInt(EnvTurnLimit, &c.Game.TurnLimit)
	setDuration(EnvCPUDelay, &c.Play.CPUDelay)
	setInt(EnvSimGames, &c.Sim.Games)
	setInt(EnvSimWorkers, &c.Sim.Workers)
	if v := getenv(EnvSimSeed); v != "" && err == nil {
		seed, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			err = fmt.Errorf("%s=%q: %w", EnvSimSeed, v, errors.ErrInvalidConfig)
		} else {
			c.Sim.Seed = seed
		}
	}
	setString(EnvHost, &c.Net.Host)
	setInt(EnvPort, &c.Net.Port)
	setDuration(EnvDialTimeout, &c.Net.DialTimeout)
	setString(EnvHTTPAddr, &c.Server.Addr)
	setString(EnvLogLevel, &c.Log.Level)
	setBool(EnvLogPretty, &c.Log.Pretty)
	return err
}
