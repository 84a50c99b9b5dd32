// Package logging sets up the global zerolog logger.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lgbarn/checkers-go/internal/config"
)

// Configure sets the global level and points the global logger at w. With
// cfg.Pretty the output is human-readable console text, otherwise one JSON
// object per line.
func Configure(cfg *config.LogConfig, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
