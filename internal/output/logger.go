// Package output configures structured diagnostic logging for the
// decoder CLI. The decode result itself is written separately, as JSON,
// to stdout — this package only carries zerolog diagnostics to stderr.
package output

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ethdecode/v3swap/internal/config"
)

// Logger carries structured diagnostics for one decode run.
type Logger struct{}

// NewLogger configures zerolog's global logger per cfg and returns a
// Logger for the decode pipeline's diagnostic calls.
func NewLogger(cfg config.LoggingConfig) *Logger {
	switch cfg.Format {
	case "json":
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	case "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	}

	switch cfg.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	return &Logger{}
}

// LogCacheHit logs a pool-info or decimals cache hit during a decode.
func (l *Logger) LogCacheHit(kind string, addr common.Address) {
	log.Debug().Str("kind", kind).Str("address", addr.Hex()).Msg("Cache hit")
}

// LogCandidates logs how many candidate sequences and intents a decode
// produced before scoring.
func (l *Logger) LogCandidates(txHash common.Hash, candidates, intents int) {
	log.Debug().
		Str("txHash", txHash.Hex()).
		Int("candidates", candidates).
		Int("intents", intents).
		Msg("Enumerated candidates")
}

// LogSelection logs the winning (candidate, intent) pair's score.
func (l *Logger) LogSelection(txHash common.Hash, score int) {
	log.Info().
		Str("txHash", txHash.Hex()).
		Int("score", score).
		Msg("Selected swap candidate")
}

// LogDecodeWarning logs a recoverable decode anomaly (a dropped Swap
// log) without failing the decode.
func (l *Logger) LogDecodeWarning(context string, err error) {
	log.Warn().Err(err).Str("context", context).Msg("Decode warning")
}

// LogError logs a terminal error for the current decode.
func (l *Logger) LogError(err error, context string) {
	log.Error().Err(err).Str("context", context).Msg("Error occurred")
}
