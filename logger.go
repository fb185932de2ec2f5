package fulcrum

import (
	"os"

	"github.com/fulcrumhq/fulcrum/log"
)

// logger is the global logger instance the package-level helper
// displayStartupMessage writes through.
var logger *log.Logger

// initLogger builds the global logger from cfg. A server with
// AccessLogFile set rotates through a log.NewRotating-backed logger
// instead of writing straight to stdout.
func initLogger(cfg Config) {
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	if cfg.AccessLogFile != "" {
		logger = log.NewRotating(log.RotationConfig{
			Filename:   cfg.AccessLogFile,
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 28,
			Compress:   true,
			Level:      level,
		})
	} else {
		logger = log.New(os.Stdout, level)
	}

	// Package-level log.Info()/log.Error() helpers share this server's
	// level; their destination is set to stdout only when AccessLogFile
	// is empty and is left unchanged otherwise.
	log.SetLevel(level)
	if cfg.AccessLogFile == "" {
		log.SetOutput(os.Stdout)
	}
}

// displayStartupMessage displays a startup message with server information
func displayStartupMessage(addr string) {
	logger.Info().Msg("  _   _            _           _")
	logger.Info().Msg(" | \\ | | __ _  ___| |__  _   _| |_ ")
	logger.Info().Msg(" |  \\| |/ _` |/ _ \\ '_ \\| | | | __|")
	logger.Info().Msg(" | |\\  | (_| |  __/ |_) | |_| | |_ ")
	logger.Info().Msg(" |_| \\_|\\__, |\\___|_.__/ \\__,_|\\__|")
	logger.Info().Msg("        |___/")
	logger.Info().Msg(" ")
	logger.Info().Msgf("Server is running on %s", addr)
	logger.Info().Msg("Press Ctrl+C to stop the server")
	logger.Info().Msg(" ")
}
