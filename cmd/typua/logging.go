package main

import "go.uber.org/zap"

// newLogger builds the zap logger for one subcommand run: runCheck logs
// through it directly and runLSP hands it to the LSP server. debug selects development mode (human-readable,
// debug-level) over the default production JSON encoder.
func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
