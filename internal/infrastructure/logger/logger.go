package logger

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup parses level, picks a console writer for an interactive terminal
// and plain JSON otherwise, and installs the result as the package-level
// zerolog logger used across internal/knowledgebase and internal/deck.
func Setup(level string) zerolog.Logger {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)

	var w zerolog.Logger
	if isatty.IsTerminal(os.Stdout.Fd()) {
		w = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	} else {
		w = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	log.Logger = w
	return w
}

// Logger returns a default logger at info level.
func Logger() zerolog.Logger {
	return Setup("info")
}
