// Command sqlrest is the CLI entry point: it initializes logging and
// hands off to the cobra command tree in cli/cmd.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sqlrest-cli/sqlrest/cli/cmd"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
