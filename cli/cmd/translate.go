package cmd

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sqlrest-cli/sqlrest/internal/sqlrest"
	"github.com/sqlrest-cli/sqlrest/internal/sqlrest/render"
)

var translateCmd = &cobra.Command{
	Use:   "translate <sql>",
	Short: "Translate a SQL statement into a PostgREST HTTP request",
	Long: `Translate parses a single SELECT/INSERT/UPDATE/DELETE statement and
renders the HTTP request a PostgREST server would need to produce the
equivalent result.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	sql := strings.TrimSpace(args[0])

	stmt, err := sqlrest.Translate(context.Background(), sql)
	if err != nil {
		if IsDebug() {
			log.Debug().Err(err).Str("sql", sql).Msg("translate failed")
		}
		GetFormatter().PrintError(err.Error())
		return err
	}

	req, err := render.ToHTTPRequest(stmt)
	if err != nil {
		GetFormatter().PrintError(err.Error())
		return err
	}

	return GetFormatter().PrintRequest(req, GetBaseURL(), GetLang())
}
