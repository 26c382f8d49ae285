// Command makeadmin nadaje użytkownikowi trwałą rolę ADMIN po adresie e-mail.
package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wodomierze/rejestr/internal/db"
	"github.com/wodomierze/rejestr/internal/repo"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		log.Fatal().Msg("użycie: makeadmin <email>")
	}
	email := strings.TrimSpace(os.Args[1])
	if email == "" {
		log.Fatal().Msg("e-mail nie może być pusty")
	}

	_ = godotenv.Load()

	ctx := context.Background()

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		log.Fatal().Msg("ustaw DB_DSN")
	}

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("połączenie z bazą nieudane")
	}
	defer pool.Close()

	users := repo.NewUsers(pool)

	user, err := users.PromoteByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Fatal().Str("email", email).Msg("użytkownik nie istnieje — musi najpierw zalogować się do aplikacji")
		}
		log.Fatal().Err(err).Msg("nadanie roli nieudane")
	}

	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("rola ADMIN nadana")
}
