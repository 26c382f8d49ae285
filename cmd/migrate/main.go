// Command migrate zarządza schematem bazy (goose): up, down, status.
package main

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wodomierze/rejestr/migrations"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	_ = godotenv.Load()

	ctx := context.Background()

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		log.Fatal().Msg("ustaw DB_DSN")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("otwarcie połączenia nieudane")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("baza niedostępna")
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("inicjalizacja goose nieudana")
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("migracje nieudane")
		}
		for _, result := range results {
			log.Info().Str("migration", result.Source.Path).Dur("duration", result.Duration).Msg("migracja zastosowana")
		}
		log.Info().Int("applied", len(results)).Msg("migracje zakończone")
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cofnięcie migracji nieudane")
		}
		log.Info().Str("migration", result.Source.Path).Msg("migracja cofnięta")
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("odczyt stanu nieudany")
		}
		for _, status := range statuses {
			event := log.Info().Str("migration", status.Source.Path)
			if status.State == goose.StateApplied {
				event = event.Time("applied_at", status.AppliedAt)
			}
			event.Str("state", string(status.State)).Msg("stan migracji")
		}
	default:
		log.Fatal().Str("command", command).Msg("użycie: migrate [up|down|status]")
	}
}
