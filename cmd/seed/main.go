// Command seed wstawia przykładowe dane do lokalnego środowiska:
// wniosek z podziałem planu na kategorie i otwarty dzień pracy.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wodomierze/rejestr/internal/db"
	"github.com/wodomierze/rejestr/internal/registry"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

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

	service := registry.NewService(registry.NewRepository(pool))

	now := time.Now()
	small, large, coupled := 320, 18, 2

	request, err := service.CreateRequest(ctx, registry.CreateRequestInput{
		ApplicantName: "Wodociągi i Kanalizacja Sp. z o.o.",
		Month:         now.Format("2006-01"),
		PlanSmall:     &small,
		PlanLarge:     &large,
		PlanCoupled:   &coupled,
		RequestNumber: "WN/" + now.Format("2006") + "/001",
		SubmittedOn:   now.Format("2006-01-02"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("wstawienie wniosku nieudane")
	}
	log.Info().Int64("request_id", request.ID).Int("planned_count", request.PlannedCount).Msg("wniosek dodany")

	day, err := service.CreateWorkDay(ctx, registry.CreateWorkDayInput{
		Date:  now.Format("2006-01-02"),
		Notes: "Dzień startowy legalizacji",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("wstawienie dnia pracy nieudane")
	}
	log.Info().Int64("work_day_id", day.ID).Str("date", day.Date.Format("2006-01-02")).Msg("dzień pracy dodany")
}
