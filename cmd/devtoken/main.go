// Command devtoken wystawia token deweloperski do ręcznych testów API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wodomierze/rejestr/internal/auth"
)

func main() {
	subject := flag.String("subject", "", "zewnętrzny identyfikator użytkownika (wymagany)")
	email := flag.String("email", "", "adres e-mail umieszczany w tokenie")
	ttl := flag.Duration("ttl", time.Hour, "czas ważności tokenu")
	flag.Parse()

	if strings.TrimSpace(*subject) == "" {
		fmt.Fprintln(os.Stderr, "użycie: devtoken -subject <id> [-email <adres>] [-ttl 1h]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		fmt.Fprintln(os.Stderr, "ustaw JWT_SECRET")
		os.Exit(1)
	}

	verifier := auth.NewTokenVerifier(secret)
	token, err := verifier.MintToken(strings.TrimSpace(*subject), strings.TrimSpace(*email), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generowanie tokenu: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
