package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken jest zwracany dla tokenów o złej sygnaturze lub po terminie.
	ErrInvalidToken = errors.New("token nieprawidłowy")
)

// Claims reprezentuje dane obecne w tokenie dostawcy tożsamości.
// Subject to zewnętrzny identyfikator użytkownika; e-mail jest opcjonalny.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier waliduje tokeny HS256 wystawione przez dostawcę tożsamości.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier tworzy weryfikator ze wspólnym sekretem.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// ParseAndValidate sprawdza sygnaturę i termin ważności tokenu.
func (v *TokenVerifier) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// MintToken generuje token HS256 zgodny z formatem dostawcy.
// Używane wyłącznie przez narzędzie deweloperskie (cmd/devtoken).
func (v *TokenVerifier) MintToken(subject, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
