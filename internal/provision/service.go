// Package provision gwarantuje, że uwierzytelniony podmiot posiada
// lokalny rekord użytkownika (find-or-create po subject id).
package provision

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wodomierze/rejestr/internal/identity"
	"github.com/wodomierze/rejestr/internal/repo"
)

var (
	// ErrNotAuthenticated jest zwracany przy braku zewnętrznego subject id.
	ErrNotAuthenticated = errors.New("brak uwierzytelnienia")
)

const (
	userCachePrefix = "provision:user:"
	fallbackName    = "Inspector"
)

// UserStore to wymagany podzbiór repozytorium użytkowników.
type UserStore interface {
	GetBySubject(ctx context.Context, subject string) (*repo.User, error)
	Insert(ctx context.Context, subject, name, email string) (*repo.User, error)
}

// ProfileFetcher pobiera profil z API dostawcy tożsamości.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, subject string) (*identity.Profile, error)
}

type cacheCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Service realizuje provisioning użytkowników.
type Service struct {
	store    UserStore
	profiles ProfileFetcher
	cache    cacheCommander
	cacheTTL time.Duration
}

// New tworzy serwis provisioningu. Cache może być nil (np. w testach).
func New(store UserStore, profiles ProfileFetcher, cache cacheCommander, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{store: store, profiles: profiles, cache: cache, cacheTTL: cacheTTL}
}

// EnsureUser zwraca lokalnego użytkownika dla subject id, zakładając rekord
// przy pierwszym kontakcie. Istniejący rekord nie jest nadpisywany danymi
// z dostawcy — zmiana nazwy lub e-maila u dostawcy nie propaguje się tutaj.
func (s *Service) EnsureUser(ctx context.Context, subject string) (*repo.User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrNotAuthenticated
	}

	if cached := s.fromCache(ctx, subject); cached != nil {
		return cached, nil
	}

	user, err := s.store.GetBySubject(ctx, subject)
	if err == nil {
		s.toCache(ctx, subject, user)
		return user, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	name, email := s.deriveIdentity(ctx, subject)

	user, err = s.store.Insert(ctx, subject, name, email)
	if errors.Is(err, repo.ErrSubjectTaken) {
		// Równoległe pierwsze logowanie: przegrany insert dobiera
		// istniejący rekord zamiast zgłaszać błąd wywołującemu.
		user, err = s.store.GetBySubject(ctx, subject)
	}
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, subject, user)
	return user, nil
}

// deriveIdentity wyprowadza nazwę i e-mail z profilu dostawcy.
// Brak profilu nie blokuje provisioningu — wchodzą wartości zastępcze.
func (s *Service) deriveIdentity(ctx context.Context, subject string) (name, email string) {
	name = fallbackName
	email = subject + "@example.local"

	profile, err := s.profiles.GetProfile(ctx, subject)
	if err != nil {
		if !errors.Is(err, identity.ErrProfileNotFound) {
			log.Warn().Err(err).Str("subject", subject).Msg("profil dostawcy niedostępny")
		}
		return name, email
	}

	if len(profile.Emails) > 0 {
		email = profile.Emails[0]
	}

	parts := make([]string, 0, 2)
	if profile.FirstName != "" {
		parts = append(parts, profile.FirstName)
	}
	if profile.LastName != "" {
		parts = append(parts, profile.LastName)
	}
	if len(parts) > 0 {
		name = strings.Join(parts, " ")
	}

	return name, email
}

func (s *Service) fromCache(ctx context.Context, subject string) *repo.User {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, userCachePrefix+subject).Bytes()
	if err != nil {
		return nil
	}

	var user repo.User
	if json.Unmarshal(data, &user) != nil {
		return nil
	}
	return &user
}

func (s *Service) toCache(ctx context.Context, subject string, user *repo.User) {
	if s.cache == nil || user == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, userCachePrefix+subject, data, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("cache użytkownika niezapisany")
	}
}
