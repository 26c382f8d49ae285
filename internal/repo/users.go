package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrSubjectTaken sygnalizuje kolizję na unikalnej kolumnie subject
	// (równoległe pierwsze logowania tego samego użytkownika).
	ErrSubjectTaken = errors.New("subject już zarejestrowany")
)

// Users daje dostęp do tabeli users.
type Users struct {
	pool *pgxpool.Pool
}

// NewUsers tworzy repozytorium użytkowników.
func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

// GetBySubject zwraca użytkownika po zewnętrznym subject id.
func (r *Users) GetBySubject(ctx context.Context, subject string) (*User, error) {
	const query = `
        SELECT id, subject, name, email, role
        FROM users
        WHERE subject = $1
    `

	return scanUser(r.pool.QueryRow(ctx, query, subject))
}

// GetByID zwraca użytkownika po identyfikatorze.
func (r *Users) GetByID(ctx context.Context, id int64) (*User, error) {
	const query = `
        SELECT id, subject, name, email, role
        FROM users
        WHERE id = $1
    `

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// Insert zakłada nowy rekord użytkownika z domyślną rolą INSPECTOR.
// Kolizję na unikalnym subject mapuje na ErrSubjectTaken.
func (r *Users) Insert(ctx context.Context, subject, name, email string) (*User, error) {
	const query = `
        INSERT INTO users (subject, name, email, role)
        VALUES ($1, $2, $3, 'INSPECTOR')
        RETURNING id, subject, name, email, role
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		strings.TrimSpace(subject),
		strings.TrimSpace(name),
		strings.TrimSpace(email),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSubjectTaken
		}
		return nil, err
	}
	return user, nil
}

// PromoteByEmail nadaje rolę ADMIN użytkownikowi o wskazanym e-mailu.
func (r *Users) PromoteByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
        UPDATE users
        SET role = 'ADMIN'
        WHERE lower(email) = lower($1)
        RETURNING id, subject, name, email, role
    `

	return scanUser(r.pool.QueryRow(ctx, query, strings.TrimSpace(email)))
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Subject, &u.Name, &u.Email, &u.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
