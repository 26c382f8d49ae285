package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound jest zwracany, gdy wniosek lub dzień pracy nie istnieje.
	ErrNotFound = errors.New("rekord nie znaleziony")
	// ErrHasEntries blokuje usunięcie wniosku z zarejestrowanymi wpisami.
	ErrHasEntries = errors.New("wniosek ma zarejestrowane wpisy")
	// ErrDuplicateDate sygnalizuje próbę powtórnego dodania tej samej daty.
	ErrDuplicateDate = errors.New("dzień pracy o tej dacie już istnieje")
)

const requestColumns = "id, applicant_name, month, planned_count, COALESCE(notes, ''), request_number, submitted_on, plan_small, plan_large, plan_coupled"

// Repository daje dostęp do tabel requests i work_days.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository tworzy repozytorium rejestru.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertRequestParams to komplet kolumn nowego wniosku.
type InsertRequestParams struct {
	ApplicantName string
	Month         string
	PlannedCount  int
	Notes         string
	RequestNumber *string
	SubmittedOn   *time.Time
	PlanSmall     *int
	PlanLarge     *int
	PlanCoupled   *int
}

// InsertRequest zapisuje nowy wniosek.
func (r *Repository) InsertRequest(ctx context.Context, params InsertRequestParams) (*Request, error) {
	const query = `
        INSERT INTO requests (applicant_name, month, planned_count, notes, request_number, submitted_on, plan_small, plan_large, plan_coupled)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
        RETURNING ` + requestColumns + `
    `

	row := r.pool.QueryRow(ctx, query,
		strings.TrimSpace(params.ApplicantName),
		strings.TrimSpace(params.Month),
		params.PlannedCount,
		params.Notes,
		params.RequestNumber,
		params.SubmittedOn,
		params.PlanSmall,
		params.PlanLarge,
		params.PlanCoupled,
	)

	return scanRequest(row)
}

// GetRequest zwraca wniosek po identyfikatorze.
func (r *Repository) GetRequest(ctx context.Context, id int64) (*Request, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM requests
        WHERE id = $1
    `

	return scanRequest(r.pool.QueryRow(ctx, query, id))
}

// ListRequests zwraca wnioski od najnowszego.
func (r *Repository) ListRequests(ctx context.Context, limit int) ([]Request, error) {
	const query = `
        SELECT ` + requestColumns + `
        FROM requests
        ORDER BY id DESC
        LIMIT $1
    `

	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return requests, nil
}

// DeleteRequest usuwa wniosek. Naruszenie klucza obcego z tabeli entries
// mapowane jest na ErrHasEntries — usuwanie nie kaskaduje.
func (r *Repository) DeleteRequest(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasEntries
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertWorkDay zapisuje nowy dzień pracy. Data jest unikalna.
func (r *Repository) InsertWorkDay(ctx context.Context, date time.Time, isOpen bool, notes string) (*WorkDay, error) {
	const query = `
        INSERT INTO work_days (date, is_open, notes)
        VALUES ($1, $2, NULLIF($3, ''))
        RETURNING id, date, is_open, COALESCE(notes, '')
    `

	day, err := scanWorkDay(r.pool.QueryRow(ctx, query, date, isOpen, strings.TrimSpace(notes)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateDate
		}
		return nil, err
	}
	return day, nil
}

// ListWorkDays zwraca dni pracy od najnowszego.
func (r *Repository) ListWorkDays(ctx context.Context, limit int) ([]WorkDay, error) {
	const query = `
        SELECT id, date, is_open, COALESCE(notes, '')
        FROM work_days
        ORDER BY date DESC
        LIMIT $1
    `

	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []WorkDay
	for rows.Next() {
		day, err := scanWorkDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, *day)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return days, nil
}

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	if err := row.Scan(
		&req.ID,
		&req.ApplicantName,
		&req.Month,
		&req.PlannedCount,
		&req.Notes,
		&req.RequestNumber,
		&req.SubmittedOn,
		&req.PlanSmall,
		&req.PlanLarge,
		&req.PlanCoupled,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func scanWorkDay(row pgx.Row) (*WorkDay, error) {
	var day WorkDay
	if err := row.Scan(&day.ID, &day.Date, &day.IsOpen, &day.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
