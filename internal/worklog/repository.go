package worklog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrBadReference sygnalizuje wpis wskazujący nieistniejący wniosek,
	// dzień pracy lub użytkownika.
	ErrBadReference = errors.New("wpis wskazuje nieistniejący rekord")
)

// Repository daje dostęp do tabeli entries i jej agregacji.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository tworzy repozytorium dziennika pracy.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertEntryParams to komplet kolumn nowego wpisu.
type InsertEntryParams struct {
	RequestID    int64
	WorkDayID    int64
	InspectorID  int64
	CountSmall   int
	CountLarge   int
	CountCoupled int
}

// InsertEntry zapisuje niezmienialny wpis pracy. Naruszenie klucza obcego
// mapowane jest na ErrBadReference.
func (r *Repository) InsertEntry(ctx context.Context, params InsertEntryParams) (*Entry, error) {
	const query = `
        INSERT INTO entries (request_id, work_day_id, inspector_id, count_small, count_large, count_coupled)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, request_id, work_day_id, inspector_id, count_small, count_large, count_coupled, created_at
    `

	row := r.pool.QueryRow(ctx, query,
		params.RequestID,
		params.WorkDayID,
		params.InspectorID,
		params.CountSmall,
		params.CountLarge,
		params.CountCoupled,
	)

	var e Entry
	if err := row.Scan(&e.ID, &e.RequestID, &e.WorkDayID, &e.InspectorID, &e.CountSmall, &e.CountLarge, &e.CountCoupled, &e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrBadReference
		}
		return nil, err
	}
	return &e, nil
}

// TotalsForRequest sumuje kategorie wszystkich wpisów wniosku.
func (r *Repository) TotalsForRequest(ctx context.Context, requestID int64) (Totals, error) {
	const query = `
        SELECT
            COALESCE(SUM(count_small), 0),
            COALESCE(SUM(count_large), 0),
            COALESCE(SUM(count_coupled), 0),
            COALESCE(SUM(count_small + count_large + count_coupled), 0)
        FROM entries
        WHERE request_id = $1
    `

	var t Totals
	if err := r.pool.QueryRow(ctx, query, requestID).Scan(&t.Small, &t.Large, &t.Coupled, &t.Total); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// TotalsGroupedByRequest zwraca sumy kategorii dla wszystkich wniosków
// jednym zapytaniem (pulpit przelicza postęp przy każdym odczycie).
func (r *Repository) TotalsGroupedByRequest(ctx context.Context) (map[int64]Totals, error) {
	const query = `
        SELECT
            request_id,
            COALESCE(SUM(count_small), 0),
            COALESCE(SUM(count_large), 0),
            COALESCE(SUM(count_coupled), 0),
            COALESCE(SUM(count_small + count_large + count_coupled), 0)
        FROM entries
        GROUP BY request_id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]Totals)
	for rows.Next() {
		var requestID int64
		var t Totals
		if err := rows.Scan(&requestID, &t.Small, &t.Large, &t.Coupled, &t.Total); err != nil {
			return nil, err
		}
		totals[requestID] = t
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return totals, nil
}

// TotalsByInspector zwraca ranking inspektorów dla wniosku,
// malejąco po łącznej liczbie sztuk.
func (r *Repository) TotalsByInspector(ctx context.Context, requestID int64) ([]InspectorTotals, error) {
	const query = `
        SELECT
            u.id,
            u.name,
            COALESCE(SUM(e.count_small), 0),
            COALESCE(SUM(e.count_large), 0),
            COALESCE(SUM(e.count_coupled), 0),
            COALESCE(SUM(e.count_small + e.count_large + e.count_coupled), 0) AS total
        FROM entries e
        JOIN users u ON u.id = e.inspector_id
        WHERE e.request_id = $1
        GROUP BY u.id, u.name
        ORDER BY total DESC, u.name ASC
    `

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []InspectorTotals
	for rows.Next() {
		var it InspectorTotals
		if err := rows.Scan(&it.InspectorID, &it.InspectorName, &it.Small, &it.Large, &it.Coupled, &it.Total); err != nil {
			return nil, err
		}
		result = append(result, it)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return result, nil
}

// RecentEntries zwraca najnowsze wpisy (opcjonalnie jednego wniosku)
// wzbogacone o nazwę inspektora i sumę kategorii.
func (r *Repository) RecentEntries(ctx context.Context, requestID *int64, limit int) ([]RecentEntry, error) {
	const query = `
        SELECT
            e.id, e.request_id, e.work_day_id, e.inspector_id,
            e.count_small, e.count_large, e.count_coupled, e.created_at,
            u.name,
            e.count_small + e.count_large + e.count_coupled AS total
        FROM entries e
        JOIN users u ON u.id = e.inspector_id
        WHERE $1::bigint IS NULL OR e.request_id = $1
        ORDER BY e.created_at DESC, e.id DESC
        LIMIT $2
    `

	rows, err := r.pool.Query(ctx, query, requestID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []RecentEntry
	for rows.Next() {
		var re RecentEntry
		if err := rows.Scan(
			&re.ID, &re.RequestID, &re.WorkDayID, &re.InspectorID,
			&re.CountSmall, &re.CountLarge, &re.CountCoupled, &re.CreatedAt,
			&re.InspectorName, &re.Total,
		); err != nil {
			return nil, err
		}
		entries = append(entries, re)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return entries, nil
}
