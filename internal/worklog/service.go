package worklog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wodomierze/rejestr/internal/progress"
	"github.com/wodomierze/rejestr/internal/registry"
)

var (
	// ErrValidation oznacza dane wpisu odrzucone przed zapisem.
	ErrValidation = errors.New("dane wpisu są nieprawidłowe")
	// ErrEmptyEntry oznacza wpis bez ani jednej sztuki w żadnej kategorii.
	ErrEmptyEntry = fmt.Errorf("%w: wpis musi mieć co najmniej jedną sztukę", ErrValidation)
)

// Kanoniczne kategorie wodomierzy.
const (
	CategorySmall   = "small"   // Qn < 15
	CategoryLarge   = "large"   // Qn > 15
	CategoryCoupled = "coupled" // sprzężone
)

const defaultRecentLimit = 12

// EntryStore to operacje na wpisach pracy i ich agregacjach.
type EntryStore interface {
	InsertEntry(ctx context.Context, params InsertEntryParams) (*Entry, error)
	TotalsForRequest(ctx context.Context, requestID int64) (Totals, error)
	TotalsGroupedByRequest(ctx context.Context) (map[int64]Totals, error)
	TotalsByInspector(ctx context.Context, requestID int64) ([]InspectorTotals, error)
	RecentEntries(ctx context.Context, requestID *int64, limit int) ([]RecentEntry, error)
}

// RequestSource dostarcza wnioski, przeciwko którym raportowana jest praca.
// Implementuje go repozytorium rejestru.
type RequestSource interface {
	GetRequest(ctx context.Context, id int64) (*registry.Request, error)
	ListRequests(ctx context.Context, limit int) ([]registry.Request, error)
}

// Service realizuje dziennik pracy: wpisy, podsumowania i pulpit.
type Service struct {
	entries  EntryStore
	requests RequestSource
}

// NewService tworzy serwis dziennika pracy.
func NewService(entries EntryStore, requests RequestSource) *Service {
	return &Service{entries: entries, requests: requests}
}

// CreateEntry zapisuje pracę inspektora. Formularz jednej kategorii
// podnosi liczbę sztuk do minimum 1; formularz trzech liczników obcina
// wartości ujemne do zera i wymaga co najmniej jednej sztuki łącznie.
func (s *Service) CreateEntry(ctx context.Context, inspectorID int64, input CreateEntryInput) (*Entry, error) {
	if inspectorID <= 0 {
		return nil, fmt.Errorf("%w: brak inspektora", ErrValidation)
	}
	if input.RequestID <= 0 {
		return nil, fmt.Errorf("%w: brak wniosku", ErrValidation)
	}
	if input.WorkDayID <= 0 {
		return nil, fmt.Errorf("%w: brak dnia pracy", ErrValidation)
	}

	params := InsertEntryParams{
		RequestID:   input.RequestID,
		WorkDayID:   input.WorkDayID,
		InspectorID: inspectorID,
	}

	if category := strings.TrimSpace(input.Category); category != "" {
		count := int(input.Count)
		if count < 1 {
			count = 1
		}
		switch category {
		case CategorySmall:
			params.CountSmall = count
		case CategoryLarge:
			params.CountLarge = count
		case CategoryCoupled:
			params.CountCoupled = count
		default:
			return nil, fmt.Errorf("%w: nieznana kategoria %q", ErrValidation, category)
		}
	} else {
		params.CountSmall = clampNonNegative(int(input.CountSmall))
		params.CountLarge = clampNonNegative(int(input.CountLarge))
		params.CountCoupled = clampNonNegative(int(input.CountCoupled))
		if params.CountSmall+params.CountLarge+params.CountCoupled == 0 {
			return nil, ErrEmptyEntry
		}
	}

	return s.entries.InsertEntry(ctx, params)
}

// RecentEntries zwraca najnowsze wpisy, opcjonalnie tylko jednego wniosku.
func (s *Service) RecentEntries(ctx context.Context, requestID *int64, limit int) ([]RecentEntry, error) {
	if requestID != nil && *requestID <= 0 {
		return nil, fmt.Errorf("%w: nieprawidłowy wniosek", ErrValidation)
	}
	return s.entries.RecentEntries(ctx, requestID, normalizeRecentLimit(limit))
}

// CategoryProgress to postęp per kategoria, liczony tylko dla kategorii
// z ustalonym planem.
type CategoryProgress struct {
	Small   *progress.Result `json:"small,omitempty"`
	Large   *progress.Result `json:"large,omitempty"`
	Coupled *progress.Result `json:"coupled,omitempty"`
}

// RequestSummary to pełne podsumowanie wniosku: plan, sumy, postęp
// i ranking inspektorów.
type RequestSummary struct {
	Request    *registry.Request      `json:"request"`
	Plan       registry.PlanBreakdown `json:"plan"`
	Totals     Totals                 `json:"totals"`
	Progress   progress.Result        `json:"progress"`
	Categories *CategoryProgress      `json:"categories,omitempty"`
	Inspectors []InspectorTotals      `json:"inspectors"`
}

// Summary buduje podsumowanie wniosku; postęp per kategoria pojawia się
// tylko dla kategorii, dla których znany jest plan.
func (s *Service) Summary(ctx context.Context, requestID int64) (*RequestSummary, error) {
	if requestID <= 0 {
		return nil, fmt.Errorf("%w: nieprawidłowy wniosek", ErrValidation)
	}

	request, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	totals, err := s.entries.TotalsForRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	inspectors, err := s.entries.TotalsByInspector(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if inspectors == nil {
		inspectors = []InspectorTotals{}
	}

	plan := request.Breakdown()
	summary := &RequestSummary{
		Request:    request,
		Plan:       plan,
		Totals:     totals,
		Progress:   progress.ComputeInts(request.PlannedCount, totals.Total),
		Inspectors: inspectors,
	}

	if plan.Any() {
		categories := &CategoryProgress{}
		if plan.Small != nil {
			r := progress.ComputeInts(*plan.Small, totals.Small)
			categories.Small = &r
		}
		if plan.Large != nil {
			r := progress.ComputeInts(*plan.Large, totals.Large)
			categories.Large = &r
		}
		if plan.Coupled != nil {
			r := progress.ComputeInts(*plan.Coupled, totals.Coupled)
			categories.Coupled = &r
		}
		summary.Categories = categories
	}

	return summary, nil
}

// RequestProgress to wniosek z doliczonymi sumami i postępem.
type RequestProgress struct {
	registry.Request
	Totals   Totals          `json:"totals"`
	Progress progress.Result `json:"progress"`
}

// Dashboard to widok startowy: wszystkie wnioski z postępem
// oraz ostatnie wpisy pracy.
type Dashboard struct {
	Requests      []RequestProgress `json:"requests"`
	RecentEntries []RecentEntry     `json:"recent_entries"`
}

// Dashboard liczy pulpit na świeżych danych przy każdym odczycie.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	requests, err := s.requests.ListRequests(ctx, 200)
	if err != nil {
		return nil, err
	}

	totals, err := s.entries.TotalsGroupedByRequest(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.entries.RecentEntries(ctx, nil, defaultRecentLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []RecentEntry{}
	}

	rows := make([]RequestProgress, 0, len(requests))
	for _, request := range requests {
		t := totals[request.ID]
		rows = append(rows, RequestProgress{
			Request:  request,
			Totals:   t,
			Progress: progress.ComputeInts(request.PlannedCount, t.Total),
		})
	}

	return &Dashboard{Requests: rows, RecentEntries: recent}, nil
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func normalizeRecentLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
