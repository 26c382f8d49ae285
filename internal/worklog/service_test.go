package worklog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wodomierze/rejestr/internal/registry"
)

type stubEntryStore struct {
	entries      []Entry
	insertCalls  int
	totals       map[int64]Totals
	byInspector  map[int64][]InspectorTotals
	recent       []RecentEntry
	insertErr    error
	nextID       int64
	recentCalls  int
	lastRecentID *int64
	lastLimit    int
}

func newStubEntryStore() *stubEntryStore {
	return &stubEntryStore{
		totals:      map[int64]Totals{},
		byInspector: map[int64][]InspectorTotals{},
		nextID:      1,
	}
}

func (s *stubEntryStore) InsertEntry(ctx context.Context, params InsertEntryParams) (*Entry, error) {
	s.insertCalls++
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	entry := Entry{
		ID:           s.nextID,
		RequestID:    params.RequestID,
		WorkDayID:    params.WorkDayID,
		InspectorID:  params.InspectorID,
		CountSmall:   params.CountSmall,
		CountLarge:   params.CountLarge,
		CountCoupled: params.CountCoupled,
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func (s *stubEntryStore) TotalsForRequest(ctx context.Context, requestID int64) (Totals, error) {
	return s.totals[requestID], nil
}

func (s *stubEntryStore) TotalsGroupedByRequest(ctx context.Context) (map[int64]Totals, error) {
	return s.totals, nil
}

func (s *stubEntryStore) TotalsByInspector(ctx context.Context, requestID int64) ([]InspectorTotals, error) {
	return s.byInspector[requestID], nil
}

func (s *stubEntryStore) RecentEntries(ctx context.Context, requestID *int64, limit int) ([]RecentEntry, error) {
	s.recentCalls++
	s.lastRecentID = requestID
	s.lastLimit = limit
	return s.recent, nil
}

type stubRequestSource struct {
	requests map[int64]*registry.Request
}

func newStubRequestSource(requests ...*registry.Request) *stubRequestSource {
	source := &stubRequestSource{requests: map[int64]*registry.Request{}}
	for _, req := range requests {
		source.requests[req.ID] = req
	}
	return source
}

func (s *stubRequestSource) GetRequest(ctx context.Context, id int64) (*registry.Request, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, registry.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (s *stubRequestSource) ListRequests(ctx context.Context, limit int) ([]registry.Request, error) {
	var list []registry.Request
	for _, req := range s.requests {
		list = append(list, *req)
	}
	return list, nil
}

func intPtr(v int) *int { return &v }

func TestCreateEntrySingleCategoryClampsToOne(t *testing.T) {
	store := newStubEntryStore()
	svc := NewService(store, newStubRequestSource())

	for _, count := range []FlexCount{0, -5, 1} {
		entry, err := svc.CreateEntry(context.Background(), 7, CreateEntryInput{
			RequestID: 1,
			WorkDayID: 2,
			Category:  CategorySmall,
			Count:     count,
		})
		if err != nil {
			t.Fatalf("CreateEntry(count=%d): %v", count, err)
		}
		if entry.CountSmall != 1 {
			t.Fatalf("count_small = %d, oczekiwano 1", entry.CountSmall)
		}
		if entry.CountLarge != 0 || entry.CountCoupled != 0 {
			t.Fatalf("pozostałe kategorie muszą być zerowe: %+v", entry)
		}
	}
}

func TestCreateEntryCategoryRouting(t *testing.T) {
	store := newStubEntryStore()
	svc := NewService(store, newStubRequestSource())

	cases := []struct {
		category string
		check    func(e *Entry) int
	}{
		{CategorySmall, func(e *Entry) int { return e.CountSmall }},
		{CategoryLarge, func(e *Entry) int { return e.CountLarge }},
		{CategoryCoupled, func(e *Entry) int { return e.CountCoupled }},
	}

	for _, tc := range cases {
		entry, err := svc.CreateEntry(context.Background(), 7, CreateEntryInput{
			RequestID: 1, WorkDayID: 2, Category: tc.category, Count: 4,
		})
		if err != nil {
			t.Fatalf("CreateEntry(%s): %v", tc.category, err)
		}
		if tc.check(entry) != 4 {
			t.Fatalf("kategoria %s: %+v", tc.category, entry)
		}
	}
}

func TestCreateEntryUnknownCategory(t *testing.T) {
	store := newStubEntryStore()
	svc := NewService(store, newStubRequestSource())

	_, err := svc.CreateEntry(context.Background(), 7, CreateEntryInput{
		RequestID: 1, WorkDayID: 2, Category: "huge", Count: 3,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("oczekiwano ErrValidation, jest %v", err)
	}
	if store.insertCalls != 0 {
		t.Fatal("odrzucony wpis nie może trafić do bazy")
	}
}

func TestCreateEntryExplicitCountersClampNegatives(t *testing.T) {
	store := newStubEntryStore()
	svc := NewService(store, newStubRequestSource())

	entry, err := svc.CreateEntry(context.Background(), 7, CreateEntryInput{
		RequestID:    1,
		WorkDayID:    2,
		CountSmall:   -3,
		CountLarge:   5,
		CountCoupled: -1,
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.CountSmall != 0 || entry.CountLarge != 5 || entry.CountCoupled != 0 {
		t.Fatalf("liczniki = %+v", entry)
	}
}

func TestCreateEntryRejectsEmptyEntry(t *testing.T) {
	store := newStubEntryStore()
	svc := NewService(store, newStubRequestSource())

	_, err := svc.CreateEntry(context.Background(), 7, CreateEntryInput{
		RequestID:    1,
		WorkDayID:    2,
		CountSmall:   0,
		CountLarge:   -4,
		CountCoupled: 0,
	})
	if !errors.Is(err, ErrEmptyEntry) {
		t.Fatalf("oczekiwano ErrEmptyEntry, jest %v", err)
	}
	if store.insertCalls != 0 {
		t.Fatal("pusty wpis nie może trafić do bazy")
	}
}

func TestCreateEntryRequiresReferences(t *testing.T) {
	svc := NewService(newStubEntryStore(), newStubRequestSource())

	cases := []CreateEntryInput{
		{RequestID: 0, WorkDayID: 2, Category: CategorySmall, Count: 1},
		{RequestID: 1, WorkDayID: 0, Category: CategorySmall, Count: 1},
	}
	for _, input := range cases {
		if _, err := svc.CreateEntry(context.Background(), 7, input); !errors.Is(err, ErrValidation) {
			t.Fatalf("wejście %+v: oczekiwano ErrValidation, jest %v", input, err)
		}
	}

	if _, err := svc.CreateEntry(context.Background(), 0, CreateEntryInput{RequestID: 1, WorkDayID: 2, Category: CategorySmall, Count: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("brak inspektora: oczekiwano ErrValidation, jest %v", err)
	}
}

func TestCreateEntryPropagatesBadReference(t *testing.T) {
	store := newStubEntryStore()
	store.insertErr = ErrBadReference
	svc := NewService(store, newStubRequestSource())

	_, err := svc.CreateEntry(context.Background(), 7, CreateEntryInput{
		RequestID: 99, WorkDayID: 2, Category: CategorySmall, Count: 1,
	})
	if !errors.Is(err, ErrBadReference) {
		t.Fatalf("oczekiwano ErrBadReference, jest %v", err)
	}
}

func TestSummaryComputesProgressAndCategories(t *testing.T) {
	store := newStubEntryStore()
	store.totals[1] = Totals{Small: 100, Large: 5, Coupled: 1, Total: 106}
	store.byInspector[1] = []InspectorTotals{
		{InspectorID: 7, InspectorName: "Jan Kowalski", Totals: Totals{Small: 100, Large: 5, Coupled: 1, Total: 106}},
	}

	request := &registry.Request{
		ID:            1,
		ApplicantName: "Wodociągi Opole",
		Month:         "2025-10",
		PlannedCount:  340,
		PlanSmall:     intPtr(320),
		PlanLarge:     intPtr(18),
		PlanCoupled:   intPtr(2),
	}
	svc := NewService(store, newStubRequestSource(request))

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.Progress.Done != 106 || summary.Progress.Remaining != 234 {
		t.Fatalf("progress = %+v", summary.Progress)
	}
	if summary.Progress.Percent != 31 {
		t.Fatalf("percent = %d, oczekiwano 31", summary.Progress.Percent)
	}
	if summary.Categories == nil || summary.Categories.Small == nil {
		t.Fatalf("brak postępu per kategoria: %+v", summary.Categories)
	}
	if summary.Categories.Small.Done != 100 || summary.Categories.Small.Remaining != 220 {
		t.Fatalf("postęp małych = %+v", summary.Categories.Small)
	}
	if len(summary.Inspectors) != 1 || summary.Inspectors[0].InspectorName != "Jan Kowalski" {
		t.Fatalf("ranking = %+v", summary.Inspectors)
	}
}

func TestSummaryFallsBackToNotesBreakdown(t *testing.T) {
	store := newStubEntryStore()
	store.totals[1] = Totals{Small: 10, Total: 10}

	request := &registry.Request{
		ID:            1,
		ApplicantName: "Wodociągi",
		Month:         "2025-01",
		PlannedCount:  340,
		Notes:         "Qn<15:320, Qn>15:18, sprzężone:2",
	}
	svc := NewService(store, newStubRequestSource(request))

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Plan.Small == nil || *summary.Plan.Small != 320 {
		t.Fatalf("plan z notatek = %+v", summary.Plan)
	}
	if summary.Categories == nil || summary.Categories.Coupled == nil {
		t.Fatalf("brak kategorii z notatek: %+v", summary.Categories)
	}
}

func TestSummaryWithoutPlanBreakdown(t *testing.T) {
	store := newStubEntryStore()
	request := &registry.Request{ID: 1, ApplicantName: "Wodociągi", Month: "2025-01", PlannedCount: 10}
	svc := NewService(store, newStubRequestSource(request))

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Categories != nil {
		t.Fatalf("bez planu per kategoria nie ma postępu per kategoria: %+v", summary.Categories)
	}
	if summary.Inspectors == nil || len(summary.Inspectors) != 0 {
		t.Fatalf("ranking powinien być pustą listą, jest %#v", summary.Inspectors)
	}
}

func TestSummaryUnknownRequest(t *testing.T) {
	svc := NewService(newStubEntryStore(), newStubRequestSource())

	if _, err := svc.Summary(context.Background(), 42); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("oczekiwano ErrNotFound, jest %v", err)
	}
}

func TestDashboardJoinsTotalsWithRequests(t *testing.T) {
	store := newStubEntryStore()
	store.totals[1] = Totals{Small: 10, Large: 5, Total: 15}
	store.recent = []RecentEntry{
		{Entry: Entry{ID: 3, RequestID: 1}, InspectorName: "Jan", Total: 15},
	}

	reqWithWork := &registry.Request{ID: 1, ApplicantName: "Wodociągi", Month: "2025-01", PlannedCount: 10}
	reqFresh := &registry.Request{ID: 2, ApplicantName: "MPWiK", Month: "2025-02", PlannedCount: 50}
	svc := NewService(store, newStubRequestSource(reqWithWork, reqFresh))

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(dashboard.Requests) != 2 {
		t.Fatalf("liczba wniosków = %d", len(dashboard.Requests))
	}
	for _, row := range dashboard.Requests {
		switch row.ID {
		case 1:
			if row.Progress.Done != 15 || row.Progress.Overflow != 5 || row.Progress.Percent != 100 {
				t.Fatalf("postęp wniosku 1 = %+v", row.Progress)
			}
		case 2:
			if row.Totals.Total != 0 || row.Progress.Percent != 0 {
				t.Fatalf("wniosek bez wpisów = %+v", row)
			}
		default:
			t.Fatalf("nieoczekiwany wniosek %d", row.ID)
		}
	}

	if len(dashboard.RecentEntries) != 1 || dashboard.RecentEntries[0].InspectorName != "Jan" {
		t.Fatalf("ostatnie wpisy = %+v", dashboard.RecentEntries)
	}
	if store.lastLimit != defaultRecentLimit || store.lastRecentID != nil {
		t.Fatalf("pulpit pobiera %d najnowszych wpisów bez filtra, jest limit=%d", defaultRecentLimit, store.lastLimit)
	}
}

func TestRecentEntriesNormalizesLimit(t *testing.T) {
	store := newStubEntryStore()
	svc := NewService(store, newStubRequestSource())

	if _, err := svc.RecentEntries(context.Background(), nil, 0); err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if store.lastLimit != defaultRecentLimit {
		t.Fatalf("limit = %d, oczekiwano %d", store.lastLimit, defaultRecentLimit)
	}

	if _, err := svc.RecentEntries(context.Background(), nil, 500); err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if store.lastLimit != 100 {
		t.Fatalf("limit = %d, oczekiwano 100", store.lastLimit)
	}

	bad := int64(-1)
	if _, err := svc.RecentEntries(context.Background(), &bad, 5); !errors.Is(err, ErrValidation) {
		t.Fatalf("oczekiwano ErrValidation, jest %v", err)
	}
}
