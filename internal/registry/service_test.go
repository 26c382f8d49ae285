package registry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubRegistryRepo struct {
	requests    []Request
	workDays    []WorkDay
	lastInsert  InsertRequestParams
	insertCalls int
	deleteCalls int
	deleteErr   error
	workDayErr  error
	nextID      int64
}

func newStubRegistryRepo() *stubRegistryRepo {
	return &stubRegistryRepo{nextID: 1}
}

func (s *stubRegistryRepo) InsertRequest(ctx context.Context, params InsertRequestParams) (*Request, error) {
	s.insertCalls++
	s.lastInsert = params
	req := Request{
		ID:            s.nextID,
		ApplicantName: params.ApplicantName,
		Month:         params.Month,
		PlannedCount:  params.PlannedCount,
		Notes:         params.Notes,
		RequestNumber: params.RequestNumber,
		SubmittedOn:   params.SubmittedOn,
		PlanSmall:     params.PlanSmall,
		PlanLarge:     params.PlanLarge,
		PlanCoupled:   params.PlanCoupled,
	}
	s.nextID++
	s.requests = append(s.requests, req)
	return &req, nil
}

func (s *stubRegistryRepo) GetRequest(ctx context.Context, id int64) (*Request, error) {
	for _, req := range s.requests {
		if req.ID == id {
			copied := req
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubRegistryRepo) ListRequests(ctx context.Context, limit int) ([]Request, error) {
	return s.requests, nil
}

func (s *stubRegistryRepo) DeleteRequest(ctx context.Context, id int64) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, req := range s.requests {
		if req.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *stubRegistryRepo) InsertWorkDay(ctx context.Context, date time.Time, isOpen bool, notes string) (*WorkDay, error) {
	if s.workDayErr != nil {
		return nil, s.workDayErr
	}
	day := WorkDay{ID: s.nextID, Date: date, IsOpen: isOpen, Notes: notes}
	s.nextID++
	s.workDays = append(s.workDays, day)
	return &day, nil
}

func (s *stubRegistryRepo) ListWorkDays(ctx context.Context, limit int) ([]WorkDay, error) {
	return s.workDays, nil
}

func TestCreateRequestComposesNotes(t *testing.T) {
	repo := newStubRegistryRepo()
	svc := NewService(repo)

	planned := 10
	req, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		ApplicantName: "Wodociągi Opole",
		Month:         "2025-01",
		PlannedCount:  &planned,
		RequestNumber: "A1",
		SubmittedOn:   "2025-01-15",
		Notes:         "urgent",
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	want := "Nr wniosku: A1; Złożono: 2025-01-15; urgent"
	if req.Notes != want {
		t.Fatalf("notes = %q, oczekiwano %q", req.Notes, want)
	}
	if req.RequestNumber == nil || *req.RequestNumber != "A1" {
		t.Fatalf("request_number = %v", req.RequestNumber)
	}
	if req.SubmittedOn == nil || req.SubmittedOn.Format("2006-01-02") != "2025-01-15" {
		t.Fatalf("submitted_on = %v", req.SubmittedOn)
	}
}

func TestCreateRequestPlanFromBreakdown(t *testing.T) {
	repo := newStubRegistryRepo()
	svc := NewService(repo)

	small, large, coupled := 320, 18, 2
	req, err := svc.CreateRequest(context.Background(), CreateRequestInput{
		ApplicantName: "Wodociągi i Kanalizacja Opole",
		Month:         "2025-10",
		PlanSmall:     &small,
		PlanLarge:     &large,
		PlanCoupled:   &coupled,
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	if req.PlannedCount != 340 {
		t.Fatalf("planned_count = %d, oczekiwano 340", req.PlannedCount)
	}
	if req.Notes != "Qn<15:320, Qn>15:18, sprzężone:2" {
		t.Fatalf("notes = %q", req.Notes)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	planned := 10
	negative := -3
	zero := 0

	cases := []struct {
		name  string
		input CreateRequestInput
	}{
		{"za krótki wnioskodawca", CreateRequestInput{ApplicantName: "W", Month: "2025-01", PlannedCount: &planned}},
		{"miesiąc 13", CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-13", PlannedCount: &planned}},
		{"zły format miesiąca", CreateRequestInput{ApplicantName: "Wodociągi", Month: "01-2025", PlannedCount: &planned}},
		{"plan zerowy", CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-01", PlannedCount: &zero}},
		{"plan ujemny", CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-01", PlannedCount: &negative}},
		{"brak planu", CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-01"}},
		{"ujemna kategoria", CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-01", PlanSmall: &negative}},
		{"zła data złożenia", CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-01", PlannedCount: &planned, SubmittedOn: "15.01.2025"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubRegistryRepo()
			svc := NewService(repo)

			if _, err := svc.CreateRequest(context.Background(), tc.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("oczekiwano ErrValidation, jest %v", err)
			}
			if repo.insertCalls != 0 {
				t.Fatal("walidacja nie może dotknąć bazy")
			}
		})
	}
}

func TestDeleteRequestRequiresConfirmation(t *testing.T) {
	repo := newStubRegistryRepo()
	planned := 5
	svc := NewService(repo)
	if _, err := svc.CreateRequest(context.Background(), CreateRequestInput{ApplicantName: "Wodociągi", Month: "2025-01", PlannedCount: &planned}); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	if err := svc.DeleteRequest(context.Background(), 1, false); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("oczekiwano ErrConfirmRequired, jest %v", err)
	}
	if repo.deleteCalls != 0 || len(repo.requests) != 1 {
		t.Fatal("bez potwierdzenia wiersz musi pozostać nietknięty")
	}

	if err := svc.DeleteRequest(context.Background(), 1, true); err != nil {
		t.Fatalf("DeleteRequest z potwierdzeniem: %v", err)
	}
	if len(repo.requests) != 0 {
		t.Fatal("wniosek nie został usunięty")
	}
}

func TestDeleteRequestBadID(t *testing.T) {
	svc := NewService(newStubRegistryRepo())

	if err := svc.DeleteRequest(context.Background(), 0, true); !errors.Is(err, ErrBadID) {
		t.Fatalf("oczekiwano ErrBadID, jest %v", err)
	}
	if err := svc.DeleteRequest(context.Background(), -7, true); !errors.Is(err, ErrBadID) {
		t.Fatalf("oczekiwano ErrBadID, jest %v", err)
	}
}

func TestDeleteRequestBlockedByEntries(t *testing.T) {
	repo := newStubRegistryRepo()
	repo.deleteErr = ErrHasEntries
	svc := NewService(repo)

	if err := svc.DeleteRequest(context.Background(), 1, true); !errors.Is(err, ErrHasEntries) {
		t.Fatalf("oczekiwano ErrHasEntries, jest %v", err)
	}
}

func TestCreateWorkDayDefaultsToOpen(t *testing.T) {
	repo := newStubRegistryRepo()
	svc := NewService(repo)

	day, err := svc.CreateWorkDay(context.Background(), CreateWorkDayInput{Date: "2025-03-10", Notes: "Start legalizacji"})
	if err != nil {
		t.Fatalf("CreateWorkDay: %v", err)
	}
	if !day.IsOpen {
		t.Fatal("dzień powinien być domyślnie otwarty")
	}
	if day.Date.Format("2006-01-02") != "2025-03-10" {
		t.Fatalf("data = %v", day.Date)
	}
}

func TestCreateWorkDayRejectsBadDate(t *testing.T) {
	repo := newStubRegistryRepo()
	svc := NewService(repo)

	for _, date := range []string{"2025-02-30", "10.03.2025", ""} {
		if _, err := svc.CreateWorkDay(context.Background(), CreateWorkDayInput{Date: date}); !errors.Is(err, ErrValidation) {
			t.Fatalf("data %q: oczekiwano ErrValidation, jest %v", date, err)
		}
	}
	if len(repo.workDays) != 0 {
		t.Fatal("odrzucona walidacja nie może zapisać wiersza")
	}
}
