package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wodomierze/rejestr/internal/util"
)

var (
	// ErrValidation opakowuje odrzucenie danych formularza przed zapisem.
	ErrValidation = errors.New("walidacja nieudana")
	// ErrConfirmRequired wymusza jawne potwierdzenie operacji usunięcia.
	ErrConfirmRequired = errors.New("wymagane potwierdzenie usunięcia")
	// ErrBadID sygnalizuje identyfikator niebędący dodatnią liczbą całkowitą.
	ErrBadID = errors.New("nieprawidłowy identyfikator")
)

// RegistryRepository to podzbiór repozytorium używany przez serwis.
type RegistryRepository interface {
	InsertRequest(ctx context.Context, params InsertRequestParams) (*Request, error)
	GetRequest(ctx context.Context, id int64) (*Request, error)
	ListRequests(ctx context.Context, limit int) ([]Request, error)
	DeleteRequest(ctx context.Context, id int64) error
	InsertWorkDay(ctx context.Context, date time.Time, isOpen bool, notes string) (*WorkDay, error)
	ListWorkDays(ctx context.Context, limit int) ([]WorkDay, error)
}

// Service zawiera reguły administracji wnioskami i dniami pracy.
type Service struct {
	repo RegistryRepository
}

// NewService tworzy serwis rejestru.
func NewService(repo RegistryRepository) *Service {
	return &Service{repo: repo}
}

// CreateRequest waliduje dane i zapisuje wniosek. Plan musi być dodatni;
// podany podział na kategorie zastępuje plan swoją sumą, gdy planu nie
// podano wprost. Zgodność sumy kategorii z planem nie jest wymuszana.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*Request, error) {
	applicant := strings.TrimSpace(input.ApplicantName)
	if len([]rune(applicant)) < 2 {
		return nil, fmt.Errorf("%w: wnioskodawca musi mieć co najmniej 2 znaki", ErrValidation)
	}

	month := strings.TrimSpace(input.Month)
	if err := util.ValidateMonth(month); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	breakdown := PlanBreakdown{Small: input.PlanSmall, Large: input.PlanLarge, Coupled: input.PlanCoupled}
	for _, v := range []*int{input.PlanSmall, input.PlanLarge, input.PlanCoupled} {
		if v != nil && *v < 0 {
			return nil, fmt.Errorf("%w: kategorie planu nie mogą być ujemne", ErrValidation)
		}
	}

	planned := 0
	switch {
	case input.PlannedCount != nil:
		planned = *input.PlannedCount
	case breakdown.Any():
		planned = breakdown.Sum()
	}
	if planned <= 0 {
		return nil, fmt.Errorf("%w: planowana liczba sztuk musi być dodatnia", ErrValidation)
	}

	var submittedOn *time.Time
	submittedStr := strings.TrimSpace(input.SubmittedOn)
	if submittedStr != "" {
		if err := util.ValidateDate(submittedStr); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		parsed, _ := time.Parse("2006-01-02", submittedStr)
		submittedOn = &parsed
	}

	var requestNumber *string
	if number := strings.TrimSpace(input.RequestNumber); number != "" {
		requestNumber = &number
	}

	params := InsertRequestParams{
		ApplicantName: applicant,
		Month:         month,
		PlannedCount:  planned,
		Notes:         ComposeNotes(input.RequestNumber, submittedStr, breakdown, input.Notes),
		RequestNumber: requestNumber,
		SubmittedOn:   submittedOn,
		PlanSmall:     breakdown.Small,
		PlanLarge:     breakdown.Large,
		PlanCoupled:   breakdown.Coupled,
	}

	return s.repo.InsertRequest(ctx, params)
}

// GetRequest zwraca wniosek po identyfikatorze.
func (s *Service) GetRequest(ctx context.Context, id int64) (*Request, error) {
	if id <= 0 {
		return nil, ErrBadID
	}
	return s.repo.GetRequest(ctx, id)
}

// ListRequests zwraca wnioski od najnowszego.
func (s *Service) ListRequests(ctx context.Context, limit int) ([]Request, error) {
	return s.repo.ListRequests(ctx, limit)
}

// DeleteRequest usuwa wniosek wyłącznie po jawnym potwierdzeniu.
// Wniosek z wpisami pozostaje nietknięty (ErrHasEntries z repozytorium).
func (s *Service) DeleteRequest(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmRequired
	}
	if id <= 0 {
		return ErrBadID
	}
	return s.repo.DeleteRequest(ctx, id)
}

// CreateWorkDay waliduje datę i zapisuje dzień pracy (domyślnie otwarty).
func (s *Service) CreateWorkDay(ctx context.Context, input CreateWorkDayInput) (*WorkDay, error) {
	dateStr := strings.TrimSpace(input.Date)
	if err := util.ValidateDate(dateStr); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	date, _ := time.Parse("2006-01-02", dateStr)

	isOpen := true
	if input.IsOpen != nil {
		isOpen = *input.IsOpen
	}

	return s.repo.InsertWorkDay(ctx, date, isOpen, input.Notes)
}

// ListWorkDays zwraca dni pracy od najnowszego.
func (s *Service) ListWorkDays(ctx context.Context, limit int) ([]WorkDay, error) {
	return s.repo.ListWorkDays(ctx, limit)
}
