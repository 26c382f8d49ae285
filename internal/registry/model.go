package registry

import "time"

// Request reprezentuje wniosek o legalizację (zlecenie pracy na dany miesiąc).
// Kolumny typowane (numer wniosku, data złożenia, plan per kategoria) są
// źródłem prawdy; pole notes przechowuje jedynie złożone podsumowanie
// i zapisy historyczne.
type Request struct {
	ID            int64      `json:"id"`
	ApplicantName string     `json:"applicant_name"`
	Month         string     `json:"month"`
	PlannedCount  int        `json:"planned_count"`
	Notes         string     `json:"notes,omitempty"`
	RequestNumber *string    `json:"request_number,omitempty"`
	SubmittedOn   *time.Time `json:"submitted_on,omitempty"`
	PlanSmall     *int       `json:"plan_small,omitempty"`
	PlanLarge     *int       `json:"plan_large,omitempty"`
	PlanCoupled   *int       `json:"plan_coupled,omitempty"`
}

// Breakdown zwraca plan per kategoria: z kolumn typowanych, a dla zapisów
// historycznych z heurystycznego parsowania pola notes.
func (r Request) Breakdown() PlanBreakdown {
	if r.PlanSmall != nil || r.PlanLarge != nil || r.PlanCoupled != nil {
		return PlanBreakdown{Small: r.PlanSmall, Large: r.PlanLarge, Coupled: r.PlanCoupled}
	}
	return ParsePlanBreakdown(r.Notes)
}

// WorkDay reprezentuje dzień kalendarzowy przeznaczony na prace w terenie.
type WorkDay struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	IsOpen bool      `json:"is_open"`
	Notes  string    `json:"notes,omitempty"`
}

// CreateRequestInput to dane formularza nowego wniosku. Plan można podać
// wprost albo jako podział na kategorie — wtedy planem staje się ich suma.
type CreateRequestInput struct {
	ApplicantName string `json:"applicant_name"`
	Month         string `json:"month"`
	PlannedCount  *int   `json:"planned_count,omitempty"`
	PlanSmall     *int   `json:"plan_small,omitempty"`
	PlanLarge     *int   `json:"plan_large,omitempty"`
	PlanCoupled   *int   `json:"plan_coupled,omitempty"`
	RequestNumber string `json:"request_number,omitempty"`
	SubmittedOn   string `json:"submitted_on,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// CreateWorkDayInput to dane formularza nowego dnia pracy.
type CreateWorkDayInput struct {
	Date   string `json:"date"`
	IsOpen *bool  `json:"is_open,omitempty"`
	Notes  string `json:"notes,omitempty"`
}
