package util

import "testing"

func TestValidateMonth(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-06"}
	for _, m := range valid {
		if err := ValidateMonth(m); err != nil {
			t.Errorf("ValidateMonth(%q) = %v, oczekiwano nil", m, err)
		}
	}

	invalid := []string{"2025-13", "2025-00", "2025-1", "25-01", "2025/01", "", "styczeń"}
	for _, m := range invalid {
		if err := ValidateMonth(m); err == nil {
			t.Errorf("ValidateMonth(%q) = nil, oczekiwano błędu", m)
		}
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2025-01-15"); err != nil {
		t.Errorf("poprawna data odrzucona: %v", err)
	}

	invalid := []string{"2025-02-30", "2025-13-01", "15-01-2025", "2025-01", ""}
	for _, d := range invalid {
		if err := ValidateDate(d); err == nil {
			t.Errorf("ValidateDate(%q) = nil, oczekiwano błędu", d)
		}
	}
}
