package util

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidateMonth sprawdza format YYYY-MM wraz z zakresem miesiąca.
func ValidateMonth(month string) error {
	month = strings.TrimSpace(month)
	if !monthPattern.MatchString(month) {
		return errors.New("miesiąc musi mieć format RRRR-MM")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return errors.New("miesiąc poza zakresem 01-12")
	}
	return nil
}

// ValidateDate sprawdza format YYYY-MM-DD i poprawność daty kalendarzowej.
func ValidateDate(date string) error {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.New("data musi mieć format RRRR-MM-DD")
	}
	return nil
}
