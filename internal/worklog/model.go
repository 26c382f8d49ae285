package worklog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Entry to pojedynczy, niezmienialny zapis wykonanej pracy: inspektor
// raportuje liczbę sztuk per kategoria przeciwko wnioskowi i dniowi pracy.
type Entry struct {
	ID           int64     `json:"id"`
	RequestID    int64     `json:"request_id"`
	WorkDayID    int64     `json:"work_day_id"`
	InspectorID  int64     `json:"inspector_id"`
	CountSmall   int       `json:"count_small"`
	CountLarge   int       `json:"count_large"`
	CountCoupled int       `json:"count_coupled"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentEntry to wpis wzbogacony o nazwę inspektora i sumę kategorii.
type RecentEntry struct {
	Entry
	InspectorName string `json:"inspector_name"`
	Total         int    `json:"total"`
}

// Totals agreguje sumy kategorii dla wniosku.
type Totals struct {
	Small   int `json:"small"`
	Large   int `json:"large"`
	Coupled int `json:"coupled"`
	Total   int `json:"total"`
}

// InspectorTotals to sumy per inspektor w obrębie jednego wniosku.
type InspectorTotals struct {
	InspectorID   int64  `json:"inspector_id"`
	InspectorName string `json:"inspector_name"`
	Totals
}

// FlexCount przyjmuje liczbę sztuk z formularza: liczbę JSON albo łańcuch
// z białymi znakami i przecinkiem jako separatorem dziesiętnym.
// Wartości ułamkowe są obcinane w dół.
type FlexCount int

// UnmarshalJSON implementuje elastyczne dekodowanie liczby sztuk.
func (c *FlexCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = str
	}

	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		*c = 0
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		*c = 0
		return nil
	}

	*c = FlexCount(math.Floor(value))
	return nil
}

// CreateEntryInput to dane formularza wpisu. Można podać jedną kategorię
// z liczbą albo trzy liczniki wprost.
type CreateEntryInput struct {
	RequestID    int64     `json:"request_id"`
	WorkDayID    int64     `json:"work_day_id"`
	Category     string    `json:"category,omitempty"`
	Count        FlexCount `json:"count,omitempty"`
	CountSmall   FlexCount `json:"count_small,omitempty"`
	CountLarge   FlexCount `json:"count_large,omitempty"`
	CountCoupled FlexCount `json:"count_coupled,omitempty"`
}
