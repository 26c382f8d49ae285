package registry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PlanBreakdown to opcjonalny podział planu na kategorie wodomierzy.
// Pole nil oznacza wartość nieznaną, nie zero.
type PlanBreakdown struct {
	Small   *int `json:"small,omitempty"`
	Large   *int `json:"large,omitempty"`
	Coupled *int `json:"coupled,omitempty"`
}

// Any zwraca true, gdy znana jest choć jedna kategoria.
func (b PlanBreakdown) Any() bool {
	return b.Small != nil || b.Large != nil || b.Coupled != nil
}

// Sum sumuje znane kategorie.
func (b PlanBreakdown) Sum() int {
	sum := 0
	for _, v := range []*int{b.Small, b.Large, b.Coupled} {
		if v != nil {
			sum += *v
		}
	}
	return sum
}

// Dwa historyczne zapisy podziału planu w polu notes:
// długi: "Małe: 320; Duże: 18; Sprzężone: 2",
// krótki: "Qn<15:320, Qn>15:18, sprzężone:2".
// Etykieta "sprzężone" jest identyczna w obu zapisach.
var (
	longSmallPattern  = regexp.MustCompile(`(?i)małe\s*:\s*(\d+)`)
	longLargePattern  = regexp.MustCompile(`(?i)duże\s*:\s*(\d+)`)
	coupledPattern    = regexp.MustCompile(`(?i)sprzężone\s*:\s*(\d+)`)
	shortSmallPattern = regexp.MustCompile(`(?i)qn\s*[<≤]\s*15[^:]*:\s*(\d+)`)
	shortLargePattern = regexp.MustCompile(`(?i)qn\s*>\s*15[^:]*:\s*(\d+)`)
)

// ParsePlanBreakdown odzyskuje podział planu z tekstu uwag. Najpierw próbuje
// zapisu długiego; zapis krótki wchodzi tylko, gdy długi nie wystąpił.
// Parsowanie jest heurystyczne — wynik służy wzbogaceniu widoku, nie jest
// danymi rozliczeniowymi.
func ParsePlanBreakdown(notes string) PlanBreakdown {
	if strings.TrimSpace(notes) == "" {
		return PlanBreakdown{}
	}

	small := matchInt(longSmallPattern, notes)
	large := matchInt(longLargePattern, notes)
	coupled := matchInt(coupledPattern, notes)

	// Zapis długi uznajemy za obecny po etykietach Małe/Duże; sama etykieta
	// sprzężone nie rozstrzyga, bo występuje też w zapisie krótkim.
	if small != nil || large != nil {
		return PlanBreakdown{Small: small, Large: large, Coupled: coupled}
	}

	return PlanBreakdown{
		Small:   matchInt(shortSmallPattern, notes),
		Large:   matchInt(shortLargePattern, notes),
		Coupled: coupled,
	}
}

// ComposeNotes skleja otagowane fragmenty w ustalonej kolejności:
// numer wniosku, data złożenia, podział planu, tekst wolny. Puste fragmenty
// są pomijane, separator to "; ".
func ComposeNotes(requestNumber, submittedOn string, breakdown PlanBreakdown, freeText string) string {
	var fragments []string

	if number := strings.TrimSpace(requestNumber); number != "" {
		fragments = append(fragments, "Nr wniosku: "+number)
	}
	if submitted := strings.TrimSpace(submittedOn); submitted != "" {
		fragments = append(fragments, "Złożono: "+submitted)
	}
	if fragment := composeBreakdown(breakdown); fragment != "" {
		fragments = append(fragments, fragment)
	}
	if text := strings.TrimSpace(freeText); text != "" {
		fragments = append(fragments, text)
	}

	return strings.Join(fragments, "; ")
}

func composeBreakdown(breakdown PlanBreakdown) string {
	var parts []string
	if breakdown.Small != nil {
		parts = append(parts, fmt.Sprintf("Qn<15:%d", *breakdown.Small))
	}
	if breakdown.Large != nil {
		parts = append(parts, fmt.Sprintf("Qn>15:%d", *breakdown.Large))
	}
	if breakdown.Coupled != nil {
		parts = append(parts, fmt.Sprintf("sprzężone:%d", *breakdown.Coupled))
	}
	return strings.Join(parts, ", ")
}

func matchInt(pattern *regexp.Regexp, text string) *int {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &value
}
