// Package dates normalizes heterogeneous human-written date strings into
// canonical "YYYY-MM" tokens. LLM output mixes locales and separators, so the
// parser tries several layered patterns before giving up.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mfcarvalho/cv-generator/internal/sanitize"
)

// Ongoing is the canonical sentinel for a still-active end date. Inputs such
// as "Atual", "Present", "current" and "now" all normalize to this token.
const Ongoing = "ongoing"

// InvalidDateError reports a value that matched no recognized date pattern.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %q", e.Value)
}

var ongoingWords = map[string]struct{}{
	"atual":   {},
	"current": {},
	"present": {},
	"ongoing": {},
	"now":     {},
}

var (
	yearMonthPattern = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})$`)
	monthYearPattern = regexp.MustCompile(`^(\d{1,2})[-/.](\d{4})$`)
	// The optional "de" connector covers Portuguese forms like "julho de 2021".
	nameYearPattern = regexp.MustCompile(`^([a-zçé.]+)(?:\s+de)?[\s\-/,.]*(\d{4})$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

// Month names in English and Portuguese, full and abbreviated.
var monthAliases = map[string]int{
	"january": 1, "jan": 1, "janeiro": 1,
	"february": 2, "feb": 2, "fev": 2, "fevereiro": 2,
	"march": 3, "mar": 3, "março": 3, "marco": 3,
	"april": 4, "apr": 4, "abril": 4, "abr": 4,
	"may": 5, "maio": 5, "mai": 5,
	"june": 6, "jun": 6, "junho": 6,
	"july": 7, "jul": 7, "julho": 7,
	"august": 8, "aug": 8, "agosto": 8, "ago": 8,
	"september": 9, "sep": 9, "sept": 9, "setembro": 9, "set": 9,
	"october": 10, "oct": 10, "outubro": 10, "out": 10,
	"november": 11, "nov": 11, "novembro": 11,
	"december": 12, "dec": 12, "dezembro": 12, "dez": 12,
}

// Normalize parses raw into "YYYY-MM" or, when allowOngoing is set, the
// Ongoing sentinel. Recognition order: sentinel words, YYYY-MM, MM-YYYY,
// month-name + year, bare year (month defaults to 01). Months outside 1-12
// fall through to the next pattern and ultimately to an InvalidDateError.
func Normalize(raw string, allowOngoing bool) (string, error) {
	value := sanitize.Clean(raw, sanitize.MaxDateToken)
	if value == "" {
		return "", &InvalidDateError{Value: raw}
	}

	lowered := strings.ToLower(value)
	if allowOngoing {
		if _, ok := ongoingWords[lowered]; ok {
			return Ongoing, nil
		}
	}

	if m := yearMonthPattern.FindStringSubmatch(value); m != nil {
		if month, ok := monthNumber(m[2]); ok {
			return fmt.Sprintf("%s-%02d", m[1], month), nil
		}
	}

	if m := monthYearPattern.FindStringSubmatch(value); m != nil {
		if month, ok := monthNumber(m[1]); ok {
			return fmt.Sprintf("%s-%02d", m[2], month), nil
		}
	}

	if m := nameYearPattern.FindStringSubmatch(lowered); m != nil {
		if month, ok := monthAliases[strings.Trim(m[1], ". ")]; ok {
			return fmt.Sprintf("%s-%02d", m[2], month), nil
		}
	}

	if yearPattern.MatchString(value) {
		return value + "-01", nil
	}

	return "", &InvalidDateError{Value: raw}
}

func monthNumber(s string) (int, bool) {
	month, err := strconv.Atoi(s)
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}
