package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"lascala/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'.\-]{1,50}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSKU   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,39}$`)
	reSize  = regexp.MustCompile(`^[A-Za-z0-9./ -]{1,12}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 120 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	} // clamp
	return n
}

// ID validates an opaque resource identifier (uuid or seeded slug).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func SKU(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSKU.MatchString(s)
}

// Size validates a size label such as "48", "M" or "10.5".
func Size(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSize.MatchString(s)
}

// Condition accepts one of the four item condition labels.
func Condition(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, domain.ValidCondition(s)
}

// Gender accepts M or W, or empty for "all".
func Gender(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "", "M", "W":
		return s, true
	}
	return "", false
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 40 {
		return "", false
	}
	return s, true
}

// Password enforces the sign-up length window. bcrypt ignores bytes past 72.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}

// Price parses a positive amount with at most two decimals.
func Price(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$")))
	if err != nil || !d.IsPositive() || d.Exponent() < -2 || d.GreaterThan(decimal.NewFromInt(1_000_000)) {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// OptionalPrice treats blank as absent; zero is allowed.
func OptionalPrice(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if d, err := decimal.NewFromString(s); err == nil && d.IsZero() {
		zero := 0.0
		return &zero, true
	}
	f, ok := Price(s)
	if !ok {
		return nil, false
	}
	return &f, true
}
