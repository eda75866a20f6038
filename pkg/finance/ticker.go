package finance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/tickertape/pkg/domain"
)

// MaxTickerLength bounds ticker arguments; real symbols are far shorter.
const MaxTickerLength = 32

var (
	ErrEmptyTicker    = errors.New("ticker is empty")
	ErrTickerTooLong  = errors.New("ticker exceeds maximum length")
	ErrTickerBadChars = errors.New("ticker contains invalid characters")
)

// NormalizeTicker trims and upper-cases a ticker and checks its alphabet:
// letters, digits and the punctuation used by exchanges and indices (. ^ = -).
// Errors wrap domain.ErrInvalidArguments.
func NormalizeTicker(input string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(input))

	if t == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArguments, ErrEmptyTicker)
	}
	// We explicitly reject rather than truncate so a typo never hits another symbol.
	if len(t) > MaxTickerLength {
		return "", fmt.Errorf("%w: %w: size=%d limit=%d", domain.ErrInvalidArguments, ErrTickerTooLong, len(t), MaxTickerLength)
	}
	for _, r := range t {
		if !isTickerRune(r) {
			return "", fmt.Errorf("%w: %w: %q", domain.ErrInvalidArguments, ErrTickerBadChars, input)
		}
	}
	return t, nil
}

func isTickerRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '^', r == '=', r == '-':
		return true
	default:
		return false
	}
}
