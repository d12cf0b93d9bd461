package processing

import (
	"errors"
	"strings"
)

// ErrNoBrands is returned when a run is requested without any usable brand.
var ErrNoBrands = errors.New("at least one brand is required")

// NormalizeBrands lowercases and trims brand names and drops blanks and
// case-insensitive duplicates, keeping first-seen order.
func NormalizeBrands(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	brands := make([]string, 0, len(raw))

	for _, b := range raw {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}

	if len(brands) == 0 {
		return nil, ErrNoBrands
	}
	return brands, nil
}
