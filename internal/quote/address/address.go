// Package address handles the dotted positional strings ("2.3.1") shown next
// to packages and lines. An address is a view of current sort order, never a
// stored identity.
package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacobe603/quote-builder/internal/quote/domain"
)

const separator = "."

// Address holds 1-based ordinals. Zero means the level is absent.
type Address struct {
	Package int
	Primary int
	Sub     int
}

// Depth is the number of levels present.
func (a Address) Depth() int {
	switch {
	case a.Sub > 0:
		return 3
	case a.Primary > 0:
		return 2
	case a.Package > 0:
		return 1
	default:
		return 0
	}
}

func (a Address) HasSub() bool {
	return a.Sub > 0
}

func (a Address) String() string {
	parts := make([]string, 0, 3)
	for _, n := range []int{a.Package, a.Primary, a.Sub} {
		if n <= 0 {
			break
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, separator)
}

// Parse reads "pkg", "pkg.primary" or "pkg.primary.sub". Surrounding
// whitespace is trimmed; every part must be a run of ASCII digits with a
// positive value.
func Parse(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}, fmt.Errorf("empty address: %w", domain.ErrInvalidAddress)
	}

	parts := strings.Split(raw, separator)
	if len(parts) > 3 {
		return Address{}, fmt.Errorf("address %q has %d levels: %w", raw, len(parts), domain.ErrInvalidAddress)
	}

	ordinals := make([]int, 3)
	for i, part := range parts {
		if !digits(part) {
			return Address{}, fmt.Errorf("address %q part %d: %w", raw, i+1, domain.ErrInvalidAddress)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return Address{}, fmt.Errorf("address %q part %d: %w", raw, i+1, domain.ErrInvalidAddress)
		}
		ordinals[i] = n
	}

	return Address{Package: ordinals[0], Primary: ordinals[1], Sub: ordinals[2]}, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseLine is Parse for line moves: the package and primary ordinals are required.
func ParseLine(raw string) (Address, error) {
	addr, err := Parse(raw)
	if err != nil {
		return Address{}, err
	}
	if addr.Primary == 0 {
		return Address{}, fmt.Errorf("address %q has no line ordinal: %w", raw, domain.ErrInvalidAddress)
	}
	return addr, nil
}
