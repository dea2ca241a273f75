package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for any metric selector outside the four known kinds.
var ErrUnknownKind = errors.New("unknown metric kind")

// Kind is one of the four tracked metrics.
type Kind int

const (
	Energy Kind = iota + 1
	Water
	Waste
	Greenery
)

// Kinds lists every metric kind in display order.
var Kinds = []Kind{Energy, Water, Waste, Greenery}

// ParseKind resolves a request selector to a Kind. Anything else is rejected
// before a query is built.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "energy":
		return Energy, nil
	case "water":
		return Water, nil
	case "waste":
		return Waste, nil
	case "greenery":
		return Greenery, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// String returns the selector name of the kind.
func (k Kind) String() string {
	switch k {
	case Energy:
		return "energy"
	case Water:
		return "water"
	case Waste:
		return "waste"
	case Greenery:
		return "greenery"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Table returns the fixed table backing the kind.
func (k Kind) Table() string {
	switch k {
	case Energy:
		return "energy_data"
	case Water:
		return "water_data"
	case Waste:
		return "waste_data"
	case Greenery:
		return "greenery_data"
	}
	return ""
}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	return k.Table() != ""
}
