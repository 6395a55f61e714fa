package models

import (
	"fmt"
	"strings"
)

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// ParseCabinClass accepts any casing, e.g. "BUSINESS" from a live provider.
func ParseCabinClass(s string) (CabinClass, error) {
	switch c := CabinClass(strings.ToLower(strings.TrimSpace(s))); c {
	case CabinEconomy, CabinBusiness, CabinFirst:
		return c, nil
	default:
		return "", fmt.Errorf("unknown cabin class %q", s)
	}
}
