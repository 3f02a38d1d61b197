package habit

import (
	"errors"
	"strings"
)

var ErrInvalidType = errors.New("invalid habit type")

type HabitType string

const (
	HabitTypeBinary       HabitType = "BINARY"
	HabitTypeQuantitative HabitType = "QUANTITATIVE"
)

func (t HabitType) IsValid() bool {
	switch t {
	case HabitTypeBinary, HabitTypeQuantitative:
		return true
	}
	return false
}

// ParseHabitType maps "" to BINARY and is case-insensitive.
func ParseHabitType(s string) (HabitType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return HabitTypeBinary, nil
	}
	t := HabitType(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
