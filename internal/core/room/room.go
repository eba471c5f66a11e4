// Package room contains the pure rules for addressing hotel rooms.
// This is part of the Functional Core - no I/O, only pure functions.
package room

import (
	"fmt"
	"strconv"
)

// DefaultAptsPerFloor is the apartment count per floor used by the legacy
// single-number encoding.
const DefaultAptsPerFloor = 18

// Code returns the canonical room code: floor and apartment, each zero-padded
// to two digits. Floor 1, apt 1 is "0101".
func Code(floor, apt int) string {
	return fmt.Sprintf("%02d%02d", floor, apt)
}

// FromLegacy converts a legacy room number (1-based, numbered across floors)
// into floor and apartment. Integer division truncates, matching the values
// written by the v1 -> v2 migration.
func FromLegacy(legacy, aptsPerFloor int) (floor, apt int) {
	floor = ((legacy - 1) / aptsPerFloor) + 1
	apt = ((legacy - 1) % aptsPerFloor) + 1
	return floor, apt
}

// ToLegacy is the inverse of FromLegacy for in-range rooms.
func ToLegacy(floor, apt, aptsPerFloor int) int {
	return (floor-1)*aptsPerFloor + apt
}

// ParseCode splits a four-digit room code back into floor and apartment.
func ParseCode(code string) (floor, apt int, err error) {
	if len(code) != 4 {
		return 0, 0, fmt.Errorf("room code %q must have 4 digits", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return 0, 0, fmt.Errorf("room code %q must have 4 digits", code)
		}
	}
	floor, _ = strconv.Atoi(code[:2])
	apt, _ = strconv.Atoi(code[2:])
	if floor < 1 || apt < 1 {
		return 0, 0, fmt.Errorf("room code %q has a zero floor or apartment", code)
	}
	return floor, apt, nil
}

// Layout describes the hotel's physical shape.
type Layout struct {
	Floors       int
	AptsPerFloor int
}

// Contains reports whether floor and apt address a room inside the layout.
func (l Layout) Contains(floor, apt int) bool {
	return floor >= 1 && floor <= l.Floors && apt >= 1 && apt <= l.AptsPerFloor
}
