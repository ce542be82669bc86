package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Position is a 1-based place in a race (finishing or starting spot).
// The zero value is the DNQ sentinel and serializes as the literal "DNQ"
// so persisted race documents keep the historical wire format.
type Position int

const DNQ Position = 0

func (p Position) IsDNQ() bool { return p == DNQ }

func (p Position) String() string {
	if p.IsDNQ() {
		return "DNQ"
	}
	return strconv.Itoa(int(p))
}

// ParsePosition accepts a numeric place or the literal "DNQ".
func ParsePosition(arg string) (Position, error) {
	if arg == "DNQ" {
		return DNQ, nil
	}
	val, err := strconv.Atoi(arg)
	if err != nil || val < 1 {
		return DNQ, fmt.Errorf("invalid position %q", arg)
	}
	return Position(val), nil
}

func (p Position) MarshalJSON() ([]byte, error) {
	if p.IsDNQ() {
		return json.Marshal("DNQ")
	}
	return json.Marshal(int(p))
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case string:
		parsed, err := ParsePosition(val)
		if err != nil {
			return err
		}
		*p = parsed
	case float64:
		*p = Position(int(val))
	case int64:
		*p = Position(int(val))
	default:
		return fmt.Errorf("invalid position value %v (%T)", raw, raw)
	}
	return nil
}
