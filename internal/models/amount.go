package models

import (
	"strconv"
	"strings"
)

// Amount is a money or quantity value in minor currency units. Values decoded
// from persisted storage may arrive as numbers, numeric strings or null, so
// decoding coerces instead of failing: anything non-numeric becomes 0.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

func (a Amount) Int64() int64 {
	return int64(a)
}
