package schema

import (
	"math"
	"strconv"
)

// Float is a float64 that serializes NaN as JSON null.
// Undefined statistics (too few observations, zero variance) are NaN
// in memory and null on the wire, never 0.
type Float float64

// IsDefined reports whether the value holds a real number.
func (f Float) IsDefined() bool { return !math.IsNaN(float64(f)) }

// MarshalJSON encodes NaN as null and everything else as a plain number.
func (f Float) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(f), 'g', -1, 64), nil
}

// UnmarshalJSON decodes null back to NaN.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
