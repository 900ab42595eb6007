package model

import (
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
)

// Value is an indicator reading that may be undefined, e.g. while a rolling
// window has not yet seen enough bars. The zero Value is undefined.
type Value struct {
	v  float64
	ok bool
}

// Some returns a defined Value. NaN and infinities are treated as undefined.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// None returns an undefined Value.
func None() Value { return Value{} }

// Defined reports whether the value holds a number.
func (x Value) Defined() bool { return x.ok }

// Get returns the number and whether it is defined.
func (x Value) Get() (float64, bool) { return x.v, x.ok }

// Or returns the number, or fallback when undefined.
func (x Value) Or(fallback float64) float64 {
	if !x.ok {
		return fallback
	}
	return x.v
}

// Above reports x > t. Undefined values are never above anything.
func (x Value) Above(t float64) bool { return x.ok && x.v > t }

// Below reports x < t. Undefined values are never below anything.
func (x Value) Below(t float64) bool { return x.ok && x.v < t }

// Between reports lo < x < hi (both bounds strict).
func (x Value) Between(lo, hi float64) bool { return x.ok && x.v > lo && x.v < hi }

// Sub returns x - y, undefined if either side is.
func (x Value) Sub(y Value) Value {
	if !x.ok || !y.ok {
		return Value{}
	}
	return Some(x.v - y.v)
}

// NullFloat64 converts the value for database writes.
func (x Value) NullFloat64() sql.NullFloat64 {
	return sql.NullFloat64{Float64: x.v, Valid: x.ok}
}

func (x Value) String() string {
	if !x.ok {
		return "-"
	}
	return strconv.FormatFloat(x.v, 'f', 2, 64)
}

// MarshalJSON encodes an undefined value as null.
func (x Value) MarshalJSON() ([]byte, error) {
	if !x.ok {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

// UnmarshalJSON accepts a number or null.
func (x *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*x = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*x = Some(f)
	return nil
}

// Values wraps a plain series as all-defined values.
func Values(xs []float64) []Value {
	out := make([]Value, len(xs))
	for i, v := range xs {
		out[i] = Some(v)
	}
	return out
}
