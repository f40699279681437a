// Package util holds small numeric and error helpers shared by the geo
// and decoding packages. Adapted from the teacher's pkg/util/util.go: the
// HTTP-facing sentinel errors and CRP-specific helpers (context-cancellation
// polling, string parsing, assertions) were dropped since nothing in this
// module's scope calls them; see DESIGN.md.
package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error wraps an underlying error with a formatted message and an
// optional sentinel code, so callers can both read a human message and
// errors.Is/errors.As against the code.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

// Is reports whether target is this error's code, so errors.Is(err,
// someSentinel) classifies an Error by its code without callers having
// to know about Code().
func (e *Error) Is(target error) bool {
	return e.code != nil && errors.Is(e.code, target)
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func CountDecimalPlacesF64(value float64) int {
	strValue := strconv.FormatFloat(value, 'f', -1, 64)

	parts := strings.Split(strValue, ".")
	if len(parts) < 2 {
		return 0
	}
	return len(parts[1])
}

func MinFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func MaxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func ClampFloat(v, lo, hi float64) float64 {
	return MaxFloat(lo, MinFloat(hi, v))
}
