package chart

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCurve is returned for an unrecognized curve interpolation name.
var ErrUnknownCurve = errors.New("unknown curve type")

// CurveType is the interpolation between consecutive points of a series.
type CurveType string

// Supported curve types.
const (
	CurveLinear   CurveType = "linear"
	CurveNatural  CurveType = "natural"
	CurveMonotone CurveType = "monotone"
	CurveStep     CurveType = "step"
)

// ParseCurveType resolves a curve name; empty means linear.
func ParseCurveType(name string) (CurveType, error) {
	switch c := CurveType(strings.ToLower(strings.TrimSpace(name))); c {
	case "":
		return CurveLinear, nil
	case CurveLinear, CurveNatural, CurveMonotone, CurveStep:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
}

// Smooth reports whether the curve is drawn as a spline.
func (c CurveType) Smooth() bool {
	return c == CurveNatural || c == CurveMonotone
}
