package chart

import (
	"errors"
	"fmt"
)

// Props validation errors.
var (
	ErrEmptyIndex    = errors.New("index field is required")
	ErrMissingIndex  = errors.New("record has no index value")
	ErrInvalidBounds = errors.New("min value is greater than max value")
)

// Validate reports props that would render a misleading chart. ComposeArea
// itself never fails; callers loading props from files validate first.
func (p AreaChartProps) Validate() error {
	if len(p.Data) == 0 {
		return nil
	}

	if p.Index == "" {
		return ErrEmptyIndex
	}

	for i, rec := range p.Data {
		if _, ok := rec[p.Index]; !ok {
			return fmt.Errorf("%w: record %d, field %q", ErrMissingIndex, i, p.Index)
		}
	}

	if p.MinValue != nil && p.MaxValue != nil && *p.MinValue > *p.MaxValue {
		return fmt.Errorf("%w: %v > %v", ErrInvalidBounds, *p.MinValue, *p.MaxValue)
	}

	return nil
}
