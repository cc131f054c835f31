// Package chart turns tabular records plus display props into chart view models.
//
// Every view is recomputed from scratch by the compose functions; nothing in this
// package keeps state between calls other than the legend layout a caller chooses
// to carry.
package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one X position: the index field plus one value per category.
type Record map[string]any

// Number returns the numeric value of field. Missing, nil, NaN and
// non-numeric values are gaps and report false.
func (r Record) Number(field string) (float64, bool) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return 0, false
	}

	var v float64

	switch val := raw.(type) {
	case float64:
		v = val
	case float32:
		v = float64(val)
	case int:
		v = float64(val)
	case int32:
		v = float64(val)
	case int64:
		v = float64(val)
	case uint:
		v = float64(val)
	case uint32:
		v = float64(val)
	case uint64:
		v = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}

		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}

		v = f
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// Label returns the value of field formatted for an axis label.
func (r Record) Label(field string) string {
	raw, ok := r[field]
	if !ok || raw == nil {
		return ""
	}

	switch val := raw.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// Values returns the category column across data; gaps are nil.
func Values(data []Record, category string) []*float64 {
	out := make([]*float64, len(data))

	for i, rec := range data {
		if v, ok := rec.Number(category); ok {
			out[i] = &v
		}
	}

	return out
}

// Labels returns the index column across data.
func Labels(data []Record, index string) []string {
	out := make([]string, len(data))

	for i, rec := range data {
		out[i] = rec.Label(index)
	}

	return out
}
