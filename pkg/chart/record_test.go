package chart_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
)

func TestRecord_Number(t *testing.T) {
	t.Parallel()

	rec := chart.Record{
		"f":      2.5,
		"i":      7,
		"i64":    int64(-3),
		"json":   json.Number("42"),
		"str":    " 1.25 ",
		"bad":    "n/a",
		"nil":    nil,
		"nan":    math.NaN(),
		"inf":    math.Inf(1),
		"bool":   true,
		"uint32": uint32(9),
	}

	for field, want := range map[string]float64{"f": 2.5, "i": 7, "i64": -3, "json": 42, "str": 1.25, "uint32": 9} {
		v, ok := rec.Number(field)
		assert.True(t, ok, field)
		assert.InDelta(t, want, v, 0, field)
	}

	for _, field := range []string{"bad", "nil", "nan", "inf", "bool", "missing"} {
		_, ok := rec.Number(field)
		assert.False(t, ok, field)
	}
}

func TestRecord_Label(t *testing.T) {
	t.Parallel()

	rec := chart.Record{"s": "Jan 23", "f": 1.5, "i": 2024, "nil": nil}

	assert.Equal(t, "Jan 23", rec.Label("s"))
	assert.Equal(t, "1.5", rec.Label("f"))
	assert.Equal(t, "2024", rec.Label("i"))
	assert.Empty(t, rec.Label("nil"))
	assert.Empty(t, rec.Label("missing"))
}

func TestValuesAndLabels(t *testing.T) {
	t.Parallel()

	data := []chart.Record{
		{"d": "a", "v": 1},
		{"d": "b"},
		{"d": "c", "v": 3},
	}

	values := chart.Values(data, "v")
	assert.Len(t, values, 3)
	assert.InDelta(t, 1, *values[0], 0)
	assert.Nil(t, values[1])
	assert.InDelta(t, 3, *values[2], 0)

	assert.Equal(t, []string{"a", "b", "c"}, chart.Labels(data, "d"))
}
