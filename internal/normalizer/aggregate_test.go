package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_ActiveAndLeadTime(t *testing.T) {
	payload := decodeJSON(t, `[
		{"active": true, "shipping": {"lead_time_days": 10}},
		{"active": false, "lead_time_days": 20}
	]`)

	agg := Aggregate(payload)

	assert.Equal(t, ptr(1), agg.ActiveProductsCount)
	assert.Equal(t, ptr(15), agg.LeadTimeDays)
	assert.Nil(t, agg.LastProductAddedAt)
}

func TestAggregate_EmptyPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty list", `[]`},
		{"empty object", `{}`},
		{"products not a list", `{"products": "none"}`},
		{"scalar", `"products"`},
		{"null", `null`},
		{"only malformed entries", `[1, "two", null, [3]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(decodeJSON(t, tt.payload))

			assert.True(t, agg.IsEmpty())
			assert.Nil(t, agg.ActiveProductsCount)
			assert.Nil(t, agg.LeadTimeDays)
			assert.Nil(t, agg.LastProductAddedAt)
		})
	}
}

func TestAggregate_PayloadShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare list", `[{}, {}]`, 2},
		{"products key", `{"products": [{}, {}, {}]}`, 3},
		{"data key", `{"data": [{}]}`, 1},
		{"products preferred over data", `{"products": [{}], "data": [{}, {}]}`, 1},
		{"data used when products is not a list", `{"products": {"a": 1}, "data": [{}, {}]}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(decodeJSON(t, tt.payload))
			assert.Equal(t, ptr(tt.want), agg.ActiveProductsCount)
		})
	}
}

func TestAggregate_DefaultActive(t *testing.T) {
	payload := decodeJSON(t, `[
		{},
		{"active": true},
		{"active": false},
		{"active": null},
		{"active": "yes"},
		{"active": 1},
		{"active": {"state": "on"}},
		"skipped"
	]`)

	agg := Aggregate(payload)

	assert.Equal(t, ptr(2), agg.ActiveProductsCount)
}

func TestAggregate_LeadTime(t *testing.T) {
	tests := []struct {
		want    *int
		name    string
		payload string
	}{
		{name: "rounds half to even down", payload: `[{"lead_time_days": 10}, {"lead_time_days": 11}]`, want: ptr(10)},
		{name: "rounds half to even up", payload: `[{"lead_time_days": 11}, {"lead_time_days": 12}]`, want: ptr(12)},
		{name: "shipping preferred", payload: `[{"shipping": {"lead_time_days": 3}, "lead_time_days": 9}]`, want: ptr(3)},
		{name: "null shipping falls back", payload: `[{"shipping": {"lead_time_days": null}, "lead_time_days": 9}]`, want: ptr(9)},
		{name: "string values", payload: `[{"lead_time_days": "4"}, {"lead_time_days": "abc"}]`, want: ptr(4)},
		{name: "nobody declares", payload: `[{"active": true}, {"shipping": {}}]`, want: nil},
		{name: "large values average exactly", payload: `[{"lead_time_days": 4503599627370496}, {"lead_time_days": 4503599627370498}]`, want: ptr(4503599627370497)},
		{name: "max int average out of range", payload: `[{"lead_time_days": 9223372036854775807}]`, want: nil},
		{name: "max int sum does not wrap", payload: `[{"lead_time_days": 9223372036854775807}, {"lead_time_days": 9223372036854775807}]`, want: nil},
		{name: "huge exponent skipped", payload: `[{"lead_time_days": 1e19}, {"lead_time_days": 8}]`, want: ptr(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(decodeJSON(t, tt.payload))
			assert.Equal(t, tt.want, agg.LeadTimeDays)
		})
	}
}

func TestAggregate_LastProductAddedAt(t *testing.T) {
	payload := decodeJSON(t, `{"products": [
		{"created_at": "2024-01-01T00:00:00Z"},
		{"created_at": "2024-05-01T00:00:00Z"},
		{"created_at": ""},
		{"created_at": 20250101},
		{"created_at": null},
		{}
	]}`)

	agg := Aggregate(payload)

	assert.Equal(t, ptr("2024-05-01T00:00:00Z"), agg.LastProductAddedAt)
}
