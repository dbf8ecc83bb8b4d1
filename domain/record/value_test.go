package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantStr  string
	}{
		{
			name:     "string",
			input:    `"Acme"`,
			wantKind: KindString,
			wantStr:  "Acme",
		},
		{
			name:     "integer number",
			input:    `42`,
			wantKind: KindNumber,
			wantStr:  "42",
		},
		{
			name:     "fractional number",
			input:    `3.5`,
			wantKind: KindNumber,
			wantStr:  "3.5",
		},
		{
			name:     "boolean true",
			input:    `true`,
			wantKind: KindBool,
			wantStr:  "true",
		},
		{
			name:     "boolean false",
			input:    `false`,
			wantKind: KindBool,
			wantStr:  "false",
		},
		{
			name:     "list of strings",
			input:    `["a","b","c"]`,
			wantKind: KindList,
			wantStr:  "a, b, c",
		},
		{
			name:     "mixed list stringifies elements",
			input:    `["a",2,true]`,
			wantKind: KindList,
			wantStr:  "a, 2, true",
		},
		{
			name:     "null is absent",
			input:    `null`,
			wantKind: KindAbsent,
			wantStr:  "",
		},
		{
			name:     "object kept as raw text",
			input:    `{"url":"https://example.com"}`,
			wantKind: KindString,
			wantStr:  `{"url":"https://example.com"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.wantKind, v.Kind())
			assert.Equal(t, tt.wantStr, v.String())
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "string", value: StringValue("Approved"), want: `"Approved"`},
		{name: "number", value: NumberValue(7), want: `7`},
		{name: "bool", value: BoolValue(true), want: `true`},
		{name: "list", value: ListValue([]string{"x", "y"}), want: `["x","y"]`},
		{name: "absent", value: Value{}, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestValue_RoundTrip(t *testing.T) {
	original := ListValue([]string{"one", "two"})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Value
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, original, restored)
}

func TestFields_Get(t *testing.T) {
	fields := Fields{"Name": StringValue("Acme")}

	assert.Equal(t, "Acme", fields.Get("Name").String())
	assert.True(t, fields.Get("Ghost").Absent())
	assert.True(t, Fields(nil).Get("Name").Absent())
}

func TestValue_NumberFormatting(t *testing.T) {
	// Minimal decimal form: no exponent, no trailing zeros.
	assert.Equal(t, "1000000", NumberValue(1e6).String())
	assert.Equal(t, "0.25", NumberValue(0.25).String())
	assert.Equal(t, "-3", NumberValue(-3).String())
}
