package airtable

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asbridge/airtable-slack-bridge/domain/record"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestPatchRecordSuccess(t *testing.T) {
	var capturedPath string
	var capturedBody map[string]map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "Bearer pat-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		capturedPath = r.URL.Path

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &capturedBody))

		_, _ = w.Write([]byte(`{"id":"rec1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "pat-test", testLogger())

	err := client.PatchRecord(context.Background(), "appBase", "tblMain", "rec1", "Status", record.StringValue("Approved"))
	require.NoError(t, err)

	assert.Equal(t, "/appBase/tblMain/rec1", capturedPath)
	require.Contains(t, capturedBody, "fields")
	require.Contains(t, capturedBody["fields"], "Status")
	assert.JSONEq(t, `"Approved"`, string(capturedBody["fields"]["Status"]))
}

func TestPatchRecordValueTypes(t *testing.T) {
	cases := []struct {
		name     string
		value    record.Value
		wantJSON string
	}{
		{"number", record.NumberValue(42), `42`},
		{"bool", record.BoolValue(true), `true`},
		{"list", record.ListValue([]string{"a", "b"}), `["a","b"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var capturedBody map[string]map[string]json.RawMessage
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(body, &capturedBody))
				_, _ = w.Write([]byte(`{"id":"rec1"}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, "pat-test", testLogger())
			err := client.PatchRecord(context.Background(), "appBase", "tblMain", "rec1", "F", tc.value)
			require.NoError(t, err)
			assert.JSONEq(t, tc.wantJSON, string(capturedBody["fields"]["F"]))
		})
	}
}

func TestPatchRecordServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"type":"INVALID_VALUE_FOR_COLUMN"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "pat-test", testLogger())

	err := client.PatchRecord(context.Background(), "appBase", "tblMain", "rec1", "Status", record.StringValue("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

func TestPatchRecordNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "pat-test", testLogger())

	err := client.PatchRecord(context.Background(), "appBase", "tblMain", "rec1", "Status", record.StringValue("x"))
	assert.Error(t, err)
}

func TestPatchRecordMissingIdentity(t *testing.T) {
	client := NewClient("http://example.invalid", "pat-test", testLogger())

	err := client.PatchRecord(context.Background(), "", "tblMain", "rec1", "Status", record.StringValue("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	err = client.PatchRecord(context.Background(), "appBase", "", "rec1", "Status", record.StringValue("x"))
	assert.Error(t, err)
}
