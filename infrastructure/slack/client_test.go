package slack

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

	"github.com/asbridge/airtable-slack-bridge/domain/message"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleRendered() message.Rendered {
	return message.Rendered{
		FallbackText: "Hi Acme",
		Blocks: []message.Block{
			message.TextBlock("Hi Acme"),
			message.ActionBlock(message.Control{
				ID:      message.ControlPrimary,
				Label:   "Approve",
				Style:   message.StylePrimary,
				Context: `{"v":1}`,
			}),
		},
	}
}

func TestPostMessageSuccess(t *testing.T) {
	var capturedRequest postMessageRequest
	var capturedToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		authHeader := r.Header.Get("Authorization")
		require.NotEmpty(t, authHeader)
		assert.Contains(t, authHeader, "Bearer ")
		capturedToken = authHeader[len("Bearer "):]

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		err = json.Unmarshal(body, &capturedRequest)
		require.NoError(t, err)

		_ = json.NewEncoder(w).Encode(apiResponse{OK: true, Channel: "C1", TS: "1714.42"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-test", testLogger())

	receipt, err := client.PostMessage(context.Background(), "C1", sampleRendered())
	require.NoError(t, err)
	assert.Equal(t, message.DeliveryReceipt{ChannelID: "C1", Timestamp: "1714.42"}, receipt)

	assert.Equal(t, "xoxb-test", capturedToken)
	assert.Equal(t, "C1", capturedRequest.Channel)
	assert.Equal(t, "Hi Acme", capturedRequest.Text)
	require.Len(t, capturedRequest.Blocks, 2)

	section := capturedRequest.Blocks[0]
	assert.Equal(t, "section", section.Type)
	require.NotNil(t, section.Text)
	assert.Equal(t, "mrkdwn", section.Text.Type)
	assert.Equal(t, "Hi Acme", section.Text.Text)

	actions := capturedRequest.Blocks[1]
	assert.Equal(t, "actions", actions.Type)
	require.Len(t, actions.Elements, 1)
	el := actions.Elements[0]
	assert.Equal(t, "button", el.Type)
	assert.Equal(t, "primary", el.ActionID)
	assert.Equal(t, "plain_text", el.Text.Type)
	assert.Equal(t, "Approve", el.Text.Text)
	assert.Equal(t, `{"v":1}`, el.Value)
	assert.Equal(t, "primary", el.Style)
	assert.Nil(t, capturedRequest.Metadata)
}

func TestPostMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiResponse{OK: false, Error: "channel_not_found"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-test", testLogger())

	_, err := client.PostMessage(context.Background(), "C404", sampleRendered())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestPostMessageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-test", testLogger())

	_, err := client.PostMessage(context.Background(), "C1", sampleRendered())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestPostMessageNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "xoxb-test", testLogger())

	_, err := client.PostMessage(context.Background(), "C1", sampleRendered())
	assert.Error(t, err)
}

func TestUpdateMessageWithReceipts(t *testing.T) {
	var capturedRequest updateMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.update", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		err = json.Unmarshal(body, &capturedRequest)
		require.NoError(t, err)

		_ = json.NewEncoder(w).Encode(apiResponse{OK: true, Channel: "C1", TS: "1714.42"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-test", testLogger())

	receipts := &message.ReceiptList{Receipts: []message.DeliveryReceipt{
		{ChannelID: "C1", Timestamp: "1714.42"},
		{ChannelID: "C2", Timestamp: "1714.43"},
	}}

	err := client.UpdateMessage(context.Background(),
		message.DeliveryReceipt{ChannelID: "C1", Timestamp: "1714.42"},
		sampleRendered(), receipts)
	require.NoError(t, err)

	assert.Equal(t, "C1", capturedRequest.Channel)
	assert.Equal(t, "1714.42", capturedRequest.TS)
	require.NotNil(t, capturedRequest.Metadata)
	assert.Equal(t, message.MetadataEventType, capturedRequest.Metadata.EventType)
	assert.Len(t, capturedRequest.Metadata.EventPayload.Receipts, 2)
}

func TestUpdateMessageWithoutReceipts(t *testing.T) {
	var capturedRequest updateMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &capturedRequest))
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-test", testLogger())

	err := client.UpdateMessage(context.Background(),
		message.DeliveryReceipt{ChannelID: "C1", Timestamp: "1714.42"},
		sampleRendered(), nil)
	require.NoError(t, err)
	assert.Nil(t, capturedRequest.Metadata)
}

func TestPingSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth.test", r.URL.Path)
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-test", testLogger())
	assert.NoError(t, client.Ping(context.Background()))
}

func TestPingInvalidAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(apiResponse{OK: false, Error: "invalid_auth"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "xoxb-bad", testLogger())
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_auth")
}
