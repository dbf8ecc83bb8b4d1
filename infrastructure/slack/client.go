package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/asbridge/airtable-slack-bridge/domain/message"
	"github.com/asbridge/airtable-slack-bridge/pkg/logger"
)

var (
	slackPostOK  = metrics.NewCounter(`slack_api_calls_total{operation="post_message",status="ok"}`)
	slackPostErr = metrics.NewCounter(`slack_api_calls_total{operation="post_message",status="error"}`)
	slackPostDur = metrics.NewHistogram(`slack_api_duration_seconds{operation="post_message"}`)

	slackUpdateOK  = metrics.NewCounter(`slack_api_calls_total{operation="update_message",status="ok"}`)
	slackUpdateErr = metrics.NewCounter(`slack_api_calls_total{operation="update_message",status="error"}`)
	slackUpdateDur = metrics.NewHistogram(`slack_api_duration_seconds{operation="update_message"}`)

	slackPingOK  = metrics.NewCounter(`slack_api_calls_total{operation="auth_test",status="ok"}`)
	slackPingErr = metrics.NewCounter(`slack_api_calls_total{operation="auth_test",status="error"}`)
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

type wireText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wireElement struct {
	Type     string   `json:"type"`
	ActionID string   `json:"action_id"`
	Text     wireText `json:"text"`
	Value    string   `json:"value"`
	Style    string   `json:"style,omitempty"`
}

type wireBlock struct {
	Type     string        `json:"type"`
	Text     *wireText     `json:"text,omitempty"`
	Elements []wireElement `json:"elements,omitempty"`
}

type wireMetadata struct {
	EventType    string              `json:"event_type"`
	EventPayload message.ReceiptList `json:"event_payload"`
}

type postMessageRequest struct {
	Channel  string        `json:"channel"`
	Text     string        `json:"text"`
	Blocks   []wireBlock   `json:"blocks,omitempty"`
	Metadata *wireMetadata `json:"metadata,omitempty"`
}

type updateMessageRequest struct {
	Channel  string        `json:"channel"`
	TS       string        `json:"ts"`
	Text     string        `json:"text"`
	Blocks   []wireBlock   `json:"blocks"`
	Metadata *wireMetadata `json:"metadata,omitempty"`
}

type apiResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

func toWireBlocks(m message.Rendered) []wireBlock {
	blocks := make([]wireBlock, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		switch b.Type {
		case message.BlockTypeActions:
			elements := make([]wireElement, 0, len(b.Controls))
			for _, ctl := range b.Controls {
				elements = append(elements, wireElement{
					Type:     "button",
					ActionID: string(ctl.ID),
					Text:     wireText{Type: "plain_text", Text: ctl.Label},
					Value:    ctl.Context,
					Style:    ctl.Style,
				})
			}
			blocks = append(blocks, wireBlock{Type: "actions", Elements: elements})
		default:
			blocks = append(blocks, wireBlock{
				Type: "section",
				Text: &wireText{Type: "mrkdwn", Text: b.Text},
			})
		}
	}
	return blocks
}

func receiptsMetadata(receipts *message.ReceiptList) *wireMetadata {
	if receipts == nil {
		return nil
	}
	return &wireMetadata{EventType: message.MetadataEventType, EventPayload: *receipts}
}

func (c *Client) PostMessage(ctx context.Context, channelID string, msg message.Rendered) (message.DeliveryReceipt, error) {
	body := postMessageRequest{
		Channel: channelID,
		Text:    msg.FallbackText,
		Blocks:  toWireBlocks(msg),
	}

	resp, err := c.call(ctx, "chat.postMessage", body, slackPostOK, slackPostErr, slackPostDur)
	if err != nil {
		return message.DeliveryReceipt{}, fmt.Errorf("slack post message: %w", err)
	}
	return message.DeliveryReceipt{ChannelID: resp.Channel, Timestamp: resp.TS}, nil
}

func (c *Client) UpdateMessage(ctx context.Context, receipt message.DeliveryReceipt, msg message.Rendered, receipts *message.ReceiptList) error {
	body := updateMessageRequest{
		Channel:  receipt.ChannelID,
		TS:       receipt.Timestamp,
		Text:     msg.FallbackText,
		Blocks:   toWireBlocks(msg),
		Metadata: receiptsMetadata(receipts),
	}

	if _, err := c.call(ctx, "chat.update", body, slackUpdateOK, slackUpdateErr, slackUpdateDur); err != nil {
		return fmt.Errorf("slack update message: %w", err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.call(ctx, "auth.test", struct{}{}, slackPingOK, slackPingErr, nil); err != nil {
		return fmt.Errorf("slack auth test: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, body any, okCtr, errCtr *metrics.Counter, dur *metrics.Histogram) (*apiResponse, error) {
	start := time.Now()
	reqURL := c.baseURL + "/" + method

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start).Milliseconds()
		c.logger.Error("Slack call failed",
			logger.ExternalFieldsWithError("slack", reqURL, "POST", 0, duration, err.Error()),
		)
		errCtr.Inc()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	duration := time.Since(start).Milliseconds()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Slack call non-200",
			logger.ExternalFieldsWithError("slack", reqURL, "POST", resp.StatusCode, duration, string(respBody)),
		)
		errCtr.Inc()
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, respBody)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		errCtr.Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Slack reports application errors with HTTP 200 and ok=false.
	if !result.OK {
		c.logger.Error("Slack call rejected",
			logger.ExternalFieldsWithError("slack", reqURL, "POST", resp.StatusCode, duration, result.Error),
		)
		errCtr.Inc()
		return nil, fmt.Errorf("api error: %s", result.Error)
	}

	c.logger.Debug("Slack call completed",
		logger.ExternalFields("slack", reqURL, "POST", resp.StatusCode, duration),
	)
	okCtr.Inc()
	if dur != nil {
		dur.Update(float64(duration) / 1000)
	}

	return &result, nil
}
