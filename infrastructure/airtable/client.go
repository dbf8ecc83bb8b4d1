package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/asbridge/airtable-slack-bridge/domain/record"
	"github.com/asbridge/airtable-slack-bridge/pkg/logger"
)

var (
	airtablePatchOK  = metrics.NewCounter(`airtable_api_calls_total{operation="patch_record",status="ok"}`)
	airtablePatchErr = metrics.NewCounter(`airtable_api_calls_total{operation="patch_record",status="error"}`)
	airtablePatchDur = metrics.NewHistogram(`airtable_api_duration_seconds{operation="patch_record"}`)
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
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

type patchRecordRequest struct {
	Fields map[string]record.Value `json:"fields"`
}

// PatchRecord sets exactly one field of one record. The bridge never
// batches updates; a click maps to at most one field write.
func (c *Client) PatchRecord(ctx context.Context, baseID, tableID, recordID, field string, value record.Value) error {
	if baseID == "" || tableID == "" {
		return fmt.Errorf("patch record %s: base and table ids are required", recordID)
	}

	start := time.Now()
	reqURL := fmt.Sprintf("%s/%s/%s/%s",
		c.baseURL,
		url.PathEscape(baseID),
		url.PathEscape(tableID),
		url.PathEscape(recordID),
	)

	body := patchRecordRequest{Fields: map[string]record.Value{field: value}}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal patch body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start).Milliseconds()
		c.logger.Error("Airtable PatchRecord failed",
			logger.ExternalFieldsWithError("airtable", reqURL, "PATCH", 0, duration, err.Error()),
		)
		airtablePatchErr.Inc()
		return fmt.Errorf("airtable patch record: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	duration := time.Since(start).Milliseconds()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Airtable PatchRecord non-200",
			logger.ExternalFieldsWithError("airtable", reqURL, "PATCH", resp.StatusCode, duration, string(respBody)),
		)
		airtablePatchErr.Inc()
		return fmt.Errorf("airtable patch record: status %d, body: %s", resp.StatusCode, respBody)
	}

	c.logger.Debug("Airtable PatchRecord completed",
		logger.ExternalFields("airtable", reqURL, "PATCH", resp.StatusCode, duration),
	)
	airtablePatchOK.Inc()
	airtablePatchDur.Update(float64(duration) / 1000)

	return nil
}
