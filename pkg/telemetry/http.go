package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// requestTimeout bounds a single transmission attempt.
const requestTimeout = 10 * time.Second

// apiKeyHeader carries the project key identifying this collector to the
// collection endpoint.
const apiKeyHeader = "x-api-key"

// HTTPClient interface for making HTTP requests (allows mocking in tests)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// transport posts batches of shaped records to the collection endpoint.
type transport struct {
	logger     *telemetryLogger
	httpClient HTTPClient
	endpoint   string
	apiKey     string
	version    string
}

// batchRequest is the wire envelope the collection endpoint accepts.
type batchRequest struct {
	Records []EventPayload `json:"records"`
}

// sendBatch transmits one batch. Errors are reported to the dispatcher for
// counting only; nothing retries and nothing propagates further.
func (t *transport) sendBatch(batch []queueEntry) error {
	records := make([]EventPayload, 0, len(batch))
	for _, entry := range batch {
		records = append(records, t.payloadFor(entry))
	}

	jsonData, err := json.Marshal(batchRequest{Records: records})
	if err != nil {
		return fmt.Errorf("failed to marshal batch to JSON: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, t.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("pwshgo-telemetry/%s", t.version))
	if t.apiKey != "" {
		req.Header.Set(apiKeyHeader, t.apiKey)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := make([]byte, 1024) // Read up to 1KB of error response
		n, _ := resp.Body.Read(body)
		return fmt.Errorf("HTTP request failed with status %d: %s", resp.StatusCode, string(body[:n]))
	}

	t.logger.Debug("batch transmitted", "records", len(records))
	return nil
}

// payloadFor builds the wire record for one queue entry: a copy of the
// event's properties plus system metadata, with every platform-identifying
// field overwritten. The anonymizing pass runs here, at the last point
// before serialization, so metadata the transport layer itself populates
// cannot leak either.
func (t *transport) payloadFor(entry queueEntry) EventPayload {
	props := orderedmap.New[string, string]()
	for pair := entry.event.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props.Set(pair.Key, pair.Value)
	}

	osName, osLanguage := getSystemInfo()
	props.Set("version", t.version)
	props.Set("os", osName)
	props.Set("os_language", osLanguage)

	for _, field := range platformFields {
		props.Set(field, anonymousPlatform)
	}

	return EventPayload{
		Event:          entry.event.Type,
		EventTimestamp: entry.enqueuedAt.UnixMilli(),
		Source:         "pwshgo",
		Properties:     props,
		Measurements:   entry.event.Measurements,
	}
}

// getSystemInfo collects coarse system information for events.
func getSystemInfo() (osName, osLanguage string) {
	osLanguage = os.Getenv("LANG")
	if osLanguage == "" {
		osLanguage = "en-US"
	}
	return runtime.GOOS, osLanguage
}
