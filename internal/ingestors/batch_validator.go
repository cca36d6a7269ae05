package ingestors

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"

	"sorting-analytics/internal/models"
)

// BatchValidator checks an ingest submission's envelope before it reaches the
// batch processor: the shared-secret credential, the batch timestamp, and the
// shape of the events/stats fields. It never inspects individual record
// fields; incomplete records are tolerated downstream so one bad record
// cannot reject the rest of the batch. Validation mutates no state.
//
//go:generate mockgen -source=batch_validator.go -destination=./mocks/batch_validator_mock.go -package=mocks
type BatchValidator interface {
	Validate(r io.Reader) (*models.TelemetryBatch, error)
}

type batchValidator struct {
	apiKey        string
	maxBatchBytes int
}

func NewBatchValidator(apiKey string, maxBatchBytes int) BatchValidator {
	return &batchValidator{
		apiKey:        apiKey,
		maxBatchBytes: maxBatchBytes,
	}
}

// uploadEnvelope mirrors the device's upload payload. Records stay raw here;
// only the envelope shape is decoded.
type uploadEnvelope struct {
	APIKey    *string         `json:"api_key"`
	Timestamp *string         `json:"timestamp"`
	Events    json.RawMessage `json:"events"`
	Stats     json.RawMessage `json:"stats"`
}

func (v *batchValidator) Validate(r io.Reader) (*models.TelemetryBatch, error) {
	if r == nil {
		return nil, errMalformedRequest("empty request body", nil)
	}

	body, err := v.readWithLimit(r, v.maxBatchBytes)
	if err != nil {
		return nil, err
	}

	var envelope uploadEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errMalformedRequest("invalid JSON data", err)
	}

	if envelope.APIKey == nil ||
		subtle.ConstantTimeCompare([]byte(*envelope.APIKey), []byte(v.apiKey)) != 1 {
		return nil, errUnauthorized()
	}

	if envelope.Timestamp == nil || *envelope.Timestamp == "" {
		return nil, errMalformedRequest("missing timestamp", nil)
	}

	events, err := decodeRecordArray(envelope.Events, "events")
	if err != nil {
		return nil, err
	}
	stats, err := decodeRecordArray(envelope.Stats, "stats")
	if err != nil {
		return nil, err
	}

	return &models.TelemetryBatch{
		Timestamp: *envelope.Timestamp,
		Events:    events,
		Stats:     stats,
	}, nil
}

// decodeRecordArray checks that an optional field, when present, is a JSON
// array of objects. An absent field is a valid empty batch half.
func decodeRecordArray(raw json.RawMessage, field string) ([]map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errMalformedRequest(fmt.Sprintf("%s must be an array of records", field), err)
	}
	return records, nil
}

// readWithLimit reads up to max+1 bytes from r and rejects oversized bodies.
func (v *batchValidator) readWithLimit(r io.Reader, max int) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errMalformedRequest("failed to read request body", err)
	}
	if len(body) > max {
		return nil, errMalformedRequest(fmt.Sprintf("batch too large: must be <= %d bytes", max), nil)
	}
	return body, nil
}
