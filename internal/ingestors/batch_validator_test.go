package ingestors_test

import (
	"strings"
	"testing"

	"sorting-analytics/internal/ingestors"
	"sorting-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func newTestValidator() ingestors.BatchValidator {
	return ingestors.NewBatchValidator(testAPIKey, 1024*1024)
}

func requireServiceError(t *testing.T, err error, code, category string) {
	t.Helper()

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %v", err)
	assert.Equal(t, code, svcErr.Code)
	assert.Equal(t, category, svcErr.Category)
}

func TestValidate_Unauthorized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "wrong api key",
			body: `{"api_key":"wrong","timestamp":"2024-01-01T00:00:00Z"}`,
		},
		{
			name: "missing api key",
			body: `{"timestamp":"2024-01-01T00:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator := newTestValidator()
			batch, err := validator.Validate(strings.NewReader(tt.body))

			requireServiceError(t, err, "ING_1001", "unauthorized")
			assert.Nil(t, batch)
		})
	}
}

func TestValidate_MalformedRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "invalid json",
			body: `{invalid`,
		},
		{
			name: "missing timestamp",
			body: `{"api_key":"test-key"}`,
		},
		{
			name: "empty timestamp",
			body: `{"api_key":"test-key","timestamp":""}`,
		},
		{
			name: "events is not an array",
			body: `{"api_key":"test-key","timestamp":"2024-01-01T00:00:00Z","events":{"id":"a"}}`,
		},
		{
			name: "stats is not an array",
			body: `{"api_key":"test-key","timestamp":"2024-01-01T00:00:00Z","stats":"nope"}`,
		},
		{
			name: "events is an array of non-records",
			body: `{"api_key":"test-key","timestamp":"2024-01-01T00:00:00Z","events":[1,2,3]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator := newTestValidator()
			batch, err := validator.Validate(strings.NewReader(tt.body))

			requireServiceError(t, err, "ING_1000", "invalid_argument")
			assert.Nil(t, batch)
		})
	}
}

func TestValidate_BatchTooLarge(t *testing.T) {
	t.Parallel()

	validator := ingestors.NewBatchValidator(testAPIKey, 2048)
	body := `{"api_key":"test-key","timestamp":"2024-01-01T00:00:00Z","events":[` +
		strings.Repeat(`{"id":"x"},`, 400) + `{"id":"y"}]}`

	batch, err := validator.Validate(strings.NewReader(body))

	requireServiceError(t, err, "ING_1000", "invalid_argument")
	assert.Nil(t, batch)
}

func TestValidate_EmptyBatchIsValid(t *testing.T) {
	t.Parallel()

	validator := newTestValidator()
	batch, err := validator.Validate(strings.NewReader(
		`{"api_key":"test-key","timestamp":"2024-01-01T00:00:00Z"}`))

	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.Equal(t, "2024-01-01T00:00:00Z", batch.Timestamp)
	assert.Empty(t, batch.Events)
	assert.Empty(t, batch.Stats)
}

func TestValidate_FullBatch(t *testing.T) {
	t.Parallel()

	validator := newTestValidator()
	batch, err := validator.Validate(strings.NewReader(`{
		"api_key": "test-key",
		"timestamp": "2024-01-01T00:00:00Z",
		"events": [
			{"id":"evt-1","timestamp":"2024-01-01T10:00:00","item_type":"can","confidence":0.95,"sort_destination":"recycling"}
		],
		"stats": [
			{"date":"2024-01-01","can_count":5}
		]
	}`))

	require.NoError(t, err)
	require.NotNil(t, batch)
	require.Len(t, batch.Events, 1)
	require.Len(t, batch.Stats, 1)
	assert.Equal(t, "evt-1", batch.Events[0]["id"])
	assert.Equal(t, "2024-01-01", batch.Stats[0]["date"])
}
