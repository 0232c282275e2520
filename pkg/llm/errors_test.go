package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   ErrorType
		retryable  bool
		statusCode int
	}{
		{
			name:       "unauthorized",
			err:        errors.New("API returned 401 Unauthorized"),
			wantType:   ErrorTypeAuth,
			retryable:  false,
			statusCode: 401,
		},
		{
			name:      "invalid api key",
			err:       errors.New("invalid api key provided"),
			wantType:  ErrorTypeAuth,
			retryable: false,
		},
		{
			name:      "model not found",
			err:       errors.New(`model "gpt-5-nano" not found`),
			wantType:  ErrorTypeModel,
			retryable: false,
		},
		{
			name:       "endpoint 404",
			err:        errors.New("404 page not found"),
			wantType:   ErrorTypeEndpoint,
			retryable:  false,
			statusCode: 404,
		},
		{
			name:      "connection refused",
			err:       errors.New("dial tcp 127.0.0.1:11434: connection refused"),
			wantType:  ErrorTypeEndpoint,
			retryable: true,
		},
		{
			name:      "timeout",
			err:       errors.New("context deadline exceeded"),
			wantType:  ErrorTypeEndpoint,
			retryable: true,
		},
		{
			name:       "rate limited",
			err:        errors.New("429 Too Many Requests"),
			wantType:   ErrorTypeUnknown,
			retryable:  true,
			statusCode: 429,
		},
		{
			name:       "server error",
			err:        errors.New("upstream returned 503"),
			wantType:   ErrorTypeEndpoint,
			retryable:  true,
			statusCode: 503,
		},
		{
			name:      "unclassified",
			err:       errors.New("something odd happened"),
			wantType:  ErrorTypeUnknown,
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			require.NotNil(t, classified)
			assert.Equal(t, tt.wantType, classified.Type)
			assert.Equal(t, tt.retryable, classified.Retryable)
			if tt.statusCode > 0 {
				assert.Equal(t, tt.statusCode, classified.StatusCode)
			}
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestClassifyError_PreservesExistingError(t *testing.T) {
	original := NewError(ErrorTypeAuth, "authentication failed", false, errors.New("401"))
	wrapped := fmt.Errorf("generate: %w", original)

	classified := ClassifyError(wrapped)
	assert.Same(t, original, classified)
}

func TestIsRetryable(t *testing.T) {
	retryable := NewError(ErrorTypeEndpoint, "connection failed", true, nil)
	assert.True(t, IsRetryable(retryable))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", retryable)))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeModel, GetErrorType(NewError(ErrorTypeModel, "model not found", false, nil)))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain error")))
}

func TestError_Message(t *testing.T) {
	err := NewError(ErrorTypeAuth, "authentication failed", false, errors.New("401 Unauthorized"))
	err.StatusCode = 401

	msg := err.Error()
	assert.Contains(t, msg, "auth")
	assert.Contains(t, msg, "HTTP 401")
	assert.Contains(t, msg, "authentication failed")
	assert.Contains(t, msg, "401 Unauthorized")
}
