package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexibleStringValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain string", raw: `"value"`, expected: "value"},
		{name: "integer", raw: `42`, expected: "42"},
		{name: "float", raw: `3.5`, expected: "3.5"},
		{name: "boolean", raw: `true`, expected: "true"},
		{name: "null", raw: `null`, expected: ""},
		{name: "empty", raw: ``, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlexibleStringValue(json.RawMessage(tt.raw)))
		})
	}
}

func TestFlexibleFloatValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		ok       bool
	}{
		{name: "number", raw: `0.85`, expected: 0.85, ok: true},
		{name: "integer", raw: `1`, expected: 1, ok: true},
		{name: "quoted number", raw: `"0.85"`, expected: 0.85, ok: true},
		{name: "percent string", raw: `"85%"`, expected: 0.85, ok: true},
		{name: "padded string", raw: `" 0.7 "`, expected: 0.7, ok: true},
		{name: "null", raw: `null`, ok: false},
		{name: "word", raw: `"high"`, ok: false},
		{name: "object", raw: `{"v": 1}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FlexibleFloatValue(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 0.0001)
			}
		})
	}
}
