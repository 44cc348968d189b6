package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyResponse(body string) *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(body))}
}

func TestReadBody(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		limit       int64
		expected    string
		expectError bool
	}{
		{name: "under the limit", body: `{"a":1}`, limit: 16, expected: `{"a":1}`},
		{name: "exactly the limit", body: "0123456789", limit: 10, expected: "0123456789"},
		{name: "empty", body: "", limit: 10, expected: ""},
		{name: "one byte over", body: "0123456789X", limit: 10, expectError: true},
		{name: "far over", body: strings.Repeat("x", 4096), limit: 10, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := ReadBody(bodyResponse(tt.body), tt.limit)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBodyTooLarge)
				assert.Contains(t, err.Error(), "exceeds 10 bytes")
				assert.Nil(t, body)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(body))
		})
	}
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	client := NewClient(time.Second)
	resp, err := client.PostJSON(context.Background(), server.URL, map[string]interface{}{"tenure": 12})
	require.NoError(t, err)

	body, err := ReadBody(resp, 1024)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tenure":12}`, string(body))
}
