package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theryangeary/gl/internal/client/models"
	"github.com/theryangeary/gl/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 0)
}

func TestListEntries(t *testing.T) {
	pos := int64(1)
	want := []models.Entry{{ID: 7, Description: "Milk", CategoryID: 1, Position: &pos}}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/entries", r.URL.Path)
		_ = json.NewEncoder(w).Encode(want)
	}))

	got, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Description, got[0].Description)
}

func TestCreateEntry_SendsBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.CreateEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Bread", req.Description)

		_ = json.NewEncoder(w).Encode(models.Entry{ID: 1, Description: req.Description})
	}))

	entry, err := c.CreateEntry(context.Background(), models.CreateEntry{Description: "Bread"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"validation", http.StatusBadRequest, common.ErrorValidation},
		{"not found", http.StatusNotFound, common.ErrorNotFound},
		{"conflict", http.StatusConflict, common.ErrorConflictRetryable},
		{"internal", http.StatusInternalServerError, common.ErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "something happened", tt.status)
			}))

			err := c.DeleteEntry(context.Background(), 1)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "something happened")
		})
	}
}

func TestTransportFailure_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	c := NewHTTPClient(srv.URL, 0)
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestEntrySuggestions_EscapesQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entries/suggestions", r.URL.Path)
		assert.Equal(t, "mi lk", r.URL.Query().Get("query"))
		_ = json.NewEncoder(w).Encode([]string{"Milk"})
	}))

	got, err := c.EntrySuggestions(context.Background(), "mi lk")
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk"}, got)
}
