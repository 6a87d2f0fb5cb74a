package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kalwarein/born-to-blog/internal/ingest"
	"github.com/Kalwarein/born-to-blog/internal/server"
)

// stubRunner подменяет конвейер в тестах обработчиков.
type stubRunner struct {
	summary ingest.Summary
	err     error
}

func (s *stubRunner) Run(context.Context) (ingest.Summary, error) {
	return s.summary, s.err
}

func TestHandleFetchNews_Preflight(t *testing.T) {
	srv := server.NewServer(&stubRunner{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/functions/fetch-news", nil)
	w := httptest.NewRecorder()
	srv.HandleFetchNews(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, w.Body.String())
}

func TestHandleFetchNews_Success(t *testing.T) {
	srv := server.NewServer(&stubRunner{summary: ingest.Summary{
		FeedsProcessed: 24,
		TotalItems:     300,
		UniqueItems:    250,
		Inserted:       80,
		Skipped:        170,
		Errors:         0,
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/functions/fetch-news", nil)
	w := httptest.NewRecorder()
	srv.HandleFetchNews(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.EqualValues(t, 24, body["feeds_processed"])
	require.EqualValues(t, 300, body["total_items"])
	require.EqualValues(t, 250, body["unique_items"])
	require.EqualValues(t, 80, body["inserted"])
	require.EqualValues(t, 170, body["skipped"])
	require.EqualValues(t, 0, body["errors"])
}

func TestHandleFetchNews_InternalError(t *testing.T) {
	srv := server.NewServer(&stubRunner{err: errors.New("store unreachable")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/functions/fetch-news", nil)
	w := httptest.NewRecorder()
	srv.HandleFetchNews(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Internal server error", body["error"])
	require.Equal(t, "store unreachable", body["details"])
}
