package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-news/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{name: "struct", code: http.StatusCreated, data: struct {
			ID int `json:"id"`
		}{ID: 123}, expectedBody: `{"id":123}`},
		{name: "slice", code: http.StatusOK, data: []int{}, expectedBody: `[]`},
		{name: "nil", code: http.StatusNoContent, data: nil, expectedBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusOK, "successful")

	assert.JSONEq(t, `{"message":"successful"}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusTooManyRequests, "slow down")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":true,"message":"slow down"}`, w.Body.String())
}

func TestStatusFor(t *testing.T) {
	writeFailed := entity.NewUserError(entity.ErrWriteFailed, "Delete story failed.")

	tests := []struct {
		name      string
		err       error
		overrides Overrides
		want      int
	}{
		{name: "invalid argument", err: entity.ErrInvalidArgument, want: http.StatusBadRequest},
		{name: "validation error", err: &entity.ValidationError{Field: "sort", Message: "bad"}, want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("list: %w", entity.ErrNotFound), want: http.StatusNotFound},
		{name: "network", err: entity.ErrNetwork, want: http.StatusBadRequest},
		{name: "write failed", err: writeFailed, want: http.StatusInternalServerError},
		{name: "write failed overridden", err: writeFailed,
			overrides: Overrides{entity.ErrWriteFailed: http.StatusNotFound}, want: http.StatusNotFound},
		{name: "override ignored for other kinds", err: entity.ErrInvalidArgument,
			overrides: Overrides{entity.ErrWriteFailed: http.StatusNotFound}, want: http.StatusBadRequest},
		{name: "body too large", err: &http.MaxBytesError{Limit: 10}, want: http.StatusRequestEntityTooLarge},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err, tt.overrides))
		})
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		wantLog  bool
	}{
		{
			name:     "user error",
			err:      entity.NewUserError(entity.ErrInvalidArgument, "Request must contain URL & title"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Request must contain URL & title",
		},
		{
			name:     "wrapped user error",
			err:      fmt.Errorf("create: %w", entity.NewUserError(entity.ErrNotFound, "No stories were found")),
			wantCode: http.StatusNotFound,
			wantMsg:  "No stories were found",
		},
		{
			name:     "validation error",
			err:      &entity.ValidationError{Field: "order", Message: `invalid order "sideways"`},
			wantCode: http.StatusBadRequest,
			wantMsg:  `invalid order "sideways"`,
		},
		{
			name:     "bare sentinel",
			err:      entity.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  "Not Found",
		},
		{
			name:     "write failure keeps its message",
			err:      entity.NewUserError(entity.ErrWriteFailed, "Insert story failed."),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Insert story failed.",
			wantLog:  true,
		},
		{
			name:     "internal error is hidden",
			err:      errors.New("pq: connection to postgres://app:s3cret@db/news refused"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
			wantLog:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/stories", nil)

			SafeError(w, r, tt.err, nil)

			assert.Equal(t, tt.wantCode, w.Code)
			body := decode(t, w)
			assert.True(t, body.Error)
			assert.Equal(t, tt.wantMsg, body.Message)

			if tt.wantLog {
				assert.Contains(t, logs.String(), "request failed")
				assert.NotContains(t, logs.String(), "s3cret")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil, nil)

	assert.Zero(t, w.Body.Len())
}
