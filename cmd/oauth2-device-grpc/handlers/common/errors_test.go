package common

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		code        string
		description string
		wantDesc    string
	}{
		{
			name:        "not found",
			status:      http.StatusNotFound,
			code:        "not_found",
			description: "no such endpoint ",
			wantDesc:    "no such endpoint",
		},
		{
			name:   "error without description",
			status: http.StatusMethodNotAllowed,
			code:   "method_not_allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.status, tt.code, tt.description)

			if got := w.Code; got != tt.status {
				t.Errorf("WriteError() status = %v, want %v", got, tt.status)
			}
			if got := w.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("WriteError() Cache-Control = %v, want no-store", got)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Error != tt.code {
				t.Errorf("WriteError() error = %v, want %v", resp.Error, tt.code)
			}
			if resp.ErrorDescription != tt.wantDesc {
				t.Errorf("WriteError() description = %q, want %q", resp.ErrorDescription, tt.wantDesc)
			}
		})
	}
}

func TestWriteJSONFallsBackOnEncodingFailure(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]float64{"bad": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("WriteJSON() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "server_error" {
		t.Errorf("WriteJSON() error = %v, want server_error", resp.Error)
	}
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("WriteJSONError() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("WriteJSONError() Content-Type = %v, want application/json", got)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ErrorDescription != "Failed to encode response" {
		t.Errorf("WriteJSONError() description = %v, want 'Failed to encode response'", resp.ErrorDescription)
	}
}

func TestSetJSONHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SetJSONHeaders(w)

	wantHeaders := map[string]string{
		"Cache-Control": "no-store",
		"Content-Type":  "application/json",
	}

	for k, v := range wantHeaders {
		if got := w.Header().Get(k); got != v {
			t.Errorf("SetJSONHeaders() header[%s] = %v, want %v", k, got, v)
		}
	}
}
