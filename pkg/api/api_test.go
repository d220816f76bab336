package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/playnet-public/gorcon-dp/pkg/common"
	"github.com/playnet-public/gorcon-dp/pkg/rcon"
	"go.uber.org/zap"
)

func newTestAPI(connected bool) (*API, *[]string) {
	executed := &[]string{}
	client := rcon.NewClient(
		func() error { return nil },
		func() error { return nil },
		func(cmds ...string) error {
			if !connected {
				return common.ErrConnectionRequired
			}
			*executed = append(*executed, cmds...)
			return nil
		},
		func() (string, error) { return "", nil },
		func() (string, error) {
			if !connected {
				return "", common.ErrConnectionRequired
			}
			return "127.0.0.1:26000", nil
		},
	)
	return New(zap.NewNop(), client, "127.0.0.1:0"), executed
}

func TestAPI_Status(t *testing.T) {
	tests := []struct {
		name        string
		connected   bool
		wantCode    int
		wantSuccess bool
	}{
		{"connected", true, http.StatusOK, true},
		{"disconnected", false, http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAPI(tt.connected)
			w := httptest.NewRecorder()
			a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantCode)
			}
			var resp struct {
				Success bool `json:"success"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", resp.Success, tt.wantSuccess)
			}
		})
	}
}

func TestAPI_Command(t *testing.T) {
	a, executed := newTestAPI(true)

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(
		http.MethodPost, "/api/command", strings.NewReader(`{"command":"status"}`)))
	if w.Code != http.StatusOK {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusOK)
	}
	if len(*executed) != 1 || (*executed)[0] != "status" {
		t.Errorf("executed = %v, want [status]", *executed)
	}

	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(
		http.MethodPost, "/api/command", strings.NewReader(`{}`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty command status code = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
