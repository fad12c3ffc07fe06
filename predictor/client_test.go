package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"rocketsim/game"
)

// scriptServer answers scripts:getByName and scripts:list from a fixed set
func scriptServer(t *testing.T, scripts map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/query" {
			http.NotFound(w, r)
			return
		}
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Format != "json" {
			t.Errorf("format = %q, expected json", req.Format)
		}

		var value any
		switch req.Path {
		case "scripts:getByName":
			name, _ := req.Args["name"].(string)
			if code, ok := scripts[name]; ok {
				value = ScriptInfo{ID: "id-" + name, Name: name, Code: code}
			}
		case "scripts:list":
			list := []ScriptInfo{}
			for name, code := range scripts {
				list = append(list, ScriptInfo{ID: "id-" + name, Name: name, Code: code})
			}
			value = list
		default:
			msg := "unknown function " + req.Path
			_ = json.NewEncoder(w).Encode(queryResponse{Status: "error", Error: &msg})
			return
		}
		raw, _ := json.Marshal(value)
		_ = json.NewEncoder(w).Encode(queryResponse{Status: "success", Value: raw})
	}))
}

func TestClient_FetchScript(t *testing.T) {
	srv := scriptServer(t, map[string]string{"aim": "function predict(f) { return 7; }"})
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger())
	code, err := c.FetchScript(context.Background(), "aim")
	if err != nil {
		t.Fatalf("FetchScript() error = %v", err)
	}
	if !strings.Contains(code, "return 7") {
		t.Errorf("code = %q", code)
	}

	_, err = c.FetchScript(context.Background(), "missing")
	if !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("FetchScript(missing) error = %v, expected ErrScriptNotFound", err)
	}
	if c.State() != gobreaker.StateClosed {
		t.Errorf("a missing script should not count as a failure, state %v", c.State())
	}
}

func TestClient_ListScripts(t *testing.T) {
	srv := scriptServer(t, map[string]string{"a": "1", "b": "2"})
	defer srv.Close()

	scripts, err := NewClient(srv.URL, quietLogger()).ListScripts(context.Background())
	if err != nil {
		t.Fatalf("ListScripts() error = %v", err)
	}
	if len(scripts) != 2 {
		t.Errorf("got %d scripts, expected 2", len(scripts))
	}
}

func TestClient_QueryError(t *testing.T) {
	srv := scriptServer(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(), WithRetry(1, 0))
	_, err := c.Query(context.Background(), "scripts:unknown", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown function") {
		t.Errorf("Query() error = %v", err)
	}
}

func TestClient_Retries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(queryResponse{Status: "success", Value: json.RawMessage(`{"code":"ok"}`)})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(), WithRetry(3, time.Millisecond))
	code, err := c.FetchScript(context.Background(), "x")
	if err != nil {
		t.Fatalf("FetchScript() error = %v", err)
	}
	if code != "ok" || hits.Load() != 3 {
		t.Errorf("code = %q after %d attempts", code, hits.Load())
	}
}

func TestClient_BreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(), WithRetry(1, 0), WithBreaker(2, time.Minute))
	for i := 0; i < 2; i++ {
		if _, err := c.FetchScript(context.Background(), "x"); err == nil {
			t.Fatal("expected a server error")
		}
	}
	if c.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, expected open", c.State())
	}

	_, err := c.FetchScript(context.Background(), "x")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, expected ErrOpenState", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times, an open breaker should not call it", hits.Load())
	}
}

func TestClient_RetryCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, quietLogger(), WithRetry(3, time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Query(ctx, "scripts:list", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, expected a deadline", err)
	}
}

func TestSource_Open(t *testing.T) {
	srv := scriptServer(t, map[string]string{"const": "function predict(f) { return 5; }"})
	defer srv.Close()

	src := Source{
		Config: game.DefaultConfig(),
		Client: NewClient(srv.URL, quietLogger()),
		Logger: quietLogger(),
	}

	tests := []struct {
		name    string
		wantNil bool
		wantErr error
	}{
		{name: "", wantNil: true},
		{name: SourceNone, wantNil: true},
		{name: SourceBuiltin},
		{name: "builtin:aim"},
		{name: SourceIntercept},
		{name: "server:const"},
		{name: "server:missing", wantErr: ErrScriptNotFound},
		{name: "builtin:missing", wantErr: ErrScriptNotFound},
		{name: "/does/not/exist.js", wantErr: ErrScriptNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := src.Open(context.Background(), tt.name, "classifier")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Open() error = %v, expected %v", err, tt.wantErr)
				}
				if p != nil {
					t.Error("a failed open should return a nil predictor")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if (p == nil) != tt.wantNil {
				t.Errorf("Open() = %v, wantNil %v", p, tt.wantNil)
			}
		})
	}

	p, _ := src.Open(context.Background(), "server:const", "")
	if got := p.Predict([]float64{1, 2, 3, 4}); got != 5 {
		t.Errorf("server script Predict() = %v, expected 5", got)
	}
}
