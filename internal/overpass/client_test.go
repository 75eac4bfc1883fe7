package overpass

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(mirrors []string) *Client {
	c := NewClient(&http.Client{Timeout: 5 * time.Second}, mirrors, "test-agent")
	c.mirrorPause = time.Millisecond
	return c
}

func TestExecute_FailsOverToHealthyMirror(t *testing.T) {
	var badCalls, goodCalls, spareCalls atomic.Int32

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badCalls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badCalls.Add(1)
		w.Write([]byte(`{"elements": [`))
	}))
	defer malformed.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goodCalls.Add(1)
		w.Write([]byte(`{"elements":[{"id":7,"type":"node","lat":21.0,"lon":105.0,"tags":{"name":"Cafe"}}]}`))
	}))
	defer good.Close()

	spare := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spareCalls.Add(1)
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer spare.Close()

	c := newTestClient([]string{bad.URL, malformed.URL, good.URL, spare.URL})
	resp, err := c.Execute(context.Background(), "[out:json];")
	if err != nil {
		t.Fatalf("expected third mirror to succeed, got %v", err)
	}
	if len(resp.Elements) != 1 || resp.Elements[0].ID != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if badCalls.Load() != 2 {
		t.Fatalf("expected both failing mirrors tried once, got %d", badCalls.Load())
	}
	if spareCalls.Load() != 0 {
		t.Fatal("mirrors after the first success must not be attempted")
	}
}

func TestExecute_AllMirrorsExhausted(t *testing.T) {
	var calls atomic.Int32
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer bad.Close()

	c := newTestClient([]string{bad.URL, bad.URL})
	_, err := c.Execute(context.Background(), "[out:json];")
	if !errors.Is(err, ErrAllMirrorsFailed) {
		t.Fatalf("expected ErrAllMirrorsFailed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected one attempt per mirror, got %d", calls.Load())
	}
}

func TestExecute_NoMirrorsConfigured(t *testing.T) {
	c := newTestClient(nil)
	_, err := c.Execute(context.Background(), "[out:json];")
	if !errors.Is(err, ErrAllMirrorsFailed) {
		t.Fatalf("expected ErrAllMirrorsFailed, got %v", err)
	}
}

func TestExecute_SendsQueryBodyAndUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		buf := make([]byte, 32)
		n, _ := r.Body.Read(buf)
		if string(buf[:n]) != "[out:json];" {
			t.Errorf("unexpected body %q", string(buf[:n]))
		}
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient([]string{srv.URL}).Execute(context.Background(), "[out:json];"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
