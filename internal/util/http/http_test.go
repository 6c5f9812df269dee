package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmylchreest/pokepalette/internal/security"
)

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Fetch() = %q, want %q", data, "payload")
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestFetchCustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL, FetchOptions{UserAgent: "pokepalette-test"}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != "pokepalette-test" {
		t.Errorf("User-Agent = %q, want pokepalette-test", gotUA)
	}
}

func TestFetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("Fetch() error = %v, want ErrUnexpectedStatus", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := Fetch(context.Background(), srv.URL, FetchOptions{Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("Fetch() expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Fetch() took %v, timeout not applied", elapsed)
	}
}

func TestFetchBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL, FetchOptions{MaxBytes: 16}); !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Fetch() error = %v, want size limit error", err)
	}
	if _, err := Fetch(context.Background(), srv.URL, FetchOptions{MaxBytes: 64}); err != nil {
		t.Errorf("Fetch() error = %v for body at limit", err)
	}
}

func TestFetchBadURL(t *testing.T) {
	if _, err := Fetch(context.Background(), "://not a url", FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for malformed URL")
	}
	if _, err := Fetch(context.Background(), "file:///etc/passwd", FetchOptions{}); err == nil {
		t.Error("Fetch() expected error for non-http scheme")
	}
}
