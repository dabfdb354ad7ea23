package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// newTestApp builds an App pointed at a test word list server.
func newTestApp(t *testing.T, wordListURL string) *App {
	t.Helper()
	return &App{
		WordListURL:    wordListURL,
		DataDir:        t.TempDir(),
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		StartTime:      time.Now(),
		Client:         &http.Client{Timeout: 2 * time.Second},
		Session:        &Session{State: StateLoading},
		LimiterMap:     make(map[string]*rate.Limiter),
	}
}

// wordListServer serves a fixed plain-text body.
func wordListServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseWordList(t *testing.T) {
	tests := []struct {
		raw     string
		want    []string
		comment string
	}{
		{"apple\nbanana\ncherry", []string{"apple", "banana", "cherry"}, "plain list"},
		{"  apple \n\tbanana\t\n", []string{"apple", "banana"}, "whitespace trimmed"},
		{"apple\n\n\nbanana\n   \n", []string{"apple", "banana"}, "empty lines dropped"},
		{"apple\r\nbanana\r\n", []string{"apple", "banana"}, "CRLF line endings"},
		{"Apple\nBANANA", []string{"Apple", "BANANA"}, "case preserved"},
		{"apple\nbanana\napple", []string{"apple", "banana", "apple"}, "duplicates kept as positions"},
		{"\n \n\t\n", nil, "nothing left after filtering"},
	}
	for _, tt := range tests {
		got := parseWordList(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.comment, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: position %d = %q, want %q", tt.comment, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseWordListTruncatesToMaxWords(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxWords+50; i++ {
		fmt.Fprintf(&b, "word%d\n", i)
	}
	got := parseWordList(b.String())
	if len(got) != MaxWords {
		t.Fatalf("len = %d, want %d", len(got), MaxWords)
	}
	if got[0] != "word0" || got[MaxWords-1] != fmt.Sprintf("word%d", MaxWords-1) {
		t.Error("truncation did not keep the first lines in order")
	}
}

func TestFetchWordListSetsCacheBypassHeaders(t *testing.T) {
	var gotCacheControl, gotPragma string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		gotPragma = r.Header.Get("Pragma")
		fmt.Fprint(w, "apple\n")
	}))
	t.Cleanup(srv.Close)

	app := newTestApp(t, srv.URL)
	if _, err := app.fetchWordList(context.Background()); err != nil {
		t.Fatalf("fetchWordList failed: %v", err)
	}
	if gotCacheControl != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", gotCacheControl)
	}
	if gotPragma != "no-cache" {
		t.Errorf("Pragma = %q, want no-cache", gotPragma)
	}
}

func TestLoadWordList(t *testing.T) {
	srv := wordListServer(t, "apple\nbanana\ncherry\n")
	app := newTestApp(t, srv.URL)

	words, err := app.loadWordList(context.Background())
	if err != nil {
		t.Fatalf("loadWordList failed: %v", err)
	}
	if len(words) != 3 || words[0] != "apple" {
		t.Errorf("words = %v", words)
	}
}

func TestLoadWordListNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	app := newTestApp(t, srv.URL)
	if _, err := app.loadWordList(context.Background()); err == nil {
		t.Error("loadWordList should fail on a non-2xx response")
	}
}

func TestLoadWordListEmptyAfterFilter(t *testing.T) {
	srv := wordListServer(t, "\n   \n\t\n")
	app := newTestApp(t, srv.URL)

	_, err := app.loadWordList(context.Background())
	if !errors.Is(err, ErrEmptyWordList) {
		t.Errorf("err = %v, want ErrEmptyWordList", err)
	}
}

func TestLoadWordListTransportFailure(t *testing.T) {
	srv := wordListServer(t, "apple\n")
	url := srv.URL
	srv.Close()

	app := newTestApp(t, url)
	if _, err := app.loadWordList(context.Background()); err == nil {
		t.Error("loadWordList should fail when the server is unreachable")
	}
}

func TestLoadSessionRestoresStoredProgress(t *testing.T) {
	srv := wordListServer(t, "apple\nbanana\ncherry\n")
	app := newTestApp(t, srv.URL)
	words := []string{"apple", "banana", "cherry"}
	key := listKey(words)
	stored := ProgressRecord{
		Statuses: map[string]string{"apple": StatusCorrect},
		Index:    7, // out of range on purpose
	}
	if err := saveProgressToFile(app.DataDir, key, stored); err != nil {
		t.Fatalf("saveProgressToFile failed: %v", err)
	}

	app.loadSession(context.Background())

	s := app.snapshotSession()
	if s.State != StatePracticing {
		t.Fatalf("State = %q, want %q", s.State, StatePracticing)
	}
	if s.Key != key {
		t.Errorf("Key = %q, want %q", s.Key, key)
	}
	if s.Statuses["apple"] != StatusCorrect {
		t.Errorf("apple = %q, want restored status", s.Statuses["apple"])
	}
	if s.Statuses["banana"] != StatusUnset || s.Statuses["cherry"] != StatusUnset {
		t.Errorf("new words should default to unset: %v", s.Statuses)
	}
	if s.Index != 2 {
		t.Errorf("Index = %d, want clamped to 2", s.Index)
	}
}

func TestLoadSessionEntersErrorState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	app := newTestApp(t, srv.URL)
	app.loadSession(context.Background())

	s := app.snapshotSession()
	if s.State != StateError {
		t.Fatalf("State = %q, want %q", s.State, StateError)
	}
	if s.LoadError == "" {
		t.Error("LoadError should carry the failure message")
	}
}
