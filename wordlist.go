package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

// Loader error values. Any of these leaves the session in the error state
// until the user triggers a reload.
var (
	ErrEmptyWordList = errors.New("word list is empty after filtering")
)

// parseWordList splits raw text on line boundaries, trims each line, drops
// empty lines and truncates to the first MaxWords entries. Case is preserved:
// the source list is the canonical spelling the learner is practicing.
func parseWordList(raw string) []string {
	lines := strings.Split(raw, "\n")
	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		word := strings.TrimSpace(line)
		return word, word != ""
	})
	return lo.Slice(words, 0, MaxWords)
}

// fetchWordList retrieves the raw word list text from the configured URL.
// Cache-bypass headers are set so an intermediary can never serve a stale
// copy of an edited list.
func (app *App) fetchWordList(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, app.WordListURL, nil)
	if err != nil {
		return "", fmt.Errorf("build word list request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := app.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch word list: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read word list body: %w", err)
	}
	return string(body), nil
}

// loadWordList fetches and parses the word list. The returned slice is
// non-empty on success; an empty result after filtering is a load failure.
func (app *App) loadWordList(ctx context.Context) ([]string, error) {
	raw, err := app.fetchWordList(ctx)
	if err != nil {
		return nil, err
	}
	words := parseWordList(raw)
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	logInfo("Loaded %d words from %s", len(words), app.WordListURL)
	return words, nil
}
