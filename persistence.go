package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
)

// listKey derives the storage key for a word list: an FNV-1a hash of the
// newline-joined words, rendered as short hex. Order- and content-sensitive,
// so an edited list gets a fresh slot and old progress is orphaned rather
// than corrupted. Not a security boundary, collisions are tolerated.
func listKey(words []string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(words, "\n")))
	return fmt.Sprintf("%08x", h.Sum32())
}

// isKnownStatus reports whether s is one of the recognized status values.
// Anything else found in storage is discarded, not trusted.
func isKnownStatus(s string) bool {
	switch s {
	case StatusUnset, StatusCorrect, StatusIncorrect, StatusSkipped:
		return true
	}
	return false
}

// progressFilePath returns the file backing a storage key.
func progressFilePath(dataDir, key string) string {
	return filepath.Join(dataDir, "progress", key+".json")
}

// saveProgressToFile persists a progress record under its key. Declared as a
// var so tests can stub it out.
var saveProgressToFile = func(dataDir, key string, record ProgressRecord) error {
	progressDir := filepath.Join(dataDir, "progress")
	if err := os.MkdirAll(progressDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(progressFilePath(dataDir, key), data, 0644)
}

// loadProgressFromFile reads the stored record for a key. A missing file or
// malformed payload both report absence: the caller falls back to a fresh
// record instead of trusting a broken one.
var loadProgressFromFile = func(dataDir, key string) (ProgressRecord, bool) {
	data, err := os.ReadFile(progressFilePath(dataDir, key))
	if err != nil {
		if !os.IsNotExist(err) {
			logWarn("Failed to read progress file for key %s: %v", key, err)
		}
		return ProgressRecord{}, false
	}
	return decodeProgressRecord(data)
}

// decodeProgressRecord is the validating decode step at the storage boundary.
// Arbitrary or malformed JSON maps to the absent-record case.
func decodeProgressRecord(data []byte) (ProgressRecord, bool) {
	var record ProgressRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logWarn("Discarding malformed progress record: %v", err)
		return ProgressRecord{}, false
	}
	return record, true
}

// restoreProgress merges a stored record with the current word list. Every
// word ends up with a status: stored values survive only if recognized,
// everything else defaults to unset. Entries for words no longer in the list
// are dropped and the stored index is clamped into bounds.
func restoreProgress(words []string, stored ProgressRecord) ProgressRecord {
	statuses := make(map[string]string, len(words))
	for _, word := range words {
		status, ok := stored.Statuses[word]
		if !ok || !isKnownStatus(status) {
			status = StatusUnset
		}
		statuses[word] = status
	}

	index := stored.Index
	if index > len(words)-1 {
		index = len(words) - 1
	}
	if index < 0 {
		index = 0
	}

	return ProgressRecord{Statuses: statuses, Index: index}
}

// persistSession writes the session's progress best-effort. Failures are
// logged and swallowed: the in-memory state stays authoritative.
func (app *App) persistSession(s *Session) {
	if s.Key == "" {
		return
	}
	record := ProgressRecord{Statuses: s.Statuses, Index: s.Index}
	if err := saveProgressToFile(app.DataDir, s.Key, record); err != nil {
		logWarn("Failed to persist progress for key %s: %v", s.Key, err)
	}
}
