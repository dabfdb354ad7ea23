package main

import (
	"errors"
	"slices"
)

// Event rejection errors. Handlers map these to response codes with
// errors.Is; the messages double as the rendered error text.
var (
	errNotPracticing = errors.New(ErrorNotPracticing)
	errUnknownStatus = errors.New(ErrorUnknownStatus)
	errWordNotFound  = errors.New(ErrorWordNotFound)
	errNotReady      = errors.New(ErrorNotReady)
)

// The navigation policy is wrap-skip-correct: scan forward circularly from
// the position after the current one, wrapping at most once, and land on the
// first word not yet marked correct. Incorrect and skipped words keep coming
// back every cycle; only correct words are retired. When every word is
// correct there is nothing left to show and advance reports done.
func advanceIndex(words []string, statuses map[string]string, current int) (int, bool) {
	n := len(words)
	if n == 0 {
		return 0, false
	}
	for step := 1; step <= n; step++ {
		idx := (current + step) % n
		if statuses[words[idx]] != StatusCorrect {
			return idx, true
		}
	}
	return 0, false
}

// retreatIndex steps back one position, floored at 0. Going back never ends
// the session and never touches a status.
func retreatIndex(current int) int {
	if current <= 0 {
		return 0
	}
	return current - 1
}

// newSession builds a practicing session from a word list and a restored
// progress record.
func newSession(words []string, key string, record ProgressRecord) *Session {
	return &Session{
		State:    StatePracticing,
		Words:    words,
		Key:      key,
		Statuses: record.Statuses,
		Index:    record.Index,
	}
}

// errorSession builds the terminal error session for a failed load.
func errorSession(err error) *Session {
	return &Session{State: StateError, LoadError: err.Error()}
}

// currentWord returns the word at the session index, or "" outside practice.
func (s *Session) currentWord() string {
	if len(s.Words) == 0 || s.Index < 0 || s.Index >= len(s.Words) {
		return ""
	}
	return s.Words[s.Index]
}

// markWord records a self-assessment for the current word and advances.
// Exhausting the list flips the session into the summary view.
func (s *Session) markWord(status string) error {
	if s.State != StatePracticing {
		return errNotPracticing
	}
	if !isKnownStatus(status) || status == StatusUnset {
		return errUnknownStatus
	}

	s.Statuses[s.currentWord()] = status
	s.advance()
	return nil
}

// nextWord moves to the next word under the navigation policy, entering the
// summary view when nothing qualifies.
func (s *Session) nextWord() error {
	if s.State != StatePracticing {
		return errNotPracticing
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	if idx, ok := advanceIndex(s.Words, s.Statuses, s.Index); ok {
		s.Index = idx
	} else {
		s.State = StateSummarizing
	}
}

// previousWord steps back one position.
func (s *Session) previousWord() error {
	if s.State != StatePracticing {
		return errNotPracticing
	}
	s.Index = retreatIndex(s.Index)
	return nil
}

// toggleSummary switches between the practice and summary views.
func (s *Session) toggleSummary() error {
	switch s.State {
	case StatePracticing:
		s.State = StateSummarizing
	case StateSummarizing:
		s.State = StatePracticing
	default:
		return errNotReady
	}
	return nil
}

// jumpToWord re-enters practice at the first position of the given word.
func (s *Session) jumpToWord(word string) error {
	if s.State != StatePracticing && s.State != StateSummarizing {
		return errNotReady
	}
	idx := slices.Index(s.Words, word)
	if idx < 0 {
		return errWordNotFound
	}
	s.Index = idx
	s.State = StatePracticing
	return nil
}

// resetProgress clears every status back to unset and returns to the first
// word. The word list and storage key are untouched, so the cleared record
// overwrites the old one under the same key.
func (s *Session) resetProgress() error {
	if len(s.Words) == 0 {
		return errNotReady
	}
	for _, word := range s.Words {
		s.Statuses[word] = StatusUnset
	}
	s.Index = 0
	s.State = StatePracticing
	return nil
}
