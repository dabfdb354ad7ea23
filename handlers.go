package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// sessionView renders a session snapshot as the JSON payload shared by all
// session endpoints.
func sessionView(s Session) gin.H {
	view := gin.H{"state": s.State}
	switch s.State {
	case StateError:
		view["error"] = s.LoadError
	case StatePracticing:
		view["word"] = s.currentWord()
		view["index"] = s.Index
		view["total"] = len(s.Words)
		view["counts"] = statusCounts(s)
	case StateSummarizing:
		view["total"] = len(s.Words)
		view["counts"] = statusCounts(s)
		view["summary"] = summaryEntries(s)
	}
	return view
}

// statusCounts tallies statuses per list position. Duplicate words share a
// status slot, so each repeated position counts under the shared status.
func statusCounts(s Session) map[string]int {
	return lo.CountValues(lo.Map(s.Words, func(word string, _ int) string {
		return s.Statuses[word]
	}))
}

// summaryEntries returns every word with its status, in list order.
func summaryEntries(s Session) []SummaryEntry {
	return lo.Map(s.Words, func(word string, _ int) SummaryEntry {
		return SummaryEntry{Word: word, Status: s.Statuses[word]}
	})
}

// eventStatus maps a rejected event to an HTTP status code.
func eventStatus(err error) int {
	if errors.Is(err, errNotPracticing) || errors.Is(err, errNotReady) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// handleEvent runs one session event and renders the resulting snapshot.
func (app *App) handleEvent(c *gin.Context, fn func(*Session) error) {
	s, err := app.mutateSession(fn)
	if err != nil {
		c.JSON(eventStatus(err), gin.H{"error": err.Error(), "state": s.State})
		return
	}
	c.JSON(http.StatusOK, sessionView(s))
}

// homeHandler renders the current session snapshot.
func (app *App) homeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, sessionView(app.snapshotSession()))
}

// markHandler records a self-assessment for the current word.
func (app *App) markHandler(c *gin.Context) {
	status := strings.ToLower(strings.TrimSpace(c.PostForm("status")))
	app.handleEvent(c, func(s *Session) error {
		return s.markWord(status)
	})
}

// nextHandler advances to the next word under the navigation policy.
func (app *App) nextHandler(c *gin.Context) {
	app.handleEvent(c, (*Session).nextWord)
}

// previousHandler steps back one word.
func (app *App) previousHandler(c *gin.Context) {
	app.handleEvent(c, (*Session).previousWord)
}

// summaryHandler toggles between the practice and summary views.
func (app *App) summaryHandler(c *gin.Context) {
	app.handleEvent(c, (*Session).toggleSummary)
}

// jumpHandler re-enters practice at the given word's position.
func (app *App) jumpHandler(c *gin.Context) {
	word := strings.TrimSpace(c.PostForm("word"))
	app.handleEvent(c, func(s *Session) error {
		return s.jumpToWord(word)
	})
}

// resetHandler clears all statuses and returns to the first word.
func (app *App) resetHandler(c *gin.Context) {
	app.handleEvent(c, (*Session).resetProgress)
}

// reloadHandler refetches the word list and restores whatever progress is
// stored for it. A failed fetch answers with an upstream error code so
// clients can tell without parsing the payload.
func (app *App) reloadHandler(c *gin.Context) {
	app.loadSession(c.Request.Context())
	s := app.snapshotSession()
	code := http.StatusOK
	if s.State == StateError {
		code = http.StatusBadGateway
	}
	c.JSON(code, sessionView(s))
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	s := app.snapshotSession()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"env":          map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"state":        s.State,
		"words_loaded": len(s.Words),
		"uptime":       formatUptime(time.Since(app.StartTime)),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
