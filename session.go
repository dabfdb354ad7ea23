package main

import (
	"context"
	"maps"
)

// cloneSession copies a session for use outside the lock. Words and Key are
// immutable after load, so only the statuses map needs its own copy;
// rendering must never touch the live map a later event may be writing.
func cloneSession(s *Session) Session {
	out := *s
	out.Statuses = maps.Clone(s.Statuses)
	return out
}

// swapSession replaces the whole session value. A reload supersedes whatever
// was there before; last load wins.
func (app *App) swapSession(s *Session) {
	app.SessionMutex.Lock()
	app.Session = s
	app.SessionMutex.Unlock()
}

// snapshotSession returns an isolated copy of the current session for
// rendering.
func (app *App) snapshotSession() Session {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return cloneSession(app.Session)
}

// mutateSession runs one user event against the session under the write
// lock. Mutations never run concurrently; the lock is what serializes the
// event stream. A successful event persists the full record best-effort.
// The returned copy is isolated like a snapshot.
func (app *App) mutateSession(fn func(*Session) error) (Session, error) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	s := app.Session
	if err := fn(s); err != nil {
		return cloneSession(s), err
	}
	app.persistSession(s)
	return cloneSession(s), nil
}

// loadSession runs the load event: the session sits in the loading state
// while the fetch is in flight (mutations are rejected meanwhile), then the
// result swaps in either a practicing session with restored progress or the
// error session. The restored record is persisted before the session is
// published, so no handler can mutate it mid-write.
func (app *App) loadSession(ctx context.Context) {
	app.swapSession(&Session{State: StateLoading})

	words, err := app.loadWordList(ctx)
	if err != nil {
		logWarn("Word list load failed: %v", err)
		app.swapSession(errorSession(err))
		return
	}

	key := listKey(words)
	stored, found := loadProgressFromFile(app.DataDir, key)
	if found {
		logInfo("Restored progress for key %s (index %d)", key, stored.Index)
	} else {
		logInfo("No stored progress for key %s, starting fresh", key)
	}

	s := newSession(words, key, restoreProgress(words, stored))
	app.persistSession(s)
	app.swapSession(s)
}
