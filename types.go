package main

// contextKey is the type for values stored in a request context.
type contextKey string

// ProgressRecord is the persisted progress for one word list: every word's
// status plus the position the learner was last looking at.
type ProgressRecord struct {
	Statuses map[string]string `json:"statuses"`
	Index    int               `json:"index"`
}

// Session is the full in-memory state of the trainer. Words and Key are
// immutable after a load; a reload replaces the whole Session value.
type Session struct {
	State     string            `json:"state"`
	Words     []string          `json:"words"`
	Key       string            `json:"key"`
	Statuses  map[string]string `json:"statuses"`
	Index     int               `json:"index"`
	LoadError string            `json:"loadError,omitempty"`
}

// SummaryEntry is one row of the summary view, in list order.
type SummaryEntry struct {
	Word   string `json:"word"`
	Status string `json:"status"`
}
