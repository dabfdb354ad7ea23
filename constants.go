package main

// Word list configuration constants
const (
	MaxWords = 100 // Maximum number of words consumed from the source list
)

// Word status constants
const (
	StatusUnset     = "unset"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
	StatusSkipped   = "skipped"
)

// Session state constants
const (
	StateLoading     = "loading"
	StateError       = "error"
	StatePracticing  = "practicing"
	StateSummarizing = "summarizing"
)

// Route constants
const (
	RouteHome     = "/"
	RouteMark     = "/mark"
	RouteNext     = "/next"
	RoutePrevious = "/previous"
	RouteSummary  = "/summary"
	RouteJump     = "/jump"
	RouteReset    = "/reset"
	RouteReload   = "/reload"
	RouteHealthz  = "/healthz"
)

// Error message constants
const (
	ErrorUnknownStatus = "Unknown status."
	ErrorNotPracticing = "Not in practice view."
	ErrorWordNotFound  = "Word is not in the current list."
	ErrorNotReady      = "Word list is not loaded."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
