package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"
)

// App holds the configuration and the single trainer session.
type App struct {
	WordListURL    string
	DataDir        string
	RateLimitRPS   int
	RateLimitBurst int
	IsProduction   bool
	StartTime      time.Time

	Client *http.Client

	Session      *Session
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
}

// newApp builds an App from the environment.
func newApp() *App {
	return &App{
		WordListURL:    getEnvStr("WORD_LIST_URL", ""),
		DataDir:        getEnvStr("DATA_DIR", "data"),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		StartTime:      time.Now(),
		Client: &http.Client{
			Timeout: getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		},
		Session:    &Session{State: StateLoading},
		LimiterMap: make(map[string]*rate.Limiter),
	}
}

func main() {
	_ = godotenv.Load()

	app := newApp()
	logInfo("Starting Vorttrejnilo in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	if app.WordListURL == "" {
		logFatal("WORD_LIST_URL is not set")
	}

	app.loadSession(context.Background())
	s := app.snapshotSession()
	if s.State == StateError {
		logWarn("Initial load failed (%s), waiting for reload", s.LoadError)
	} else {
		logInfo("Practicing %d words under key %s", len(s.Words), s.Key)
	}

	startServer(app.setupRouter())
}

// setupRouter wires middleware and routes. Session endpoints are served with
// no-store cache headers so a client never renders stale trainer state.
func (app *App) setupRouter() *gin.Engine {
	if app.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))
	router.Use(requestIDMiddleware())

	router.GET(RouteHome, app.homeHandler)
	router.POST(RouteMark, app.rateLimitMiddleware(), app.markHandler)
	router.POST(RouteNext, app.rateLimitMiddleware(), app.nextHandler)
	router.POST(RoutePrevious, app.rateLimitMiddleware(), app.previousHandler)
	router.POST(RouteSummary, app.rateLimitMiddleware(), app.summaryHandler)
	router.POST(RouteJump, app.rateLimitMiddleware(), app.jumpHandler)
	router.POST(RouteReset, app.rateLimitMiddleware(), app.resetHandler)
	router.POST(RouteReload, app.rateLimitMiddleware(), app.reloadHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

// startServer runs the HTTP server with graceful shutdown.
func startServer(router *gin.Engine) {
	port := getEnvStr("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
