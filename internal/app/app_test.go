package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/acmlab/labsite/internal/config"
)

type fakeHTTPServer struct {
	listenErr      error
	listenStarted  chan struct{}
	shutdownCalled bool
	stopCh         chan struct{}
	mu             sync.Mutex
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenStarted != nil {
		close(f.listenStarted)
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.stopCh != nil {
		<-f.stopCh
		return http.ErrServerClosed
	}
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	f.mu.Unlock()
	if f.stopCh != nil {
		close(f.stopCh)
	}
	return nil
}

func (f *fakeHTTPServer) wasShutdownCalled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdownCalled
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Mode: mode,
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			SQLite: config.SQLiteConfig{Path: "file::memory:?cache=shared"},
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "text",
		},
		Auth: config.AuthConfig{
			JWTSecret:     "app-test-secret-app-test-secret-12345678",
			TokenExpiry:   "1h",
			AdminUsername: "admin",
			AdminPassword: "test-pass",
		},
		Cache:    config.CacheConfig{Enabled: true, TTL: "5m"},
		Realtime: config.RealtimeConfig{Enabled: true},
	}
}

func closeApp(t *testing.T, a *App) {
	t.Helper()
	if a == nil {
		return
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

func TestNew_RegistersExpectedRoutes(t *testing.T) {
	a, err := New(testConfig(gin.TestMode))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closeApp(t, a)

	if a.engine == nil || a.db == nil {
		t.Fatal("app missing engine or db")
	}

	routes := make(map[string]bool)
	for _, ri := range a.engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /ws",
		"POST /api/auth/login",
		"GET /api/team-members",
		"POST /api/team-members",
		"POST /api/team-members/reorder",
		"GET /api/innovation-projects",
		"POST /api/innovation-projects/reorder",
		"PUT /api/advisors/:id",
		"DELETE /api/announcements/:id",
		"GET /api/frontend/:collection",
		"GET /api/frontend/activities",
		"GET /api/research/categories",
		"GET /api/research/stats",
	} {
		if !routes[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}

func TestNew_WebsocketUsesResolvedCORSOrigins(t *testing.T) {
	// With no allowlist configured outside release mode, HTTP CORS resolves
	// to a permissive default. The websocket upgrade must accept the same
	// origins, so a cross-origin dial succeeds.
	a, err := New(testConfig(gin.TestMode))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closeApp(t, a)

	srv := httptest.NewServer(a.engine)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://elsewhere.example.com"}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("cross-origin dial = %v, want upgrade to succeed", err)
	}
	conn.Close()
}

func TestNew_ReturnsError_WhenConfigNil(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) error = nil, want error")
	}
}

func TestNew_ReturnsError_WhenDatabaseSetupFails(t *testing.T) {
	cfg := testConfig(gin.TestMode)
	cfg.Database.Driver = "unsupported"

	a, err := New(cfg)
	if err == nil {
		t.Fatal("New() error = nil, want error")
	}
	if a != nil {
		t.Fatalf("New() app = %#v, want nil", a)
	}
	if !strings.Contains(err.Error(), "setup database") {
		t.Fatalf("New() error = %q, want contains %q", err.Error(), "setup database")
	}
}

func TestNew_ReturnsError_WhenModeInvalid(t *testing.T) {
	cfg := testConfig("staging")
	if _, err := New(cfg); err == nil {
		t.Fatal("New() error = nil, want error")
	}
}

func TestResolveCORSConfig(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		configured  []string
		wantOrigins []string
	}{
		{
			name:        "debug mode uses permissive default when not configured",
			mode:        gin.DebugMode,
			wantOrigins: []string{"*"},
		},
		{
			name:        "release mode denies cross-origin when not configured",
			mode:        gin.ReleaseMode,
			wantOrigins: []string{},
		},
		{
			name:        "explicit allowlist wins in any mode",
			mode:        gin.ReleaseMode,
			configured:  []string{"https://admin.example.com"},
			wantOrigins: []string{"https://admin.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveCORSConfig(tt.mode, tt.configured)
			if len(got.AllowOrigins) != len(tt.wantOrigins) {
				t.Fatalf("AllowOrigins = %v, want %v", got.AllowOrigins, tt.wantOrigins)
			}
			for i := range tt.wantOrigins {
				if got.AllowOrigins[i] != tt.wantOrigins[i] {
					t.Fatalf("AllowOrigins[%d] = %q, want %q", i, got.AllowOrigins[i], tt.wantOrigins[i])
				}
			}
		})
	}
}

func TestValidateGinMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{name: "debug mode", mode: gin.DebugMode, wantErr: false},
		{name: "release mode", mode: gin.ReleaseMode, wantErr: false},
		{name: "test mode", mode: gin.TestMode, wantErr: false},
		{name: "invalid mode", mode: "staging", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGinMode(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateGinMode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_ShutsDownOnSignal(t *testing.T) {
	a, err := New(testConfig(gin.TestMode))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fake := &fakeHTTPServer{
		listenStarted: make(chan struct{}),
		stopCh:        make(chan struct{}),
	}
	origNewServer, origNotify := newHTTPServer, notifyContext
	defer func() { newHTTPServer, notifyContext = origNewServer, origNotify }()

	newHTTPServer = func(string, http.Handler) httpServer { return fake }

	ctx, cancel := context.WithCancel(context.Background())
	notifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, cancel
	}

	done := make(chan error, 1)
	go func() { done <- a.Run() }()

	<-fake.listenStarted
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after shutdown signal")
	}

	if !fake.wasShutdownCalled() {
		t.Error("Shutdown was not called")
	}
}

func TestRun_ReturnsServerError(t *testing.T) {
	a, err := New(testConfig(gin.TestMode))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	listenErr := errors.New("bind failed")
	fake := &fakeHTTPServer{listenErr: listenErr}

	origNewServer, origNotify := newHTTPServer, notifyContext
	defer func() { newHTTPServer, notifyContext = origNewServer, origNotify }()

	newHTTPServer = func(string, http.Handler) httpServer { return fake }
	notifyContext = func(parent context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		return context.WithCancel(parent)
	}

	err = a.Run()
	if err == nil || !strings.Contains(err.Error(), "bind failed") {
		t.Fatalf("Run() error = %v, want bind failure", err)
	}
}

func TestRun_NilReceiver(t *testing.T) {
	var a *App
	if err := a.Run(); err == nil {
		t.Fatal("Run() on nil app error = nil, want error")
	}
}
