package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/authstub"
	"github.com/pawconnect/platform/internal/core/service"
	"github.com/pawconnect/platform/internal/infrastructure/authapi"
	"github.com/pawconnect/platform/internal/infrastructure/storage"
)

// testApp wires the full stack: stub Auth API → client → file-backed store →
// session manager → router.
type testApp struct {
	srv      *httptest.Server
	http     *http.Client
	repo     *authstub.MemoryRepository
	sessions *service.SessionManager
	store    *storage.FileStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	repo := authstub.NewMemoryRepository()
	stub := httptest.NewServer(authstub.NewServer(repo, "test-secret", time.Hour))
	t.Cleanup(stub.Close)

	store := storage.NewFileStore(filepath.Join(t.TempDir(), "session.json"), zerolog.Nop())
	client := authapi.NewClient(stub.URL+"/api", zerolog.Nop())

	sessions, err := service.NewSessionManager(store, client, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	sessions.Init(context.Background())

	srv := httptest.NewServer(NewRouter(sessions, nil, zerolog.Nop()))
	t.Cleanup(srv.Close)

	return &testApp{
		srv: srv,
		http: &http.Client{
			// Redirects are the behaviour under test; don't follow them.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		repo:     repo,
		sessions: sessions,
		store:    store,
	}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	res, err := a.http.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	res.Body.Close()
	return res
}

func (a *testApp) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	res, err := a.http.Post(a.srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	res.Body.Close()
	return res
}

// loginAsNGOAdmin registers an ngo_admin account, marks it verified the way
// a platform administrator would, and logs in through the router.
func (a *testApp) loginAsNGOAdmin(t *testing.T) {
	t.Helper()

	res := a.post(t, "/register", `{"email":"admin@pawconnect.org.np","password":"secret123","name":"NGO Admin","role":"ngo_admin","organization":"Kathmandu Animal Rescue"}`)
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("register: expected 202 pending verification, got %d", res.StatusCode)
	}

	account, err := a.repo.FindByEmail(context.Background(), "admin@pawconnect.org.np")
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	account.Verified = true
	if _, err := a.repo.Update(context.Background(), account); err != nil {
		t.Fatalf("verify account: %v", err)
	}

	loginRes, err := a.http.Post(a.srv.URL+"/login", "application/json",
		strings.NewReader(`{"email":"admin@pawconnect.org.np","password":"secret123"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer loginRes.Body.Close()
	if loginRes.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", loginRes.StatusCode)
	}

	var payload struct {
		Redirect string `json:"redirect"`
	}
	if err := json.NewDecoder(loginRes.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if payload.Redirect != "/dashboard" {
		t.Fatalf("expected /dashboard landing, got %q", payload.Redirect)
	}
}

func TestRouter_PublicEntryUnauthenticated(t *testing.T) {
	app := newTestApp(t)

	if res := app.get(t, "/"); res.StatusCode != http.StatusOK {
		t.Fatalf("public landing should render, got %d", res.StatusCode)
	}
	if res := app.get(t, "/dashboard"); res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/login" {
		t.Fatalf("guarded section should bounce to /login, got %d %s", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestRouter_NGOAdminScenario(t *testing.T) {
	app := newTestApp(t)
	app.loginAsNGOAdmin(t)

	// The landing entry now bounces to the role's landing path.
	if res := app.get(t, "/"); res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/dashboard" {
		t.Fatalf("entry redirect: got %d %s", res.StatusCode, res.Header.Get("Location"))
	}

	// Admitted by the coarse admin guard.
	if res := app.get(t, "/dashboard"); res.StatusCode != http.StatusOK {
		t.Fatalf("/dashboard should admit ngo_admin, got %d", res.StatusCode)
	}

	// Rejected by the narrower inner guard, toward their own landing path.
	if res := app.get(t, "/dashboard/system"); res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/dashboard" {
		t.Fatalf("/dashboard/system should bounce ngo_admin to /dashboard, got %d %s", res.StatusCode, res.Header.Get("Location"))
	}

	// Rejected by a different role's section, again toward /dashboard.
	if res := app.get(t, "/volunteer"); res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/dashboard" {
		t.Fatalf("/volunteer should bounce ngo_admin to /dashboard, got %d %s", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestRouter_SessionSurvivesRestart(t *testing.T) {
	app := newTestApp(t)
	app.loginAsNGOAdmin(t)

	// A new manager over the same store models an application restart.
	restarted, err := service.NewSessionManager(app.store, authapi.NewClient("http://localhost:1", zerolog.Nop()), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	restarted.Init(context.Background())

	state := restarted.Snapshot()
	if state.User == nil || state.User.Email != "admin@pawconnect.org.np" {
		t.Fatalf("session not restored after restart: %+v", state)
	}
}

func TestRouter_Logout(t *testing.T) {
	app := newTestApp(t)
	app.loginAsNGOAdmin(t)

	if res := app.post(t, "/logout", ""); res.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", res.StatusCode)
	}
	if res := app.get(t, "/dashboard"); res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/login" {
		t.Fatalf("after logout /dashboard should bounce to /login, got %d", res.StatusCode)
	}
	if res := app.get(t, "/"); res.StatusCode != http.StatusOK {
		t.Fatalf("after logout the landing page should render, got %d", res.StatusCode)
	}
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)

	if res := app.get(t, "/health"); res.StatusCode != http.StatusOK {
		t.Fatalf("liveness: got %d", res.StatusCode)
	}
	if res := app.get(t, "/health/ready"); res.StatusCode != http.StatusOK {
		t.Fatalf("readiness: got %d", res.StatusCode)
	}
	if res := app.get(t, "/metrics"); res.StatusCode != http.StatusOK {
		t.Fatalf("metrics: got %d", res.StatusCode)
	}
}
