package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/awoyaledolapo/clytix-1/internal/config"
	"github.com/awoyaledolapo/clytix-1/internal/repository/memory"
	"github.com/awoyaledolapo/clytix-1/internal/tickets"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Env:           "dev",
		Origin:        "http://localhost:3000",
		SessionSecret: "test-secret",
	}
	h := New(zerolog.Nop(), Deps{
		Tickets: memory.NewTicketStore(),
		Users:   memory.NewUserStore(),
	}, cfg)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// do sends a JSON request with the given session cookie and decodes the
// response into out (when out is non-nil).
func do(t *testing.T, srv *httptest.Server, method, path, cookie string, body, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp
}

// signUp registers and logs in a user, returning the session cookie.
func signUp(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	resp := do(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "name": "Test User", "password": "hunter22",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "hunter22",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("login did not set a session cookie")
	return ""
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/api/session", "/api/dashboard", "/api/auth/me"} {
		resp := do(t, srv, http.MethodGet, path, "", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without identity: status %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestTicketLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	cookie := signUp(t, srv, "ada@example.com")

	var state tickets.State
	resp := do(t, srv, http.MethodGet, "/api/session", cookie, nil, &state)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session: status %d", resp.StatusCode)
	}
	if state.ListState != tickets.ListLoaded || len(state.Tickets) != 0 {
		t.Fatalf("initial state = %+v", state)
	}

	// Open the form, fill the draft, submit.
	do(t, srv, http.MethodPost, "/api/session/form/new", cookie, nil, &state)
	if state.Form.Mode != tickets.FormCreating {
		t.Fatalf("form mode = %q", state.Form.Mode)
	}
	do(t, srv, http.MethodPut, "/api/session/draft", cookie, map[string]string{
		"title": "Fix login bug", "status": "open", "priority": "high",
	}, &state)
	do(t, srv, http.MethodPost, "/api/session/submit", cookie, nil, &state)

	if state.Form.Mode != tickets.FormHidden {
		t.Errorf("form mode after submit = %q", state.Form.Mode)
	}
	if len(state.Tickets) != 1 || state.Tickets[0].Title != "Fix login bug" {
		t.Fatalf("tickets = %+v", state.Tickets)
	}
	id := state.Tickets[0].ID

	// Dashboard reflects the collection.
	var counts struct {
		Total int `json:"total"`
		Open  int `json:"open"`
	}
	do(t, srv, http.MethodGet, "/api/dashboard", cookie, nil, &counts)
	if counts.Total != 1 || counts.Open != 1 {
		t.Errorf("dashboard = %+v", counts)
	}

	// Two-phase delete.
	do(t, srv, http.MethodPost, "/api/session/delete/"+id, cookie, nil, &state)
	if state.PendingDelete == nil || state.PendingDelete.TicketID != id {
		t.Fatalf("pending delete = %+v", state.PendingDelete)
	}
	// Reset the decode target: pending_delete is omitted from the JSON
	// when nil, and json.Decode leaves absent fields untouched, so a
	// reused struct would keep the stale pointer from the previous call.
	state = tickets.State{}
	do(t, srv, http.MethodPost, "/api/session/delete/confirm", cookie, nil, &state)
	if state.PendingDelete != nil || len(state.Tickets) != 0 {
		t.Errorf("after confirm: pending=%+v tickets=%+v", state.PendingDelete, state.Tickets)
	}
}

func TestInvalidSubmitReturnsFieldErrors(t *testing.T) {
	srv := newTestServer(t)
	cookie := signUp(t, srv, "bob@example.com")

	var state tickets.State
	do(t, srv, http.MethodGet, "/api/session", cookie, nil, &state)
	do(t, srv, http.MethodPost, "/api/session/form/new", cookie, nil, &state)
	do(t, srv, http.MethodPut, "/api/session/draft", cookie, map[string]string{
		"title": "   ", "status": "open",
	}, &state)
	do(t, srv, http.MethodPost, "/api/session/submit", cookie, nil, &state)

	if state.Form.Mode != tickets.FormCreating {
		t.Errorf("form mode = %q, want creating", state.Form.Mode)
	}
	if state.Errors["title"] == "" {
		t.Errorf("missing title error: %v", state.Errors)
	}
	if len(state.Tickets) != 0 {
		t.Errorf("invalid draft persisted: %+v", state.Tickets)
	}
}

func TestSessionsAreIsolatedPerOwner(t *testing.T) {
	srv := newTestServer(t)
	ada := signUp(t, srv, "ada@example.com")
	bob := signUp(t, srv, "bob@example.com")

	var state tickets.State
	do(t, srv, http.MethodGet, "/api/session", ada, nil, &state)
	do(t, srv, http.MethodPost, "/api/session/form/new", ada, nil, &state)
	do(t, srv, http.MethodPut, "/api/session/draft", ada, map[string]string{
		"title": "Ada's ticket", "status": "open",
	}, &state)
	do(t, srv, http.MethodPost, "/api/session/submit", ada, nil, &state)
	if len(state.Tickets) != 1 {
		t.Fatalf("ada's tickets = %+v", state.Tickets)
	}

	do(t, srv, http.MethodGet, "/api/session", bob, nil, &state)
	if len(state.Tickets) != 0 {
		t.Errorf("bob sees ada's tickets: %+v", state.Tickets)
	}
}

func TestLogoutEvictsSession(t *testing.T) {
	srv := newTestServer(t)
	cookie := signUp(t, srv, "ada@example.com")

	var state tickets.State
	do(t, srv, http.MethodGet, "/api/session", cookie, nil, &state)

	resp := do(t, srv, http.MethodPost, "/api/auth/logout", cookie, nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}

	// The old token is still cryptographically valid until expiry; a
	// fresh session controller is handed out for it, starting from the
	// loading state again.
	do(t, srv, http.MethodGet, "/api/session", cookie, nil, &state)
	if state.ListState != tickets.ListLoaded {
		t.Errorf("state after re-entry = %q", state.ListState)
	}
}
