package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/phonebook/internal/logging"
	"github.com/dmitrijs2005/phonebook/internal/server/config"
	"github.com/dmitrijs2005/phonebook/internal/server/store"
)

type testEnv struct {
	ts *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret", SessionTTL: time.Hour}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewServer(cfg, store.NewMemoryManager(), logger)

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts}
}

// newSession returns an HTTP client with its own cookie jar.
func (e *testEnv) newSession(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) request(t *testing.T, c *http.Client, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// bootstrap creates the first admin and returns a logged-in session.
func (e *testEnv) bootstrap(t *testing.T) *http.Client {
	t.Helper()

	anon := e.newSession(t)
	status, body := e.request(t, anon, http.MethodPost, "/api/users", map[string]any{
		"username": "root", "email": "root@example.com", "password": "rootpw", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, status, "bootstrap failed: %v", body)

	return e.login(t, "root", "rootpw")
}

func (e *testEnv) login(t *testing.T, username, password string) *http.Client {
	t.Helper()

	c := e.newSession(t)
	status, body := e.request(t, c, http.MethodPost, "/api/auth/login", map[string]any{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, status, "login failed: %v", body)
	return c
}

// createUser provisions an account through the admin session.
func (e *testEnv) createUser(t *testing.T, admin *http.Client, username, role string) {
	t.Helper()

	status, body := e.request(t, admin, http.MethodPost, "/api/users", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": username + "pw",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, status, "createUser failed: %v", body)
}

func TestBootstrapFirstAdmin(t *testing.T) {
	e := newTestEnv(t)
	anon := e.newSession(t)

	status, body := e.request(t, anon, http.MethodPost, "/api/users", map[string]any{
		"username": "root", "email": "root@example.com", "password": "pw", "role": "admin",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])

	// A second unauthenticated admin is refused.
	status, body = e.request(t, anon, http.MethodPost, "/api/users", map[string]any{
		"username": "root2", "email": "root2@example.com", "password": "pw", "role": "admin",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Admin access required to create admin users", body["error"])

	// Unauthenticated non-admin accounts are refused outright.
	status, body = e.request(t, anon, http.MethodPost, "/api/users", map[string]any{
		"username": "joe", "email": "joe@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Admin access required", body["error"])
}

func TestLoginFlow(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)

	t.Run("status reflects the session", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodGet, "/api/auth/status", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "root", user["username"])
		assert.Equal(t, "admin", user["role"])
	})

	t.Run("anonymous status", func(t *testing.T) {
		status, body := e.request(t, e.newSession(t), http.MethodGet, "/api/auth/status", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("wrong password", func(t *testing.T) {
		c := e.newSession(t)
		status, body := e.request(t, c, http.MethodPost, "/api/auth/login", map[string]any{
			"username": "root", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("unknown user", func(t *testing.T) {
		c := e.newSession(t)
		status, body := e.request(t, c, http.MethodPost, "/api/auth/login", map[string]any{
			"username": "ghost", "password": "pw",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("logout clears the session", func(t *testing.T) {
		c := e.login(t, "root", "rootpw")
		status, _ := e.request(t, c, http.MethodPost, "/api/auth/logout", nil)
		assert.Equal(t, http.StatusOK, status)

		status, body := e.request(t, c, http.MethodGet, "/api/auth/status", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["success"])
	})
}

func TestDisabledAccountCannotLogin(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)
	e.createUser(t, admin, "bob", "user")

	// Find bob's id via the users listing.
	_, body := e.request(t, admin, http.MethodGet, "/api/users", nil)
	bobID := findID(t, body["users"], "username", "bob")

	status, _ := e.request(t, admin, http.MethodPut, fmt.Sprintf("/api/users/%d", bobID), map[string]any{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, status)

	c := e.newSession(t)
	status, resp := e.request(t, c, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "bob", "password": "bobpw",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Account is disabled", resp["error"])
}

func findID(t *testing.T, list any, field, want string) int64 {
	t.Helper()
	for _, item := range list.([]any) {
		m := item.(map[string]any)
		if m[field] == want {
			return int64(m["id"].(float64))
		}
	}
	t.Fatalf("no item with %s=%q in %v", field, want, list)
	return 0
}

func TestContactsCRUDAndPagination(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)
	e.createUser(t, admin, "ed", "editor")
	e.createUser(t, admin, "joe", "user")
	editor := e.login(t, "ed", "edpw")
	viewer := e.login(t, "joe", "joepw")

	for i := 0; i < 25; i++ {
		status, body := e.request(t, editor, http.MethodPost, "/api/contacts", map[string]any{
			"first_name": fmt.Sprintf("First%02d", i),
			"last_name":  "Smith",
			"email":      fmt.Sprintf("first%02d@example.com", i),
		})
		require.Equal(t, http.StatusCreated, status, "create failed: %v", body)
	}

	t.Run("default page size caps the listing", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodGet, "/api/contacts", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, body["contacts"], 20)

		p := body["pagination"].(map[string]any)
		assert.Equal(t, float64(1), p["page"])
		assert.Equal(t, float64(20), p["per_page"])
		assert.Equal(t, float64(25), p["total"])
		assert.Equal(t, float64(2), p["pages"])
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodGet, "/api/contacts?page=2&per_page=20", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, body["contacts"], 5)
	})

	t.Run("per_page is capped", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodGet, "/api/contacts?per_page=1000", nil)
		require.Equal(t, http.StatusOK, status)
		p := body["pagination"].(map[string]any)
		assert.Equal(t, float64(100), p["per_page"])
	})

	t.Run("search filters by name", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodGet, "/api/contacts?search=first07", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, body["contacts"], 1)
		p := body["pagination"].(map[string]any)
		assert.Equal(t, float64(1), p["total"])
	})

	t.Run("plain users cannot create", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodPost, "/api/contacts", map[string]any{
			"first_name": "X", "last_name": "Y",
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Editor or admin access required", body["error"])
	})

	t.Run("plain users cannot update others' contacts", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodPut, "/api/contacts/1", map[string]any{
			"notes": "mine now",
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Permission denied", body["error"])
	})

	t.Run("editors update and delete", func(t *testing.T) {
		status, body := e.request(t, editor, http.MethodPut, "/api/contacts/1", map[string]any{
			"phone": "555-0101",
		})
		require.Equal(t, http.StatusOK, status)
		contact := body["contact"].(map[string]any)
		assert.Equal(t, "555-0101", contact["phone"])
		assert.Equal(t, "First00", contact["first_name"], "partial update keeps other fields")

		status, _ = e.request(t, editor, http.MethodDelete, "/api/contacts/1", nil)
		assert.Equal(t, http.StatusOK, status)

		status, _ = e.request(t, editor, http.MethodDelete, "/api/contacts/1", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("missing names rejected", func(t *testing.T) {
		status, body := e.request(t, editor, http.MethodPost, "/api/contacts", map[string]any{
			"first_name": "OnlyFirst",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "First name and last name required", body["error"])
	})

	t.Run("invalid company reference rejected", func(t *testing.T) {
		status, body := e.request(t, editor, http.MethodPost, "/api/contacts", map[string]any{
			"first_name": "A", "last_name": "B", "company_id": 999,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid company_id", body["error"])
	})

	t.Run("anonymous listing rejected", func(t *testing.T) {
		status, body := e.request(t, e.newSession(t), http.MethodGet, "/api/contacts", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Authentication required", body["error"])
	})
}

func TestContactCompanyJoin(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)

	status, body := e.request(t, admin, http.MethodPost, "/api/companies", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status, "company create failed: %v", body)
	companyID := int64(body["company"].(map[string]any)["id"].(float64))

	status, body = e.request(t, admin, http.MethodPost, "/api/contacts", map[string]any{
		"first_name": "Ann", "last_name": "Lee", "company_id": companyID,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = e.request(t, admin, http.MethodGet, "/api/contacts", nil)
	require.Equal(t, http.StatusOK, status)
	contact := body["contacts"].([]any)[0].(map[string]any)
	company := contact["company"].(map[string]any)
	assert.Equal(t, "Acme", company["name"])
}

func TestCompaniesRequireEditorForMutations(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)
	e.createUser(t, admin, "joe", "user")
	viewer := e.login(t, "joe", "joepw")

	status, body := e.request(t, viewer, http.MethodPost, "/api/companies", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Editor or admin access required", body["error"])

	status, body = e.request(t, viewer, http.MethodGet, "/api/companies", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = e.request(t, admin, http.MethodPost, "/api/companies", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name required", body["error"])
}

func TestNoticesLifecycle(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)
	e.createUser(t, admin, "joe", "user")
	viewer := e.login(t, "joe", "joepw")

	t.Run("priority defaults to normal", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodPost, "/api/notices", map[string]any{
			"title": "Welcome", "content": "hello",
		})
		require.Equal(t, http.StatusCreated, status)
		notice := body["notice"].(map[string]any)
		assert.Equal(t, "normal", notice["priority"])
		assert.Equal(t, true, notice["is_active"])
		creator := notice["created_by"].(map[string]any)
		assert.Equal(t, "root", creator["username"])
	})

	t.Run("unknown priority falls back to normal", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodPost, "/api/notices", map[string]any{
			"title": "Odd", "content": "x", "priority": "urgent!!",
		})
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "normal", body["notice"].(map[string]any)["priority"])
	})

	t.Run("toggle keeps inactive notices listed", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodPut, "/api/notices/1", map[string]any{
			"is_active": false,
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["notice"].(map[string]any)["is_active"])

		status, body = e.request(t, viewer, http.MethodGet, "/api/notices", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, body["notices"], 2)
	})

	t.Run("plain users cannot mutate", func(t *testing.T) {
		status, body := e.request(t, viewer, http.MethodPost, "/api/notices", map[string]any{
			"title": "t", "content": "c",
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Editor or admin access required", body["error"])

		status, _ = e.request(t, viewer, http.MethodDelete, "/api/notices/1", nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodPost, "/api/notices", map[string]any{
			"title": "no content",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Title and content required", body["error"])
	})
}

func TestUserAdministration(t *testing.T) {
	e := newTestEnv(t)
	admin := e.bootstrap(t)
	e.createUser(t, admin, "bob", "user")

	t.Run("listing is admin only", func(t *testing.T) {
		bob := e.login(t, "bob", "bobpw")
		status, body := e.request(t, bob, http.MethodGet, "/api/users", nil)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Admin access required", body["error"])
	})

	t.Run("duplicate identity rejected", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodPost, "/api/users", map[string]any{
			"username": "bob", "email": "other@example.com", "password": "pw",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Username already exists", body["error"])

		status, body = e.request(t, admin, http.MethodPost, "/api/users", map[string]any{
			"username": "bob2", "email": "bob@example.com", "password": "pw",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Email already exists", body["error"])
	})

	t.Run("password kept when blank on update", func(t *testing.T) {
		_, body := e.request(t, admin, http.MethodGet, "/api/users", nil)
		bobID := findID(t, body["users"], "username", "bob")

		status, _ := e.request(t, admin, http.MethodPut, fmt.Sprintf("/api/users/%d", bobID), map[string]any{
			"email": "bob-new@example.com", "password": "",
		})
		require.Equal(t, http.StatusOK, status)

		// Old password still valid.
		e.login(t, "bob", "bobpw")
	})

	t.Run("role changes take effect", func(t *testing.T) {
		_, body := e.request(t, admin, http.MethodGet, "/api/users", nil)
		bobID := findID(t, body["users"], "username", "bob")

		status, _ := e.request(t, admin, http.MethodPut, fmt.Sprintf("/api/users/%d", bobID), map[string]any{
			"role": "editor",
		})
		require.Equal(t, http.StatusOK, status)

		bob := e.login(t, "bob", "bobpw")
		status, _ = e.request(t, bob, http.MethodPost, "/api/contacts", map[string]any{
			"first_name": "A", "last_name": "B",
		})
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		status, body := e.request(t, admin, http.MethodPost, "/api/users", map[string]any{
			"username": "x", "email": "x@example.com", "password": "pw", "role": "superuser",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid role", body["error"])
	})

	t.Run("self delete refused", func(t *testing.T) {
		_, body := e.request(t, admin, http.MethodGet, "/api/users", nil)
		rootID := findID(t, body["users"], "username", "root")

		status, resp := e.request(t, admin, http.MethodDelete, fmt.Sprintf("/api/users/%d", rootID), nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Cannot delete your own account", resp["error"])
	})

	t.Run("delete another user", func(t *testing.T) {
		_, body := e.request(t, admin, http.MethodGet, "/api/users", nil)
		bobID := findID(t, body["users"], "username", "bob")

		status, resp := e.request(t, admin, http.MethodDelete, fmt.Sprintf("/api/users/%d", bobID), nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "User deleted", resp["message"])

		status, _ = e.request(t, admin, http.MethodDelete, fmt.Sprintf("/api/users/%d", bobID), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
