package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hospital/hospital/internal/platform/auth"
)

func setupHandler(t *testing.T) (*echo.Echo, *Handler, *mockRepo, *mockTokens) {
	t.Helper()
	repo := newMockRepo()
	tokens := newMockTokens()
	h := NewHandler(NewService(repo, tokens))
	return echo.New(), h, repo, tokens
}

func doJSON(e *echo.Echo, method, target, body string, ident *auth.Identity, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if ident != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *ident))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestLoginHandler_Success(t *testing.T) {
	e, h, repo, _ := setupHandler(t)
	u := seedUser(t, repo, "alice", "s3cret-pass", auth.RolePatient)

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"s3cret-pass"}`, nil, h.Login)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token in response")
	}
	if resp.UserID != u.ID || resp.Role != auth.RolePatient {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	e, h, repo, _ := setupHandler(t)
	seedUser(t, repo, "alice", "s3cret-pass", auth.RolePatient)

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"nope"}`, nil, h.Login)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLogoutHandler(t *testing.T) {
	e, h, repo, tokens := setupHandler(t)
	u := seedUser(t, repo, "alice", "s3cret-pass", auth.RolePatient)
	tok, err := tokens.Issue(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token "+tok.Key)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Logout(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if _, err := tokens.Introspect(context.Background(), tok.Key); err != auth.ErrInvalidToken {
		t.Error("token still valid after logout")
	}
}

func TestLogoutHandler_MissingHeader(t *testing.T) {
	e, h, _, _ := setupHandler(t)
	rec := doJSON(e, http.MethodPost, "/api/auth/logout", "", nil, h.Logout)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestProfileHandler(t *testing.T) {
	e, h, repo, _ := setupHandler(t)
	u := seedUser(t, repo, "alice", "s3cret-pass", auth.RolePatient)
	ident := auth.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}

	rec := doJSON(e, http.MethodGet, "/api/users/profile", "", &ident, h.GetProfile)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("password hash leaked in profile response")
	}

	var got User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("username = %s, want alice", got.Username)
	}
}

func TestProfileHandler_Anonymous(t *testing.T) {
	e, h, _, _ := setupHandler(t)
	rec := doJSON(e, http.MethodGet, "/api/users/profile", "", nil, h.GetProfile)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	e, h, repo, _ := setupHandler(t)
	u := seedUser(t, repo, "alice", "s3cret-pass", auth.RolePatient)
	ident := auth.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}

	rec := doJSON(e, http.MethodPut, "/api/users/profile",
		`{"first_name":"Alice","last_name":"Smith"}`, &ident, h.UpdateProfile)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if repo.users[u.ID].FirstName != "Alice" || repo.users[u.ID].LastName != "Smith" {
		t.Errorf("profile not persisted: %+v", repo.users[u.ID])
	}
}

func TestListDoctorsHandler_Paginated(t *testing.T) {
	e, h, repo, _ := setupHandler(t)
	seedUser(t, repo, "drjones", "s3cret-pass", auth.RoleDoctor)
	ident := auth.Identity{Role: auth.RolePatient}

	rec := doJSON(e, http.MethodGet, "/api/users/doctors", "", &ident, h.ListDoctors)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count   int             `json:"count"`
		Results []DoctorSummary `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
}
