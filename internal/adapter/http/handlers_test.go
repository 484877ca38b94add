package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	adapthttp "gamelibrary/internal/adapter/http"
	"gamelibrary/internal/adapter/memory"
	"gamelibrary/internal/app"
	"gamelibrary/internal/domain"
)

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

func newServices(repo domain.Repository) adapthttp.Services {
	return adapthttp.Services{
		Browse:   app.NewBrowseService(repo),
		Genres:   app.NewGenreService(repo),
		Reviews:  app.NewReviewService(repo),
		Wishlist: app.NewWishlistService(repo),
		Profiles: app.NewProfileService(repo),
		Auth:     app.NewAuthService(repo, "test-secret"),
	}
}

// newTestServer serves a catalog of 30 games; the even ones are Indie.
func newTestServer(t *testing.T, opts ...adapthttp.Option) (*httptest.Server, *memory.DB) {
	t.Helper()

	repo := memory.New()
	ctx := context.Background()
	for i := 1; i <= 30; i++ {
		g := domain.NewGame(i, fmt.Sprintf("Test Game %02d", i))
		g.AddGenre(domain.Genre{Name: "Action"})
		if i%2 == 0 {
			g.AddGenre(domain.Genre{Name: "Indie"})
		}
		if err := repo.AddGame(ctx, g); err != nil {
			t.Fatal(err)
		}
	}
	_ = repo.AddMultipleGenres(ctx, []domain.Genre{{Name: "Action"}, {Name: "Indie"}})

	srv := adapthttp.New(newServices(repo), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func do(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// login registers a user and returns a bearer token.
func login(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "Password1"}

	resp := do(t, http.MethodPost, ts.URL+"/api/auth/register", "", creds)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", "", creds)
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	token, _ := decodeBody(t, resp)["token"].(string)
	if token == "" {
		t.Fatal("login: missing token")
	}
	return token
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Cache-Control") != "no-store" {
		t.Errorf("expected no-store, got %q", resp.Header.Get("Cache-Control"))
	}

	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestConfigEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/config", "", nil)
	defer resp.Body.Close() //nolint:errcheck

	body := decodeBody(t, resp)
	if body["sso_enabled"] != false || body["gamesPerPage"] != float64(21) {
		t.Fatalf("unexpected config %v", body)
	}
}

func TestGamesPagination(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		query     string
		wantItems int
		wantPage  float64
	}{
		{"", 21, 1},
		{"?page=2", 9, 2},
		{"?page=0", 21, 1},
		{"?page=abc", 21, 1},
		{"?page=3", 0, 3},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.URL+"/api/games"+tc.query, "", nil)
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			body := decodeBody(t, resp)
			items, ok := body["items"].([]any)
			if !ok {
				t.Fatal("response missing 'items' array")
			}
			if len(items) != tc.wantItems {
				t.Fatalf("expected %d items, got %d", tc.wantItems, len(items))
			}
			meta := body["meta"].(map[string]any)
			if meta["currentPage"] != tc.wantPage || meta["totalItems"] != float64(30) {
				t.Errorf("unexpected meta %v", meta)
			}
		})
	}
}

func TestGameDetail(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/games/3", http.StatusOK},
		{"/api/games/999", http.StatusNotFound},
		{"/api/games/abc", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.URL+tc.path, "", nil)
			defer resp.Body.Close() //nolint:errcheck
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}
			if tc.wantStatus == http.StatusOK {
				body := decodeBody(t, resp)
				game := body["game"].(map[string]any)
				if game["title"] != "Test Game 03" {
					t.Errorf("unexpected game %v", game)
				}
				if _, ok := body["inWishlist"]; ok {
					t.Error("anonymous request should not report wishlist membership")
				}
			}
		})
	}
}

func TestSearchAndGenres(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/search?query=game%2007", "", nil)
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	games := body["games"].([]any)
	if len(games) == 0 || games[0].(map[string]any)["title"] != "Test Game 07" {
		t.Fatalf("expected Test Game 07 first, got %v", games)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/search?query=", "", nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if games := body["games"].([]any); len(games) != 0 {
		t.Fatalf("expected no results for empty query, got %d", len(games))
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/genres", "", nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if genres := body["genres"].([]any); len(genres) != 2 {
		t.Fatalf("expected 2 genres, got %v", genres)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/genres/Indie", "", nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if items := body["items"].([]any); len(items) != 15 {
		t.Fatalf("expected 15 Indie games, got %d", len(items))
	}
}

func TestAuthFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	creds := map[string]string{"username": "thorke", "password": "Password1"}

	resp := do(t, http.MethodPost, ts.URL+"/api/auth/register", "", creds)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/register", "", creds)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{"username": "fmercury", "password": "weak"})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{"username": "thorke", "password": "nope"})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", "", creds)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	if session == nil || !session.HttpOnly || session.Value == "" {
		t.Fatalf("expected HttpOnly session cookie, got %+v", session)
	}

	// The cookie authenticates requests
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/wishlist", nil)
	req.AddCookie(session)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with session cookie, got %d", resp.StatusCode)
	}

	// Logout revokes the token
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/api/auth/logout", nil)
	req.AddCookie(session)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close() //nolint:errcheck

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/wishlist", nil)
	req.AddCookie(session)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestReviews(t *testing.T) {
	ts, _ := newTestServer(t)
	token := login(t, ts, "thorke")

	tests := []struct {
		name       string
		token      string
		path       string
		payload    map[string]any
		wantStatus int
	}{
		{"anonymous", "", "/api/games/3/reviews", map[string]any{"rating": 4, "comment": "Nice game"}, http.StatusUnauthorized},
		{"valid", token, "/api/games/3/reviews", map[string]any{"rating": 4, "comment": "Nice game"}, http.StatusCreated},
		{"bad rating", token, "/api/games/3/reviews", map[string]any{"rating": 9, "comment": "Nice game"}, http.StatusBadRequest},
		{"short comment", token, "/api/games/3/reviews", map[string]any{"rating": 3, "comment": "ok"}, http.StatusBadRequest},
		{"unknown field", token, "/api/games/3/reviews", map[string]any{"rating": 3, "comment": "Nice game", "extra": 1}, http.StatusBadRequest},
		{"unknown game", token, "/api/games/999/reviews", map[string]any{"rating": 3, "comment": "Nice game"}, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tc.path, tc.token, tc.payload)
			defer resp.Body.Close() //nolint:errcheck
			if resp.StatusCode != tc.wantStatus {
				body := decodeBody(t, resp)
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, resp.StatusCode, body)
			}
		})
	}

	resp := do(t, http.MethodGet, ts.URL+"/api/games/3", "", nil)
	defer resp.Body.Close() //nolint:errcheck
	body := decodeBody(t, resp)
	reviews := body["reviews"].([]any)
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	if r := reviews[0].(map[string]any); r["username"] != "thorke" || r["rating"] != float64(4) {
		t.Errorf("unexpected review %v", r)
	}
	if body["averageRating"] != float64(4) {
		t.Errorf("expected average 4, got %v", body["averageRating"])
	}
}

func TestWishlistAndProfile(t *testing.T) {
	ts, _ := newTestServer(t)
	token := login(t, ts, "fmercury")

	for _, id := range []int{5, 6, 5} {
		resp := do(t, http.MethodPost, fmt.Sprintf("%s/api/wishlist/%d", ts.URL, id), token, nil)
		resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add %d: expected 200, got %d", id, resp.StatusCode)
		}
	}

	resp := do(t, http.MethodGet, ts.URL+"/api/games/5", token, nil)
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if body["inWishlist"] != true {
		t.Errorf("expected inWishlist=true, got %v", body["inWishlist"])
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/wishlist/5", token, nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if body["count"] != float64(1) {
		t.Fatalf("expected count 1 after delete, got %v", body["count"])
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/wishlist/999", token, nil)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/wishlist", token, nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if items := body["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 wishlist item, got %d", len(items))
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/profile/fmercury", "", nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if body["wishlistCount"] != float64(1) || body["username"] != "fmercury" {
		t.Fatalf("unexpected profile %v", body)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/profile/nobody", "", nil)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown profile, got %d", resp.StatusCode)
	}
}

func TestSSODisabled(t *testing.T) {
	ts, _ := newTestServer(t)
	for _, path := range []string{"/api/auth/sso/login", "/api/auth/sso/callback"} {
		resp := do(t, http.MethodGet, ts.URL+path, "", nil)
		resp.Body.Close() //nolint:errcheck
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := do(t, http.MethodPut, ts.URL+"/api/games", "", nil)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

type countingScoper struct {
	begun, ended int
	failBegin    bool
}

type scopeMarker struct{}

func (c *countingScoper) BeginRequestScope(ctx context.Context) (context.Context, error) {
	if c.failBegin {
		return ctx, fmt.Errorf("no connection")
	}
	c.begun++
	return context.WithValue(ctx, scopeMarker{}, true), nil
}

func (c *countingScoper) EndRequestScope(ctx context.Context) error {
	if ctx.Value(scopeMarker{}) != true {
		return fmt.Errorf("unscoped context")
	}
	c.ended++
	return nil
}

func TestRequestScope(t *testing.T) {
	scoper := &countingScoper{}
	h := adapthttp.New(newServices(memory.New()), adapthttp.WithRequestScope(scoper)).Handler()

	// ServeHTTP directly so the deferred release has run when it returns.
	for _, path := range []string{"/api/games", "/api/games/999", "/api/games/abc"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}
	if scoper.begun != 3 || scoper.ended != 3 {
		t.Fatalf("expected 3 scopes begun and ended, got %d/%d", scoper.begun, scoper.ended)
	}

	failing := &countingScoper{failBegin: true}
	h = adapthttp.New(newServices(memory.New()), adapthttp.WithRequestScope(failing)).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
