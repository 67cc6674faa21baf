package handler

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"gamevault/backend/internal/cache"
	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/hub"
	"gamevault/backend/internal/library"
	"gamevault/backend/internal/logging"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"
	"gamevault/backend/internal/testhelper"
	"gamevault/backend/pkg/jwt"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	hub    *hub.Hub
	games  []models.Game
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelper.NewTestDB(t)
	games := testhelper.Seed(t, db, testhelper.SampleGames())
	repo := repository.New(db)
	h := hub.NewHub(logging.Discard())
	svc := service.NewGameService(repo, cache.NewMemoryStore(time.Minute), h, logging.Discard())
	syncer := library.NewSyncer(repo, h, library.Options{OnChange: svc.Invalidate}, logging.Discard())

	router := NewRouter(RouterDeps{
		Games:     svc,
		Lookups:   svc,
		Syncer:    syncer,
		Hub:       h,
		Checks:    map[string]Checker{"database": func(context.Context) error { return nil }},
		Logger:    logging.Discard(),
		JWTSecret: testSecret,
	})
	return testServer{router: router, hub: h, games: games}
}

func (s testServer) do(t *testing.T, method, path string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestListGamesShape(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/games", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	raw := decode[[]map[string]any](t, w)
	if len(raw) != 3 || raw[0]["title"] != "Age of Tactics" {
		t.Fatalf("unexpected list %v", raw)
	}
	blast := raw[1]
	if blast["platform"] != nil || blast["myRating"] != nil || blast["gameStats"] != nil {
		t.Fatalf("absent fields must be null: %v", blast)
	}
	if artworks, ok := blast["artworks"].([]any); !ok || len(artworks) != 0 {
		t.Fatalf("associations must be arrays, got %v", blast["artworks"])
	}
	genres := blast["genres"].([]any)
	genre := genres[0].(map[string]any)
	if genre["name"] != "Action" || genre["id"] == nil {
		t.Fatalf("unexpected association object %v", genre)
	}
	if _, err := time.Parse(time.RFC3339, raw[2]["releaseDate"].(string)); err != nil {
		t.Fatalf("releaseDate is not ISO-8601: %v", err)
	}
	if raw[2]["displayScore"] != "8/10 (Personnel)" {
		t.Fatalf("unexpected display score %v", raw[2]["displayScore"])
	}
}

func TestGetGame(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/games/"+itoa(s.games[0].ID), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decode[GameResponse](t, w); got.GameID != "100" || len(got.Genres) != 2 {
		t.Fatalf("unexpected game %+v", got)
	}

	for _, path := range []string{"/api/v1/games/999", "/api/v1/games/abc", "/api/v1/games/external/nope"} {
		w = s.do(t, http.MethodGet, path, nil, nil)
		if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "Game not found") {
			t.Fatalf("%s: expected 404, got %d %s", path, w.Code, w.Body.String())
		}
	}

	w = s.do(t, http.MethodGet, "/api/v1/games/external/200", nil, nil)
	if got := decode[GameResponse](t, w); got.Title != "Age of Tactics" {
		t.Fatalf("unexpected game %+v", got)
	}
}

func TestSearchGames(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		query string
		want  []string
	}{
		{"genre=rpg", []string{"Zelda Like"}},
		{"minScore=60&maxScore=80", []string{"Age of Tactics"}},
		{"minScore=abc&hasRating=maybe", []string{"Age of Tactics", "Blast Arena", "Zelda Like"}},
		{"minScore=NaN", []string{"Age of Tactics", "Blast Arena", "Zelda Like"}},
		{"maxScore=nan", []string{"Age of Tactics", "Blast Arena", "Zelda Like"}},
		{"minScore=-Inf&maxScore=%2BInf", []string{"Age of Tactics", "Blast Arena", "Zelda Like"}},
		{"minScore=Infinity", []string{"Age of Tactics", "Blast Arena", "Zelda Like"}},
		{"hasRating=true", []string{"Zelda Like"}},
		{"minScore=90&maxScore=10", []string{}},
		{"developer=INDIE&search=arena", []string{"Blast Arena"}},
	}
	for _, tt := range tests {
		w := s.do(t, http.MethodGet, "/api/v1/games/search?"+tt.query, nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.query, w.Code)
		}
		games := decode[[]GameResponse](t, w)
		got := make([]string, 0, len(games))
		for _, g := range games {
			got = append(got, g.Title)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Fatalf("%s: expected %v, got %v", tt.query, tt.want, got)
		}
	}
}

func TestGameCards(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/games/cards?page=2&limit=2", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	page := decode[PaginatedResponse[catalog.Card]](t, w)
	if page.Meta.TotalItems != 3 || page.Meta.TotalPages != 2 || page.Meta.CurrentPage != 2 {
		t.Fatalf("unexpected meta %+v", page.Meta)
	}
	if len(page.Data) != 1 || page.Data[0].Score != "8/10 (Personnel)" || page.Data[0].PlaytimeHours != 2 {
		t.Fatalf("unexpected cards %+v", page.Data)
	}
}

func TestUpdateRating(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/games/" + itoa(s.games[1].ID) + "/rating"

	w := s.do(t, http.MethodPut, path, []byte(`{"rating": 7.5}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	got := decode[GameResponse](t, w)
	if got.MyRating == nil || *got.MyRating != 7.5 || got.IsModifiedByUser != 1 {
		t.Fatalf("unexpected game %+v", got)
	}

	w = s.do(t, http.MethodPut, path, []byte(`{"rating": null}`), nil)
	if got := decode[GameResponse](t, w); got.MyRating != nil {
		t.Fatalf("expected cleared rating")
	}

	if w := s.do(t, http.MethodPut, path, []byte(`{"rating": 42}`), nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out of range rating, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPut, path, []byte(`not json`), nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPut, "/api/v1/games/999/rating", []byte(`{"rating": 1}`), nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestLookups(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/platforms", nil, nil)
	if got := decode[[]string](t, w); strings.Join(got, ",") != "GOG,STEAM" {
		t.Fatalf("unexpected platforms %v", got)
	}

	w = s.do(t, http.MethodGet, "/api/v1/facets", nil, nil)
	facets := decode[service.Facets](t, w)
	if len(facets.Genres) != 4 || len(facets.Developers) != 2 {
		t.Fatalf("unexpected facets %+v", facets)
	}

	w = s.do(t, http.MethodGet, "/api/v1/stats", nil, nil)
	stats := decode[catalog.StatsReport](t, w)
	if stats.TotalGames != 3 || stats.TotalPlaytime != 120 || stats.AverageScore != 39 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.TopDevelopers[0].Name != "Indie Co" || stats.TopDevelopers[0].Count != 2 {
		t.Fatalf("unexpected top developers %+v", stats.TopDevelopers)
	}
}

func TestSyncRequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodPost, "/api/v1/admin/sync/gog", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	viewer, err := jwt.GenerateToken(testSecret, "guest", "viewer", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if w := s.do(t, http.MethodPost, "/api/v1/admin/sync/gog", nil, map[string]string{"Authorization": "Bearer " + viewer}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	token, err := jwt.GenerateToken(testSecret, "ops", jwt.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	header := map[string]string{"Authorization": "Bearer " + token}

	w := s.do(t, http.MethodGet, "/api/v1/tags", nil, nil)
	if got := decode[[]string](t, w); len(got) != 2 {
		t.Fatalf("unexpected tags before sync %v", got)
	}

	w = s.do(t, http.MethodPost, "/api/v1/admin/sync/gog", nil, header)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	res := decode[SyncResponse](t, w)
	if !res.Success || res.Created != 1 || res.Games[0].Title != "Test Game GOG" {
		t.Fatalf("unexpected sync response %+v", res)
	}

	w = s.do(t, http.MethodGet, "/api/v1/tags", nil, nil)
	if got := decode[[]string](t, w); len(got) != 5 {
		t.Fatalf("expected synced tags to show up, got %v", got)
	}

	if w := s.do(t, http.MethodPost, "/api/v1/admin/sync/epic", nil, header); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for unconfigured epic sync, got %d", w.Code)
	}
}

func TestSyncIsThrottled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelper.NewTestDB(t)
	repo := repository.New(db)
	syncer := library.NewSyncer(repo, nil, library.Options{MinInterval: time.Hour}, logging.Discard())
	router := NewRouter(RouterDeps{Syncer: syncer, Logger: logging.Discard(), JWTSecret: testSecret})

	token, err := jwt.GenerateToken(testSecret, "ops", jwt.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sync/steam", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := post(); code != http.StatusOK {
		t.Fatalf("expected first sync to succeed, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

type brokenService struct {
	GameService
}

func (brokenService) ListGames(context.Context) ([]models.Game, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestStoreFailureIsGenericServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterDeps{Games: brokenService{}, Logger: logging.Discard()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/games", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"error":"Server error"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterDeps{
		Logger: logging.Discard(),
		Checks: map[string]Checker{
			"database": func(context.Context) error { return nil },
			"cache":    func(context.Context) error { return errors.New("down") },
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), `"cache":"down"`) {
		t.Fatalf("unexpected health %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestEventStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events?topics=rating.updated", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readUntil := func(prefix string) string {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read stream: %v", err)
			}
			if strings.HasPrefix(line, prefix) {
				return line
			}
		}
	}

	readUntil("event:ready")
	if s.hub.Subscribers(hub.TopicRatingUpdated) != 1 {
		t.Fatalf("expected one subscriber")
	}

	path := "/api/v1/games/" + itoa(s.games[0].ID) + "/rating"
	if w := s.do(t, http.MethodPut, path, []byte(`{"rating": 3}`), nil); w.Code != http.StatusOK {
		t.Fatalf("update failed: %d", w.Code)
	}

	readUntil("event:message")
	data := readUntil("data:")
	if !strings.Contains(data, `"rating.updated"`) || !strings.Contains(data, `"myRating":3`) {
		t.Fatalf("unexpected event data %q", data)
	}
}

func TestEventStreamRejectsUnknownTopics(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(t, http.MethodGet, "/api/v1/events?topics=nope", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEventSocket(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events/ws?topics=rating.updated"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ready hub.Event
	if err := conn.ReadJSON(&ready); err != nil || ready.Type != "ready" {
		t.Fatalf("expected ready event, got %+v (%v)", ready, err)
	}

	path := "/api/v1/games/" + itoa(s.games[0].ID) + "/rating"
	if w := s.do(t, http.MethodPut, path, []byte(`{"rating": 5}`), nil); w.Code != http.StatusOK {
		t.Fatalf("update failed: %d", w.Code)
	}

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(msg), `"type":"rating.updated"`) || !strings.Contains(string(msg), `"myRating":5`) {
		t.Fatalf("unexpected message %s", msg)
	}
}
