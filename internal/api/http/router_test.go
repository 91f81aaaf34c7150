package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/media-discovery/internal/api/http/handlers"
	"github.com/spec-kit/media-discovery/internal/auth"
	"github.com/spec-kit/media-discovery/internal/config"
	"github.com/spec-kit/media-discovery/internal/events"
	"github.com/spec-kit/media-discovery/internal/observability"
	"github.com/spec-kit/media-discovery/internal/repository/memory"
	"github.com/spec-kit/media-discovery/internal/service"
)

const prefix = "/api/v1"

type stubCatalog struct{}

func (stubCatalog) List(context.Context, string, string, int) (json.RawMessage, error) {
	return json.RawMessage(`{"page":1,"results":[{"id":329865}]}`), nil
}

func (stubCatalog) Genres(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"genres":[{"id":18,"name":"Drama"}]}`), nil
}

func (stubCatalog) Search(context.Context, string, string, int) (json.RawMessage, error) {
	return json.RawMessage(`{"page":1,"results":[]}`), nil
}

func (stubCatalog) Detail(_ context.Context, _ string, mediaID string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"` + mediaID + `","title":"Arrival"}`), nil
}

func (stubCatalog) Person(_ context.Context, personID string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":` + personID + `,"name":"Christopher Nolan"}`), nil
}

func (stubCatalog) PersonMedias(_ context.Context, personID string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":` + personID + `,"cast":[],"crew":[{"id":27205,"media_type":"movie"}]}`), nil
}

type testServer struct {
	app     *fiber.App
	users   *memory.Users
	reviews *memory.Reviews
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	users := memory.NewUsers()
	reviews := memory.NewReviews(users)
	favorites := memory.NewFavorites()
	tokens := auth.NewTokenManager("router-test-secret", time.Hour)
	dispatcher := events.NewSyncDispatcher()
	metrics := observability.NewMetrics()

	userService := service.NewUserService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, service.UserDependencies{
		UserRepo:   users,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
	reviewService := service.NewReviewService(reviews, dispatcher)
	favoriteService := service.NewFavoriteService(favorites, dispatcher)
	mediaService := service.NewMediaService(stubCatalog{}, reviewService, favoriteService)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Prefix:    prefix,
		Health:    handlers.NewHealthHandler("media-discovery-api", "test", metrics, nil),
		Users:     handlers.NewUsersHandler(userService),
		Reviews:   handlers.NewReviewsHandler(reviewService),
		Favorites: handlers.NewFavoritesHandler(favoriteService),
		Media:     handlers.NewMediaHandler(mediaService),
		Gate:      auth.NewGate(tokens, auth.NewIdentityResolver(users), logger),
	})
	return &testServer{app: app, users: users, reviews: reviews, metrics: metrics}
}

type response struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
	}
	if out.Status != resp.StatusCode {
		t.Fatalf("%s %s: body status %d differs from transport status %d", method, path, out.Status, resp.StatusCode)
	}
	return resp.StatusCode, out, raw
}

func (s *testServer) signup(t *testing.T, username string) (id, token string) {
	t.Helper()
	status, resp, raw := s.do(t, http.MethodPost, prefix+"/user/signup", "", fiber.Map{
		"username":        username,
		"password":        "secret-password",
		"confirmPassword": "secret-password",
		"displayName":     username + "-display",
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", username, status, raw)
	}
	var data struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode signup data: %v", err)
	}
	return data.ID, data.Token
}

func decodeData(t *testing.T, resp response, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
}

func TestSignupSigninAndInfo(t *testing.T) {
	s := newTestServer(t)
	id, token := s.signup(t, "alice-user")

	status, resp, _ := s.do(t, http.MethodGet, prefix+"/user/info", token, nil)
	if status != http.StatusOK {
		t.Fatalf("info status %d", status)
	}
	var info map[string]any
	decodeData(t, resp, &info)
	if info["id"] != id || info["username"] != "alice-user" {
		t.Fatalf("unexpected info %v", info)
	}
	if _, leaked := info["password"]; leaked {
		t.Fatal("password leaked in info")
	}

	status, resp, _ = s.do(t, http.MethodPost, prefix+"/user/signin", "", fiber.Map{
		"username": "alice-user",
		"password": "secret-password",
	})
	if status != http.StatusCreated {
		t.Fatalf("signin status %d", status)
	}

	status, resp, _ = s.do(t, http.MethodPost, prefix+"/user/signin", "", fiber.Map{
		"username": "alice-user",
		"password": "wrong-password",
	})
	if status != http.StatusBadRequest || resp.Error.Message != "Wrong password" {
		t.Fatalf("expected wrong password error, got %d %+v", status, resp.Error)
	}
}

func TestSignupValidationDetails(t *testing.T) {
	s := newTestServer(t)
	status, resp, _ := s.do(t, http.MethodPost, prefix+"/user/signup", "", fiber.Map{
		"username":        "short",
		"password":        "secret-password",
		"confirmPassword": "other-password",
		"displayName":     "display-name",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if resp.Error.Message != "username minimum 8 characters" {
		t.Fatalf("unexpected headline %q", resp.Error.Message)
	}
	if resp.Error.Details["confirmPassword"] != "confirmPassword not match" {
		t.Fatalf("expected confirmPassword detail, got %v", resp.Error.Details)
	}
}

func TestProtectedRoutesRejectUniformly(t *testing.T) {
	s := newTestServer(t)
	id, token := s.signup(t, "alice-user")

	_, _, missing := s.do(t, http.MethodGet, prefix+"/reviews", "", nil)
	_, _, garbage := s.do(t, http.MethodGet, prefix+"/reviews", "not.a.token", nil)

	s.users.Delete(id)
	status, _, deleted := s.do(t, http.MethodGet, prefix+"/reviews", token, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("deleted account still authorized: %d", status)
	}

	if !bytes.Equal(missing, garbage) || !bytes.Equal(missing, deleted) {
		t.Fatalf("unauthorized bodies differ:\n%s\n%s\n%s", missing, garbage, deleted)
	}
	if string(missing) != `{"status":401,"error":{"message":"Unauthorized"}}` {
		t.Fatalf("unexpected unauthorized body %s", missing)
	}
}

func TestReviewOwnership(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.signup(t, "alice-user")
	_, bobToken := s.signup(t, "bob-user-1")

	status, resp, raw := s.do(t, http.MethodPost, prefix+"/reviews", aliceToken, fiber.Map{
		"mediaId":     "329865",
		"mediaType":   "movie",
		"mediaTitle":  "Arrival",
		"mediaPoster": "/poster.jpg",
		"content":     "Quietly devastating.",
	})
	if status != http.StatusCreated {
		t.Fatalf("create review: %d %s", status, raw)
	}
	var review struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &review)

	status, resp, _ = s.do(t, http.MethodDelete, prefix+"/reviews/"+review.ID, bobToken, nil)
	if status != http.StatusNotFound || resp.Error.Message != "Review not found" {
		t.Fatalf("expected not found for non-owner, got %d %+v", status, resp.Error)
	}
	if !s.reviews.Exists(review.ID) {
		t.Fatal("review deleted by non-owner")
	}

	status, resp, _ = s.do(t, http.MethodGet, prefix+"/reviews", bobToken, nil)
	var bobReviews []any
	decodeData(t, resp, &bobReviews)
	if status != http.StatusOK || len(bobReviews) != 0 {
		t.Fatalf("bob sees foreign reviews: %d %v", status, bobReviews)
	}

	status, _, _ = s.do(t, http.MethodDelete, prefix+"/reviews/"+review.ID, aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("owner delete: %d", status)
	}
	if s.reviews.Exists(review.ID) {
		t.Fatal("review survived owner delete")
	}
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, "alice-user")
	body := fiber.Map{
		"mediaId":     "95396",
		"mediaType":   "tv",
		"mediaTitle":  "Severance",
		"mediaPoster": "/poster.jpg",
		"mediaRate":   8.4,
	}

	status, first, _ := s.do(t, http.MethodPost, prefix+"/user/favorites", token, body)
	if status != http.StatusCreated {
		t.Fatalf("first add: %d", status)
	}
	status, second, _ := s.do(t, http.MethodPost, prefix+"/user/favorites", token, body)
	if status != http.StatusOK {
		t.Fatalf("second add: %d", status)
	}
	var a, b struct {
		ID string `json:"id"`
	}
	decodeData(t, first, &a)
	decodeData(t, second, &b)
	if a.ID == "" || a.ID != b.ID {
		t.Fatalf("expected same favorite, got %q and %q", a.ID, b.ID)
	}

	status, resp, _ := s.do(t, http.MethodGet, prefix+"/user/favorites", token, nil)
	var list []any
	decodeData(t, resp, &list)
	if status != http.StatusOK || len(list) != 1 {
		t.Fatalf("expected one favorite, got %d %v", status, list)
	}
}

func TestMediaDetailOptionalIdentity(t *testing.T) {
	s := newTestServer(t)
	_, token := s.signup(t, "alice-user")
	s.do(t, http.MethodPost, prefix+"/user/favorites", token, fiber.Map{
		"mediaId":     "329865",
		"mediaType":   "movie",
		"mediaTitle":  "Arrival",
		"mediaPoster": "/poster.jpg",
		"mediaRate":   7.6,
	})

	cases := []struct {
		name        string
		token       string
		wantFlag    bool
		wantPresent bool
	}{
		{"identified", token, true, true},
		{"anonymous", "", false, false},
		{"invalid token", "forged", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp, _ := s.do(t, http.MethodGet, prefix+"/movie/detail/329865", tc.token, nil)
			if status != http.StatusOK {
				t.Fatalf("detail status %d", status)
			}
			var data map[string]any
			decodeData(t, resp, &data)
			flag, present := data["isFavorite"]
			if present != tc.wantPresent || (present && flag != tc.wantFlag) {
				t.Fatalf("isFavorite = %v (present %v)", flag, present)
			}
			if _, ok := data["reviews"]; !ok {
				t.Fatal("detail missing reviews")
			}
			if data["title"] != "Arrival" {
				t.Fatalf("upstream fields lost: %v", data)
			}
		})
	}
}

func TestMediaRoutes(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		path   string
		status int
	}{
		{prefix + "/movie/genres", http.StatusOK},
		{prefix + "/tv/popular?page=2", http.StatusOK},
		{prefix + "/movie/search?query=arrival", http.StatusOK},
		{prefix + "/movie/search", http.StatusBadRequest},
		{prefix + "/people/search?query=nolan", http.StatusOK},
		{prefix + "/people/popular", http.StatusBadRequest},
		{prefix + "/person/525", http.StatusOK},
		{prefix + "/person/525/medias", http.StatusOK},
		{prefix + "/book/popular", http.StatusBadRequest},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tc := range cases {
		status, _, raw := s.do(t, http.MethodGet, tc.path, "", nil)
		if status != tc.status {
			t.Fatalf("GET %s: expected %d, got %d %s", tc.path, tc.status, status, raw)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, prefix+"/movie/genres", "", nil)

	status, _, _ := s.do(t, http.MethodGet, "/health/ready", "", nil)
	if status != http.StatusOK {
		t.Fatalf("ready without dependencies: %d", status)
	}
	status, resp, _ := s.do(t, http.MethodGet, "/health/metrics", "", nil)
	if status != http.StatusOK {
		t.Fatalf("metrics: %d", status)
	}
	var snap observability.MetricsSnapshot
	decodeData(t, resp, &snap)
	if snap.TotalRequestCount < 2 {
		t.Fatalf("expected recorded requests, got %+v", snap)
	}
}

func TestPersonRoutes(t *testing.T) {
	s := newTestServer(t)

	status, resp, raw := s.do(t, http.MethodGet, prefix+"/person/525", "", nil)
	if status != http.StatusOK {
		t.Fatalf("person detail: %d %s", status, raw)
	}
	var person struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, resp, &person)
	if person.ID != 525 || person.Name != "Christopher Nolan" {
		t.Fatalf("unexpected person %+v", person)
	}

	status, resp, raw = s.do(t, http.MethodGet, prefix+"/person/525/medias", "", nil)
	if status != http.StatusOK {
		t.Fatalf("person medias: %d %s", status, raw)
	}
	var credits struct {
		Crew []struct {
			ID int `json:"id"`
		} `json:"crew"`
	}
	decodeData(t, resp, &credits)
	if len(credits.Crew) != 1 || credits.Crew[0].ID != 27205 {
		t.Fatalf("unexpected credits %+v", credits)
	}
}

func TestUnauthorizedRequestsAreCounted(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, prefix+"/reviews", "", nil)
	s.do(t, http.MethodGet, prefix+"/user/info", "Bearer garbage", nil)

	_, resp, _ := s.do(t, http.MethodGet, "/health/metrics", "", nil)
	var snap observability.MetricsSnapshot
	decodeData(t, resp, &snap)

	var unauthorized int64
	for key, count := range snap.Errors {
		if strings.HasSuffix(key, "|unauthorized") {
			unauthorized += count
		}
	}
	if unauthorized != 2 {
		t.Fatalf("expected 2 unauthorized errors, got %d in %v", unauthorized, snap.Errors)
	}
}
