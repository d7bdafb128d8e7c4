package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
	redrepo "github.com/joaobatista235/know-your-fan/internal/repo/redis"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
)

type stubUserStore struct {
	byEmail map[string]authsvc.Credentials
}

func (s *stubUserStore) Create(_ context.Context, user model.User, passwordHash string) (model.User, error) {
	s.byEmail[user.Email] = authsvc.Credentials{User: user, PasswordHash: passwordHash}
	return user, nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (authsvc.Credentials, error) {
	creds, ok := s.byEmail[email]
	if !ok {
		return authsvc.Credentials{}, authsvc.ErrUserNotFound
	}
	return creds, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	for _, creds := range s.byEmail {
		if creds.User.ID == id {
			return creds.User, nil
		}
	}
	return model.User{}, authsvc.ErrUserNotFound
}

type stubProfileStore struct{}

func (stubProfileStore) FindByOwner(context.Context, string) (*model.Fan, error) {
	return nil, authsvc.ErrUserNotFound
}

type stubLimiter struct{}

func (stubLimiter) AllowLogin(context.Context, string) (int64, bool, error) {
	return 0, true, nil
}

func newAuthServiceForTest(t *testing.T) *authsvc.Service {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	users := &stubUserStore{byEmail: map[string]authsvc.Credentials{}}
	return authsvc.NewService(jwtManager, users, redrepo.NewSessionRepo(client), stubProfileStore{}, stubLimiter{}, 24*time.Hour)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	svc := newAuthServiceForTest(t)
	mw := AuthMiddleware(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/fans/profile", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	svc := newAuthServiceForTest(t)
	mw := AuthMiddleware(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/fans/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not be called with an invalid token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewarePassesIdentity(t *testing.T) {
	svc := newAuthServiceForTest(t)
	res, err := svc.Register(context.Background(), "fan@example.com", "sup3r-secret", "Fan")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	mw := AuthMiddleware(svc, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/v1/fans/profile", nil)
	req.Header.Set("Authorization", "Bearer "+res.AccessToken)
	rr := httptest.NewRecorder()

	var got authsvc.Identity
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing from context")
		}
		got = identity
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
	if got.UserID != res.Me.ID {
		t.Fatalf("unexpected user id: got %q want %q", got.UserID, res.Me.ID)
	}
	if got.Email != "fan@example.com" {
		t.Fatalf("unexpected email: got %q", got.Email)
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, ok := extractBearerToken(""); ok {
		t.Fatalf("empty header must not yield a token")
	}
	if _, ok := extractBearerToken("Basic abc"); ok {
		t.Fatalf("non-bearer scheme must not yield a token")
	}
	token, ok := extractBearerToken("bearer abc.def.ghi")
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("unexpected token: %q ok=%v", token, ok)
	}
}
