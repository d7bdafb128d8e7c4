package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/joaobatista235/know-your-fan/internal/domain/model"
	redrepo "github.com/joaobatista235/know-your-fan/internal/repo/redis"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
)

type fakeUserStore struct {
	byEmail map[string]authsvc.Credentials
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]authsvc.Credentials{}}
}

func (f *fakeUserStore) Create(_ context.Context, user model.User, passwordHash string) (model.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return model.User{}, authsvc.ErrEmailTaken
	}
	f.byEmail[user.Email] = authsvc.Credentials{User: user, PasswordHash: passwordHash}
	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (authsvc.Credentials, error) {
	creds, ok := f.byEmail[email]
	if !ok {
		return authsvc.Credentials{}, authsvc.ErrUserNotFound
	}
	return creds, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	for _, creds := range f.byEmail {
		if creds.User.ID == id {
			return creds.User, nil
		}
	}
	return model.User{}, authsvc.ErrUserNotFound
}

type fakeProfileStore struct {
	fan *model.Fan
}

func (f *fakeProfileStore) FindByOwner(context.Context, string) (*model.Fan, error) {
	if f.fan == nil {
		return nil, errors.New("fan profile not found")
	}
	return f.fan, nil
}

type fakeLimiter struct {
	allowed    bool
	retryAfter int64
}

func (f *fakeLimiter) AllowLogin(context.Context, string) (int64, bool, error) {
	return f.retryAfter, f.allowed, nil
}

func newAuthServiceForTest(t *testing.T, users authsvc.UserStore, profiles authsvc.ProfileStore, limiter authsvc.LoginLimiter) (*authsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	sessions := redrepo.NewSessionRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, users, sessions, profiles, limiter, 45*24*time.Hour)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}
	return svc, cleanup
}

func TestRegisterThenLogin(t *testing.T) {
	users := newFakeUserStore()
	svc, cleanup := newAuthServiceForTest(t, users, nil, nil)
	defer cleanup()

	ctx := context.Background()
	registered, err := svc.Register(ctx, "Ana@Example.com", "s3cret-pass", "Ana")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Me.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", registered.Me.Email)
	}
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatalf("missing tokens in register result")
	}

	loggedIn, err := svc.Login(ctx, "ana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.Me.ID != registered.Me.ID {
		t.Fatalf("login returned a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc, cleanup := newAuthServiceForTest(t, users, nil, nil)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "ana@example.com", "s3cret-pass", "Ana"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "ana@example.com", "other-pass1", "Ana"); !errors.Is(err, authsvc.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t, newFakeUserStore(), nil, nil)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "not-an-email", "s3cret-pass", ""); !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for email, got %v", err)
	}
	if _, err := svc.Register(ctx, "ana@example.com", "short", ""); !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for password, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc, cleanup := newAuthServiceForTest(t, users, nil, nil)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "ana@example.com", "s3cret-pass", "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "wrong-pass1"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ghost@example.com", "whatever11"); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("unknown email should look like bad credentials, got %v", err)
	}
}

func TestLoginRateLimited(t *testing.T) {
	users := newFakeUserStore()
	svc, cleanup := newAuthServiceForTest(t, users, nil, &fakeLimiter{allowed: false, retryAfter: 30})
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Register(ctx, "ana@example.com", "s3cret-pass", "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "s3cret-pass"); !errors.Is(err, authsvc.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	users := newFakeUserStore()
	svc, cleanup := newAuthServiceForTest(t, users, nil, nil)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Register(ctx, "ana@example.com", "s3cret-pass", "Ana")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, loginRes.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if refreshRes.RefreshToken == loginRes.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := svc.Refresh(ctx, loginRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("old refresh token should be unauthorized, got err=%v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, refreshRes.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	users := newFakeUserStore()
	svc, cleanup := newAuthServiceForTest(t, users, nil, nil)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Register(ctx, "ana@example.com", "s3cret-pass", "Ana")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken)
	if err != nil {
		t.Fatalf("validate access token before logout: %v", err)
	}

	if err := svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("access token should be unauthorized after logout, got err=%v", err)
	}
}

func TestProfileCompleteFlag(t *testing.T) {
	users := newFakeUserStore()
	birth := time.Date(1999, 3, 2, 0, 0, 0, 0, time.UTC)
	profiles := &fakeProfileStore{fan: &model.Fan{
		Name:      "Ana Souza",
		CPF:       "12345678901",
		BirthDate: &birth,
	}}
	svc, cleanup := newAuthServiceForTest(t, users, profiles, nil)
	defer cleanup()

	ctx := context.Background()
	result, err := svc.Register(ctx, "ana@example.com", "s3cret-pass", "Ana")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !result.Me.ProfileComplete {
		t.Fatalf("expected profileComplete=true with name, cpf and birth date set")
	}

	profiles.fan.CPF = ""
	result, err = svc.Login(ctx, "ana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Me.ProfileComplete {
		t.Fatalf("expected profileComplete=false without cpf")
	}
}
