package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/auth"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

type stubSessionChecker struct {
	has bool
	err error
}

func (s *stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.has, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "vision-connect-test",
		ExpirationMinutes: 15,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:      userID,
		AccountType: enums.AccountTypeBusiness,
		JTI:         uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, userID
}

func TestAuthSeedsClaimsIntoContext(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token, userID := mintTestToken(t, cfg)

	var gotUserID, gotAccountType string
	handler := Auth(cfg, &stubSessionChecker{has: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotAccountType = AccountTypeFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != userID.String() {
		t.Fatalf("expected user id %s, got %q", userID, gotUserID)
	}
	if gotAccountType != string(enums.AccountTypeBusiness) {
		t.Fatalf("unexpected account type %q", gotAccountType)
	}
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	t.Parallel()

	handler := Auth(testJWTConfig(), &stubSessionChecker{has: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token, _ := mintTestToken(t, cfg)

	handler := Auth(cfg, &stubSessionChecker{has: false}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	t.Parallel()

	reached := false
	handler := OptionalAuth(testJWTConfig(), &stubSessionChecker{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if UserIDFromContext(r.Context()) != "" {
			t.Fatal("anonymous request should carry no user id")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reached {
		t.Fatal("handler was not reached")
	}
}

func TestOptionalAuthStillRejectsBadTokens(t *testing.T) {
	t.Parallel()

	handler := OptionalAuth(testJWTConfig(), &stubSessionChecker{has: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
