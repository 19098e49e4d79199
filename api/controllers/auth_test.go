package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/middleware"
	authsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/auth"
	pkgAuth "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/auth"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
)

type stubAuthService struct {
	loginShopperID string
	loginErr       error
	loggedOut      string
	resp           *authsvc.AuthResponse
}

func (s *stubAuthService) Login(ctx context.Context, shopperID string, req authsvc.LoginRequest) (*authsvc.AuthResponse, error) {
	s.loginShopperID = shopperID
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.resp, nil
}

func (s *stubAuthService) Register(ctx context.Context, shopperID string, req authsvc.RegisterRequest) (*authsvc.AuthResponse, error) {
	return s.resp, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.AuthResponse, error) {
	return s.resp, nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = accessID
	return nil
}

func TestAuthLoginForwardsShopperID(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{resp: &authsvc.AuthResponse{AccessToken: "at", RefreshToken: "rt"}}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.fr","password":"secret"}`))
	req = req.WithContext(middleware.WithShopperID(req.Context(), "shopper-1"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if svc.loginShopperID != "shopper-1" {
		t.Fatalf("expected shopper id forwarded, got %q", svc.loginShopperID)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"not-an-email","password":""}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthLoginMapsServiceErrors(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.fr","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Message != "invalid email or password" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestAuthRegisterReturnsCreated(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{resp: &authsvc.AuthResponse{AccessToken: "at"}}
	handler := AuthRegister(svc, nil)

	body := `{"email":"a@b.fr","password":"secret","password_confirmation":"secret","first_name":"Ana","last_name":"Martin","account_type":"individual"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
}

func TestAuthLogoutRevokesSessionFromBearer(t *testing.T) {
	t.Parallel()

	cfg := config.JWTConfig{Secret: "secret", Issuer: "test", ExpirationMinutes: 15}
	jti := uuid.NewString()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:      uuid.New(),
		AccountType: enums.AccountTypeIndividual,
		JTI:         jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc := &stubAuthService{}
	handler := AuthLogout(svc, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if svc.loggedOut != jti {
		t.Fatalf("expected jti %q revoked, got %q", jti, svc.loggedOut)
	}
}

func TestAuthLogoutRequiresBearer(t *testing.T) {
	t.Parallel()

	handler := AuthLogout(&stubAuthService{}, config.JWTConfig{Secret: "secret", Issuer: "test", ExpirationMinutes: 15}, nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
