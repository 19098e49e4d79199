package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/users"
	pkgAuth "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/auth"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/auth/session"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid email or password"
	emailTakenMessage         = "an account with this email already exists"
)

// Service defines the behavior needed by the auth controllers. The shopper
// id ties the anonymous cart and checkout session to the account that logs
// in or registers mid-checkout.
type Service interface {
	Login(ctx context.Context, shopperID string, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, shopperID string, req RegisterRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
	Logout(ctx context.Context, accessID string) error
}

// IdentityObserver is notified after a successful login or registration.
type IdentityObserver interface {
	OnAuthenticated(ctx context.Context, shopperID string, accountType enums.AccountType)
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type cartLinker interface {
	AttachUser(ctx context.Context, shopperID string, userID uuid.UUID) error
}

type service struct {
	users       userRepository
	session     sessionManager
	carts       cartLinker
	observers   []IdentityObserver
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	CartLinker     cartLinker
	Observers      []IdentityObserver
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.CartLinker == nil {
		return nil, fmt.Errorf("cart linker is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		carts:       params.CartLinker,
		observers:   params.Observers,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, shopperID string, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now, err := s.recordLogin(ctx, user)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, user, now)
	if err != nil {
		return nil, err
	}

	s.linkAndNotify(ctx, shopperID, user)
	return resp, nil
}

func (s *service) Register(ctx context.Context, shopperID string, req RegisterRequest) (*AuthResponse, error) {
	accountType, err := enums.ParseAccountType(strings.TrimSpace(req.AccountType))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown account type")
	}

	if err := security.CheckLength(req.Password, s.passwordCfg); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if req.Password != req.PasswordConfirmation {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if accountType == enums.AccountTypeBusiness {
		if req.CompanyName == nil || strings.TrimSpace(*req.CompanyName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name is required for business accounts")
		}
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		AccountType:  accountType,
		CompanyName:  req.CompanyName,
		SiretNumber:  req.SiretNumber,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, emailTakenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	now, err := s.recordLogin(ctx, created)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, created, now)
	if err != nil {
		return nil, err
	}

	s.linkAndNotify(ctx, shopperID, created)
	return resp, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}

	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:      user.ID,
		AccountType: user.AccountType,
		JTI:         newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) recordLogin(ctx context.Context, user *models.User) (time.Time, error) {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now
	return now, nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User, now time.Time) (*AuthResponse, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:      user.ID,
		AccountType: user.AccountType,
		JTI:         accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

// linkAndNotify hands the anonymous cart to the user and wakes any checkout
// waiting on the account step. Failures here must not fail the login.
func (s *service) linkAndNotify(ctx context.Context, shopperID string, user *models.User) {
	if strings.TrimSpace(shopperID) == "" {
		return
	}
	if err := s.carts.AttachUser(ctx, shopperID, user.ID); err != nil {
		s.logg.Error(s.logg.WithShopperID(ctx, shopperID), "attaching cart to user", err)
	}
	for _, observer := range s.observers {
		observer.OnAuthenticated(ctx, shopperID, user.AccountType)
	}
}
